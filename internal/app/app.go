package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"traefik-monitor/internal/control"
	"traefik-monitor/internal/display"
	internalhttp "traefik-monitor/internal/http"
	"traefik-monitor/internal/monitor"
	"traefik-monitor/internal/shared/configs"
	"traefik-monitor/internal/shared/filestorages"
	"traefik-monitor/internal/shared/loggers"
	"traefik-monitor/internal/shared/ulid"
	"traefik-monitor/internal/stats"
	"traefik-monitor/internal/stores"
	"traefik-monitor/internal/tailer"
)

// startupPause gives the operator a moment to read the banner before the
// first full-screen redraw wipes it.
const startupPause = 2 * time.Second

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger

	tail      *tailer.Tailer
	listener  *control.Listener
	runner    *monitor.Runner
	opsServer *http.Server // nil when the ops endpoint is disabled
}

// New creates and initializes a new App instance. A missing or unreadable
// access log fails construction: there is nothing to monitor without one.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "traefik-monitor").
		Str(loggers.FieldRunID, ulid.NewULID()).
		Logger()

	// Open the access log seeked to end; history is intentionally skipped.
	tail, err := tailer.New(config.Monitor.AccessLog)
	if err != nil {
		return nil, err
	}

	collector := stats.NewCollector()
	formatter := display.NewFormatter(os.Stdout, config.Display.PathWidth)
	snapshots := stores.NewSnapshotStore()

	var archive stores.SnapshotArchiveStore
	if config.Snapshot.Enabled {
		fileStorage, err := filestorages.NewFileStorage(config.Snapshot.RootDir)
		if err != nil {
			_ = tail.Close()
			return nil, fmt.Errorf("failed to initialize snapshot storage: %w", err)
		}
		archive = stores.NewSnapshotArchiveStore(fileStorage)
	}

	controlLogger := appLogger.With().Str(loggers.FieldComponent, "control").Logger()
	listener := control.NewListener(os.Stdin, config.Monitor.MaxTop, controlLogger)

	runnerLogger := appLogger.With().Str(loggers.FieldComponent, "monitor").Logger()
	runner := monitor.NewRunner(
		tail,
		collector,
		formatter,
		snapshots,
		archive,
		listener.Updates(),
		monitor.Options{
			PollInterval:   time.Duration(config.Monitor.PollInterval) * time.Second,
			DefaultTop:     config.Monitor.DefaultTop,
			PathsPerClient: config.Display.PathsPerClient,
			TopAgents:      config.Display.TopAgents,
		},
		runnerLogger,
	)

	var opsServer *http.Server
	if config.Ops.Enabled {
		httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
		opsServer = &http.Server{
			Addr:              fmt.Sprintf(":%d", config.Ops.Port),
			Handler:           internalhttp.NewRouter(snapshots, httpLogger),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	return &App{
		config:    config,
		appLogger: appLogger,
		tail:      tail,
		listener:  listener,
		runner:    runner,
		opsServer: opsServer,
	}, nil
}

// Run blocks until ctx is cancelled, then releases resources.
func (app *App) Run(ctx context.Context) error {
	app.printBanner()

	app.appLogger.Info().
		Str(loggers.FieldLogFile, app.config.Monitor.AccessLog).
		Int64(loggers.FieldPosition, app.tail.Position()).
		Msgf("monitor starting (poll_interval=%ds, default_top=%d)",
			app.config.Monitor.PollInterval,
			app.config.Monitor.DefaultTop)

	if app.opsServer != nil {
		go func() {
			app.appLogger.Info().Msgf("ops server listening on %s", app.opsServer.Addr)
			if err := app.opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				app.appLogger.Error().Err(err).Msg("ops server failed")
			}
		}()
	}

	select {
	case <-ctx.Done():
		return app.shutdown()
	case <-time.After(startupPause):
	}

	app.listener.Start(ctx)
	app.runner.Run(ctx)

	return app.shutdown()
}

func (app *App) printBanner() {
	fmt.Println("Starting Traefik Access Log Monitor...")
	fmt.Printf("Looking for: %s\n", app.config.Monitor.AccessLog)
	fmt.Println()
	fmt.Println("✓ Successfully opened log file")
	fmt.Println("✓ Ignoring existing entries, monitoring for new requests only")
	fmt.Println()
	fmt.Printf("Starting monitoring loop (polling every %d seconds)...\n", app.config.Monitor.PollInterval)
	fmt.Println()
}

func (app *App) shutdown() error {
	if app.opsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := app.opsServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("ops server shutdown failed: %w", err)
		}
	}

	if err := app.tail.Close(); err != nil {
		return fmt.Errorf("close access log: %w", err)
	}

	app.appLogger.Info().Msg("monitor stopped")
	return nil
}
