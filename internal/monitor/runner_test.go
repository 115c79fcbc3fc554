package monitor_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"traefik-monitor/internal/display"
	"traefik-monitor/internal/models"
	"traefik-monitor/internal/monitor"
	"traefik-monitor/internal/monitor/mocks"
	"traefik-monitor/internal/shared/faults"
	"traefik-monitor/internal/shared/filestorages"
	"traefik-monitor/internal/stats"
	"traefik-monitor/internal/stores"
	"traefik-monitor/internal/tailer"
)

func testOptions() monitor.Options {
	return monitor.Options{
		PollInterval:   time.Second,
		DefaultTop:     10,
		PathsPerClient: 3,
		TopAgents:      5,
	}
}

func TestTick_IngestsPolledLines(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockLogSource(ctrl)
	presenter := mocks.NewMockPresenter(ctrl)
	collector := stats.NewCollector()
	snapshots := stores.NewSnapshotStore()

	source.EXPECT().Poll().Return([]string{
		`{"ClientHost":"1.1.1.1","RequestPath":"/a"}`,
		`{"ClientHost":"1.1.1.1","RequestPath":"/a"}`,
		`{"ClientHost":"2.2.2.2","RequestPath":"/b"}`,
	}, nil)

	var presented *models.StatsSnapshot
	presenter.EXPECT().Present(gomock.Any()).Do(func(snap *models.StatsSnapshot) {
		presented = snap
	})

	runner := monitor.NewRunner(source, collector, presenter, snapshots, nil, nil, testOptions(), zerolog.Nop())
	runner.Tick(context.Background())

	require.NotNil(t, presented)
	assert.Equal(t, uint64(3), presented.TotalRequests)
	assert.Equal(t, 2, presented.UniqueClients)
	require.NotEmpty(t, presented.Clients)
	assert.Equal(t, "1.1.1.1", presented.Clients[0].IP)
	assert.Equal(t, uint64(2), presented.Clients[0].Requests)
	assert.InDelta(t, 66.7, presented.Clients[0].Percent, 0.05)

	// The same snapshot is published for the ops server.
	assert.Same(t, presented, snapshots.Latest())
}

func TestTick_SkipsMalformedLines(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockLogSource(ctrl)
	presenter := mocks.NewMockPresenter(ctrl)
	collector := stats.NewCollector()

	source.EXPECT().Poll().Return([]string{
		`{"ClientHost":"1.1.1.1"}`,
		`{definitely not json`,
		`{"ClientHost":"2.2.2.2"}`,
	}, nil)
	presenter.EXPECT().Present(gomock.Any())

	runner := monitor.NewRunner(source, collector, presenter, stores.NewSnapshotStore(), nil, nil, testOptions(), zerolog.Nop())
	runner.Tick(context.Background())

	assert.Equal(t, uint64(2), collector.TotalRequests())
	assert.Equal(t, 2, collector.UniqueClients())
}

func TestTick_SkipsRecordsWithoutClientIP(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockLogSource(ctrl)
	presenter := mocks.NewMockPresenter(ctrl)
	collector := stats.NewCollector()

	source.EXPECT().Poll().Return([]string{
		`{"RequestPath":"/no-client"}`,
		`{"ClientHost":"1.1.1.1"}`,
	}, nil)
	presenter.EXPECT().Present(gomock.Any())

	runner := monitor.NewRunner(source, collector, presenter, stores.NewSnapshotStore(), nil, nil, testOptions(), zerolog.Nop())
	runner.Tick(context.Background())

	assert.Equal(t, uint64(1), collector.TotalRequests())
}

func TestTick_PollErrorStillRefreshesDisplay(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockLogSource(ctrl)
	presenter := mocks.NewMockPresenter(ctrl)
	collector := stats.NewCollector()

	source.EXPECT().Poll().Return(nil, faults.NewTransient("TAIL_1000", errors.New("io error")))
	presenter.EXPECT().Present(gomock.Any())

	runner := monitor.NewRunner(source, collector, presenter, stores.NewSnapshotStore(), nil, nil, testOptions(), zerolog.Nop())
	runner.Tick(context.Background())

	assert.Equal(t, uint64(0), collector.TotalRequests())
}

func TestRun_ControlUpdateTriggersImmediateRerender(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := mocks.NewMockLogSource(ctrl)
	presenter := mocks.NewMockPresenter(ctrl)

	updates := make(chan int, 4)
	updates <- 7

	presented := make(chan *models.StatsSnapshot, 64)
	presenter.EXPECT().Present(gomock.Any()).Do(func(snap *models.StatsSnapshot) {
		select {
		case presented <- snap:
		default:
		}
	}).AnyTimes()
	source.EXPECT().Poll().Return(nil, nil).AnyTimes()

	opts := testOptions()
	opts.PollInterval = 5 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runner := monitor.NewRunner(source, stats.NewCollector(), presenter, stores.NewSnapshotStore(), nil, updates, opts, zerolog.Nop())
	go runner.Run(ctx)

	// First render shows the default N, the queued update re-renders with 7
	// before any tick fires.
	first := <-presented
	assert.Equal(t, 10, first.TopN)
	second := <-presented
	assert.Equal(t, 7, second.TopN)
}

func TestRunner_EndToEndScenario(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "access.log")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	source, err := tailer.New(path)
	require.NoError(t, err)
	defer source.Close()

	fileStorage, err := filestorages.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	archive := stores.NewSnapshotArchiveStore(fileStorage)

	var out bytes.Buffer
	collector := stats.NewCollector()
	snapshots := stores.NewSnapshotStore()
	runner := monitor.NewRunner(source, collector, display.NewFormatter(&out, 55), snapshots, archive, nil, testOptions(), zerolog.Nop())

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString(`{"ClientHost":"1.1.1.1","RequestPath":"/a"}` + "\n" +
		`{"ClientHost":"1.1.1.1","RequestPath":"/a"}` + "\n" +
		`{"ClientHost":"2.2.2.2","RequestPath":"/b"}` + "\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	ctx := context.Background()
	runner.Tick(ctx)

	snap := snapshots.Latest()
	require.NotNil(t, snap)
	assert.Equal(t, 2, snap.UniqueClients)
	assert.Equal(t, uint64(3), snap.TotalRequests)
	require.NotEmpty(t, snap.Clients)
	assert.Equal(t, "1.1.1.1", snap.Clients[0].IP)
	assert.Equal(t, uint64(2), snap.Clients[0].Requests)
	assert.InDelta(t, 66.7, snap.Clients[0].Percent, 0.05)

	assert.Contains(t, out.String(), "1. 1.1.1.1")
	assert.Contains(t, out.String(), "• /a (2)")

	archived, err := archive.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap, archived)
}
