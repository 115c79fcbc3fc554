package control

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"traefik-monitor/internal/shared/loggers"
)

// Listener reads the interactive input stream line by line and forwards every
// integer in [1, maxTop] on its channel; anything else is silently ignored.
// It is the only producer and the poll loop is the only consumer, so no state
// is shared beyond the channel itself. The channel is closed when the input
// stream ends.
type Listener struct {
	input  io.Reader
	maxTop int
	ch     chan int
	logger loggers.Logger
}

func NewListener(input io.Reader, maxTop int, logger loggers.Logger) *Listener {
	return &Listener{
		input:  input,
		maxTop: maxTop,
		ch:     make(chan int, 16),
		logger: logger,
	}
}

// Updates returns the channel of validated top-N values.
func (l *Listener) Updates() <-chan int {
	return l.ch
}

// Start spawns the reading goroutine. There is no Stop: the read blocks on
// console input for the process lifetime, and a cancelled context makes the
// goroutine drop its next value and exit quietly.
func (l *Listener) Start(ctx context.Context) {
	go func() {
		defer close(l.ch)

		scanner := bufio.NewScanner(l.input)
		for scanner.Scan() {
			value, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
			if err != nil || value < 1 || value > l.maxTop {
				continue
			}

			select {
			case l.ch <- value:
				l.logger.Debug().Int(loggers.FieldTopN, value).Msg("top-n update received")
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			l.logger.Warn().Err(err).Msg("control input closed")
		}
	}()
}
