package tailer

import (
	"fmt"

	"traefik-monitor/internal/shared/faults"
)

// Tailer fault codes
const (
	codeReadFailed = "TAIL_1000"

	codeOpenFailed = "TAIL_9000"
)

// errOpenFailed returns a fatal fault: the monitor cannot run without its log file.
func errOpenFailed(path string, cause error) *faults.Fault {
	return faults.NewFatal(codeOpenFailed, fmt.Errorf("open access log %q: %w", path, cause))
}

// errReadFailed returns a transient fault scoped to one poll.
func errReadFailed(cause error) *faults.Fault {
	return faults.NewTransient(codeReadFailed, fmt.Errorf("read access log: %w", cause))
}
