package monitor

import (
	"fmt"

	"traefik-monitor/internal/shared/faults"
)

// Runner fault codes
const (
	codeDecodeFailed = "DEC_1000"
)

// errDecodeFailed returns a line-scoped fault: one bad record never stops
// the stream.
func errDecodeFailed(cause error) *faults.Fault {
	return faults.NewLine(codeDecodeFailed, fmt.Errorf("decode access log record: %w", cause))
}
