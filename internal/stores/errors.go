package stores

import (
	"fmt"

	"traefik-monitor/internal/shared/faults"
)

// Snapshot store fault codes
const (
	codeSnapshotWriteFailed = "SNAP_1000"
	codeSnapshotReadFailed  = "SNAP_1001"
)

// errSnapshotWriteFailed returns a transient fault: a failed export never
// stops the monitoring loop.
func errSnapshotWriteFailed(cause error) *faults.Fault {
	return faults.NewTransient(codeSnapshotWriteFailed, fmt.Errorf("write snapshot archive: %w", cause))
}

func errSnapshotReadFailed(cause error) *faults.Fault {
	return faults.NewTransient(codeSnapshotReadFailed, fmt.Errorf("read snapshot archive: %w", cause))
}
