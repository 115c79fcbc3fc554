package stores

import (
	"sync/atomic"

	"traefik-monitor/internal/models"
)

// SnapshotStore holds the latest published StatsSnapshot. It is the only
// surface shared between the poll loop (writer) and the ops HTTP server
// (readers); snapshots are immutable, so a single atomic pointer swap is all
// the synchronization needed and the collector itself stays lock-free.
type SnapshotStore struct {
	current atomic.Pointer[models.StatsSnapshot]
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Put publishes snap as the latest snapshot.
func (s *SnapshotStore) Put(snap *models.StatsSnapshot) {
	s.current.Store(snap)
}

// Latest returns the most recently published snapshot, or nil before the
// first publish.
func (s *SnapshotStore) Latest() *models.StatsSnapshot {
	return s.current.Load()
}
