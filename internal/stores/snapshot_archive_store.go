package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"

	"traefik-monitor/internal/models"
	"traefik-monitor/internal/shared/filestorages"
)

const snapshotKey = "snapshots/latest.json"

//go:generate mockgen -source=snapshot_archive_store.go -destination=./mocks/snapshot_archive_store_mock.go -package=mocks
type SnapshotArchiveStore interface {
	// Put persists snap as the latest archived snapshot.
	Put(ctx context.Context, snap *models.StatsSnapshot) error
	// Get returns the archived snapshot, or nil when none has been written.
	Get(ctx context.Context) (*models.StatsSnapshot, error)
}

type snapshotArchiveStore struct {
	fileStorage filestorages.FileStorage
}

// NewSnapshotArchiveStore creates a store that exports snapshots as JSON
// files for external consumers (the dashboard itself never reads them back).
func NewSnapshotArchiveStore(fileStorage filestorages.FileStorage) SnapshotArchiveStore {
	return &snapshotArchiveStore{fileStorage: fileStorage}
}

func (s *snapshotArchiveStore) Put(ctx context.Context, snap *models.StatsSnapshot) error {
	jsonData, err := json.Marshal(snap)
	if err != nil {
		return errSnapshotWriteFailed(err)
	}

	if err := s.fileStorage.Put(ctx, snapshotKey, bytes.NewReader(jsonData)); err != nil {
		return errSnapshotWriteFailed(err)
	}
	return nil
}

func (s *snapshotArchiveStore) Get(ctx context.Context) (*models.StatsSnapshot, error) {
	readCloser, err := s.fileStorage.Get(ctx, snapshotKey)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			return nil, nil
		}
		return nil, errSnapshotReadFailed(err)
	}
	defer readCloser.Close()

	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, errSnapshotReadFailed(err)
	}

	var snap models.StatsSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errSnapshotReadFailed(err)
	}
	return &snap, nil
}
