package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"

	"github.com/saucerburger/pos-service/internal/order"
	"github.com/saucerburger/pos-service/internal/storage"
)

const (
	snapshotPrefix = "burger_orders_backup_"
	latestKey      = "burger_orders_latest_backup"
	deviceIDKey    = "burger_app_device_id"

	// SchemaVersion tags every snapshot so older payloads can be migrated
	// on load.
	SchemaVersion = "2.0"

	// DefaultMaxSnapshots is the retention cap: only the most recent N
	// snapshots survive, oldest evicted first.
	DefaultMaxSnapshots = 20
)

// ErrRestoreNotFound signals that no backup exists to restore from; the
// current store must be left untouched.
var ErrRestoreNotFound = errors.New("no backup available")

// Snapshot is a timestamped full copy of the order store plus device/user
// metadata.
type Snapshot struct {
	Timestamp time.Time     `json:"timestamp"`
	Orders    []order.Order `json:"orders"`
	Version   string        `json:"version"`
	DeviceID  string        `json:"deviceId"`
	User      string        `json:"user,omitempty"`
}

// Stats describes the snapshot inventory.
type Stats struct {
	Count     int        `json:"count"`
	Latest    *time.Time `json:"latest"`
	Oldest    *time.Time `json:"oldest"`
	TotalSize int        `json:"totalSize"`
}

// Service writes, lists, and restores order-store snapshots in local
// storage. Snapshots live under time-keyed slots plus one fixed "latest"
// pointer slot holding the same payload.
type Service struct {
	store        storage.Store
	maxSnapshots int
	now          func() time.Time
}

func NewService(store storage.Store, maxSnapshots int) *Service {
	if maxSnapshots <= 0 {
		maxSnapshots = DefaultMaxSnapshots
	}
	return &Service{store: store, maxSnapshots: maxSnapshots, now: time.Now}
}

// CreateSnapshot writes a snapshot of the order list under a time-keyed
// slot, updates the latest pointer, and evicts snapshots beyond the
// retention cap. user is the acting user, empty for scheduled backups.
func (s *Service) CreateSnapshot(ctx context.Context, orders []order.Order, user string) (Snapshot, error) {
	deviceID, err := s.DeviceID(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		Timestamp: s.now(),
		Orders:    orders,
		Version:   SchemaVersion,
		DeviceID:  deviceID,
		User:      user,
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return Snapshot{}, fmt.Errorf("backup: failed to encode snapshot: %w", err)
	}

	key := snapshotPrefix + strconv.FormatInt(snap.Timestamp.UnixMilli(), 10)
	if err := s.store.Put(ctx, key, data); err != nil {
		return Snapshot{}, fmt.Errorf("backup: failed to write snapshot: %w", err)
	}
	if err := s.store.Put(ctx, latestKey, data); err != nil {
		return Snapshot{}, fmt.Errorf("backup: failed to update latest pointer: %w", err)
	}

	if err := s.enforceRetention(ctx); err != nil {
		// The snapshot itself is safely written; eviction can catch up on
		// the next run.
		log.Warn().Err(err).Msg("backup: snapshot retention cleanup failed")
	}

	return snap, nil
}

// enforceRetention deletes every snapshot slot beyond the cap, newest-first
// by key. Keys embed epoch millis, so the lexicographic sort of the
// equal-width decimal suffixes is chronological.
func (s *Service) enforceRetention(ctx context.Context) error {
	keys, err := s.store.Keys(ctx, snapshotPrefix)
	if err != nil {
		return err
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	for _, key := range keys[min(len(keys), s.maxSnapshots):] {
		if err := s.store.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// RestoreLatest returns the order list from the latest pointer slot, or
// ErrRestoreNotFound when no backup has ever been written.
func (s *Service) RestoreLatest(ctx context.Context) ([]order.Order, error) {
	snap, err := s.readSnapshot(ctx, latestKey)
	if err != nil {
		return nil, err
	}
	return snap.Orders, nil
}

// RestoreAt returns the order list from the snapshot written at the given
// instant (exact key match on epoch millis).
func (s *Service) RestoreAt(ctx context.Context, ts time.Time) ([]order.Order, error) {
	key := snapshotPrefix + strconv.FormatInt(ts.UnixMilli(), 10)
	snap, err := s.readSnapshot(ctx, key)
	if err != nil {
		return nil, err
	}
	return snap.Orders, nil
}

func (s *Service) readSnapshot(ctx context.Context, key string) (Snapshot, error) {
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Snapshot{}, ErrRestoreNotFound
		}
		return Snapshot{}, fmt.Errorf("backup: failed to read snapshot %s: %w", key, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("backup: failed to decode snapshot %s: %w", key, err)
	}
	order.NormalizeAll(snap.Orders)
	return snap, nil
}

// List returns all retained snapshots, newest first.
func (s *Service) List(ctx context.Context) ([]Snapshot, error) {
	keys, err := s.store.Keys(ctx, snapshotPrefix)
	if err != nil {
		return nil, fmt.Errorf("backup: failed to list snapshots: %w", err)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	snaps := make([]Snapshot, 0, len(keys))
	for _, key := range keys {
		snap, err := s.readSnapshot(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("backup: skipping unreadable snapshot")
			continue
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

// Stats summarizes the snapshot inventory.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	snaps, err := s.List(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Count: len(snaps)}
	for _, snap := range snaps {
		data, err := json.Marshal(snap)
		if err == nil {
			stats.TotalSize += len(data)
		}
	}
	if len(snaps) > 0 {
		latest := snaps[0].Timestamp
		oldest := snaps[len(snaps)-1].Timestamp
		stats.Latest = &latest
		stats.Oldest = &oldest
	}
	return stats, nil
}

// DeviceID returns the installation's opaque identifier, generating and
// persisting one on first use. It is backup metadata only, never a
// credential.
func (s *Service) DeviceID(ctx context.Context) (string, error) {
	data, err := s.store.Get(ctx, deviceIDKey)
	if err == nil {
		return string(data), nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("backup: failed to read device id: %w", err)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("backup: failed to generate device id: %w", err)
	}
	deviceID := "device_" + id.String()
	if err := s.store.Put(ctx, deviceIDKey, []byte(deviceID)); err != nil {
		return "", fmt.Errorf("backup: failed to persist device id: %w", err)
	}
	return deviceID, nil
}
