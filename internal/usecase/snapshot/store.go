package snapshot

import (
	"context"
	"encoding/json"
	"fmt"

	snapshotv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/snapshot/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/logger"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/redis"
)

// Store keeps the latest book snapshot of one pair in Redis.
type Store struct {
	pair        string
	logger      logger.Interface
	redisclient redis.Client
}

var _ snapshotv1.Store = (*Store)(nil)

// NewSnapshotStore creates a new Store for pair backed by redisclient.
func NewSnapshotStore(redisclient redis.Client, pair string, log logger.Interface) *Store {
	return &Store{
		pair:        pair,
		redisclient: redisclient,
		logger:      log,
	}
}

func (s *Store) key() string {
	return "snapshot:" + s.pair
}

// Store stores the snapshot in Redis.
func (s *Store) Store(ctx context.Context, snapshot *snapshotv1.Snapshot) error {
	if snapshot == nil {
		return errors.New(errors.InvalidInput, "snapshot", "snapshot is required")
	}

	buf, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.NewField("pair", s.pair), logger.NewField("action", "marshal snapshot"))
		return errors.NewTracer("snapshot_marshal_error").Wrap(err)
	}

	if err := s.redisclient.Set(ctx, s.key(), buf, 0); err != nil {
		s.logger.ErrorContext(ctx, err, logger.NewField("pair", s.pair), logger.NewField("action", "store snapshot"))
		return errors.NewTracer("snapshot_store_error").Wrap(err)
	}

	s.logger.InfoContext(ctx, fmt.Sprintf("Snapshot stored for pair %s", s.pair),
		logger.NewField("pair", s.pair),
		logger.NewField("offset", snapshot.OrderOffset),
		logger.NewField("orders", len(snapshot.Orders)),
	)
	return nil
}

// LoadStore loads the snapshot from Redis. It returns nil without error when
// none was stored.
func (s *Store) LoadStore(ctx context.Context) (*snapshotv1.Snapshot, error) {
	data, err := s.redisclient.Get(ctx, s.key())
	if err != nil {
		s.logger.ErrorContext(ctx, err, logger.NewField("pair", s.pair), logger.NewField("action", "load snapshot"))
		return nil, errors.NewTracer("snapshot_load_error").Wrap(err)
	}

	if data == "" {
		s.logger.WarnContext(ctx, fmt.Sprintf("No snapshot found for pair %s", s.pair), logger.NewField("pair", s.pair))
		return nil, nil
	}

	var snapshot snapshotv1.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		s.logger.ErrorContext(ctx, err, logger.NewField("pair", s.pair), logger.NewField("action", "unmarshal snapshot"))
		return nil, errors.NewTracer("snapshot_unmarshal_error").Wrap(err)
	}

	if snapshot.Pair != "" && snapshot.Pair != s.pair {
		return nil, errors.New(errors.InvalidInput, "pair",
			fmt.Sprintf("snapshot belongs to %s, store is %s", snapshot.Pair, s.pair))
	}

	return &snapshot, nil
}
