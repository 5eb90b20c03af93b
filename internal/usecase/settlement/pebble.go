package settlement

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/pebble"
	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
	settlementv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/settlement/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/logger"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/undo"
)

const processedPrefix = "settled/"

// PebbleConfig locates the processed journal on disk.
type PebbleConfig struct {
	Dir string `env:"DIR" envDefault:"data/settled"`
}

// PebbleProcessed keeps processed records in a pebble store so a restart
// never settles a record twice.
type PebbleProcessed struct {
	db     *pebble.DB
	logger logger.Interface
}

var (
	_ settlementv1.ProcessedStore = (*PebbleProcessed)(nil)
	_ orderv1.IDSource            = (*PebbleProcessed)(nil)
)

// OpenPebbleProcessed opens or creates the journal at cfg.Dir.
func OpenPebbleProcessed(cfg PebbleConfig, log logger.Interface) (*PebbleProcessed, error) {
	return OpenPebbleProcessedWithOptions(cfg.Dir, &pebble.Options{}, log)
}

// OpenPebbleProcessedWithOptions opens the journal with explicit pebble options.
func OpenPebbleProcessedWithOptions(dir string, opts *pebble.Options, log logger.Interface) (*PebbleProcessed, error) {
	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, errors.NewTracer("open processed journal").Wrap(err)
	}
	return &PebbleProcessed{db: db, logger: log}, nil
}

// Close flushes and closes the store.
func (p *PebbleProcessed) Close() error {
	return p.db.Close()
}

// IsProcessed reports whether the pair was marked.
func (p *PebbleProcessed) IsProcessed(_ context.Context, takerID, makerID uint64) (bool, error) {
	_, closer, err := p.db.Get(processedKey(takerID, makerID))
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	_ = closer.Close()
	return true, nil
}

// MarkProcessed writes the pair with a synced write. A rollback of the unit
// deletes it again.
func (p *PebbleProcessed) MarkProcessed(ctx context.Context, takerID, makerID uint64) error {
	done, err := p.IsProcessed(ctx, takerID, makerID)
	if err != nil {
		return err
	}
	if done {
		return fmt.Errorf("%w: %d/%d", settlementv1.ErrAlreadyProcessed, takerID, makerID)
	}

	key := processedKey(takerID, makerID)
	if err := p.db.Set(key, []byte{1}, pebble.Sync); err != nil {
		return err
	}

	undo.Record(ctx, func() {
		if err := p.db.Delete(key, pebble.Sync); err != nil {
			p.logger.Error(errors.TracerFromError(err), logger.NewField("key", string(key)), logger.NewField("action", "undo_mark_processed"))
		}
	})
	return nil
}

// Count returns the number of processed records.
func (p *PebbleProcessed) Count() (int, error) {
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(processedPrefix),
		UpperBound: []byte(processedPrefix + "~"),
	})
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	n := 0
	for iter.First(); iter.Valid(); iter.Next() {
		n++
	}
	return n, iter.Error()
}

// MaxID returns the highest taker id in the journal. Makers always carry a
// lower id than their taker, so this is the highest settled order id.
func (p *PebbleProcessed) MaxID(_ context.Context) (uint64, error) {
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(processedPrefix),
		UpperBound: []byte(processedPrefix + "~"),
	})
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	if !iter.Last() {
		return 0, iter.Error()
	}
	return parseTakerID(iter.Key())
}

func parseTakerID(key []byte) (uint64, error) {
	rest := strings.TrimPrefix(string(key), processedPrefix)
	taker, _, ok := strings.Cut(rest, "/")
	if !ok {
		return 0, fmt.Errorf("malformed processed key %q", key)
	}
	return strconv.ParseUint(taker, 10, 64)
}

func processedKey(takerID, makerID uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d/%020d", processedPrefix, takerID, makerID))
}
