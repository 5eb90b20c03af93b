package settlement

import (
	"context"
	"fmt"
	"sync"

	settlementv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/settlement/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/undo"
)

type recordKey struct {
	taker, maker uint64
}

// MemoryProcessed keeps processed records in memory.
type MemoryProcessed struct {
	mu   sync.RWMutex
	done map[recordKey]struct{}
}

var _ settlementv1.ProcessedStore = (*MemoryProcessed)(nil)

// NewMemoryProcessed creates an empty MemoryProcessed.
func NewMemoryProcessed() *MemoryProcessed {
	return &MemoryProcessed{done: make(map[recordKey]struct{})}
}

// IsProcessed reports whether the pair was marked.
func (m *MemoryProcessed) IsProcessed(_ context.Context, takerID, makerID uint64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.done[recordKey{takerID, makerID}]
	return ok, nil
}

// MarkProcessed marks the pair and records the unmark in the undo log.
func (m *MemoryProcessed) MarkProcessed(ctx context.Context, takerID, makerID uint64) error {
	key := recordKey{takerID, makerID}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.done[key]; ok {
		return fmt.Errorf("%w: %d/%d", settlementv1.ErrAlreadyProcessed, takerID, makerID)
	}
	m.done[key] = struct{}{}

	undo.Record(ctx, func() {
		m.mu.Lock()
		delete(m.done, key)
		m.mu.Unlock()
	})
	return nil
}
