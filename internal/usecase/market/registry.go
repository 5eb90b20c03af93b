package market

import (
	"fmt"
	"sort"
	"sync"

	marketv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/market/v1"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
)

// Registry is the in-memory set of supported pairs.
type Registry struct {
	mu    sync.RWMutex
	pairs map[string]marketv1.Pair
}

var _ marketv1.Registry = (*Registry)(nil)

// NewRegistry creates a registry preloaded with pairs.
func NewRegistry(pairs ...marketv1.Pair) (*Registry, error) {
	r := &Registry{pairs: make(map[string]marketv1.Pair)}
	for _, p := range pairs {
		if err := r.Add(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add registers pair. Re-registering a symbol fails.
func (r *Registry) Add(pair marketv1.Pair) error {
	if err := pair.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pairs[pair.Symbol()]; ok {
		return errors.New(errors.InvalidInput, "pair", fmt.Sprintf("pair %s already supported", pair.Symbol()))
	}
	r.pairs[pair.Symbol()] = pair
	return nil
}

// Get returns the pair registered under symbol.
func (r *Registry) Get(symbol string) (marketv1.Pair, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pairs[symbol]
	return p, ok
}

// List returns every pair ordered by symbol.
func (r *Registry) List() []marketv1.Pair {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]marketv1.Pair, 0, len(r.pairs))
	for _, p := range r.pairs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol() < out[j].Symbol() })
	return out
}
