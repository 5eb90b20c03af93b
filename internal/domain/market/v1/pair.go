package marketv1

import (
	"fmt"
	"strings"

	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
)

// MaxBaseDecimals bounds the base token scale.
const MaxBaseDecimals = 36

var (
	// ErrInvalidPair is returned for malformed or duplicate pairs.
	ErrInvalidPair = errors.New(errors.InvalidInput, "pair", "invalid trading pair")
	// ErrUnsupportedPair is returned when a pair has not been registered.
	ErrUnsupportedPair = errors.New(errors.InvalidInput, "pair", "unsupported trading pair")
)

// Pair is a tradable base/quote token pair.
type Pair struct {
	Base         string `json:"base"`
	Quote        string `json:"quote"`
	BaseDecimals int32  `json:"baseDecimals"`
}

// NewPair creates a validated Pair.
func NewPair(base, quote string, baseDecimals int32) (Pair, error) {
	p := Pair{
		Base:         strings.TrimSpace(base),
		Quote:        strings.TrimSpace(quote),
		BaseDecimals: baseDecimals,
	}
	return p, p.Validate()
}

// Symbol returns the BASE/QUOTE key of the pair.
func (p Pair) Symbol() string {
	return Symbol(p.Base, p.Quote)
}

// Symbol builds the registry key of a base/quote pair.
func Symbol(base, quote string) string {
	return base + "/" + quote
}

// Validate checks token identifiers and the decimal scale.
func (p Pair) Validate() error {
	switch {
	case p.Base == "" || p.Quote == "":
		return errors.New(errors.InvalidInput, "pair", "base and quote tokens are required")
	case p.Base == p.Quote:
		return errors.New(errors.InvalidInput, "pair", fmt.Sprintf("base and quote must differ, got %s", p.Base))
	case strings.Contains(p.Base, "/") || strings.Contains(p.Quote, "/"):
		return errors.New(errors.InvalidInput, "pair", "token identifiers cannot contain '/'")
	case p.BaseDecimals < 0 || p.BaseDecimals > MaxBaseDecimals:
		return errors.New(errors.InvalidInput, "baseDecimals", fmt.Sprintf("base decimals must be within 0..%d", MaxBaseDecimals))
	}
	return nil
}

// Registry resolves supported pairs.
//
//go:generate mockgen -source pair.go -destination=mock/pair_mock.go -package=marketv1_mock
type Registry interface {
	Add(pair Pair) error
	Get(symbol string) (Pair, bool)
	List() []Pair
}
