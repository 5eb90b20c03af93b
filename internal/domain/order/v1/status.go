package orderv1

import (
	"fmt"

	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/errors"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an order.
type Status string

const (
	// StatusOpen has no fills yet.
	StatusOpen Status = "OPEN"
	// StatusPartiallyFilled has some but not all quantity filled.
	StatusPartiallyFilled Status = "PARTIALLY_FILLED"
	// StatusFilled is terminal with the full quantity filled.
	StatusFilled Status = "FILLED"
	// StatusCanceled is terminal; Filled keeps whatever executed before.
	StatusCanceled Status = "CANCELED"
)

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s == StatusFilled || s == StatusCanceled
}

var transitions = map[Status]map[Status]bool{
	StatusOpen: {
		StatusPartiallyFilled: true,
		StatusFilled:          true,
		StatusCanceled:        true,
	},
	StatusPartiallyFilled: {
		StatusPartiallyFilled: true,
		StatusFilled:          true,
		StatusCanceled:        true,
	},
}

// CheckTransition validates moving o to status with filled. It returns noop=true
// for a repeated update to the same terminal state.
func CheckTransition(o *Order, status Status, filled decimal.Decimal) (noop bool, err error) {
	if o.Status.IsTerminal() {
		if status == o.Status && filled.Equal(o.Filled) {
			return true, nil
		}
		return false, errors.New(errors.InvalidTransition, "status",
			fmt.Sprintf("order %d is %s, cannot move to %s", o.ID, o.Status, status))
	}

	if !transitions[o.Status][status] {
		return false, errors.New(errors.InvalidTransition, "status",
			fmt.Sprintf("order %d cannot move from %s to %s", o.ID, o.Status, status))
	}

	if filled.IsNegative() || filled.GreaterThan(o.Quantity) {
		return false, errors.New(errors.InvalidFill, "filled",
			fmt.Sprintf("order %d fill %s outside 0..%s", o.ID, filled, o.Quantity))
	}
	if filled.LessThan(o.Filled) {
		return false, errors.New(errors.InvalidFill, "filled",
			fmt.Sprintf("order %d fill cannot decrease from %s to %s", o.ID, o.Filled, filled))
	}

	switch status {
	case StatusPartiallyFilled:
		if !filled.IsPositive() || filled.Equal(o.Quantity) {
			return false, errors.New(errors.InvalidFill, "filled",
				fmt.Sprintf("order %d partial fill must be within (0, %s)", o.ID, o.Quantity))
		}
		if o.Status == StatusPartiallyFilled && !filled.GreaterThan(o.Filled) {
			return false, errors.New(errors.InvalidTransition, "filled",
				fmt.Sprintf("order %d partial fill must increase", o.ID))
		}
	case StatusFilled:
		if !filled.Equal(o.Quantity) {
			return false, errors.New(errors.InvalidFill, "filled",
				fmt.Sprintf("order %d filled status requires fill %s", o.ID, o.Quantity))
		}
	}

	return false, nil
}
