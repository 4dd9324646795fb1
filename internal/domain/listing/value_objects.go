package listing

import (
	"errors"
	"strings"
)

var (
	ErrNonPositiveQuantity = errors.New("quantity must be positive")
	ErrMissingUnit         = errors.New("quantity unit is required")
)

// Quantity is a positive amount tagged with the unit the provider posted
// it in (kg, items, servings, ...). All claims against a listing are
// expressed in the listing's unit.
type Quantity struct {
	amount float64
	unit   string
}

func NewQuantity(amount float64, unit string) (Quantity, error) {
	if amount <= 0 {
		return Quantity{}, ErrNonPositiveQuantity
	}
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "" {
		return Quantity{}, ErrMissingUnit
	}
	return Quantity{amount: amount, unit: u}, nil
}

func (q Quantity) Amount() float64 { return q.amount }
func (q Quantity) Unit() string    { return q.unit }
