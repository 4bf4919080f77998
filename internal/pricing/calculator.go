// Package pricing estimates the price of a cabinet-door order.
//
// For every item the area in square meters is multiplied by quantity, the
// base price per square meter and the coefficient of the item's model; the
// order total is the sum of the line prices. Nothing is rounded here.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"dolapkapak/internal/domain"
)

var mmPerMeter = decimal.NewFromInt(1000)

// DefaultBasePrice is the price of one square meter in TL before the model coefficient.
var DefaultBasePrice = decimal.NewFromInt(2500)

// DefaultCoefficients returns a fresh copy of the standard coefficient table.
func DefaultCoefficients() map[domain.CabinetModel]decimal.Decimal {
	return map[domain.CabinetModel]decimal.Decimal{
		domain.ModelAlvicLuxe:    decimal.RequireFromString("1.5"),
		domain.ModelAlvicZenit:   decimal.RequireFromString("1.4"),
		domain.ModelAlvicSyncron: decimal.RequireFromString("1.2"),
		domain.ModelEgepres:      decimal.NewFromInt(1),
	}
}

type CalculatorInterface interface {
	ComputePrice(items []domain.OrderItem) (decimal.Decimal, error)
	LinePrice(item domain.OrderItem) (decimal.Decimal, error)
}

type Calculator struct {
	base         decimal.Decimal
	coefficients map[domain.CabinetModel]decimal.Decimal
}

// New copies the coefficient table so later edits by the caller cannot change
// prices already being computed.
func New(base decimal.Decimal, coefficients map[domain.CabinetModel]decimal.Decimal) *Calculator {
	table := make(map[domain.CabinetModel]decimal.Decimal, len(coefficients))
	for m, c := range coefficients {
		table[m] = c
	}
	return &Calculator{base: base, coefficients: table}
}

func NewDefault() *Calculator { return New(DefaultBasePrice, DefaultCoefficients()) }

// CheckComplete reports a ConfigurationError for the first model in
// domain.Models that has no coefficient.
func (c *Calculator) CheckComplete() error {
	for _, m := range domain.Models {
		if _, ok := c.coefficients[m]; !ok {
			return &domain.ConfigurationError{Model: m, Err: domain.ErrMissingCoefficient}
		}
	}
	return nil
}

func (c *Calculator) LinePrice(item domain.OrderItem) (decimal.Decimal, error) {
	coef, ok := c.coefficients[item.Model]
	if !ok {
		return decimal.Zero, &domain.ConfigurationError{Model: item.Model, Err: domain.ErrMissingCoefficient}
	}
	w := decimal.NewFromFloat(item.Width).Div(mmPerMeter)
	h := decimal.NewFromFloat(item.Height).Div(mmPerMeter)
	return w.Mul(h).
		Mul(decimal.NewFromInt(int64(item.Quantity))).
		Mul(c.base).
		Mul(coef), nil
}

// ComputePrice returns the total for items. An empty list costs zero.
func (c *Calculator) ComputePrice(items []domain.OrderItem) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, it := range items {
		line, err := c.LinePrice(it)
		if err != nil {
			return decimal.Zero, fmt.Errorf("item %d: %w", i, err)
		}
		total = total.Add(line)
	}
	return total, nil
}
