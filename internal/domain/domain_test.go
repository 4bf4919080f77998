package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDisplayNames(t *testing.T) {
	assert.Equal(t, "Alvic Zenit (Super Matt)", ModelAlvicZenit.DisplayName())
	assert.Equal(t, "Ahşap Dokulu", ColorWoodGrain.DisplayName())
	assert.Equal(t, "OAK", CabinetModel("OAK").DisplayName())
	assert.False(t, CabinetModel("OAK").Valid())
	assert.False(t, SurfaceColor("").Valid())

	for _, m := range Models {
		assert.True(t, m.Valid(), m)
	}
	for _, c := range Colors {
		assert.True(t, c.Valid(), c)
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusPending, "Beklemede"},
		{StatusInProduction, "Üretimde"},
		{StatusCompleted, "Tamamlandı"},
		{StatusShipped, "Kargolandı"},
		{Status("Lost"), "Lost"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.status.Label())
	}
}

func TestNewDraftItem(t *testing.T) {
	d := NewDraftItem()
	assert.Zero(t, d.Width)
	assert.Zero(t, d.Height)
	assert.Equal(t, 1, d.Quantity)
	assert.Equal(t, ModelAlvicLuxe, d.Model)
	assert.Equal(t, ColorGlossyWhite, d.Color)
}

func TestAddItemRequestToDraft(t *testing.T) {
	r := AddItemRequest{Width: 600, Height: 720, Quantity: 2, Model: "EGEPRES", Color: "MATTE_BLACK", Notes: "  kulpsuz \n"}
	d := r.ToDraft()
	assert.Equal(t, ModelEgepres, d.Model)
	assert.Equal(t, ColorMatteBlack, d.Color)
	assert.Equal(t, "kulpsuz", d.Notes)
}

func TestOrderClone(t *testing.T) {
	o := Order{OrderID: "ORD-1", Items: []OrderItem{{ID: "item-1", Width: 600}}, File: &FileRef{Name: "plan.pdf"}}
	c := o.Clone()
	c.Items[0].Width = 1
	c.File.Name = "other.pdf"

	assert.Equal(t, float64(600), o.Items[0].Width)
	assert.Equal(t, "plan.pdf", o.File.Name)
	assert.Nil(t, Order{}.Clone().File)
}

func TestTotalQuantity(t *testing.T) {
	p := PendingOrder{Items: []OrderItem{{Quantity: 4}, {Quantity: 2}}, Price: decimal.Zero}
	assert.Equal(t, 6, p.TotalQuantity())
}

func TestErrorKinds(t *testing.T) {
	ve := fmt.Errorf("add: %w", NewValidation("width", ErrMsgDimensionsPositive))
	assert.True(t, IsValidation(ve))
	assert.False(t, IsConfiguration(ve))

	ce := fmt.Errorf("price: %w", &ConfigurationError{Model: ModelEgepres, Err: ErrMissingCoefficient})
	assert.True(t, IsConfiguration(ce))
	assert.False(t, IsValidation(ce))
	assert.True(t, errors.Is(ce, ErrMissingCoefficient))
	assert.Contains(t, ce.Error(), "EGEPRES")

	assert.False(t, IsValidation(nil))
}
