package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dolapkapak/internal/domain"
)

func item(w, h float64, q int, m domain.CabinetModel) domain.OrderItem {
	return domain.OrderItem{ID: "x", Width: w, Height: h, Quantity: q, Model: m, Color: domain.ColorGlossyWhite}
}

func TestComputePriceEmpty(t *testing.T) {
	got, err := NewDefault().ComputePrice(nil)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = NewDefault().ComputePrice([]domain.OrderItem{})
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestLinePrice(t *testing.T) {
	tests := []struct {
		name string
		item domain.OrderItem
		want string
	}{
		{
			name: "alvicLuxe",
			item: item(600, 720, 4, domain.ModelAlvicLuxe),
			want: "6480",
		},
		{
			name: "alvicZenit",
			item: item(450, 720, 2, domain.ModelAlvicZenit),
			want: "2268",
		},
		{
			name: "alvicSyncron",
			item: item(1000, 1000, 1, domain.ModelAlvicSyncron),
			want: "3000",
		},
		{
			name: "egepres",
			item: item(800, 400, 5, domain.ModelEgepres),
			want: "4000",
		},
	}

	calc := NewDefault()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.LinePrice(tt.item)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestComputePriceIsLinear(t *testing.T) {
	calc := NewDefault()
	a := []domain.OrderItem{
		item(600, 720, 4, domain.ModelAlvicLuxe),
		item(450, 720, 2, domain.ModelAlvicZenit),
	}
	b := []domain.OrderItem{
		item(800, 400, 5, domain.ModelEgepres),
		item(333, 517, 3, domain.ModelAlvicSyncron),
	}

	pa, err := calc.ComputePrice(a)
	require.NoError(t, err)
	pb, err := calc.ComputePrice(b)
	require.NoError(t, err)
	both, err := calc.ComputePrice(append(append([]domain.OrderItem{}, a...), b...))
	require.NoError(t, err)

	assert.True(t, both.Equal(pa.Add(pb)), "got %s want %s", both, pa.Add(pb))
	assert.True(t, pa.Equal(decimal.NewFromInt(8748)))
}

func TestComputePriceMissingCoefficient(t *testing.T) {
	coefs := DefaultCoefficients()
	delete(coefs, domain.ModelEgepres)
	calc := New(DefaultBasePrice, coefs)

	_, err := calc.ComputePrice([]domain.OrderItem{
		item(600, 720, 1, domain.ModelAlvicLuxe),
		item(600, 720, 1, domain.ModelEgepres),
	})
	require.Error(t, err)
	assert.True(t, domain.IsConfiguration(err))
	assert.ErrorIs(t, err, domain.ErrMissingCoefficient)

	assert.Error(t, calc.CheckComplete())
	assert.NoError(t, NewDefault().CheckComplete())
}

func TestNewCopiesTable(t *testing.T) {
	coefs := DefaultCoefficients()
	calc := New(DefaultBasePrice, coefs)
	coefs[domain.ModelAlvicLuxe] = decimal.NewFromInt(100)

	got, err := calc.LinePrice(item(1000, 1000, 1, domain.ModelAlvicLuxe))
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(3750)))
}
