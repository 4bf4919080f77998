package view

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dolapkapak/internal/domain"
	"dolapkapak/internal/workflow"
)

func samplePending() domain.PendingOrder {
	return domain.PendingOrder{
		Items: []domain.OrderItem{
			{ID: "item-1", Width: 600, Height: 720, Quantity: 4, Model: domain.ModelAlvicLuxe, Color: domain.ColorGlossyWhite},
			{ID: "item-2", Width: 450.5, Height: 720, Quantity: 2, Model: domain.ModelAlvicZenit, Color: domain.ColorMatteBlack},
		},
		Price:   decimal.NewFromInt(3888),
		Address: "Kadıköy",
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		name string
		in   decimal.Decimal
		want string
	}{
		{name: "thousands", in: decimal.NewFromInt(3888), want: "₺3.888,00"},
		{name: "fraction", in: decimal.RequireFromString("2268.5"), want: "₺2.268,50"},
		{name: "zero", in: decimal.Zero, want: "₺0,00"},
		{name: "small", in: decimal.NewFromInt(12), want: "₺12,00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Currency(tt.in))
		})
	}
}

func TestDate(t *testing.T) {
	// 22:30 UTC is already the next day in Istanbul
	at := time.Date(2024, 5, 9, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, "10.05.2024", Date(at, Istanbul))
	assert.Equal(t, "09.05.2024", Date(at, time.UTC))
}

func TestShareText(t *testing.T) {
	want := "*Yeni DolapKapak Siparişi Özeti*\n\n" +
		"- 4 adet 600x720mm Alvic Luxe (High Gloss) (Parlak Beyaz)\n" +
		"- 2 adet 450.5x720mm Alvic Zenit (Super Matt) (Mat Siyah)" +
		"\n\n*Yaklaşık Fiyat:* ₺3.888,00" +
		"\n\nBu sipariş DolapKapak uygulaması üzerinden oluşturulmuştur."
	assert.Equal(t, want, ShareText(samplePending()))
}

func TestNewShare(t *testing.T) {
	s := NewShare(samplePending())
	require.True(t, strings.HasPrefix(s.URL, shareBaseURL))
	assert.NotContains(t, s.URL, "+")
	assert.NotContains(t, s.URL, " ")

	decoded, err := url.QueryUnescape(strings.TrimPrefix(s.URL, shareBaseURL))
	require.NoError(t, err)
	assert.Equal(t, s.Text, decoded)
}

func TestCatalog(t *testing.T) {
	c := NewCatalog()
	require.Len(t, c.Models, 4)
	require.Len(t, c.Colors, 4)
	assert.Equal(t, "ALVIC_LUXE", c.Models[0].Key)
	assert.Equal(t, "Alvic Luxe (High Gloss)", c.Models[0].Name)
	assert.Equal(t, "Antrasit Gri", c.Colors[3].Name)
	for _, o := range append(c.Models, c.Colors...) {
		assert.NotEmpty(t, o.ImageURL, o.Key)
	}
}

func TestRender(t *testing.T) {
	r := NewRenderer(nil)
	session := &domain.Session{Name: "Fırat", Email: "firat@antkap.com.tr"}
	pending := samplePending()

	tests := []struct {
		name     string
		state    workflow.State
		screen   string
		overlays []string
	}{
		{name: "booting", state: workflow.State{Primary: workflow.Loading}, screen: ScreenLoading, overlays: []string{}},
		{name: "loggedOut", state: workflow.State{Primary: workflow.LoggedOut}, screen: ScreenLogin, overlays: []string{}},
		{name: "composing", state: workflow.State{Primary: workflow.Composing, Session: session}, screen: ScreenCompose, overlays: []string{}},
		{
			name:     "summarizingWithDocs",
			state:    workflow.State{Primary: workflow.Summarizing, Session: session, Pending: &pending, DocsOpen: true},
			screen:   ScreenCompose,
			overlays: []string{OverlaySummary, OverlayDocs},
		},
		{
			name:     "animating",
			state:    workflow.State{Primary: workflow.Summarizing, Session: session, ConfirmationAnimating: true},
			screen:   ScreenCompose,
			overlays: []string{OverlayConfirmation},
		},
		{name: "history", state: workflow.State{Primary: workflow.History, Session: session}, screen: ScreenHistory, overlays: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Render(tt.state)
			assert.Equal(t, tt.screen, got.Screen)
			assert.Equal(t, tt.overlays, got.Overlays)
		})
	}
}

func TestRenderSummaryAndHistory(t *testing.T) {
	r := NewRenderer(time.UTC)
	session := &domain.Session{Name: "Fırat", Email: "firat@antkap.com.tr"}
	pending := samplePending()

	got := r.Render(workflow.State{Primary: workflow.Summarizing, Session: session, Pending: &pending, BannerVisible: true})
	require.NotNil(t, got.Summary)
	assert.Equal(t, 6, got.Summary.TotalQuantity)
	assert.Equal(t, "₺3.888,00", got.Summary.PriceText)
	assert.Equal(t, "450.5x720mm", got.Summary.Items[1].Dimensions)
	assert.Equal(t, campaignBanner, got.Banner)
	require.NotNil(t, got.User)
	assert.Equal(t, "Fırat", got.User.Name)

	order := domain.Order{
		OrderID:   "ORD-1",
		Status:    domain.StatusShipped,
		CreatedAt: time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC),
		Price:     decimal.NewFromInt(2268),
		Items:     pending.Items,
	}
	got = r.Render(workflow.State{Primary: workflow.History, Session: session, History: []domain.Order{order}, Notice: "ok"})
	require.Len(t, got.History, 1)
	assert.Equal(t, "10.05.2024", got.History[0].Date)
	assert.Equal(t, "Kargolandı", got.History[0].StatusLabel)
	assert.Equal(t, "₺2.268,00", got.History[0].PriceText)
	assert.Equal(t, "ok", got.Notice)
	assert.Empty(t, got.Banner)
	assert.Nil(t, got.Compose)
}
