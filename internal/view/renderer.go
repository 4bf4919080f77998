// Package view projects workflow state into the screen a client draws.
// It keeps no state of its own.
package view

import (
	"time"

	"github.com/shopspring/decimal"

	"dolapkapak/internal/domain"
	"dolapkapak/internal/workflow"
)

const (
	ScreenLoading = "loading"
	ScreenLogin   = "login"
	ScreenCompose = "compose"
	ScreenHistory = "history"

	OverlaySummary      = "summary"
	OverlayDocs         = "docs"
	OverlayConfirmation = "confirmation"
)

const campaignBanner = "Alvic Zenit serisinde %15 indirim!"

type Screen struct {
	Screen   string       `json:"screen"`
	Overlays []string     `json:"overlays"`
	User     *UserView    `json:"user,omitempty"`
	Banner   string       `json:"banner,omitempty"`
	Notice   string       `json:"notice,omitempty"`
	Error    string       `json:"error,omitempty"`
	Compose  *ComposeView `json:"compose,omitempty"`
	Summary  *SummaryView `json:"summary,omitempty"`
	History  []OrderView  `json:"history,omitempty"`
}

// HasOverlay reports whether name is among the open overlays.
func (s Screen) HasOverlay(name string) bool {
	for _, o := range s.Overlays {
		if o == name {
			return true
		}
	}
	return false
}

type UserView struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ItemView struct {
	ID         string  `json:"id"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Dimensions string  `json:"dimensions"`
	Quantity   int     `json:"quantity"`
	Model      string  `json:"model"`
	ModelName  string  `json:"model_name"`
	Color      string  `json:"color"`
	ColorName  string  `json:"color_name"`
	Notes      string  `json:"notes,omitempty"`
}

type ComposeView struct {
	Items       []ItemView       `json:"items"`
	Address     string           `json:"address,omitempty"`
	BillingInfo string           `json:"billing_info,omitempty"`
	File        *domain.FileRef  `json:"file,omitempty"`
	Defaults    domain.DraftItem `json:"defaults"`
	Error       string           `json:"error,omitempty"`
}

type SummaryView struct {
	Items         []ItemView      `json:"items"`
	TotalQuantity int             `json:"total_quantity"`
	Price         decimal.Decimal `json:"price"`
	PriceText     string          `json:"price_text"`
	Address       string          `json:"address,omitempty"`
	BillingInfo   string          `json:"billing_info,omitempty"`
	File          *domain.FileRef `json:"file,omitempty"`
}

type OrderView struct {
	OrderID        string          `json:"order_id"`
	TrackingNumber string          `json:"tracking_number"`
	Date           string          `json:"date"`
	CreatedAt      time.Time       `json:"created_at"`
	Status         domain.Status   `json:"status"`
	StatusLabel    string          `json:"status_label"`
	Price          decimal.Decimal `json:"price"`
	PriceText      string          `json:"price_text"`
	Items          []ItemView      `json:"items"`
	Address        string          `json:"address,omitempty"`
	BillingInfo    string          `json:"billing_info,omitempty"`
	File           *domain.FileRef `json:"file,omitempty"`
}

type Renderer struct {
	loc *time.Location
}

// NewRenderer formats dates in loc, Istanbul when nil.
func NewRenderer(loc *time.Location) *Renderer {
	if loc == nil {
		loc = Istanbul
	}
	return &Renderer{loc: loc}
}

func (r *Renderer) Render(s workflow.State) Screen {
	out := Screen{Overlays: []string{}}

	switch s.Primary {
	case workflow.Loading:
		out.Screen = ScreenLoading
	case workflow.LoggedOut:
		out.Screen = ScreenLogin
		out.Error = s.Validation
	case workflow.History:
		out.Screen = ScreenHistory
	default:
		// the summary is drawn over the composition view
		out.Screen = ScreenCompose
	}

	if s.Session != nil {
		out.User = &UserView{Name: s.Session.Name, Email: s.Session.Email}
		if s.BannerVisible {
			out.Banner = campaignBanner
		}
	}
	out.Notice = s.Notice

	if s.Primary == workflow.Composing || s.Primary == workflow.Summarizing {
		out.Compose = &ComposeView{
			Items:       itemViews(s.Draft.Items),
			Address:     s.Draft.Address,
			BillingInfo: s.Draft.BillingInfo,
			File:        s.Draft.File,
			Defaults:    domain.NewDraftItem(),
			Error:       s.Validation,
		}
	}
	if s.Primary == workflow.Summarizing && s.Pending != nil {
		out.Summary = summaryView(s.Pending)
		out.Overlays = append(out.Overlays, OverlaySummary)
	}
	if s.Primary == workflow.History {
		out.History = make([]OrderView, 0, len(s.History))
		for _, o := range s.History {
			out.History = append(out.History, r.orderView(o))
		}
	}

	if s.DocsOpen {
		out.Overlays = append(out.Overlays, OverlayDocs)
	}
	if s.ConfirmationAnimating {
		out.Overlays = append(out.Overlays, OverlayConfirmation)
	}
	return out
}

func summaryView(p *domain.PendingOrder) *SummaryView {
	return &SummaryView{
		Items:         itemViews(p.Items),
		TotalQuantity: p.TotalQuantity(),
		Price:         p.Price,
		PriceText:     Currency(p.Price),
		Address:       p.Address,
		BillingInfo:   p.BillingInfo,
		File:          p.File,
	}
}

func (r *Renderer) orderView(o domain.Order) OrderView {
	return OrderView{
		OrderID:        o.OrderID,
		TrackingNumber: o.TrackingNumber,
		Date:           Date(o.CreatedAt, r.loc),
		CreatedAt:      o.CreatedAt,
		Status:         o.Status,
		StatusLabel:    o.Status.Label(),
		Price:          o.Price,
		PriceText:      Currency(o.Price),
		Items:          itemViews(o.Items),
		Address:        o.Address,
		BillingInfo:    o.BillingInfo,
		File:           o.File,
	}
}

func itemViews(items []domain.OrderItem) []ItemView {
	out := make([]ItemView, 0, len(items))
	for _, it := range items {
		out = append(out, ItemView{
			ID:         it.ID,
			Width:      it.Width,
			Height:     it.Height,
			Dimensions: Millimetres(it.Width) + "x" + Millimetres(it.Height) + "mm",
			Quantity:   it.Quantity,
			Model:      string(it.Model),
			ModelName:  it.Model.DisplayName(),
			Color:      string(it.Color),
			ColorName:  it.Color.DisplayName(),
			Notes:      it.Notes,
		})
	}
	return out
}
