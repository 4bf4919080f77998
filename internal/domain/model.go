package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type CabinetModel string

const (
	ModelAlvicLuxe    CabinetModel = "ALVIC_LUXE"
	ModelAlvicZenit   CabinetModel = "ALVIC_ZENIT"
	ModelAlvicSyncron CabinetModel = "ALVIC_SYNCRON"
	ModelEgepres      CabinetModel = "EGEPRES"
)

// Models lists every cabinet model in display order.
var Models = []CabinetModel{ModelAlvicLuxe, ModelAlvicZenit, ModelAlvicSyncron, ModelEgepres}

var modelNames = map[CabinetModel]string{
	ModelAlvicLuxe:    "Alvic Luxe (High Gloss)",
	ModelAlvicZenit:   "Alvic Zenit (Super Matt)",
	ModelAlvicSyncron: "Alvic Syncron (Textured)",
	ModelEgepres:      "Egepres (Standard)",
}

func (m CabinetModel) Valid() bool { _, ok := modelNames[m]; return ok }

func (m CabinetModel) DisplayName() string {
	if n, ok := modelNames[m]; ok {
		return n
	}
	return string(m)
}

type SurfaceColor string

const (
	ColorGlossyWhite    SurfaceColor = "GLOSSY_WHITE"
	ColorMatteBlack     SurfaceColor = "MATTE_BLACK"
	ColorWoodGrain      SurfaceColor = "WOOD_GRAIN"
	ColorAnthraciteGray SurfaceColor = "ANTHRACITE_GRAY"
)

// Colors lists every surface color in display order.
var Colors = []SurfaceColor{ColorGlossyWhite, ColorMatteBlack, ColorWoodGrain, ColorAnthraciteGray}

var colorNames = map[SurfaceColor]string{
	ColorGlossyWhite:    "Parlak Beyaz",
	ColorMatteBlack:     "Mat Siyah",
	ColorWoodGrain:      "Ahşap Dokulu",
	ColorAnthraciteGray: "Antrasit Gri",
}

func (c SurfaceColor) Valid() bool { _, ok := colorNames[c]; return ok }

func (c SurfaceColor) DisplayName() string {
	if n, ok := colorNames[c]; ok {
		return n
	}
	return string(c)
}

type Status string

const (
	StatusPending      Status = "Pending"
	StatusInProduction Status = "In Production"
	StatusCompleted    Status = "Completed"
	StatusShipped      Status = "Shipped"
)

var statusLabels = map[Status]string{
	StatusPending:      "Beklemede",
	StatusInProduction: "Üretimde",
	StatusCompleted:    "Tamamlandı",
	StatusShipped:      "Kargolandı",
}

// Label is the customer-facing status text.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

type Session struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FileRef is an uploaded file as handed over by the attachment collaborator.
// Reference is opaque and passed through unchanged.
type FileRef struct {
	Name      string `json:"name"`
	Reference string `json:"reference"`
}

// DraftItem is an item as entered on the composition form, before it is staged.
type DraftItem struct {
	Width    float64      `json:"width"`
	Height   float64      `json:"height"`
	Quantity int          `json:"quantity"`
	Model    CabinetModel `json:"model"`
	Color    SurfaceColor `json:"color"`
	Notes    string       `json:"notes,omitempty"`
}

// NewDraftItem returns the form defaults: no dimensions, one piece, first model and color.
func NewDraftItem() DraftItem {
	return DraftItem{Quantity: 1, Model: Models[0], Color: Colors[0]}
}

type OrderItem struct {
	ID       string       `json:"id"`
	Width    float64      `json:"width"`  // mm
	Height   float64      `json:"height"` // mm
	Quantity int          `json:"quantity"`
	Model    CabinetModel `json:"model"`
	Color    SurfaceColor `json:"color"`
	Notes    string       `json:"notes,omitempty"`
}

// PendingOrder is a priced draft waiting for confirmation.
type PendingOrder struct {
	Items       []OrderItem     `json:"items"`
	Price       decimal.Decimal `json:"price"`
	Address     string          `json:"address,omitempty"`
	BillingInfo string          `json:"billing_info,omitempty"`
	File        *FileRef        `json:"file,omitempty"`
}

func (p *PendingOrder) TotalQuantity() int {
	n := 0
	for _, it := range p.Items {
		n += it.Quantity
	}
	return n
}

type Order struct {
	OrderID        string          `json:"order_id"`
	TrackingNumber string          `json:"tracking_number"`
	OwnerEmail     string          `json:"owner_email"`
	Items          []OrderItem     `json:"items"`
	Status         Status          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	Price          decimal.Decimal `json:"price"`
	Address        string          `json:"address,omitempty"`
	BillingInfo    string          `json:"billing_info,omitempty"`
	File           *FileRef        `json:"file,omitempty"`
}

// Clone returns a copy that shares no items or file with o.
func (o Order) Clone() Order {
	c := o
	c.Items = append([]OrderItem(nil), o.Items...)
	if o.File != nil {
		f := *o.File
		c.File = &f
	}
	return c
}
