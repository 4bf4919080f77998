package domain

import "strings"

type AddItemRequest struct {
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Quantity int     `json:"quantity"`
	Model    string  `json:"model" validate:"required,oneof=ALVIC_LUXE ALVIC_ZENIT ALVIC_SYNCRON EGEPRES"`
	Color    string  `json:"color" validate:"required,oneof=GLOSSY_WHITE MATTE_BLACK WOOD_GRAIN ANTHRACITE_GRAY"`
	Notes    string  `json:"notes" validate:"max=500"`
}

type DetailsRequest struct {
	Address     string `json:"address" validate:"max=1000"`
	BillingInfo string `json:"billing_info" validate:"max=1000"`
}

type AttachFileRequest struct {
	Name      string `json:"name" validate:"required"`
	Reference string `json:"reference" validate:"required"`
}

// ToDraft maps the request onto a draft item. Positivity is checked by the
// staging store, not here.
func (r AddItemRequest) ToDraft() DraftItem {
	return DraftItem{
		Width:    r.Width,
		Height:   r.Height,
		Quantity: r.Quantity,
		Model:    CabinetModel(r.Model),
		Color:    SurfaceColor(r.Color),
		Notes:    strings.TrimSpace(r.Notes),
	}
}

func (r AttachFileRequest) ToFileRef() FileRef {
	return FileRef{Name: r.Name, Reference: r.Reference}
}
