package view

import "dolapkapak/internal/domain"

var modelImages = map[domain.CabinetModel]string{
	domain.ModelAlvicLuxe:    "https://images.unsplash.com/photo-1583847268964-b28dc8f51f92?q=80&w=800&auto=format&fit=crop",
	domain.ModelAlvicZenit:   "https://images.unsplash.com/photo-1598262498246-9b88adaf4949?q=80&w=800&auto=format&fit=crop",
	domain.ModelAlvicSyncron: "https://images.unsplash.com/photo-1616046229478-9901c5536a45?q=80&w=800&auto=format&fit=crop",
	domain.ModelEgepres:      "https://images.unsplash.com/photo-1618220179428-22790b461013?q=80&w=800&auto=format&fit=crop",
}

var colorSwatches = map[domain.SurfaceColor]string{
	domain.ColorGlossyWhite:    "https://images.unsplash.com/photo-1588412213870-c83d6517e4f3?q=80&w=200&auto=format&fit=crop",
	domain.ColorMatteBlack:     "https://images.unsplash.com/photo-1561053915-f55138d585d7?q=80&w=200&auto=format&fit=crop",
	domain.ColorWoodGrain:      "https://images.unsplash.com/photo-1568208447883-8a30138d827a?q=80&w=200&auto=format&fit=crop",
	domain.ColorAnthraciteGray: "https://images.unsplash.com/photo-1533628635777-112b2239b1c7?q=80&w=200&auto=format&fit=crop",
}

type Option struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

type Catalog struct {
	Models []Option `json:"models"`
	Colors []Option `json:"colors"`
}

// NewCatalog lists models and colors in display order.
func NewCatalog() Catalog {
	c := Catalog{
		Models: make([]Option, 0, len(domain.Models)),
		Colors: make([]Option, 0, len(domain.Colors)),
	}
	for _, m := range domain.Models {
		c.Models = append(c.Models, Option{Key: string(m), Name: m.DisplayName(), ImageURL: modelImages[m]})
	}
	for _, col := range domain.Colors {
		c.Colors = append(c.Colors, Option{Key: string(col), Name: col.DisplayName(), ImageURL: colorSwatches[col]})
	}
	return c
}
