package view

import (
	"fmt"

	"hbnb_web/internal/domain"
)

const untitledPlace = "Untitled Place"

// FormatPrice renders a nightly price with exactly two decimals.
// A missing price displays as "0.00".
func FormatPrice(p *float64) string {
	if p == nil {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", *p)
}

// BuildListings projects places into render-ready listing nodes. Each node
// keeps the raw numeric price for the filter engine; nodes start visible.
func BuildListings(places []domain.Place) []domain.ListingNode {
	nodes := make([]domain.ListingNode, 0, len(places))
	for _, p := range places {
		title := p.Title
		if title == "" {
			title = untitledPlace
		}
		var price float64
		if p.Price != nil {
			price = *p.Price
		}
		nodes = append(nodes, domain.ListingNode{
			PlaceID:    p.ID,
			Title:      title,
			Price:      price,
			PriceLabel: FormatPrice(p.Price),
			ImageURL:   p.ImageURL,
			Visible:    true,
		})
	}
	return nodes
}
