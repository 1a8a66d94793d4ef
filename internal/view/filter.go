package view

import (
	"strconv"
	"strings"

	"hbnb_web/internal/domain"
)

// Threshold is a price ceiling or "show everything". It applies to already
// fetched nodes only; it is never sent upstream.
type Threshold struct {
	All     bool
	Ceiling float64
}

// AllPrices matches every node.
var AllPrices = Threshold{All: true}

// ParseThreshold reads a filter value from a query parameter. Empty and "All"
// (any case) mean no filter; otherwise the value must parse as a non-negative
// number.
func ParseThreshold(s string) (Threshold, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return AllPrices, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return Threshold{}, false
	}
	return Threshold{Ceiling: f}, true
}

// ApplyFilter sets each node's visibility: visible iff no filter is active or
// the node's price is at or under the ceiling (inclusive bound). Pure; the
// input slice is not mutated.
func ApplyFilter(nodes []domain.ListingNode, t Threshold) []domain.ListingNode {
	out := make([]domain.ListingNode, len(nodes))
	copy(out, nodes)
	for i := range out {
		out[i].Visible = t.All || out[i].Price <= t.Ceiling
	}
	return out
}
