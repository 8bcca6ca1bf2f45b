package ranking

import (
	"strings"

	"github.com/shopspring/decimal"

	"dealboard/internal/models"
)

// AllCategories is the sentinel category meaning "no category filter".
const AllCategories = "All Categories"

// Criteria is one ephemeral view over a deal collection. Facets compose by
// logical AND; zero values are no-ops, so the zero Criteria returns the
// input unchanged.
type Criteria struct {
	// Category is matched against the category slug, mirroring the
	// repository's join-by-slug semantics. Empty or AllCategories disables
	// the facet.
	Category     string
	HotOnly      bool
	VerifiedOnly bool
	// PriceMin/PriceMax bound DealPrice, inclusive both ends. Nil means
	// unbounded on that side.
	PriceMin *decimal.Decimal
	PriceMax *decimal.Decimal
	// Query is a case-insensitive substring match against title,
	// description and category name (OR across the three fields).
	Query string
}

// Apply reduces deals to the subset matching every active facet. The input
// slice is never mutated and relative order is preserved.
func (c Criteria) Apply(deals []models.Deal) []models.Deal {
	min, max := NormalizeRange(c.PriceMin, c.PriceMax)
	query := strings.ToLower(strings.TrimSpace(c.Query))
	categoryActive := c.Category != "" && c.Category != AllCategories

	out := make([]models.Deal, 0, len(deals))
	for _, d := range deals {
		if c.HotOnly && !d.IsHot {
			continue
		}
		if c.VerifiedOnly && !d.IsVerified {
			continue
		}
		if categoryActive && d.Category.Slug != c.Category {
			continue
		}
		if min != nil && d.DealPrice.LessThan(*min) {
			continue
		}
		if max != nil && d.DealPrice.GreaterThan(*max) {
			continue
		}
		if query != "" && !matchesQuery(d, query) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// NormalizeRange self-corrects an inverted price range the way the filter
// UI does: the violating bound is pulled to match the other, here by
// lowering min onto max.
func NormalizeRange(min, max *decimal.Decimal) (*decimal.Decimal, *decimal.Decimal) {
	if min == nil || max == nil {
		return min, max
	}
	if min.GreaterThan(*max) {
		return max, max
	}
	return min, max
}

func matchesQuery(d models.Deal, query string) bool {
	return strings.Contains(strings.ToLower(d.Title), query) ||
		strings.Contains(strings.ToLower(d.Description), query) ||
		strings.Contains(strings.ToLower(d.Category.Name), query)
}
