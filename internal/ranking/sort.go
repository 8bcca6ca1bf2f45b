package ranking

import (
	"sort"
	"strings"

	"dealboard/internal/models"
)

// SortOption names one total ordering over a deal sequence.
type SortOption string

const (
	SortNewest      SortOption = "newest"
	SortHottest     SortOption = "hottest"
	SortPriceAsc    SortOption = "price_asc"
	SortPriceDesc   SortOption = "price_desc"
	SortMostUpvoted SortOption = "most_upvoted"
	SortDealScore   SortOption = "deal_score"
)

// ParseSortOption maps a request value to a sort option. Unknown values fall
// back to newest.
func ParseSortOption(value string) SortOption {
	switch SortOption(strings.ToLower(strings.TrimSpace(value))) {
	case SortHottest:
		return SortHottest
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	case SortMostUpvoted:
		return SortMostUpvoted
	case SortDealScore:
		return SortDealScore
	default:
		return SortNewest
	}
}

// Sort returns a copy of deals ordered by the given option. All orderings
// are stable: ties keep their relative input order, which matters for
// hottest in particular since is_hot is a two-value key.
func Sort(deals []models.Deal, by SortOption) []models.Deal {
	out := make([]models.Deal, len(deals))
	copy(out, deals)

	switch by {
	case SortHottest:
		// Votes as the secondary key keeps the order deterministic when
		// hot flags tie, matching the list endpoint's ordering.
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].IsHot != out[j].IsHot {
				return out[i].IsHot
			}
			return out[i].Votes > out[j].Votes
		})
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DealPrice.LessThan(out[j].DealPrice)
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DealPrice.GreaterThan(out[j].DealPrice)
		})
	case SortMostUpvoted:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Votes > out[j].Votes
		})
	case SortDealScore:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].DealScore > out[j].DealScore
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}
