package ranking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"dealboard/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func sampleDeals() []models.Deal {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return []models.Deal{
		{
			ID: "d1", Title: "Neural Headset Pro", Description: "Immersive interface",
			Category: models.Category{Slug: "electronics", Name: "Electronics"},
			DealPrice: dec("199.99"), OriginalPrice: dec("399.99"),
			Votes: 120, IsHot: true, IsVerified: true, DealScore: 7.2,
			CreatedAt: base,
		},
		{
			ID: "d2", Title: "Quantum Blender", Description: "Kitchen upgrade",
			Category: models.Category{Slug: "home", Name: "Home"},
			DealPrice: dec("49.00"), OriginalPrice: dec("89.00"),
			Votes: 40, IsHot: false, IsVerified: true, DealScore: 5.1,
			CreatedAt: base.Add(time.Hour),
		},
		{
			ID: "d3", Title: "Graphene Jacket", Description: "Electronics-grade fabric",
			Category: models.Category{Slug: "fashion", Name: "Fashion"},
			DealPrice: dec("120.00"), OriginalPrice: dec("240.00"),
			Votes: 300, IsHot: true, IsVerified: false, DealScore: 8.9,
			CreatedAt: base.Add(2 * time.Hour),
		},
		{
			ID: "d4", Title: "Budget Earbuds", Description: "Entry level sound",
			Category: models.Category{Slug: "electronics", Name: "Electronics"},
			DealPrice: dec("19.99"), OriginalPrice: dec("39.99"),
			Votes: -5, IsHot: false, IsVerified: false, DealScore: 2.3,
			CreatedAt: base.Add(3 * time.Hour),
		},
	}
}

func ids(deals []models.Deal) []string {
	out := make([]string, len(deals))
	for i, d := range deals {
		out[i] = d.ID
	}
	return out
}

func equalIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyNoOpCriteriaKeepsOrder(t *testing.T) {
	deals := sampleDeals()
	crit := Criteria{Category: AllCategories}
	got := crit.Apply(deals)
	if !equalIDs(ids(got), "d1", "d2", "d3", "d4") {
		t.Fatalf("no-op criteria changed the set: %v", ids(got))
	}
}

func TestApplyCategoryMatchesBySlug(t *testing.T) {
	got := Criteria{Category: "electronics"}.Apply(sampleDeals())
	if !equalIDs(ids(got), "d1", "d4") {
		t.Fatalf("category filter = %v, want [d1 d4]", ids(got))
	}
	// Names must not match; the facet joins by slug.
	got = Criteria{Category: "Electronics"}.Apply(sampleDeals())
	if len(got) != 0 {
		t.Fatalf("category name matched where slug equality was expected: %v", ids(got))
	}
}

func TestApplyHotAndVerifiedFacets(t *testing.T) {
	got := Criteria{HotOnly: true}.Apply(sampleDeals())
	if !equalIDs(ids(got), "d1", "d3") {
		t.Fatalf("hot-only = %v", ids(got))
	}
	got = Criteria{VerifiedOnly: true}.Apply(sampleDeals())
	if !equalIDs(ids(got), "d1", "d2") {
		t.Fatalf("verified-only = %v", ids(got))
	}
	got = Criteria{HotOnly: true, VerifiedOnly: true}.Apply(sampleDeals())
	if !equalIDs(ids(got), "d1") {
		t.Fatalf("hot+verified = %v", ids(got))
	}
}

func TestApplyPriceRangeInclusive(t *testing.T) {
	got := Criteria{PriceMin: decPtr("19.99"), PriceMax: decPtr("49.00")}.Apply(sampleDeals())
	if !equalIDs(ids(got), "d2", "d4") {
		t.Fatalf("price range = %v, want [d2 d4]", ids(got))
	}
}

func TestApplyInvertedRangePullsMinToMax(t *testing.T) {
	got := Criteria{PriceMin: decPtr("300"), PriceMax: decPtr("49.00")}.Apply(sampleDeals())
	if !equalIDs(ids(got), "d2") {
		t.Fatalf("inverted range = %v, want [d2]", ids(got))
	}
}

func TestApplyQueryMatchesAnyField(t *testing.T) {
	// "electronics" appears in d3's description and in the category name of
	// d1 and d4.
	got := Criteria{Query: "ELECTRONICS"}.Apply(sampleDeals())
	if !equalIDs(ids(got), "d1", "d3", "d4") {
		t.Fatalf("query = %v, want [d1 d3 d4]", ids(got))
	}
	got = Criteria{Query: ""}.Apply(sampleDeals())
	if len(got) != 4 {
		t.Fatalf("empty query filtered deals: %v", ids(got))
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	crit := Criteria{Category: "electronics", Query: "neural"}
	once := crit.Apply(sampleDeals())
	twice := crit.Apply(once)
	if !equalIDs(ids(once), ids(twice)...) {
		t.Fatalf("filter not idempotent: %v vs %v", ids(once), ids(twice))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	deals := sampleDeals()
	_ = Criteria{HotOnly: true, Query: "quantum"}.Apply(deals)
	if !equalIDs(ids(deals), "d1", "d2", "d3", "d4") {
		t.Fatalf("input slice mutated: %v", ids(deals))
	}
}

func TestCategoriesAggregation(t *testing.T) {
	got := Categories(sampleDeals())
	want := []string{AllCategories, "Electronics", "Home", "Fashion"}
	if len(got) != len(want) {
		t.Fatalf("categories = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("categories = %v, want %v", got, want)
		}
	}
}

func TestCategoriesEmptyCollection(t *testing.T) {
	got := Categories(nil)
	if len(got) != 1 || got[0] != AllCategories {
		t.Fatalf("Categories(nil) = %v, want [%q]", got, AllCategories)
	}
}
