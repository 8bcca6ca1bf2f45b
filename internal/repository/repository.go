package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"dealboard/internal/models"
	"dealboard/internal/ranking"
)

// ErrNotFound is returned when a lookup by id or slug yields nothing.
var ErrNotFound = errors.New("not found")

// ListDealsParams mirror the ranking criteria facet for facet so that
// server-side filtering and the in-memory pipeline agree on semantics.
type ListDealsParams struct {
	// Category is a category slug; the filter joins through the category
	// table.
	Category     string
	HotOnly      bool
	VerifiedOnly bool
	Query        string
	PriceMin     *decimal.Decimal
	PriceMax     *decimal.Decimal
	Sort         ranking.SortOption
	Limit        int
	Offset       int
}

type DealRepository interface {
	ListDeals(ctx context.Context, params ListDealsParams) ([]models.Deal, error)
	CountDeals(ctx context.Context, params ListDealsParams) (int64, error)
	GetDealBySlug(ctx context.Context, slug string) (*models.Deal, error)
	GetDealByID(ctx context.Context, id string) (*models.Deal, error)
	CreateDeal(ctx context.Context, deal *models.Deal) error
	UpdateDealEngagement(ctx context.Context, id string, votes int, score float64, rating models.Rating) error
	SoftDeleteDeal(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	EnsureCategory(ctx context.Context, category *models.Category) error

	CreateComment(ctx context.Context, comment *models.Comment) error
	ListCommentsByDealID(ctx context.Context, dealID string) ([]models.Comment, error)
	AddCommentVote(ctx context.Context, id string, delta int) (int, error)
}
