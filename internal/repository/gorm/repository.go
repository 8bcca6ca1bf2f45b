package gormrepository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"dealboard/internal/models"
	"dealboard/internal/ranking"
	"dealboard/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// dealQuery applies the list filters shared by ListDeals and CountDeals.
// Category filtering joins the category table and matches by slug, which is
// the contract the in-memory ranking pipeline mirrors.
func (s *Store) dealQuery(ctx context.Context, params repository.ListDealsParams) *gorm.DB {
	query := s.db.WithContext(ctx).
		Model(&models.Deal{}).
		Joins("JOIN categories ON categories.id = deals.category_id")

	if slug := strings.TrimSpace(params.Category); slug != "" && slug != ranking.AllCategories {
		query = query.Where("categories.slug = ?", slug)
	}
	if params.HotOnly {
		query = query.Where("deals.is_hot = ?", true)
	}
	if params.VerifiedOnly {
		query = query.Where("deals.is_verified = ?", true)
	}
	min, max := ranking.NormalizeRange(params.PriceMin, params.PriceMax)
	if min != nil {
		query = query.Where("deals.deal_price >= ?", *min)
	}
	if max != nil {
		query = query.Where("deals.deal_price <= ?", *max)
	}
	if q := strings.TrimSpace(params.Query); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"deals.title ILIKE ? OR deals.description ILIKE ? OR categories.name ILIKE ?",
			like, like, like,
		)
	}
	return query
}

func orderClause(by ranking.SortOption) string {
	switch by {
	case ranking.SortHottest:
		return "deals.is_hot DESC, deals.votes DESC"
	case ranking.SortPriceAsc:
		return "deals.deal_price ASC"
	case ranking.SortPriceDesc:
		return "deals.deal_price DESC"
	case ranking.SortMostUpvoted:
		return "deals.votes DESC"
	case ranking.SortDealScore:
		return "deals.deal_score DESC"
	default:
		return "deals.created_at DESC"
	}
}

func (s *Store) ListDeals(ctx context.Context, params repository.ListDealsParams) ([]models.Deal, error) {
	query := s.dealQuery(ctx, params).
		Preload("Category").
		Order(orderClause(params.Sort))
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}
	if params.Offset > 0 {
		query = query.Offset(params.Offset)
	}
	var items []models.Deal
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountDeals(ctx context.Context, params repository.ListDealsParams) (int64, error) {
	var total int64
	if err := s.dealQuery(ctx, params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) GetDealBySlug(ctx context.Context, slug string) (*models.Deal, error) {
	var deal models.Deal
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("slug = ?", slug).
		First(&deal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &deal, nil
}

func (s *Store) GetDealByID(ctx context.Context, id string) (*models.Deal, error) {
	var deal models.Deal
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&deal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &deal, nil
}

func (s *Store) CreateDeal(ctx context.Context, deal *models.Deal) error {
	return s.db.WithContext(ctx).Create(deal).Error
}

func (s *Store) UpdateDealEngagement(ctx context.Context, id string, votes int, score float64, rating models.Rating) error {
	res := s.db.WithContext(ctx).
		Model(&models.Deal{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"votes":       votes,
			"deal_score":  score,
			"deal_rating": rating,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Store) SoftDeleteDeal(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Deal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var items []models.Category
	if err := s.db.WithContext(ctx).
		Model(&models.Category{}).
		Order("name ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (s *Store) EnsureCategory(ctx context.Context, category *models.Category) error {
	return s.db.WithContext(ctx).
		Where("slug = ?", category.Slug).
		FirstOrCreate(category).Error
}

// CreateComment inserts the row and bumps the deal's comment counter in one
// transaction.
func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		res := tx.Model(&models.Deal{}).
			Where("id = ?", comment.DealID).
			UpdateColumn("comments", gorm.Expr("comments + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

func (s *Store) ListCommentsByDealID(ctx context.Context, dealID string) ([]models.Comment, error) {
	var items []models.Comment
	if err := s.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) AddCommentVote(ctx context.Context, id string, delta int) (int, error) {
	var votes int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Comment{}).
			Where("id = ?", id).
			UpdateColumn("votes", gorm.Expr("votes + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		var comment models.Comment
		if err := tx.Select("votes").Where("id = ?", id).First(&comment).Error; err != nil {
			return err
		}
		votes = comment.Votes
		return nil
	})
	if err != nil {
		return 0, err
	}
	return votes, nil
}
