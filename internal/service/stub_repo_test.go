package service

import (
	"context"
	"sync"

	"dealboard/internal/models"
	"dealboard/internal/ranking"
	"dealboard/internal/repository"
)

// stubRepo backs service tests with the in-memory ranking pipeline, which
// mirrors the SQL predicates facet for facet.
type stubRepo struct {
	mu         sync.Mutex
	deals      []models.Deal
	categories []models.Category
	comments   []models.Comment
	failWith   error
}

func (r *stubRepo) filtered(params repository.ListDealsParams) []models.Deal {
	crit := ranking.Criteria{
		Category:     params.Category,
		HotOnly:      params.HotOnly,
		VerifiedOnly: params.VerifiedOnly,
		PriceMin:     params.PriceMin,
		PriceMax:     params.PriceMax,
		Query:        params.Query,
	}
	return ranking.Sort(crit.Apply(r.deals), params.Sort)
}

func (r *stubRepo) ListDeals(_ context.Context, params repository.ListDealsParams) ([]models.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	items := r.filtered(params)
	if params.Offset > 0 {
		if params.Offset >= len(items) {
			return nil, nil
		}
		items = items[params.Offset:]
	}
	if params.Limit > 0 && params.Limit < len(items) {
		items = items[:params.Limit]
	}
	return items, nil
}

func (r *stubRepo) CountDeals(_ context.Context, params repository.ListDealsParams) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return 0, r.failWith
	}
	return int64(len(r.filtered(params))), nil
}

func (r *stubRepo) GetDealBySlug(_ context.Context, slug string) (*models.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.deals {
		if r.deals[i].Slug == slug {
			deal := r.deals[i]
			return &deal, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubRepo) GetDealByID(_ context.Context, id string) (*models.Deal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.deals {
		if r.deals[i].ID == id {
			deal := r.deals[i]
			return &deal, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubRepo) CreateDeal(_ context.Context, deal *models.Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.deals = append(r.deals, *deal)
	return nil
}

func (r *stubRepo) UpdateDealEngagement(_ context.Context, id string, votes int, score float64, rating models.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.deals {
		if r.deals[i].ID == id {
			r.deals[i].Votes = votes
			r.deals[i].DealScore = score
			r.deals[i].DealRating = rating
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *stubRepo) SoftDeleteDeal(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.deals {
		if r.deals[i].ID == id {
			r.deals = append(r.deals[:i], r.deals[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *stubRepo) ListCategories(_ context.Context) ([]models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Category(nil), r.categories...), nil
}

func (r *stubRepo) GetCategoryBySlug(_ context.Context, slug string) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.categories {
		if r.categories[i].Slug == slug {
			category := r.categories[i]
			return &category, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubRepo) EnsureCategory(_ context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.categories {
		if r.categories[i].Slug == category.Slug {
			*category = r.categories[i]
			return nil
		}
	}
	r.categories = append(r.categories, *category)
	return nil
}

func (r *stubRepo) CreateComment(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	r.comments = append(r.comments, *comment)
	for i := range r.deals {
		if r.deals[i].ID == comment.DealID {
			r.deals[i].Comments++
		}
	}
	return nil
}

func (r *stubRepo) ListCommentsByDealID(_ context.Context, dealID string) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Comment
	for _, c := range r.comments {
		if c.DealID == dealID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *stubRepo) AddCommentVote(_ context.Context, id string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.comments {
		if r.comments[i].ID == id {
			r.comments[i].Votes += delta
			return r.comments[i].Votes, nil
		}
	}
	return 0, repository.ErrNotFound
}
