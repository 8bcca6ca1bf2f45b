package service

import (
	"context"
	"errors"

	"dealboard/internal/models"
	"dealboard/internal/ranking"
	"dealboard/internal/repository"
)

type DealQueryService struct {
	Repo repository.DealRepository
}

type DealsResult struct {
	Items []models.Deal
	Total int64
}

// ListDeals runs the filter/sort pipeline server-side through the
// repository, whose predicates mirror the in-memory ranking semantics.
func (s *DealQueryService) ListDeals(ctx context.Context, params repository.ListDealsParams) (DealsResult, error) {
	total, err := s.Repo.CountDeals(ctx, params)
	if err != nil {
		return DealsResult{}, storeErr("count deals", err)
	}
	items, err := s.Repo.ListDeals(ctx, params)
	if err != nil {
		return DealsResult{}, storeErr("list deals", err)
	}
	return DealsResult{Items: items, Total: total}, nil
}

func (s *DealQueryService) GetBySlug(ctx context.Context, slug string) (*models.Deal, error) {
	deal, err := s.Repo.GetDealBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, storeErr("get deal", err)
	}
	return deal, nil
}

// CategoryNames derives the filter dropdown entries from the current deal
// collection, sentinel first.
func (s *DealQueryService) CategoryNames(ctx context.Context) ([]string, error) {
	deals, err := s.Repo.ListDeals(ctx, repository.ListDealsParams{})
	if err != nil {
		return nil, storeErr("list deals", err)
	}
	return ranking.Categories(deals), nil
}
