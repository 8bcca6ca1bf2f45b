package service

import (
	"context"

	"go.uber.org/zap"

	"dealboard/internal/ranking"
	"dealboard/internal/repository"
)

// RescoreService reconciles persisted scores with the current vote tallies.
// Vote writes already refresh the score inline; this periodic pass catches
// rows touched by out-of-band writers (moderation, imports).
type RescoreService struct {
	Repo   repository.DealRepository
	Logger *zap.Logger
}

// RescoreAll recomputes every deal's score and rating and persists the rows
// that drifted. Returns the number of rows updated.
func (s *RescoreService) RescoreAll(ctx context.Context) (int, error) {
	deals, err := s.Repo.ListDeals(ctx, repository.ListDealsParams{})
	if err != nil {
		return 0, storeErr("list deals", err)
	}

	updated := 0
	for _, deal := range deals {
		score := ranking.Score(deal.Discount, deal.Votes, deal.IsVerified)
		rating := ranking.RatingFor(score)
		if score == deal.DealScore && rating == deal.DealRating {
			continue
		}
		if err := s.Repo.UpdateDealEngagement(ctx, deal.ID, deal.Votes, score, rating); err != nil {
			if s.Logger != nil {
				s.Logger.Warn("rescore update failed",
					zap.String("id", deal.ID),
					zap.Error(err),
				)
			}
			continue
		}
		updated++
	}
	return updated, nil
}
