package service

import (
	"context"
	"errors"
	"fmt"

	"dealboard/internal/models"
	"dealboard/internal/ranking"
	"dealboard/internal/repository"
)

// ErrBadDirection rejects vote directions other than up/down.
var ErrBadDirection = errors.New(`direction must be "up" or "down"`)

type VoteService struct {
	Repo repository.DealRepository
}

// VoteDeal applies one up/down vote and refreshes the derived score and
// rating from the new tally. Concurrent voters are last-write-wins.
func (s *VoteService) VoteDeal(ctx context.Context, id string, direction string) (*models.Deal, error) {
	delta, err := parseDirection(direction)
	if err != nil {
		return nil, err
	}

	deal, err := s.Repo.GetDealByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, storeErr("get deal", err)
	}

	deal.Votes += delta
	deal.DealScore = ranking.Score(deal.Discount, deal.Votes, deal.IsVerified)
	deal.DealRating = ranking.RatingFor(deal.DealScore)

	if err := s.Repo.UpdateDealEngagement(ctx, id, deal.Votes, deal.DealScore, deal.DealRating); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		return nil, storeErr("update deal votes", err)
	}
	return deal, nil
}

func parseDirection(direction string) (int, error) {
	switch direction {
	case "up":
		return 1, nil
	case "down":
		return -1, nil
	default:
		return 0, fmt.Errorf("%w: got %q", ErrBadDirection, direction)
	}
}
