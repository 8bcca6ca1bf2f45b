package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dealboard/internal/models"
	"dealboard/internal/ranking"
	"dealboard/internal/repository"
	"dealboard/internal/submission"
)

type DealSubmitService struct {
	Repo      repository.DealRepository
	Validator *submission.Validator
	Logger    *zap.Logger
}

// Submit gates, defaults and persists one deal candidate. Validation
// failures come back as *submission.ValidationError with one message per
// field; repository failures as *StoreError.
func (s *DealSubmitService) Submit(ctx context.Context, sub submission.Submission) (*models.Deal, error) {
	cand, err := s.Validator.Validate(sub)
	if err != nil {
		return nil, err
	}

	category, err := s.Repo.GetCategoryBySlug(ctx, cand.Category)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &submission.ValidationError{Fields: map[string]string{
				"category": fmt.Sprintf("Unknown category %q", cand.Category),
			}}
		}
		return nil, storeErr("get category", err)
	}

	deal := &models.Deal{
		ID:            uuid.New().String(),
		Slug:          cand.Slug,
		Title:         cand.Title,
		Description:   cand.Description,
		OriginalPrice: cand.OriginalPrice,
		DealPrice:     cand.DealPrice,
		Discount:      cand.Discount,
		CategoryID:    category.ID,
		Category:      *category,
		Store:         cand.Store,
		StoreImage:    cand.StoreImage,
		ImageURL:      cand.ImageURL,
		PostedBy:      cand.PostedBy,
		PostedTime:    "Just now",
		ExpiresIn:     cand.ExpiresIn,
		CouponCode:    cand.CouponCode,
		FreeShipping:  cand.FreeShipping,
		Votes:         0,
		Comments:      0,
		IsHot:         cand.IsHot,
		IsVerified:    cand.IsVerified,
	}

	// A supplied score is authoritative; otherwise derive it. Same for the
	// rating, which defaults to a pure function of the score.
	if cand.DealScore != nil {
		deal.DealScore = *cand.DealScore
	} else {
		deal.DealScore = ranking.Score(deal.Discount, deal.Votes, deal.IsVerified)
	}
	if cand.DealRating != nil {
		deal.DealRating = models.Rating(*cand.DealRating)
	} else {
		deal.DealRating = ranking.RatingFor(deal.DealScore)
	}

	if err := s.Repo.CreateDeal(ctx, deal); err != nil {
		return nil, storeErr("create deal", err)
	}
	if s.Logger != nil {
		s.Logger.Info("deal created",
			zap.String("id", deal.ID),
			zap.String("slug", deal.Slug),
			zap.String("category", category.Slug),
		)
	}
	return deal, nil
}
