package ranking

import "dealboard/internal/models"

// Weights of the three score signals. Fixed for compatibility with scores
// already persisted by earlier versions; do not tune without a backfill.
const (
	discountWeight = 0.5
	votesWeight    = 0.3
	verifiedWeight = 0.2
)

// Score combines discount percentage, vote count and verification into a
// single quality score on a 0-10 scale.
//
// The votes signal saturates at 1000 votes. Negative vote counts are not
// clamped: a heavily downvoted deal scores below its discount/verification
// floor on purpose.
func Score(discount int, votes int, verified bool) float64 {
	discountScore := float64(discount) / 100 * 10
	votesScore := float64(votes) / 100
	if votesScore > 10 {
		votesScore = 10
	}
	verifiedScore := 0.0
	if verified {
		verifiedScore = 10
	}
	return discountScore*discountWeight + votesScore*votesWeight + verifiedScore*verifiedWeight
}

// RatingFor buckets a score into its display tier. Thresholds are inclusive
// lower bounds; every float maps to exactly one tier.
func RatingFor(score float64) models.Rating {
	switch {
	case score >= 9:
		return models.RatingEpic
	case score >= 7:
		return models.RatingGood
	case score >= 5:
		return models.RatingAverage
	default:
		return models.RatingPoor
	}
}
