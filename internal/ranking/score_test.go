package ranking

import (
	"math"
	"testing"

	"dealboard/internal/models"
)

func TestScoreKnownComposite(t *testing.T) {
	// discount 80 -> 8.0 raw (4.0 weighted), 150 votes -> 1.5 raw (0.45
	// weighted), verified -> 10 raw (2.0 weighted).
	got := Score(80, 150, true)
	if math.Abs(got-6.45) > 1e-9 {
		t.Fatalf("Score(80,150,true) = %v, want 6.45", got)
	}
	if RatingFor(got) != models.RatingAverage {
		t.Fatalf("RatingFor(%v) = %v, want average", got, RatingFor(got))
	}
}

func TestScoreRangeAndMonotonicity(t *testing.T) {
	for discount := 0; discount <= 100; discount += 10 {
		for _, votes := range []int{0, 1, 50, 99, 100, 500, 2000} {
			for _, verified := range []bool{false, true} {
				s := Score(discount, votes, verified)
				if s < 0 || s > 10 {
					t.Fatalf("Score(%d,%d,%v) = %v out of [0,10]", discount, votes, verified, s)
				}
				if discount > 0 && Score(discount-10, votes, verified) > s {
					t.Fatalf("score decreased in discount at (%d,%d,%v)", discount, votes, verified)
				}
				if votes <= 100 && Score(discount, votes-1, verified) > s {
					t.Fatalf("score decreased in votes at (%d,%d,%v)", discount, votes, verified)
				}
				if verified && Score(discount, votes, false) > s {
					t.Fatalf("verified lowered score at (%d,%d)", discount, votes)
				}
			}
		}
	}
}

func TestScoreVotesSaturate(t *testing.T) {
	if Score(50, 1000, false) != Score(50, 10000, false) {
		t.Fatalf("votes signal did not saturate: %v vs %v",
			Score(50, 1000, false), Score(50, 10000, false))
	}
	if Score(50, 900, false) >= Score(50, 1000, false) {
		t.Fatal("votes signal saturated too early")
	}
}

func TestScoreNegativeVotesPenalize(t *testing.T) {
	base := Score(40, 0, false)
	down := Score(40, -200, false)
	if down >= base {
		t.Fatalf("negative votes should lower the score: %v >= %v", down, base)
	}
}

func TestRatingForThresholds(t *testing.T) {
	tests := []struct {
		score float64
		want  models.Rating
	}{
		{10, models.RatingEpic},
		{9.0, models.RatingEpic},
		{8.999, models.RatingGood},
		{7.0, models.RatingGood},
		{6.999, models.RatingAverage},
		{5.0, models.RatingAverage},
		{4.999, models.RatingPoor},
		{0, models.RatingPoor},
		{-3, models.RatingPoor},
	}
	for _, tt := range tests {
		if got := RatingFor(tt.score); got != tt.want {
			t.Fatalf("RatingFor(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
