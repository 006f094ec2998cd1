package sentiment

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"wallstonks/internal/domain"
)

type fixedScorer map[string]float64

func (s fixedScorer) Compound(text string) float64 { return s[text] }

type stubRefiner struct {
	scores []float64
	err    error
}

func (r *stubRefiner) ScoreBatch(_ context.Context, titles []string) ([]float64, error) {
	return r.scores, r.err
}

func timePtr(t time.Time) *time.Time { return &t }

func TestAggregateEmptyIsNeutral(t *testing.T) {
	a := NewAggregator(fixedScorer{}, nil, 6)
	got := a.Aggregate(context.Background(), nil)
	if got.Score != 0 || got.NTitles != 0 {
		t.Fatalf("expected neutral result, got %+v", got)
	}
}

func TestAggregateZeroWeightIsNeutral(t *testing.T) {
	a := NewAggregator(fixedScorer{"up": 0.9}, nil, 6)
	items := []Item{
		{Headline: domain.Headline{Title: "up"}, Weight: 0},
		{Headline: domain.Headline{Title: "up"}, Weight: -3},
	}
	got := a.Aggregate(context.Background(), items)
	if got.Score != 0 || got.NTitles != 0 {
		t.Fatalf("expected neutral result on zero total weight, got %+v", got)
	}
}

func TestAggregateDecayHalvesPerHalfLife(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	a := NewAggregator(fixedScorer{"fresh": 1.0, "old": -1.0}, nil, 6)
	a.now = func() time.Time { return now }

	items := []Item{
		{Headline: domain.Headline{Title: "fresh", PublishedAt: timePtr(now)}, Weight: 1},
		{Headline: domain.Headline{Title: "old", PublishedAt: timePtr(now.Add(-6 * time.Hour))}, Weight: 1},
	}
	got := a.Aggregate(context.Background(), items)

	// Weights 1.0 and 0.5: (1*1 + 0.5*-1) / 1.5 = 1/3.
	if math.Abs(got.Score-1.0/3.0) > 1e-9 {
		t.Fatalf("expected score 1/3, got %v", got.Score)
	}
	if got.NTitles != 2 {
		t.Fatalf("expected 2 titles, got %d", got.NTitles)
	}
}

func TestAggregateUnknownAgeChargedOneHalfLife(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	a := NewAggregator(fixedScorer{"dated": 1.0, "undated": 1.0}, nil, 6)
	a.now = func() time.Time { return now }

	dated := a.Aggregate(context.Background(), []Item{
		{Headline: domain.Headline{Title: "dated", PublishedAt: timePtr(now.Add(-6 * time.Hour))}, Weight: 1},
	})
	undated := a.Aggregate(context.Background(), []Item{
		{Headline: domain.Headline{Title: "undated"}, Weight: 1},
	})
	if dated.Score != undated.Score {
		t.Fatalf("expected identical scores for one-half-life-old and undated, got %v vs %v", dated.Score, undated.Score)
	}
}

func TestAggregateRefinerReplacesScores(t *testing.T) {
	a := NewAggregator(fixedScorer{"a": -1.0}, &stubRefiner{scores: []float64{0.8}}, 6)
	now := time.Now().UTC()
	got := a.Aggregate(context.Background(), []Item{
		{Headline: domain.Headline{Title: "a", PublishedAt: timePtr(now)}, Weight: 1},
	})
	if math.Abs(got.Score-0.8) > 1e-6 {
		t.Fatalf("expected refined score 0.8, got %v", got.Score)
	}
}

func TestAggregateRefinerErrorKeepsLexiconScores(t *testing.T) {
	a := NewAggregator(fixedScorer{"a": -0.5}, &stubRefiner{err: errors.New("quota")}, 6)
	now := time.Now().UTC()
	got := a.Aggregate(context.Background(), []Item{
		{Headline: domain.Headline{Title: "a", PublishedAt: timePtr(now)}, Weight: 1},
	})
	if math.Abs(got.Score-(-0.5)) > 1e-6 {
		t.Fatalf("expected lexicon score -0.5 on refiner error, got %v", got.Score)
	}
}

func TestAggregateScoreWithinBounds(t *testing.T) {
	a := NewAggregator(fixedScorer{"a": 5.0, "b": 3.0}, nil, 6)
	now := time.Now().UTC()
	got := a.Aggregate(context.Background(), []Item{
		{Headline: domain.Headline{Title: "a", PublishedAt: timePtr(now)}, Weight: 1},
		{Headline: domain.Headline{Title: "b", PublishedAt: timePtr(now)}, Weight: 1},
	})
	if got.Score < -1 || got.Score > 1 {
		t.Fatalf("score out of bounds: %v", got.Score)
	}
}
