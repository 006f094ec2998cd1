package sentiment

import (
	"context"
	"math"
	"time"

	"wallstonks/internal/domain"
)

// DefaultHalfLifeHours is the decay half-life used when the config leaves
// it unset.
const DefaultHalfLifeHours = 6.0

// TextScorer produces a polarity compound in [-1, 1] for one title.
type TextScorer interface {
	Compound(text string) float64
}

// BatchRefiner optionally replaces per-title scores with model-produced
// ones. Any error leaves the lexicon scores in place.
type BatchRefiner interface {
	ScoreBatch(ctx context.Context, titles []string) ([]float64, error)
}

// Item is one headline paired with its feed's source weight.
type Item struct {
	Headline domain.Headline
	Weight   float64
}

// Aggregator computes the weighted average sentiment over a set of
// headlines, with each headline's weight decayed by its age: the weight
// halves every half-life. Headlines with no publish time are charged
// exactly one half-life so unknown age neither favors nor punishes them.
type Aggregator struct {
	scorer        TextScorer
	refiner       BatchRefiner
	halfLifeHours float64
	now           func() time.Time
}

func NewAggregator(scorer TextScorer, refiner BatchRefiner, halfLifeHours float64) *Aggregator {
	if scorer == nil {
		scorer = NewLexiconScorer()
	}
	if halfLifeHours <= 0 {
		halfLifeHours = DefaultHalfLifeHours
	}
	return &Aggregator{
		scorer:        scorer,
		refiner:       refiner,
		halfLifeHours: halfLifeHours,
		now:           time.Now,
	}
}

// Aggregate collapses the items into one score. No titles, or a total
// weight of zero, yields the neutral result {score 0, n 0}.
func (a *Aggregator) Aggregate(ctx context.Context, items []Item) domain.NewsSentiment {
	now := a.now().UTC()

	titles := make([]string, 0, len(items))
	kept := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Headline.Title == "" {
			continue
		}
		titles = append(titles, item.Headline.Title)
		kept = append(kept, item)
	}
	if len(kept) == 0 {
		return domain.NewsSentiment{Score: 0, NTitles: 0, AsOf: now}
	}

	scores := make([]float64, len(kept))
	for i := range kept {
		scores[i] = a.scorer.Compound(titles[i])
	}
	if a.refiner != nil {
		if refined, err := a.refiner.ScoreBatch(ctx, titles); err == nil && len(refined) == len(scores) {
			for i := range refined {
				scores[i] = clamp(refined[i], -1, 1)
			}
		}
	}

	weightedSum := 0.0
	totalWeight := 0.0
	for i, item := range kept {
		w := math.Max(0, item.Weight) * a.decay(now, item.Headline.PublishedAt)
		weightedSum += w * scores[i]
		totalWeight += w
	}
	if totalWeight == 0 {
		return domain.NewsSentiment{Score: 0, NTitles: 0, AsOf: now}
	}
	return domain.NewsSentiment{
		Score:   clamp(weightedSum/totalWeight, -1, 1),
		NTitles: len(kept),
		AsOf:    now,
	}
}

// decay is exp(-ln2 * age / halfLife): exactly 1.0 at age zero and exactly
// 0.5 at one half-life.
func (a *Aggregator) decay(now time.Time, publishedAt *time.Time) float64 {
	ageHours := a.halfLifeHours
	if publishedAt != nil {
		ageHours = math.Max(0, now.Sub(publishedAt.UTC()).Hours())
	}
	return math.Exp(-math.Ln2 * ageHours / a.halfLifeHours)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
