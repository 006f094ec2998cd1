// Package feature assembles the named, bounded feature vector consumed by
// both scorers.
package feature

import (
	"math"

	"wallstonks/internal/domain"
)

// Inputs are the raw signal readings one pass produced. Nil pointers mean
// the source only delivered its fallback.
type Inputs struct {
	SocialScore float64
	NewsScore   float64
	TrendsZ     float64
	PMI         *float64
	Confidence  *float64
}

// Build is pure: the same inputs always yield the same vector, and it
// performs no I/O. Every entry is bounded to [-1, 1] except
// consumer_confidence, which passes through unscaled for the trainer.
func Build(in Inputs) domain.FeatureVector {
	fv := domain.FeatureVector{
		domain.FeatureRedditSentiment: clamp(in.SocialScore, -1, 1),
		// Bounded smoothing: large z-scores saturate rather than dominate.
		domain.FeatureTrendsInflationZ: math.Tanh(in.TrendsZ / 2.0),
		domain.FeatureNewsSentiment:    clamp(in.NewsScore, -1, 1),
		domain.FeaturePMIDevFrom50:     0,
		domain.FeatureConfidence:       0,
	}
	if in.PMI != nil {
		fv[domain.FeaturePMIDevFrom50] = clamp((*in.PMI-50)/10, -1, 1)
	}
	if in.Confidence != nil {
		fv[domain.FeatureConfidence] = finite(*in.Confidence)
	}
	return fv
}

// FromSnapshot converts one aggregation pass into builder inputs.
func FromSnapshot(snap domain.Snapshot) Inputs {
	in := Inputs{
		SocialScore: snap.Social.Score,
		NewsScore:   snap.News.Score,
		TrendsZ:     snap.Trends.ZScore,
	}
	if sig, ok := snap.Signals[domain.SignalKeyPMI]; ok && sig.Value != nil {
		in.PMI = sig.Value
	}
	if sig, ok := snap.Signals[domain.SignalKeyConfidence]; ok && sig.Value != nil {
		in.Confidence = sig.Value
	}
	return in
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

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
