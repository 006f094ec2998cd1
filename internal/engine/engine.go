// Package engine runs one synchronous aggregation-and-scoring pass:
// adapters produce Signals, the builder assembles the feature vector, and
// the selected strategy turns it into a ForecastResult.
package engine

import (
	"context"
	"time"

	"wallstonks/internal/domain"
	"wallstonks/internal/feature"
	"wallstonks/internal/forecast"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// MacroFetcher yields the macro Signals. Implementations never fail; a
// failed fetch is a fallback Signal.
type MacroFetcher interface {
	PMI(ctx context.Context) domain.Signal
	Confidence(ctx context.Context) domain.Signal
	CPI(ctx context.Context) domain.Signal
}

// SentimentFetcher yields one aggregated sentiment Signal.
type SentimentFetcher interface {
	Fetch(ctx context.Context) (domain.Signal, domain.NewsSentiment)
}

// TrendsFetcher yields the standardized search-interest Signal.
type TrendsFetcher interface {
	Fetch(ctx context.Context) (domain.Signal, domain.TrendsScore)
}

// Strategy scores one feature vector. The heuristic and model-artifact
// implementations are independently selectable; neither supersedes the
// other implicitly.
type Strategy interface {
	Score(ctx context.Context, fv domain.FeatureVector, asOf time.Time) domain.ForecastResult
}

// Engine wires the four source adapters to a scoring strategy. It holds no
// mutable state between passes: every Run constructs fresh Signals and a
// fresh vector, so concurrent invocations are safe.
type Engine struct {
	macro  MacroFetcher
	social SentimentFetcher
	news   SentimentFetcher
	trends TrendsFetcher

	strategy Strategy
	tracer   trace.Tracer
	log      zerolog.Logger
	now      func() time.Time
}

func New(macro MacroFetcher, social, news SentimentFetcher, trends TrendsFetcher, strategy Strategy, tracer trace.Tracer, log zerolog.Logger) *Engine {
	return &Engine{
		macro:    macro,
		social:   social,
		news:     news,
		trends:   trends,
		strategy: strategy,
		tracer:   tracer,
		log:      log,
		now:      time.Now,
	}
}

// Snapshot fetches every source once. Order is fixed for reproducible
// logs, but no source depends on another, so sequencing is immaterial to
// the result.
func (e *Engine) Snapshot(ctx context.Context) domain.Snapshot {
	_, span := e.tracer.Start(ctx, "engine.snapshot")
	defer span.End()

	snap := domain.Snapshot{
		AsOf:    e.now().UTC(),
		Signals: make(map[string]domain.Signal, 6),
	}

	pmi := e.macro.PMI(ctx)
	conf := e.macro.Confidence(ctx)
	cpi := e.macro.CPI(ctx)
	snap.Signals[pmi.Key] = pmi
	snap.Signals[conf.Key] = conf
	snap.Signals[cpi.Key] = cpi

	socialSig, socialAgg := e.social.Fetch(ctx)
	snap.Signals[socialSig.Key] = socialSig
	snap.Social = socialAgg

	newsSig, newsAgg := e.news.Fetch(ctx)
	snap.Signals[newsSig.Key] = newsSig
	snap.News = newsAgg

	trendsSig, trendsScore := e.trends.Fetch(ctx)
	snap.Signals[trendsSig.Key] = trendsSig
	snap.Trends = trendsScore

	for key, sig := range snap.Signals {
		if !sig.Live() {
			e.log.Info().Str("signal", key).Msg("signal degraded to fallback")
		}
	}
	return snap
}

// Run performs one full pass. It cannot fail: every upstream failure has
// already been collapsed into a fallback Signal by the time scoring runs.
func (e *Engine) Run(ctx context.Context) (domain.ForecastResult, domain.Snapshot) {
	_, span := e.tracer.Start(ctx, "engine.run")
	defer span.End()

	snap := e.Snapshot(ctx)
	fv := feature.Build(feature.FromSnapshot(snap))
	result := e.strategy.Score(ctx, fv, snap.AsOf)
	e.log.Info().
		Str("model", result.Meta.Model).
		Time("as_of", result.AsOf).
		Msg("forecast pass complete")
	return result, snap
}

// SourceStatus is one source's health as observed by a probe pass.
type SourceStatus struct {
	Live   bool   `json:"live"`
	Detail string `json:"detail,omitempty"`
}

// Health runs a probe pass and reports which sources answered live. It
// reuses the fallback contract: a source is healthy exactly when its
// Signal carries live provenance.
func (e *Engine) Health(ctx context.Context) map[string]SourceStatus {
	snap := e.Snapshot(ctx)
	out := make(map[string]SourceStatus, len(snap.Signals))
	for key, sig := range snap.Signals {
		status := SourceStatus{Live: sig.Live()}
		switch key {
		case domain.SignalKeyNews:
			status.Detail = detailTitles(snap.News.NTitles)
		case domain.SignalKeySocial:
			status.Detail = detailTitles(snap.Social.NTitles)
		}
		out[key] = status
	}
	return out
}

func detailTitles(n int) string {
	if n == 0 {
		return "no titles"
	}
	return "aggregated titles"
}

// HeuristicStrategy adapts the pure heuristic scorer to the Strategy
// interface.
type HeuristicStrategy struct {
	Params forecast.Params
}

func (s HeuristicStrategy) Score(_ context.Context, fv domain.FeatureVector, asOf time.Time) domain.ForecastResult {
	return forecast.Score(fv, asOf, s.Params)
}
