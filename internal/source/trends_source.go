package source

import (
	"context"
	"time"

	"wallstonks/internal/domain"
	"wallstonks/internal/trend"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// SeriesReader is the slice of TrendsClient the trends source needs.
type SeriesReader interface {
	Series(ctx context.Context, term string) ([]float64, error)
}

// TrendsSource standardizes search interest for one term into a z-score
// Signal. Unavailability of the provider, an empty or short series, or any
// fetch failure yields the fallback stub.
type TrendsSource struct {
	client SeriesReader
	term   string
	tracer trace.Tracer
	log    zerolog.Logger
	now    func() time.Time
}

func NewTrendsSource(client SeriesReader, term string, tracer trace.Tracer, log zerolog.Logger) *TrendsSource {
	if term == "" {
		term = "inflation"
	}
	return &TrendsSource{
		client: client,
		term:   term,
		tracer: tracer,
		log:    log,
		now:    time.Now,
	}
}

// Fetch never fails: it returns the z-score Signal or the neutral stub.
func (s *TrendsSource) Fetch(ctx context.Context) (domain.Signal, domain.TrendsScore) {
	_, span := s.tracer.Start(ctx, "trends.fetch")
	defer span.End()

	now := s.now().UTC()
	series, err := s.client.Series(ctx, s.term)
	if err != nil {
		s.log.Debug().Err(err).Str("term", s.term).Msg("trends fetch fell back to stub")
		return domain.Signal{
			Key:        domain.SignalKeyTrends,
			Label:      "Search Interest (z-score)",
			ObservedAt: now,
			Provenance: domain.ProvenanceFallback,
		}, domain.TrendsScore{Term: s.term, AsOf: now}
	}

	z := trend.ZScore(series)
	return domain.Signal{
		Key:        domain.SignalKeyTrends,
		Label:      "Search Interest (z-score)",
		Value:      domain.Float64Ptr(z),
		ObservedAt: now,
		Provenance: domain.ProvenanceLive,
	}, domain.TrendsScore{ZScore: z, Term: s.term, AsOf: now}
}
