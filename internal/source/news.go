package source

import (
	"context"
	"time"

	"wallstonks/internal/domain"
	"wallstonks/internal/sentiment"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Cap on headlines taken per feed into the aggregation.
const newsHeadlineCap = 30

// Feed is one configured news feed: a name, a URL and a relative source
// weight applied to every headline it contributes.
type Feed struct {
	Name   string
	URL    string
	Weight float64
}

// HeadlineReader is the slice of RSSClient the news source needs.
type HeadlineReader interface {
	FetchHeadlines(ctx context.Context, feedURL, sourceName string) ([]domain.Headline, error)
}

// NewsSource aggregates headlines across the configured feeds into one
// sentiment Signal. An empty result set yields the neutral zero-score
// Signal with n=0, same contract as the other adapters.
type NewsSource struct {
	rss        HeadlineReader
	aggregator *sentiment.Aggregator
	feeds      []Feed
	tracer     trace.Tracer
	log        zerolog.Logger
	now        func() time.Time
}

func NewNewsSource(rss HeadlineReader, aggregator *sentiment.Aggregator, feeds []Feed, tracer trace.Tracer, log zerolog.Logger) *NewsSource {
	return &NewsSource{
		rss:        rss,
		aggregator: aggregator,
		feeds:      feeds,
		tracer:     tracer,
		log:        log,
		now:        time.Now,
	}
}

// Fetch never fails: any per-feed failure just drops that feed from the
// aggregation, and an empty aggregation collapses to the neutral stub.
func (s *NewsSource) Fetch(ctx context.Context) (domain.Signal, domain.NewsSentiment) {
	_, span := s.tracer.Start(ctx, "news.fetch")
	defer span.End()

	items := make([]sentiment.Item, 0, len(s.feeds)*newsHeadlineCap)
	for _, feed := range s.feeds {
		headlines, err := s.rss.FetchHeadlines(ctx, feed.URL, feed.Name)
		if err != nil {
			s.log.Debug().Err(err).Str("feed", feed.Name).Msg("news fetch failed, feed skipped")
			continue
		}
		weight := feed.Weight
		if weight <= 0 {
			weight = 1.0
		}
		for i, h := range headlines {
			if i >= newsHeadlineCap {
				break
			}
			items = append(items, sentiment.Item{Headline: h, Weight: weight})
		}
	}

	agg := s.aggregator.Aggregate(ctx, items)
	signal := domain.Signal{
		Key:        domain.SignalKeyNews,
		Label:      "News Sentiment",
		Value:      domain.Float64Ptr(agg.Score),
		ObservedAt: s.now().UTC(),
		Provenance: domain.ProvenanceLive,
	}
	if agg.NTitles == 0 {
		signal.Provenance = domain.ProvenanceFallback
	}
	return signal, agg
}
