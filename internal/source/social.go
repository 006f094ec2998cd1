package source

import (
	"context"
	"time"

	"wallstonks/internal/domain"
	"wallstonks/internal/sentiment"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// HotReader is the slice of RedditClient the social source needs.
type HotReader interface {
	FetchHot(ctx context.Context, subreddit string, limit int) ([]domain.Headline, error)
}

// SocialSource aggregates recent post titles from a set of communities
// into one sentiment Signal. An empty combined title set, or any fetch
// failure across the board, yields the fallback stub.
type SocialSource struct {
	reddit     HotReader
	aggregator *sentiment.Aggregator
	subreddits []string
	tracer     trace.Tracer
	log        zerolog.Logger
	now        func() time.Time
}

func NewSocialSource(reddit HotReader, aggregator *sentiment.Aggregator, subreddits []string, tracer trace.Tracer, log zerolog.Logger) *SocialSource {
	return &SocialSource{
		reddit:     reddit,
		aggregator: aggregator,
		subreddits: subreddits,
		tracer:     tracer,
		log:        log,
		now:        time.Now,
	}
}

// Fetch never fails: it returns either a live aggregated sentiment Signal
// or the neutral fallback stub.
func (s *SocialSource) Fetch(ctx context.Context) (domain.Signal, domain.NewsSentiment) {
	_, span := s.tracer.Start(ctx, "social.fetch")
	defer span.End()

	items := make([]sentiment.Item, 0, len(s.subreddits)*redditTitleCap)
	for _, subreddit := range s.subreddits {
		headlines, err := s.reddit.FetchHot(ctx, subreddit, redditTitleCap)
		if err != nil {
			s.log.Debug().Err(err).Str("subreddit", subreddit).Msg("social fetch failed, community skipped")
			continue
		}
		for _, h := range headlines {
			items = append(items, sentiment.Item{Headline: h, Weight: 1.0})
		}
	}

	agg := s.aggregator.Aggregate(ctx, items)
	if agg.NTitles == 0 {
		return s.stub(), agg
	}
	return domain.Signal{
		Key:        domain.SignalKeySocial,
		Label:      "Reddit Net Sentiment",
		Value:      domain.Float64Ptr(agg.Score),
		ObservedAt: s.now().UTC(),
		Provenance: domain.ProvenanceLive,
	}, agg
}

func (s *SocialSource) stub() domain.Signal {
	return domain.Signal{
		Key:        domain.SignalKeySocial,
		Label:      "Reddit Net Sentiment",
		ObservedAt: s.now().UTC(),
		Provenance: domain.ProvenanceFallback,
	}
}
