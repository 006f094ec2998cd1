package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"wallstonks/internal/domain"
	"wallstonks/internal/sentiment"

	"github.com/rs/zerolog"
)

type fakeHotReader struct {
	bySubreddit map[string][]domain.Headline
	errs        map[string]error
}

func (f *fakeHotReader) FetchHot(_ context.Context, subreddit string, limit int) ([]domain.Headline, error) {
	if err := f.errs[subreddit]; err != nil {
		return nil, err
	}
	return f.bySubreddit[subreddit], nil
}

type positiveScorer struct{}

func (positiveScorer) Compound(string) float64 { return 0.5 }

func headlinesAt(ts time.Time, titles ...string) []domain.Headline {
	out := make([]domain.Headline, len(titles))
	for i, title := range titles {
		t := ts
		out[i] = domain.Headline{Source: "reddit", Title: title, PublishedAt: &t}
	}
	return out
}

func TestSocialFetchAggregatesAcrossCommunities(t *testing.T) {
	now := time.Now().UTC()
	reader := &fakeHotReader{
		bySubreddit: map[string][]domain.Headline{
			"wallstreetbets": headlinesAt(now, "a", "b"),
			"stocks":         headlinesAt(now, "c"),
		},
	}
	agg := sentiment.NewAggregator(positiveScorer{}, nil, 6)
	s := NewSocialSource(reader, agg, []string{"wallstreetbets", "stocks"}, testTracer(), zerolog.Nop())

	sig, res := s.Fetch(context.Background())
	if !sig.Live() {
		t.Fatalf("expected live signal, got %+v", sig)
	}
	if res.NTitles != 3 {
		t.Fatalf("expected 3 titles, got %d", res.NTitles)
	}
	if sig.Float(-9) != res.Score {
		t.Fatalf("signal value should carry the aggregate score")
	}
}

func TestSocialFetchSkipsFailingCommunity(t *testing.T) {
	now := time.Now().UTC()
	reader := &fakeHotReader{
		bySubreddit: map[string][]domain.Headline{"stocks": headlinesAt(now, "c")},
		errs:        map[string]error{"wallstreetbets": errors.New("blocked")},
	}
	agg := sentiment.NewAggregator(positiveScorer{}, nil, 6)
	s := NewSocialSource(reader, agg, []string{"wallstreetbets", "stocks"}, testTracer(), zerolog.Nop())

	sig, res := s.Fetch(context.Background())
	if !sig.Live() || res.NTitles != 1 {
		t.Fatalf("expected live signal from surviving community, got %+v / %+v", sig, res)
	}
}

func TestSocialFetchAllFailuresIsFallback(t *testing.T) {
	reader := &fakeHotReader{errs: map[string]error{
		"wallstreetbets": errors.New("blocked"),
		"stocks":         errors.New("blocked"),
	}}
	agg := sentiment.NewAggregator(positiveScorer{}, nil, 6)
	s := NewSocialSource(reader, agg, []string{"wallstreetbets", "stocks"}, testTracer(), zerolog.Nop())

	sig, res := s.Fetch(context.Background())
	if sig.Live() {
		t.Fatalf("expected fallback provenance")
	}
	if sig.Value != nil {
		t.Fatalf("fallback stub carries no value")
	}
	if res.NTitles != 0 || res.Score != 0 {
		t.Fatalf("expected neutral aggregate, got %+v", res)
	}
}
