package cli

import (
	"fmt"

	"wallstonks/internal/config"
	"wallstonks/internal/engine"
	"wallstonks/internal/forecast"
	"wallstonks/internal/model"
	"wallstonks/internal/sentiment"
	"wallstonks/internal/source"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// buildEngine assembles the source adapters, sentiment pipeline and scoring
// strategy into a ready engine. Construction never touches the network;
// credentials that turn out to be missing surface later as fallback signals.
func buildEngine(cfg *config.Config, tracer trace.Tracer, log zerolog.Logger) (*engine.Engine, error) {
	fred := source.NewFREDClient(cfg.Sources.FRED.APIKey, tracer)
	macro := source.NewMacroSource(fred, tracer, log)

	lexicon := sentiment.NewLexiconScorer()
	var refiner sentiment.BatchRefiner
	if r := sentiment.NewOpenAIRefiner(cfg.OpenAI.APIKey, cfg.OpenAI.Model); r != nil {
		refiner = r
	}
	aggregator := sentiment.NewAggregator(lexicon, refiner, cfg.NLP.Decay.NewsHalfLifeHours)

	reddit := source.NewRedditClient(tracer)
	social := source.NewSocialSource(reddit, aggregator, cfg.Sources.Reddit.Subreddits, tracer, log)

	rss := source.NewRSSClient(tracer)
	feeds := make([]source.Feed, 0, len(cfg.Sources.News))
	for _, f := range cfg.Sources.News {
		feeds = append(feeds, source.Feed{Name: f.Name, URL: f.URL, Weight: f.Weight})
	}
	news := source.NewNewsSource(rss, aggregator, feeds, tracer, log)

	trendsClient := source.NewTrendsClient(cfg.Sources.Trends.BaseURL, tracer)
	trends := source.NewTrendsSource(trendsClient, cfg.Sources.Trends.Term, tracer, log)

	strategy, err := buildStrategy(cfg, tracer, log)
	if err != nil {
		return nil, err
	}

	return engine.New(macro, social, news, trends, strategy, tracer, log), nil
}

func buildStrategy(cfg *config.Config, tracer trace.Tracer, log zerolog.Logger) (engine.Strategy, error) {
	params := forecast.Params{
		MoveScale:    cfg.Forecast.MoveScale,
		P50HalfWidth: cfg.Forecast.P50HalfWidth,
		P80HalfWidth: cfg.Forecast.P80HalfWidth,
		Instruments:  cfg.Forecast.Instruments,
	}
	switch cfg.Forecast.Strategy {
	case "heuristic":
		return engine.HeuristicStrategy{Params: params}, nil
	case "model":
		return model.NewScorer(cfg.Model.ArtifactPath, params, tracer, log), nil
	default:
		return nil, fmt.Errorf("unknown forecast strategy %q", cfg.Forecast.Strategy)
	}
}
