package model

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"wallstonks/internal/domain"
	"wallstonks/internal/forecast"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Scorer scores a feature vector with the on-disk artifact, degrading
// silently to the heuristic when the artifact is missing, unreadable, or of
// an unknown version. The only externally visible trace of a fallback is
// the result's Meta.Model.
type Scorer struct {
	artifactPath string
	params       forecast.Params
	tracer       trace.Tracer
	log          zerolog.Logger
}

func NewScorer(artifactPath string, params forecast.Params, tracer trace.Tracer, log zerolog.Logger) *Scorer {
	return &Scorer{
		artifactPath: artifactPath,
		params:       params,
		tracer:       tracer,
		log:          log,
	}
}

// Score loads the artifact fresh and applies both heads to the vector.
func (s *Scorer) Score(ctx context.Context, fv domain.FeatureVector, asOf time.Time) domain.ForecastResult {
	_, span := s.tracer.Start(ctx, "model.score")
	defer span.End()

	artifact, err := LoadArtifact(s.artifactPath)
	if err != nil {
		s.log.Debug().Err(err).Str("path", s.artifactPath).Msg("artifact unavailable, scoring with heuristic")
		return forecast.Score(fv, asOf, s.params)
	}
	return ScoreWithArtifact(fv, artifact, asOf, s.params)
}

// ScoreWithArtifact applies the artifact's logistic and linear heads to the
// vector. Features the artifact declares but the vector lacks read as zero.
func ScoreWithArtifact(fv domain.FeatureVector, artifact *Artifact, asOf time.Time, params forecast.Params) domain.ForecastResult {
	if params.MoveScale <= 0 || params.P50HalfWidth <= 0 || params.P80HalfWidth <= 0 {
		def := forecast.DefaultParams()
		if params.MoveScale <= 0 {
			params.MoveScale = def.MoveScale
		}
		if params.P50HalfWidth <= 0 {
			params.P50HalfWidth = def.P50HalfWidth
		}
		if params.P80HalfWidth <= 0 {
			params.P80HalfWidth = def.P80HalfWidth
		}
	}
	if len(params.Instruments) == 0 {
		params.Instruments = forecast.DefaultParams().Instruments
	}

	logit := artifact.Direction.Bias
	drivers := make([]domain.Driver, 0, len(artifact.Features))
	for _, name := range artifact.Features {
		contribution := artifact.Direction.Weights[name] * finite(fv.Get(name))
		logit += contribution
		drivers = append(drivers, domain.Driver{Name: name, Contribution: contribution})
	}
	sort.SliceStable(drivers, func(i, j int) bool {
		return drivers[i].Contribution > drivers[j].Contribution
	})
	probUp := sigmoid(logit)

	move := artifact.Magnitude.Bias
	for _, name := range artifact.Features {
		move += artifact.Magnitude.Weights[name] * finite(fv.Get(name))
	}
	if clip := artifact.Magnitude.ClipPct; clip > 0 {
		if move > clip {
			move = clip
		}
		if move < -clip {
			move = -clip
		}
	}

	per := domain.InstrumentForecast{
		DirectionProbUp: probUp,
		ExpectedMovePct: move,
		IntervalPct: domain.IntervalPct{
			P50Low:  move - params.P50HalfWidth,
			P50High: move + params.P50HalfWidth,
			P80Low:  move - params.P80HalfWidth,
			P80High: move + params.P80HalfWidth,
		},
		Drivers: drivers,
	}
	instruments := make(map[string]domain.InstrumentForecast, len(params.Instruments))
	for _, symbol := range params.Instruments {
		instruments[symbol] = per
	}
	return domain.ForecastResult{
		AsOf:        asOf.UTC(),
		Instruments: instruments,
		Meta:        domain.ForecastMeta{Model: fmt.Sprintf("artifact_v%d", artifact.Version)},
	}
}

// sigmoid saturates instead of overflowing at extreme logits.
func sigmoid(x float64) float64 {
	if x > 35 {
		return 1
	}
	if x < -35 {
		return 0
	}
	return 1 / (1 + math.Exp(-x))
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
