// Package forecast fuses a feature vector into a calibrated forecast with
// ranked drivers.
package forecast

import (
	"math"
	"sort"
	"time"

	"wallstonks/internal/domain"
)

const ModelKeyHeuristicV1 = "heuristic_v1"

// Params are the deployment constants of the heuristic scorer. The
// interval half-widths are fixed configuration values, not derived from
// variance.
type Params struct {
	MoveScale    float64
	P50HalfWidth float64
	P80HalfWidth float64
	Instruments  []string
}

func DefaultParams() Params {
	return Params{
		MoveScale:    0.6,
		P50HalfWidth: 0.35,
		P80HalfWidth: 0.80,
		Instruments:  []string{"SPY", "DIA"},
	}
}

// Fixed fusion weights. All four components are always used; a neutral
// fallback feature simply contributes zero. They sum to 1.0.
var heuristicWeights = map[string]float64{
	domain.FeatureNewsSentiment:    0.35,
	domain.FeatureRedditSentiment:  0.25,
	domain.FeatureTrendsInflationZ: 0.20,
	domain.FeaturePMIDevFrom50:     0.20,
}

// Score is a pure function from feature vector to forecast. Every tracked
// instrument shares the one macro/sentiment view at this tier.
func Score(fv domain.FeatureVector, asOf time.Time, params Params) domain.ForecastResult {
	if params.MoveScale <= 0 {
		params.MoveScale = DefaultParams().MoveScale
	}
	if params.P50HalfWidth <= 0 {
		params.P50HalfWidth = DefaultParams().P50HalfWidth
	}
	if params.P80HalfWidth <= 0 {
		params.P80HalfWidth = DefaultParams().P80HalfWidth
	}
	if len(params.Instruments) == 0 {
		params.Instruments = DefaultParams().Instruments
	}

	composite, drivers := Composite(fv)
	probUp := 0.5 * (composite + 1)
	expectedMove := params.MoveScale * composite

	per := domain.InstrumentForecast{
		DirectionProbUp: probUp,
		ExpectedMovePct: expectedMove,
		IntervalPct: domain.IntervalPct{
			P50Low:  expectedMove - params.P50HalfWidth,
			P50High: expectedMove + params.P50HalfWidth,
			P80Low:  expectedMove - params.P80HalfWidth,
			P80High: expectedMove + params.P80HalfWidth,
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
		Meta:        domain.ForecastMeta{Model: ModelKeyHeuristicV1},
	}
}

// Composite returns the clamped weighted sum and the per-feature
// contributions sorted descending.
func Composite(fv domain.FeatureVector) (float64, []domain.Driver) {
	composite := 0.0
	drivers := make([]domain.Driver, 0, len(heuristicWeights))
	for _, key := range domain.FeatureOrder {
		w, ok := heuristicWeights[key]
		if !ok {
			continue
		}
		contribution := w * clamp(fv.Get(key), -1, 1)
		composite += contribution
		drivers = append(drivers, domain.Driver{Name: key, Contribution: contribution})
	}
	sort.SliceStable(drivers, func(i, j int) bool {
		return drivers[i].Contribution > drivers[j].Contribution
	})
	return clamp(composite, -1, 1), drivers
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
