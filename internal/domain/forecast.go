package domain

import "time"

// Driver is a named feature's signed contribution to the composite score,
// used for explanation and ranking.
type Driver struct {
	Name         string  `json:"name"`
	Contribution float64 `json:"contribution"`
}

// IntervalPct carries fixed symmetric confidence bands around the expected
// move. The half-widths are configuration constants, not derived from
// variance.
type IntervalPct struct {
	P50Low  float64 `json:"p50_low"`
	P50High float64 `json:"p50_high"`
	P80Low  float64 `json:"p80_low"`
	P80High float64 `json:"p80_high"`
}

// InstrumentForecast is the per-instrument slice of a ForecastResult.
type InstrumentForecast struct {
	DirectionProbUp float64     `json:"direction_prob_up"`
	ExpectedMovePct float64     `json:"expected_move_pct"`
	IntervalPct     IntervalPct `json:"interval_pct"`
	Drivers         []Driver    `json:"drivers"`
}

// ForecastMeta names the scorer that actually produced the result. When
// the model scorer falls back to the heuristic this is the only externally
// observable trace of the failure.
type ForecastMeta struct {
	Model string `json:"model"`
}

// ForecastResult is the engine's output: a plain serializable record,
// constructed fresh per scoring call and never mutated afterwards.
type ForecastResult struct {
	AsOf        time.Time                     `json:"as_of"`
	Instruments map[string]InstrumentForecast `json:"instruments"`
	Meta        ForecastMeta                  `json:"meta"`
}
