package source

import (
	"context"
	"fmt"
	"time"

	"wallstonks/internal/domain"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// FRED series ids for the macro signals.
const (
	SeriesPMI        = "NAPM"
	SeriesConfidence = "CONCCONF"
	SeriesCPI        = "CPIAUCSL"
)

// MacroReader is the slice of FREDClient the macro source needs.
type MacroReader interface {
	Observations(ctx context.Context, seriesID string) ([]Observation, error)
	HasCredential() bool
}

// MacroSource wraps the macro time-series API behind the fetch-or-fallback
// contract: every method returns a Signal and never an error. A missing
// credential, short history, or any transport or parse failure produces the
// source's fixed stub with fallback provenance.
type MacroSource struct {
	fred   MacroReader
	tracer trace.Tracer
	log    zerolog.Logger
	now    func() time.Time
}

func NewMacroSource(fred MacroReader, tracer trace.Tracer, log zerolog.Logger) *MacroSource {
	return &MacroSource{
		fred:   fred,
		tracer: tracer,
		log:    log,
		now:    time.Now,
	}
}

// PMI returns the latest ISM manufacturing PMI level.
func (s *MacroSource) PMI(ctx context.Context) domain.Signal {
	_, span := s.tracer.Start(ctx, "macro.fetch-pmi")
	defer span.End()

	obs, err := s.latestTwo(ctx, SeriesPMI)
	if err != nil {
		return s.fallback(domain.SignalKeyPMI, "ISM Manufacturing PMI", "index", nil, err)
	}
	latest := obs[len(obs)-1]
	return domain.Signal{
		Key:        domain.SignalKeyPMI,
		Label:      "ISM Manufacturing PMI",
		Value:      domain.Float64Ptr(latest.Value),
		Unit:       "index",
		Period:     latest.Date.Format("Jan 2006"),
		ObservedAt: s.now().UTC(),
		Provenance: domain.ProvenanceLive,
	}
}

// Confidence returns the latest consumer confidence level.
func (s *MacroSource) Confidence(ctx context.Context) domain.Signal {
	_, span := s.tracer.Start(ctx, "macro.fetch-confidence")
	defer span.End()

	obs, err := s.latestTwo(ctx, SeriesConfidence)
	if err != nil {
		return s.fallback(domain.SignalKeyConfidence, "Consumer Confidence", "index", nil, err)
	}
	latest := obs[len(obs)-1]
	return domain.Signal{
		Key:        domain.SignalKeyConfidence,
		Label:      "Consumer Confidence",
		Value:      domain.Float64Ptr(latest.Value),
		Unit:       "index",
		Period:     latest.Date.Format("Jan 2006"),
		ObservedAt: s.now().UTC(),
		Provenance: domain.ProvenanceLive,
	}
}

// CPI returns the year-over-year CPI rate from the trailing 12-month ratio.
func (s *MacroSource) CPI(ctx context.Context) domain.Signal {
	_, span := s.tracer.Start(ctx, "macro.fetch-cpi")
	defer span.End()

	// Stub value matches the documented example so a fallback still renders.
	stub := domain.Float64Ptr(3.2)

	obs, err := s.observations(ctx, SeriesCPI)
	if err == nil && len(obs) < 13 {
		err = insufficientData("fred:"+SeriesCPI, fmt.Errorf("need 13 observations for YoY, got %d", len(obs)))
	}
	if err != nil {
		return s.fallback(domain.SignalKeyCPI, "CPI YoY", "%", stub, err)
	}
	latest := obs[len(obs)-1]
	lagged := obs[len(obs)-13]
	if lagged.Value == 0 {
		return s.fallback(domain.SignalKeyCPI, "CPI YoY", "%", stub,
			parseError("fred:"+SeriesCPI, fmt.Errorf("zero lagged level")))
	}
	yoy := (latest.Value/lagged.Value - 1) * 100
	return domain.Signal{
		Key:        domain.SignalKeyCPI,
		Label:      "CPI YoY",
		Value:      domain.Float64Ptr(yoy),
		Unit:       "%",
		Period:     latest.Date.Format("Jan 2006"),
		ObservedAt: s.now().UTC(),
		Provenance: domain.ProvenanceLive,
	}
}

func (s *MacroSource) observations(ctx context.Context, seriesID string) ([]Observation, error) {
	if s.fred == nil || !s.fred.HasCredential() {
		return nil, credentialMissing("fred:" + seriesID)
	}
	return s.fred.Observations(ctx, seriesID)
}

// latestTwo fetches a series and requires at least two timestamped
// observations so a delta is always computable downstream.
func (s *MacroSource) latestTwo(ctx context.Context, seriesID string) ([]Observation, error) {
	obs, err := s.observations(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	if len(obs) < 2 {
		return nil, insufficientData("fred:"+seriesID, fmt.Errorf("got %d observations", len(obs)))
	}
	return obs, nil
}

func (s *MacroSource) fallback(key, label, unit string, value *float64, cause error) domain.Signal {
	s.log.Debug().Err(cause).Str("signal", key).Msg("macro fetch fell back to stub")
	return domain.Signal{
		Key:        key,
		Label:      label,
		Value:      value,
		Unit:       unit,
		ObservedAt: s.now().UTC(),
		Provenance: domain.ProvenanceFallback,
	}
}
