package forecast

import (
	"math"
	"testing"
	"time"

	"wallstonks/internal/domain"
)

func exampleVector() domain.FeatureVector {
	// News 0.4, social -0.2, trend z 1.0, PMI 52.
	return domain.FeatureVector{
		domain.FeatureNewsSentiment:    0.4,
		domain.FeatureRedditSentiment:  -0.2,
		domain.FeatureTrendsInflationZ: math.Tanh(0.5),
		domain.FeaturePMIDevFrom50:     0.2,
	}
}

func TestCompositeWorkedExample(t *testing.T) {
	composite, drivers := Composite(exampleVector())

	want := 0.35*0.4 + 0.25*(-0.2) + 0.20*math.Tanh(0.5) + 0.20*0.2
	if math.Abs(composite-want) > 1e-12 {
		t.Fatalf("composite: got %v, want %v", composite, want)
	}
	if math.Abs(composite-0.2224) > 1e-4 {
		t.Fatalf("composite should be about 0.2224, got %v", composite)
	}

	if len(drivers) != 4 {
		t.Fatalf("expected 4 drivers, got %d", len(drivers))
	}
	for i := 1; i < len(drivers); i++ {
		if drivers[i].Contribution > drivers[i-1].Contribution {
			t.Fatalf("drivers not sorted descending: %+v", drivers)
		}
	}
	if drivers[0].Name != domain.FeatureNewsSentiment {
		t.Fatalf("expected news to lead the drivers, got %s", drivers[0].Name)
	}
	if drivers[len(drivers)-1].Name != domain.FeatureRedditSentiment {
		t.Fatalf("expected reddit to trail the drivers, got %s", drivers[len(drivers)-1].Name)
	}
}

func TestScoreWorkedExample(t *testing.T) {
	asOf := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	result := Score(exampleVector(), asOf, DefaultParams())

	if result.Meta.Model != ModelKeyHeuristicV1 {
		t.Fatalf("expected model %s, got %s", ModelKeyHeuristicV1, result.Meta.Model)
	}
	if len(result.Instruments) != 2 {
		t.Fatalf("expected SPY and DIA, got %v", result.Instruments)
	}

	spy, ok := result.Instruments["SPY"]
	if !ok {
		t.Fatalf("missing SPY forecast")
	}
	if math.Abs(spy.DirectionProbUp-0.6112) > 1e-3 {
		t.Fatalf("probUp: got %v, want about 0.611", spy.DirectionProbUp)
	}
	if math.Abs(spy.ExpectedMovePct-0.1334) > 1e-3 {
		t.Fatalf("expected move: got %v, want about 0.133", spy.ExpectedMovePct)
	}
	if math.Abs(spy.IntervalPct.P50High-spy.ExpectedMovePct-0.35) > 1e-12 {
		t.Fatalf("p50 half-width not 0.35: %+v", spy.IntervalPct)
	}
	if math.Abs(spy.IntervalPct.P80Low-(spy.ExpectedMovePct-0.80)) > 1e-12 {
		t.Fatalf("p80 half-width not 0.80: %+v", spy.IntervalPct)
	}

	dia := result.Instruments["DIA"]
	if dia.DirectionProbUp != spy.DirectionProbUp || dia.ExpectedMovePct != spy.ExpectedMovePct {
		t.Fatalf("instruments should share the one composite view")
	}
}

func TestScoreNeutralVector(t *testing.T) {
	result := Score(domain.FeatureVector{}, time.Now(), DefaultParams())
	spy := result.Instruments["SPY"]
	if spy.DirectionProbUp != 0.5 {
		t.Fatalf("expected probUp 0.5 on neutral vector, got %v", spy.DirectionProbUp)
	}
	if spy.ExpectedMovePct != 0 {
		t.Fatalf("expected zero move on neutral vector, got %v", spy.ExpectedMovePct)
	}
}

func TestScoreAdversarialInputsStayBounded(t *testing.T) {
	fv := domain.FeatureVector{
		domain.FeatureNewsSentiment:    math.Inf(1),
		domain.FeatureRedditSentiment:  math.NaN(),
		domain.FeatureTrendsInflationZ: 1e9,
		domain.FeaturePMIDevFrom50:     -1e9,
	}
	result := Score(fv, time.Now(), DefaultParams())
	spy := result.Instruments["SPY"]
	if spy.DirectionProbUp < 0 || spy.DirectionProbUp > 1 {
		t.Fatalf("probUp out of [0,1]: %v", spy.DirectionProbUp)
	}
	if math.Abs(spy.ExpectedMovePct) > DefaultParams().MoveScale {
		t.Fatalf("move exceeds scale bound: %v", spy.ExpectedMovePct)
	}
}

func TestScoreProbUpMonotoneInComposite(t *testing.T) {
	low := Score(domain.FeatureVector{domain.FeatureNewsSentiment: -1}, time.Now(), DefaultParams())
	high := Score(domain.FeatureVector{domain.FeatureNewsSentiment: 1}, time.Now(), DefaultParams())
	if low.Instruments["SPY"].DirectionProbUp >= high.Instruments["SPY"].DirectionProbUp {
		t.Fatalf("probUp not monotone in sentiment")
	}
}

func TestScoreZeroParamsFallBackToDefaults(t *testing.T) {
	result := Score(exampleVector(), time.Now(), Params{})
	if len(result.Instruments) == 0 {
		t.Fatalf("expected default instruments")
	}
	spy := result.Instruments["SPY"]
	if math.Abs(spy.IntervalPct.P50High-spy.ExpectedMovePct-0.35) > 1e-12 {
		t.Fatalf("expected default p50 half-width")
	}
}
