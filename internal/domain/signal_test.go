package domain

import "testing"

func TestSignalFloat(t *testing.T) {
	live := Signal{Value: Float64Ptr(52.0), Provenance: ProvenanceLive}
	if live.Float(0) != 52.0 {
		t.Fatalf("expected 52.0, got %v", live.Float(0))
	}
	if !live.Live() {
		t.Fatalf("expected live")
	}

	stub := Signal{Provenance: ProvenanceFallback}
	if stub.Float(3.2) != 3.2 {
		t.Fatalf("expected default 3.2, got %v", stub.Float(3.2))
	}
	if stub.Live() {
		t.Fatalf("expected fallback")
	}
}

func TestFeatureVectorGet(t *testing.T) {
	var nilFV FeatureVector
	if nilFV.Get(FeatureRedditSentiment) != 0 {
		t.Fatalf("expected 0 from nil vector")
	}
	fv := FeatureVector{FeatureNewsSentiment: 0.4}
	if fv.Get(FeatureNewsSentiment) != 0.4 {
		t.Fatalf("expected 0.4")
	}
	if fv.Get(FeaturePMIDevFrom50) != 0 {
		t.Fatalf("expected 0 for absent key")
	}
}
