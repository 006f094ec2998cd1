package domain

// Feature keys shared by the builder, the heuristic scorer, and the model
// artifact.
const (
	FeatureRedditSentiment  = "reddit_sentiment"
	FeatureTrendsInflationZ = "trends_inflation_z"
	FeaturePMIDevFrom50     = "ism_pmi_dev_from_50"
	FeatureNewsSentiment    = "news_sentiment"
	FeatureConfidence       = "consumer_confidence"
)

// FeatureOrder is the canonical ordering of feature keys. Iteration over a
// FeatureVector should use it so scoring and driver ranking stay
// deterministic.
var FeatureOrder = []string{
	FeatureRedditSentiment,
	FeatureTrendsInflationZ,
	FeaturePMIDevFrom50,
	FeatureNewsSentiment,
	FeatureConfidence,
}

// FeatureVector maps feature keys to scalars. All entries are bounded to
// [-1, 1] except consumer_confidence, which passes through unscaled for the
// trainer. Missing keys read as zero.
type FeatureVector map[string]float64

// Get returns the value for key, defaulting to zero when absent.
func (fv FeatureVector) Get(key string) float64 {
	if fv == nil {
		return 0
	}
	return fv[key]
}
