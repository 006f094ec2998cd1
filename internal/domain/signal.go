package domain

import "time"

// Provenance records whether a Signal came from a live fetch or from the
// adapter's built-in fallback stub.
type Provenance string

const (
	ProvenanceLive     Provenance = "live"
	ProvenanceFallback Provenance = "fallback"
)

// Signal is a single timestamped measurement from one external data class.
// It is never mutated after construction, only superseded by the next fetch.
type Signal struct {
	Key        string     `json:"key"`
	Label      string     `json:"label"`
	Value      *float64   `json:"value,omitempty"`
	Unit       string     `json:"unit,omitempty"`
	Period     string     `json:"period,omitempty"`
	ObservedAt time.Time  `json:"observed_at"`
	Provenance Provenance `json:"provenance"`
}

// Live reports whether the signal came from a live fetch.
func (s Signal) Live() bool {
	return s.Provenance == ProvenanceLive
}

// Float returns the signal value, or the given default when absent.
func (s Signal) Float(def float64) float64 {
	if s.Value == nil {
		return def
	}
	return *s.Value
}

// Headline is one feed item. Transient: produced by a feed fetch and
// consumed once by the sentiment aggregator.
type Headline struct {
	Source      string
	Title       string
	Link        string
	PublishedAt *time.Time
}

// NewsSentiment is the aggregated, time-decayed sentiment over a set of
// feeds. NTitles of zero means the neutral fallback.
type NewsSentiment struct {
	Score   float64   `json:"score"`
	NTitles int       `json:"n_titles"`
	AsOf    time.Time `json:"as_of"`
}

// TrendsScore is the standardized search-interest level for one term.
type TrendsScore struct {
	ZScore float64   `json:"zscore"`
	Term   string    `json:"term"`
	AsOf   time.Time `json:"as_of"`
}

// Signal keys produced by the source adapters.
const (
	SignalKeyPMI        = "ism_pmi"
	SignalKeyConfidence = "consumer_confidence"
	SignalKeyCPI        = "cpi_yoy"
	SignalKeySocial     = "reddit_sentiment"
	SignalKeyNews       = "news_sentiment"
	SignalKeyTrends     = "trends"
)

// Snapshot bundles one aggregation pass worth of signals, keyed by the
// constants above. Built fresh per engine pass.
type Snapshot struct {
	AsOf    time.Time
	Signals map[string]Signal

	News   NewsSentiment
	Social NewsSentiment
	Trends TrendsScore
}

func Float64Ptr(v float64) *float64 { return &v }
