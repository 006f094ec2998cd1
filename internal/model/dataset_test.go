package model

import (
	"strings"
	"testing"
)

func TestReadRowsParsesDataset(t *testing.T) {
	csv := strings.Join([]string{
		"date,reddit_sentiment,trends_inflation_z,ism_pmi_dev_from_50,consumer_confidence,direction,move_pct,notes",
		"2026-07-01,0.3,-0.1,0.2,101.5,1,0.4,rally",
		"2026-07-02,-0.2,0.5,,99.0,0,-0.3,",
	}, "\n")

	rows, err := readRows(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].RedditSentiment != 0.3 || rows[0].Direction != 1 || rows[0].MovePct != 0.4 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	// Blank cell defaults to zero.
	if rows[1].PMIDevFrom50 != 0 {
		t.Fatalf("expected blank pmi cell to read 0, got %v", rows[1].PMIDevFrom50)
	}
}

func TestReadRowsMissingColumn(t *testing.T) {
	csv := "reddit_sentiment,direction\n0.1,1\n"
	if _, err := readRows(strings.NewReader(csv)); err == nil {
		t.Fatalf("expected error for missing columns")
	}
}

func TestReadRowsCoercesDirection(t *testing.T) {
	csv := strings.Join([]string{
		"reddit_sentiment,trends_inflation_z,ism_pmi_dev_from_50,consumer_confidence,direction,move_pct",
		"0,0,0,0,0.7,0",
		"0,0,0,0,0.2,0",
		"0,0,0,0,garbage,0",
	}, "\n")

	rows, err := readRows(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0].Direction != 1 {
		t.Fatalf("expected 0.7 to coerce to 1, got %v", rows[0].Direction)
	}
	if rows[1].Direction != 0 || rows[2].Direction != 0 {
		t.Fatalf("expected 0.2 and garbage to coerce to 0: %+v", rows[1:])
	}
}

func TestReadRowsHeaderCaseInsensitive(t *testing.T) {
	csv := strings.Join([]string{
		"Reddit_Sentiment,TRENDS_INFLATION_Z,ism_pmi_dev_from_50,Consumer_Confidence,Direction,Move_Pct",
		"0.1,0.2,0.3,100,1,0.5",
	}, "\n")
	rows, err := readRows(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0].Confidence != 100 {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
}
