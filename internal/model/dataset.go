package model

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"wallstonks/internal/domain"
)

// LoadCSV reads historical training rows from a CSV with a header line.
// Required columns: the four trainer features plus direction (0/1) and
// move_pct. Extra columns (date, notes) are ignored; blank or unparsable
// numeric cells default to zero.
func LoadCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return readRows(f)
}

func readRows(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	required := append(append([]string(nil), TrainerFeatures...), "direction", "move_pct")
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("dataset is missing column %q", col)
		}
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset row: %w", err)
		}
		cell := func(col string) float64 {
			i := index[col]
			if i >= len(record) {
				return 0
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return 0
			}
			return v
		}
		direction := 0.0
		if cell("direction") >= 0.5 {
			direction = 1
		}
		rows = append(rows, Row{
			RedditSentiment:  cell(domain.FeatureRedditSentiment),
			TrendsInflationZ: cell(domain.FeatureTrendsInflationZ),
			PMIDevFrom50:     cell(domain.FeaturePMIDevFrom50),
			Confidence:       cell(domain.FeatureConfidence),
			Direction:        direction,
			MovePct:          cell("move_pct"),
		})
	}
	return rows, nil
}
