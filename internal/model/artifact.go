// Package model scores feature vectors with a versioned learned artifact
// and fits that artifact offline.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"wallstonks/internal/domain"
)

// ArtifactVersion is the only schema version this scorer understands.
// Unknown versions are rejected gracefully, never crashed on.
const ArtifactVersion = 1

// TrainerFeatures is the artifact's feature list, in training column order.
var TrainerFeatures = []string{
	domain.FeatureRedditSentiment,
	domain.FeatureTrendsInflationZ,
	domain.FeaturePMIDevFrom50,
	domain.FeatureConfidence,
}

// SubModel is one of the artifact's two fitted heads.
type SubModel struct {
	Type    string             `json:"type"`
	Weights map[string]float64 `json:"weights"`
	Bias    float64            `json:"bias"`
	ClipPct float64            `json:"clip_pct,omitempty"`
}

// Artifact is the immutable, versioned output of the offline trainer.
// Written once, loaded fresh by each scoring call; re-reads are idempotent.
type Artifact struct {
	Version   int      `json:"version"`
	Features  []string `json:"features"`
	Direction SubModel `json:"direction"`
	Magnitude SubModel `json:"magnitude"`
}

// LoadArtifact reads and validates an artifact file.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	if err := a.validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Save writes the artifact as indented JSON.
func (a *Artifact) Save(path string) error {
	if a == nil {
		return errors.New("nil artifact")
	}
	if err := a.validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (a *Artifact) validate() error {
	if a.Version != ArtifactVersion {
		return fmt.Errorf("unsupported artifact version %d", a.Version)
	}
	if a.Direction.Weights == nil || a.Magnitude.Weights == nil {
		return errors.New("artifact is missing weight maps")
	}
	return nil
}
