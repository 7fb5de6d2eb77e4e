// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package risk

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// Levels and Thresholds
// =============================================================================

// Level is the discrete risk bucket derived from a numeric score.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// Thresholds maps scores to levels: score >= High is high, score >= Medium
// is medium, anything below is low. The mapping is total and monotonic by
// construction: every non-negative score lands in exactly one bucket.
type Thresholds struct {
	Medium int `yaml:"medium"`
	High   int `yaml:"high"`
}

// DefaultThresholds returns the built-in banding: 0-2 low, 3-5 medium,
// 6 and up high.
func DefaultThresholds() Thresholds {
	return Thresholds{Medium: 3, High: 6}
}

// Validate rejects threshold configurations with inverted or negative
// boundaries, which would make the level mapping ambiguous.
func (t Thresholds) Validate() error {
	if t.Medium < 0 || t.High < 0 {
		return fmt.Errorf("risk thresholds must be non-negative, got medium=%d high=%d", t.Medium, t.High)
	}
	if t.Medium > t.High {
		return fmt.Errorf("risk threshold medium=%d exceeds high=%d", t.Medium, t.High)
	}
	return nil
}

// =============================================================================
// Scorer
// =============================================================================

// Scorer evaluates the configured risk factor table against answer maps.
// It is immutable after construction and safe for concurrent use.
type Scorer struct {
	factors    []Factor
	thresholds Thresholds
}

// NewScorer validates the factor table and thresholds and builds a Scorer.
func NewScorer(factors []Factor, thresholds Thresholds) (*Scorer, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	for i := range factors {
		f := &factors[i]
		if f.Name == "" {
			return nil, fmt.Errorf("risk factor at position %d has no name", i)
		}
		if f.Weight <= 0 {
			return nil, fmt.Errorf("risk factor %q has non-positive weight %d", f.Name, f.Weight)
		}
		if err := f.Trigger.Validate(); err != nil {
			return nil, fmt.Errorf("risk factor %q: %w", f.Name, err)
		}
	}
	owned := make([]Factor, len(factors))
	copy(owned, factors)
	return &Scorer{factors: owned, thresholds: thresholds}, nil
}

// DefaultScorer builds a Scorer from the built-in factor table and
// thresholds.
func DefaultScorer() (*Scorer, error) {
	return NewScorer(DefaultFactors(), DefaultThresholds())
}

// Score sums the weights of every factor whose trigger fires against the
// ID-keyed answer map, and maps the total to a level.
func (s *Scorer) Score(answers map[string]string) (int, Level) {
	total := 0
	for i := range s.factors {
		if s.factors[i].Trigger.Fires(answers) {
			total += s.factors[i].Weight
		}
	}
	return total, s.LevelFor(total)
}

// TriggeredFactors returns the names of factors that fire for the answer
// map, in table order. The report composer uses this for the findings
// section.
func (s *Scorer) TriggeredFactors(answers map[string]string) []Factor {
	var fired []Factor
	for i := range s.factors {
		if s.factors[i].Trigger.Fires(answers) {
			fired = append(fired, s.factors[i])
		}
	}
	return fired
}

// LevelFor maps a numeric score to its level bucket.
func (s *Scorer) LevelFor(score int) Level {
	switch {
	case score >= s.thresholds.High:
		return LevelHigh
	case score >= s.thresholds.Medium:
		return LevelMedium
	default:
		return LevelLow
	}
}

// =============================================================================
// File Loading
// =============================================================================

// fileSchema is the on-disk YAML shape of a risk factor file.
type fileSchema struct {
	Thresholds Thresholds `yaml:"thresholds"`
	Factors    []Factor   `yaml:"factors"`
}

// LoadFile reads a risk factor table from a YAML file. Missing thresholds
// fall back to the defaults; a malformed factor aborts startup.
func LoadFile(path string) (*Scorer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read risk factor file %s: %w", path, err)
	}

	schema := fileSchema{Thresholds: DefaultThresholds()}
	if err := yaml.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("parse risk factor file %s: %w", path, err)
	}

	scorer, err := NewScorer(schema.Factors, schema.Thresholds)
	if err != nil {
		return nil, fmt.Errorf("risk factor file %s: %w", path, err)
	}
	return scorer, nil
}
