// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package risk derives a weighted risk score and level from a completed
// answer map.
//
// # Description
//
// Risk factors are read-only reference data, never session state. Each
// factor has a trigger condition over one or more answers; every factor
// whose trigger fires contributes its weight to the total score, and the
// total maps to a discrete level through configurable, non-overlapping
// thresholds.
//
// Trigger conditions are closed tagged types rather than a free-form
// expression language: the whole vocabulary is visible below, and an
// unknown kind is a load-time configuration error.
package risk

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// Trigger Conditions
// =============================================================================

// TriggerKind discriminates the trigger condition variants.
type TriggerKind string

const (
	// TriggerAnswerEquals fires when a question was answered with exactly
	// Value (whitespace-trimmed string equality).
	TriggerAnswerEquals TriggerKind = "answer_equals"

	// TriggerAnswerIn fires when a question's answer is any of Values.
	TriggerAnswerIn TriggerKind = "answer_in"

	// TriggerNumberOver fires when a question's numeric answer exceeds
	// Threshold. Unparseable or missing answers never fire.
	TriggerNumberOver TriggerKind = "number_over"

	// TriggerPackYearsOver fires when the derived smoking exposure metric
	// years * daily / 20 exceeds Threshold. YearsID and DailyID name the
	// two source questions; both must parse as numbers.
	TriggerPackYearsOver TriggerKind = "pack_years_over"
)

// Trigger is one closed trigger condition. Which fields are meaningful
// depends on Kind; Validate enforces that at load time.
type Trigger struct {
	Kind       TriggerKind `yaml:"kind"`
	QuestionID string      `yaml:"question_id,omitempty"`
	Value      string      `yaml:"value,omitempty"`
	Values     []string    `yaml:"values,omitempty"`
	Threshold  float64     `yaml:"threshold,omitempty"`
	YearsID    string      `yaml:"years_id,omitempty"`
	DailyID    string      `yaml:"daily_id,omitempty"`
}

// Validate checks the trigger's fields match its kind.
func (t *Trigger) Validate() error {
	switch t.Kind {
	case TriggerAnswerEquals:
		if t.QuestionID == "" || t.Value == "" {
			return fmt.Errorf("answer_equals trigger needs question_id and value")
		}
	case TriggerAnswerIn:
		if t.QuestionID == "" || len(t.Values) == 0 {
			return fmt.Errorf("answer_in trigger needs question_id and values")
		}
	case TriggerNumberOver:
		if t.QuestionID == "" {
			return fmt.Errorf("number_over trigger needs question_id")
		}
	case TriggerPackYearsOver:
		if t.YearsID == "" || t.DailyID == "" {
			return fmt.Errorf("pack_years_over trigger needs years_id and daily_id")
		}
	default:
		return fmt.Errorf("unknown trigger kind %q", t.Kind)
	}
	return nil
}

// Fires evaluates the trigger against an ID-keyed answer map.
func (t *Trigger) Fires(answers map[string]string) bool {
	switch t.Kind {
	case TriggerAnswerEquals:
		got, ok := answers[t.QuestionID]
		return ok && strings.TrimSpace(got) == t.Value
	case TriggerAnswerIn:
		got, ok := answers[t.QuestionID]
		if !ok {
			return false
		}
		got = strings.TrimSpace(got)
		for _, v := range t.Values {
			if got == v {
				return true
			}
		}
		return false
	case TriggerNumberOver:
		n, ok := numericAnswer(answers, t.QuestionID)
		return ok && n > t.Threshold
	case TriggerPackYearsOver:
		years, ok := numericAnswer(answers, t.YearsID)
		if !ok {
			return false
		}
		daily, ok := numericAnswer(answers, t.DailyID)
		if !ok {
			return false
		}
		return PackYears(years, daily) > t.Threshold
	}
	return false
}

// numericAnswer parses an answer as a float. Missing or malformed answers
// report false rather than erroring: risk factors must tolerate partially
// answered sessions.
func numericAnswer(answers map[string]string, id string) (float64, bool) {
	raw, ok := answers[id]
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// PackYears computes the smoking exposure metric: years of smoking times
// cigarettes per day, divided by twenty (a pack).
func PackYears(years, daily float64) float64 {
	return years * daily / 20
}

// =============================================================================
// Risk Factors
// =============================================================================

// Factor is one weighted risk contribution with its trigger condition.
type Factor struct {
	Name     string  `yaml:"name"`
	Category string  `yaml:"category"`
	Weight   int     `yaml:"weight"`
	Trigger  Trigger `yaml:"trigger"`
}

// DefaultFactors returns the built-in lung cancer risk factor table for the
// default catalog. Pack-year bands are additive: heavy smokers trip both
// the 20 and 30 pack-year factors on top of the base smoking weight.
func DefaultFactors() []Factor {
	return []Factor{
		{
			Name: "smoking", Category: "smoking_history", Weight: 3,
			Trigger: Trigger{Kind: TriggerAnswerEquals, QuestionID: "smoking_history", Value: "yes"},
		},
		{
			Name: "pack_years_moderate", Category: "smoking_history", Weight: 1,
			Trigger: Trigger{Kind: TriggerPackYearsOver, YearsID: "smoking_years", DailyID: "smoking_freq", Threshold: 20},
		},
		{
			Name: "pack_years_heavy", Category: "smoking_history", Weight: 2,
			Trigger: Trigger{Kind: TriggerPackYearsOver, YearsID: "smoking_years", DailyID: "smoking_freq", Threshold: 30},
		},
		{
			Name: "passive_smoking", Category: "passive_smoking", Weight: 1,
			Trigger: Trigger{Kind: TriggerAnswerEquals, QuestionID: "passive_smoking", Value: "yes"},
		},
		{
			Name: "occupational_exposure", Category: "occupational_exposure", Weight: 2,
			Trigger: Trigger{Kind: TriggerAnswerEquals, QuestionID: "occupation_exposure", Value: "yes"},
		},
		{
			Name: "personal_tumor_history", Category: "tumor_history", Weight: 2,
			Trigger: Trigger{Kind: TriggerAnswerEquals, QuestionID: "personal_tumor_history", Value: "yes"},
		},
		{
			Name: "family_cancer_history", Category: "tumor_history", Weight: 2,
			Trigger: Trigger{Kind: TriggerAnswerEquals, QuestionID: "family_cancer_history", Value: "yes"},
		},
		{
			Name: "chronic_lung_disease", Category: "respiratory_history", Weight: 1,
			Trigger: Trigger{Kind: TriggerAnswerEquals, QuestionID: "chronic_lung_disease", Value: "yes"},
		},
		{
			Name: "recent_symptoms", Category: "recent_symptoms", Weight: 3,
			Trigger: Trigger{Kind: TriggerAnswerEquals, QuestionID: "recent_symptoms", Value: "yes"},
		},
	}
}
