// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"github.com/AuroraCareAI/PulmoScreen/services/screening/catalog"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/datatypes"
)

// SelectionMode names a question-ordering strategy.
type SelectionMode string

const (
	// ModeSequential walks the catalog in declaration order.
	ModeSequential SelectionMode = "sequential"
	// ModeAdaptive scores every eligible question each turn and asks the
	// highest-priority one.
	ModeAdaptive SelectionMode = "adaptive"
)

// SelectionStrategy picks the next question to ask. Implementations see
// the full answer map, the ids the session wants withheld (retry-queued,
// skipped, currently presented), and the session profile.
type SelectionStrategy interface {
	Next(answers map[string]string, excluded map[string]bool, profile map[string]string) (*datatypes.Question, bool)
}

// NewStrategy builds the strategy for mode, or ErrInvalidMode.
func NewStrategy(mode SelectionMode, cat *catalog.Catalog, cfg ScorerConfig) (SelectionStrategy, error) {
	switch mode {
	case ModeSequential:
		return &SequentialStrategy{cat: cat}, nil
	case ModeAdaptive:
		return &ScoredStrategy{cat: cat, cfg: cfg}, nil
	default:
		return nil, ErrInvalidMode
	}
}

// SequentialStrategy asks questions in the order the catalog declares
// them, skipping anything answered, excluded, or dependency-blocked.
type SequentialStrategy struct {
	cat *catalog.Catalog
}

func (s *SequentialStrategy) Next(answers map[string]string, excluded map[string]bool, _ map[string]string) (*datatypes.Question, bool) {
	for _, q := range Eligible(s.cat, answers, excluded) {
		q := q
		return &q, true
	}
	return nil, false
}

// AffinityRule boosts a category when the session profile carries a
// matching key/value pair.
type AffinityRule struct {
	ProfileKey   string  `yaml:"profile_key"`
	ProfileValue string  `yaml:"profile_value"`
	Category     string  `yaml:"category"`
	Factor       float64 `yaml:"factor"`
}

// HighRiskRule marks an answer that, once recorded, boosts every pending
// question in BoostCategory so follow-up on the concerning area happens
// sooner.
type HighRiskRule struct {
	QuestionID    string `yaml:"question_id"`
	Answer        string `yaml:"answer"`
	BoostCategory string `yaml:"boost_category"`
}

// ScorerConfig parameterizes the adaptive strategy. Zero values fall back
// to sensible behavior: a category absent from BasePriorities scores
// DefaultBase, an empty Urgency map multiplies by one.
type ScorerConfig struct {
	BasePriorities map[string]float64 `yaml:"base_priorities"`
	DefaultBase    float64            `yaml:"default_base"`
	Urgency        map[string]float64 `yaml:"urgency"`
	Affinity       []AffinityRule     `yaml:"affinity"`
	HighRisk       []HighRiskRule     `yaml:"high_risk"`
}

// DefaultScorerConfig returns the shipped tuning: demographics and the
// strongest risk discriminators front-loaded, lifestyle context later,
// with high-risk boosts for positive smoking, symptom, and cancer-history
// answers.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		BasePriorities: map[string]float64{
			catalog.CategoryBasicInfo:    95,
			catalog.CategorySmoking:      92,
			catalog.CategoryBodyMetrics:  90,
			catalog.CategorySymptoms:     90,
			catalog.CategoryTumorHistory: 88,
			catalog.CategoryOccupational: 85,
			catalog.CategoryPassiveSmoke: 80,
			catalog.CategoryRespiratory:  80,
			catalog.CategoryImaging:      75,
			catalog.CategoryKitchenFumes: 70,
			catalog.CategorySocial:       60,
			catalog.CategorySelfReport:   55,
		},
		DefaultBase: 50,
		HighRisk: []HighRiskRule{
			{QuestionID: "smoking_history", Answer: catalog.AnswerYes, BoostCategory: catalog.CategorySmoking},
			{QuestionID: "recent_symptoms", Answer: catalog.AnswerYes, BoostCategory: catalog.CategorySymptoms},
			{QuestionID: "personal_tumor_history", Answer: catalog.AnswerYes, BoostCategory: catalog.CategoryTumorHistory},
			{QuestionID: "family_cancer_history", Answer: catalog.AnswerYes, BoostCategory: catalog.CategoryTumorHistory},
			{QuestionID: "passive_smoking", Answer: catalog.AnswerYes, BoostCategory: catalog.CategoryPassiveSmoke},
		},
	}
}

// ScoredStrategy asks the highest-scoring eligible question each turn.
// Ties resolve to the earliest catalog position, which keeps the ordering
// deterministic for identical state.
type ScoredStrategy struct {
	cat *catalog.Catalog
	cfg ScorerConfig
}

func (s *ScoredStrategy) Next(answers map[string]string, excluded map[string]bool, profile map[string]string) (*datatypes.Question, bool) {
	var best *datatypes.Question
	bestScore := 0.0
	for _, q := range Eligible(s.cat, answers, excluded) {
		q := q
		score := s.Score(&q, answers, profile)
		if score > bestScore {
			best = &q
			bestScore = score
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

// Score computes the priority of a single question against the current
// answers and profile. Every adjustment is a multiplier over the category
// base, so the factors compose without ordering sensitivity. An
// ineligible question scores zero regardless of the other terms.
func (s *ScoredStrategy) Score(q *datatypes.Question, answers map[string]string, profile map[string]string) float64 {
	if _, done := answers[q.ID]; done {
		return 0
	}
	if !dependencyMet(q.DependsOn, answers) {
		return 0
	}

	score := s.cfg.DefaultBase
	if base, ok := s.cfg.BasePriorities[q.Category]; ok {
		score = base
	}

	if q.DependsOn != nil {
		// The gating answer is already in hand, so this follow-up is
		// contextually hot.
		score *= 1.2
	}
	for _, rule := range s.cfg.HighRisk {
		if rule.BoostCategory != q.Category {
			continue
		}
		if got, ok := answers[rule.QuestionID]; ok && got == rule.Answer {
			score *= 1.5
			break
		}
	}
	if mult, ok := s.cfg.Urgency[q.Category]; ok && mult > 0 {
		score *= mult
	}
	for _, rule := range s.cfg.Affinity {
		if rule.Category != q.Category || rule.Factor <= 0 {
			continue
		}
		if profile[rule.ProfileKey] == rule.ProfileValue {
			score *= rule.Factor
		}
	}
	if q.Required {
		score *= 1.1
	}
	return score
}
