// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"math"
	"testing"

	"github.com/AuroraCareAI/PulmoScreen/services/screening/catalog"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/datatypes"
)

func scoringCatalog(t *testing.T) *catalog.Catalog {
	return mustCatalog(t, []datatypes.Question{
		{ID: "intro", Prompt: "Intro?", Category: "chatter"},
		{ID: "smokes", Prompt: "Smoke?", Category: "habits", Required: true, Options: []string{"yes", "no"}},
		{ID: "how_much", Prompt: "How much?", Category: "habits",
			DependsOn: &datatypes.Dependency{QuestionID: "smokes", ExpectedValue: "yes"}},
		{ID: "coughs", Prompt: "Cough?", Category: "symptoms", Options: []string{"yes", "no"}},
	})
}

func scoringConfig() ScorerConfig {
	return ScorerConfig{
		BasePriorities: map[string]float64{
			"habits":   80,
			"symptoms": 70,
		},
		DefaultBase: 50,
		HighRisk: []HighRiskRule{
			{QuestionID: "smokes", Answer: "yes", BoostCategory: "symptoms"},
		},
	}
}

func TestSequentialStrategy_DeclarationOrder(t *testing.T) {
	cat := scoringCatalog(t)
	s := &SequentialStrategy{cat: cat}

	q, ok := s.Next(map[string]string{}, nil, nil)
	if !ok || q.ID != "intro" {
		t.Fatalf("Expected first declared question 'intro', got %v ok=%v", q, ok)
	}

	q, ok = s.Next(map[string]string{"intro": "hi"}, nil, nil)
	if !ok || q.ID != "smokes" {
		t.Fatalf("Expected 'smokes' next, got %v ok=%v", q, ok)
	}
}

func TestScoredStrategy_AnsweredScoresZero(t *testing.T) {
	cat := scoringCatalog(t)
	s := &ScoredStrategy{cat: cat, cfg: scoringConfig()}

	q, _ := cat.ByID("smokes")
	if got := s.Score(q, map[string]string{"smokes": "yes"}, nil); got != 0 {
		t.Errorf("Expected answered question to score 0, got %v", got)
	}
}

func TestScoredStrategy_UnmetDependencyScoresZero(t *testing.T) {
	cat := scoringCatalog(t)
	s := &ScoredStrategy{cat: cat, cfg: scoringConfig()}

	q, _ := cat.ByID("how_much")
	if got := s.Score(q, map[string]string{}, nil); got != 0 {
		t.Errorf("Expected dependency-blocked question to score 0, got %v", got)
	}
	if got := s.Score(q, map[string]string{"smokes": "no"}, nil); got != 0 {
		t.Errorf("Expected mismatched gate to score 0, got %v", got)
	}
}

func TestScoredStrategy_MultipliersCompose(t *testing.T) {
	cat := scoringCatalog(t)
	s := &ScoredStrategy{cat: cat, cfg: scoringConfig()}

	// how_much: base 80, dependency satisfied x1.2 = 96.
	q, _ := cat.ByID("how_much")
	got := s.Score(q, map[string]string{"smokes": "yes"}, nil)
	if math.Abs(got-96) > 1e-9 {
		t.Errorf("Expected 80*1.2=96, got %v", got)
	}

	// coughs: base 70, high-risk boost x1.5 = 105 once smokes=yes.
	q, _ = cat.ByID("coughs")
	got = s.Score(q, map[string]string{"smokes": "yes"}, nil)
	if math.Abs(got-105) > 1e-9 {
		t.Errorf("Expected 70*1.5=105, got %v", got)
	}

	// smokes: base 80, required x1.1 = 88.
	q, _ = cat.ByID("smokes")
	got = s.Score(q, map[string]string{}, nil)
	if math.Abs(got-88) > 1e-9 {
		t.Errorf("Expected 80*1.1=88, got %v", got)
	}
}

func TestScoredStrategy_DefaultBaseForUnknownCategory(t *testing.T) {
	cat := scoringCatalog(t)
	s := &ScoredStrategy{cat: cat, cfg: scoringConfig()}

	q, _ := cat.ByID("intro")
	if got := s.Score(q, map[string]string{}, nil); math.Abs(got-50) > 1e-9 {
		t.Errorf("Expected default base 50 for unlisted category, got %v", got)
	}
}

func TestScoredStrategy_AffinityNeedsProfileMatch(t *testing.T) {
	cfg := scoringConfig()
	cfg.Affinity = []AffinityRule{
		{ProfileKey: "referral", ProfileValue: "pulmonology", Category: "symptoms", Factor: 1.3},
	}
	cat := scoringCatalog(t)
	s := &ScoredStrategy{cat: cat, cfg: cfg}

	q, _ := cat.ByID("coughs")
	base := s.Score(q, map[string]string{}, nil)
	boosted := s.Score(q, map[string]string{}, map[string]string{"referral": "pulmonology"})
	if math.Abs(boosted-base*1.3) > 1e-9 {
		t.Errorf("Expected affinity x1.3 over %v, got %v", base, boosted)
	}
	same := s.Score(q, map[string]string{}, map[string]string{"referral": "cardiology"})
	if same != base {
		t.Errorf("Expected non-matching profile to leave score at %v, got %v", base, same)
	}
}

func TestScoredStrategy_TieBreaksToEarliestDeclared(t *testing.T) {
	cat := mustCatalog(t, []datatypes.Question{
		{ID: "first", Prompt: "1?", Category: "same"},
		{ID: "second", Prompt: "2?", Category: "same"},
	})
	s := &ScoredStrategy{cat: cat, cfg: ScorerConfig{DefaultBase: 50}}

	q, ok := s.Next(map[string]string{}, nil, nil)
	if !ok || q.ID != "first" {
		t.Errorf("Expected tie to resolve to 'first', got %v ok=%v", q, ok)
	}
}

func TestScoredStrategy_DeterministicForSameState(t *testing.T) {
	cat := scoringCatalog(t)
	s := &ScoredStrategy{cat: cat, cfg: scoringConfig()}
	answers := map[string]string{"smokes": "yes"}

	first, ok := s.Next(answers, nil, nil)
	if !ok {
		t.Fatal("Expected a pick")
	}
	for i := 0; i < 10; i++ {
		again, ok := s.Next(answers, nil, nil)
		if !ok || again.ID != first.ID {
			t.Fatalf("Expected stable pick %q, got %v ok=%v", first.ID, again, ok)
		}
	}
}

func TestScoredStrategy_ExclusionRespected(t *testing.T) {
	cat := scoringCatalog(t)
	s := &ScoredStrategy{cat: cat, cfg: scoringConfig()}

	q, ok := s.Next(map[string]string{}, map[string]bool{"smokes": true}, nil)
	if !ok {
		t.Fatal("Expected a pick with 'smokes' excluded")
	}
	if q.ID == "smokes" {
		t.Error("Expected excluded question not to be picked")
	}
}

func TestNewStrategy_RejectsUnknownMode(t *testing.T) {
	cat := scoringCatalog(t)
	if _, err := NewStrategy("random", cat, ScorerConfig{}); err == nil {
		t.Error("Expected error for unknown selection mode")
	}
}
