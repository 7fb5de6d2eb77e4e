// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"testing"

	"github.com/AuroraCareAI/PulmoScreen/services/screening/catalog"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/datatypes"
)

func mustCatalog(t *testing.T, qs []datatypes.Question) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load(qs)
	if err != nil {
		t.Fatalf("Expected catalog to load, got: %v", err)
	}
	return cat
}

func chainCatalog(t *testing.T) *catalog.Catalog {
	return mustCatalog(t, []datatypes.Question{
		{ID: "a", Prompt: "A?", Required: true, Options: []string{"yes", "no"}},
		{ID: "b", Prompt: "B?", DependsOn: &datatypes.Dependency{QuestionID: "a", ExpectedValue: "yes"}},
		{ID: "c", Prompt: "C?", DependsOn: &datatypes.Dependency{QuestionID: "b", ExpectedValue: "often"}},
		{ID: "d", Prompt: "D?"},
	})
}

func TestEligible_UnansweredDependencyBlocks(t *testing.T) {
	cat := chainCatalog(t)

	got := ids(Eligible(cat, map[string]string{}, nil))
	want := []string{"a", "d"}
	assertIDs(t, want, got)
}

func TestEligible_TransitiveUnlock(t *testing.T) {
	cat := chainCatalog(t)

	got := ids(Eligible(cat, map[string]string{"a": "yes"}, nil))
	assertIDs(t, []string{"b", "d"}, got)

	got = ids(Eligible(cat, map[string]string{"a": "yes", "b": "often"}, nil))
	assertIDs(t, []string{"c", "d"}, got)
}

func TestEligible_MismatchKeepsDependentOut(t *testing.T) {
	cat := chainCatalog(t)

	got := ids(Eligible(cat, map[string]string{"a": "no"}, nil))
	assertIDs(t, []string{"d"}, got)
}

func TestEligible_SkippedExcludedAndBlocksDependents(t *testing.T) {
	cat := chainCatalog(t)

	// Skipping "a" removes it, and since it can never be answered its
	// dependents stay out too.
	got := ids(Eligible(cat, map[string]string{}, map[string]bool{"a": true}))
	assertIDs(t, []string{"d"}, got)
}

func TestEligible_DeclarationOrderPreserved(t *testing.T) {
	cat := chainCatalog(t)

	got := ids(Eligible(cat, map[string]string{"a": "yes", "b": "often"}, nil))
	if len(got) != 2 || got[0] != "c" || got[1] != "d" {
		t.Errorf("Expected declaration order [c d], got %v", got)
	}
}

func TestDependencyMet_TrimsBothSides(t *testing.T) {
	dep := &datatypes.Dependency{QuestionID: "a", ExpectedValue: " yes "}

	if !dependencyMet(dep, map[string]string{"a": "yes"}) {
		t.Error("Expected trimmed expected value to match")
	}
	if !dependencyMet(dep, map[string]string{"a": "  yes\n"}) {
		t.Error("Expected trimmed answer to match")
	}
	if dependencyMet(dep, map[string]string{"a": "Yes"}) {
		t.Error("Expected case-sensitive comparison to fail for 'Yes'")
	}
	if dependencyMet(dep, map[string]string{}) {
		t.Error("Expected unanswered gate to block")
	}
	if !dependencyMet(nil, map[string]string{}) {
		t.Error("Expected nil dependency to always pass")
	}
}

func TestEligible_RecomputedFromCurrentAnswers(t *testing.T) {
	cat := chainCatalog(t)

	answers := map[string]string{"a": "yes"}
	assertIDs(t, []string{"b", "d"}, ids(Eligible(cat, answers, nil)))

	// A later overwrite of the gating answer is reflected immediately.
	answers["a"] = "no"
	assertIDs(t, []string{"d"}, ids(Eligible(cat, answers, nil)))
}

func ids(qs []datatypes.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func assertIDs(t *testing.T, want, got []string) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("Expected ids %v, got %v", want, got)
	}
	for i := range want {
		if want[i] != got[i] {
			t.Fatalf("Expected ids %v, got %v", want, got)
		}
	}
}
