// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import "testing"

// =============================================================================
// Question Helper Tests
// =============================================================================

func TestQuestion_FreeText(t *testing.T) {
	q := Question{ID: "name"}
	if !q.FreeText() {
		t.Error("expected question without options or rule to be free text")
	}

	withOptions := Question{ID: "smoking", Options: []string{"yes", "no"}}
	if withOptions.FreeText() {
		t.Error("expected option question not to be free text")
	}

	withRule := Question{ID: "age", Rule: ValidationRule{Kind: RuleIntRange, Min: 0, Max: 120}}
	if withRule.FreeText() {
		t.Error("expected rule-bearing question not to be free text")
	}
}

func TestQuestion_HasOption(t *testing.T) {
	q := Question{ID: "smoking", Options: []string{"yes", "no"}}

	if !q.HasOption("yes") {
		t.Error("expected exact option match")
	}
	if !q.HasOption("  no  ") {
		t.Error("expected surrounding whitespace trimmed before matching")
	}
	if q.HasOption("YES") {
		t.Error("expected option matching to be case sensitive")
	}
	if q.HasOption("maybe") {
		t.Error("expected unknown value rejected")
	}
}

func TestQuestion_HasOption_NoOptions(t *testing.T) {
	q := Question{ID: "name"}
	if q.HasOption("anything") {
		t.Error("expected no match on a question without options")
	}
}
