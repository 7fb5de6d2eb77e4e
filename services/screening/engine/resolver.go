// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"strings"

	"github.com/AuroraCareAI/PulmoScreen/services/screening/catalog"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/datatypes"
)

// Eligible returns, in declaration order, every catalog question that is
// not yet answered, not marked skipped, and whose dependency (if any) is
// satisfied by the answers recorded so far.
//
// Eligibility is recomputed from scratch on every call rather than kept as
// incremental state. A question whose gating answer was later replaced by a
// forced value therefore reflects the current answer set, and an
// unanswered dependency simply keeps the dependent question out of the
// slice until the gating question resolves.
func Eligible(cat *catalog.Catalog, answers map[string]string, skipped map[string]bool) []datatypes.Question {
	out := make([]datatypes.Question, 0, cat.Len())
	for _, q := range cat.Questions() {
		if _, done := answers[q.ID]; done {
			continue
		}
		if skipped[q.ID] {
			continue
		}
		if !dependencyMet(q.DependsOn, answers) {
			continue
		}
		out = append(out, q)
	}
	return out
}

// dependencyMet reports whether dep is satisfied by the recorded answers.
// A nil dependency is always satisfied. Comparison trims surrounding
// whitespace on both sides and is otherwise exact, including case.
func dependencyMet(dep *datatypes.Dependency, answers map[string]string) bool {
	if dep == nil {
		return true
	}
	got, ok := answers[dep.QuestionID]
	if !ok {
		return false
	}
	return strings.TrimSpace(got) == strings.TrimSpace(dep.ExpectedValue)
}
