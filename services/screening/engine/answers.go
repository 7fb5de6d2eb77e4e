// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/AuroraCareAI/PulmoScreen/services/screening/datatypes"
)

// Rejection reasons produced by ValidateAnswer. These travel with the retry
// item and are surfaced to the user when the question is re-asked.
const (
	ReasonEmpty           = "empty"
	ReasonNotAnOption     = "not_an_option"
	ReasonNotAnInteger    = "not_an_integer"
	ReasonNotANumber      = "not_a_number"
	ReasonOutOfRange      = "out_of_range"
	ReasonPatternMismatch = "pattern_mismatch"
)

// Outcome is the result of structural answer validation.
//
// A rejected outcome is recoverable and never surfaced as an error: the
// caller routes it to the retry queue and the user gets the question again
// later. An empty answer to a non-required question is a refusal, which is
// accepted, not invalid input.
type Outcome struct {
	Accepted bool
	Reason   string
}

func accepted() Outcome               { return Outcome{Accepted: true} }
func rejected(reason string) Outcome { return Outcome{Reason: reason} }

// ValidateAnswer checks a candidate answer against the question's
// structural rule: type, range, enum membership, or pattern. It never
// judges semantic plausibility; any semantic review is an external
// collaborator's job, consulted by the caller.
func ValidateAnswer(q *datatypes.Question, raw string) Outcome {
	trimmed := strings.TrimSpace(raw)

	if trimmed == "" {
		if q.Required {
			return rejected(ReasonEmpty)
		}
		// Declining an optional question is a refusal, not bad input.
		return accepted()
	}

	if len(q.Options) > 0 {
		if !q.HasOption(trimmed) {
			return rejected(ReasonNotAnOption)
		}
		return accepted()
	}

	switch q.Rule.Kind {
	case datatypes.RuleIntRange:
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return rejected(ReasonNotAnInteger)
		}
		if float64(n) < q.Rule.Min || float64(n) > q.Rule.Max {
			return rejected(ReasonOutOfRange)
		}
	case datatypes.RuleNumberRange:
		n, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return rejected(ReasonNotANumber)
		}
		if n < q.Rule.Min || n > q.Rule.Max {
			return rejected(ReasonOutOfRange)
		}
	case datatypes.RulePattern:
		// Patterns are compile-checked at catalog load, so this cannot
		// fail here.
		re := regexp.MustCompile(q.Rule.Pattern)
		if !re.MatchString(trimmed) {
			return rejected(ReasonPatternMismatch)
		}
	}

	return accepted()
}
