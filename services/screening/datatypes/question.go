// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package datatypes provides data structures for the screening service.
//
// This file contains the question definition types shared by the catalog,
// the selection engine and the HTTP layer. Questions are closed, explicitly
// tagged structures: a missing or misspelled field is a load-time error,
// never a silent runtime miss.
package datatypes

import (
	"strings"
)

// =============================================================================
// Question Definition Types
// =============================================================================

// RuleKind identifies the structural validation applied to an answer.
type RuleKind string

const (
	// RuleNone accepts any non-empty free-text answer (and empty answers
	// for non-required questions).
	RuleNone RuleKind = ""

	// RuleIntRange requires an integer between Min and Max inclusive.
	RuleIntRange RuleKind = "int_range"

	// RuleNumberRange requires a number (integer or decimal) between Min
	// and Max inclusive. Used for measurements like height and weight.
	RuleNumberRange RuleKind = "number_range"

	// RuleEnum requires the answer to match one of the question's Options.
	RuleEnum RuleKind = "enum"

	// RulePattern requires the answer to match a regular expression.
	RulePattern RuleKind = "pattern"
)

// ValidationRule is the structural check for one question's answers.
//
// Min and Max are only meaningful for RuleIntRange and RuleNumberRange;
// Pattern only for RulePattern. RuleEnum checks membership in the owning
// question's Options.
type ValidationRule struct {
	Kind    RuleKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Min     float64  `json:"min,omitempty" yaml:"min,omitempty"`
	Max     float64  `json:"max,omitempty" yaml:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// Dependency gates a question on a previous answer.
//
// The owning question is eligible only once the referenced question has been
// answered with exactly ExpectedValue (string equality after whitespace
// trimming). One dependency per question; chains of dependencies resolve
// transitively through the resolver.
type Dependency struct {
	QuestionID    string `json:"question_id" yaml:"question_id"`
	ExpectedValue string `json:"expected_value" yaml:"expected_value"`
}

// Question is one immutable catalog entry.
//
// Questions are loaded once at startup and never mutated afterwards. The
// zero Options slice means free text; a non-empty Options slice is an
// ordered list of the allowed answers.
type Question struct {
	ID        string         `json:"id" yaml:"id"`
	Label     string         `json:"label" yaml:"label"`
	Prompt    string         `json:"prompt" yaml:"prompt"`
	Category  string         `json:"category" yaml:"category"`
	Required  bool           `json:"required,omitempty" yaml:"required,omitempty"`
	Options   []string       `json:"options,omitempty" yaml:"options,omitempty"`
	Rule      ValidationRule `json:"rule,omitempty" yaml:"rule,omitempty"`
	DependsOn *Dependency    `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
}

// FreeText reports whether the question accepts unconstrained text.
func (q *Question) FreeText() bool {
	return len(q.Options) == 0 && q.Rule.Kind == RuleNone
}

// HasOption reports whether value matches one of the question's options.
// Comparison trims surrounding whitespace; option matching is exact
// otherwise, the same equality the dependency resolver uses.
func (q *Question) HasOption(value string) bool {
	value = strings.TrimSpace(value)
	for _, opt := range q.Options {
		if opt == value {
			return true
		}
	}
	return false
}
