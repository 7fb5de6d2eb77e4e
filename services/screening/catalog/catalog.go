// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package catalog provides the immutable question catalog for the screening
// engine.
//
// # Description
//
// A Catalog is loaded once at startup from the built-in definitions or a
// YAML file, validated for structural integrity, and shared read-only by
// every session afterwards. Validation failures are fatal configuration
// errors: no partial catalog is ever served.
//
// # Validation
//
// Load rejects definitions with:
//   - duplicate question IDs
//   - a depends_on reference to a question that does not exist anywhere
//     in the catalog (resolution is by lookup, not position, so forward
//     references are fine)
//   - a cycle in the dependency graph, detected by depth-first traversal
//     with visiting/visited marks
//
// # Thread Safety
//
// Catalog is immutable after Load and safe for unlimited concurrent reads.
package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/AuroraCareAI/PulmoScreen/services/screening/datatypes"
)

// =============================================================================
// Configuration Errors
// =============================================================================

// ConfigError is a fatal catalog configuration problem found at load time.
// It aborts startup; it is never produced at interview time.
type ConfigError struct {
	QuestionID string
	Reason     string
}

func (e *ConfigError) Error() string {
	if e.QuestionID == "" {
		return fmt.Sprintf("catalog config error: %s", e.Reason)
	}
	return fmt.Sprintf("catalog config error: question %q: %s", e.QuestionID, e.Reason)
}

// CyclicDependencyError reports a dependency cycle. Cycle holds the question
// IDs along the cycle in traversal order.
type CyclicDependencyError struct {
	Cycle []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("catalog config error: cyclic dependency: %s",
		strings.Join(e.Cycle, " -> "))
}

// =============================================================================
// Catalog
// =============================================================================

// Catalog is the validated, immutable set of screening questions in
// declaration order.
type Catalog struct {
	questions []datatypes.Question
	index     map[string]int
}

// Load validates definitions and builds a Catalog.
//
// # Inputs
//
//   - questions: Question definitions in declaration order.
//
// # Outputs
//
//   - *Catalog: The immutable catalog on success.
//   - error: *ConfigError or *CyclicDependencyError on structural problems.
func Load(questions []datatypes.Question) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, &ConfigError{Reason: "catalog has no questions"}
	}

	index := make(map[string]int, len(questions))
	for i, q := range questions {
		if q.ID == "" {
			return nil, &ConfigError{Reason: fmt.Sprintf("question at position %d has an empty id", i)}
		}
		if q.Prompt == "" {
			return nil, &ConfigError{QuestionID: q.ID, Reason: "empty prompt"}
		}
		if _, dup := index[q.ID]; dup {
			return nil, &ConfigError{QuestionID: q.ID, Reason: "duplicate id"}
		}
		index[q.ID] = i
	}

	for _, q := range questions {
		if err := validateRule(&q); err != nil {
			return nil, err
		}
		if q.DependsOn == nil {
			continue
		}
		if q.DependsOn.QuestionID == q.ID {
			return nil, &CyclicDependencyError{Cycle: []string{q.ID, q.ID}}
		}
		if _, ok := index[q.DependsOn.QuestionID]; !ok {
			return nil, &ConfigError{
				QuestionID: q.ID,
				Reason:     fmt.Sprintf("depends_on references unknown question %q", q.DependsOn.QuestionID),
			}
		}
	}

	if err := detectCycles(questions, index); err != nil {
		return nil, err
	}

	// Defensive copy so the caller's slice cannot mutate the catalog.
	owned := make([]datatypes.Question, len(questions))
	copy(owned, questions)

	return &Catalog{questions: owned, index: index}, nil
}

// validateRule checks the per-question validation rule is self-consistent.
func validateRule(q *datatypes.Question) error {
	switch q.Rule.Kind {
	case datatypes.RuleNone:
		// Options without an explicit rule imply enum membership, which
		// needs no extra configuration.
	case datatypes.RuleEnum:
		if len(q.Options) == 0 {
			return &ConfigError{QuestionID: q.ID, Reason: "enum rule without options"}
		}
	case datatypes.RuleIntRange, datatypes.RuleNumberRange:
		if q.Rule.Min > q.Rule.Max {
			return &ConfigError{
				QuestionID: q.ID,
				Reason:     fmt.Sprintf("range rule min %v exceeds max %v", q.Rule.Min, q.Rule.Max),
			}
		}
	case datatypes.RulePattern:
		if q.Rule.Pattern == "" {
			return &ConfigError{QuestionID: q.ID, Reason: "pattern rule without pattern"}
		}
		if _, err := regexp.Compile(q.Rule.Pattern); err != nil {
			return &ConfigError{QuestionID: q.ID, Reason: fmt.Sprintf("invalid pattern: %v", err)}
		}
	default:
		return &ConfigError{QuestionID: q.ID, Reason: fmt.Sprintf("unknown rule kind %q", q.Rule.Kind)}
	}
	return nil
}

// dfs colors for cycle detection.
const (
	colorWhite = iota // unvisited
	colorGrey         // on the current traversal path
	colorBlack        // fully explored
)

// detectCycles walks the depends_on graph depth-first. A back-edge to a
// grey node is a cycle. The graph has out-degree <= 1 (one dependency per
// question), so every cycle is a simple chain loop.
func detectCycles(questions []datatypes.Question, index map[string]int) error {
	colors := make([]int, len(questions))

	for start := range questions {
		if colors[start] != colorWhite {
			continue
		}
		var path []string
		i := start
		for {
			colors[i] = colorGrey
			path = append(path, questions[i].ID)

			dep := questions[i].DependsOn
			if dep == nil {
				break
			}
			next := index[dep.QuestionID]
			if colors[next] == colorBlack {
				break
			}
			if colors[next] == colorGrey {
				return &CyclicDependencyError{Cycle: append(path, questions[next].ID)}
			}
			i = next
		}
		for _, id := range path {
			colors[index[id]] = colorBlack
		}
	}
	return nil
}

// =============================================================================
// Read Accessors
// =============================================================================

// Len returns the number of questions in the catalog.
func (c *Catalog) Len() int { return len(c.questions) }

// ByID looks up a question by ID.
func (c *Catalog) ByID(id string) (*datatypes.Question, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return &c.questions[i], true
}

// Index returns the declaration position of a question, or -1 if unknown.
// Declaration order is the deterministic tie-break for the adaptive scorer.
func (c *Catalog) Index(id string) int {
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}

// Questions returns the questions in declaration order. Callers must treat
// the returned slice as read-only.
func (c *Catalog) Questions() []datatypes.Question { return c.questions }
