// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package report renders the final screening report and persists completed
// reports through a sink.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AuroraCareAI/PulmoScreen/services/screening/catalog"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/datatypes"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/risk"
)

const reportRule = "============================================================"

// recommendations are the fixed, level-appropriate advice blocks. Keyed by
// level so identical input always renders identical advice.
var recommendations = map[risk.Level][]string{
	risk.LevelHigh: {
		"Consult a pulmonologist or thoracic surgeon as soon as possible.",
		"A low-dose spiral CT screening is strongly recommended.",
		"Stop smoking immediately and avoid secondhand smoke.",
	},
	risk.LevelMedium: {
		"Schedule regular physical examinations.",
		"Discuss lung cancer screening options with your doctor.",
		"Watch for persistent cough, hoarseness, or blood in sputum.",
	},
	risk.LevelLow: {
		"Maintain a healthy lifestyle and stay away from tobacco.",
		"Keep rooms ventilated and limit exposure to cooking fumes.",
		"Stay alert to changes in your respiratory health.",
	},
}

// Composer renders the risk score, category answers, and recommendations
// into the final report text.
//
// Compose is deterministic: identical answers and risk input yield
// byte-identical output except for the explicit timestamp argument. No
// wall clock is read inside.
type Composer struct {
	cat    *catalog.Catalog
	scorer *risk.Scorer
}

// NewComposer builds a Composer over the shared catalog and risk scorer.
func NewComposer(cat *catalog.Catalog, scorer *risk.Scorer) *Composer {
	return &Composer{cat: cat, scorer: scorer}
}

// Compose renders the full report.
//
// # Inputs
//
//   - answers: The session's answers in answer order.
//   - score, level: The computed risk result for those answers.
//   - now: The explicit report timestamp; the only non-derived content.
//
// # Outputs
//
//   - string: The rendered report text, never empty.
func (c *Composer) Compose(answers []datatypes.AnsweredEntry, score int, level risk.Level, now time.Time) string {
	byID := make(map[string]string, len(answers))
	for _, e := range answers {
		byID[e.QuestionID] = e.Answer
	}

	var b strings.Builder
	b.WriteString("Lung Cancer Early Screening Risk Report\n\n")
	b.WriteString(reportRule + "\n\n")

	c.writeBasicInfo(&b, byID)
	c.writeFindings(&b, byID)
	c.writeAssessment(&b, score, level)
	c.writeCategorySummary(&b, answers)
	c.writeRecommendations(&b, level)
	c.writeStatistics(&b, answers)

	b.WriteString("\n" + reportRule + "\n")
	fmt.Fprintf(&b, "Report generated: %s\n", now.Format("2006-01-02 15:04:05"))
	return b.String()
}

func (c *Composer) writeBasicInfo(b *strings.Builder, byID map[string]string) {
	b.WriteString("[Basic Information]\n")
	for _, id := range []string{"name", "gender", "birth_year"} {
		if v, ok := byID[id]; ok {
			if q, found := c.cat.ByID(id); found {
				fmt.Fprintf(b, "%s: %s\n", q.Label, v)
			}
		}
	}
	height, hok := parseNumber(byID["height_cm"])
	weight, wok := parseNumber(byID["weight_kg"])
	if hok && wok && height > 0 {
		bmi := weight / ((height / 100) * (height / 100))
		fmt.Fprintf(b, "Height: %gcm, Weight: %gkg, BMI: %.1f\n", height, weight, bmi)
	}
	b.WriteString("\n")
}

func (c *Composer) writeFindings(b *strings.Builder, byID map[string]string) {
	fired := c.scorer.TriggeredFactors(byID)
	if len(fired) == 0 {
		return
	}
	b.WriteString("[Risk Findings]\n")
	for _, f := range fired {
		fmt.Fprintf(b, "- %s (weight %d)\n", strings.ReplaceAll(f.Name, "_", " "), f.Weight)
	}
	// CT reminder mirrors the paper questionnaire: anyone without a recent
	// chest CT gets the pointer regardless of level.
	if strings.TrimSpace(byID["chest_ct_last_year"]) == "no" {
		b.WriteString("- no chest CT in the past year; a baseline scan is advised\n")
	}
	b.WriteString("\n")
}

func (c *Composer) writeAssessment(b *strings.Builder, score int, level risk.Level) {
	b.WriteString("[Risk Assessment]\n")
	fmt.Fprintf(b, "Risk level: %s\n", level)
	fmt.Fprintf(b, "Risk score: %d\n\n", score)
}

// writeCategorySummary lists every answered required question grouped by
// category, in catalog declaration order.
func (c *Composer) writeCategorySummary(b *strings.Builder, answers []datatypes.AnsweredEntry) {
	answered := make(map[string]string, len(answers))
	for _, e := range answers {
		answered[e.QuestionID] = e.Answer
	}

	b.WriteString("[Answers by Category]\n")
	lastCategory := ""
	for _, q := range c.cat.Questions() {
		if !q.Required {
			continue
		}
		v, ok := answered[q.ID]
		if !ok {
			continue
		}
		if q.Category != lastCategory {
			fmt.Fprintf(b, "%s:\n", q.Category)
			lastCategory = q.Category
		}
		fmt.Fprintf(b, "  %s: %s\n", q.Label, v)
	}
	b.WriteString("\n")
}

func (c *Composer) writeRecommendations(b *strings.Builder, level risk.Level) {
	b.WriteString("[Recommendations]\n")
	for i, r := range recommendations[level] {
		fmt.Fprintf(b, "%d. %s\n", i+1, r)
	}
	b.WriteString("\n")
}

func (c *Composer) writeStatistics(b *strings.Builder, answers []datatypes.AnsweredEntry) {
	retried := 0
	for _, e := range answers {
		if e.Outcome != datatypes.OutcomeAccepted {
			retried++
		}
	}
	b.WriteString("[Questionnaire Statistics]\n")
	fmt.Fprintf(b, "Catalog questions: %d\n", c.cat.Len())
	fmt.Fprintf(b, "Answered: %d\n", len(answers))
	fmt.Fprintf(b, "Answered after retry: %d\n", retried)
}

func parseNumber(raw string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	return n, err == nil
}
