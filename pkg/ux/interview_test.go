// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestInterviewUI_Header(t *testing.T) {
	var buf bytes.Buffer
	ui := NewInterviewUIWithWriter(&buf)

	ui.Header("http://localhost:12310", "sess-1", "adaptive")

	out := buf.String()
	if !strings.Contains(out, "PulmoScreen") {
		t.Errorf("Expected banner in header, got:\n%s", out)
	}
	if !strings.Contains(out, "sess-1") {
		t.Errorf("Expected session ID in header, got:\n%s", out)
	}
	if !strings.Contains(out, "adaptive") {
		t.Errorf("Expected mode in header, got:\n%s", out)
	}
}

func TestInterviewUI_Header_NoMode(t *testing.T) {
	var buf bytes.Buffer
	ui := NewInterviewUIWithWriter(&buf)

	ui.Header("http://localhost:12310", "sess-1", "")

	if strings.Contains(buf.String(), "mode:") {
		t.Errorf("Expected no mode line, got:\n%s", buf.String())
	}
}

func TestInterviewUI_Question(t *testing.T) {
	var buf bytes.Buffer
	ui := NewInterviewUIWithWriter(&buf)

	ui.Question("Have you ever smoked?", "smoking_history", 2, 8)

	out := buf.String()
	if !strings.Contains(out, "Have you ever smoked?") {
		t.Errorf("Expected question text, got:\n%s", out)
	}
	if !strings.Contains(out, "[3/10]") {
		t.Errorf("Expected progress counter 3 of 10, got:\n%s", out)
	}
	if !strings.Contains(out, "smoking history") {
		t.Errorf("Expected category with underscores replaced, got:\n%s", out)
	}
}

func TestInterviewUI_RetryNotice(t *testing.T) {
	cases := []struct {
		reason string
		want   string
	}{
		{"empty", "I need an answer"},
		{"not_an_option", "listed options"},
		{"not_an_integer", "whole number"},
		{"not_a_number", "a number"},
		{"out_of_range", "out of range"},
		{"pattern_mismatch", "doesn't look right"},
		{"something_else", "once more"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		ui := NewInterviewUIWithWriter(&buf)
		ui.RetryNotice(tc.reason)
		if !strings.Contains(buf.String(), tc.want) {
			t.Errorf("Expected %q notice to contain %q, got:\n%s", tc.reason, tc.want, buf.String())
		}
	}
}

func TestInterviewUI_Report(t *testing.T) {
	var buf bytes.Buffer
	ui := NewInterviewUIWithWriter(&buf)

	ui.Report("full report body", "high", 7)

	out := buf.String()
	if !strings.Contains(out, "full report body") {
		t.Errorf("Expected report text, got:\n%s", out)
	}
	if !strings.Contains(out, "HIGH") {
		t.Errorf("Expected uppercased risk level, got:\n%s", out)
	}
	if !strings.Contains(out, "score 7") {
		t.Errorf("Expected score, got:\n%s", out)
	}
}

func TestInterviewUI_SessionEnd(t *testing.T) {
	var buf bytes.Buffer
	ui := NewInterviewUIWithWriter(&buf)

	ui.SessionEnd("sess-1", false)
	if !strings.Contains(buf.String(), "sess-1 remains on the server") {
		t.Errorf("Expected early-stop notice, got:\n%s", buf.String())
	}

	buf.Reset()
	ui.SessionEnd("sess-1", true)
	if !strings.Contains(buf.String(), "Screening complete") {
		t.Errorf("Expected completion message, got:\n%s", buf.String())
	}
}

func TestInterviewUI_Error(t *testing.T) {
	var buf bytes.Buffer
	ui := NewInterviewUIWithWriter(&buf)

	ui.Error(errors.New("connection refused"))
	if !strings.Contains(buf.String(), "connection refused") {
		t.Errorf("Expected error text, got:\n%s", buf.String())
	}
}

func TestRiskStyle_KnownLevels(t *testing.T) {
	for _, level := range []string{"low", "medium", "high"} {
		got := RiskStyle(level)
		if got.GetForeground() == Styles.Muted.GetForeground() {
			t.Errorf("Expected dedicated style for level %q", level)
		}
	}
	unknown := RiskStyle("severe")
	if unknown.GetForeground() != Styles.Muted.GetForeground() {
		t.Error("Expected muted style for unknown level")
	}
}
