// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// InterviewUI renders the screening interview in the terminal.
//
// # Description
//
// InterviewUI formats the question-and-answer flow: the session header,
// each question with its progress counter, retry notices when an answer
// was rejected, and the final report with a color-coded risk level.
//
// # Fields
//
//   - out: Destination writer. os.Stdout in production, a buffer in tests.
//
// # Thread Safety
//
// Not thread-safe. The interview loop is single-threaded.
type InterviewUI struct {
	out io.Writer
}

// NewInterviewUI creates an InterviewUI writing to stdout.
func NewInterviewUI() *InterviewUI {
	return &InterviewUI{out: os.Stdout}
}

// NewInterviewUIWithWriter creates an InterviewUI writing to w. Used by
// tests to capture output.
func NewInterviewUIWithWriter(w io.Writer) *InterviewUI {
	return &InterviewUI{out: w}
}

// Header displays the session banner at interview start.
func (u *InterviewUI) Header(serverURL, sessionID, mode string) {
	title := Styles.Title.Render("PulmoScreen - Lung Health Screening")
	fmt.Fprintln(u.out, Styles.Box.Render(title))
	fmt.Fprintf(u.out, "%s %s\n", Styles.Muted.Render("server:"), serverURL)
	fmt.Fprintf(u.out, "%s %s\n", Styles.Muted.Render("session:"), sessionID)
	if mode != "" {
		fmt.Fprintf(u.out, "%s %s\n", Styles.Muted.Render("mode:"), mode)
	}
	fmt.Fprintln(u.out, Styles.Muted.Render("Type 'exit' to stop at any time. Answers stay on this machine and your screening server."))
	fmt.Fprintln(u.out)
}

// Question displays the next question with its progress counter.
func (u *InterviewUI) Question(text, category string, answered, remaining int) {
	total := answered + remaining
	counter := Styles.Muted.Render(fmt.Sprintf("[%d/%d]", answered+1, total))
	fmt.Fprintf(u.out, "%s %s\n", counter, Styles.Subtitle.Render(text))
	if category != "" {
		fmt.Fprintln(u.out, Styles.Muted.Render("  ("+strings.ReplaceAll(category, "_", " ")+")"))
	}
}

// RetryNotice displays a rejection explanation before a retried question.
func (u *InterviewUI) RetryNotice(reason string) {
	msg := retryMessage(reason)
	fmt.Fprintf(u.out, "%s %s\n", IconWarning.Render(), Styles.Warning.Render(msg))
}

// Skipped notes that a question was abandoned after repeated rejections.
func (u *InterviewUI) Skipped(reason string) {
	fmt.Fprintf(u.out, "%s %s\n", IconWarning.Render(), Styles.Muted.Render("Moving on ("+reason+")."))
}

// Report displays the completed screening report with its risk level.
func (u *InterviewUI) Report(reportText, riskLevel string, riskScore int) {
	fmt.Fprintln(u.out)
	fmt.Fprintf(u.out, "%s %s  %s\n",
		Styles.Bold.Render("Risk level:"),
		RiskStyle(riskLevel).Render(strings.ToUpper(riskLevel)),
		Styles.Muted.Render(fmt.Sprintf("(score %d)", riskScore)))
	fmt.Fprintln(u.out, Styles.ReportBox.Render(reportText))
}

// SessionEnd displays the farewell line on normal exit.
func (u *InterviewUI) SessionEnd(sessionID string, completed bool) {
	fmt.Fprintln(u.out)
	if completed {
		fmt.Fprintf(u.out, "%s %s\n", IconSuccess.Render(), Styles.Success.Render("Screening complete. Take care of yourself."))
		return
	}
	fmt.Fprintf(u.out, "%s\n", Styles.Muted.Render("Interview stopped early. Session "+sessionID+" remains on the server."))
}

// Error displays a non-fatal error and lets the loop continue.
func (u *InterviewUI) Error(err error) {
	fmt.Fprintf(u.out, "%s %s\n", IconError.Render(), Styles.Error.Render(err.Error()))
}

// Prompt returns the input prompt string.
func (u *InterviewUI) Prompt() string {
	return Styles.Highlight.Render("> ")
}

// retryMessage maps machine reject reasons to human phrasing.
func retryMessage(reason string) string {
	switch reason {
	case "empty":
		return "This one matters for your assessment, so I need an answer."
	case "not_an_option":
		return "Please pick one of the listed options."
	case "not_an_integer":
		return "Please answer with a whole number."
	case "not_a_number":
		return "Please answer with a number."
	case "out_of_range":
		return "That number looks out of range. Please check it."
	case "pattern_mismatch":
		return "That answer doesn't look right. Please try again."
	default:
		return "Let's try that question once more."
	}
}
