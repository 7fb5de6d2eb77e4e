// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import "time"

// =============================================================================
// Session Record Types
// =============================================================================

// AnswerOutcome records how an answer made it into the session.
type AnswerOutcome string

const (
	// OutcomeAccepted is a first-try structurally valid answer.
	OutcomeAccepted AnswerOutcome = "accepted"

	// OutcomeAcceptedAfterRetry is a valid answer given on a re-ask.
	OutcomeAcceptedAfterRetry AnswerOutcome = "accepted_after_retry"

	// OutcomeForced is a best-available answer recorded when the retry
	// ceiling was reached with the force-accept policy.
	OutcomeForced AnswerOutcome = "forced"
)

// AnsweredEntry is one recorded answer. Entries are append-only and owned
// exclusively by their session; the only overwrite path is a retry replacing
// a previously failed attempt, which never produces a duplicate question ID.
type AnsweredEntry struct {
	QuestionID string        `json:"question_id"`
	Answer     string        `json:"answer"`
	Timestamp  time.Time     `json:"timestamp"`
	Outcome    AnswerOutcome `json:"outcome"`
}

// RetryItem is a question queued for a later re-ask after its answer failed
// validation. Items are FIFO and are only presented after a different
// question has been answered, so the user always gets a breather turn.
type RetryItem struct {
	QuestionID string    `json:"question_id"`
	Reason     string    `json:"reason"`
	Attempts   int       `json:"attempts"`
	LastAnswer string    `json:"last_answer,omitempty"`
	EnqueuedAt time.Time `json:"enqueued_at"`

	// EnqueueSeq is the session answer sequence number at enqueue time.
	// The item becomes ready only once the sequence has advanced past it,
	// i.e. another question was answered in between.
	EnqueueSeq int `json:"-"`
}

// Exchange is one prompt/answer pair of recent dialogue history, passed to
// the rephrase collaborator for conversational context.
type Exchange struct {
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}
