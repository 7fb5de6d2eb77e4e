// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package datatypes provides data structures for the screening service.
//
// This file contains the request and response types for the interview
// endpoints. Request validation goes through a shared validator instance
// with the custom rules registered in init().
package datatypes

import (
	"github.com/go-playground/validator/v10"
)

// =============================================================================
// Input Size Limits
// =============================================================================

const (
	// MaxAnswerBytes caps a single raw answer. Voice transcriptions are
	// short; anything beyond this is a malformed or hostile payload.
	MaxAnswerBytes = 4 * 1024 // 4KB

	// MaxProfileEntries caps the number of profile attributes accepted
	// at session start.
	MaxProfileEntries = 32
)

// =============================================================================
// Shared Validator Instance
// =============================================================================

// interviewValidate is the validator instance for interview datatypes.
var interviewValidate *validator.Validate

func init() {
	interviewValidate = validator.New()
	_ = interviewValidate.RegisterValidation("answerbytes", validateAnswerBytes)
}

// validateAnswerBytes enforces the MaxAnswerBytes limit on a string field.
// Byte length, not rune count: the limit exists to bound memory, not prose.
func validateAnswerBytes(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= MaxAnswerBytes
}

// =============================================================================
// Request Types
// =============================================================================

// StartInterviewRequest starts a new screening session.
//
// SessionID is optional; the handler generates a UUID when absent. Mode
// selects the question ordering strategy for the whole session and cannot
// change afterwards. Profile carries declared demographic attributes used
// by the adaptive scorer's affinity rules (for example "age_group": "60+").
type StartInterviewRequest struct {
	SessionID string            `json:"session_id,omitempty" validate:"omitempty,max=128"`
	Mode      string            `json:"mode,omitempty" validate:"omitempty,oneof=sequential adaptive"`
	Profile   map[string]string `json:"profile,omitempty" validate:"omitempty,max=32"`
}

// Validate checks structural constraints on the request.
func (r *StartInterviewRequest) Validate() error {
	return interviewValidate.Struct(r)
}

// SubmitAnswerRequest carries one raw answer for the session's current
// question. An empty Answer is deliberately allowed through to the engine:
// emptiness on a required question is a validation rejection with retry
// semantics, not a malformed request.
type SubmitAnswerRequest struct {
	Answer string `json:"answer" validate:"answerbytes"`
}

// Validate checks structural constraints on the request.
func (r *SubmitAnswerRequest) Validate() error {
	return interviewValidate.Struct(r)
}

// =============================================================================
// Response Types
// =============================================================================

// QuestionResponse is the "ask this next" reply for start and submit calls.
type QuestionResponse struct {
	SessionID   string `json:"session_id"`
	QuestionID  string `json:"question_id"`
	Prompt      string `json:"prompt"`
	DisplayText string `json:"display_text"`
	Category    string `json:"category"`
	IsRetry     bool   `json:"is_retry"`
	RetryReason string `json:"retry_reason,omitempty"`
	Answered    int    `json:"answered_count"`
	Remaining   int    `json:"remaining_count"`
}

// CompletionResponse is the terminal reply once no eligible questions remain
// and the retry queue has drained.
type CompletionResponse struct {
	SessionID  string `json:"session_id"`
	Completed  bool   `json:"completed"`
	ReportText string `json:"report_text"`
	RiskLevel  string `json:"risk_level"`
	RiskScore  int    `json:"risk_score"`
}

// ProgressResponse reports session progress without advancing it.
type ProgressResponse struct {
	SessionID    string `json:"session_id"`
	Answered     int    `json:"answered_count"`
	Remaining    int    `json:"eligible_remaining_count"`
	RetryPending int    `json:"retry_pending_count"`
	Completed    bool   `json:"completed"`
}
