// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import (
	"strings"
	"testing"
)

// =============================================================================
// StartInterviewRequest Validation Tests
// =============================================================================

func TestStartInterviewRequest_Validate_Empty(t *testing.T) {
	req := &StartInterviewRequest{}

	if err := req.Validate(); err != nil {
		t.Errorf("expected empty request valid, got error: %v", err)
	}
}

func TestStartInterviewRequest_Validate_Success(t *testing.T) {
	req := &StartInterviewRequest{
		SessionID: "sess-1",
		Mode:      "adaptive",
		Profile:   map[string]string{"age_group": "60+"},
	}

	if err := req.Validate(); err != nil {
		t.Errorf("expected valid request, got error: %v", err)
	}
}

func TestStartInterviewRequest_Validate_BadMode(t *testing.T) {
	req := &StartInterviewRequest{Mode: "clever"}

	if err := req.Validate(); err == nil {
		t.Error("expected error for unknown mode, got nil")
	}
}

func TestStartInterviewRequest_Validate_SequentialMode(t *testing.T) {
	req := &StartInterviewRequest{Mode: "sequential"}

	if err := req.Validate(); err != nil {
		t.Errorf("expected sequential mode valid, got error: %v", err)
	}
}

func TestStartInterviewRequest_Validate_LongSessionID(t *testing.T) {
	req := &StartInterviewRequest{SessionID: strings.Repeat("a", 129)}

	if err := req.Validate(); err == nil {
		t.Error("expected error for session ID over 128 characters, got nil")
	}
}

func TestStartInterviewRequest_Validate_TooManyProfileEntries(t *testing.T) {
	profile := make(map[string]string, MaxProfileEntries+1)
	for i := 0; i <= MaxProfileEntries; i++ {
		profile[strings.Repeat("k", i+1)] = "v"
	}
	req := &StartInterviewRequest{Profile: profile}

	if err := req.Validate(); err == nil {
		t.Error("expected error for oversized profile, got nil")
	}
}

// =============================================================================
// SubmitAnswerRequest Validation Tests
// =============================================================================

func TestSubmitAnswerRequest_Validate_Success(t *testing.T) {
	req := &SubmitAnswerRequest{Answer: "yes"}

	if err := req.Validate(); err != nil {
		t.Errorf("expected valid request, got error: %v", err)
	}
}

func TestSubmitAnswerRequest_Validate_EmptyAnswerAllowed(t *testing.T) {
	// Emptiness is an engine-level rejection, not a malformed request.
	req := &SubmitAnswerRequest{}

	if err := req.Validate(); err != nil {
		t.Errorf("expected empty answer valid at transport level, got error: %v", err)
	}
}

func TestSubmitAnswerRequest_Validate_AtByteLimit(t *testing.T) {
	req := &SubmitAnswerRequest{Answer: strings.Repeat("a", MaxAnswerBytes)}

	if err := req.Validate(); err != nil {
		t.Errorf("expected answer at the byte limit valid, got error: %v", err)
	}
}

func TestSubmitAnswerRequest_Validate_OverByteLimit(t *testing.T) {
	req := &SubmitAnswerRequest{Answer: strings.Repeat("a", MaxAnswerBytes+1)}

	if err := req.Validate(); err == nil {
		t.Error("expected error for answer over the byte limit, got nil")
	}
}

func TestSubmitAnswerRequest_Validate_MultibyteCountsBytes(t *testing.T) {
	// 3 bytes per rune; rune count is under the limit but byte count is not.
	req := &SubmitAnswerRequest{Answer: strings.Repeat("肺", MaxAnswerBytes/3+1)}

	if err := req.Validate(); err == nil {
		t.Error("expected byte-length enforcement for multibyte answers, got nil")
	}
}
