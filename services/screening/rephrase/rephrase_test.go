// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package rephrase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/AuroraCareAI/PulmoScreen/services/llm"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/datatypes"
)

// stubClient returns a fixed result or error and captures the prompt.
type stubClient struct {
	result string
	err    error
	prompt string
}

func (s *stubClient) Generate(_ context.Context, prompt string, _ llm.GenerationParams) (string, error) {
	s.prompt = prompt
	return s.result, s.err
}

func TestRephrase_UsesGeneratedText(t *testing.T) {
	client := &stubClient{result: "  So, do you happen to smoke at all?  "}
	r := New(client, time.Second)

	got := r.Rephrase(context.Background(), "Do you smoke?", nil)
	if got != "So, do you happen to smoke at all?" {
		t.Errorf("Expected trimmed generated text, got %q", got)
	}
	if !strings.Contains(client.prompt, "Do you smoke?") {
		t.Error("Expected raw prompt embedded in the generation request")
	}
}

func TestRephrase_FallsBackOnError(t *testing.T) {
	client := &stubClient{err: errors.New("backend down")}
	r := New(client, time.Second)

	if got := r.Rephrase(context.Background(), "Do you smoke?", nil); got != "Do you smoke?" {
		t.Errorf("Expected raw prompt on backend error, got %q", got)
	}
}

func TestRephrase_FallsBackOnEmptyGeneration(t *testing.T) {
	client := &stubClient{result: "   "}
	r := New(client, time.Second)

	if got := r.Rephrase(context.Background(), "Do you smoke?", nil); got != "Do you smoke?" {
		t.Errorf("Expected raw prompt on empty generation, got %q", got)
	}
}

func TestRephrase_NilClientPassesThrough(t *testing.T) {
	r := New(nil, 0)

	if got := r.Rephrase(context.Background(), "Do you smoke?", nil); got != "Do you smoke?" {
		t.Errorf("Expected passthrough with nil client, got %q", got)
	}
}

func TestRephrase_HistoryWindowed(t *testing.T) {
	client := &stubClient{result: "ok"}
	r := New(client, time.Second)

	history := []datatypes.Exchange{
		{Prompt: "oldest question", Answer: "a1"},
		{Prompt: "q2", Answer: "a2"},
		{Prompt: "q3", Answer: "a3"},
		{Prompt: "q4", Answer: "a4"},
		{Prompt: "q5", Answer: "a5"},
	}
	r.Rephrase(context.Background(), "next?", history)

	if strings.Contains(client.prompt, "oldest question") {
		t.Error("Expected history older than the window to be dropped")
	}
	if !strings.Contains(client.prompt, "q5") {
		t.Error("Expected most recent exchange included")
	}
}
