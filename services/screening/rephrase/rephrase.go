// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package rephrase turns a catalog question's canned prompt into a warmer
// conversational phrasing via an LLM backend. It is best-effort: any
// backend failure, timeout, or empty generation falls back to the raw
// prompt so the interview never stalls on a collaborator.
package rephrase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/AuroraCareAI/PulmoScreen/services/llm"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/datatypes"
)

const defaultTimeout = 8 * time.Second

// historyWindow caps how many recent exchanges get folded into the
// rephrase prompt.
const historyWindow = 4

type Rephraser struct {
	client  llm.LLMClient
	timeout time.Duration
}

// New builds a Rephraser over client. A nil client yields a Rephraser
// that always returns the raw prompt, so callers never branch on
// whether a backend is configured.
func New(client llm.LLMClient, timeout time.Duration) *Rephraser {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Rephraser{client: client, timeout: timeout}
}

// Rephrase returns a conversational rendering of prompt, or prompt
// itself when generation is unavailable or unusable. The rephrased text
// is presentation only; validation always runs against the catalog
// question, never against what was displayed.
func (r *Rephraser) Rephrase(ctx context.Context, prompt string, history []datatypes.Exchange) string {
	if r.client == nil {
		return prompt
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	temp := float32(0.6)
	maxTokens := 256
	text, err := r.client.Generate(ctx, buildPrompt(prompt, history), llm.GenerationParams{
		Temperature: &temp,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		slog.Warn("rephrase generation failed, using raw prompt", "error", err)
		return prompt
	}
	text = strings.TrimSpace(text)
	if text == "" {
		slog.Warn("rephrase generation returned empty text, using raw prompt")
		return prompt
	}
	return text
}

func buildPrompt(prompt string, history []datatypes.Exchange) string {
	var b strings.Builder
	b.WriteString("You are conducting a friendly lung health screening interview. ")
	b.WriteString("Rewrite the next question in a natural, caring tone. ")
	b.WriteString("Keep its meaning exactly, ask only this one question, and reply with the question alone.\n")

	if len(history) > 0 {
		start := 0
		if len(history) > historyWindow {
			start = len(history) - historyWindow
		}
		b.WriteString("\nRecent conversation:\n")
		for _, ex := range history[start:] {
			fmt.Fprintf(&b, "Q: %s\nA: %s\n", ex.Prompt, ex.Answer)
		}
	}

	fmt.Fprintf(&b, "\nNext question: %s\n", prompt)
	return b.String()
}
