// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package main contains the PulmoScreen CLI screening client.
//
// This file implements the HTTP client for the screening service's
// interview API. The client is deliberately thin: request shaping,
// error decoding, and nothing else. All interview logic lives on the
// server.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AuroraCareAI/PulmoScreen/services/screening/datatypes"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/report"
)

const defaultRequestTimeout = 30 * time.Second

// Turn is one step of the interview as seen by the client: either the
// next question to ask or the terminal completion payload.
type Turn struct {
	Question   *datatypes.QuestionResponse
	Completion *datatypes.CompletionResponse
}

// Completed reports whether this turn ended the interview.
func (t *Turn) Completed() bool {
	return t.Completion != nil
}

// apiError decodes the service's error envelope.
type apiError struct {
	Message   string `json:"error"`
	SessionID string `json:"session_id,omitempty"`
}

// ScreeningClient talks to the screening service's v1 interview API.
//
// # Fields
//
//   - baseURL: Service URL without trailing slash.
//   - http: Underlying HTTP client, injectable for tests.
//
// # Thread Safety
//
// Safe for concurrent use; http.Client handles its own pooling.
type ScreeningClient struct {
	baseURL string
	http    *http.Client
}

// NewScreeningClient creates a client for the given base URL.
func NewScreeningClient(baseURL string) *ScreeningClient {
	return &ScreeningClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultRequestTimeout},
	}
}

// StartInterview opens a session and returns the first turn.
func (c *ScreeningClient) StartInterview(ctx context.Context, req datatypes.StartInterviewRequest) (*Turn, error) {
	return c.postTurn(ctx, c.baseURL+"/v1/interviews", req)
}

// SubmitAnswer submits one raw answer and returns the next turn.
func (c *ScreeningClient) SubmitAnswer(ctx context.Context, sessionID, answer string) (*Turn, error) {
	url := fmt.Sprintf("%s/v1/interviews/%s/answers", c.baseURL, sessionID)
	return c.postTurn(ctx, url, datatypes.SubmitAnswerRequest{Answer: answer})
}

// GetProgress fetches session progress without advancing the interview.
func (c *ScreeningClient) GetProgress(ctx context.Context, sessionID string) (*datatypes.ProgressResponse, error) {
	url := fmt.Sprintf("%s/v1/interviews/%s/progress", c.baseURL, sessionID)
	var progress datatypes.ProgressResponse
	if err := c.getJSON(ctx, url, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// GetReport fetches the completed session's report.
func (c *ScreeningClient) GetReport(ctx context.Context, sessionID string) (*datatypes.CompletionResponse, error) {
	url := fmt.Sprintf("%s/v1/interviews/%s/report", c.baseURL, sessionID)
	var completion datatypes.CompletionResponse
	if err := c.getJSON(ctx, url, &completion); err != nil {
		return nil, err
	}
	return &completion, nil
}

// ListReports fetches the persisted report listing, newest first.
func (c *ScreeningClient) ListReports(ctx context.Context) ([]report.ReportInfo, error) {
	var payload struct {
		Reports []report.ReportInfo `json:"reports"`
		Count   int                 `json:"count"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/v1/reports", &payload); err != nil {
		return nil, err
	}
	return payload.Reports, nil
}

// ListQuestions fetches the service's question catalog.
func (c *ScreeningClient) ListQuestions(ctx context.Context) ([]datatypes.Question, error) {
	var payload struct {
		Questions []datatypes.Question `json:"questions"`
		Count     int                  `json:"count"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/v1/questions", &payload); err != nil {
		return nil, err
	}
	return payload.Questions, nil
}

// Health checks the service's health endpoint.
func (c *ScreeningClient) Health(ctx context.Context) error {
	var payload struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/health", &payload); err != nil {
		return err
	}
	if payload.Status != "ok" {
		return fmt.Errorf("service unhealthy: %s", payload.Status)
	}
	return nil
}

// postTurn POSTs a JSON body and decodes the turn-shaped response. The
// service returns either a question payload or a completion payload on
// the same endpoints; "completed": true disambiguates.
func (c *ScreeningClient) postTurn(ctx context.Context, url string, body any) (*Turn, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("screening service unreachable: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp.StatusCode, data)
	}

	var probe struct {
		Completed bool `json:"completed"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if probe.Completed {
		var completion datatypes.CompletionResponse
		if err := json.Unmarshal(data, &completion); err != nil {
			return nil, fmt.Errorf("decode completion: %w", err)
		}
		return &Turn{Completion: &completion}, nil
	}

	var question datatypes.QuestionResponse
	if err := json.Unmarshal(data, &question); err != nil {
		return nil, fmt.Errorf("decode question: %w", err)
	}
	return &Turn{Question: &question}, nil
}

func (c *ScreeningClient) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("screening service unreachable: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp.StatusCode, data)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(status int, data []byte) error {
	var e apiError
	if err := json.Unmarshal(data, &e); err == nil && e.Message != "" {
		return fmt.Errorf("%s (HTTP %d)", e.Message, status)
	}
	return fmt.Errorf("unexpected status HTTP %d", status)
}
