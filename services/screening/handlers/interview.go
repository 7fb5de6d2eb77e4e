// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AuroraCareAI/PulmoScreen/services/screening/datatypes"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/engine"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/observability"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/rephrase"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/report"
)

// rephraseHistoryTurns is how many recent exchanges feed the rephraser.
const rephraseHistoryTurns = 4

// StartInterview creates a session and returns its first question or, for
// a degenerate catalog, an immediate completion.
func StartInterview(eng *engine.Engine, reph *rephrase.Rephraser, sink report.Sink,
	metrics *observability.ScreeningMetrics) gin.HandlerFunc {

	return func(c *gin.Context) {
		var req datatypes.StartInterviewRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			slog.Warn("start interview request failed validation", "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		sessionID := req.SessionID
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		turn, err := eng.StartSession(sessionID, engine.SelectionMode(req.Mode), req.Profile)
		if err != nil {
			switch {
			case errors.Is(err, engine.ErrSessionExists):
				c.JSON(http.StatusConflict, gin.H{"error": "session already exists", "session_id": sessionID})
			case errors.Is(err, engine.ErrInvalidMode):
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown selection mode"})
			default:
				slog.Error("failed to start interview session", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
			}
			return
		}

		if metrics != nil {
			mode := req.Mode
			if mode == "" {
				mode = string(engine.ModeAdaptive)
			}
			metrics.SessionsStartedTotal.WithLabelValues(mode).Inc()
			metrics.ActiveSessions.Set(float64(eng.ActiveSessionCount()))
		}

		respondTurn(c, eng, reph, sink, metrics, turn)
	}
}

// SubmitAnswer applies one answer to the session's current question and
// returns the next question or the completed report. A structurally
// invalid answer is a normal 200 response carrying the follow-up
// question, never an error status.
func SubmitAnswer(eng *engine.Engine, reph *rephrase.Rephraser, sink report.Sink,
	metrics *observability.ScreeningMetrics) gin.HandlerFunc {

	return func(c *gin.Context) {
		sessionID := c.Param("sessionId")

		var req datatypes.SubmitAnswerRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			slog.Warn("answer request failed validation", "session_id", sessionID, "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		started := time.Now()
		turn, err := eng.SubmitAnswer(sessionID, req.Answer)
		if err != nil {
			switch {
			case errors.Is(err, engine.ErrUnknownSession):
				c.JSON(http.StatusNotFound, gin.H{"error": "unknown session", "session_id": sessionID})
			case errors.Is(err, engine.ErrSessionCompleted):
				c.JSON(http.StatusConflict, gin.H{"error": "session already completed", "session_id": sessionID})
			default:
				slog.Error("failed to submit answer", "session_id", sessionID, "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit answer"})
			}
			return
		}

		if metrics != nil {
			if turn.AnswerOutcome != "" {
				metrics.AnswersTotal.WithLabelValues(turn.AnswerOutcome).Inc()
			}
			if turn.RejectReason != "" {
				metrics.RetriesTotal.WithLabelValues(turn.RejectReason).Inc()
			}
			metrics.TurnDurationSeconds.Observe(time.Since(started).Seconds())
		}

		respondTurn(c, eng, reph, sink, metrics, turn)
	}
}

// GetProgress reports where a session stands without advancing it.
func GetProgress(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionId")
		p, err := eng.Progress(sessionID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown session", "session_id": sessionID})
			return
		}
		c.JSON(http.StatusOK, datatypes.ProgressResponse{
			SessionID:    p.SessionID,
			Answered:     p.Answered,
			Remaining:    p.Remaining,
			RetryPending: p.RetryPending,
			Completed:    p.Completed,
		})
	}
}

// GetReport returns the completed interview's report. 409 while the
// interview is still in flight.
func GetReport(eng *engine.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionId")
		result, err := eng.Result(sessionID)
		if err != nil {
			switch {
			case errors.Is(err, engine.ErrUnknownSession):
				c.JSON(http.StatusNotFound, gin.H{"error": "unknown session", "session_id": sessionID})
			case errors.Is(err, engine.ErrNotCompleted):
				c.JSON(http.StatusConflict, gin.H{"error": "interview not completed", "session_id": sessionID})
			default:
				slog.Error("failed to fetch report", "session_id", sessionID, "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch report"})
			}
			return
		}
		c.JSON(http.StatusOK, datatypes.CompletionResponse{
			SessionID:  sessionID,
			Completed:  true,
			ReportText: result.ReportText,
			RiskLevel:  string(result.RiskLevel),
			RiskScore:  result.RiskScore,
		})
	}
}

// respondTurn renders a Turn as either the next question or the
// completion payload. Completion triggers report persistence and
// completion metrics as side effects.
func respondTurn(c *gin.Context, eng *engine.Engine, reph *rephrase.Rephraser,
	sink report.Sink, metrics *observability.ScreeningMetrics, turn engine.Turn) {

	if turn.Completion != nil {
		if metrics != nil {
			metrics.SessionsCompletedTotal.WithLabelValues(string(turn.Completion.RiskLevel)).Inc()
			metrics.ActiveSessions.Set(float64(eng.ActiveSessionCount()))
		}
		persistReport(eng, sink, turn)
		c.JSON(http.StatusOK, datatypes.CompletionResponse{
			SessionID:  turn.SessionID,
			Completed:  true,
			ReportText: turn.Completion.ReportText,
			RiskLevel:  string(turn.Completion.RiskLevel),
			RiskScore:  turn.Completion.RiskScore,
		})
		return
	}

	display := turn.Question.Prompt
	if reph != nil {
		history, err := eng.History(turn.SessionID, rephraseHistoryTurns)
		if err != nil {
			history = nil
		}
		display = reph.Rephrase(c.Request.Context(), turn.Question.Prompt, history)
	}

	c.JSON(http.StatusOK, datatypes.QuestionResponse{
		SessionID:   turn.SessionID,
		QuestionID:  turn.Question.ID,
		Prompt:      turn.Question.Prompt,
		DisplayText: display,
		Category:    turn.Question.Category,
		IsRetry:     turn.IsRetry,
		RetryReason: turn.RetryReason,
		Answered:    turn.Answered,
		Remaining:   turn.Remaining,
	})
}

func persistReport(eng *engine.Engine, sink report.Sink, turn engine.Turn) {
	if sink == nil {
		return
	}
	answers, err := eng.Answers(turn.SessionID)
	if err != nil {
		slog.Error("failed to collect answers for report persistence",
			"session_id", turn.SessionID, "error", err)
		return
	}
	if err := sink.Persist(turn.SessionID, turn.Completion.ReportText, answers); err != nil {
		// Persistence is best-effort; the report already went to the caller.
		slog.Error("failed to persist report", "session_id", turn.SessionID, "error", err)
	}
}
