// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package engine runs adaptive screening interviews: one question at a
// time, dependency-aware selection, structural validation with deferred
// retries, and a composed report on completion.
package engine

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/AuroraCareAI/PulmoScreen/services/screening/catalog"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/datatypes"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/report"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/risk"
)

// =============================================================================
// Configuration
// =============================================================================

// CeilingAction decides what happens to a question that keeps failing
// validation after MaxAttempts tries.
type CeilingAction string

const (
	// CeilingForceAccept records the last raw answer with a forced
	// outcome and moves on.
	CeilingForceAccept CeilingAction = "force_accept"

	// CeilingSkip drops the question entirely. Dependents of a skipped
	// question never become eligible.
	CeilingSkip CeilingAction = "skip"
)

// RetryPolicy bounds how persistently a failing question is re-asked.
type RetryPolicy struct {
	MaxAttempts int           `yaml:"max_attempts"`
	OnCeiling   CeilingAction `yaml:"on_ceiling"`
}

// DefaultRetryPolicy allows three failed attempts, then records the last
// answer as-is rather than losing the data point.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, OnCeiling: CeilingForceAccept}
}

func (p RetryPolicy) Validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("retry policy: max_attempts must be at least 1, got %d", p.MaxAttempts)
	}
	switch p.OnCeiling {
	case CeilingForceAccept, CeilingSkip:
		return nil
	default:
		return fmt.Errorf("retry policy: unknown ceiling action %q", p.OnCeiling)
	}
}

// Config assembles an Engine. Catalog and Risk are mandatory; Composer
// defaults to one built over the same catalog and scorer.
type Config struct {
	Catalog     *catalog.Catalog
	Risk        *risk.Scorer
	Composer    *report.Composer
	Scorer      ScorerConfig
	Retry       RetryPolicy
	DefaultMode SelectionMode
}

// =============================================================================
// Engine
// =============================================================================

// Engine owns every live interview session. All public methods are safe
// for concurrent use; per-session operations serialize on the session's
// own lock so one slow interview never blocks another.
type Engine struct {
	cat       *catalog.Catalog
	risk      *risk.Scorer
	composer  *report.Composer
	scorerCfg ScorerConfig
	policy    RetryPolicy
	mode      SelectionMode

	mu       sync.RWMutex
	sessions map[string]*session
}

// New builds an Engine from cfg.
func New(cfg Config) (*Engine, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("engine: catalog is required")
	}
	if cfg.Risk == nil {
		return nil, fmt.Errorf("engine: risk scorer is required")
	}
	if cfg.Composer == nil {
		cfg.Composer = report.NewComposer(cfg.Catalog, cfg.Risk)
	}
	if cfg.Retry == (RetryPolicy{}) {
		cfg.Retry = DefaultRetryPolicy()
	}
	if err := cfg.Retry.Validate(); err != nil {
		return nil, err
	}
	if cfg.DefaultMode == "" {
		cfg.DefaultMode = ModeAdaptive
	}
	if cfg.Scorer.DefaultBase == 0 {
		cfg.Scorer = DefaultScorerConfig()
	}
	if _, err := NewStrategy(cfg.DefaultMode, cfg.Catalog, cfg.Scorer); err != nil {
		return nil, err
	}
	return &Engine{
		cat:       cfg.Catalog,
		risk:      cfg.Risk,
		composer:  cfg.Composer,
		scorerCfg: cfg.Scorer,
		policy:    cfg.Retry,
		mode:      cfg.DefaultMode,
		sessions:  make(map[string]*session),
	}, nil
}

type session struct {
	mu sync.Mutex

	id       string
	mode     SelectionMode
	strategy SelectionStrategy
	profile  map[string]string

	answers  []datatypes.AnsweredEntry
	answered map[string]string
	skipped  map[string]bool
	retry    RetryQueue

	// answerSeq counts accepted answers; retry items stamp it at enqueue
	// so the breather can tell whether anything landed since.
	answerSeq      int
	lastAnsweredID string

	currentID          string
	currentIsRetry     bool
	currentRetryReason string
	currentAttempts    int

	completed bool
	result    *Completion

	createdAt    time.Time
	lastActivity time.Time
}

// Turn is what the session hands back after every state transition:
// either the next question to ask or the completion result, never both.
// AnswerOutcome describes what happened to the answer that produced this
// turn; it is empty on the session's first turn.
type Turn struct {
	SessionID     string
	Question      *datatypes.Question
	IsRetry       bool
	RetryReason   string
	AnswerOutcome string
	RejectReason  string
	Answered      int
	Remaining     int
	Completion    *Completion
}

// Completion is the terminal result of a finished interview.
type Completion struct {
	ReportText  string
	RiskScore   int
	RiskLevel   risk.Level
	CompletedAt time.Time
}

// Progress is a read-only snapshot of where a session stands.
type Progress struct {
	SessionID    string
	Mode         SelectionMode
	Answered     int
	Remaining    int
	RetryPending int
	Completed    bool
}

// =============================================================================
// Session lifecycle
// =============================================================================

// StartSession creates a session and returns its first turn. An empty
// mode takes the engine default. Profile entries feed the adaptive
// strategy's affinity rules and are otherwise opaque.
func (e *Engine) StartSession(id string, mode SelectionMode, profile map[string]string) (Turn, error) {
	if mode == "" {
		mode = e.mode
	}
	strategy, err := NewStrategy(mode, e.cat, e.scorerCfg)
	if err != nil {
		return Turn{}, err
	}

	e.mu.Lock()
	if _, exists := e.sessions[id]; exists {
		e.mu.Unlock()
		return Turn{}, fmt.Errorf("%w: %s", ErrSessionExists, id)
	}
	now := time.Now()
	s := &session{
		id:           id,
		mode:         mode,
		strategy:     strategy,
		profile:      cloneProfile(profile),
		answered:     make(map[string]string),
		skipped:      make(map[string]bool),
		createdAt:    now,
		lastActivity: now,
	}
	e.sessions[id] = s
	e.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	turn := e.nextTurn(s)
	slog.Info("session started",
		"session_id", id,
		"mode", string(mode),
		"catalog_size", e.cat.Len(),
		"completed_immediately", turn.Completion != nil)
	return turn, nil
}

// SubmitAnswer applies raw to the session's current question and advances
// the interview. Invalid answers are not errors: the question goes to the
// retry queue and a different question comes back in the Turn. The whole
// validate, record, select-next transition happens under the session lock,
// so concurrent submissions serialize and each one sees the previous
// one's completed transition.
func (e *Engine) SubmitAnswer(sessionID, raw string) (Turn, error) {
	s, err := e.lookup(sessionID)
	if err != nil {
		return Turn{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return Turn{}, fmt.Errorf("%w: %s", ErrSessionCompleted, sessionID)
	}
	s.lastActivity = time.Now()

	q, ok := e.cat.ByID(s.currentID)
	if !ok {
		return Turn{}, fmt.Errorf("session %s has no current question", sessionID)
	}

	var answerOutcome, rejectReason string
	outcome := ValidateAnswer(q, raw)
	if outcome.Accepted {
		kind := datatypes.OutcomeAccepted
		if s.currentIsRetry {
			kind = datatypes.OutcomeAcceptedAfterRetry
		}
		s.record(q.ID, strings.TrimSpace(raw), kind)
		answerOutcome = string(kind)
	} else {
		attempts := s.currentAttempts + 1
		s.retry.Enqueue(q.ID, outcome.Reason, raw, attempts, s.answerSeq)
		answerOutcome = "rejected"
		rejectReason = outcome.Reason
		slog.Debug("answer rejected",
			"session_id", sessionID,
			"question_id", q.ID,
			"reason", outcome.Reason,
			"attempts", attempts)
	}

	turn := e.nextTurn(s)
	turn.AnswerOutcome = answerOutcome
	turn.RejectReason = rejectReason
	return turn, nil
}

// record appends an accepted answer and advances the sequence counter.
func (s *session) record(questionID, answer string, outcome datatypes.AnswerOutcome) {
	s.answers = append(s.answers, datatypes.AnsweredEntry{
		QuestionID: questionID,
		Answer:     answer,
		Timestamp:  time.Now(),
		Outcome:    outcome,
	})
	s.answered[questionID] = answer
	s.answerSeq++
	s.lastAnsweredID = questionID
}

// nextTurn runs the selection loop and mutates the session to present the
// chosen question, or completes the session when nothing remains. Caller
// holds s.mu.
func (e *Engine) nextTurn(s *session) Turn {
	for {
		// A parked retry whose breather has elapsed outranks any fresh
		// question.
		if item, ok := s.retry.DequeueIfReady(s.answerSeq, s.lastAnsweredID); ok {
			if e.applyCeiling(s, item) {
				continue
			}
			return e.presentRetry(s, item)
		}

		excluded := s.exclusionSet()
		if q, ok := s.strategy.Next(s.answered, excluded, s.profile); ok {
			s.currentID = q.ID
			s.currentIsRetry = false
			s.currentRetryReason = ""
			s.currentAttempts = 0
			return e.questionTurn(s, q, false, "")
		}

		// No forward question left. Drain the retry queue without the
		// breather so the interview cannot stall one rejection short of
		// done.
		if item, ok := s.retry.Dequeue(); ok {
			if e.applyCeiling(s, item) {
				continue
			}
			return e.presentRetry(s, item)
		}

		return e.complete(s)
	}
}

// applyCeiling handles an item that has hit the attempt ceiling. Returns
// true when the item was consumed by the ceiling policy and the selection
// loop should continue.
func (e *Engine) applyCeiling(s *session, item datatypes.RetryItem) bool {
	if item.Attempts < e.policy.MaxAttempts {
		return false
	}
	switch e.policy.OnCeiling {
	case CeilingSkip:
		s.skipped[item.QuestionID] = true
		slog.Warn("retry ceiling reached, skipping question",
			"session_id", s.id,
			"question_id", item.QuestionID,
			"attempts", item.Attempts)
	default:
		s.record(item.QuestionID, strings.TrimSpace(item.LastAnswer), datatypes.OutcomeForced)
		slog.Warn("retry ceiling reached, accepting last answer",
			"session_id", s.id,
			"question_id", item.QuestionID,
			"attempts", item.Attempts)
	}
	return true
}

func (e *Engine) presentRetry(s *session, item datatypes.RetryItem) Turn {
	q, _ := e.cat.ByID(item.QuestionID)
	s.currentID = item.QuestionID
	s.currentIsRetry = true
	s.currentRetryReason = item.Reason
	s.currentAttempts = item.Attempts
	return e.questionTurn(s, q, true, item.Reason)
}

func (e *Engine) questionTurn(s *session, q *datatypes.Question, retry bool, reason string) Turn {
	return Turn{
		SessionID:   s.id,
		Question:    q,
		IsRetry:     retry,
		RetryReason: reason,
		Answered:    len(s.answers),
		Remaining:   e.remaining(s),
	}
}

// remaining counts the work left: the presented question, queued retries,
// and forward-eligible questions not otherwise accounted for.
func (e *Engine) remaining(s *session) int {
	excluded := s.exclusionSet()
	n := len(Eligible(e.cat, s.answered, excluded)) + s.retry.Len()
	if s.currentID != "" {
		n++
	}
	return n
}

// exclusionSet unions everything the forward strategies must not pick:
// explicitly skipped questions, retry-queued questions, and the one
// currently on the table.
func (s *session) exclusionSet() map[string]bool {
	excluded := make(map[string]bool, len(s.skipped)+s.retry.Len()+1)
	for id := range s.skipped {
		excluded[id] = true
	}
	for _, id := range s.retry.QueuedIDs() {
		excluded[id] = true
	}
	if s.currentID != "" {
		excluded[s.currentID] = true
	}
	return excluded
}

func (e *Engine) complete(s *session) Turn {
	now := time.Now()
	score, level := e.risk.Score(s.answered)
	text := e.composer.Compose(s.answers, score, level, now)
	s.completed = true
	s.currentID = ""
	s.result = &Completion{
		ReportText:  text,
		RiskScore:   score,
		RiskLevel:   level,
		CompletedAt: now,
	}
	slog.Info("session completed",
		"session_id", s.id,
		"answered", len(s.answers),
		"risk_score", score,
		"risk_level", string(level))
	return Turn{
		SessionID:  s.id,
		Answered:   len(s.answers),
		Completion: s.result,
	}
}

// =============================================================================
// Read-side accessors
// =============================================================================

// Progress reports a snapshot of the session without advancing it.
func (e *Engine) Progress(sessionID string) (Progress, error) {
	s, err := e.lookup(sessionID)
	if err != nil {
		return Progress{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return Progress{
		SessionID:    s.id,
		Mode:         s.mode,
		Answered:     len(s.answers),
		Remaining:    e.remaining(s),
		RetryPending: s.retry.Len(),
		Completed:    s.completed,
	}, nil
}

// Result returns the completion of a finished session, or ErrNotCompleted
// while the interview is still running.
func (e *Engine) Result(sessionID string) (*Completion, error) {
	s, err := e.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotCompleted, sessionID)
	}
	out := *s.result
	return &out, nil
}

// Answers returns a copy of the session's recorded answers in the order
// they were accepted.
func (e *Engine) Answers(sessionID string) ([]datatypes.AnsweredEntry, error) {
	s, err := e.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]datatypes.AnsweredEntry, len(s.answers))
	copy(out, s.answers)
	return out, nil
}

// History returns up to n of the most recent prompt/answer exchanges,
// oldest first, for the rephrase collaborator's context window.
func (e *Engine) History(sessionID string, n int) ([]datatypes.Exchange, error) {
	s, err := e.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	start := 0
	if n > 0 && len(s.answers) > n {
		start = len(s.answers) - n
	}
	out := make([]datatypes.Exchange, 0, len(s.answers)-start)
	for _, entry := range s.answers[start:] {
		prompt := entry.QuestionID
		if q, ok := e.cat.ByID(entry.QuestionID); ok {
			prompt = q.Prompt
		}
		out = append(out, datatypes.Exchange{Prompt: prompt, Answer: entry.Answer})
	}
	return out, nil
}

// =============================================================================
// Eviction support
// =============================================================================

// SessionCount reports the number of live sessions.
func (e *Engine) SessionCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.sessions)
}

// ActiveSessionCount reports sessions still awaiting answers. Completed
// interviews held in memory for report retrieval are excluded.
func (e *Engine) ActiveSessionCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	n := 0
	for _, s := range e.sessions {
		s.mu.Lock()
		if !s.completed {
			n++
		}
		s.mu.Unlock()
	}
	return n
}

// IdleSessionIDs returns up to limit session ids whose last activity is
// older than idleFor as of now, oldest first. limit <= 0 means no cap.
func (e *Engine) IdleSessionIDs(idleFor time.Duration, now time.Time, limit int) []string {
	cutoff := now.Add(-idleFor)

	e.mu.RLock()
	type idle struct {
		id string
		at time.Time
	}
	candidates := make([]idle, 0)
	for id, s := range e.sessions {
		s.mu.Lock()
		last := s.lastActivity
		s.mu.Unlock()
		if last.Before(cutoff) {
			candidates = append(candidates, idle{id: id, at: last})
		}
	}
	e.mu.RUnlock()

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].at.Before(candidates[j].at) })
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.id
	}
	return ids
}

// Evict removes a session outright. Safe to call on ids that are already
// gone.
func (e *Engine) Evict(sessionID string) {
	e.mu.Lock()
	_, existed := e.sessions[sessionID]
	delete(e.sessions, sessionID)
	e.mu.Unlock()
	if existed {
		slog.Info("session evicted", "session_id", sessionID)
	}
}

func (e *Engine) lookup(sessionID string) (*session, error) {
	e.mu.RLock()
	s, ok := e.sessions[sessionID]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, sessionID)
	}
	return s, nil
}

func cloneProfile(profile map[string]string) map[string]string {
	out := make(map[string]string, len(profile))
	for k, v := range profile {
		out[k] = v
	}
	return out
}
