// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package main contains the interactive interview loop and its input
// abstractions.
//
// Architecture:
//
//	cmd_interview.go → InterviewRunner → ScreeningClient (HTTP)
//	                                     InputReader (stdin abstraction)
//	                                     ux.InterviewUI (terminal output)
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/AuroraCareAI/PulmoScreen/pkg/ux"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/datatypes"
)

// =============================================================================
// InputReader Interface
// =============================================================================

// InputReader abstracts answer input for testability.
//
// # Description
//
// Production implementations read from stdin; tests supply predetermined
// answers. ReadLine returns io.EOF when input is exhausted.
type InputReader interface {
	// ReadLine reads a single trimmed line of input, blocking until
	// one is available. Returns io.EOF when the input source is closed.
	ReadLine() (string, error)
}

// PromptingInputReader is implemented by readers that display their own
// prompt. The runner checks for it to avoid double-prompting.
type PromptingInputReader interface {
	InputReader
	// SetPrompt sets the prompt string to display before input.
	SetPrompt(prompt string)
}

// =============================================================================
// StdinReader Implementation
// =============================================================================

// StdinReader reads newline-terminated input from os.Stdin.
//
// # Thread Safety
//
// Not thread-safe. One reader per stdin.
type StdinReader struct {
	reader *bufio.Reader
}

// NewStdinReader creates a StdinReader wrapping os.Stdin.
func NewStdinReader() *StdinReader {
	return &StdinReader{reader: bufio.NewReader(os.Stdin)}
}

// ReadLine reads until newline and returns the trimmed line. Returns
// io.EOF when stdin closes.
func (r *StdinReader) ReadLine() (string, error) {
	line, err := r.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// =============================================================================
// InteractiveInputReader Implementation
// =============================================================================

// InteractiveInputReader provides line editing and answer history via
// bubbletea. Falls back to StdinReader when stdin is not a TTY (piped
// input, CI).
//
// # Fields
//
//   - history: Previous answers, most recent last. In-memory only.
//   - maxHistory: Cap on history entries.
//   - prompt: Prompt string displayed by the textinput component.
//
// # Thread Safety
//
// Not thread-safe. One reader per stdin.
type InteractiveInputReader struct {
	history    []string
	maxHistory int
	prompt     string
}

// answerModel is the bubbletea model for one answer prompt.
type answerModel struct {
	textInput    textinput.Model
	history      []string
	historyIndex int
	currentInput string
	done         bool
	cancelled    bool
}

// NewInteractiveInputReader creates an interactive reader, or a plain
// StdinReader when stdin is not a terminal.
func NewInteractiveInputReader(maxHistory int) InputReader {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return NewStdinReader()
	}
	return &InteractiveInputReader{
		history:    make([]string, 0, maxHistory),
		maxHistory: maxHistory,
		prompt:     "> ",
	}
}

// SetPrompt implements PromptingInputReader.
func (r *InteractiveInputReader) SetPrompt(prompt string) {
	r.prompt = prompt
}

// ReadLine reads one answer with history navigation. Up/down arrows walk
// previous answers, Enter submits, Ctrl+C clears, Ctrl+D returns io.EOF.
func (r *InteractiveInputReader) ReadLine() (string, error) {
	ti := textinput.New()
	ti.Prompt = r.prompt
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = 80

	m := answerModel{
		textInput:    ti,
		history:      r.history,
		historyIndex: -1,
	}

	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	result, ok := finalModel.(answerModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type from bubbletea: %T", finalModel)
	}

	if result.cancelled && result.textInput.Value() == "" {
		return "", io.EOF
	}

	input := strings.TrimSpace(result.textInput.Value())
	if input != "" {
		r.addToHistory(input)
	}
	return input, nil
}

func (r *InteractiveInputReader) addToHistory(input string) {
	if len(r.history) > 0 && r.history[len(r.history)-1] == input {
		return
	}
	r.history = append(r.history, input)
	if len(r.history) > r.maxHistory {
		r.history = r.history[1:]
	}
}

// Init initializes the bubbletea model.
func (m answerModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key events for the answer prompt.
func (m answerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit

		case tea.KeyCtrlC:
			m.textInput.SetValue("")
			m.done = true
			return m, tea.Quit

		case tea.KeyCtrlD:
			m.cancelled = true
			m.textInput.SetValue("")
			m.done = true
			return m, tea.Quit

		case tea.KeyUp:
			if len(m.history) == 0 {
				return m, nil
			}
			if m.historyIndex == -1 {
				m.currentInput = m.textInput.Value()
				m.historyIndex = len(m.history) - 1
			} else if m.historyIndex > 0 {
				m.historyIndex--
			}
			m.textInput.SetValue(m.history[m.historyIndex])
			m.textInput.CursorEnd()
			return m, nil

		case tea.KeyDown:
			if m.historyIndex == -1 {
				return m, nil
			}
			if m.historyIndex < len(m.history)-1 {
				m.historyIndex++
				m.textInput.SetValue(m.history[m.historyIndex])
			} else {
				m.historyIndex = -1
				m.textInput.SetValue(m.currentInput)
			}
			m.textInput.CursorEnd()
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the answer prompt.
func (m answerModel) View() string {
	if m.done {
		return ""
	}
	return m.textInput.View()
}

// =============================================================================
// MockInputReader Implementation (for testing)
// =============================================================================

// MockInputReader returns predetermined answers for unit tests, then
// io.EOF once the sequence is exhausted. Not thread-safe.
type MockInputReader struct {
	inputs []string
	index  int
}

// NewMockInputReader creates a MockInputReader over the given answers.
func NewMockInputReader(inputs []string) *MockInputReader {
	return &MockInputReader{inputs: inputs}
}

// ReadLine returns the next predetermined answer, or io.EOF.
func (m *MockInputReader) ReadLine() (string, error) {
	if m.index >= len(m.inputs) {
		return "", io.EOF
	}
	line := m.inputs[m.index]
	m.index++
	return line, nil
}

// =============================================================================
// InterviewRunner
// =============================================================================

// InterviewRunner drives one screening interview against the service.
//
// # Description
//
// The runner starts (or continues) a session, then loops: display the
// current question, read an answer, submit it, and render either the
// next question or the final report. Typing "exit" or closing stdin
// stops early; the session stays alive server-side until evicted.
//
// # Fields
//
//   - client: HTTP client for the screening service.
//   - ui: Terminal renderer.
//   - input: Answer source, injectable for tests.
//   - sessionID: Caller-chosen session ID; empty lets the server assign.
//   - mode: Question ordering mode ("sequential", "adaptive", or empty).
//   - profile: Declared attributes passed at session start.
//
// # Thread Safety
//
// Not designed for concurrent Run calls.
type InterviewRunner struct {
	client    *ScreeningClient
	ui        *ux.InterviewUI
	input     InputReader
	sessionID string
	mode      string
	profile   map[string]string
}

// InterviewRunnerConfig groups InterviewRunner construction options.
type InterviewRunnerConfig struct {
	BaseURL   string            // Screening service URL (required)
	SessionID string            // Session ID to use (optional)
	Mode      string            // Question ordering mode (optional)
	Profile   map[string]string // Declared profile attributes (optional)
}

// NewInterviewRunner creates a runner with production dependencies.
func NewInterviewRunner(config InterviewRunnerConfig) *InterviewRunner {
	return &InterviewRunner{
		client:    NewScreeningClient(config.BaseURL),
		ui:        ux.NewInterviewUI(),
		input:     NewInteractiveInputReader(50),
		sessionID: config.SessionID,
		mode:      config.Mode,
		profile:   config.Profile,
	}
}

// NewInterviewRunnerWithDeps creates a runner with injected dependencies
// for testing.
func NewInterviewRunnerWithDeps(client *ScreeningClient, ui *ux.InterviewUI, input InputReader, config InterviewRunnerConfig) *InterviewRunner {
	return &InterviewRunner{
		client:    client,
		ui:        ui,
		input:     input,
		sessionID: config.SessionID,
		mode:      config.Mode,
		profile:   config.Profile,
	}
}

// Run executes the interview loop until completion, "exit", EOF, or
// context cancellation.
func (r *InterviewRunner) Run(ctx context.Context) error {
	turn, err := r.client.StartInterview(ctx, datatypes.StartInterviewRequest{
		SessionID: r.sessionID,
		Mode:      r.mode,
		Profile:   r.profile,
	})
	if err != nil {
		return fmt.Errorf("start interview: %w", err)
	}

	if turn.Completed() {
		// An empty catalog completes immediately.
		r.sessionID = turn.Completion.SessionID
		r.ui.Report(turn.Completion.ReportText, turn.Completion.RiskLevel, turn.Completion.RiskScore)
		r.ui.SessionEnd(r.sessionID, true)
		return nil
	}

	r.sessionID = turn.Question.SessionID
	r.ui.Header(r.client.baseURL, r.sessionID, r.mode)

	for {
		select {
		case <-ctx.Done():
			r.ui.SessionEnd(r.sessionID, false)
			return ctx.Err()
		default:
		}

		q := turn.Question
		if q.IsRetry {
			r.ui.RetryNotice(q.RetryReason)
		}
		r.ui.Question(q.DisplayText, q.Category, q.Answered, q.Remaining)

		answer, err := r.readAnswer()
		if err != nil {
			if err == io.EOF {
				r.ui.SessionEnd(r.sessionID, false)
				return nil
			}
			return fmt.Errorf("read answer: %w", err)
		}

		if isExitCommand(answer) {
			r.ui.SessionEnd(r.sessionID, false)
			return nil
		}

		next, err := r.client.SubmitAnswer(ctx, r.sessionID, answer)
		if err != nil {
			if ctx.Err() != nil {
				r.ui.SessionEnd(r.sessionID, false)
				return ctx.Err()
			}
			// Non-fatal: display and re-ask the same question.
			r.ui.Error(err)
			continue
		}

		if next.Completed() {
			r.ui.Report(next.Completion.ReportText, next.Completion.RiskLevel, next.Completion.RiskScore)
			r.ui.SessionEnd(r.sessionID, true)
			return nil
		}
		turn = next
	}
}

func (r *InterviewRunner) readAnswer() (string, error) {
	if p, ok := r.input.(PromptingInputReader); ok {
		p.SetPrompt(r.ui.Prompt())
	} else {
		fmt.Print(r.ui.Prompt())
	}
	return r.input.ReadLine()
}

// isExitCommand reports whether the input ends the interview. Comparison
// is case-sensitive; the input is already trimmed.
func isExitCommand(input string) bool {
	return input == "exit" || input == "quit"
}
