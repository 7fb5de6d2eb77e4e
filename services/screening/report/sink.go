// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/AuroraCareAI/PulmoScreen/services/screening/datatypes"
)

// Sink receives completed reports. The engine itself never calls a sink;
// the handler invokes it once per completed session, outside the session
// critical section, so a slow or failing sink cannot stall an interview.
type Sink interface {
	Persist(sessionID, reportText string, answers []datatypes.AnsweredEntry) error
}

// ReportInfo describes one persisted report for listings.
type ReportInfo struct {
	SessionID string    `json:"session_id"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

// FileSink writes reports into a directory: a human-readable .txt with the
// rendered report and a sibling .json with the structured answers.
type FileSink struct {
	dir string
}

// NewFileSink creates the reports directory if needed.
func NewFileSink(dir string) (*FileSink, error) {
	if dir == "" {
		return nil, fmt.Errorf("report sink directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report directory %s: %w", dir, err)
	}
	return &FileSink{dir: dir}, nil
}

// Persist writes the report text and structured answers to disk. File names
// carry the session ID and a timestamp so repeated sessions never clobber
// each other.
func (f *FileSink) Persist(sessionID, reportText string, answers []datatypes.AnsweredEntry) error {
	stamp := time.Now().Format("20060102_150405")
	base := fmt.Sprintf("screening_report_%s_%s", sanitizeID(sessionID), stamp)

	txtPath := filepath.Join(f.dir, base+".txt")
	if err := os.WriteFile(txtPath, []byte(reportText), 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", txtPath, err)
	}

	structured, err := json.MarshalIndent(map[string]any{
		"session_id": sessionID,
		"answers":    answers,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal structured answers: %w", err)
	}
	jsonPath := filepath.Join(f.dir, base+".json")
	if err := os.WriteFile(jsonPath, structured, 0o644); err != nil {
		return fmt.Errorf("write structured answers %s: %w", jsonPath, err)
	}

	slog.Info("Persisted screening report", "sessionId", sessionID, "path", txtPath)
	return nil
}

// List returns the persisted report files, newest first.
func (f *FileSink) List() ([]ReportInfo, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("read report directory %s: %w", f.dir, err)
	}

	var infos []ReportInfo
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "screening_report_") || !strings.HasSuffix(name, ".txt") {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		infos = append(infos, ReportInfo{
			SessionID: sessionIDFromName(name),
			Path:      filepath.Join(f.dir, name),
			CreatedAt: fi.ModTime(),
			SizeBytes: fi.Size(),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].CreatedAt.After(infos[j].CreatedAt) })
	return infos, nil
}

// sanitizeID keeps file names portable. Session IDs are opaque caller
// tokens, so anything outside a conservative set becomes an underscore.
func sanitizeID(id string) string {
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// sessionIDFromName recovers the session ID from a report file name of the
// form screening_report_<id>_<date>_<time>.txt.
func sessionIDFromName(name string) string {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(name, "screening_report_"), ".txt")
	parts := strings.Split(trimmed, "_")
	if len(parts) < 3 {
		return trimmed
	}
	return strings.Join(parts[:len(parts)-2], "_")
}
