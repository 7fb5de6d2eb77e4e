// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package engine

import "errors"

// Session-level errors. These are returned as typed results to the caller;
// they never crash the process. Configuration problems surface earlier, at
// catalog and risk table load, and abort startup entirely.
var (
	// ErrUnknownSession means the caller used a stale or invalid session ID.
	ErrUnknownSession = errors.New("unknown session")

	// ErrSessionExists means StartSession was called with an ID that is
	// already active.
	ErrSessionExists = errors.New("session already exists")

	// ErrSessionCompleted means SubmitAnswer was called after the session
	// reached its terminal state.
	ErrSessionCompleted = errors.New("session already completed")

	// ErrNotCompleted means a report was requested before the session
	// finished.
	ErrNotCompleted = errors.New("session not completed yet")

	// ErrInvalidMode means an unknown selection mode was requested.
	ErrInvalidMode = errors.New("invalid selection mode")
)
