// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package store provides background housekeeping for in-memory interview
// sessions, evicting interviews that have been abandoned mid-flight so the
// session map does not grow without bound.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/AuroraCareAI/PulmoScreen/services/screening/observability"
)

// =============================================================================
// Clock
// =============================================================================

// Clock abstracts time.Now so eviction cycles are testable with a frozen
// or stepped clock.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// =============================================================================
// Session Cleaner
// =============================================================================

// SessionEvictor is the slice of the interview engine the cleaner needs:
// find idle sessions, remove them, and report what is left. The engine
// satisfies this directly.
type SessionEvictor interface {
	IdleSessionIDs(idleFor time.Duration, now time.Time, limit int) []string
	Evict(sessionID string)
	SessionCount() int
	ActiveSessionCount() int
}

// CleanerConfig holds configuration for the background session cleaner.
//
// # Fields
//
//   - Interval: How often to run eviction cycles. Default: 5 minutes.
//   - IdleTimeout: How long a session may sit untouched before it is
//     evicted. Default: 30 minutes.
//   - BatchSize: Maximum sessions to evict per cycle. Default: 100.
//   - Metrics: Optional eviction counters and the in-flight gauge.
type CleanerConfig struct {
	Interval    time.Duration
	IdleTimeout time.Duration
	BatchSize   int
	Metrics     *observability.ScreeningMetrics
}

// DefaultCleanerConfig returns production defaults. A half-hour idle
// timeout comfortably outlasts a slow interview turn while keeping
// abandoned sessions from accumulating across a day of traffic.
func DefaultCleanerConfig() CleanerConfig {
	return CleanerConfig{
		Interval:    5 * time.Minute,
		IdleTimeout: 30 * time.Minute,
		BatchSize:   100,
	}
}

func (c CleanerConfig) validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("cleaner: interval must be positive, got %v", c.Interval)
	}
	if c.IdleTimeout <= 0 {
		return fmt.Errorf("cleaner: idle timeout must be positive, got %v", c.IdleTimeout)
	}
	return nil
}

// Cleaner periodically evicts idle interview sessions.
//
// # Description
//
// Manages the lifecycle of a background goroutine that runs eviction at a
// fixed interval, using the ticker + done channel pattern for graceful
// shutdown. Only one cleaner should run per engine instance.
//
// # Thread Safety
//
// All public methods are safe for concurrent use; a mutex protects the
// running state.
type Cleaner struct {
	evictor SessionEvictor
	clock   Clock
	config  CleanerConfig

	done    chan struct{}
	mu      sync.Mutex
	running bool
}

// NewCleaner creates a session cleaner. A nil clock defaults to the
// system clock.
func NewCleaner(evictor SessionEvictor, clock Clock, config CleanerConfig) (*Cleaner, error) {
	if evictor == nil {
		return nil, fmt.Errorf("cleaner: evictor is required")
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Cleaner{
		evictor: evictor,
		clock:   clock,
		config:  config,
		done:    make(chan struct{}),
	}, nil
}

// Start launches the background eviction loop. Returns an error if the
// cleaner is already running. The loop stops when Stop is called or the
// context is cancelled.
func (c *Cleaner) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("cleaner is already running")
	}
	c.running = true
	c.done = make(chan struct{}) // reset for restart
	c.mu.Unlock()

	slog.Info("session cleaner starting",
		"interval", c.config.Interval.String(),
		"idle_timeout", c.config.IdleTimeout.String(),
		"batch_size", c.config.BatchSize,
	)

	go c.runLoop(ctx)
	return nil
}

// Stop signals the eviction loop to exit. Safe to call multiple times.
func (c *Cleaner) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	slog.Info("session cleaner stopping")
	close(c.done)
	c.running = false
}

// RunOnce performs a single eviction cycle immediately and returns the
// number of sessions evicted. Useful for manual invocation and tests.
func (c *Cleaner) RunOnce() int {
	now := c.clock.Now()
	ids := c.evictor.IdleSessionIDs(c.config.IdleTimeout, now, c.config.BatchSize)
	for _, id := range ids {
		c.evictor.Evict(id)
	}
	if c.config.Metrics != nil && len(ids) > 0 {
		c.config.Metrics.SessionsEvictedTotal.Add(float64(len(ids)))
		c.config.Metrics.ActiveSessions.Set(float64(c.evictor.ActiveSessionCount()))
	}
	if len(ids) > 0 {
		slog.Info("session cleaner cycle completed",
			"evicted", len(ids),
			"live_sessions", c.evictor.SessionCount(),
		)
	} else {
		slog.Debug("session cleaner cycle completed (no idle sessions)")
	}
	return len(ids)
}

func (c *Cleaner) runLoop(ctx context.Context) {
	ticker := time.NewTicker(c.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session cleaner stopped (context cancelled)")
			return
		case <-c.done:
			slog.Info("session cleaner stopped (stop requested)")
			return
		case <-ticker.C:
			c.RunOnce()
		}
	}
}
