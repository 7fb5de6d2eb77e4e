// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

// runInterviewCommand starts an interactive screening interview.
func runInterviewCommand(cmd *cobra.Command, args []string) {
	profile, err := parseProfileArgs(profileArgs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	runner := NewInterviewRunner(InterviewRunnerConfig{
		BaseURL:   serverURL,
		SessionID: sessionID,
		Mode:      surveyMode,
		Profile:   profile,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := runner.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("interview failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// parseProfileArgs turns repeated key=value flags into a profile map.
func parseProfileArgs(args []string) (map[string]string, error) {
	if len(args) == 0 {
		return nil, nil
	}
	profile := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, fmt.Errorf("invalid --profile value %q, expected key=value", arg)
		}
		profile[key] = strings.TrimSpace(value)
	}
	return profile, nil
}
