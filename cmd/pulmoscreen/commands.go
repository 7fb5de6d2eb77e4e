// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	serverURL   string
	sessionID   string
	surveyMode  string
	profileArgs []string
	logDir      string
	quietLogs   bool

	rootCmd = &cobra.Command{
		Use:   "pulmoscreen",
		Short: "A cli for running lung cancer screening interviews",
		Long: `PulmoScreen is the terminal client for the Aurora Care screening
				service. It runs the adaptive questionnaire, shows the final
				risk report, and can browse reports persisted on the server.`,
	}

	// --- Interview ---
	interviewCmd = &cobra.Command{
		Use:   "interview",
		Short: "Start an interactive screening interview",
		Run:   runInterviewCommand, // Defined in cmd_interview.go
	}

	// --- Reports ---
	reportsCmd = &cobra.Command{
		Use:   "reports",
		Short: "List screening reports persisted on the server",
		Run:   runListReports, // Defined in cmd_reports.go
	}

	// --- Questions ---
	questionsCmd = &cobra.Command{
		Use:   "questions",
		Short: "Show the service's question catalog",
		Run:   runListQuestions, // Defined in cmd_reports.go
	}

	// --- Health ---
	healthCmd = &cobra.Command{
		Use:   "health",
		Short: "Check that the screening service is reachable",
		Run:   runHealthCheck, // Defined in cmd_reports.go
	}
)

// init runs when the Go program starts
func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:12310",
		"Base URL of the screening service")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "",
		"Directory for CLI log files (default: stderr only)")
	rootCmd.PersistentFlags().BoolVar(&quietLogs, "quiet", false,
		"Suppress log output on stderr")

	rootCmd.AddCommand(interviewCmd)
	interviewCmd.Flags().StringVar(&sessionID, "session", "",
		"Session ID to use (default: server-assigned UUID)")
	interviewCmd.Flags().StringVar(&surveyMode, "mode", "",
		"Question ordering: 'sequential' or 'adaptive' (default: server default)")
	interviewCmd.Flags().StringArrayVar(&profileArgs, "profile", nil,
		"Profile attribute as key=value (repeatable, e.g. --profile age_group=60+)")

	rootCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(healthCmd)
}
