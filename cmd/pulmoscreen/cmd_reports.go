// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AuroraCareAI/PulmoScreen/pkg/ux"
)

// runListReports prints the server's persisted reports, newest first.
func runListReports(cmd *cobra.Command, args []string) {
	client := NewScreeningClient(serverURL)
	reports, err := client.ListReports(cmd.Context())
	if err != nil {
		logger.Error("failed to list reports", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if len(reports) == 0 {
		fmt.Println(ux.Styles.Muted.Render("No reports persisted yet."))
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SESSION\tCREATED\tSIZE\tPATH")
	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%s\t%dB\t%s\n",
			r.SessionID, r.CreatedAt.Format("2006-01-02 15:04"), r.SizeBytes, r.Path)
	}
	w.Flush()
}

// runListQuestions prints the service's question catalog.
func runListQuestions(cmd *cobra.Command, args []string) {
	client := NewScreeningClient(serverURL)
	questions, err := client.ListQuestions(cmd.Context())
	if err != nil {
		logger.Error("failed to list questions", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCATEGORY\tREQUIRED\tPROMPT")
	for _, q := range questions {
		required := ""
		if q.Required {
			required = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", q.ID, q.Category, required, q.Prompt)
	}
	w.Flush()
	fmt.Printf("\n%d questions\n", len(questions))
}

// runHealthCheck verifies the screening service is reachable.
func runHealthCheck(cmd *cobra.Command, args []string) {
	client := NewScreeningClient(serverURL)
	if err := client.Health(cmd.Context()); err != nil {
		fmt.Printf("%s %s\n", ux.IconError.Render(), err)
		os.Exit(1)
	}
	fmt.Printf("%s screening service is healthy at %s\n", ux.IconSuccess.Render(), serverURL)
}
