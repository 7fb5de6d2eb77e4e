// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AuroraCareAI/PulmoScreen/services/screening/catalog"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/report"
)

// ListReports returns persisted reports, newest first.
func ListReports(sink *report.FileSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		infos, err := sink.List()
		if err != nil {
			slog.Error("failed to list reports", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reports"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reports": infos, "count": len(infos)})
	}
}

// ListQuestions exposes the loaded catalog for client-side preview and
// operator inspection.
func ListQuestions(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"questions": cat.Questions(),
			"count":     cat.Len(),
		})
	}
}
