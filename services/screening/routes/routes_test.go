// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/AuroraCareAI/PulmoScreen/services/screening/catalog"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/engine"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/observability"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/rephrase"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/report"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/risk"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	cat, err := catalog.Default()
	require.NoError(t, err)
	scorer, err := risk.DefaultScorer()
	require.NoError(t, err)
	eng, err := engine.New(engine.Config{Catalog: cat, Risk: scorer})
	require.NoError(t, err)
	sink, err := report.NewFileSink(t.TempDir())
	require.NoError(t, err)
	metrics := observability.NewMetricsWithRegistry(prometheus.NewRegistry())

	router := gin.New()
	SetupRoutes(router, eng, cat, rephrase.New(nil, 0), sink, metrics)
	return router
}

func TestSetupRoutes_RegistersCoreRoutes(t *testing.T) {
	router := setupTestRouter(t)

	coreRoutes := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/metrics"},
		{"GET", "/v1/questions"},
		{"GET", "/v1/reports"},
		{"POST", "/v1/interviews"},
		{"POST", "/v1/interviews/:sessionId/answers"},
		{"GET", "/v1/interviews/:sessionId/progress"},
		{"GET", "/v1/interviews/:sessionId/report"},
	}

	routes := router.Routes()
	for _, expected := range coreRoutes {
		found := false
		for _, r := range routes {
			if r.Method == expected.method && r.Path == expected.path {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected route %s %s not found", expected.method, expected.path)
		}
	}
}

func TestSetupRoutes_HealthResponds(t *testing.T) {
	router := setupTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRoutes_BodyLimitEnforced(t *testing.T) {
	router := setupTestRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/interviews", nil)
	req.ContentLength = 10 * 1024 * 1024
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
