// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AuroraCareAI/PulmoScreen/services/screening/catalog"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/engine"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/handlers"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/middleware"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/observability"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/rephrase"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/report"
)

func SetupRoutes(router *gin.Engine, eng *engine.Engine, cat *catalog.Catalog,
	reph *rephrase.Rephraser, sink *report.FileSink,
	metrics *observability.ScreeningMetrics) {

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version 1 group
	v1 := router.Group("/v1")
	v1.Use(middleware.BodyLimit(middleware.DefaultMaxBodyBytes))
	{
		v1.GET("/questions", handlers.ListQuestions(cat))
		v1.GET("/reports", handlers.ListReports(sink))

		interviews := v1.Group("/interviews")
		{
			interviews.POST("", handlers.StartInterview(eng, reph, sink, metrics))
			interviews.POST("/:sessionId/answers", handlers.SubmitAnswer(eng, reph, sink, metrics))
			interviews.GET("/:sessionId/progress", handlers.GetProgress(eng))
			interviews.GET("/:sessionId/report", handlers.GetReport(eng))
		}
	}
}
