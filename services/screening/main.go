// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AuroraCareAI/PulmoScreen/services/llm"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/catalog"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/engine"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/observability"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/rephrase"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/report"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/routes"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/risk"
	"github.com/AuroraCareAI/PulmoScreen/services/screening/store"

	// --- OpenTelemetry imports ---
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func initTracer() (func(context.Context), error) {
	ctx := context.Background()

	otelEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otelEndpoint == "" {
		otelEndpoint = "pulmoscreen-otel-collector:4317"
	}
	conn, err := grpc.NewClient(otelEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String("screening-service")))
	if err != nil {
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.
		TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}

// loadCatalog reads the question catalog from SCREENING_CATALOG_PATH, or
// builds the shipped default set when unset.
func loadCatalog() (*catalog.Catalog, error) {
	if path := os.Getenv("SCREENING_CATALOG_PATH"); path != "" {
		slog.Info("Loading question catalog from file", "path", path)
		return catalog.LoadFile(path)
	}
	slog.Info("SCREENING_CATALOG_PATH not set, using built-in catalog")
	return catalog.Default()
}

// loadRiskScorer reads risk factors from SCREENING_RISK_PATH, or uses
// the shipped defaults when unset.
func loadRiskScorer() (*risk.Scorer, error) {
	if path := os.Getenv("SCREENING_RISK_PATH"); path != "" {
		slog.Info("Loading risk factors from file", "path", path)
		return risk.LoadFile(path)
	}
	slog.Info("SCREENING_RISK_PATH not set, using built-in risk factors")
	return risk.DefaultScorer()
}

func retryPolicyFromEnv() engine.RetryPolicy {
	policy := engine.DefaultRetryPolicy()
	if v := os.Getenv("SCREENING_RETRY_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			policy.MaxAttempts = n
		} else {
			slog.Warn("Ignoring invalid SCREENING_RETRY_MAX_ATTEMPTS", "value", v)
		}
	}
	if v := os.Getenv("SCREENING_RETRY_ON_CEILING"); v != "" {
		policy.OnCeiling = engine.CeilingAction(v)
	}
	return policy
}

// buildLLMClient wires the optional prompt rephrase backend. Backend
// "none" (or unset) runs the interview with raw catalog prompts.
func buildLLMClient() llm.LLMClient {
	backend := os.Getenv("LLM_BACKEND_TYPE")
	switch backend {
	case "openai":
		client, err := llm.NewOpenAIClient()
		if err != nil {
			slog.Error("OpenAI client unavailable, running without rephrasing", "error", err)
			return nil
		}
		slog.Info("Using OpenAI LLM backend for prompt rephrasing")
		return client
	case "ollama":
		client, err := llm.NewOllamaClient()
		if err != nil {
			slog.Error("Ollama client unavailable, running without rephrasing", "error", err)
			return nil
		}
		slog.Info("Using Ollama LLM backend for prompt rephrasing")
		return client
	case "", "none":
		slog.Info("LLM_BACKEND_TYPE not set, running without prompt rephrasing")
		return nil
	default:
		slog.Warn("Unknown LLM_BACKEND_TYPE, running without prompt rephrasing", "backend", backend)
		return nil
	}
}

func main() {
	port := os.Getenv("SCREENING_PORT")
	if port == "" {
		port = "12310"
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// --- Init the tracer ---
	cleanup, err := initTracer()
	if err != nil {
		log.Fatalf("failed to setup the OTLP tracer: %v", err)
	}
	defer cleanup(context.Background())

	cat, err := loadCatalog()
	if err != nil {
		log.Fatalf("FATAL: could not load question catalog: %v", err)
	}
	scorer, err := loadRiskScorer()
	if err != nil {
		log.Fatalf("FATAL: could not load risk factors: %v", err)
	}

	defaultMode := engine.ModeAdaptive
	if v := os.Getenv("SCREENING_DEFAULT_MODE"); v != "" {
		defaultMode = engine.SelectionMode(v)
	}

	eng, err := engine.New(engine.Config{
		Catalog:     cat,
		Risk:        scorer,
		Composer:    report.NewComposer(cat, scorer),
		Scorer:      engine.DefaultScorerConfig(),
		Retry:       retryPolicyFromEnv(),
		DefaultMode: defaultMode,
	})
	if err != nil {
		log.Fatalf("FATAL: could not build interview engine: %v", err)
	}

	reportsDir := os.Getenv("SCREENING_REPORTS_DIR")
	if reportsDir == "" {
		reportsDir = "./reports"
	}
	sink, err := report.NewFileSink(reportsDir)
	if err != nil {
		log.Fatalf("FATAL: could not create reports directory: %v", err)
	}

	metrics := observability.InitMetrics()
	reph := rephrase.New(buildLLMClient(), 0)

	cleanerCfg := store.DefaultCleanerConfig()
	cleanerCfg.Metrics = metrics
	if v := os.Getenv("SCREENING_SESSION_IDLE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cleanerCfg.IdleTimeout = d
		} else {
			slog.Warn("Ignoring invalid SCREENING_SESSION_IDLE_TIMEOUT", "value", v)
		}
	}
	cleaner, err := store.NewCleaner(eng, nil, cleanerCfg)
	if err != nil {
		log.Fatalf("FATAL: could not build session cleaner: %v", err)
	}
	if err := cleaner.Start(context.Background()); err != nil {
		log.Fatalf("FATAL: could not start session cleaner: %v", err)
	}
	defer cleaner.Stop()

	router := gin.Default()
	router.Use(otelgin.Middleware("screening-service"))

	routes.SetupRoutes(router, eng, cat, reph, sink, metrics)

	log.Println("Starting the screening server on port ", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
