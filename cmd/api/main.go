package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sthama121-del/ai-financial-coach/internal/api/handlers"
	"github.com/sthama121-del/ai-financial-coach/internal/api/middleware"
	"github.com/sthama121-del/ai-financial-coach/internal/config"
	"github.com/sthama121-del/ai-financial-coach/internal/insight"
	"github.com/sthama121-del/ai-financial-coach/internal/logger"
	"github.com/sthama121-del/ai-financial-coach/internal/report"
)

func main() {
	var (
		port = flag.String("port", "8080", "HTTP server port")
	)
	flag.Parse()

	log := logger.New()
	cfg := config.New()
	logger.SetGlobalLevel(cfg.LogLevel)

	ctx := context.Background()

	// Without a Gemini credential the server still runs; every agent then
	// uses the rule-based strategy.
	var gen insight.Generator
	gemini, err := insight.NewGeminiGenerator(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini generator")
	}
	if gemini != nil {
		gen = gemini
		log.Info().Str("model", cfg.ModelName).Msg("AI-generated insights enabled")
	} else {
		log.Warn().Msg("No GEMINI_API_KEY configured - insights will be rule-based")
	}

	orch := report.NewOrchestrator(cfg, gen)
	analyzeHandler := handlers.NewAnalyzeHandler(orch, log)

	mux := http.NewServeMux()

	mux.HandleFunc("/api/analyze", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			analyzeHandler.Analyze(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/sample", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			analyzeHandler.Sample(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.RequestID(
			middleware.Logger(log)(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", *port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
