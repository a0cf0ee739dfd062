package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/passmint/passmint-go/internal/breach"
	"github.com/passmint/passmint-go/internal/config"
	"github.com/passmint/passmint-go/internal/handler"
	"github.com/passmint/passmint-go/internal/middleware"
	"github.com/passmint/passmint-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	var checker breach.Checker
	if cfg.BreachCheckEnabled {
		checker = breach.NewHIBPClient(cfg.BreachBaseURL, cfg.BreachTimeout)
	} else {
		slog.Info("breach checking disabled")
	}

	historyService := service.NewHistoryService()
	genService := service.NewGeneratorService(historyService)
	strengthService := service.NewStrengthService(checker, cfg.BreachTimeout)

	genHandler := handler.NewGeneratorHandler(genService)
	strengthHandler := handler.NewStrengthHandler(strengthService)
	historyHandler := handler.NewHistoryHandler(historyService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
		r.Post("/api/v1/generate", genHandler.HandleGenerate)
		r.Post("/api/v1/evaluate", strengthHandler.HandleEvaluate)
	})

	r.Get("/api/v1/history", historyHandler.HandleList)
	r.Delete("/api/v1/history", historyHandler.HandleClear)
	r.Get("/api/v1/history/export", historyHandler.HandleExport)
	r.Post("/api/v1/history/import", historyHandler.HandleImport)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
