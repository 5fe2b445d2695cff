// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/dyscover/cliparse"
	"github.com/danielhkuo/dyscover/db"
	"github.com/danielhkuo/dyscover/export"
	"github.com/danielhkuo/dyscover/middleware"
	"github.com/danielhkuo/dyscover/recommend"
	"github.com/danielhkuo/dyscover/risk"
	"github.com/danielhkuo/dyscover/router"
	"github.com/danielhkuo/dyscover/store"
)

const shutdownTimeout = 10 * time.Second

// serveCmd hands its arguments to cliparse so the server keeps the
// flag-and-env configuration layer.
var serveCmd = &cobra.Command{
	Use:                "serve [-p port] [-d url] [-t sqlite|postgres] [flags]",
	Short:              "Run the screening API server",
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context(), args)
	},
}

func runServe(ctx context.Context, args []string) error {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(args)
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		return err
	}

	// Connect to the database
	conn, driver, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		return err
	}
	defer conn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(conn); err != nil {
		slog.Error("schema creation failed", "error", err)
		return err
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	profile := risk.DefaultProfile()
	if cfg.ScoringProfile != "" {
		profile, err = risk.LoadProfile(cfg.ScoringProfile)
		if err != nil {
			slog.Error("scoring profile invalid", "path", cfg.ScoringProfile, "error", err)
			return err
		}
		slog.Info("Scoring profile loaded", "path", cfg.ScoringProfile)
	}

	provider, err := recommend.NewProvider(ctx, recommend.Config{
		Provider:     cfg.LLMProvider,
		Model:        cfg.LLMModel,
		GeminiAPIKey: cfg.GeminiAPIKey,
		OpenAIAPIKey: cfg.OpenAIAPIKey,
		OpenAIURL:    cfg.OpenAIBaseURL,
		Timeout:      cfg.LLMTimeout,
	})
	if err != nil {
		slog.Error("recommendation provider failed", "error", err)
		return err
	}
	recommender := recommend.NewService(provider, cfg.LLMTimeout)
	if recommender.Enabled() {
		slog.Info("Personalized recommendations enabled", "model", provider.ModelID())
	}

	st := store.New(conn, driver)
	mux := router.NewRouter(st, cfg, profile, recommender)

	server := &http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server closed", "error", err)
			return err
		}
		slog.Info("Server closed")
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if cfg.ExportDir != "" {
		sched := export.NewScheduler(export.NewExporter(st, profile), cfg.ExportDir, cfg.ExportInterval)
		slog.Info("Scheduled export enabled", "dir", cfg.ExportDir, "every", cfg.ExportInterval)
		g.Go(func() error {
			return sched.Run(gctx)
		})
	}

	return g.Wait()
}
