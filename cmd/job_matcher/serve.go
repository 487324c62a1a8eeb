package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/job-matcher/internal/db"
	"github.com/jonathan/job-matcher/internal/engine"
	"github.com/jonathan/job-matcher/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  "Start an HTTP server exposing matching, recommendation, search and insight endpoints. The database and Gemini are optional.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runServe(cmd.Context())
		},
	}
	cmd.Flags().Int("port", 8080, "Port to listen on")
	_ = a.v.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	return cmd
}

func (a *app) runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eng, err := engine.Build(ctx, a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}
	defer eng.Close()

	var store server.Store
	if url := a.cfg.Database.URL; url != "" {
		database, err := db.Connect(ctx, url)
		if err != nil {
			return err
		}
		defer database.Close()
		if a.cfg.Database.Migrate {
			if err := database.Migrate(ctx); err != nil {
				return err
			}
			a.logger.Info("database schema applied")
		}
		store = database
	} else {
		a.logger.Warn("no database configured; search, feedback and stored pools are disabled")
	}

	a.logger.Info("starting job matcher",
		zap.Int("port", a.cfg.Server.Port),
		zap.Bool("llm", eng.LLM != nil),
		zap.Bool("embeddings", a.cfg.Embedding.Enabled))
	return server.New(a.cfg, eng, store, a.logger).Run(ctx)
}
