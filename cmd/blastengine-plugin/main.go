package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/dmitrymomot/blastengine/internal/config"
	"github.com/dmitrymomot/blastengine/internal/server"
	"github.com/dmitrymomot/blastengine/internal/tools"
	"github.com/dmitrymomot/blastengine/pkg/attachments"
	"github.com/dmitrymomot/blastengine/pkg/blastengine"
	"github.com/dmitrymomot/blastengine/pkg/health"
	"github.com/dmitrymomot/blastengine/pkg/logger"
	"github.com/dmitrymomot/blastengine/pkg/mailer"
	bemailer "github.com/dmitrymomot/blastengine/pkg/mailer/blastengine"
)

func main() {
	if err := run(); err != nil {
		slog.Error("plugin exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.NewWithSentry(cfg.Sentry, server.RequestIDExtractor())

	client, err := blastengine.New(cfg.Blastengine, blastengine.WithLogger(log))
	if err != nil {
		return err
	}

	sender := bemailer.New(client, cfg.Sender)
	resolver := attachments.NewResolver(cfg.Attachments)

	var toolOpts []tools.Option
	if dir := cfg.Mailer.TemplatesDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			renderer := mailer.NewRenderer(os.DirFS(dir))
			toolOpts = append(toolOpts, tools.WithTemplates(mailer.New(sender, renderer, cfg.Mailer)))
		} else {
			log.Warn("template directory not found, templated sending disabled",
				slog.String("dir", dir),
			)
		}
	}

	toolset := tools.New(sender, resolver, cfg.Mailer, log, toolOpts...)

	manifest, err := config.LoadManifest()
	if err != nil {
		return err
	}

	checks := health.Checks{
		"blastengine": health.APICheck(&http.Client{Timeout: cfg.Blastengine.Timeout}, cfg.Blastengine.BaseURL),
	}

	srv := server.New(cfg.HTTPAddr, toolset,
		server.WithLogger(log),
		server.WithManifest(manifest),
		server.WithChecks(checks),
		server.WithShutdownTimeout(cfg.ShutdownTimeout),
	)

	log.Info("blastengine plugin starting",
		slog.String("env", cfg.Env),
		slog.String("addr", cfg.HTTPAddr),
	)
	return srv.Run(context.Background())
}
