// Package server exposes the compliance generator over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/clarynt/clarynt/internal/config"
	"github.com/clarynt/clarynt/internal/embeddings"
	"github.com/clarynt/clarynt/internal/llm"
	"github.com/clarynt/clarynt/internal/regindex"
	"github.com/clarynt/clarynt/internal/store"
)

// Server wires configuration, capabilities, and storage behind the HTTP API.
type Server struct {
	cfg      *config.Config
	logger   *slog.Logger
	limiter  *ipLimiter
	projects *store.ProjectStore

	// nil when no API key is configured; handlers needing them return 503.
	provider embeddings.Provider
	gen      llm.Generator
	index    *regindex.Index
}

// New builds a server from cfg. Generation capabilities are optional: a
// missing API key leaves them nil and the affected routes degrade to 503.
// A missing or unbuildable regulatory index degrades retrieval, not startup.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		logger:  slog.Default(),
		limiter: newIPLimiter(cfg.MaxRequestsPerMinute),
	}

	projects, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open project store: %w", err)
	}
	s.projects = projects

	if cfg.RequireAPIKey() == nil {
		prov, err := embeddings.NewFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		gen, err := llm.NewFromConfig(cfg)
		if err != nil {
			return nil, err
		}
		s.provider = prov
		s.gen = gen

		idx, err := regindex.BuildOrLoad(ctx, prov, cfg.RegsDir, cfg.IndexPath, regindex.BuildOptions{})
		if err != nil {
			s.logger.Warn("regulatory index unavailable, continuing without retrieval", "error", err)
		} else {
			s.index = idx
			s.logger.Info("regulatory index ready", "chunks", len(idx.Chunks))
		}
	} else {
		s.logger.Warn("no API key configured, generation routes will return 503")
	}

	return s, nil
}

// App assembles the fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
		BodyLimit:    4 * 1024 * 1024,
	})

	app.Get("/api/health", s.handleHealth)
	app.Get("/api/demo-config", s.handleDemoConfig)

	api := app.Group("/api", s.rateLimit)

	// Report generation and saved projects sit behind the invite token; the
	// assessment endpoints are only rate limited.
	api.Post("/generate", s.requireInvite, s.handleGenerate)
	api.Post("/generate-with-file", s.requireInvite, s.handleGenerateWithFile)
	api.Get("/projects", s.requireInvite, s.handleListProjects)
	api.Get("/projects/:id", s.requireInvite, s.handleGetProject)
	api.Delete("/projects/:id", s.requireInvite, s.handleDeleteProject)

	api.Post("/generate-outcome-documentation", s.handleOutcomeDocumentation)
	api.Post("/generate-checklist", s.handleChecklist)
	api.Post("/chat/compliance-assistant", s.handleChat)

	return app
}

// Run serves the API until the listener fails.
func (s *Server) Run() error {
	app := s.App()
	s.logger.Info("listening", "addr", s.cfg.Addr)
	if err := app.Listen(s.cfg.Addr); err != nil {
		return fmt.Errorf("cannot serve on %s: %w", s.cfg.Addr, err)
	}
	return nil
}

// requireGeneration returns the 503 error when generation is unconfigured.
func (s *Server) requireGeneration() error {
	if s.gen == nil {
		return ErrNotConfigured()
	}
	return nil
}
