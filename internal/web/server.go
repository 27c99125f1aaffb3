// Package web exposes the compiled artifact set over a small read-only JSON
// API. The set is recompiled from the registry snapshot on every request, so
// the response always reflects the file on disk.
package web

import (
	"log/slog"

	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/fiber/v2"

	"imapmaildirgen/internal/artifact"
	"imapmaildirgen/internal/compile"
	"imapmaildirgen/internal/registry"
)

type Server struct {
	logger       *slog.Logger
	registryPath string
	opts         compile.Options
}

func NewServer(logger *slog.Logger, registryPath string, opts compile.Options) *Server {
	return &Server{logger: logger, registryPath: registryPath, opts: opts}
}

// App builds the fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(otelfiber.Middleware())

	app.Get("/healthz", s.health)
	app.Get("/api/accounts", s.accounts)
	app.Get("/api/artifacts", s.artifacts)

	return app
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

type accountSummary struct {
	Name      string   `json:"name"`
	Enabled   bool     `json:"enabled"`
	Host      string   `json:"host"`
	Mailboxes []string `json:"mailboxes"`
}

func (s *Server) accounts(c *fiber.Ctx) error {
	reg, err := registry.Load(s.registryPath)
	if err != nil {
		s.logger.Error("Loading registry failed", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	summaries := make([]accountSummary, 0, len(reg.Accounts))
	for _, account := range reg.Accounts {
		summaries = append(summaries, accountSummary{
			Name:      account.Name,
			Enabled:   account.Enabled,
			Host:      account.IMAP.Host,
			Mailboxes: account.Mailboxes,
		})
	}

	return c.JSON(fiber.Map{"accounts": summaries})
}

type artifactSet struct {
	Services []artifact.Service    `json:"services"`
	Timers   []artifact.Timer      `json:"timers"`
	Configs  []artifact.ConfigFile `json:"configs"`
}

func (s *Server) artifacts(c *fiber.Ctx) error {
	reg, err := registry.Load(s.registryPath)
	if err != nil {
		s.logger.Error("Loading registry failed", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	set, err := compile.Compile(reg, s.opts)
	if err != nil {
		s.logger.Error("Compiling registry failed", slog.String("error", err.Error()))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(artifactSet{
		Services: set.Services(),
		Timers:   set.Timers(),
		Configs:  set.Configs(),
	})
}
