// Package cli wires the compiler pipeline into the command-line surface.
package cli

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("imapmaildirgen/cli")

// NewApp builds the CLI application.
func NewApp(logger *slog.Logger) *cli.App {
	return &cli.App{
		Name:  "imapmaildirgen",
		Usage: "generate sync services, timers and account configs for imapmaildir",
		Commands: []*cli.Command{
			compileCommand(logger),
			validateCommand(logger),
			serveCommand(logger),
		},
	}
}

func registryFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "registry",
		Aliases:  []string{"r"},
		Usage:    "path to the account registry YAML file",
		Required: true,
	}
}

// defaultUnitDir is where systemd looks for user units.
func defaultUnitDir() string {
	return filepath.Join(defaultConfigRoot(), "systemd", "user")
}

func defaultConfigRoot() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".config"
	}
	return dir
}
