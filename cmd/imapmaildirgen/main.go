package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"imapmaildirgen/internal/cli"
	"imapmaildirgen/internal/telemetry"
)

func main() {
	// Optional; the tool works without an .env file.
	_ = godotenv.Load(".env")

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Fatalf("telemetry setup: %s", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	if err := cli.NewApp(logger).RunContext(ctx, os.Args); err != nil {
		logger.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
