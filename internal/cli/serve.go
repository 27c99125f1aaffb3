package cli

import (
	"log/slog"

	"github.com/urfave/cli/v2"

	"imapmaildirgen/internal/compile"
	"imapmaildirgen/internal/web"
)

func serveCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the compiled artifact set as a JSON API",
		Flags: []cli.Flag{
			registryFlag(),
			&cli.StringFlag{
				Name:  "addr",
				Usage: "listen address",
				Value: ":8035",
			},
			&cli.StringFlag{
				Name:  "binary",
				Usage: "path of the imapmaildir executable placed in ExecStart",
				Value: compile.DefaultBinary,
			},
		},
		Action: func(c *cli.Context) error {
			server := web.NewServer(logger, c.String("registry"), compile.Options{Binary: c.String("binary")})

			logger.Info("Serving artifact API", slog.String("addr", c.String("addr")))
			return server.App().Listen(c.String("addr"))
		},
	}
}
