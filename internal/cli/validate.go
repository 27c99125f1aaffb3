package cli

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"imapmaildirgen/internal/compile"
	"imapmaildirgen/internal/registry"
)

func validateCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "check the registry without writing anything",
		Flags: []cli.Flag{
			registryFlag(),
			&cli.StringFlag{
				Name:  "binary",
				Usage: "path of the imapmaildir executable placed in ExecStart",
				Value: compile.DefaultBinary,
			},
		},
		Action: validateAction(logger),
	}
}

func validateAction(logger *slog.Logger) cli.ActionFunc {
	return func(c *cli.Context) error {
		ctx, span := tracer.Start(c.Context, "validate")
		defer span.End()

		reg, err := registry.Load(c.String("registry"))
		if err != nil {
			return err
		}

		set, err := compile.Compile(reg, compile.Options{Binary: c.String("binary")})
		if err != nil {
			return err
		}

		logger.InfoContext(ctx, "Registry is valid",
			slog.Int("accounts", len(reg.Accounts)),
			slog.Int("enabled", len(reg.Enabled())))

		fmt.Fprintf(c.App.Writer,
			"Registry summary\n- accounts: %d\n- enabled: %d\n- services: %d\n- timers: %d\n- config files: %d\n",
			len(reg.Accounts),
			len(reg.Enabled()),
			len(set.Services()),
			len(set.Timers()),
			len(set.Configs()),
		)

		return nil
	}
}
