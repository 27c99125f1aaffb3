package cli

import (
	"log/slog"

	"github.com/urfave/cli/v2"

	"imapmaildirgen/internal/compile"
	"imapmaildirgen/internal/emit"
	"imapmaildirgen/internal/registry"
)

func compileCommand(logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "compile",
		Usage: "compile the registry and write unit and config files",
		Flags: []cli.Flag{
			registryFlag(),
			&cli.StringFlag{
				Name:  "unit-dir",
				Usage: "directory for generated service and timer units",
				Value: defaultUnitDir(),
			},
			&cli.StringFlag{
				Name:  "config-root",
				Usage: "user configuration root for account config files",
				Value: defaultConfigRoot(),
			},
			&cli.StringFlag{
				Name:  "binary",
				Usage: "path of the imapmaildir executable placed in ExecStart",
				Value: compile.DefaultBinary,
			},
		},
		Action: compileAction(logger, emit.OSFileManager{}),
	}
}

func compileAction(logger *slog.Logger, fileMgr emit.FileManager) cli.ActionFunc {
	return func(c *cli.Context) error {
		ctx, span := tracer.Start(c.Context, "compile")
		defer span.End()

		reg, err := registry.Load(c.String("registry"))
		if err != nil {
			return err
		}

		set, err := compile.Compile(reg, compile.Options{Binary: c.String("binary")})
		if err != nil {
			return err
		}

		emitter, err := emit.NewEmitter(
			emit.WithFileManager(fileMgr),
			emit.WithLogger(logger),
			emit.WithUnitDir(c.String("unit-dir")),
			emit.WithConfigRoot(c.String("config-root")),
		)
		if err != nil {
			return err
		}

		if err := emitter.Emit(ctx, set); err != nil {
			return err
		}

		logger.InfoContext(ctx, "Compilation finished",
			slog.Int("accounts", len(reg.Enabled())),
			slog.Int("artifacts", set.Len()))

		return nil
	}
}
