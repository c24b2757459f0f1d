package compile

import (
	"errors"
	"fmt"
	"os"

	"github.com/artuross/tinyc/internal/commandinit"
	"github.com/artuross/tinyc/internal/commands/compile/exec"
	"github.com/artuross/tinyc/internal/commands/config"
	"github.com/artuross/tinyc/internal/compiler"
	cli "github.com/urfave/cli/v2"
)

var ErrCommandFailed = errors.New("command failed")

func NewCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "out-dir",
			Aliases: []string{"o"},
			Usage:   "Directory for the generated files. Output goes to stdout when empty.",
		},
		&cli.StringFlag{
			Name:  "ext",
			Usage: "Extension of the generated files.",
		},
		&cli.IntFlag{
			Name:  "concurrency",
			Usage: "Maximum number of files compiled at the same time.",
		},
	}

	return &cli.Command{
		Name:      "compile",
		Usage:     "Compiles s-expression files. Reads stdin when no file is given.",
		ArgsUsage: "[FILE...]",
		Flags:     append(flags, config.Flags()...),
		Action:    run,
	}
}

func run(cliCtx *cli.Context) error {
	ctx := cliCtx.Context

	cfg, err := config.Read(cliCtx, os.Getenv)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := commandinit.NewLogger(cliCtx.App.ErrWriter, cfg.LogLevel, "compile")
	config.Print(logger, cfg)

	tracerProvider, tpShutdown, err := commandinit.NewTracerProvider(ctx, cfg.OTelEnabled, cfg.OTelServiceName)
	if err != nil {
		logger.Error().Err(err).Msg("init OTEL provider")
		return ErrCommandFailed
	}
	defer tpShutdown(ctx)

	ctx = logger.WithContext(ctx)

	execConfig := exec.Config{
		Concurrency: cfg.Concurrency,
		Extension:   cfg.Extension,
		Inputs:      cliCtx.Args().Slice(),
		OutDir:      cfg.OutDir,
	}

	executor := exec.NewExecutor(
		compiler.New(compiler.WithTracerProvider(tracerProvider)),
		cliCtx.App.Reader,
		cliCtx.App.Writer,
		exec.WithTracerProvider(tracerProvider),
	)

	if err := executor.Run(ctx, execConfig); err != nil {
		logger.Error().Err(err).Msg("compile")
		return ErrCommandFailed
	}

	return nil
}
