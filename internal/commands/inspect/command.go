package inspect

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/artuross/tinyc/internal/commandinit"
	"github.com/artuross/tinyc/internal/commands/config"
	"github.com/artuross/tinyc/internal/compiler"
	cli "github.com/urfave/cli/v2"
)

var ErrCommandFailed = errors.New("command failed")

func NewCommand() *cli.Command {
	names := make([]string, 0, len(Stages))
	for _, stage := range Stages {
		names = append(names, string(stage))
	}

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "stage",
			Usage: "Stage to print: " + strings.Join(names, ", ") + ".",
			Value: string(StageAST),
		},
	}

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Prints the result of a single compiler stage.",
		ArgsUsage: "[FILE]",
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

	stage, err := ParseStage(cliCtx.String("stage"))
	if err != nil {
		return err
	}

	logger := commandinit.NewLogger(cliCtx.App.ErrWriter, cfg.LogLevel, "inspect")
	config.Print(logger, cfg)

	tracerProvider, tpShutdown, err := commandinit.NewTracerProvider(ctx, cfg.OTelEnabled, cfg.OTelServiceName)
	if err != nil {
		logger.Error().Err(err).Msg("init OTEL provider")
		return ErrCommandFailed
	}
	defer tpShutdown(ctx)

	ctx = logger.WithContext(ctx)

	input, err := readInput(cliCtx)
	if err != nil {
		logger.Error().Err(err).Msg("read input")
		return ErrCommandFailed
	}

	c := compiler.New(compiler.WithTracerProvider(tracerProvider))

	output, err := Inspect(ctx, c, stage, input)
	if err != nil {
		logger.Error().Err(err).Str("stage", string(stage)).Msg("inspect")
		return ErrCommandFailed
	}

	if _, err := io.WriteString(cliCtx.App.Writer, output); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

func readInput(cliCtx *cli.Context) (string, error) {
	if cliCtx.NArg() == 0 {
		data, err := io.ReadAll(cliCtx.App.Reader)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}

		return string(data), nil
	}

	if cliCtx.NArg() > 1 {
		return "", errors.New("inspect takes at most one file")
	}

	data, err := os.ReadFile(cliCtx.Args().First())
	if err != nil {
		return "", fmt.Errorf("read input file: %w", err)
	}

	return string(data), nil
}
