package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/artuross/tinyc/internal/commandinit"
	"github.com/artuross/tinyc/internal/commands/config"
	"github.com/artuross/tinyc/internal/compiler"
	"github.com/peterh/liner"
	cli "github.com/urfave/cli/v2"
)

const (
	historyFile  = ".tinyc_history"
	promptMain   = "tinyc> "
	promptCont   = "  ...> "
	commandQuit  = ":quit"
	commandReset = ":reset"
)

var ErrCommandFailed = errors.New("command failed")

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:   "repl",
		Usage:  "Compiles input line by line. Type :quit to exit.",
		Flags:  config.Flags(),
		Action: run,
	}
}

func run(cliCtx *cli.Context) error {
	ctx := cliCtx.Context

	cfg, err := config.Read(cliCtx, os.Getenv)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := commandinit.NewLogger(cliCtx.App.ErrWriter, cfg.LogLevel, "repl")
	config.Print(logger, cfg)

	tracerProvider, tpShutdown, err := commandinit.NewTracerProvider(ctx, cfg.OTelEnabled, cfg.OTelServiceName)
	if err != nil {
		logger.Error().Err(err).Msg("init OTEL provider")
		return ErrCommandFailed
	}
	defer tpShutdown(ctx)

	ctx = logger.WithContext(ctx)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	historyPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyPath = filepath.Join(home, historyFile)
	}

	if f, err := os.Open(historyPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	defer func() {
		if historyPath == "" {
			return
		}

		if f, err := os.Create(historyPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	session := NewSession(compiler.New(compiler.WithTracerProvider(tracerProvider)))
	out := cliCtx.App.Writer

	for {
		prompt := promptMain
		if session.Pending() {
			prompt = promptCont
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			session.Reset()
			continue
		}
		if err != nil {
			logger.Error().Err(err).Msg("read line")
			return ErrCommandFailed
		}

		switch strings.TrimSpace(line) {
		case commandQuit:
			return nil

		case commandReset:
			session.Reset()
			continue

		case "":
			if !session.Pending() {
				continue
			}
		}

		ln.AppendHistory(line)

		output, complete, err := session.Feed(ctx, line)
		if !complete {
			continue
		}

		if err != nil {
			fmt.Fprintln(cliCtx.App.ErrWriter, err)
			continue
		}

		if output != "" {
			fmt.Fprintln(out, output)
		}
	}
}
