package configure

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/artuross/tinyc/internal/tinycconfig"
	"github.com/rs/zerolog"
	cli "github.com/urfave/cli/v2"
)

var ErrConfigExists = errors.New("config file already exists")

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:  "configure",
		Usage: "Writes a tinyc.toml config file.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config-file",
				Usage: "Destination path for the config file.",
				Value: tinycconfig.DefaultPath,
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing config file.",
			},

			// optional, written only when set
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "One of trace, debug, info, warn, error.",
			},
			&cli.StringFlag{
				Name:  "out-dir",
				Usage: "Directory compiled files are written to.",
			},
			&cli.StringFlag{
				Name:  "ext",
				Usage: "Extension of compiled files.",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "Number of files compiled at once.",
			},
			&cli.BoolFlag{
				Name:  "otel",
				Usage: "Export traces over OTLP gRPC.",
			},
			&cli.StringFlag{
				Name:  "otel-service-name",
				Usage: "Service name attached to exported traces.",
			},
		},
		Action: run,
	}
}

func run(cliCtx *cli.Context) error {
	file, err := fileFromFlags(cliCtx)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	path := cliCtx.String("config-file")
	if err := Write(path, file, cliCtx.Bool("force")); err != nil {
		return err
	}

	fmt.Fprintf(cliCtx.App.Writer, "wrote %s\n", path)

	return nil
}

// Write saves file to path. An existing file is kept unless force is set.
func Write(path string, file *tinycconfig.File, force bool) error {
	_, err := os.Stat(path)
	switch {
	case err == nil && !force:
		return fmt.Errorf("%w: %s", ErrConfigExists, path)

	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	return tinycconfig.SaveConfigFile(path, file)
}

func fileFromFlags(cliCtx *cli.Context) (*tinycconfig.File, error) {
	file := tinycconfig.File{
		LogLevel:    cliCtx.String("log-level"),
		OutDir:      cliCtx.String("out-dir"),
		Extension:   cliCtx.String("ext"),
		Concurrency: cliCtx.Int("concurrency"),
		OTel: tinycconfig.OTel{
			ServiceName: cliCtx.String("otel-service-name"),
		},
	}

	if file.LogLevel != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(file.LogLevel)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", file.LogLevel, err)
		}
	}

	if cliCtx.IsSet("concurrency") && file.Concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be at least 1, got %d", file.Concurrency)
	}

	if cliCtx.IsSet("otel") {
		enabled := cliCtx.Bool("otel")
		file.OTel.Enabled = &enabled
	}

	return &file, nil
}
