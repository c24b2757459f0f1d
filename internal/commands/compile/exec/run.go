package exec

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/artuross/tinyc/internal/compiler"
	"github.com/artuross/tinyc/internal/defaults"
	"github.com/artuross/tinyc/internal/log/semconv"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const (
	tracerName = "github.com/artuross/tinyc/internal/commands/compile/exec"
)

var ErrOutputConflict = errors.New("inputs share an output file")

type Config struct {
	Concurrency int
	Extension   string
	Inputs      []string
	OutDir      string
}

type Executor struct {
	compiler *compiler.Compiler
	stdin    io.Reader
	stdout   io.Writer
	tracer   trace.Tracer
}

func NewExecutor(compiler *compiler.Compiler, stdin io.Reader, stdout io.Writer, options ...func(*Executor)) *Executor {
	executor := Executor{
		compiler: compiler,
		stdin:    stdin,
		stdout:   stdout,
		tracer:   defaults.TracerProvider.Tracer(tracerName),
	}

	for _, apply := range options {
		apply(&executor)
	}

	return &executor
}

func WithTracerProvider(tp trace.TracerProvider) func(*Executor) {
	return func(e *Executor) {
		e.tracer = tp.Tracer(tracerName)
	}
}

// Run compiles stdin to stdout when there are no inputs. Otherwise every input
// file is compiled on its own, in parallel. Without an output directory the
// results are printed to stdout in input order.
func (e *Executor) Run(ctx context.Context, config Config) error {
	ctx, span := e.tracer.Start(ctx, "run")
	defer span.End()

	if len(config.Inputs) == 0 {
		return e.runStdin(ctx)
	}

	paths, err := outputPaths(config)
	if err != nil {
		return err
	}

	outputs := make([]string, len(config.Inputs))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(config.Concurrency)

	for index, inputPath := range config.Inputs {
		group.Go(func() error {
			// another file already failed
			if err := ctx.Err(); err != nil {
				return err
			}

			output, err := e.compileFile(ctx, inputPath)
			if err != nil {
				return err
			}

			if config.OutDir == "" {
				outputs[index] = output
				return nil
			}

			return e.writeFile(ctx, paths[index], output)
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	if config.OutDir != "" {
		return nil
	}

	for _, output := range outputs {
		if _, err := fmt.Fprintln(e.stdout, output); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	return nil
}

func (e *Executor) runStdin(ctx context.Context) error {
	data, err := io.ReadAll(e.stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	output, err := e.compiler.Compile(ctx, string(data))
	if err != nil {
		return fmt.Errorf("compile stdin: %w", err)
	}

	if _, err := fmt.Fprintln(e.stdout, output); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

func (e *Executor) compileFile(ctx context.Context, path string) (string, error) {
	ctx, span := e.tracer.Start(ctx, "compile file", trace.WithAttributes(attribute.String(semconv.InputFile, path)))
	defer span.End()

	logger := zerolog.Ctx(ctx).With().Str(semconv.InputFile, path).Logger()
	ctx = logger.WithContext(ctx)

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input file: %w", err)
	}

	output, err := e.compiler.Compile(ctx, string(data))
	if err != nil {
		return "", fmt.Errorf("compile %s: %w", path, err)
	}

	logger.Info().Msg("compiled file")

	return output, nil
}

func (e *Executor) writeFile(ctx context.Context, path string, output string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(output+"\n"), 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str(semconv.OutputFile, path).Msg("wrote output file")

	return nil
}

// outputPaths maps every input to its file in the output directory. Two inputs
// resolving to the same file fail the run before anything is compiled.
func outputPaths(config Config) ([]string, error) {
	if config.OutDir == "" {
		return nil, nil
	}

	paths := make([]string, len(config.Inputs))
	owners := make(map[string]string, len(config.Inputs))

	for index, inputPath := range config.Inputs {
		outputPath := OutputPath(config.OutDir, inputPath, config.Extension)

		if owner, ok := owners[outputPath]; ok {
			return nil, fmt.Errorf("%w: %s and %s both write %s", ErrOutputConflict, owner, inputPath, outputPath)
		}

		owners[outputPath] = inputPath
		paths[index] = outputPath
	}

	return paths, nil
}

// OutputPath replaces the extension of the input's base name and places it in outDir.
func OutputPath(outDir, inputPath, extension string) string {
	base := filepath.Base(inputPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	return filepath.Join(outDir, name+extension)
}
