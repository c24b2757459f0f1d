// Package compiler runs the tokenize, parse, transform and generate stages
// in order and stops at the first failure.
package compiler

import (
	"context"
	"fmt"

	"github.com/artuross/tinyc/internal/compiler/ast"
	"github.com/artuross/tinyc/internal/compiler/codegen"
	"github.com/artuross/tinyc/internal/compiler/lexer"
	"github.com/artuross/tinyc/internal/compiler/parser"
	"github.com/artuross/tinyc/internal/compiler/target"
	"github.com/artuross/tinyc/internal/compiler/transform"
	"github.com/artuross/tinyc/internal/defaults"
	"github.com/artuross/tinyc/internal/log/semconv"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/artuross/tinyc/internal/compiler"
)

type Stage string

const (
	StageTokenize  Stage = "tokenize"
	StageParse     Stage = "parse"
	StageTransform Stage = "transform"
	StageGenerate  Stage = "generate"
)

// Error tells which stage failed. Err is the stage's own error type, so
// errors.As(err, new(*lexer.Error)) and friends keep working.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Compiler struct {
	tracer trace.Tracer
}

func New(options ...func(*Compiler)) *Compiler {
	compiler := Compiler{
		tracer: defaults.TracerProvider.Tracer(tracerName),
	}

	for _, apply := range options {
		apply(&compiler)
	}

	return &compiler
}

func WithTracerProvider(tp trace.TracerProvider) func(*Compiler) {
	return func(c *Compiler) {
		c.tracer = tp.Tracer(tracerName)
	}
}

// Compile translates input with a compiler that has no tracing and no logging.
func Compile(input string) (string, error) {
	return New().Compile(context.Background(), input)
}

func (c *Compiler) Compile(ctx context.Context, input string) (string, error) {
	compilationID := uuid.New().String()

	ctx, span := c.tracer.Start(
		ctx,
		"compile",
		trace.WithAttributes(
			attribute.String(semconv.CompilationID, compilationID),
			attribute.Int(semconv.InputBytes, len(input)),
		),
	)
	defer span.End()

	logger := zerolog.Ctx(ctx).With().Str(semconv.CompilationID, compilationID).Logger()
	ctx = logger.WithContext(ctx)

	output, err := c.compile(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return "", err
	}

	logger.Debug().Int(semconv.InputBytes, len(input)).Int(semconv.OutputBytes, len(output)).Msg("compiled")

	return output, nil
}

func (c *Compiler) compile(ctx context.Context, input string) (string, error) {
	tokens, err := c.Tokenize(ctx, input)
	if err != nil {
		return "", err
	}

	program, err := c.Parse(ctx, tokens)
	if err != nil {
		return "", err
	}

	targetProgram, err := c.Transform(ctx, program)
	if err != nil {
		return "", err
	}

	return c.Generate(ctx, targetProgram)
}

func (c *Compiler) Tokenize(ctx context.Context, input string) ([]*lexer.Token, error) {
	return runStage(ctx, c.tracer, StageTokenize, func(ctx context.Context) ([]*lexer.Token, error) {
		tokens, err := lexer.Tokenize(input)
		if err != nil {
			return nil, err
		}

		zerolog.Ctx(ctx).Trace().Int(semconv.TokenCount, len(tokens)).Msg("tokenized")

		return tokens, nil
	})
}

func (c *Compiler) Parse(ctx context.Context, tokens []*lexer.Token) (*ast.Program, error) {
	return runStage(ctx, c.tracer, StageParse, func(_ context.Context) (*ast.Program, error) {
		return parser.Parse(tokens)
	})
}

func (c *Compiler) Transform(ctx context.Context, program *ast.Program) (*target.Program, error) {
	return runStage(ctx, c.tracer, StageTransform, func(_ context.Context) (*target.Program, error) {
		return transform.Transform(program)
	})
}

func (c *Compiler) Generate(ctx context.Context, program *target.Program) (string, error) {
	return runStage(ctx, c.tracer, StageGenerate, func(_ context.Context) (string, error) {
		return codegen.Generate(program)
	})
}

// runStage runs fn inside a span. The context passed to fn carries a logger
// with the stage field.
func runStage[T any](ctx context.Context, tracer trace.Tracer, stage Stage, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, span := tracer.Start(ctx, string(stage))
	defer span.End()

	logger := zerolog.Ctx(ctx).With().Str(semconv.Stage, string(stage)).Logger()
	ctx = logger.WithContext(ctx)

	value, err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		logger.Debug().Err(err).Msg("stage failed")

		var zero T
		return zero, &Error{Stage: stage, Err: err}
	}

	logger.Debug().Msg("stage completed")

	return value, nil
}
