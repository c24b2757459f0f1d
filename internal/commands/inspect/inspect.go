package inspect

import (
	"context"
	"fmt"
	"strings"

	"github.com/artuross/tinyc/internal/compiler"
	"github.com/kr/pretty"
)

type Stage string

const (
	StageTokens Stage = "tokens"
	StageAST    Stage = "ast"
	StageTarget Stage = "target"
	StageOutput Stage = "output"
)

var Stages = []Stage{StageTokens, StageAST, StageTarget, StageOutput}

func ParseStage(value string) (Stage, error) {
	for _, stage := range Stages {
		if string(stage) == value {
			return stage, nil
		}
	}

	return "", fmt.Errorf("unknown stage %q", value)
}

// Inspect runs the pipeline up to stage and renders that stage's result.
func Inspect(ctx context.Context, c *compiler.Compiler, stage Stage, input string) (string, error) {
	tokens, err := c.Tokenize(ctx, input)
	if err != nil {
		return "", err
	}

	if stage == StageTokens {
		var sb strings.Builder
		for _, token := range tokens {
			start := token.Position.Start
			fmt.Fprintf(&sb, "%d:%d\t%s\n", start.Line, start.Column, token)
		}

		return sb.String(), nil
	}

	program, err := c.Parse(ctx, tokens)
	if err != nil {
		return "", err
	}

	if stage == StageAST {
		return pretty.Sprint(program) + "\n", nil
	}

	targetProgram, err := c.Transform(ctx, program)
	if err != nil {
		return "", err
	}

	if stage == StageTarget {
		return pretty.Sprint(targetProgram) + "\n", nil
	}

	output, err := c.Generate(ctx, targetProgram)
	if err != nil {
		return "", err
	}

	return output + "\n", nil
}
