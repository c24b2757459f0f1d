package codegen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/artuross/tinyc/internal/compiler/target"
)

var ErrUnknownNode = errors.New("unknown node type")

// Error is returned for a node the generator cannot print.
type Error struct {
	Node any
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("codegen: %s: %T", e.Err, e.Node)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Generate prints node and everything below it. Statements of a program are
// separated by a newline.
func Generate(node target.Node) (string, error) {
	var sb strings.Builder

	if err := generate(&sb, node); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func generate(sb *strings.Builder, node target.Node) error {
	switch node := node.(type) {
	case *target.Program:
		if node == nil {
			break
		}

		for index, statement := range node.Body {
			if index > 0 {
				sb.WriteByte('\n')
			}

			if err := generate(sb, statement); err != nil {
				return err
			}
		}

		return nil

	case *target.ExpressionStatement:
		if node == nil {
			break
		}

		if err := generate(sb, node.Expression); err != nil {
			return err
		}

		sb.WriteByte(';')

		return nil

	case *target.CallExpression:
		if node == nil {
			break
		}

		if err := generate(sb, node.Callee); err != nil {
			return err
		}

		sb.WriteByte('(')

		for index, argument := range node.Arguments {
			if index > 0 {
				sb.WriteString(", ")
			}

			if err := generate(sb, argument); err != nil {
				return err
			}
		}

		sb.WriteByte(')')

		return nil

	case *target.Identifier:
		if node == nil {
			break
		}

		sb.WriteString(node.Name)

		return nil

	case *target.NumberLiteral:
		if node == nil {
			break
		}

		// kept as written, never converted to a number
		sb.WriteString(node.Value)

		return nil

	case *target.StringLiteral:
		if node == nil {
			break
		}

		sb.WriteByte('"')
		sb.WriteString(node.Value)
		sb.WriteByte('"')

		return nil
	}

	return &Error{Node: node, Err: ErrUnknownNode}
}
