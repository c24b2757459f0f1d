package transform

import (
	"errors"
	"fmt"

	"github.com/artuross/tinyc/internal/compiler/ast"
	"github.com/artuross/tinyc/internal/compiler/target"
	"github.com/artuross/tinyc/internal/compiler/transform/internal/stack"
	"github.com/artuross/tinyc/internal/compiler/traverse"
)

var (
	ErrMisplacedNode = errors.New("node not allowed here")
	ErrNoSink        = errors.New("no output location")
)

// Error is returned when a translated node has nowhere valid to go.
type Error struct {
	Node any
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transform: %s: %T", e.Err, e.Node)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// sink is the ordered sequence of the target tree that translated children
// are appended to.
type sink interface {
	Append(node target.Node) error
}

type bodySink struct {
	program *target.Program
}

func (s bodySink) Append(node target.Node) error {
	statement, ok := node.(*target.ExpressionStatement)
	if !ok {
		return &Error{Node: node, Err: ErrMisplacedNode}
	}

	s.program.Body = append(s.program.Body, statement)

	return nil
}

type argumentsSink struct {
	call *target.CallExpression
}

func (s argumentsSink) Append(node target.Node) error {
	expr, ok := node.(target.Expr)
	if !ok {
		return &Error{Node: node, Err: ErrMisplacedNode}
	}

	s.call.Arguments = append(s.call.Arguments, expr)

	return nil
}

type transformer struct {
	sinks *stack.Stack[sink]
}

// Transform builds a new target program from the source program. The source
// tree is only read.
func Transform(program *ast.Program) (*target.Program, error) {
	t := transformer{
		sinks: stack.New[sink](),
	}

	output := &target.Program{
		Body: make([]*target.ExpressionStatement, 0),
	}

	visitor := traverse.SourceVisitor{
		Program: traverse.Hooks[*ast.Program, ast.Node]{
			Enter: func(_ *ast.Program, _ ast.Node) error {
				t.sinks.Push(bodySink{program: output})
				return nil
			},
			Exit: func(_ *ast.Program, _ ast.Node) error {
				return t.pop()
			},
		},
		CallExpression: traverse.Hooks[*ast.CallExpression, ast.Node]{
			Enter: t.enterCallExpression,
			Exit: func(_ *ast.CallExpression, _ ast.Node) error {
				return t.pop()
			},
		},
		NumberLiteral: traverse.Hooks[*ast.NumberLiteral, ast.Node]{
			Enter: func(node *ast.NumberLiteral, _ ast.Node) error {
				return t.append(&target.NumberLiteral{Value: node.Value})
			},
		},
		StringLiteral: traverse.Hooks[*ast.StringLiteral, ast.Node]{
			Enter: func(node *ast.StringLiteral, _ ast.Node) error {
				return t.append(&target.StringLiteral{Value: node.Value})
			},
		},
	}

	if err := traverse.Source(program, visitor); err != nil {
		return nil, err
	}

	return output, nil
}

func (t *transformer) enterCallExpression(node *ast.CallExpression, parent ast.Node) error {
	call := &target.CallExpression{
		Callee: &target.Identifier{
			Name: node.Name,
		},
		Arguments: make([]target.Expr, 0, len(node.Params)),
	}

	// only calls nested in calls stay expressions
	var translated target.Node = call
	if _, nested := parent.(*ast.CallExpression); !nested {
		translated = &target.ExpressionStatement{
			Expression: call,
		}
	}

	if err := t.append(translated); err != nil {
		return err
	}

	// children of this call go into its own arguments
	t.sinks.Push(argumentsSink{call: call})

	return nil
}

func (t *transformer) append(node target.Node) error {
	current, ok := t.sinks.Peek()
	if !ok {
		return &Error{Node: node, Err: ErrNoSink}
	}

	return current.Append(node)
}

func (t *transformer) pop() error {
	if _, ok := t.sinks.Pop(); !ok {
		return &Error{Err: ErrNoSink}
	}

	return nil
}
