// Package traverse walks a source or target tree depth first.
//
// Each node variant has its own pair of hooks. Enter runs before the node's
// children are visited and Exit runs after all of them. The root is visited
// with a nil parent. A hook returning an error stops the walk and the error
// is returned unchanged.
package traverse

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/artuross/tinyc/internal/compiler/ast"
	"github.com/artuross/tinyc/internal/compiler/target"
)

var ErrUnknownNode = errors.New("unknown node type")

// Error is returned when the walk meets a node it cannot dispatch.
type Error struct {
	Node any
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("traverse: %s: %T", e.Err, e.Node)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Hooks[N any, P any] struct {
	Enter func(node N, parent P) error
	Exit  func(node N, parent P) error
}

func (h Hooks[N, P]) enter(node N, parent P) error {
	if h.Enter == nil {
		return nil
	}

	return h.Enter(node, parent)
}

func (h Hooks[N, P]) exit(node N, parent P) error {
	if h.Exit == nil {
		return nil
	}

	return h.Exit(node, parent)
}

// dispatcher knows the variants of one tree shape.
type dispatcher[N any] interface {
	enter(node, parent N) error
	children(node N) ([]N, error)
	exit(node, parent N) error
}

func walk[N any](d dispatcher[N], node, parent N) error {
	if isNil(node) {
		return unknown(node)
	}

	if err := d.enter(node, parent); err != nil {
		return err
	}

	children, err := d.children(node)
	if err != nil {
		return err
	}

	for _, child := range children {
		if err := walk(d, child, node); err != nil {
			return err
		}
	}

	return d.exit(node, parent)
}

type SourceVisitor struct {
	Program        Hooks[*ast.Program, ast.Node]
	CallExpression Hooks[*ast.CallExpression, ast.Node]
	NumberLiteral  Hooks[*ast.NumberLiteral, ast.Node]
	StringLiteral  Hooks[*ast.StringLiteral, ast.Node]
}

// Source walks a tree produced by the parser.
func Source(root ast.Node, visitor SourceVisitor) error {
	return walk[ast.Node](sourceDispatcher{visitor}, root, nil)
}

type sourceDispatcher struct {
	v SourceVisitor
}

func (d sourceDispatcher) enter(node, parent ast.Node) error {
	switch node := node.(type) {
	case *ast.Program:
		return d.v.Program.enter(node, parent)

	case *ast.CallExpression:
		return d.v.CallExpression.enter(node, parent)

	case *ast.NumberLiteral:
		return d.v.NumberLiteral.enter(node, parent)

	case *ast.StringLiteral:
		return d.v.StringLiteral.enter(node, parent)
	}

	return unknown(node)
}

func (d sourceDispatcher) children(node ast.Node) ([]ast.Node, error) {
	switch node := node.(type) {
	case *ast.Program:
		children := make([]ast.Node, 0, len(node.Body))
		for _, call := range node.Body {
			children = append(children, call)
		}

		return children, nil

	case *ast.CallExpression:
		children := make([]ast.Node, 0, len(node.Params))
		for _, param := range node.Params {
			children = append(children, param)
		}

		return children, nil

	// leaves
	case *ast.NumberLiteral, *ast.StringLiteral:
		return nil, nil
	}

	return nil, unknown(node)
}

func (d sourceDispatcher) exit(node, parent ast.Node) error {
	switch node := node.(type) {
	case *ast.Program:
		return d.v.Program.exit(node, parent)

	case *ast.CallExpression:
		return d.v.CallExpression.exit(node, parent)

	case *ast.NumberLiteral:
		return d.v.NumberLiteral.exit(node, parent)

	case *ast.StringLiteral:
		return d.v.StringLiteral.exit(node, parent)
	}

	return unknown(node)
}

type TargetVisitor struct {
	Program             Hooks[*target.Program, target.Node]
	ExpressionStatement Hooks[*target.ExpressionStatement, target.Node]
	CallExpression      Hooks[*target.CallExpression, target.Node]
	Identifier          Hooks[*target.Identifier, target.Node]
	NumberLiteral       Hooks[*target.NumberLiteral, target.Node]
	StringLiteral       Hooks[*target.StringLiteral, target.Node]
}

// Target walks a tree produced by the transformer. A call's callee is visited
// before its arguments.
func Target(root target.Node, visitor TargetVisitor) error {
	return walk[target.Node](targetDispatcher{visitor}, root, nil)
}

type targetDispatcher struct {
	v TargetVisitor
}

func (d targetDispatcher) enter(node, parent target.Node) error {
	switch node := node.(type) {
	case *target.Program:
		return d.v.Program.enter(node, parent)

	case *target.ExpressionStatement:
		return d.v.ExpressionStatement.enter(node, parent)

	case *target.CallExpression:
		return d.v.CallExpression.enter(node, parent)

	case *target.Identifier:
		return d.v.Identifier.enter(node, parent)

	case *target.NumberLiteral:
		return d.v.NumberLiteral.enter(node, parent)

	case *target.StringLiteral:
		return d.v.StringLiteral.enter(node, parent)
	}

	return unknown(node)
}

func (d targetDispatcher) children(node target.Node) ([]target.Node, error) {
	switch node := node.(type) {
	case *target.Program:
		children := make([]target.Node, 0, len(node.Body))
		for _, statement := range node.Body {
			children = append(children, statement)
		}

		return children, nil

	case *target.ExpressionStatement:
		return []target.Node{node.Expression}, nil

	case *target.CallExpression:
		children := make([]target.Node, 0, len(node.Arguments)+1)
		children = append(children, node.Callee)
		for _, argument := range node.Arguments {
			children = append(children, argument)
		}

		return children, nil

	// leaves
	case *target.Identifier, *target.NumberLiteral, *target.StringLiteral:
		return nil, nil
	}

	return nil, unknown(node)
}

func (d targetDispatcher) exit(node, parent target.Node) error {
	switch node := node.(type) {
	case *target.Program:
		return d.v.Program.exit(node, parent)

	case *target.ExpressionStatement:
		return d.v.ExpressionStatement.exit(node, parent)

	case *target.CallExpression:
		return d.v.CallExpression.exit(node, parent)

	case *target.Identifier:
		return d.v.Identifier.exit(node, parent)

	case *target.NumberLiteral:
		return d.v.NumberLiteral.exit(node, parent)

	case *target.StringLiteral:
		return d.v.StringLiteral.exit(node, parent)
	}

	return unknown(node)
}

// isNil reports both a nil interface and a nil pointer stored in one.
func isNil(node any) bool {
	if node == nil {
		return true
	}

	value := reflect.ValueOf(node)

	return value.Kind() == reflect.Pointer && value.IsNil()
}

func unknown(node any) error {
	return &Error{Node: node, Err: ErrUnknownNode}
}
