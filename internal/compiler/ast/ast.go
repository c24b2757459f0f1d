// Package ast defines the tree produced by the parser.
package ast

var (
	_ Node = (*Program)(nil)
	_ Expr = (*CallExpression)(nil)
	_ Expr = (*NumberLiteral)(nil)
	_ Expr = (*StringLiteral)(nil)
)

type Node interface {
	isNode()
}

// Expr is a node allowed as a call parameter.
type Expr interface {
	Node
	isExpr()
}

type (
	Program struct {
		Body []*CallExpression
	}

	CallExpression struct {
		Name   string
		Params []Expr
	}

	NumberLiteral struct {
		Value string
	}

	StringLiteral struct {
		Value string
	}
)

func (n Program) isNode()        {}
func (n CallExpression) isNode() {}
func (n NumberLiteral) isNode()  {}
func (n StringLiteral) isNode()  {}

func (n CallExpression) isExpr() {}
func (n NumberLiteral) isExpr()  {}
func (n StringLiteral) isExpr()  {}
