// Package target defines the tree handed to the code generator.
package target

var (
	_ Node = (*Program)(nil)
	_ Node = (*ExpressionStatement)(nil)
	_ Node = (*Identifier)(nil)
	_ Expr = (*CallExpression)(nil)
	_ Expr = (*NumberLiteral)(nil)
	_ Expr = (*StringLiteral)(nil)
)

type Node interface {
	isNode()
}

// Expr is a node allowed as a call argument.
type Expr interface {
	Node
	isExpr()
}

type (
	Program struct {
		Body []*ExpressionStatement
	}

	// ExpressionStatement wraps every call that is not an argument of another call.
	ExpressionStatement struct {
		Expression *CallExpression
	}

	CallExpression struct {
		Callee    *Identifier
		Arguments []Expr
	}

	Identifier struct {
		Name string
	}

	NumberLiteral struct {
		Value string
	}

	StringLiteral struct {
		Value string
	}
)

func (n Program) isNode()             {}
func (n ExpressionStatement) isNode() {}
func (n CallExpression) isNode()      {}
func (n Identifier) isNode()          {}
func (n NumberLiteral) isNode()       {}
func (n StringLiteral) isNode()       {}

func (n CallExpression) isExpr() {}
func (n NumberLiteral) isExpr()  {}
func (n StringLiteral) isExpr()  {}
