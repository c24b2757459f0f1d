package parser

import (
	"errors"
	"fmt"
	"io"

	"github.com/artuross/tinyc/internal/compiler/ast"
	"github.com/artuross/tinyc/internal/compiler/lexer"
)

var (
	ErrExpectedCall     = errors.New("expected call expression")
	ErrExpectedName     = errors.New("expected name after '('")
	ErrUnexpectedEOF    = io.ErrUnexpectedEOF
	ErrUnexpectedToken  = errors.New("unexpected token")
	ErrUnterminatedCall = fmt.Errorf("unterminated call, expected ')': %w", io.ErrUnexpectedEOF)
)

// Error reports the token the parser stopped at. Token is nil when the input ended early.
type Error struct {
	Token *lexer.Token
	Err   error
}

func (e *Error) Error() string {
	if e.Token == nil {
		return e.Err.Error()
	}

	start := e.Token.Position.Start

	return fmt.Sprintf("%d:%d: %s: %s", start.Line, start.Column, e.Err, e.Token)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type parser struct {
	tokens []*lexer.Token
	pos    int
}

// Parse builds a program from tokens. Every top level expression must be a call.
func Parse(tokens []*lexer.Token) (*ast.Program, error) {
	p := parser{
		tokens: tokens,
	}

	return p.parseProgram()
}

func (p *parser) parseProgram() (*ast.Program, error) {
	program := ast.Program{
		Body: make([]*ast.CallExpression, 0),
	}

	for p.pos < len(p.tokens) {
		token, _ := p.peekToken()

		expr, err := p.walk()
		if err != nil {
			return nil, err
		}

		call, ok := expr.(*ast.CallExpression)
		if !ok {
			return nil, &Error{Token: token, Err: ErrExpectedCall}
		}

		program.Body = append(program.Body, call)
	}

	return &program, nil
}

func (p *parser) walk() (ast.Expr, error) {
	token, err := p.readToken()
	if err == io.EOF {
		return nil, &Error{Err: ErrUnexpectedEOF}
	}

	switch {
	case token.Type == lexer.TokenTypeNumber:
		expr := &ast.NumberLiteral{
			Value: token.Value,
		}

		return expr, nil

	case token.Type == lexer.TokenTypeString:
		expr := &ast.StringLiteral{
			Value: token.Value,
		}

		return expr, nil

	case token.Type == lexer.TokenTypeParen && token.Value == "(":
		return p.parseCallExpression()
	}

	return nil, &Error{Token: token, Err: fmt.Errorf("%w type: %s", ErrUnexpectedToken, token.Type)}
}

// parseCallExpression is entered right after the opening paren.
func (p *parser) parseCallExpression() (ast.Expr, error) {
	token, err := p.readToken()
	if err == io.EOF {
		return nil, &Error{Err: ErrUnexpectedEOF}
	}

	if token.Type != lexer.TokenTypeName {
		return nil, &Error{Token: token, Err: ErrExpectedName}
	}

	expr := &ast.CallExpression{
		Name:   token.Value,
		Params: make([]ast.Expr, 0),
	}

	for {
		token, err := p.peekToken()
		if err == io.EOF {
			return nil, &Error{Err: ErrUnterminatedCall}
		}

		// closing
		if token.Type == lexer.TokenTypeParen && token.Value == ")" {
			_, _ = p.readToken()

			return expr, nil
		}

		param, err := p.walk()
		if err != nil {
			return nil, err
		}

		expr.Params = append(expr.Params, param)
	}
}

func (p *parser) peekToken() (*lexer.Token, error) {
	if p.pos >= len(p.tokens) {
		return nil, io.EOF
	}

	return p.tokens[p.pos], nil
}

func (p *parser) readToken() (*lexer.Token, error) {
	token, err := p.peekToken()
	if err != nil {
		return nil, err
	}

	p.pos++

	return token, nil
}
