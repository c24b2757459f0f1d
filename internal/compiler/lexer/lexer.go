package lexer

import (
	"errors"
	"fmt"
	"io"
	"unicode"
	"unicode/utf8"
)

type TokenType string

const (
	TokenTypeName   TokenType = "name"
	TokenTypeNumber TokenType = "number"
	TokenTypeParen  TokenType = "paren"
	TokenTypeString TokenType = "string"
)

var (
	ErrInvalidCharacter   = errors.New("invalid character")
	ErrRuneInvalid        = errors.New("decode rune: invalid rune")
	ErrUnterminatedString = fmt.Errorf("unterminated string: %w", io.ErrUnexpectedEOF)
)

// Error is returned for any input the lexer cannot classify.
type Error struct {
	Char     rune
	Position Point
	Err      error
}

func (e *Error) Error() string {
	if errors.Is(e.Err, ErrRuneInvalid) {
		return fmt.Sprintf("%d:%d: %s", e.Position.Line, e.Position.Column, e.Err)
	}

	return fmt.Sprintf("%d:%d: %s: %q", e.Position.Line, e.Position.Column, e.Err, e.Char)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Point struct {
	Line   int
	Column int
}

type Position struct {
	Start Point
	End   Point
}

type Token struct {
	Type     TokenType
	RawValue string
	Value    string
	Position Position
}

func (t *Token) String() string {
	return fmt.Sprintf("%s %q", t.Type, t.Value)
}

type Lexer struct {
	input    []byte
	point    Point
	position int
}

func NewLexer(input string) *Lexer {
	return &Lexer{
		input:    []byte(input),
		point:    Point{Line: 1, Column: 1},
		position: 0,
	}
}

// Tokenize reads every token from input. The first error aborts the scan.
func Tokenize(input string) ([]*Token, error) {
	lex := NewLexer(input)

	tokens := make([]*Token, 0)
	for {
		token, err := lex.ReadToken()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, token)
	}
}

func (l *Lexer) ReadToken() (*Token, error) {
	if err := l.advanceWhitespace(); err != nil {
		return nil, err
	}

	r, _, err := l.peek()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, err
	}

	if isParen(r) {
		return l.readParen()
	}

	if isDigit(r) {
		return l.readNumber()
	}

	if isStringOpeningCharacter(r) {
		return l.readString()
	}

	if isLetter(r) {
		return l.readName()
	}

	return nil, &Error{Char: r, Position: l.point, Err: ErrInvalidCharacter}
}

func (l *Lexer) advanceWhitespace() error {
	for {
		r, _, err := l.peek()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if !isWhitespace(r) {
			return nil
		}

		// position and line updated inside read call
		_, _ = l.read()
	}
}

func (l *Lexer) readParen() (*Token, error) {
	startPoint := l.point

	r, err := l.read()
	invariant(err != nil, "readParen: unexpected read() error when consuming first character")
	invariant(!isParen(r), "readParen: first character is not valid")

	token := Token{
		Type: TokenTypeParen,
		Position: Position{
			Start: startPoint,
			End:   l.point,
		},
		RawValue: string(r),
		Value:    string(r),
	}

	return &token, nil
}

func (l *Lexer) readName() (*Token, error) {
	return l.readRun(TokenTypeName, isLetter)
}

func (l *Lexer) readNumber() (*Token, error) {
	return l.readRun(TokenTypeNumber, isDigit)
}

// readRun consumes the maximal run of runes matching the class of the first one.
func (l *Lexer) readRun(tokenType TokenType, class func(rune) bool) (*Token, error) {
	startPoint := l.point
	startPos := l.position

	r, err := l.read()
	invariant(err != nil, "readRun: unexpected read() error when consuming first character")
	invariant(!class(r), "readRun: first character is not valid")

	for {
		r, _, err := l.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if !class(r) {
			break
		}

		_, err = l.read()
		invariant(err != nil, "readRun: unexpected read() error after peek()")
	}

	value := string(l.input[startPos:l.position])

	token := Token{
		Type: tokenType,
		Position: Position{
			Start: startPoint,
			End:   l.point,
		},
		RawValue: value,
		Value:    value,
	}

	return &token, nil
}

func (l *Lexer) readString() (*Token, error) {
	startPoint := l.point
	startPos := l.position

	// discard the opening quote
	r, err := l.read()
	invariant(err != nil, "readString: unexpected read() error when consuming first character")
	invariant(!isStringOpeningCharacter(r), "readString: first character is not valid")

	value := []rune{}

	for {
		r, _, err := l.peek()
		if err == io.EOF {
			return nil, &Error{Char: '"', Position: startPoint, Err: ErrUnterminatedString}
		}
		if err != nil {
			return nil, err
		}

		_, err = l.read()
		invariant(err != nil, "readString: unexpected read() error after peek()")

		// no escapes, the first quote closes the string
		if isStringOpeningCharacter(r) {
			break
		}

		value = append(value, r)
	}

	token := Token{
		Type: TokenTypeString,
		Position: Position{
			Start: startPoint,
			End:   l.point,
		},
		RawValue: string(l.input[startPos:l.position]),
		Value:    string(value),
	}

	return &token, nil
}

func (l *Lexer) peek() (rune, int, error) {
	if l.position >= len(l.input) {
		return 0, 0, io.EOF
	}

	r, size := utf8.DecodeRune(l.input[l.position:])
	if r == utf8.RuneError && size <= 1 {
		return 0, 0, &Error{Char: utf8.RuneError, Position: l.point, Err: ErrRuneInvalid}
	}

	return r, size, nil
}

func (l *Lexer) read() (rune, error) {
	r, size, err := l.peek()
	if err != nil {
		return 0, err
	}

	l.position += size

	if r == '\n' {
		l.point.Line++
		l.point.Column = 1
	} else {
		l.point.Column++
	}

	return r, nil
}

// isWhitespace matches the JavaScript \s class: Unicode White_Space without
// NEL, plus the byte order mark.
func isWhitespace(r rune) bool {
	if r == '\ufeff' {
		return true
	}

	return unicode.IsSpace(r) && r != '\u0085'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isParen(r rune) bool {
	return r == '(' || r == ')'
}

func isStringOpeningCharacter(r rune) bool {
	return r == '"'
}

func invariant(assertion bool, message string) {
	if assertion {
		panic(message)
	}
}
