package repl

import (
	"context"
	"errors"
	"strings"

	"github.com/artuross/tinyc/internal/compiler"
	"github.com/artuross/tinyc/internal/compiler/lexer"
)

// Session collects input lines until they form complete calls and then
// compiles them. Nothing is kept between two compiled chunks.
type Session struct {
	compiler *compiler.Compiler
	lines    []string
}

func NewSession(c *compiler.Compiler) *Session {
	return &Session{
		compiler: c,
	}
}

// Pending reports whether earlier lines are waiting for more input.
func (s *Session) Pending() bool {
	return len(s.lines) > 0
}

func (s *Session) Reset() {
	s.lines = nil
}

// Feed adds a line. complete is false while parens or a string are still open;
// in that case output and err are empty.
func (s *Session) Feed(ctx context.Context, line string) (output string, complete bool, err error) {
	s.lines = append(s.lines, line)
	source := strings.Join(s.lines, "\n")

	if incomplete(source) {
		return "", false, nil
	}

	s.Reset()

	output, err = s.compiler.Compile(ctx, source)

	return output, true, err
}

// incomplete reports input that may become valid with more lines. Everything
// else, including input with other errors, is handed to the compiler.
func incomplete(source string) bool {
	tokens, err := lexer.Tokenize(source)
	if errors.Is(err, lexer.ErrUnterminatedString) {
		return true
	}
	if err != nil {
		return false
	}

	depth := 0
	for _, token := range tokens {
		if token.Type != lexer.TokenTypeParen {
			continue
		}

		if token.Value == "(" {
			depth++
		} else {
			depth--
		}

		// extra closing paren can't be fixed by more input
		if depth < 0 {
			return false
		}
	}

	return depth > 0
}
