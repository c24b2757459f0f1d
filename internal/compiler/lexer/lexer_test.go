package lexer_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/artuross/tinyc/internal/compiler/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer(t *testing.T) {
	t.Run("parens", func(t *testing.T) {
		values := []string{"(", ")"}

		for index, value := range values {
			t.Run(fmt.Sprintf("%d - %s", index, value), func(t *testing.T) {
				expectedToken := &lexer.Token{
					Type:     lexer.TokenTypeParen,
					Position: position(1, 1, 1, 2),
					RawValue: value,
					Value:    value,
				}

				lex := lexer.NewLexer(value)

				token, err := lex.ReadToken()
				require.NoError(t, err)
				assert.Equal(t, expectedToken, token)

				_, err = lex.ReadToken()
				assert.ErrorIs(t, err, io.EOF)
			})
		}
	})

	t.Run("remaining", func(t *testing.T) {
		type testCase struct {
			name   string
			input  string
			tokens []*lexer.Token
		}

		testCases := []testCase{
			{
				name:  "name",
				input: "add",
				tokens: []*lexer.Token{
					{
						Type:     lexer.TokenTypeName,
						Position: position(1, 1, 1, 4),
						RawValue: "add",
						Value:    "add",
					},
				},
			},
			{
				name:  "name / mixed case",
				input: "conCAT",
				tokens: []*lexer.Token{
					{
						Type:     lexer.TokenTypeName,
						Position: position(1, 1, 1, 7),
						RawValue: "conCAT",
						Value:    "conCAT",
					},
				},
			},
			{
				name:  "number",
				input: "1234",
				tokens: []*lexer.Token{
					{
						Type:     lexer.TokenTypeNumber,
						Position: position(1, 1, 1, 5),
						RawValue: "1234",
						Value:    "1234",
					},
				},
			},
			{
				name:  "string",
				input: `"foo bar"`,
				tokens: []*lexer.Token{
					{
						Type:     lexer.TokenTypeString,
						Position: position(1, 1, 1, 10),
						RawValue: `"foo bar"`,
						Value:    "foo bar",
					},
				},
			},
			{
				name:  "string / empty",
				input: `""`,
				tokens: []*lexer.Token{
					{
						Type:     lexer.TokenTypeString,
						Position: position(1, 1, 1, 3),
						RawValue: `""`,
						Value:    "",
					},
				},
			},
			{
				name:  "string / keeps symbols and newlines",
				input: "\"a@(\nb\"",
				tokens: []*lexer.Token{
					{
						Type:     lexer.TokenTypeString,
						Position: position(1, 1, 2, 3),
						RawValue: "\"a@(\nb\"",
						Value:    "a@(\nb",
					},
				},
			},
			{
				name:  "number followed by name",
				input: "2x",
				tokens: []*lexer.Token{
					{
						Type:     lexer.TokenTypeNumber,
						Position: position(1, 1, 1, 2),
						RawValue: "2",
						Value:    "2",
					},
					{
						Type:     lexer.TokenTypeName,
						Position: position(1, 2, 1, 3),
						RawValue: "x",
						Value:    "x",
					},
				},
			},
			{
				name:  "name followed by number",
				input: "x2",
				tokens: []*lexer.Token{
					{
						Type:     lexer.TokenTypeName,
						Position: position(1, 1, 1, 2),
						RawValue: "x",
						Value:    "x",
					},
					{
						Type:     lexer.TokenTypeNumber,
						Position: position(1, 2, 1, 3),
						RawValue: "2",
						Value:    "2",
					},
				},
			},
			{
				name:  "handles whitespace",
				input: " a \t\r\n b ",
				tokens: []*lexer.Token{
					{
						Type:     lexer.TokenTypeName,
						Position: position(1, 2, 1, 3),
						RawValue: "a",
						Value:    "a",
					},
					{
						Type:     lexer.TokenTypeName,
						Position: position(2, 2, 2, 3),
						RawValue: "b",
						Value:    "b",
					},
				},
			},
			{
				name:  "byte order mark",
				input: "\ufeff(",
				tokens: []*lexer.Token{
					{
						Type:     lexer.TokenTypeParen,
						Position: position(1, 2, 1, 3),
						RawValue: "(",
						Value:    "(",
					},
				},
			},
			{
				name:  "non breaking space",
				input: "a\u00a0b",
				tokens: []*lexer.Token{
					{
						Type:     lexer.TokenTypeName,
						Position: position(1, 1, 1, 2),
						RawValue: "a",
						Value:    "a",
					},
					{
						Type:     lexer.TokenTypeName,
						Position: position(1, 3, 1, 4),
						RawValue: "b",
						Value:    "b",
					},
				},
			},
			{
				name:   "empty",
				input:  "",
				tokens: []*lexer.Token{},
			},
			{
				name:   "whitespace only",
				input:  "  \n ",
				tokens: []*lexer.Token{},
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				tokens, err := lexer.Tokenize(tc.input)
				require.NoError(t, err)

				assert.Equal(t, tc.tokens, tokens)
			})
		}
	})

	t.Run("call expression", func(t *testing.T) {
		tokens, err := lexer.Tokenize("(add 2 (subtract 4 2))")
		require.NoError(t, err)

		expected := []string{
			`paren "("`,
			`name "add"`,
			`number "2"`,
			`paren "("`,
			`name "subtract"`,
			`number "4"`,
			`number "2"`,
			`paren ")"`,
			`paren ")"`,
		}

		actual := make([]string, 0, len(tokens))
		for _, token := range tokens {
			actual = append(actual, token.String())
		}

		assert.Equal(t, expected, actual)
	})
}

func TestLexer_Errors(t *testing.T) {
	type testCase struct {
		name     string
		input    string
		char     rune
		point    lexer.Point
		sentinel error
	}

	testCases := []testCase{
		{
			name:     "invalid character",
			input:    "(add 2 @)",
			char:     '@',
			point:    lexer.Point{Line: 1, Column: 8},
			sentinel: lexer.ErrInvalidCharacter,
		},
		{
			name:     "invalid character on second line",
			input:    "(add 2 2)\n  -1",
			char:     '-',
			point:    lexer.Point{Line: 2, Column: 3},
			sentinel: lexer.ErrInvalidCharacter,
		},
		{
			name:     "non ascii letter",
			input:    "é",
			char:     'é',
			point:    lexer.Point{Line: 1, Column: 1},
			sentinel: lexer.ErrInvalidCharacter,
		},
		{
			name:     "next line is not whitespace",
			input:    "\u0085(a 1)",
			char:     '\u0085',
			point:    lexer.Point{Line: 1, Column: 1},
			sentinel: lexer.ErrInvalidCharacter,
		},
		{
			name:     "unterminated string",
			input:    `(concat "foo`,
			char:     '"',
			point:    lexer.Point{Line: 1, Column: 9},
			sentinel: lexer.ErrUnterminatedString,
		},
		{
			name:     "invalid utf8",
			input:    "(add \xff)",
			char:     '�',
			point:    lexer.Point{Line: 1, Column: 6},
			sentinel: lexer.ErrRuneInvalid,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := lexer.Tokenize(tc.input)
			require.Error(t, err)
			assert.Nil(t, tokens)

			assert.ErrorIs(t, err, tc.sentinel)

			var lexErr *lexer.Error
			require.True(t, errors.As(err, &lexErr))
			assert.Equal(t, tc.char, lexErr.Char)
			assert.Equal(t, tc.point, lexErr.Position)
		})
	}

	t.Run("unterminated string is unexpected EOF", func(t *testing.T) {
		_, err := lexer.Tokenize(`"abc`)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("message names the character", func(t *testing.T) {
		_, err := lexer.Tokenize("(add 2 @)")
		assert.EqualError(t, err, `1:8: invalid character: '@'`)
	})
}

func position(startLine, startColumn, endLine, endColumn int) lexer.Position {
	return lexer.Position{
		Start: lexer.Point{
			Line:   startLine,
			Column: startColumn,
		},
		End: lexer.Point{
			Line:   endLine,
			Column: endColumn,
		},
	}
}
