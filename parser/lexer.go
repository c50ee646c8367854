package parser

import (
	"github.com/gnolang/lessp/ast"
)

type none = struct{}

// junk skips whitespace, `/* */` comments and `//` line comments. It always
// matches; an unterminated block comment is a hard error.
func junk(in Input) Result[none] {
	for !in.atEOF() {
		switch c := in.peek(0); {
		case isWhitespace(c):
			in = in.advance(1)
		case c == '/' && in.peek(1) == '*':
			start := in
			in = in.advance(2)
			for !in.hasPrefix("*/") {
				if in.atEOF() {
					return fail[none](&SyntaxError{
						Pos:      start.Position(),
						Rule:     "comment",
						Kind:     ErrUnterminated,
						Expected: "comment",
						Found:    "EOF",
					})
				}
				in = in.advance(1)
			}
			in = in.advance(2)
		case c == '/' && in.peek(1) == '/':
			for !in.atEOF() && in.peek(0) != '\n' {
				in = in.advance(1)
			}
		default:
			return match(none{}, in)
		}
	}
	return match(none{}, in)
}

// lexeme skips leading junk and then applies rule.
func lexeme[T any](rule Rule[T]) Rule[T] {
	return func(in Input) Result[T] {
		j := junk(in)
		if !j.Ok() {
			return forward[T](j)
		}
		return rule(j.Rest)
	}
}

// tag matches lit exactly at the cursor.
func tag(lit string) Rule[string] {
	return func(in Input) Result[string] {
		if !in.hasPrefix(lit) {
			return noMatch[string](in, "'"+lit+"'")
		}
		return match(lit, in.advance(len(lit)))
	}
}

// symbol matches lit after leading junk.
func symbol(lit string) Rule[string] {
	return lexeme(tag(lit))
}

// ident scans a name: a name-start character (letter, '_', non-ASCII, or a
// '-' followed by another name-start or '-') and then name characters.
func ident(in Input) Result[ast.Text] {
	n := identLen(in)
	if n == 0 {
		return noMatch[ast.Text](in, "identifier")
	}
	rest := in.advance(n)
	return match(in.text(rest.since(in)), rest)
}

func identLen(in Input) int {
	c := in.peek(0)
	n := 0
	switch {
	case isNameStart(c):
		n = 1
	case c == '-' && (isNameStart(in.peek(1)) || in.peek(1) == '-'):
		n = 2
	default:
		return 0
	}
	for isName(in.peek(n)) {
		n++
	}
	return n
}

// atKeyword scans `@name` with no space after the '@'.
func atKeyword(in Input) Result[ast.Text] {
	if in.peek(0) != '@' {
		return noMatch[ast.Text](in, "at-keyword")
	}
	r := ident(in.advance(1))
	if !r.Ok() {
		return noMatch[ast.Text](in, "at-keyword")
	}
	return r
}

// emptyArgs matches `()`, allowing junk inside the parentheses.
func emptyArgs(in Input) Result[string] {
	return Expect("'()'", Preceded(symbol("("), symbol(")")))(in)
}

// terminator matches the ';' closing a statement. The ';' may be left out
// right before the '}' closing the enclosing block.
func terminator(in Input) Result[string] {
	return Expect("';'", Alt(symbol(";"), Peek(symbol("}"))))(in)
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// isNonASCII covers every byte of a multi-byte UTF-8 sequence.
func isNonASCII(c byte) bool {
	return c >= 0x80
}

func isNameStart(c byte) bool {
	return isLetter(c) || isNonASCII(c) || c == '_'
}

func isName(c byte) bool {
	return isNameStart(c) || isDigit(c) || c == '-'
}
