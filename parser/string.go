package parser

import (
	"github.com/gnolang/lessp/ast"
)

// stringState tracks which kind of literal String is building.
type stringState int8

const (
	statePlain        stringState = iota // no interpolation seen yet
	stateInterpolated                    // at least one @{..} or ${..}
)

// String parses a literal delimited by quote. Without interpolations it
// yields *ast.QuotedString, otherwise *ast.InterpolatedString.
//
// Everything after the opening quote is committed: a newline, EOF or
// malformed interpolation before the closing quote is a hard error.
// Backslash escapes are kept verbatim, so an escaped quote does not close
// the literal.
func String(quote byte) Rule[ast.Value] {
	return func(in Input) Result[ast.Value] {
		if in.peek(0) != quote {
			return noMatch[ast.Value](in, "string")
		}
		cur := in.advance(1)

		var (
			state          = statePlain
			segments       []ast.Text
			interpolations []ast.InterpolatedValue
		)
		for {
			part := stringPart(quote, in)(cur)
			if !part.Ok() {
				return forward[ast.Value](part)
			}
			segments = append(segments, part.Value)
			cur = part.Rest

			if cur.peek(0) == quote {
				cur = cur.advance(1)
				if state == statePlain {
					return match[ast.Value](&ast.QuotedString{Quote: quote, Text: segments[0]}, cur)
				}
				return match[ast.Value](&ast.InterpolatedString{
					Quote:          quote,
					Segments:       segments,
					Interpolations: interpolations,
				}, cur)
			}

			iv := interpolation(cur)
			if !iv.Ok() {
				return fail[ast.Value](newError(cur, ErrMalformed, "string", "interpolation '@{name}' or '${name}'"))
			}
			interpolations = append(interpolations, iv.Value)
			cur = iv.Rest
			state = stateInterpolated
		}
	}
}

// quotedString matches a single or double quoted literal.
func quotedString(in Input) Result[ast.Value] {
	return Alt(String('"'), String('\''))(in)
}

// stringPart scans one literal segment. It stops in front of the closing
// quote or an interpolation opener; the segment may be empty.
func stringPart(quote byte, open Input) Rule[ast.Text] {
	return func(in Input) Result[ast.Text] {
		cur := in
		for {
			if cur.atEOF() {
				return fail[ast.Text](unterminatedString(open))
			}
			c := cur.peek(0)
			switch {
			case c == quote:
				return match(cur.text(cur.since(in)), cur)
			case (c == '@' || c == '$') && cur.peek(1) == '{':
				return match(cur.text(cur.since(in)), cur)
			case c == '\n' || c == '\r':
				return fail[ast.Text](unterminatedString(open))
			case c == '\\':
				if cur.advance(1).atEOF() {
					return fail[ast.Text](unterminatedString(open))
				}
				cur = cur.advance(2)
			default:
				cur = cur.advance(1)
			}
		}
	}
}

// interpolation matches `@{name}` or `${name}`.
func interpolation(in Input) Result[ast.InterpolatedValue] {
	return Alt(
		Delimited(tag("@{"), Map(ident, func(name ast.Text) ast.InterpolatedValue {
			return ast.InterpolatedValue{Kind: ast.InterpolateVariable, Name: name}
		}), tag("}")),
		Delimited(tag("${"), Map(ident, func(name ast.Text) ast.InterpolatedValue {
			return ast.InterpolatedValue{Kind: ast.InterpolateProperty, Name: name}
		}), tag("}")),
	)(in)
}

func unterminatedString(open Input) *SyntaxError {
	return &SyntaxError{
		Pos:      open.Position(),
		Rule:     "string",
		Kind:     ErrUnterminated,
		Expected: "string",
		Found:    describe(open),
	}
}
