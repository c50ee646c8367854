package parser

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

// ErrSyntax matches every *SyntaxError with errors.Is.
var ErrSyntax = errors.New("syntax error")

// ErrorKind classifies a SyntaxError.
type ErrorKind int

const (
	ErrUnexpected    ErrorKind = iota // a required token is missing
	ErrUnterminated                   // string or comment runs into a newline or EOF
	ErrMalformed                      // a construct started but its body is invalid
	ErrTooDeep                        // brace nesting exceeds the configured limit
	ErrTrailingInput                  // input left over after the last item
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpected:
		return "unexpected"
	case ErrUnterminated:
		return "unterminated"
	case ErrMalformed:
		return "malformed"
	case ErrTooDeep:
		return "too-deep"
	case ErrTrailingInput:
		return "trailing-input"
	default:
		return "unknown"
	}
}

// SyntaxError is the single error produced by a failed parse.
type SyntaxError struct {
	Pos      token.Position
	Rule     string // grammar rule that failed, e.g. "declaration"
	Kind     ErrorKind
	Expected string
	Found    string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	if e.Pos.Filename != "" {
		b.WriteString(e.Pos.Filename)
		b.WriteByte(':')
	}
	fmt.Fprintf(&b, "%d:%d: ", e.Pos.Line, e.Pos.Column)
	if e.Rule != "" {
		b.WriteString(e.Rule)
		b.WriteString(": ")
	}
	switch e.Kind {
	case ErrUnterminated:
		fmt.Fprintf(&b, "unterminated %s", e.Expected)
	case ErrTooDeep:
		fmt.Fprintf(&b, "nesting too deep (limit %s)", e.Expected)
	default:
		fmt.Fprintf(&b, "expected %s, found %s", e.Expected, e.Found)
	}
	return b.String()
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// newError builds a SyntaxError located at in.
func newError(in Input, kind ErrorKind, rule, expected string) *SyntaxError {
	return &SyntaxError{
		Pos:      in.Position(),
		Rule:     rule,
		Kind:     kind,
		Expected: expected,
		Found:    describe(in),
	}
}

const maxFoundLen = 16

// describe renders what the cursor points at for error messages.
func describe(in Input) string {
	if in.atEOF() {
		return "EOF"
	}
	rest := in.Remaining()
	end := 0
	for end < len(rest) && end < maxFoundLen {
		c := rest[end]
		if isWhitespace(c) || (end > 0 && isPunct(c)) {
			break
		}
		end++
		if isPunct(c) {
			break
		}
	}
	if end == 0 {
		end = 1
	}
	return fmt.Sprintf("%q", rest[:end])
}

func isPunct(c byte) bool {
	return strings.IndexByte("{}();:,!", c) >= 0
}
