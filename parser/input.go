package parser

import (
	"go/token"
	"strings"

	"github.com/gnolang/lessp/ast"
)

// Input is an immutable cursor over the source buffer. Rules never modify an
// Input; they return a new one, so a caller that still holds the old value
// can always backtrack to it.
type Input struct {
	src   string
	pos   int
	depth int // brace nesting at the cursor
	opts  *Options
}

// NewInput returns a cursor at the start of src.
func NewInput(src string, opts ...Option) Input {
	return Input{src: src, opts: newOptions(opts...)}
}

// Remaining returns the unconsumed part of the source.
func (in Input) Remaining() string { return in.src[in.pos:] }

// Offset returns the byte offset of the cursor.
func (in Input) Offset() int { return in.pos }

func (in Input) atEOF() bool { return in.pos >= len(in.src) }

func (in Input) advance(n int) Input {
	in.pos += n
	return in
}

// peek returns the byte at offset i from the cursor, or 0 past the end.
func (in Input) peek(i int) byte {
	if in.pos+i >= len(in.src) || in.pos+i < 0 {
		return 0
	}
	return in.src[in.pos+i]
}

func (in Input) hasPrefix(lit string) bool {
	return strings.HasPrefix(in.src[in.pos:], lit)
}

// since returns the source between start and the cursor.
func (in Input) since(start Input) string {
	return in.src[start.pos:in.pos]
}

// text wraps a slice of the source as ast.Text, copying it when the parse
// was asked to detach the AST from the buffer.
func (in Input) text(s string) ast.Text {
	if in.opts != nil && in.opts.Detach {
		return ast.Owned(s)
	}
	return ast.Borrowed(s)
}

func (in Input) withDepth(depth int) Input {
	in.depth = depth
	return in
}

func (in Input) maxDepth() int {
	if in.opts == nil || in.opts.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return in.opts.MaxDepth
}

// Position resolves the cursor to a line and column. Both are 1-based; the
// column counts bytes.
func (in Input) Position() token.Position {
	pos := token.Position{Offset: in.pos, Line: 1, Column: 1}
	if in.opts != nil {
		pos.Filename = in.opts.Filename
	}
	for i := 0; i < in.pos && i < len(in.src); i++ {
		if in.src[i] == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}
	return pos
}
