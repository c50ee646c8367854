package ast

import "strings"

// Text is a run of source text held by the AST. It is either a borrowed
// view into the buffer that was parsed, or an owned copy that does not keep
// that buffer reachable.
type Text struct {
	s     string
	owned bool
}

// Borrowed returns a Text that shares memory with s.
func Borrowed(s string) Text {
	return Text{s: s}
}

// Owned returns a Text holding a private copy of s.
func Owned(s string) Text {
	return Text{s: strings.Clone(s), owned: true}
}

func (t Text) String() string { return t.s }
func (t Text) Len() int       { return len(t.s) }
func (t Text) IsEmpty() bool  { return len(t.s) == 0 }

// IsOwned reports whether t holds its own copy of the text.
func (t Text) IsOwned() bool { return t.owned }

// Equal compares content only; ownership is ignored.
func (t Text) Equal(other Text) bool { return t.s == other.s }

// MarshalText lets encoders treat Text as a plain string.
func (t Text) MarshalText() ([]byte, error) {
	return []byte(t.s), nil
}
