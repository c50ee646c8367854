package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlt(t *testing.T) {
	t.Parallel()
	ab := Preceded(tag("a"), tag("b"))
	ac := Preceded(tag("a"), tag("c"))

	r := Alt(ab, ac)(NewInput("ac!"))
	require.True(t, r.Ok())
	assert.Equal(t, "c", r.Value)
	assert.Equal(t, "!", r.Rest.Remaining())

	// the miss that got furthest wins
	miss := Alt(tag("x"), ab)(NewInput("az"))
	require.Equal(t, NoMatch, miss.Status())
	assert.Equal(t, 1, miss.Err().Pos.Offset)
	assert.Equal(t, "'b'", miss.Err().Expected)

	// a hard failure stops the search
	failed := Alt(Cut("ab", ab), tag("a"))(NewInput("az"))
	require.True(t, failed.Failed())
	assert.Equal(t, "ab", failed.Err().Rule)
}

func TestCutAndExpect(t *testing.T) {
	t.Parallel()
	r := Cut("thing", Expect("a thing", tag("x")))(NewInput("y"))
	require.True(t, r.Failed())
	err := r.Err()
	assert.Equal(t, "thing", err.Rule)
	assert.Equal(t, "a thing", err.Expected)
	assert.Equal(t, `"y"`, err.Found)
	assert.ErrorIs(t, err, ErrSyntax)

	ok := Cut("thing", tag("y"))(NewInput("y"))
	assert.True(t, ok.Ok())
	assert.Nil(t, ok.Err())
}

func TestMany0(t *testing.T) {
	t.Parallel()
	r := Many0(symbol("a"))(NewInput("a a  a b"))
	require.True(t, r.Ok())
	assert.Equal(t, []string{"a", "a", "a"}, r.Value)
	assert.Equal(t, " b", r.Rest.Remaining())

	empty := Many0(tag("a"))(NewInput("b"))
	require.True(t, empty.Ok())
	assert.Nil(t, empty.Value)

	// a rule that matches without consuming input ends the loop
	stuck := Many0(Present(tag("z")))(NewInput("b"))
	require.True(t, stuck.Ok())
	assert.Equal(t, []bool{false}, stuck.Value)

	failed := Many0(symbol("a"))(NewInput("a /*"))
	assert.True(t, failed.Failed())
}

func TestSeparatedList1(t *testing.T) {
	t.Parallel()
	list := SeparatedList1("list", symbol("a"), symbol(","))

	r := list(NewInput("a, a ,a;"))
	require.True(t, r.Ok())
	assert.Len(t, r.Value, 3)
	assert.Equal(t, ";", r.Rest.Remaining())

	assert.Equal(t, NoMatch, list(NewInput("b")).Status())

	dangling := list(NewInput("a, b"))
	require.True(t, dangling.Failed())
	assert.Equal(t, "list", dangling.Err().Rule)
	assert.Equal(t, 3, dangling.Err().Pos.Offset)
}

func TestPresentPeekDelimited(t *testing.T) {
	t.Parallel()
	p := Present(tag("!"))(NewInput("!x"))
	require.True(t, p.Ok())
	assert.True(t, p.Value)
	assert.Equal(t, "x", p.Rest.Remaining())

	p = Present(tag("!"))(NewInput("x"))
	require.True(t, p.Ok())
	assert.False(t, p.Value)

	peek := Peek(tag("x"))(NewInput("xy"))
	require.True(t, peek.Ok())
	assert.Equal(t, "xy", peek.Rest.Remaining())

	d := Delimited(tag("("), ident, tag(")"))(NewInput("(name)."))
	require.True(t, d.Ok())
	assert.Equal(t, "name", d.Value.String())
	assert.Equal(t, ".", d.Rest.Remaining())

	assert.Equal(t, NoMatch, Delimited(tag("("), ident, tag(")"))(NewInput("(name")).Status())
}

func TestMapPassesMisses(t *testing.T) {
	t.Parallel()
	double := Map(tag("a"), func(s string) string { return s + s })
	r := double(NewInput("ab"))
	require.True(t, r.Ok())
	assert.Equal(t, "aa", r.Value)
	assert.Equal(t, "b", r.Rest.Remaining())

	miss := double(NewInput("xb"))
	assert.Equal(t, NoMatch, miss.Status())
	assert.Equal(t, "no-match", miss.Status().String())

	failed := Map(Cut("pair", tag("a")), func(s string) string { return s })(NewInput("xb"))
	assert.True(t, failed.Failed())
	assert.Equal(t, "pair", failed.Err().Rule)
}
