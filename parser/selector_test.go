package parser

import (
	"testing"

	"github.com/gnolang/lessp/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func class(name string) ast.Selector {
	return ast.Selector{Kind: ast.SelectorClass, Name: ast.Borrowed(name)}
}

func hash(name string) ast.Selector {
	return ast.Selector{Kind: ast.SelectorId, Name: ast.Borrowed(name)}
}

func elem(name string) ast.Selector {
	return ast.Selector{Kind: ast.SelectorElement, Name: ast.Borrowed(name)}
}

func TestSimpleSelectors(t *testing.T) {
	t.Parallel()
	r := idSelector(NewInput("#main {"))
	require.True(t, r.Ok())
	assert.Equal(t, hash("main"), r.Value)
	assert.Equal(t, " {", r.Rest.Remaining())

	r = classSelector(NewInput(".btn-primary"))
	require.True(t, r.Ok())
	assert.Equal(t, class("btn-primary"), r.Value)

	assert.Equal(t, NoMatch, idSelector(NewInput(".a")).Status())
	assert.Equal(t, NoMatch, classSelector(NewInput(". a")).Status())
	assert.Equal(t, NoMatch, classSelector(NewInput(".1")).Status())
}

func TestSelectorGroup(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  ast.SelectorGroup
		rest  string
	}{
		{"single", ".a", ast.SelectorGroup{class("a")}, ""},
		{"mixed kinds", ".a, #b, p {", ast.SelectorGroup{class("a"), hash("b"), elem("p")}, " {"},
		{"junk around commas", "  .a /* x */ ,\n.b{", ast.SelectorGroup{class("a"), class("b")}, "{"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := selectorGroup(NewInput(tt.input))
			require.True(t, r.Ok(), "unexpected error: %v", r.Err())
			assert.Equal(t, tt.want, r.Value)
			assert.Equal(t, tt.rest, r.Rest.Remaining())
		})
	}
}

func TestSelectorGroupEmpty(t *testing.T) {
	t.Parallel()
	for _, input := range []string{"", "{", ", .a"} {
		r := selectorGroup(NewInput(input))
		assert.Equal(t, NoMatch, r.Status(), input)
	}

	r := selectorGroup(NewInput(".a, {"))
	require.True(t, r.Failed())
	assert.Equal(t, "selector group", r.Err().Rule)
	assert.Equal(t, "selector", r.Err().Expected)
	assert.Equal(t, 4, r.Err().Pos.Offset)
}

func TestMixinSimpleSelector(t *testing.T) {
	t.Parallel()
	r := mixinSimpleSelector(NewInput(".m()"))
	require.True(t, r.Ok())
	assert.Equal(t, class("m"), r.Value)
	assert.Equal(t, "()", r.Rest.Remaining())

	r = mixinSimpleSelector(NewInput("#ns"))
	require.True(t, r.Ok())
	assert.Equal(t, hash("ns"), r.Value)

	miss := mixinSimpleSelector(NewInput("div"))
	assert.Equal(t, NoMatch, miss.Status())
	assert.Equal(t, "mixin selector", miss.Err().Expected)
}

func TestMixinSelector(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  []ast.Selector
		rest  string
	}{
		{"single", ".m();", []ast.Selector{class("m")}, "();"},
		{"child path", "#ns > .m()", []ast.Selector{hash("ns"), class("m")}, "()"},
		{"adjacent path", "#ns.m()", []ast.Selector{hash("ns"), class("m")}, "()"},
		{"space path", "#a #b .c ()", []ast.Selector{hash("a"), hash("b"), class("c")}, " ()"},
		{"dangling child", "#ns > ();", []ast.Selector{hash("ns")}, " > ();"},
		{"child element", ".nav > li { }", []ast.Selector{class("nav")}, " > li { }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mixinSelector(NewInput(tt.input))
			require.True(t, r.Ok(), "unexpected error: %v", r.Err())
			assert.Equal(t, ast.MixinSelector{Path: tt.want}, r.Value)
			assert.Equal(t, tt.rest, r.Rest.Remaining())
		})
	}

	assert.Equal(t, NoMatch, mixinSelector(NewInput("p()")).Status())
}
