package parser

import (
	"github.com/gnolang/lessp/ast"
)

// mixinSimpleSelector matches the selector of a mixin definition: a single
// class or id.
func mixinSimpleSelector(in Input) Result[ast.Selector] {
	return Expect("mixin selector", Alt(classSelector, idSelector))(in)
}

// mixinSelector matches the selector of a mixin call. Besides a single
// class or id it accepts a namespace path joined by '>', whitespace or
// nothing: `#ns > .m`, `#ns .m`, `#ns.m`. A '>' that is not followed by
// a class or id ends the path in front of it.
func mixinSelector(in Input) Result[ast.MixinSelector] {
	first := lexeme(mixinSimpleSelector)(in)
	if !first.Ok() {
		return forward[ast.MixinSelector](first)
	}
	path := []ast.Selector{first.Value}
	cur := first.Rest
	for {
		next := Alt(
			Preceded(symbol(">"), lexeme(mixinSimpleSelector)),
			lexeme(mixinSimpleSelector),
		)(cur)
		switch next.Status() {
		case Failed:
			return forward[ast.MixinSelector](next)
		case NoMatch:
			return match(ast.MixinSelector{Path: path}, cur)
		}
		path = append(path, next.Value)
		cur = next.Rest
	}
}
