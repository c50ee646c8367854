package parser

import (
	"github.com/gnolang/lessp/ast"
)

// idSelector matches `#name`.
func idSelector(in Input) Result[ast.Selector] {
	return prefixedSelector(in, '#', ast.SelectorId)
}

// classSelector matches `.name`.
func classSelector(in Input) Result[ast.Selector] {
	return prefixedSelector(in, '.', ast.SelectorClass)
}

// elementSelector matches a bare element name such as `body`.
func elementSelector(in Input) Result[ast.Selector] {
	return Map(ident, func(name ast.Text) ast.Selector {
		return ast.Selector{Kind: ast.SelectorElement, Name: name}
	})(in)
}

func prefixedSelector(in Input, prefix byte, kind ast.SelectorKind) Result[ast.Selector] {
	if in.peek(0) != prefix {
		return noMatch[ast.Selector](in, "selector")
	}
	name := ident(in.advance(1))
	if !name.Ok() {
		return noMatch[ast.Selector](in, "selector")
	}
	return match(ast.Selector{Kind: kind, Name: name.Value}, name.Rest)
}

func selector(in Input) Result[ast.Selector] {
	return Expect("selector", Alt(idSelector, classSelector, elementSelector))(in)
}

// selectorGroup matches one or more selectors separated by commas. A comma
// must be followed by another selector.
func selectorGroup(in Input) Result[ast.SelectorGroup] {
	return Map(
		SeparatedList1("selector group", lexeme(selector), symbol(",")),
		func(group []ast.Selector) ast.SelectorGroup { return group },
	)(in)
}
