package parser

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gnolang/lessp/ast"
)

// ParseStylesheet parses src into a stylesheet. On failure it returns a
// *SyntaxError and no AST.
func ParseStylesheet(src string, opts ...Option) (*ast.Stylesheet, error) {
	r := stylesheet(NewInput(src, opts...))
	if !r.Ok() {
		return nil, r.Err()
	}
	return r.Value, nil
}

// AsSyntaxError extracts the *SyntaxError from err, if any.
func AsSyntaxError(err error) (*SyntaxError, bool) {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// stylesheet parses items until the input is exhausted.
func stylesheet(in Input) Result[*ast.Stylesheet] {
	items := listOfItems(in)
	if !items.Ok() {
		return forward[*ast.Stylesheet](items)
	}
	end := junk(items.Rest)
	if !end.Ok() {
		return forward[*ast.Stylesheet](end)
	}
	if !end.Rest.atEOF() {
		return fail[*ast.Stylesheet](newError(end.Rest, ErrTrailingInput, "stylesheet", "item"))
	}
	return match(&ast.Stylesheet{Items: items.Value}, end.Rest)
}

// blockOfItems matches `{ items }`. After the '{' the block is committed, so
// an unclosed block is a hard error.
func blockOfItems(in Input) Result[[]ast.Item] {
	open := symbol("{")(in)
	if !open.Ok() {
		return forward[[]ast.Item](open)
	}
	if in.depth+1 > in.maxDepth() {
		return fail[[]ast.Item](&SyntaxError{
			Pos:      open.Rest.advance(-1).Position(),
			Rule:     "block",
			Kind:     ErrTooDeep,
			Expected: strconv.Itoa(in.maxDepth()),
			Found:    "'{'",
		})
	}
	items := Cut("block", listOfItems)(open.Rest.withDepth(in.depth + 1))
	if !items.Ok() {
		return items
	}
	closed := Cut("block", Expect("item or '}'", symbol("}")))(items.Rest)
	if !closed.Ok() {
		return forward[[]ast.Item](closed)
	}
	return match(items.Value, closed.Rest.withDepth(in.depth))
}

func listOfItems(in Input) Result[[]ast.Item] {
	return Many0(item)(in)
}

// item tries each kind of item in a fixed order. Several kinds share a
// prefix (`.name()` opens both a mixin declaration and a mixin call), so
// the more specific ones come first. Each alternative commits once it has
// seen its distinguishing tokens.
func item(in Input) Result[ast.Item] {
	return Alt(
		mixinDeclaration,
		declaration,
		mixinCall,
		qualifiedRule,
		variableDeclaration,
		variableCall,
		atRule,
	)(in)
}

// declaration matches `name: value [!important];`, committed after ':'.
func declaration(in Input) Result[ast.Item] {
	name := lexeme(ident)(in)
	if !name.Ok() {
		return forward[ast.Item](name)
	}
	colon := symbol(":")(name.Rest)
	if !colon.Ok() {
		return forward[ast.Item](colon)
	}
	value := Cut("declaration", declarationValue)(colon.Rest)
	if !value.Ok() {
		return forward[ast.Item](value)
	}
	imp := important(value.Rest)
	if !imp.Ok() {
		return forward[ast.Item](imp)
	}
	end := Cut("declaration", terminator)(imp.Rest)
	if !end.Ok() {
		return forward[ast.Item](end)
	}
	return match[ast.Item](&ast.Declaration{
		Name:      name.Value,
		Value:     value.Value,
		Important: imp.Value,
	}, end.Rest)
}

// important matches an optional `!important`.
func important(in Input) Result[bool] {
	return Present(symbol("!important"))(in)
}

// qualifiedRule matches `selector, ... { items }`.
func qualifiedRule(in Input) Result[ast.Item] {
	group := selectorGroup(in)
	if !group.Ok() {
		return forward[ast.Item](group)
	}
	block := blockOfItems(group.Rest)
	if !block.Ok() {
		return forward[ast.Item](block)
	}
	return match[ast.Item](&ast.QualifiedRule{Selectors: group.Value, Block: block.Value}, block.Rest)
}

// mixinDeclaration matches `.name() { items }`.
func mixinDeclaration(in Input) Result[ast.Item] {
	sel := lexeme(mixinSimpleSelector)(in)
	if !sel.Ok() {
		return forward[ast.Item](sel)
	}
	args := emptyArgs(sel.Rest)
	if !args.Ok() {
		return forward[ast.Item](args)
	}
	block := blockOfItems(args.Rest)
	if !block.Ok() {
		return forward[ast.Item](block)
	}
	return match[ast.Item](&ast.MixinDeclaration{Selector: sel.Value, Block: block.Value}, block.Rest)
}

// mixinCall matches `.name();`. The mixin declaration alternative has
// already been ruled out, so the call is committed after `()`.
func mixinCall(in Input) Result[ast.Item] {
	sel := mixinSelector(in)
	if !sel.Ok() {
		return forward[ast.Item](sel)
	}
	args := emptyArgs(sel.Rest)
	if !args.Ok() {
		return forward[ast.Item](args)
	}
	end := Cut("mixin call", terminator)(args.Rest)
	if !end.Ok() {
		return forward[ast.Item](end)
	}
	return match[ast.Item](&ast.MixinCall{Selector: sel.Value}, end.Rest)
}

// variableDeclaration matches `@name: value;`, committed after ':'. The ';'
// after a detached ruleset is optional.
func variableDeclaration(in Input) Result[ast.Item] {
	name := lexeme(atKeyword)(in)
	if !name.Ok() {
		return forward[ast.Item](name)
	}
	colon := symbol(":")(name.Rest)
	if !colon.Ok() {
		return forward[ast.Item](colon)
	}
	value := Cut("variable declaration", variableDeclarationValue)(colon.Rest)
	if !value.Ok() {
		return forward[ast.Item](value)
	}
	rest := value.Rest
	if _, detached := value.Value.(*ast.DetachedRuleset); detached {
		semi := Present(symbol(";"))(rest)
		if !semi.Ok() {
			return forward[ast.Item](semi)
		}
		rest = semi.Rest
	} else {
		end := Cut("variable declaration", terminator)(rest)
		if !end.Ok() {
			return forward[ast.Item](end)
		}
		rest = end.Rest
	}
	return match[ast.Item](&ast.VariableDeclaration{Name: name.Value, Value: value.Value}, rest)
}

// variableCall matches `@name();`, committed after `()`.
func variableCall(in Input) Result[ast.Item] {
	name := lexeme(atKeyword)(in)
	if !name.Ok() {
		return forward[ast.Item](name)
	}
	args := emptyArgs(name.Rest)
	if !args.Ok() {
		return forward[ast.Item](args)
	}
	end := Cut("variable call", terminator)(args.Rest)
	if !end.Ok() {
		return forward[ast.Item](end)
	}
	return match[ast.Item](&ast.VariableCall{Name: name.Value}, end.Rest)
}

// atRule matches `@name prelude { items }` or `@name prelude;`. It is tried
// last, so `@name` followed by ':' or '()' never reaches it. The prelude is
// kept as raw text.
func atRule(in Input) Result[ast.Item] {
	name := lexeme(atKeyword)(in)
	if !name.Ok() {
		return forward[ast.Item](name)
	}
	prelude := atRulePrelude(name.Rest)
	if !prelude.Ok() {
		return forward[ast.Item](prelude)
	}
	rule := &ast.AtRule{Name: name.Value, Prelude: prelude.Value}

	if block := blockOfItems(prelude.Rest); block.Status() != NoMatch {
		if !block.Ok() {
			return forward[ast.Item](block)
		}
		rule.Block = block.Value
		rule.HasBlock = true
		return match[ast.Item](rule, block.Rest)
	}
	end := Cut("at-rule", Expect("'{' or ';'", terminator))(prelude.Rest)
	if !end.Ok() {
		return forward[ast.Item](end)
	}
	return match[ast.Item](rule, end.Rest)
}

// atRulePrelude scans raw text up to '{', ';' or '}', skipping over quoted
// strings and parenthesized groups. Comments are only recognized outside
// parentheses, so `url(//host/a.css)` stays intact.
func atRulePrelude(in Input) Result[ast.Text] {
	start := in
	cur := in
	parens := 0
scan:
	for !cur.atEOF() {
		switch c := cur.peek(0); {
		case c == '"' || c == '\'':
			s := String(c)(cur)
			if !s.Ok() {
				return forward[ast.Text](s)
			}
			cur = s.Rest
			continue
		case c == '(':
			parens++
		case c == ')':
			parens--
		case parens <= 0 && c == '/' && (cur.peek(1) == '*' || cur.peek(1) == '/'):
			j := junk(cur)
			if !j.Ok() {
				return forward[ast.Text](j)
			}
			cur = j.Rest
			continue
		case parens <= 0 && (c == '{' || c == ';' || c == '}'):
			break scan
		}
		cur = cur.advance(1)
	}
	raw := strings.TrimSpace(cur.since(start))
	return match(cur.text(raw), cur)
}
