package parser

import (
	"strings"

	"github.com/gnolang/lessp/ast"
)

// declarationValue parses the right hand side of a property declaration:
// a comma separated list of space separated terms, ending in front of ';',
// '!important', '}' or ')'. A single term is returned as is.
func declarationValue(in Input) Result[ast.Value] {
	return Expect("value", commaList)(in)
}

// variableDeclarationValue is declarationValue, or a detached ruleset when
// the value opens with '{'.
func variableDeclarationValue(in Input) Result[ast.Value] {
	return Expect("value", Alt(detachedRuleset, declarationValue))(in)
}

func detachedRuleset(in Input) Result[ast.Value] {
	return Map(blockOfItems, func(items []ast.Item) ast.Value {
		return &ast.DetachedRuleset{Block: items}
	})(in)
}

func commaList(in Input) Result[ast.Value] {
	r := SeparatedList1("value", spaceList, symbol(","))(in)
	if !r.Ok() {
		return forward[ast.Value](r)
	}
	return match(collapse(ast.CommaSeparated, r.Value), r.Rest)
}

func spaceList(in Input) Result[ast.Value] {
	first := lexeme(term)(in)
	if !first.Ok() {
		return forward[ast.Value](first)
	}
	more := Many0(lexeme(term))(first.Rest)
	if !more.Ok() {
		return forward[ast.Value](more)
	}
	values := append([]ast.Value{first.Value}, more.Value...)
	return match(collapse(ast.SpaceSeparated, values), more.Rest)
}

func collapse(sep ast.ListSeparator, values []ast.Value) ast.Value {
	if len(values) == 1 {
		return values[0]
	}
	return &ast.List{Sep: sep, Values: values}
}

// term is a single component of a value.
func term(in Input) Result[ast.Value] {
	return Alt(
		quotedString,
		color,
		number,
		function,
		identValue,
		variableRef,
		propertyRef,
		operator,
	)(in)
}

// color matches `#rgb`, `#rgba`, `#rrggbb` or `#rrggbbaa`.
func color(in Input) Result[ast.Value] {
	if in.peek(0) != '#' {
		return noMatch[ast.Value](in, "color")
	}
	n := 0
	for isHexDigit(in.peek(1 + n)) {
		n++
	}
	if (n != 3 && n != 4 && n != 6 && n != 8) || isName(in.peek(1+n)) {
		return noMatch[ast.Value](in, "color")
	}
	hex := in.advance(1)
	rest := hex.advance(n)
	return match[ast.Value](&ast.Color{Hex: in.text(rest.since(hex))}, rest)
}

// number matches `[+-]digits[.digits]` or `[+-].digits` with an optional
// unit, which is either '%' or an identifier.
func number(in Input) Result[ast.Value] {
	cur := in
	if c := cur.peek(0); c == '+' || c == '-' {
		cur = cur.advance(1)
	}
	digits := 0
	for isDigit(cur.peek(0)) {
		cur = cur.advance(1)
		digits++
	}
	if cur.peek(0) == '.' && isDigit(cur.peek(1)) {
		cur = cur.advance(1)
		for isDigit(cur.peek(0)) {
			cur = cur.advance(1)
			digits++
		}
	}
	if digits == 0 {
		return noMatch[ast.Value](in, "number")
	}

	unit := cur
	if cur.peek(0) == '%' {
		cur = cur.advance(1)
	} else if n := identLen(cur); n > 0 {
		cur = cur.advance(n)
	}
	return match[ast.Value](&ast.Number{
		Value: in.text(unit.since(in)),
		Unit:  in.text(cur.since(unit)),
	}, cur)
}

// function matches `name(args)`; there is no space before '('. Once the
// '(' is read the call is committed.
func function(in Input) Result[ast.Value] {
	name := ident(in)
	if !name.Ok() {
		return forward[ast.Value](name)
	}
	open := tag("(")(name.Rest)
	if !open.Ok() {
		return noMatch[ast.Value](in, "function")
	}
	if strings.EqualFold(name.Value.String(), "url") {
		return urlArgument(name.Value, open.Rest)
	}

	if closed := symbol(")")(open.Rest); closed.Ok() {
		return match[ast.Value](&ast.Function{Name: name.Value}, closed.Rest)
	}
	args := Cut("function", declarationValue)(open.Rest)
	if !args.Ok() {
		return args
	}
	closed := Cut("function", symbol(")"))(args.Rest)
	if !closed.Ok() {
		return forward[ast.Value](closed)
	}
	return match[ast.Value](&ast.Function{Name: name.Value, Args: args.Value}, closed.Rest)
}

// urlArgument parses the argument of `url(`: a quoted string, or raw text
// up to ')' kept as an identifier.
func urlArgument(name ast.Text, in Input) Result[ast.Value] {
	if quoted := lexeme(quotedString)(in); quoted.Status() != NoMatch {
		if !quoted.Ok() {
			return quoted
		}
		closed := Cut("url", symbol(")"))(quoted.Rest)
		if !closed.Ok() {
			return forward[ast.Value](closed)
		}
		return match[ast.Value](&ast.Function{Name: name, Args: quoted.Value}, closed.Rest)
	}

	start := in
	for {
		if in.atEOF() || in.peek(0) == '\n' {
			return fail[ast.Value](&SyntaxError{
				Pos:      start.Position(),
				Rule:     "url",
				Kind:     ErrUnterminated,
				Expected: "url",
				Found:    describe(in),
			})
		}
		if in.peek(0) == ')' {
			break
		}
		in = in.advance(1)
	}
	raw := strings.TrimSpace(in.since(start))
	fn := &ast.Function{Name: name}
	if raw != "" {
		fn.Args = &ast.Ident{Name: in.text(raw)}
	}
	return match[ast.Value](fn, in.advance(1))
}

func identValue(in Input) Result[ast.Value] {
	return Map(ident, func(name ast.Text) ast.Value {
		return &ast.Ident{Name: name}
	})(in)
}

func variableRef(in Input) Result[ast.Value] {
	return Map(atKeyword, func(name ast.Text) ast.Value {
		return &ast.VariableRef{Name: name}
	})(in)
}

func propertyRef(in Input) Result[ast.Value] {
	return Map(Preceded(tag("$"), ident), func(name ast.Text) ast.Value {
		return &ast.PropertyRef{Name: name}
	})(in)
}

func operator(in Input) Result[ast.Value] {
	switch c := in.peek(0); c {
	case '/', '*', '+', '-':
		return match[ast.Value](&ast.Operator{Op: c}, in.advance(1))
	}
	return noMatch[ast.Value](in, "value")
}
