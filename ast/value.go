package ast

import (
	"fmt"
	"strings"
)

// ValueType identifies the variant of a Value.
type ValueType int

const (
	ValueQuotedString ValueType = iota
	ValueInterpolatedString
	ValueIdent
	ValueNumber
	ValueColor
	ValueVariableRef
	ValuePropertyRef
	ValueFunction
	ValueOperator
	ValueList
	ValueDetachedRuleset
)

var valueTypeNames = [...]string{
	ValueQuotedString:       "quoted-string",
	ValueInterpolatedString: "interpolated-string",
	ValueIdent:              "ident",
	ValueNumber:             "number",
	ValueColor:              "color",
	ValueVariableRef:        "variable",
	ValuePropertyRef:        "property",
	ValueFunction:           "function",
	ValueOperator:           "operator",
	ValueList:               "list",
	ValueDetachedRuleset:    "detached-ruleset",
}

func (t ValueType) String() string {
	if t < 0 || int(t) >= len(valueTypeNames) {
		return "unknown"
	}
	return valueTypeNames[t]
}

// Value is the right hand side of a declaration or variable declaration.
// String renders the value the way it would appear in source.
type Value interface {
	Type() ValueType
	String() string
	value()
}

var (
	_ Value = (*QuotedString)(nil)
	_ Value = (*InterpolatedString)(nil)
	_ Value = (*Ident)(nil)
	_ Value = (*Number)(nil)
	_ Value = (*Color)(nil)
	_ Value = (*VariableRef)(nil)
	_ Value = (*PropertyRef)(nil)
	_ Value = (*Function)(nil)
	_ Value = (*Operator)(nil)
	_ Value = (*List)(nil)
	_ Value = (*DetachedRuleset)(nil)
)

// QuotedString is a string literal without interpolation. Text excludes the
// quotes; escapes are kept as written.
type QuotedString struct {
	Quote byte
	Text  Text
}

func (*QuotedString) Type() ValueType { return ValueQuotedString }
func (*QuotedString) value()          {}
func (q *QuotedString) Raw() string   { return q.Text.String() }
func (q *QuotedString) String() string {
	return string(q.Quote) + q.Raw() + string(q.Quote)
}

// InterpolationKind tells which sigil introduced an interpolation.
type InterpolationKind int

const (
	InterpolateVariable InterpolationKind = iota // @{name}
	InterpolateProperty                          // ${name}
)

// InterpolatedValue is a reference embedded in a string literal.
type InterpolatedValue struct {
	Kind InterpolationKind
	Name Text
}

func Variable(name string) InterpolatedValue {
	return InterpolatedValue{Kind: InterpolateVariable, Name: Borrowed(name)}
}

func Property(name string) InterpolatedValue {
	return InterpolatedValue{Kind: InterpolateProperty, Name: Borrowed(name)}
}

func (v InterpolatedValue) String() string {
	if v.Kind == InterpolateProperty {
		return "${" + v.Name.String() + "}"
	}
	return "@{" + v.Name.String() + "}"
}

// InterpolatedString is a string literal containing at least one
// interpolation. Segments always holds one more element than Interpolations.
type InterpolatedString struct {
	Quote          byte
	Segments       []Text
	Interpolations []InterpolatedValue
}

func (*InterpolatedString) Type() ValueType { return ValueInterpolatedString }
func (*InterpolatedString) value()          {}

// Raw reassembles the text between the quotes.
func (s *InterpolatedString) Raw() string {
	var b strings.Builder
	for i, seg := range s.Segments {
		b.WriteString(seg.String())
		if i < len(s.Interpolations) {
			b.WriteString(s.Interpolations[i].String())
		}
	}
	return b.String()
}

func (s *InterpolatedString) String() string {
	return string(s.Quote) + s.Raw() + string(s.Quote)
}

// Ident is a bare keyword such as `red` or `solid`.
type Ident struct {
	Name Text
}

func (*Ident) Type() ValueType  { return ValueIdent }
func (*Ident) value()           {}
func (i *Ident) String() string { return i.Name.String() }

// Number is a numeric literal with an optional unit (`px`, `em`, `%`).
type Number struct {
	Value Text
	Unit  Text
}

func (*Number) Type() ValueType  { return ValueNumber }
func (*Number) value()           {}
func (n *Number) String() string { return n.Value.String() + n.Unit.String() }

// Color is a hex color; Hex excludes the leading '#'.
type Color struct {
	Hex Text
}

func (*Color) Type() ValueType  { return ValueColor }
func (*Color) value()           {}
func (c *Color) String() string { return "#" + c.Hex.String() }

// VariableRef is `@name` used as a value.
type VariableRef struct {
	Name Text
}

func (*VariableRef) Type() ValueType  { return ValueVariableRef }
func (*VariableRef) value()           {}
func (v *VariableRef) String() string { return "@" + v.Name.String() }

// PropertyRef is `$name` used as a value.
type PropertyRef struct {
	Name Text
}

func (*PropertyRef) Type() ValueType  { return ValuePropertyRef }
func (*PropertyRef) value()           {}
func (p *PropertyRef) String() string { return "$" + p.Name.String() }

// Function is a call such as `rgba(0, 0, 0, 0.5)`. Args is nil for an empty
// argument list. The argument of `url(...)` is kept as a raw QuotedString or
// Ident.
type Function struct {
	Name Text
	Args Value
}

func (*Function) Type() ValueType { return ValueFunction }
func (*Function) value()          {}
func (f *Function) String() string {
	if f.Args == nil {
		return f.Name.String() + "()"
	}
	return f.Name.String() + "(" + f.Args.String() + ")"
}

// Operator is one of `/ + - *` standing between two terms.
type Operator struct {
	Op byte
}

func (*Operator) Type() ValueType  { return ValueOperator }
func (*Operator) value()           {}
func (o *Operator) String() string { return string(o.Op) }

// ListSeparator is the separator shared by the elements of a List.
type ListSeparator int

const (
	SpaceSeparated ListSeparator = iota
	CommaSeparated
)

// List holds two or more values.
type List struct {
	Sep    ListSeparator
	Values []Value
}

func (*List) Type() ValueType { return ValueList }
func (*List) value()          {}
func (l *List) String() string {
	sep := " "
	if l.Sep == CommaSeparated {
		sep = ", "
	}
	parts := make([]string, len(l.Values))
	for i, v := range l.Values {
		parts[i] = v.String()
	}
	return strings.Join(parts, sep)
}

// DetachedRuleset is a block of items bound to a variable.
type DetachedRuleset struct {
	Block []Item
}

func (*DetachedRuleset) Type() ValueType { return ValueDetachedRuleset }
func (*DetachedRuleset) value()          {}
func (d *DetachedRuleset) String() string {
	return fmt.Sprintf("{%d items}", len(d.Block))
}

func valueString(v Value) string {
	if v == nil {
		return "<nil>"
	}
	return v.String()
}
