package ast

import (
	"fmt"
	"strings"
)

// ItemType identifies the variant of an Item.
type ItemType int

const (
	ItemDeclaration ItemType = iota
	ItemQualifiedRule
	ItemMixinDeclaration
	ItemMixinCall
	ItemVariableDeclaration
	ItemVariableCall
	ItemAtRule
)

var itemTypeNames = [...]string{
	ItemDeclaration:         "declaration",
	ItemQualifiedRule:       "qualified-rule",
	ItemMixinDeclaration:    "mixin-declaration",
	ItemMixinCall:           "mixin-call",
	ItemVariableDeclaration: "variable-declaration",
	ItemVariableCall:        "variable-call",
	ItemAtRule:              "at-rule",
}

func (t ItemType) String() string {
	if t < 0 || int(t) >= len(itemTypeNames) {
		return "unknown"
	}
	return itemTypeNames[t]
}

// Item is one entry of a stylesheet or of a nested block.
type Item interface {
	Type() ItemType
	String() string
	item()
}

var (
	_ Item = (*Declaration)(nil)
	_ Item = (*QualifiedRule)(nil)
	_ Item = (*MixinDeclaration)(nil)
	_ Item = (*MixinCall)(nil)
	_ Item = (*VariableDeclaration)(nil)
	_ Item = (*VariableCall)(nil)
	_ Item = (*AtRule)(nil)
)

// Stylesheet is the root of a parsed source.
type Stylesheet struct {
	Items []Item
}

func (s *Stylesheet) String() string {
	return "Stylesheet" + blockString(s.Items)
}

// Declaration is a `name: value [!important];` property.
type Declaration struct {
	Name      Text
	Value     Value
	Important bool
}

func (*Declaration) Type() ItemType { return ItemDeclaration }
func (*Declaration) item()          {}
func (d *Declaration) String() string {
	s := fmt.Sprintf("Declaration(%s: %s", d.Name, valueString(d.Value))
	if d.Important {
		s += " !important"
	}
	return s + ")"
}

// QualifiedRule is a selector group followed by a block.
type QualifiedRule struct {
	Selectors SelectorGroup
	Block     []Item
}

func (*QualifiedRule) Type() ItemType { return ItemQualifiedRule }
func (*QualifiedRule) item()          {}
func (r *QualifiedRule) String() string {
	return fmt.Sprintf("QualifiedRule(%s)", r.Selectors) + blockString(r.Block)
}

// MixinDeclaration defines a mixin: `.name() { ... }`.
type MixinDeclaration struct {
	Selector Selector
	Block    []Item
}

func (*MixinDeclaration) Type() ItemType { return ItemMixinDeclaration }
func (*MixinDeclaration) item()          {}
func (m *MixinDeclaration) String() string {
	return fmt.Sprintf("MixinDeclaration(%s)", m.Selector) + blockString(m.Block)
}

// MixinCall invokes a mixin: `.name();`.
type MixinCall struct {
	Selector MixinSelector
}

func (*MixinCall) Type() ItemType { return ItemMixinCall }
func (*MixinCall) item()          {}
func (m *MixinCall) String() string {
	return fmt.Sprintf("MixinCall(%s)", m.Selector)
}

// VariableDeclaration binds `@name: value;`.
type VariableDeclaration struct {
	Name  Text
	Value Value
}

func (*VariableDeclaration) Type() ItemType { return ItemVariableDeclaration }
func (*VariableDeclaration) item()          {}
func (v *VariableDeclaration) String() string {
	if d, ok := v.Value.(*DetachedRuleset); ok {
		return fmt.Sprintf("VariableDeclaration(@%s)", v.Name) + blockString(d.Block)
	}
	return fmt.Sprintf("VariableDeclaration(@%s: %s)", v.Name, valueString(v.Value))
}

// VariableCall expands a detached ruleset: `@name();`.
type VariableCall struct {
	Name Text
}

func (*VariableCall) Type() ItemType { return ItemVariableCall }
func (*VariableCall) item()          {}
func (v *VariableCall) String() string {
	return fmt.Sprintf("VariableCall(@%s)", v.Name)
}

// AtRule is a directive such as `@media screen { ... }` or `@import "a";`.
// Prelude is the raw, trimmed text between the name and the block or `;`.
type AtRule struct {
	Name     Text
	Prelude  Text
	Block    []Item
	HasBlock bool
}

func (*AtRule) Type() ItemType { return ItemAtRule }
func (*AtRule) item()          {}
func (a *AtRule) String() string {
	head := "AtRule(@" + a.Name.String()
	if !a.Prelude.IsEmpty() {
		head += " " + a.Prelude.String()
	}
	head += ")"
	if !a.HasBlock {
		return head
	}
	return head + blockString(a.Block)
}

func blockString(items []Item) string {
	result := fmt.Sprintf("(%d items)", len(items))
	if len(items) == 0 {
		return result
	}
	result += ":\n"
	for i, child := range items {
		// indent nested blocks
		childStr := strings.ReplaceAll(child.String(), "\n", "\n  ")
		result += fmt.Sprintf("  %d: %s\n", i, childStr)
	}
	return strings.TrimRight(result, "\n")
}
