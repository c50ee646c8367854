package ast

import "strings"

// SelectorKind tells how a selector name is prefixed in source.
type SelectorKind int

const (
	SelectorElement SelectorKind = iota // name
	SelectorId                          // #name
	SelectorClass                       // .name
)

func (k SelectorKind) String() string {
	switch k {
	case SelectorElement:
		return "element"
	case SelectorId:
		return "id"
	case SelectorClass:
		return "class"
	default:
		return "unknown"
	}
}

// Selector is a single simple selector.
type Selector struct {
	Kind SelectorKind
	Name Text
}

func (s Selector) String() string {
	switch s.Kind {
	case SelectorId:
		return "#" + s.Name.String()
	case SelectorClass:
		return "." + s.Name.String()
	default:
		return s.Name.String()
	}
}

// SelectorGroup is a comma separated, never empty, list of selectors.
type SelectorGroup []Selector

func (g SelectorGroup) String() string {
	parts := make([]string, len(g))
	for i, s := range g {
		parts[i] = s.String()
	}
	return strings.Join(parts, ", ")
}

// MixinSelector names the mixin invoked by a call. A path longer than one
// element is a namespace lookup such as `#ns > .mixin`.
type MixinSelector struct {
	Path []Selector
}

func (m MixinSelector) String() string {
	parts := make([]string, len(m.Path))
	for i, s := range m.Path {
		parts[i] = s.String()
	}
	return strings.Join(parts, " > ")
}
