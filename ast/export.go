package ast

// Export converts a stylesheet into nested maps and slices tagged with a
// "type" key, suitable for encoding/json or yaml.v3.
func Export(s *Stylesheet) map[string]any {
	return map[string]any{
		"type":  "stylesheet",
		"items": exportItems(s.Items),
	}
}

func exportItems(items []Item) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		out = append(out, ExportItem(it))
	}
	return out
}

// ExportItem converts a single item; see Export.
func ExportItem(it Item) map[string]any {
	m := map[string]any{"type": it.Type().String()}
	switch n := it.(type) {
	case *Declaration:
		m["name"] = n.Name.String()
		m["value"] = ExportValue(n.Value)
		if n.Important {
			m["important"] = true
		}
	case *QualifiedRule:
		m["selectors"] = exportSelectors(n.Selectors)
		m["block"] = exportItems(n.Block)
	case *MixinDeclaration:
		m["selector"] = exportSelector(n.Selector)
		m["block"] = exportItems(n.Block)
	case *MixinCall:
		m["selector"] = exportSelectors(n.Selector.Path)
	case *VariableDeclaration:
		m["name"] = n.Name.String()
		m["value"] = ExportValue(n.Value)
	case *VariableCall:
		m["name"] = n.Name.String()
	case *AtRule:
		m["name"] = n.Name.String()
		if !n.Prelude.IsEmpty() {
			m["prelude"] = n.Prelude.String()
		}
		if n.HasBlock {
			m["block"] = exportItems(n.Block)
		}
	}
	return m
}

// ExportValue converts a single value; see Export.
func ExportValue(v Value) map[string]any {
	if v == nil {
		return nil
	}
	m := map[string]any{"type": v.Type().String()}
	switch n := v.(type) {
	case *QuotedString:
		m["quote"] = string(n.Quote)
		m["text"] = n.Text.String()
	case *InterpolatedString:
		segments := make([]string, len(n.Segments))
		for i, s := range n.Segments {
			segments[i] = s.String()
		}
		interpolations := make([]any, len(n.Interpolations))
		for i, iv := range n.Interpolations {
			kind := "variable"
			if iv.Kind == InterpolateProperty {
				kind = "property"
			}
			interpolations[i] = map[string]any{"kind": kind, "name": iv.Name.String()}
		}
		m["quote"] = string(n.Quote)
		m["segments"] = segments
		m["interpolations"] = interpolations
	case *Ident:
		m["name"] = n.Name.String()
	case *Number:
		m["value"] = n.Value.String()
		if !n.Unit.IsEmpty() {
			m["unit"] = n.Unit.String()
		}
	case *Color:
		m["hex"] = n.Hex.String()
	case *VariableRef:
		m["name"] = n.Name.String()
	case *PropertyRef:
		m["name"] = n.Name.String()
	case *Function:
		m["name"] = n.Name.String()
		if n.Args != nil {
			m["args"] = ExportValue(n.Args)
		}
	case *Operator:
		m["op"] = string(n.Op)
	case *List:
		sep := "space"
		if n.Sep == CommaSeparated {
			sep = "comma"
		}
		values := make([]any, len(n.Values))
		for i, e := range n.Values {
			values[i] = ExportValue(e)
		}
		m["separator"] = sep
		m["values"] = values
	case *DetachedRuleset:
		m["block"] = exportItems(n.Block)
	}
	return m
}

func exportSelectors(group []Selector) []any {
	out := make([]any, len(group))
	for i, s := range group {
		out[i] = exportSelector(s)
	}
	return out
}

func exportSelector(s Selector) map[string]any {
	return map[string]any{"kind": s.Kind.String(), "name": s.Name.String()}
}
