package parser

// Alt tries each rule in order and returns the first that does not report
// NoMatch. A Failed alternative stops the search. When every alternative
// misses, the miss that got furthest into the input is reported.
func Alt[T any](rules ...Rule[T]) Rule[T] {
	return func(in Input) Result[T] {
		best := noMatch[T](in, "")
		for _, rule := range rules {
			r := rule(in)
			if r.status != NoMatch {
				return r
			}
			if best.expected == "" || r.at.pos > best.at.pos {
				best = r
			}
		}
		return best
	}
}

// Cut commits to rule: a NoMatch becomes a hard error attributed to the
// named grammar rule.
func Cut[T any](ruleName string, rule Rule[T]) Rule[T] {
	return func(in Input) Result[T] {
		return commit(rule(in), ruleName)
	}
}

// Expect relabels the NoMatch of rule with a human readable expectation.
func Expect[T any](expected string, rule Rule[T]) Rule[T] {
	return func(in Input) Result[T] {
		r := rule(in)
		if r.status == NoMatch {
			r.expected = expected
		}
		return r
	}
}

// Many0 applies rule until it reports NoMatch. It never reports NoMatch
// itself. A match that consumes nothing ends the loop.
func Many0[T any](rule Rule[T]) Rule[[]T] {
	return func(in Input) Result[[]T] {
		var out []T
		for {
			r := rule(in)
			switch r.status {
			case Failed:
				return forward[[]T](r)
			case NoMatch:
				return match(out, in)
			}
			out = append(out, r.Value)
			if r.Rest.pos == in.pos {
				return match(out, r.Rest)
			}
			in = r.Rest
		}
	}
}

// SeparatedList1 matches one or more elem separated by sep. Once a separator
// has been read an element is required.
func SeparatedList1[T, S any](ruleName string, elem Rule[T], sep Rule[S]) Rule[[]T] {
	return func(in Input) Result[[]T] {
		first := elem(in)
		if !first.Ok() {
			return forward[[]T](first)
		}
		out := []T{first.Value}
		in = first.Rest
		for {
			s := sep(in)
			switch s.status {
			case Failed:
				return forward[[]T](s)
			case NoMatch:
				return match(out, in)
			}
			next := Cut(ruleName, elem)(s.Rest)
			if !next.Ok() {
				return forward[[]T](next)
			}
			out = append(out, next.Value)
			in = next.Rest
		}
	}
}

// Present matches rule optionally and reports whether it was there.
func Present[T any](rule Rule[T]) Rule[bool] {
	return func(in Input) Result[bool] {
		r := rule(in)
		switch r.status {
		case Failed:
			return forward[bool](r)
		case NoMatch:
			return match(false, in)
		}
		return match(true, r.Rest)
	}
}

// Peek matches rule without consuming input.
func Peek[T any](rule Rule[T]) Rule[T] {
	return func(in Input) Result[T] {
		r := rule(in)
		if r.Ok() {
			r.Rest = in
		}
		return r
	}
}

// Map transforms the value of a successful match.
func Map[T, U any](rule Rule[T], f func(T) U) Rule[U] {
	return func(in Input) Result[U] {
		r := rule(in)
		if !r.Ok() {
			return forward[U](r)
		}
		return match(f(r.Value), r.Rest)
	}
}

// Preceded matches prefix then rule, keeping the value of rule.
func Preceded[P, T any](prefix Rule[P], rule Rule[T]) Rule[T] {
	return func(in Input) Result[T] {
		p := prefix(in)
		if !p.Ok() {
			return forward[T](p)
		}
		return rule(p.Rest)
	}
}

// Delimited matches open, rule and close, keeping the value of rule.
func Delimited[O, T, C any](open Rule[O], rule Rule[T], close Rule[C]) Rule[T] {
	return func(in Input) Result[T] {
		o := open(in)
		if !o.Ok() {
			return forward[T](o)
		}
		r := rule(o.Rest)
		if !r.Ok() {
			return r
		}
		c := close(r.Rest)
		if !c.Ok() {
			return forward[T](c)
		}
		return match(r.Value, c.Rest)
	}
}
