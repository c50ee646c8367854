package parser

// Status is the outcome class of a rule application.
type Status int8

const (
	// NoMatch means the rule did not apply and consumed nothing. Callers may
	// try another alternative.
	NoMatch Status = iota
	// Matched means the rule produced a value.
	Matched
	// Failed means the rule committed to a construct that turned out to be
	// malformed. It aborts the whole parse.
	Failed
)

func (s Status) String() string {
	switch s {
	case NoMatch:
		return "no-match"
	case Matched:
		return "matched"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result carries the outcome of applying a Rule to an Input.
type Result[T any] struct {
	Value T
	Rest  Input

	status Status

	// set for NoMatch
	at       Input
	expected string

	// set for Failed
	err *SyntaxError
}

// Rule is a parser over Input.
type Rule[T any] func(Input) Result[T]

func match[T any](value T, rest Input) Result[T] {
	return Result[T]{Value: value, Rest: rest, status: Matched}
}

func noMatch[T any](at Input, expected string) Result[T] {
	return Result[T]{status: NoMatch, at: at, expected: expected}
}

func fail[T any](err *SyntaxError) Result[T] {
	return Result[T]{status: Failed, err: err}
}

// forward re-types an unsuccessful result so it can be returned from a rule
// with a different value type.
func forward[U, T any](r Result[T]) Result[U] {
	return Result[U]{status: r.status, at: r.at, expected: r.expected, err: r.err}
}

func (r Result[T]) Status() Status { return r.status }
func (r Result[T]) Ok() bool       { return r.status == Matched }
func (r Result[T]) Failed() bool   { return r.status == Failed }

// Err returns the hard error of a Failed result, or a description of what
// was expected for a NoMatch result. It returns nil when r matched.
func (r Result[T]) Err() *SyntaxError {
	switch r.status {
	case Failed:
		return r.err
	case NoMatch:
		return newError(r.at, ErrUnexpected, "", r.expected)
	default:
		return nil
	}
}

// commit turns a NoMatch into a hard error. Failed and Matched results pass
// through unchanged.
func commit[T any](r Result[T], rule string) Result[T] {
	if r.status != NoMatch {
		return r
	}
	return fail[T](newError(r.at, ErrUnexpected, rule, r.expected))
}
