package parser

// DefaultMaxDepth bounds brace nesting when no limit is configured.
const DefaultMaxDepth = 256

// Options controls a single parse.
type Options struct {
	Filename string // reported in error positions
	MaxDepth int    // maximum brace nesting, DefaultMaxDepth when <= 0
	Detach   bool   // copy all text out of the source buffer
}

// Option configures Options.
type Option func(*Options)

func WithFilename(name string) Option {
	return func(o *Options) { o.Filename = name }
}

func WithMaxDepth(depth int) Option {
	return func(o *Options) { o.MaxDepth = depth }
}

// WithDetach makes every ast.Text in the result an owned copy, so the AST
// does not keep the source buffer reachable.
func WithDetach(detach bool) Option {
	return func(o *Options) { o.Detach = detach }
}

func newOptions(opts ...Option) *Options {
	o := &Options{MaxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
