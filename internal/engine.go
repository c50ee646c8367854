package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/gnolang/lessp/ast"
	tt "github.com/gnolang/lessp/internal/types"
	"github.com/gnolang/lessp/parser"
)

// SyntaxErrorRule is the rule name of the issue reported for a source that
// does not parse.
const SyntaxErrorRule = "syntax-error"

// DefaultExtensions are the file extensions an engine checks unless told
// otherwise.
var DefaultExtensions = []string{".less", ".css"}

// Outcome is the result of checking one source.
type Outcome struct {
	Filename   string
	Stylesheet *ast.Stylesheet // nil when the source did not parse or came from the cache
	Issues     []tt.Issue
	Cached     bool
}

// Engine parses stylesheets and turns syntax errors into issues.
type Engine struct {
	opts []parser.Option

	mu           sync.RWMutex
	ignoredPaths []string
	extensions   []string
	cache        *Cache
}

// NewEngine creates an engine that parses with the given options. Per-file
// options such as the filename are added on every run.
func NewEngine(opts ...parser.Option) *Engine {
	return &Engine{opts: opts, extensions: DefaultExtensions}
}

// SetExtensions replaces the extensions of the files the engine accepts.
// With none, every file is accepted.
func (e *Engine) SetExtensions(exts ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.extensions = exts
}

// Accepts reports whether filename has one of the engine's extensions and
// is not ignored.
func (e *Engine) Accepts(filename string) bool {
	if e.IsIgnored(filename) {
		return false
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if len(e.extensions) == 0 {
		return true
	}
	ext := filepath.Ext(filename)
	for _, want := range e.extensions {
		if ext == want {
			return true
		}
	}
	return false
}

// SetCache makes Run reuse the issues of files that did not change.
func (e *Engine) SetCache(c *Cache) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = c
}

// IgnorePath skips files matching path. A pattern containing glob
// metacharacters is matched against the file name and its base name;
// anything else is treated as a directory or file prefix.
func (e *Engine) IgnorePath(path string) {
	if path == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ignoredPaths = append(e.ignoredPaths, filepath.Clean(path))
}

// IsIgnored reports whether filename matches one of the ignored paths.
func (e *Engine) IsIgnored(filename string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	clean := filepath.Clean(filename)
	for _, pattern := range e.ignoredPaths {
		if strings.ContainsAny(pattern, "*?[") {
			if ok, _ := filepath.Match(pattern, clean); ok {
				return true
			}
			if ok, _ := filepath.Match(pattern, filepath.Base(clean)); ok {
				return true
			}
			continue
		}
		if clean == pattern || strings.HasPrefix(clean, pattern+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Run parses the given file. A syntax error is reported as an issue of the
// outcome; only I/O failures are returned as errors.
func (e *Engine) Run(filename string) (*Outcome, error) {
	if e.IsIgnored(filename) {
		return &Outcome{Filename: filename}, nil
	}

	e.mu.RLock()
	cache := e.cache
	e.mu.RUnlock()

	if cache != nil {
		if issues, ok := cache.Get(filename); ok {
			return &Outcome{Filename: filename, Issues: issues, Cached: true}, nil
		}
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	outcome, err := e.RunSource(filename, content)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		if err := cache.Set(filename, outcome.Issues); err != nil {
			return nil, fmt.Errorf("error updating cache: %w", err)
		}
	}
	return outcome, nil
}

// RunSource parses source as if it were read from a file called name.
func (e *Engine) RunSource(name string, source []byte) (*Outcome, error) {
	opts := append([]parser.Option{parser.WithFilename(name)}, e.opts...)

	sheet, err := parser.ParseStylesheet(string(source), opts...)
	if err == nil {
		return &Outcome{Filename: name, Stylesheet: sheet}, nil
	}

	se, ok := parser.AsSyntaxError(err)
	if !ok {
		return nil, fmt.Errorf("error parsing %s: %w", name, err)
	}
	return &Outcome{
		Filename: name,
		Issues:   []tt.Issue{SyntaxIssue(name, se)},
	}, nil
}

// SyntaxIssue converts a parse error into an issue located at the error.
func SyntaxIssue(filename string, se *parser.SyntaxError) tt.Issue {
	start := se.Pos
	start.Filename = filename
	end := start
	if found, err := strconv.Unquote(se.Found); err == nil && found != "" {
		end.Column += len(found) - 1
	}

	return tt.Issue{
		Rule:     SyntaxErrorRule,
		Category: se.Kind.String(),
		Filename: filename,
		Message:  issueMessage(se),
		Note:     fmt.Sprintf("while parsing %s", ruleOrDefault(se.Rule)),
		Start:    start,
		End:      end,
		Severity: tt.SeverityError,
	}
}

func issueMessage(se *parser.SyntaxError) string {
	switch se.Kind {
	case parser.ErrUnterminated:
		return "unterminated " + se.Expected
	case parser.ErrTooDeep:
		return "nesting too deep (limit " + se.Expected + ")"
	default:
		return fmt.Sprintf("expected %s, found %s", se.Expected, se.Found)
	}
}

func ruleOrDefault(rule string) string {
	if rule == "" {
		return "stylesheet"
	}
	return rule
}

// SourceCode stores the content of a source file.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a `SourceCode` struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return NewSourceCode(content), nil
}

// NewSourceCode splits source into lines.
func NewSourceCode(source []byte) *SourceCode {
	return &SourceCode{Lines: strings.Split(string(source), "\n")}
}
