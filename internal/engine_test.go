package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnolang/lessp/ast"
	tt "github.com/gnolang/lessp/internal/types"
	"github.com/gnolang/lessp/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTempDir creates a temporary directory and returns its path.
// It also registers a cleanup function to remove the directory after the test.
func createTempDir(t testing.TB, prefix string) string {
	tempDir, err := os.MkdirTemp("", prefix)
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tempDir) })
	return tempDir
}

func writeFile(t testing.TB, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEngine_RunSource(t *testing.T) {
	t.Parallel()
	engine := NewEngine()

	outcome, err := engine.RunSource("ok.less", []byte(".btn() { color: blue; }"))
	require.NoError(t, err)
	assert.Equal(t, "ok.less", outcome.Filename)
	assert.Empty(t, outcome.Issues)
	require.NotNil(t, outcome.Stylesheet)
	require.Len(t, outcome.Stylesheet.Items, 1)
	assert.Equal(t, ast.ItemMixinDeclaration, outcome.Stylesheet.Items[0].Type())
}

func TestEngine_RunSourceSyntaxError(t *testing.T) {
	t.Parallel()
	engine := NewEngine()

	outcome, err := engine.RunSource("bad.less", []byte(".a {\n  color: red;\n"))
	require.NoError(t, err)
	assert.Nil(t, outcome.Stylesheet)
	require.Len(t, outcome.Issues, 1)

	issue := outcome.Issues[0]
	assert.Equal(t, SyntaxErrorRule, issue.Rule)
	assert.Equal(t, "unexpected", issue.Category)
	assert.Equal(t, "bad.less", issue.Filename)
	assert.Equal(t, "expected item or '}', found EOF", issue.Message)
	assert.Equal(t, "while parsing block", issue.Note)
	assert.Equal(t, 3, issue.Start.Line)
	assert.Equal(t, 1, issue.Start.Column)
	assert.Equal(t, issue.Start, issue.End)
	assert.Equal(t, tt.SeverityError, issue.Severity)
}

func TestEngine_Options(t *testing.T) {
	t.Parallel()
	engine := NewEngine(parser.WithMaxDepth(1), parser.WithDetach(true))

	outcome, err := engine.RunSource("deep.less", []byte("a { b { } }"))
	require.NoError(t, err)
	require.Len(t, outcome.Issues, 1)
	assert.Equal(t, "too-deep", outcome.Issues[0].Category)
	assert.Equal(t, "nesting too deep (limit 1)", outcome.Issues[0].Message)

	outcome, err = engine.RunSource("flat.less", []byte("a { color: red; }"))
	require.NoError(t, err)
	rule := outcome.Stylesheet.Items[0].(*ast.QualifiedRule)
	assert.True(t, rule.Selectors[0].Name.IsOwned())
}

func TestEngine_Run(t *testing.T) {
	t.Parallel()
	tempDir := createTempDir(t, "engine_test")
	good := writeFile(t, tempDir, "good.less", "@x: 10px;\n.a { width: @x; }\n")
	bad := writeFile(t, tempDir, "bad.less", "a { b: 'open }\n")

	engine := NewEngine()

	outcome, err := engine.Run(good)
	require.NoError(t, err)
	assert.Empty(t, outcome.Issues)
	assert.Len(t, outcome.Stylesheet.Items, 2)

	outcome, err = engine.Run(bad)
	require.NoError(t, err)
	require.Len(t, outcome.Issues, 1)
	assert.Equal(t, "unterminated", outcome.Issues[0].Category)
	assert.Equal(t, bad, outcome.Issues[0].Start.Filename)
	assert.Equal(t, 8, outcome.Issues[0].Start.Column)

	_, err = engine.Run(filepath.Join(tempDir, "missing.less"))
	assert.Error(t, err)
}

func TestEngine_IgnorePath(t *testing.T) {
	t.Parallel()
	engine := NewEngine()
	engine.IgnorePath("vendor")
	engine.IgnorePath("*.min.css")
	engine.IgnorePath("")

	tests := []struct {
		path    string
		ignored bool
	}{
		{"vendor", true},
		{"vendor/reset.less", true},
		{"vendor/sub/x.less", true},
		{"vendored/x.less", false},
		{"site.min.css", true},
		{"dist/site.min.css", true},
		{"site.css", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ignored, engine.IsIgnored(tt.path), tt.path)
	}

	outcome, err := engine.Run("vendor/does-not-exist.less")
	require.NoError(t, err)
	assert.Empty(t, outcome.Issues)
	assert.Nil(t, outcome.Stylesheet)
}

func TestEngine_Accepts(t *testing.T) {
	t.Parallel()
	engine := NewEngine()
	engine.IgnorePath("vendor")

	assert.True(t, engine.Accepts("site.less"))
	assert.True(t, engine.Accepts("dist/reset.css"))
	assert.False(t, engine.Accepts("notes.txt"))
	assert.False(t, engine.Accepts("vendor/lib.less"))

	engine.SetExtensions(".scss")
	assert.True(t, engine.Accepts("a.scss"))
	assert.False(t, engine.Accepts("a.less"))

	engine.SetExtensions()
	assert.True(t, engine.Accepts("notes.txt"))
	assert.False(t, engine.Accepts("vendor/notes.txt"))
}

func TestSyntaxIssue(t *testing.T) {
	t.Parallel()
	_, err := parser.ParseStylesheet("a: b; ???", parser.WithFilename("ignored.less"))
	se, ok := parser.AsSyntaxError(err)
	require.True(t, ok)

	issue := SyntaxIssue("x.less", se)
	assert.Equal(t, "x.less", issue.Start.Filename)
	assert.Equal(t, 7, issue.Start.Column)
	assert.Equal(t, 9, issue.End.Column)
	assert.Equal(t, "trailing-input", issue.Category)
	assert.Equal(t, `expected item, found "???"`, issue.Message)
	assert.Equal(t, "while parsing stylesheet", issue.Note)
}

func TestSourceCode(t *testing.T) {
	t.Parallel()
	tempDir := createTempDir(t, "source_test")
	path := writeFile(t, tempDir, "a.less", "a\nb\n")

	code, err := ReadSourceCode(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", ""}, code.Lines)

	_, err = ReadSourceCode(filepath.Join(tempDir, "nope"))
	assert.Error(t, err)
}
