package formatter

// SyntaxErrorFormatter renders a parse failure. The header carries the error
// kind and the marker points at the offending input.
type SyntaxErrorFormatter struct{}

func (f *SyntaxErrorFormatter) IssueTemplate() string {
	return `{{header (printf "%s[%s]" .Rule .Category) .Severity .Padding .Filename .StartLine .StartColumn}}
{{- snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding}}
{{- underline "^" .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent}}
{{- note .Note .Padding}}
`
}
