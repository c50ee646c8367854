package formatter

type GeneralIssueFormatter struct{}

func (f *GeneralIssueFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .Padding .Filename .StartLine .StartColumn}}
{{- snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding}}
{{- underline "~" .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent}}
{{- note .Note .Padding}}
`
}
