package formatter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"github.com/fatih/color"
	"github.com/gnolang/lessp/internal"
	tt "github.com/gnolang/lessp/internal/types"
)

const tabWidth = 8

// rule set
const (
	SyntaxError = internal.SyntaxErrorRule
)

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	warningStyle = color.New(color.FgHiYellow, color.Bold)
	infoStyle    = color.New(color.FgHiCyan, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
	noteStyle    = color.New(color.FgGreen, color.Bold)
)

// issueFormatter is the interface that wraps the IssueTemplate method.
// Implementations render one kind of issue.
type issueFormatter interface {
	IssueTemplate() string
}

// getIssueFormatter returns the formatter for rule, falling back to
// GeneralIssueFormatter.
func getIssueFormatter(rule string) issueFormatter {
	switch rule {
	case SyntaxError:
		return &SyntaxErrorFormatter{}
	default:
		return &GeneralIssueFormatter{}
	}
}

// GenerateFormattedIssue formats a slice of issues into a human-readable string.
// It uses the appropriate formatter for each issue based on its rule.
func GenerateFormattedIssue(issues []tt.Issue, snippet *internal.SourceCode) string {
	if snippet == nil {
		snippet = &internal.SourceCode{}
	}
	var builder strings.Builder
	for _, issue := range issues {
		formatter := getIssueFormatter(issue.Rule)
		builder.WriteString(buildIssue(issue, snippet, formatter))
	}
	return builder.String()
}

/***** Issue Formatter Builder *****/

type IssueData struct {
	Category        string
	Severity        string
	Rule            string
	Filename        string
	Padding         string
	StartLine       int
	StartColumn     int
	EndLine         int
	EndColumn       int
	MaxLineNumWidth int
	Message         string
	Note            string
	SnippetLines    []string
	CommonIndent    string
}

var funcMap = template.FuncMap{
	"header":    header,
	"snippet":   codeSnippet,
	"underline": underlineAndMessage,
	"note":      note,
}

func buildIssue(issue tt.Issue, snippet *internal.SourceCode, formatter issueFormatter) string {
	startLine := issue.Start.Line
	endLine := issue.End.Line
	if endLine < startLine {
		endLine = startLine
	}
	maxLineNumWidth := calculateMaxLineNumWidth(endLine)
	padding := strings.Repeat(" ", maxLineNumWidth+1)

	var commonIndent string
	if isValidLineRange(startLine, endLine, snippet.Lines) {
		commonIndent = findCommonIndent(snippet.Lines[startLine-1 : endLine])
	}

	data := IssueData{
		Severity:        strings.ToLower(issue.Severity.String()),
		Category:        issue.Category,
		Rule:            issue.Rule,
		Filename:        issue.Filename,
		StartLine:       startLine,
		StartColumn:     issue.Start.Column,
		EndLine:         endLine,
		EndColumn:       issue.End.Column,
		Message:         issue.Message,
		Note:            issue.Note,
		MaxLineNumWidth: maxLineNumWidth,
		Padding:         padding,
		CommonIndent:    commonIndent,
		SnippetLines:    snippet.Lines,
	}

	tmpl, err := template.New("issue").Funcs(funcMap).Parse(formatter.IssueTemplate())
	if err != nil {
		return fmt.Sprintf("Error formatting issue: %v\n", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting issue: %v\n", err)
	}
	return buf.String()
}

// utils functions used in the text templates

func header(rule string, severity string, padding string, filename string, startLine int, startColumn int) string {
	var endString string
	switch severity {
	case "error":
		endString = errorStyle.Sprint("error: ")
	case "warning":
		endString = warningStyle.Sprint("warning: ")
	default:
		endString = infoStyle.Sprint("info: ")
	}

	endString += ruleStyle.Sprintf("%s", rule) + "\n"
	endString += lineStyle.Sprintf("%s--> ", padding[1:])
	endString += fileStyle.Sprintf("%s:%d:%d", filename, startLine, startColumn) + "\n"
	return endString
}

func codeSnippet(snippetLines []string, startLine int, endLine int, maxLineNumWidth int, commonIndent string, padding string) string {
	endString := lineStyle.Sprintf("%s|", padding) + "\n"

	for i := startLine; i <= endLine; i++ {
		if i-1 < 0 || i-1 >= len(snippetLines) {
			continue
		}

		line := strings.TrimPrefix(snippetLines[i-1], commonIndent)
		lineNum := fmt.Sprintf("%*d", maxLineNumWidth, i)

		endString += lineStyle.Sprintf("%s | ", lineNum) + strings.TrimRight(line, "\r") + "\n"
	}

	return endString
}

// underlineAndMessage marks the columns between start and end with marker
// and prints the message below.
func underlineAndMessage(marker string, message string, padding string, startLine int, endLine int, startColumn int, endColumn int, snippetLines []string, commonIndent string) string {
	endString := lineStyle.Sprintf("%s| ", padding)

	if !isValidLineRange(startLine, endLine, snippetLines) {
		return endString + messageStyle.Sprint(message) + "\n"
	}

	commonIndentWidth := calculateVisualColumn(commonIndent, len(commonIndent)+1)

	underlineStart := calculateVisualColumn(snippetLines[startLine-1], startColumn) - commonIndentWidth
	if underlineStart < 0 {
		underlineStart = 0
	}

	underlineEnd := calculateVisualColumn(snippetLines[endLine-1], endColumn) - commonIndentWidth
	underlineLength := underlineEnd - underlineStart + 1
	if underlineLength < 1 {
		underlineLength = 1
	}

	endString += strings.Repeat(" ", underlineStart)
	endString += messageStyle.Sprint(strings.Repeat(marker, underlineLength)) + "\n"

	endString += lineStyle.Sprintf("%s= ", padding)
	endString += messageStyle.Sprint(message) + "\n"

	return endString
}

func note(note string, padding string) string {
	if note == "" {
		return ""
	}
	return lineStyle.Sprintf("%s= ", padding) + noteStyle.Sprint("note: ") + note + "\n"
}

func isValidLineRange(startLine int, endLine int, snippetLines []string) bool {
	return startLine > 0 &&
		endLine > 0 &&
		startLine <= endLine &&
		startLine <= len(snippetLines) &&
		endLine <= len(snippetLines)
}

func calculateMaxLineNumWidth(endLine int) int {
	return len(strconv.Itoa(endLine))
}

// calculateVisualColumn returns the display width of line up to the 1-based
// byte column, expanding tabs.
func calculateVisualColumn(line string, column int) int {
	if column < 0 {
		return 0
	}
	visualColumn := 0
	for i, ch := range line {
		if i+1 >= column {
			break
		}
		if ch == '\t' {
			visualColumn += tabWidth - (visualColumn % tabWidth)
		} else {
			visualColumn++
		}
	}
	return visualColumn
}

// findCommonIndent finds the common indent in the code snippet.
func findCommonIndent(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	var indent []rune
	found := false
	for _, line := range lines {
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		if trimmed == "" {
			continue
		}

		current := []rune(line[:len(line)-len(trimmed)])
		if !found {
			indent, found = current, true
			continue
		}
		indent = commonPrefix(indent, current)
		if len(indent) == 0 {
			break
		}
	}

	return string(indent)
}

// commonPrefix finds the common prefix of two rune slices.
func commonPrefix(a, b []rune) []rune {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
