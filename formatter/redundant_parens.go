package formatter

// RedundantParensFormatter renders redundant-enum-parens diagnostics.
// The detector stores the simplified pattern in the suggestion field,
// so instead of the multi-line suggestion block it emits a single
// help line right under the message.
type RedundantParensFormatter struct{}

func (f *RedundantParensFormatter) IssueTemplate() string {
	return `{{header .Rule .Severity .MaxLineNumWidth .Filename .StartLine .StartColumn -}}
{{snippet .SnippetLines .StartLine .EndLine .MaxLineNumWidth .CommonIndent .Padding -}}
{{underlineAndMessage .Message .Padding .StartLine .EndLine .StartColumn .EndColumn .SnippetLines .CommonIndent -}}
{{- if .Suggestion -}}
{{simplifyHint .Suggestion .Padding}}
{{- end }}
{{- if .Note }}
{{note .Note}}
{{- end }}
`
}
