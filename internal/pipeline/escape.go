package pipeline

import "strings"

// Escape placeholders use Unicode Private Use Area characters.
// They survive HTML parsing and rendering untouched, so source text such as
// "a < b" reaches the output as "a &lt; b" instead of being parsed as markup.
const (
	LessThanPlaceholder    = "\uE010" // U+E010: <
	GreaterThanPlaceholder = "\uE011" // U+E011: >
	AmpersandPlaceholder   = "\uE012" // U+E012: &
)

var (
	escaper = strings.NewReplacer(
		"&", AmpersandPlaceholder,
		"<", LessThanPlaceholder,
		">", GreaterThanPlaceholder,
	)
	restorer = strings.NewReplacer(
		AmpersandPlaceholder, "&amp;",
		LessThanPlaceholder, "&lt;",
		GreaterThanPlaceholder, "&gt;",
	)
)

// Escape replaces markup-significant characters with placeholders.
func Escape(s string) string {
	return escaper.Replace(s)
}

// RestoreEscapes turns placeholders into HTML entities.
// Called once, after the document has been rendered to text.
func RestoreEscapes(s string) string {
	return restorer.Replace(s)
}
