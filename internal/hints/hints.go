// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForSourceNotFound returns a hint for a missing markup source.
func ForSourceNotFound() string {
	return format("pass the source with --source or set source in the config file")
}

// ForDocumentNotFound returns a hint for a missing output document.
func ForDocumentNotFound() string {
	return format("run 'qaguide init' to create a starter document and vocabulary")
}

// ForMalformed returns a hint for a source that breaks tag alternation.
// grammar is the grammar the source was checked against.
func ForMalformed(grammar string) string {
	tags := "Q and A"
	if grammar == "extended" {
		tags = "a question tag (Q, P, J, H) and an answer tag (A, D)"
	}
	return format("every node needs " + tags + " lines in turn; run 'qaguide check' to list the first problem")
}

// ForContainerNotFound returns a hint for a document without the content container.
func ForContainerNotFound(selector string) string {
	return format("add a " + describeSelector(selector) + " element to the document, or use --container")
}

// ForIndexNotFound returns a hint for a document without the keyword index script.
func ForIndexNotFound(marker string) string {
	return format("add a <script> containing '" + marker + "};' to the document")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/qaguide/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/qaguide") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForVocabulary returns a hint for an invalid keyword vocabulary file.
func ForVocabulary() string {
	return format("each category needs a name and terms; highlightOrder must list every category once")
}

func describeSelector(selector string) string {
	if id, ok := strings.CutPrefix(selector, "#"); ok {
		return `id="` + id + `"`
	}
	return "<" + selector + ">"
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
