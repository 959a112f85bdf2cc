// Package template implements the placeholder engine behind the workshop
// editor: extraction of {{name}} placeholders from draft text, reconciliation
// of variable bindings across edits, and preview rendering. Everything here
// is pure; the package knows nothing about storage or HTTP.
package template

import "strings"

const (
	openMarker  = "{{"
	closeMarker = "}}"
)

// Extract returns the placeholder names found in text, in first-occurrence
// order, duplicates included. A name is the raw byte span between an opening
// "{{" and the next "}}", taken verbatim: no trimming, case preserved. An
// unmatched "{{" contributes nothing, so extraction is total over any input.
//
// "{{}}" yields an empty name. That mirrors how drafts behave while the user
// is still typing a name; callers that want to forbid it can reject empty
// names at their own boundary.
func Extract(text string) []string {
	var names []string
	for {
		start := strings.Index(text, openMarker)
		if start < 0 {
			return names
		}
		rest := text[start+len(openMarker):]
		end := strings.Index(rest, closeMarker)
		if end < 0 {
			return names
		}
		names = append(names, rest[:end])
		text = rest[end+len(closeMarker):]
	}
}

// dedupe keeps the first occurrence of each name, preserving order.
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
