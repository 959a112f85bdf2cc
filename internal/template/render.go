package template

import "strings"

// Render substitutes the bindings into text and returns the preview string.
// Every {{name}} occurrence is replaced by the bound value; when the name is
// unbound or its value is empty the visible fallback marker [name] is used
// instead, so missing input shows up in the preview rather than producing
// silent blanks. Repeated occurrences of one name all get the same value.
//
// Matching works on literal spans, the same scan Extract uses. Names are
// never compiled into a pattern, so regex metacharacters in a name cannot
// corrupt matching. Inputs are not mutated and unterminated spans pass
// through verbatim.
func Render(text string, bindings Bindings) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for {
		start := strings.Index(text, openMarker)
		if start < 0 {
			sb.WriteString(text)
			return sb.String()
		}
		rest := text[start+len(openMarker):]
		end := strings.Index(rest, closeMarker)
		if end < 0 {
			sb.WriteString(text)
			return sb.String()
		}
		name := rest[:end]
		sb.WriteString(text[:start])
		if v, ok := bindings.Value(name); ok && v != "" {
			sb.WriteString(v)
		} else {
			sb.WriteString("[" + name + "]")
		}
		text = rest[end+len(closeMarker):]
	}
}
