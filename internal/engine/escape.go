package engine

import "html"

// EscapeValues returns a copy of values with every value HTML-escaped.
// Escaping is a separate step between value collection and substitution:
// Merge itself treats values as opaque strings, so callers rendering into an
// HTML editor escape first, while plain-text callers skip this entirely.
func EscapeValues(values map[string]string) map[string]string {
	if values == nil {
		return nil
	}
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = html.EscapeString(v)
	}
	return out
}
