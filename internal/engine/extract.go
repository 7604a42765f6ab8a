// Package engine implements the document assembly core: placeholder
// extraction, auto-fill/manual merging and multi-template assembly.
// Everything here is a pure function over in-memory strings and maps;
// persistence and CRM lookups live in the service layer.
package engine

import "regexp"

// placeholderPattern matches {{dotted.path}} tokens where each segment is an
// identifier. Anything else (unmatched braces, invalid characters) is treated
// as plain text.
var placeholderPattern = regexp.MustCompile(`\{\{([A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*)\}\}`)

// Extract scans markup for placeholder tokens and returns the dotted keys in
// first-occurrence order with duplicates removed. Extraction is best-effort
// and never fails on arbitrary markup; empty markup yields an empty list.
func Extract(markup string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(markup, -1)
	keys := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		key := m[1]
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}
