package engine

// MergeResult holds the substituted markup and the keys that stayed
// unresolved. Unresolved tokens remain literal in Content so the caller can
// prompt the user for the missing values.
type MergeResult struct {
	Content    string   `json:"content"`
	Unresolved []string `json:"unresolved"`
}

// Merge substitutes every placeholder occurrence in markup with its resolved
// value. The effective value for a key is manual[key] if present and
// non-empty, otherwise autoFill[key] if present, otherwise the key is
// unresolved and the literal {{key}} token is kept.
//
// Merge is pure: same inputs always produce the same output, no I/O.
func Merge(markup string, autoFill, manual map[string]string) MergeResult {
	keys := Extract(markup)
	resolved := make(map[string]string, len(keys))
	unresolved := make([]string, 0)

	for _, key := range keys {
		if v, ok := manual[key]; ok && v != "" {
			resolved[key] = v
			continue
		}
		if v, ok := autoFill[key]; ok {
			resolved[key] = v
			continue
		}
		unresolved = append(unresolved, key)
	}

	content := placeholderPattern.ReplaceAllStringFunc(markup, func(token string) string {
		key := token[2 : len(token)-2]
		if v, ok := resolved[key]; ok {
			return v
		}
		return token
	})

	return MergeResult{Content: content, Unresolved: unresolved}
}
