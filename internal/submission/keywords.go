package submission

import "strings"

// NormalizeKeywords cleans a raw keyword list: lowercases, trims whitespace
// and stray punctuation, splits semicolon-joined entries, and drops empties
// and duplicates while preserving first-seen order.
func NormalizeKeywords(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	var out []string

	for _, kw := range raw {
		// Some venues pack several keywords into one semicolon-separated entry.
		for _, part := range strings.Split(kw, ";") {
			k := normalizeKeyword(part)
			if k == "" || seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// normalizeKeyword canonicalizes a single keyword.
func normalizeKeyword(kw string) string {
	k := strings.ToLower(strings.TrimSpace(kw))
	k = strings.Trim(k, ".,:")
	// Collapse internal runs of whitespace
	k = strings.Join(strings.Fields(k), " ")
	return k
}
