// Package normalize provides canonical forms for user-supplied fields
// before they are stored or compared.
package normalize

import "strings"

// Email lowercases and trims an email address. Member identity is the
// email Google reports, so every lookup must go through this.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// TaskName trims a custom task name. Sanitization against markup is
// separate (htmlsanitize); this only canonicalizes whitespace.
func TaskName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
