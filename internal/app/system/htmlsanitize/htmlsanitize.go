// Package htmlsanitize strips markup from user-supplied strings before
// they are stored. Custom task names are the only free-text field that
// reaches other members' browsers, so they pass through the strict
// policy (no tags at all).
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var strict = bluemonday.StrictPolicy()

// Plain removes all HTML from s, leaving only text content.
func Plain(s string) string {
	return strict.Sanitize(s)
}
