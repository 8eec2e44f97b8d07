// Package htmlsanitize strips dangerous markup from user-generated content
// (review comments, product descriptions) before it is stored.
package htmlsanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

// policy allows common formatting, links, and tables; scripts, event
// handlers, and javascript: URLs are removed.
var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
	return p
}()

// Sanitize returns s with unsafe HTML removed. Plain text passes through
// unchanged.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}
