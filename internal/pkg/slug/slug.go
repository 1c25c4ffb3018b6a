// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonWord matches runs of anything that isn't a word character or a space.
	nonWord = regexp.MustCompile(`[^\w ]+`)
	// spaces matches runs of spaces left after stripping.
	spaces = regexp.MustCompile(` +`)
)

// Make derives a slug from a name: lowercase, non-word characters stripped,
// space runs collapsed to single hyphens.
// Example: "Tech & Life" → "tech-life".
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonWord.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, "-")
	return s
}
