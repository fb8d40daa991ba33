// Package slug derives URL identifiers from display names.
package slug

import (
	"crypto/rand"
	"regexp"
	"strings"
)

var (
	nonWordRe    = regexp.MustCompile(`[^a-z0-9-]+`)
	multiDashRe  = regexp.MustCompile(`-{2,}`)
	suffixRunes  = []rune("abcdefghijklmnopqrstuvwxyz0123456789")
	suffixLength = 5
)

// Make lowercases the name, replaces whitespace with hyphens and strips the
// remaining non word characters.
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.Join(strings.Fields(s), "-")
	s = nonWordRe.ReplaceAllString(s, "")
	s = multiDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// WithRandomSuffix appends a short random suffix, used to step around
// uniqueness conflicts on insert.
func WithRandomSuffix(base string) string {
	buf := make([]byte, suffixLength)
	_, _ = rand.Read(buf)
	suffix := make([]rune, suffixLength)
	for i, b := range buf {
		suffix[i] = suffixRunes[int(b)%len(suffixRunes)]
	}
	if base == "" {
		return string(suffix)
	}
	return base + "-" + string(suffix)
}
