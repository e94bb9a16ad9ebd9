package slug

import (
	"fmt"
	"strings"
	"unicode"
)

// Make lowercases the title, collapses whitespace runs to single hyphens and
// drops every rune outside [a-z0-9-]. Hyphens never lead or trail.
func Make(title string) string {
	var b strings.Builder

	lastHyphen := true // suppress leading hyphen

	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)

			lastHyphen = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastHyphen {
				b.WriteByte('-')

				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// Dedupe returns base unchanged when it is free, otherwise base-1, base-2, ...
// until exists stops reporting a collision.
func Dedupe(base string, exists func(candidate string) bool) string {
	if !exists(base) {
		return base
	}

	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s-%d", base, counter)
		if !exists(candidate) {
			return candidate
		}
	}
}
