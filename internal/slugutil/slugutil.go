package slugutil

import (
	"fmt"
	"strings"
	"unicode"
)

// Slugify turns a title into a lowercase hyphenated slug.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// Validate checks that s already is a well-formed slug.
func Validate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("invalid slug: empty")
	}
	if Slugify(s) != s {
		return fmt.Errorf("invalid slug: %q", s)
	}
	return nil
}
