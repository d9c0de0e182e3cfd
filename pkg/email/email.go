// Package email holds the address check used by the profile form.
package email

import "regexp"

var pattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Valid reports whether s looks like a deliverable address: one @, no
// whitespace, and a dot in the domain part.
func Valid(s string) bool {
	return pattern.MatchString(s)
}
