package profile

import "strings"

// FormatPhone turns eleven digits starting with 7 into "+7 (XXXX) XX-XX-XX".
// Anything else is returned unchanged.
func FormatPhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	d := b.String()
	if len(d) != 11 || d[0] != '7' {
		return raw
	}
	return "+7 (" + d[1:5] + ") " + d[5:7] + "-" + d[7:9] + "-" + d[9:11]
}
