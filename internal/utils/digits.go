package utils

import (
	"strconv"
	"strings"
)

// StripDialChars drops the separators people type inside phone numbers:
// spaces, dashes, dots and parentheses. Everything else is kept so bad
// characters still reach validation.
func StripDialChars(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')', '\t':
			return -1
		}
		return r
	}, s)
}

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	str := strconv.Itoa(n)
	if n < 0 {
		return "-" + FormatWithCommas(-n)
	}
	if len(str) <= 3 {
		return str
	}

	var b strings.Builder
	for i, char := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(char)
	}
	return b.String()
}
