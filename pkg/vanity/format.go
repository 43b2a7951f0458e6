package vanity

import "strconv"

// FormatNumber renders one vanity number as "<country code>-<text>".
func FormatNumber(countryCode int, text string) string {
	return strconv.Itoa(countryCode) + "-" + text
}

// Format renders candidates in order.
func Format(countryCode int, candidates []Candidate) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, FormatNumber(countryCode, c.Text))
	}
	return out
}
