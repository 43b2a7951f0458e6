package cli

import (
	"fmt"
	"strings"

	"github.com/bastiangx/vanityserve/pkg/vanity"
	"github.com/charmbracelet/lipgloss"
)

var (
	letterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	digitStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// renderCandidates formats one line per candidate: the number with its
// words highlighted, then the score.
func renderCandidates(countryCode int, candidates []vanity.Candidate) []string {
	lines := make([]string, 0, len(candidates))
	for _, c := range candidates {
		number := highlight(c.Text)
		if countryCode > 0 {
			number = digitStyle.Render(fmt.Sprintf("%d-", countryCode)) + number
		}
		pad := max(0, 16-len(c.Text))
		lines = append(lines, fmt.Sprintf("%s%s score %s", number, strings.Repeat(" ", pad), c.Score))
	}
	return lines
}

// highlight styles letter runs and digit runs of text separately.
func highlight(text string) string {
	var b strings.Builder
	start := 0
	for i := 1; i <= len(text); i++ {
		if i < len(text) && isLetter(text[i]) == isLetter(text[start]) {
			continue
		}
		run := text[start:i]
		if isLetter(run[0]) {
			b.WriteString(letterStyle.Render(run))
		} else {
			b.WriteString(digitStyle.Render(run))
		}
		start = i
	}
	return b.String()
}

func isLetter(c byte) bool {
	return c >= 'A' && c <= 'Z'
}
