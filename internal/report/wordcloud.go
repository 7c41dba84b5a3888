package report

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spacesedan/aspectflow/internal/models"
)

const wordCloudWidth = 80

var (
	cloudBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(wordCloudWidth)

	// tiers go from the most to the least frequent words.
	cloudTiers = []lipgloss.Style{
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
)

// RenderWordCloud styles each word by how often it appears relative to the
// most frequent one. Words keep their frequency order.
func RenderWordCloud(words models.KeywordCounts) string {
	if len(words) == 0 {
		return ""
	}
	top := words[0].Count

	parts := make([]string, 0, len(words))
	for _, w := range words {
		tier := len(cloudTiers) - 1 - (w.Count*len(cloudTiers)-1)/top
		if tier < 0 {
			tier = 0
		}
		text := w.Keyword
		if tier == 0 {
			text = strings.ToUpper(text)
		}
		parts = append(parts, cloudTiers[tier].Render(text))
	}
	return cloudBorder.Render(strings.Join(parts, "  "))
}

// ShowWordCloud prints the cloud to w. Nothing is printed for an empty set.
func ShowWordCloud(w io.Writer, words models.KeywordCounts) {
	cloud := RenderWordCloud(words)
	if cloud == "" {
		return
	}
	io.WriteString(w, cloud+"\n")
}
