package cli

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

var (
	currentStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00AAFF"))

	indexStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)
)

// listLine renders one numbered entry, marking the current one
func listLine(index int, text string, current bool) string {
	marker := " "
	style := lipgloss.NewStyle()
	if current {
		marker = "*"
		style = currentStyle
	}
	return marker + " " + indexStyle.Render(strconv.Itoa(index)+":") + " " + style.Render(text)
}
