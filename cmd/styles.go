package cmd

import "github.com/charmbracelet/lipgloss"

var (
	colorCyan   = lipgloss.Color("#00FFFF")
	colorGray   = lipgloss.Color("#666666")
	colorGreen  = lipgloss.Color("#00FF00")
	colorYellow = lipgloss.Color("#FFFF00")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	labelStyle = lipgloss.NewStyle().
			Width(14).
			Foreground(colorGray)

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	moodStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorGreen).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorCyan)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorGray)
)
