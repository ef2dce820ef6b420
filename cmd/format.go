package cmd

import (
	"fmt"
	"strings"

	"github.com/Tiliavir/mood-journal/internal/model"
)

func formatElapsed(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// moodBar renders a mood as a ten-slot bar, e.g. "███████░░░ 7.5".
func moodBar(mood float64) string {
	filled := int(mood + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled) + fmt.Sprintf(" %.1f", mood)
}

// preview returns the first line of content shortened to limit runes.
func preview(content string, limit int) string {
	line, _, _ := strings.Cut(strings.TrimSpace(content), "\n")
	r := []rune(line)
	if len(r) <= limit {
		return line
	}
	return string(r[:limit-1]) + "…"
}

func mediaSummary(e model.DiaryEntry) string {
	var parts []string
	if n := len(e.Images); n > 0 {
		parts = append(parts, plural(n, "image"))
	}
	if n := len(e.VideoRefs); n > 0 {
		parts = append(parts, plural(n, "video"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
