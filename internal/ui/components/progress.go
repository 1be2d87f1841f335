package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/saturogrp-blip/Grand/internal/ui/theme"
)

// ProgressBar shows how far through a list the user is.
type ProgressBar struct {
	Current int // 1-based position
	Total   int
	Width   int
}

// Fraction is Current/Total clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Current) / float64(p.Total)
	return min(max(f, 0), 1)
}

// View renders the bar followed by "current/total".
func (p ProgressBar) View() string {
	count := fmt.Sprintf("  %d/%d", p.Current, p.Total)
	barWidth := max(p.Width-lipgloss.Width(count), 4)

	filled := int(float64(barWidth) * p.Fraction())
	return theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled)) +
		theme.Hint.Render(count)
}
