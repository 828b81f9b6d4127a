package components

import (
	"charm.land/lipgloss/v2"

	"github.com/dmaze/dungeonmaze/internal/ui/theme"
)

// CenterOverlay places a double-bordered card in the middle of the
// content area, for pause / confirm / summary dialogs.
func CenterOverlay(content string, width, height int) string {
	card := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Padding(1, 3).
		Align(lipgloss.Center).
		Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
