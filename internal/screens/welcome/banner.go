package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/triviaz/internal/ui/theme"
)

const bannerArt = ` _____ ____  _____     _____    _     _____
|_   _|  _ \|_ _\ \   / /_ _|  / \   |__  /
  | | | |_) || | \ \ / / | |  / _ \    / /
  | | |  _ < | |  \ V /  | | / ___ \  / /_
  |_| |_| \_\___|  \_/  |___/_/   \_\/____|`

const bannerCompact = "T R I V I A Z"

// RenderBanner returns the splash wordmark, falling back to spaced letters
// below 46 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 46 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
