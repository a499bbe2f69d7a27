package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/climassist/internal/ui/theme"
)

const bannerArt = `  ___ _ _         _            _    _
 / __| (_)_ __   /_\  ___ _ _ (_)__| |_
| (__| | | '  \ / _ \(_-<(_-<| (_-<  _|
 \___|_|_|_|_|_/_/ \_\/__//__/|_/__/\__|`

const bannerCompact = "C L I M A S S I S T"

// BannerMinWidth is the narrowest width that fits the full banner.
const BannerMinWidth = 44

// Banner returns the ClimAssist banner styled in the primary color. Narrow
// widths or compact get the one-line fallback.
func Banner(width int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if compact || width < BannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
