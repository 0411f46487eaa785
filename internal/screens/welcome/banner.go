package welcome

import (
	"github.com/rainbowedu/rainbow/internal/ui/components"
)

const bannerArt = `█▀█ ▄▀█ █ █▄ █ █▄▄ █▀█ █ █ █
█▀▄ █▀█ █ █ ▀█ █▄█ █▄█ ▀▄▀▄▀`

const bannerCompact = "R A I N B O W"

// RenderBanner returns the RAINBOW banner in rainbow colors.
// Uses a compact fallback for terminals narrower than 32 columns.
func RenderBanner(width int) string {
	if width < 32 {
		return components.RainbowText(bannerCompact)
	}
	return components.RainbowText(bannerArt)
}
