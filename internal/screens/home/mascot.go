package home

import (
	"charm.land/lipgloss/v2"

	"github.com/rainbowedu/rainbow/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Nothing started yet
	MascotCelebrating                      // A lesson was completed today, or everything is done
	MascotEager                            // Lessons in progress waiting to be resumed
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ A 1 │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ A 1 │
└─╥═╥─┘
  ╚═╝`

const mascotEager = `┌─────┐
│ ◉ ◉ │ ♪
│  ◡  │
│ A 1 │
└─────┘`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotEager:
		art = mascotEager
		fg = theme.ArcadeCyan
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
