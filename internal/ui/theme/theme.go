package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette: kid-friendly, bright but not garish.
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate

	ArcadeYellow = lipgloss.Color("#FACC15") // Sunflower
	ArcadeCyan   = lipgloss.Color("#22D3EE") // Sky
)

// Rainbow is the seven-band palette used for the banner and subject accents.
var Rainbow = []color.Color{
	lipgloss.Color("#EF4444"),
	lipgloss.Color("#F97316"),
	lipgloss.Color("#FACC15"),
	lipgloss.Color("#22C55E"),
	lipgloss.Color("#3B82F6"),
	lipgloss.Color("#6366F1"),
	lipgloss.Color("#A855F7"),
}

// SubjectColor returns the accent for the i-th subject in display order.
func SubjectColor(i int) color.Color {
	accents := []color.Color{Accent, Secondary, Success}
	return accents[((i%len(accents))+len(accents))%len(accents)]
}

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)

// Unit chips on the lesson screen.
var (
	UnitStudied = lipgloss.NewStyle().
			Foreground(BgDark).
			Background(Success).
			Bold(true).
			Padding(0, 1)

	UnitPending = lipgloss.NewStyle().
			Foreground(Text).
			Background(BgCard).
			Padding(0, 1)

	UnitCursor = lipgloss.NewStyle().
			Foreground(BgDark).
			Background(ArcadeYellow).
			Bold(true).
			Padding(0, 1)
)
