package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rainbowedu/rainbow/internal/curriculum"
	"github.com/rainbowedu/rainbow/internal/router"
	"github.com/rainbowedu/rainbow/internal/screen"
	"github.com/rainbowedu/rainbow/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	// bandDelay is how long each rainbow band takes to appear.
	bandDelay = 200 * time.Millisecond
)

// subjectBadges introduces what there is to learn, in subject order.
var subjectBadges = map[curriculum.Subject]string{
	curriculum.SubjectVietnamese: "🔤",
	curriculum.SubjectMath:       "🔢",
	curriculum.SubjectAnimal:     "🐾",
}

type tickMsg time.Time

// WelcomeScreen draws a rainbow one band at a time, then shows the banner
// and the subjects. Any key moves on to home.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by homeFactory.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{homeFactory: homeFactory}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.done() {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

// bands is the number of rainbow bands drawn so far.
func (w *WelcomeScreen) bands() int {
	return min(int(w.elapsed/bandDelay), len(theme.Rainbow))
}

func (w *WelcomeScreen) done() bool {
	return w.bands() == len(theme.Rainbow)
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{renderArc(w.bands(), min(width-4, 40))}

	if w.done() {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Cùng học chữ, học số thật vui!"),
			renderSubjects(),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("nhấn phím bất kỳ để bắt đầu"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}

// renderArc draws the first n bands of a rainbow arc, outermost first. Each
// band is two columns narrower on each side than the one above it.
func renderArc(n, width int) string {
	lines := make([]string, len(theme.Rainbow))
	for i, c := range theme.Rainbow {
		inner := max(width-4*i, 2)
		if i >= n {
			lines[i] = strings.Repeat(" ", inner)
			continue
		}
		lines[i] = lipgloss.NewStyle().Foreground(c).Render(strings.Repeat("▀", inner))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func renderSubjects() string {
	parts := make([]string, 0, len(curriculum.AllSubjects()))
	for i, s := range curriculum.AllSubjects() {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.SubjectColor(i)).
			Render(subjectBadges[s]+" "+curriculum.SubjectDisplayName(s)))
	}
	return strings.Join(parts, "   ")
}
