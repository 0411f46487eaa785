package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rainbowedu/rainbow/internal/progress"
	"github.com/rainbowedu/rainbow/internal/router"
	"github.com/rainbowedu/rainbow/internal/screen"
	"github.com/rainbowedu/rainbow/internal/screens/home"
	"github.com/rainbowedu/rainbow/internal/screens/welcome"
	"github.com/rainbowedu/rainbow/internal/ui/layout"
)

// Options holds the dependencies the TUI needs.
type Options struct {
	Tracker *progress.Tracker
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	tracker *progress.Tracker
	width   int
	height  int
}

// newAppModel starts on the welcome splash, which hands over to home.
func newAppModel(opts Options) AppModel {
	tracker := opts.Tracker
	splash := welcome.New(func() screen.Screen { return home.New(tracker) })
	return AppModel{
		router:  router.New(splash),
		tracker: tracker,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(layout.Status{
		Title:           title,
		OverallProgress: m.tracker.Overall().OverallProgress,
		Streak:          m.tracker.Streak(),
	}, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Quay lại"},
			{Key: "Ctrl+C", Description: "Thoát"},
		}
	}
	return []layout.KeyHint{
		{Key: "Phím bất kỳ", Description: "Bắt đầu"},
		{Key: "Ctrl+C", Description: "Thoát"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Tracker == nil {
		return fmt.Errorf("app: tracker is required")
	}
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
