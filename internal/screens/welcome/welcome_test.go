package welcome

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/rainbowedu/rainbow/internal/router"
	"github.com/rainbowedu/rainbow/internal/screen"
	"github.com/rainbowedu/rainbow/internal/ui/theme"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "home" }
func (s *stubScreen) Title() string                          { return "Home" }

func newCountingWelcome() (*WelcomeScreen, *int) {
	calls := 0
	return New(func() screen.Screen {
		calls++
		return &stubScreen{}
	}), &calls
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for range n {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestBandsAppearOneAtATime(t *testing.T) {
	w, _ := newCountingWelcome()
	if w.bands() != 0 {
		t.Fatalf("bands = %d at start", w.bands())
	}

	sendTicks(w, 2)
	if w.bands() != 1 {
		t.Errorf("bands = %d after 200ms, want 1", w.bands())
	}

	sendTicks(w, 6)
	if w.bands() != 4 {
		t.Errorf("bands = %d after 800ms, want 4", w.bands())
	}
	if strings.Contains(w.View(80, 24), "học số thật vui") {
		t.Error("tagline should wait for the full rainbow")
	}
}

func TestFullRainbowShowsBannerAndStopsTicking(t *testing.T) {
	w, _ := newCountingWelcome()
	ticks := len(theme.Rainbow) * int(bandDelay/tickInterval)

	if cmd := sendTicks(w, ticks-1); cmd == nil {
		t.Fatal("animation should still be ticking")
	}
	if cmd := sendTicks(w, 1); cmd == nil {
		t.Fatal("the tick that completes the rainbow still schedules one more")
	}
	if !w.done() {
		t.Fatal("rainbow should be complete")
	}
	if cmd := sendTicks(w, 1); cmd != nil {
		t.Error("ticking should stop once the rainbow is drawn")
	}

	view := w.View(80, 30)
	for _, want := range []string{"học số thật vui", "Tiếng Việt", "Toán học", "Động vật", "phím bất kỳ"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestKeypressSkipsAnimation(t *testing.T) {
	w, calls := newCountingWelcome()
	sendTicks(w, 3)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress should move on to home")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen == nil {
		t.Error("replacement screen should not be nil")
	}
	if *calls != 1 {
		t.Errorf("factory called %d times, want 1", *calls)
	}
}

func TestNoAutoTransition(t *testing.T) {
	w, calls := newCountingWelcome()
	sendTicks(w, 100)
	if *calls != 0 {
		t.Errorf("factory should not be called without a key, got %d", *calls)
	}
}

func TestFactoryCalledOnce(t *testing.T) {
	w, calls := newCountingWelcome()
	w.Update(tea.KeyPressMsg{Code: 'a'})

	if _, cmd := w.Update(tea.KeyPressMsg{Code: 'b'}); cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *calls != 1 {
		t.Errorf("factory called %d times, want 1", *calls)
	}
}

func TestRenderArc(t *testing.T) {
	arc := renderArc(3, 40)
	if got := len(strings.Split(arc, "\n")); got != len(theme.Rainbow) {
		t.Errorf("arc has %d lines, want %d", got, len(theme.Rainbow))
	}
	if got := strings.Count(arc, "▀"); got != 40+36+32 {
		t.Errorf("arc drew %d cells, want %d", got, 40+36+32)
	}
}

func TestTitleEmpty(t *testing.T) {
	w, _ := newCountingWelcome()
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}

func TestRenderBanner_CompactOnNarrowTerminal(t *testing.T) {
	if strings.Contains(RenderBanner(20), "█") {
		t.Error("narrow terminals should get the compact banner")
	}
	if !strings.Contains(RenderBanner(80), "█") {
		t.Error("wide terminals should get the block banner")
	}
}
