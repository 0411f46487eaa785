package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rainbowedu/rainbow/internal/progress"
	"github.com/rainbowedu/rainbow/internal/router"
	"github.com/rainbowedu/rainbow/internal/screens/home"
	"github.com/rainbowedu/rainbow/internal/store"
)

func newModel(t *testing.T) AppModel {
	t.Helper()
	logger, _ := test.NewNullLogger()
	tr := progress.New(store.NewMemoryKV(), progress.WithLogger(logger))
	tr.Load(context.Background())
	m := newAppModel(Options{Tracker: tr})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(AppModel)
}

// drive feeds msg to the model and runs any resulting navigation command.
func drive(m AppModel, msg tea.Msg) AppModel {
	updated, cmd := m.Update(msg)
	m = updated.(AppModel)
	if cmd == nil {
		return m
	}
	switch next := cmd().(type) {
	case router.ReplaceScreenMsg, router.PushScreenMsg, router.PopScreenMsg:
		updated, _ = m.Update(next)
		m = updated.(AppModel)
	}
	return m
}

func TestStartsOnWelcome(t *testing.T) {
	m := newModel(t)
	assert.NotNil(t, m.Init(), "welcome animation should tick")
	assert.Equal(t, "", m.router.Active().Title())
}

func TestKeypressOpensHome(t *testing.T) {
	m := newModel(t)
	m = drive(m, tea.KeyPressMsg{Code: tea.KeyEnter})

	_, ok := m.router.Active().(*home.HomeScreen)
	require.True(t, ok, "expected home screen, got %T", m.router.Active())
	assert.Equal(t, 1, m.router.Depth())

	assert.Equal(t, "Trang chủ", m.router.Active().Title())
	hints := m.footerHints(m.router.Active())
	require.NotEmpty(t, hints)
	assert.Equal(t, "Chọn bài", hints[0].Description, "footer should use the screen's key hints")
	assert.True(t, strings.Contains(m.router.View(100, 30), "Tổng"), "home should show the overview")
}

func TestEscReturnsFromLesson(t *testing.T) {
	m := newModel(t)
	m = drive(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	m = drive(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	require.Equal(t, 2, m.router.Depth(), "enter on home should open a lesson")

	m = drive(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, 1, m.router.Depth())
}

func TestCtrlCQuits(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestFooterHints_Fallback(t *testing.T) {
	m := newModel(t)
	hints := m.footerHints(m.router.Active())
	require.Len(t, hints, 2)
	assert.Equal(t, "Bắt đầu", hints[0].Description)
}

func TestRun_RequiresTracker(t *testing.T) {
	assert.Error(t, Run(Options{}))
}
