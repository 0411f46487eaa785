package lesson

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/rainbowedu/rainbow/internal/curriculum"
	"github.com/rainbowedu/rainbow/internal/progress"
	"github.com/rainbowedu/rainbow/internal/router"
	"github.com/rainbowedu/rainbow/internal/screen"
	"github.com/rainbowedu/rainbow/internal/screens/summary"
	"github.com/rainbowedu/rainbow/internal/ui/layout"
)

const tickInterval = time.Second

type tickMsg time.Time

// LessonScreen is where a learner studies one lesson. Sequenced lessons show
// one group of units at a time; selecting a unit records it as studied along
// with the time since the previous one. Simple lessons show their cards and
// complete on Enter with the elapsed time.
type LessonScreen struct {
	tracker *progress.Tracker
	lesson  curriculum.Lesson
	ctx     context.Context

	// Sequenced lessons.
	group  int
	cursor int
	banner string

	timer *progress.LessonTimer

	// Simple lessons.
	card int
	seen map[int]bool

	status string
	err    error
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)

// New opens lessonID of subject. A sequenced lesson starts at its resume
// position; a simple lesson starts its timer.
func New(tracker *progress.Tracker, subject curriculum.Subject, lessonID string) *LessonScreen {
	s := &LessonScreen{tracker: tracker, ctx: context.Background(), seen: map[int]bool{}}

	l, err := tracker.Catalog().Lesson(subject, lessonID)
	if err != nil {
		s.err = err
		return s
	}
	s.lesson = l

	if l.Sequenced() {
		pos, err := tracker.FindLessonResumePosition(subject, lessonID)
		if err != nil {
			s.err = err
			return s
		}
		s.moveTo(pos)
		s.timer, s.err = tracker.StartLesson(subject, lessonID)
		return s
	}

	s.timer, s.err = tracker.StartLesson(subject, lessonID)
	s.seen[0] = true
	return s
}

func (s *LessonScreen) Init() tea.Cmd {
	if s.timer == nil || s.lesson.Sequenced() {
		return nil
	}
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (s *LessonScreen) Title() string {
	if s.lesson.ID == "" {
		return "Bài học"
	}
	return fmt.Sprintf("%s · Bài %s", curriculum.SubjectDisplayName(s.lesson.Subject), s.lesson.ID)
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	if s.lesson.Sequenced() {
		return []layout.KeyHint{
			{Key: "←→", Description: "Chữ/số"},
			{Key: "↑↓", Description: "Nhóm"},
			{Key: "Enter", Description: "Đã học"},
			{Key: "r", Description: "Tiếp tục"},
			{Key: "Esc", Description: "Quay lại"},
		}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Thẻ"},
		{Key: "Enter", Description: "Hoàn thành"},
		{Key: "Esc", Description: "Quay lại"},
	}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if s.timer != nil && !s.lesson.Sequenced() {
			return s, tick()
		}
		return s, nil
	case tea.KeyMsg:
		if s.err != nil && s.lesson.ID == "" {
			return s, nil
		}
		if s.lesson.Sequenced() {
			return s, s.updateSequenced(msg.String())
		}
		return s, s.updateSimple(msg.String())
	}
	return s, nil
}

func (s *LessonScreen) updateSequenced(key string) tea.Cmd {
	units := s.lesson.Groups[s.group].Units
	switch key {
	case "left", "h":
		if s.cursor > 0 {
			s.cursor--
		}
	case "right", "l":
		if s.cursor < len(units)-1 {
			s.cursor++
		}
	case "up", "k", "shift+tab":
		if s.group > 0 {
			s.group--
			s.cursor = 0
		}
	case "down", "j", "tab":
		if s.group < len(s.lesson.Groups)-1 {
			s.group++
			s.cursor = 0
		}
	case "r":
		pos, err := s.tracker.FindLessonResumePosition(s.lesson.Subject, s.lesson.ID)
		if err != nil {
			s.err = err
			return nil
		}
		s.moveTo(pos)
	case "enter", "space", " ":
		return s.study()
	}
	return nil
}

// study records the unit under the cursor and advances within the group.
func (s *LessonScreen) study() tea.Cmd {
	unit := s.lesson.Groups[s.group].Units[s.cursor]
	before, _ := s.tracker.LessonProgress(s.lesson.Subject, s.lesson.ID)

	sum, err := s.timer.Study(s.ctx, unit, s.group)
	if err != nil {
		s.err = err
		return nil
	}
	s.err = nil
	s.banner = ""
	s.status = fmt.Sprintf("Đã học %s", unit)

	rec := sum.Lessons[s.lesson.ID]
	if rec.Completed && !before.Completed {
		return s.showResult(rec, sum, s.timer.Elapsed())
	}

	if s.cursor < len(s.lesson.Groups[s.group].Units)-1 {
		s.cursor++
	} else if pos, err := s.tracker.FindLessonResumePosition(s.lesson.Subject, s.lesson.ID); err == nil && pos != nil && pos.GroupIndex != s.group {
		s.moveTo(pos)
		s.status = fmt.Sprintf("Đã học %s · Hoàn thành nhóm! Chuyển sang %s", unit, s.lesson.Groups[s.group].Name)
	}
	return nil
}

func (s *LessonScreen) updateSimple(key string) tea.Cmd {
	switch key {
	case "left", "h":
		if s.card > 0 {
			s.card--
		}
	case "right", "l", "space", " ":
		if s.card < len(s.lesson.Cards)-1 {
			s.card++
			s.seen[s.card] = true
		}
	case "enter":
		if s.timer == nil {
			return nil
		}
		elapsed := s.timer.Elapsed()
		sum, _, err := s.timer.Finish(s.ctx, s.cardScore())
		if err != nil {
			s.err = err
			return nil
		}
		s.timer = nil
		return s.showResult(sum.Lessons[s.lesson.ID], sum, elapsed)
	}
	return nil
}

// cardScore is the share of cards viewed, 100 for lessons without cards.
func (s *LessonScreen) cardScore() int {
	if len(s.lesson.Cards) == 0 {
		return 100
	}
	return int(math.Round(float64(len(s.seen)) / float64(len(s.lesson.Cards)) * 100))
}

func (s *LessonScreen) showResult(rec progress.LessonRecord, sum progress.SubjectSummary, elapsed int) tea.Cmd {
	result := summary.Result{
		Subject:  s.lesson.Subject,
		LessonID: s.lesson.ID,
		Title:    s.lesson.Title,
		Record:   rec,
		Summary:  sum,
		Overall:  s.tracker.Overall(),
		Elapsed:  elapsed,
	}
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: summary.New(result)}
	}
}

// moveTo places the cursor at pos and sets the resume banner. A nil pos
// means every unit has been studied.
func (s *LessonScreen) moveTo(pos *progress.ResumePosition) {
	if pos == nil {
		s.group, s.cursor = 0, 0
		s.banner = "Bạn đã học hết bài này. Ôn lại bất kỳ chữ nào nhé!"
		return
	}
	s.group = pos.GroupIndex
	s.cursor = max(slices.Index(s.lesson.Groups[pos.GroupIndex].Units, pos.Unit), 0)
	s.banner = resumeBanner(pos, s.lesson.Groups[pos.GroupIndex].Name)
}

func resumeBanner(pos *progress.ResumePosition, groupName string) string {
	switch pos.Reason {
	case progress.ReasonGroupCompleted:
		return fmt.Sprintf("🎉 Đã xong nhóm trước! Bắt đầu %s với %s", groupName, pos.Unit)
	case progress.ReasonResumeSaved:
		return fmt.Sprintf("👋 Tiếp tục từ %s trong %s", pos.Unit, groupName)
	default:
		return fmt.Sprintf("🌱 Bắt đầu với %s", pos.Unit)
	}
}
