package progress

import (
	"context"
	"time"

	"github.com/rainbowedu/rainbow/internal/curriculum"
)

// LessonTimer measures time spent in one lesson from StartLesson until Finish.
// For sequenced lessons, Study records each unit with the time since the
// previous one.
type LessonTimer struct {
	tracker  *Tracker
	subject  curriculum.Subject
	lessonID string
	started  time.Time
	lap      time.Time
}

// StartLesson starts timing a lesson.
func (t *Tracker) StartLesson(subject curriculum.Subject, lessonID string) (*LessonTimer, error) {
	if _, err := t.catalog.Lesson(subject, lessonID); err != nil {
		return nil, err
	}
	now := t.now()
	return &LessonTimer{
		tracker:  t,
		subject:  subject,
		lessonID: lessonID,
		started:  now,
		lap:      now,
	}, nil
}

// Elapsed returns the whole seconds since the timer started.
func (lt *LessonTimer) Elapsed() int {
	return int(lt.tracker.now().Sub(lt.started).Round(time.Second) / time.Second)
}

// Finish completes the lesson with score and the elapsed time.
func (lt *LessonTimer) Finish(ctx context.Context, score int) (SubjectSummary, OverallRecord, error) {
	return lt.tracker.CompleteLesson(ctx, lt.subject, lt.lessonID, score, lt.Elapsed())
}

// Study records unitID as studied in group and adds the seconds since the
// previous Study call, or since the timer started, to the lesson's time.
func (lt *LessonTimer) Study(ctx context.Context, unitID string, group int) (SubjectSummary, error) {
	now := lt.tracker.now()
	seconds := int(now.Sub(lt.lap).Round(time.Second) / time.Second)
	sum, err := lt.tracker.RecordUnitStudiedFor(ctx, lt.subject, lt.lessonID, unitID, group, seconds)
	if err != nil {
		return sum, err
	}
	lt.lap = now
	return sum, nil
}
