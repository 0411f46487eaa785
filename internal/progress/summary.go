package progress

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/rainbowedu/rainbow/internal/curriculum"
)

// SubjectSummary is the read-only view of one subject that views render.
type SubjectSummary struct {
	Subject           curriculum.Subject
	TotalLessons      int
	CompletedLessons  int
	InProgressLessons int
	OverallProgress   int
	AverageScore      int
	TotalTimeSpent    int
	// NextLesson is the first incomplete lesson in catalogue order, empty
	// when every lesson is complete.
	NextLesson string
	Lessons    map[string]LessonRecord
}

// Recommendation names the lesson a learner should take next.
type Recommendation struct {
	Subject  curriculum.Subject
	LessonID string
	Lesson   LessonRecord
}

// SubjectSummary computes the summary for subject.
func (t *Tracker) SubjectSummary(subject curriculum.Subject) (SubjectSummary, error) {
	if !t.catalog.HasSubject(subject) {
		return SubjectSummary{}, fmt.Errorf("%w: %q", ErrUnknownSubject, subject)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.summary(subject), nil
}

// AllSummaries returns one summary per subject in display order.
func (t *Tracker) AllSummaries() []SubjectSummary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return lo.Map(curriculum.AllSubjects(), func(s curriculum.Subject, _ int) SubjectSummary {
		return t.summary(s)
	})
}

// RecommendedLesson returns the first incomplete lesson scanning subjects in
// order (vietnamese, math, animal), or nil when everything is complete.
func (t *Tracker) RecommendedLesson() *Recommendation {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, subj := range curriculum.AllSubjects() {
		for _, l := range t.catalog.Lessons(subj) {
			rec := t.snap.Subjects[subj].Lessons[l.ID]
			if !rec.Completed {
				return &Recommendation{Subject: subj, LessonID: l.ID, Lesson: rec.Clone()}
			}
		}
	}
	return nil
}

func (t *Tracker) summary(subject curriculum.Subject) SubjectSummary {
	sp := t.snap.Subjects[subject]
	lessons := t.catalog.Lessons(subject)
	records := lo.Map(lessons, func(l curriculum.Lesson, _ int) *LessonRecord {
		return sp.Lessons[l.ID]
	})

	scored := lo.Filter(records, func(r *LessonRecord, _ int) bool {
		return r.Completed || r.Score > 0
	})
	avg := 0
	if len(scored) > 0 {
		total := lo.SumBy(scored, func(r *LessonRecord) int { return r.Score })
		avg = roundInt(float64(total) / float64(len(scored)))
	}

	next := ""
	if l, ok := lo.Find(lessons, func(l curriculum.Lesson) bool {
		return !sp.Lessons[l.ID].Completed
	}); ok {
		next = l.ID
	}

	detail := make(map[string]LessonRecord, len(records))
	for i, r := range records {
		detail[lessons[i].ID] = r.Clone()
	}

	return SubjectSummary{
		Subject:           subject,
		TotalLessons:      sp.TotalLessons,
		CompletedLessons:  lo.CountBy(records, func(r *LessonRecord) bool { return r.Completed }),
		InProgressLessons: lo.CountBy(records, func(r *LessonRecord) bool { return r.InProgress() }),
		OverallProgress:   sp.OverallProgress,
		AverageScore:      avg,
		TotalTimeSpent:    lo.SumBy(records, func(r *LessonRecord) int { return r.TimeSpent }),
		NextLesson:        next,
		Lessons:           detail,
	}
}

// MotivationalMessage returns the encouragement shown above the overall
// progress figure.
func MotivationalMessage(overallProgress int) string {
	switch {
	case overallProgress >= 100:
		return "🎉 Xuất sắc! Bạn đã hoàn thành tất cả!"
	case overallProgress >= 75:
		return "🌟 Rất tốt! Sắp hoàn thành rồi!"
	case overallProgress >= 50:
		return "💪 Tuyệt vời! Đã hoàn thành hơn một nửa!"
	case overallProgress >= 25:
		return "🚀 Tiếp tục cố gắng! Bạn đang làm rất tốt!"
	default:
		return "🌱 Hãy bắt đầu hành trình học tập thú vị!"
	}
}
