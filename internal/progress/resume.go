package progress

import (
	"fmt"
	"slices"

	"github.com/rainbowedu/rainbow/internal/curriculum"
)

// Reason explains how a resume position was chosen.
type Reason string

const (
	// ReasonGroupCompleted: the saved group has been finished, so the learner
	// moves on to the first group with unstudied units.
	ReasonGroupCompleted Reason = "group_completed"
	// ReasonResumeSaved: the saved cursor is still inside an unfinished group.
	ReasonResumeSaved Reason = "resume_saved_position"
	// ReasonNextUnlearned: no usable cursor; start at the first unstudied unit.
	ReasonNextUnlearned Reason = "next_unlearned"
)

// ResumePosition is where a learner reopening a lesson should land.
type ResumePosition struct {
	Subject    curriculum.Subject
	LessonID   string
	GroupIndex int
	Unit       string
	Reason     Reason
}

// FindLessonResumePosition returns where to resume a sequenced lesson, or
// nil when every unit of every group has been studied.
func (t *Tracker) FindLessonResumePosition(subject curriculum.Subject, lessonID string) (*ResumePosition, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	lesson, rec, err := t.lookup(subject, lessonID)
	if err != nil {
		return nil, err
	}
	if !lesson.Sequenced() {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotSequenced, subject, lessonID)
	}
	return resumePosition(lesson, rec.Sequence), nil
}

// FindResumePosition returns the resume position of the first sequenced
// lesson of subject, in catalogue order, that is not yet mastered. It returns
// nil when the subject has nothing left to resume.
func (t *Tracker) FindResumePosition(subject curriculum.Subject) (*ResumePosition, error) {
	if !t.catalog.HasSubject(subject) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSubject, subject)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, l := range t.catalog.Lessons(subject) {
		if !l.Sequenced() {
			continue
		}
		rec := t.snap.Subjects[subject].Lessons[l.ID]
		if pos := resumePosition(l, rec.Sequence); pos != nil {
			return pos, nil
		}
	}
	return nil, nil
}

func resumePosition(lesson curriculum.Lesson, seq *SequenceState) *ResumePosition {
	studied := seq.studied()
	pos := func(group int, unit string, reason Reason) *ResumePosition {
		return &ResumePosition{
			Subject:    lesson.Subject,
			LessonID:   lesson.ID,
			GroupIndex: group,
			Unit:       unit,
			Reason:     reason,
		}
	}

	if g, ok := savedGroup(lesson, seq); ok {
		if !lesson.Groups[g].Complete(studied) {
			return pos(g, seq.CurrentUnit, ReasonResumeSaved)
		}
		if gi, unit, ok := lesson.FirstIncomplete(studied); ok {
			return pos(gi, unit, ReasonGroupCompleted)
		}
	}

	if gi, unit, ok := lesson.FirstIncomplete(studied); ok {
		return pos(gi, unit, ReasonNextUnlearned)
	}
	return nil
}

// savedGroup returns the cursor's group when both group and unit are set and
// the unit belongs to that group.
func savedGroup(lesson curriculum.Lesson, seq *SequenceState) (int, bool) {
	if seq.CurrentGroup == nil || seq.CurrentUnit == "" {
		return 0, false
	}
	g := *seq.CurrentGroup
	if g < 0 || g >= len(lesson.Groups) || !slices.Contains(lesson.Groups[g].Units, seq.CurrentUnit) {
		return 0, false
	}
	return g, true
}
