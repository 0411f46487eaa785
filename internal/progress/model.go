package progress

import (
	"math"
	"slices"
	"time"

	"github.com/rainbowedu/rainbow/internal/curriculum"
)

// SnapshotVersion is the current on-disk format version.
const SnapshotVersion = 1

// Snapshot is the complete learner progress, persisted as one JSON document.
type Snapshot struct {
	Version  int                                     `json:"version"`
	Revision int64                                   `json:"revision"`
	Writer   string                                  `json:"writer,omitempty"`
	Subjects map[curriculum.Subject]*SubjectProgress `json:"subjects"`
	Overall  OverallRecord                           `json:"overall"`
}

// SubjectProgress holds the lesson records of one subject and its cached
// aggregate.
type SubjectProgress struct {
	Lessons         map[string]*LessonRecord `json:"lessons"`
	TotalLessons    int                      `json:"totalLessons"`
	OverallProgress int                      `json:"overallProgress"`
}

// LessonRecord is the per-lesson state. Sequence is set exactly for lessons
// the curriculum tracks unit by unit.
type LessonRecord struct {
	Completed   bool           `json:"completed"`
	Score       int            `json:"score"`
	TimeSpent   int            `json:"timeSpent"`
	CompletedAt *time.Time     `json:"completedAt"`
	Sequence    *SequenceState `json:"sequence,omitempty"`
}

// SequenceState is the unit-level state of a sequenced lesson.
type SequenceState struct {
	Progress       float64    `json:"progress"`
	CompletedUnits []string   `json:"completedUnits"`
	CurrentUnit    string     `json:"currentUnit,omitempty"`
	CurrentGroup   *int       `json:"currentGroup"`
	LastStudiedAt  *time.Time `json:"lastStudiedAt"`
}

// OverallRecord aggregates all subjects.
type OverallRecord struct {
	TotalCompleted  int        `json:"totalCompleted"`
	TotalLessons    int        `json:"totalLessons"`
	OverallProgress int        `json:"overallProgress"`
	LastActiveDate  *time.Time `json:"lastActiveDate"`
	StreakDays      int        `json:"streakDays"`
}

// EffectiveProgress is 100 for a completed lesson and the unit progress
// otherwise.
func (r *LessonRecord) EffectiveProgress() float64 {
	if r.Completed {
		return 100
	}
	if r.Sequence != nil && r.Sequence.Progress > 0 {
		return r.Sequence.Progress
	}
	return 0
}

// InProgress reports whether the lesson has been started but not completed.
func (r *LessonRecord) InProgress() bool {
	return !r.Completed && r.Sequence != nil && r.Sequence.Progress > 0
}

// studied returns the completed units as a set.
func (s *SequenceState) studied() map[string]bool {
	set := make(map[string]bool, len(s.CompletedUnits))
	for _, u := range s.CompletedUnits {
		set[u] = true
	}
	return set
}

// newSnapshot builds the zeroed defaults for every lesson in the catalogue.
func newSnapshot(cat *curriculum.Catalog) *Snapshot {
	snap := &Snapshot{
		Version:  SnapshotVersion,
		Subjects: make(map[curriculum.Subject]*SubjectProgress),
		Overall:  OverallRecord{TotalLessons: cat.TotalLessons()},
	}
	for _, subj := range curriculum.AllSubjects() {
		lessons := cat.Lessons(subj)
		sp := &SubjectProgress{
			Lessons:      make(map[string]*LessonRecord, len(lessons)),
			TotalLessons: len(lessons),
		}
		for _, l := range lessons {
			sp.Lessons[l.ID] = newLessonRecord(l)
		}
		snap.Subjects[subj] = sp
	}
	return snap
}

func newLessonRecord(l curriculum.Lesson) *LessonRecord {
	rec := &LessonRecord{}
	if l.Sequenced() {
		rec.Sequence = &SequenceState{CompletedUnits: []string{}}
	}
	return rec
}

// normalize fits loaded data to the catalogue: missing subjects and lessons
// get defaults, unknown ones are dropped, the lesson variant follows the
// catalogue, and aggregates are recomputed.
func normalize(loaded *Snapshot, cat *curriculum.Catalog) *Snapshot {
	snap := newSnapshot(cat)
	snap.Revision = loaded.Revision
	snap.Writer = loaded.Writer
	snap.Overall.LastActiveDate = loaded.Overall.LastActiveDate
	snap.Overall.StreakDays = loaded.Overall.StreakDays

	for _, subj := range curriculum.AllSubjects() {
		src := loaded.Subjects[subj]
		if src == nil {
			continue
		}
		for _, l := range cat.Lessons(subj) {
			rec := src.Lessons[l.ID]
			if rec == nil {
				continue
			}
			snap.Subjects[subj].Lessons[l.ID] = normalizeRecord(rec, l)
		}
	}

	recompute(snap, cat)
	return snap
}

func normalizeRecord(rec *LessonRecord, l curriculum.Lesson) *LessonRecord {
	out := &LessonRecord{
		Completed:   rec.Completed,
		Score:       clamp(rec.Score, 0, 100),
		TimeSpent:   max(rec.TimeSpent, 0),
		CompletedAt: rec.CompletedAt,
	}
	if !l.Sequenced() {
		return out
	}

	seq := &SequenceState{CompletedUnits: []string{}}
	if rec.Sequence != nil {
		seen := make(map[string]bool)
		for _, u := range rec.Sequence.CompletedUnits {
			if l.HasUnit(u) && !seen[u] {
				seen[u] = true
				seq.CompletedUnits = append(seq.CompletedUnits, u)
			}
		}
		if g := rec.Sequence.CurrentGroup; g != nil && *g >= 0 && *g < len(l.Groups) {
			gi := *g
			seq.CurrentGroup = &gi
		}
		if l.HasUnit(rec.Sequence.CurrentUnit) {
			seq.CurrentUnit = rec.Sequence.CurrentUnit
		}
		seq.LastStudiedAt = rec.Sequence.LastStudiedAt
	}
	seq.Progress = unitProgress(len(seq.CompletedUnits), l.TotalUnits())
	out.Sequence = seq
	return out
}

// recompute refreshes every cached aggregate from the lesson records.
func recompute(snap *Snapshot, cat *curriculum.Catalog) {
	totalCompleted := 0
	for _, subj := range curriculum.AllSubjects() {
		sp := snap.Subjects[subj]
		sp.TotalLessons = len(cat.Lessons(subj))

		var sum float64
		for _, rec := range sp.Lessons {
			sum += rec.EffectiveProgress()
			if rec.Completed {
				totalCompleted++
			}
		}
		sp.OverallProgress = 0
		if sp.TotalLessons > 0 {
			sp.OverallProgress = roundInt(sum / float64(sp.TotalLessons))
		}
	}

	snap.Overall.TotalCompleted = totalCompleted
	snap.Overall.TotalLessons = cat.TotalLessons()
	snap.Overall.OverallProgress = 0
	if snap.Overall.TotalLessons > 0 {
		snap.Overall.OverallProgress = roundInt(float64(totalCompleted) / float64(snap.Overall.TotalLessons) * 100)
	}
}

func unitProgress(studied, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(studied) / float64(total) * 100
}

func roundInt(f float64) int {
	return int(math.Round(f))
}

func clamp(v, low, high int) int {
	return min(max(v, low), high)
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	out := *s
	out.Overall.LastActiveDate = cloneTime(s.Overall.LastActiveDate)
	out.Subjects = make(map[curriculum.Subject]*SubjectProgress, len(s.Subjects))
	for subj, sp := range s.Subjects {
		cp := *sp
		cp.Lessons = make(map[string]*LessonRecord, len(sp.Lessons))
		for id, rec := range sp.Lessons {
			r := rec.Clone()
			cp.Lessons[id] = &r
		}
		out.Subjects[subj] = &cp
	}
	return &out
}

// Clone returns a deep copy of the record.
func (r *LessonRecord) Clone() LessonRecord {
	out := *r
	out.CompletedAt = cloneTime(r.CompletedAt)
	if r.Sequence != nil {
		seq := *r.Sequence
		seq.CompletedUnits = slices.Clone(r.Sequence.CompletedUnits)
		seq.LastStudiedAt = cloneTime(r.Sequence.LastStudiedAt)
		if r.Sequence.CurrentGroup != nil {
			g := *r.Sequence.CurrentGroup
			seq.CurrentGroup = &g
		}
		out.Sequence = &seq
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
