package curriculum

import "slices"

// Subject is a top-level curriculum category.
type Subject string

const (
	SubjectVietnamese Subject = "vietnamese"
	SubjectMath       Subject = "math"
	SubjectAnimal     Subject = "animal"
)

// AllSubjects returns all subjects in display and recommendation order.
func AllSubjects() []Subject {
	return []Subject{
		SubjectVietnamese,
		SubjectMath,
		SubjectAnimal,
	}
}

// ParseSubject converts a string to a known Subject.
func ParseSubject(s string) (Subject, bool) {
	for _, subj := range AllSubjects() {
		if string(subj) == s {
			return subj, true
		}
	}
	return "", false
}

// SubjectDisplayName returns a human-readable name for a subject.
func SubjectDisplayName(s Subject) string {
	switch s {
	case SubjectVietnamese:
		return "Tiếng Việt"
	case SubjectMath:
		return "Toán học"
	case SubjectAnimal:
		return "Động vật"
	default:
		return string(s)
	}
}

// Kind distinguishes lessons tracked only by completion from lessons tracked
// unit by unit.
type Kind int

const (
	KindSimple    Kind = iota // Completion, score and time only
	KindSequenced             // Ordered groups of units (letters, digits)
)

// Group is an ordered run of units within a sequenced lesson.
type Group struct {
	Name  string
	Units []string
}

// Complete reports whether every unit of the group is in studied.
func (g Group) Complete(studied map[string]bool) bool {
	for _, u := range g.Units {
		if !studied[u] {
			return false
		}
	}
	return true
}

// FirstIncomplete returns the earliest unit of the group not in studied.
func (g Group) FirstIncomplete(studied map[string]bool) (string, bool) {
	for _, u := range g.Units {
		if !studied[u] {
			return u, true
		}
	}
	return "", false
}

// Lesson is an addressable unit of content within a subject.
type Lesson struct {
	ID      string
	Subject Subject
	Title   string
	Kind    Kind
	Groups  []Group
	// Cards is the browsable content of a simple lesson. It is not tracked.
	Cards []Card
}

// Card is one flashcard of a simple lesson.
type Card struct {
	Name  string
	Sound string
}

// Sequenced reports whether the lesson is tracked unit by unit.
func (l Lesson) Sequenced() bool {
	return l.Kind == KindSequenced
}

// TotalUnits returns the number of units across all groups.
func (l Lesson) TotalUnits() int {
	n := 0
	for _, g := range l.Groups {
		n += len(g.Units)
	}
	return n
}

// HasUnit reports whether unit belongs to any group of the lesson.
func (l Lesson) HasUnit(unit string) bool {
	_, ok := l.GroupOf(unit)
	return ok
}

// GroupOf returns the index of the group that holds unit.
func (l Lesson) GroupOf(unit string) (int, bool) {
	for i, g := range l.Groups {
		if slices.Contains(g.Units, unit) {
			return i, true
		}
	}
	return 0, false
}

// FirstIncomplete scans groups in order and returns the first group holding a
// unit not in studied, together with that group's earliest such unit.
func (l Lesson) FirstIncomplete(studied map[string]bool) (int, string, bool) {
	for i, g := range l.Groups {
		if u, ok := g.FirstIncomplete(studied); ok {
			return i, u, true
		}
	}
	return 0, "", false
}
