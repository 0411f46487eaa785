package curriculum

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrUnknownSubject = errors.New("unknown subject")
	ErrUnknownLesson  = errors.New("unknown lesson")
)

// Catalog holds the fixed set of lessons with precomputed indices.
type Catalog struct {
	lessons   []Lesson
	bySubject map[Subject][]Lesson
	byKey     map[lessonKey]*Lesson
}

type lessonKey struct {
	subject Subject
	id      string
}

// NewCatalog validates lessons and builds the indices. Lesson order within a
// subject is the order given here.
func NewCatalog(lessons []Lesson) (*Catalog, error) {
	if err := validateLessons(lessons); err != nil {
		return nil, err
	}

	c := &Catalog{
		lessons:   slices.Clone(lessons),
		bySubject: make(map[Subject][]Lesson),
		byKey:     make(map[lessonKey]*Lesson, len(lessons)),
	}
	for i := range c.lessons {
		l := c.lessons[i]
		c.byKey[lessonKey{l.Subject, l.ID}] = &c.lessons[i]
		c.bySubject[l.Subject] = append(c.bySubject[l.Subject], l)
	}
	return c, nil
}

// MustCatalog is NewCatalog for package-level literals; it panics on invalid input.
func MustCatalog(lessons []Lesson) *Catalog {
	c, err := NewCatalog(lessons)
	if err != nil {
		panic(err)
	}
	return c
}

// Lesson returns the lesson for subject and id.
func (c *Catalog) Lesson(subject Subject, id string) (Lesson, error) {
	if !c.HasSubject(subject) {
		return Lesson{}, fmt.Errorf("%w: %q", ErrUnknownSubject, subject)
	}
	l, ok := c.byKey[lessonKey{subject, id}]
	if !ok {
		return Lesson{}, fmt.Errorf("%w: %s/%s", ErrUnknownLesson, subject, id)
	}
	return *l, nil
}

// Lessons returns the lessons of a subject in catalogue order.
func (c *Catalog) Lessons(subject Subject) []Lesson {
	return slices.Clone(c.bySubject[subject])
}

// All returns every lesson, subjects in AllSubjects order.
func (c *Catalog) All() []Lesson {
	var all []Lesson
	for _, s := range AllSubjects() {
		all = append(all, c.bySubject[s]...)
	}
	return all
}

// TotalLessons returns the number of lessons across all subjects.
func (c *Catalog) TotalLessons() int {
	return len(c.lessons)
}

// HasSubject reports whether subject is one of the fixed subjects.
func (c *Catalog) HasSubject(subject Subject) bool {
	_, ok := ParseSubject(string(subject))
	return ok
}

// validateLessons performs the structural checks on a lesson set.
// Returns a combined error describing all problems found, or nil if valid.
func validateLessons(lessons []Lesson) error {
	var errs []string

	seen := make(map[lessonKey]bool, len(lessons))
	for _, l := range lessons {
		if _, ok := ParseSubject(string(l.Subject)); !ok {
			errs = append(errs, fmt.Sprintf("lesson %q has unknown subject %q", l.ID, l.Subject))
		}
		if l.ID == "" {
			errs = append(errs, fmt.Sprintf("lesson in %s has empty ID", l.Subject))
		}
		k := lessonKey{l.Subject, l.ID}
		if seen[k] {
			errs = append(errs, fmt.Sprintf("duplicate lesson %s/%s", l.Subject, l.ID))
		}
		seen[k] = true

		switch l.Kind {
		case KindSimple:
			if len(l.Groups) > 0 {
				errs = append(errs, fmt.Sprintf("simple lesson %s/%s has groups", l.Subject, l.ID))
			}
		case KindSequenced:
			if len(l.Groups) == 0 {
				errs = append(errs, fmt.Sprintf("sequenced lesson %s/%s has no groups", l.Subject, l.ID))
			}
			if len(l.Cards) > 0 {
				errs = append(errs, fmt.Sprintf("sequenced lesson %s/%s has cards", l.Subject, l.ID))
			}
			units := make(map[string]bool)
			for gi, g := range l.Groups {
				if len(g.Units) == 0 {
					errs = append(errs, fmt.Sprintf("lesson %s/%s group %d is empty", l.Subject, l.ID, gi))
				}
				for _, u := range g.Units {
					if units[u] {
						errs = append(errs, fmt.Sprintf("lesson %s/%s repeats unit %q", l.Subject, l.ID, u))
					}
					units[u] = true
				}
			}
		default:
			errs = append(errs, fmt.Sprintf("lesson %s/%s has unknown kind %d", l.Subject, l.ID, l.Kind))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
