package curriculum

import (
	"errors"
	"strings"
	"testing"
)

func TestDefault_LessonCounts(t *testing.T) {
	c := Default()
	if got := c.TotalLessons(); got != 5 {
		t.Errorf("TotalLessons() = %d, want 5", got)
	}

	tests := []struct {
		subject Subject
		want    []string
	}{
		{SubjectVietnamese, []string{"1", "2"}},
		{SubjectMath, []string{"4", "5"}},
		{SubjectAnimal, []string{"1"}},
	}
	for _, tt := range tests {
		lessons := c.Lessons(tt.subject)
		if len(lessons) != len(tt.want) {
			t.Fatalf("Lessons(%q): got %d, want %d", tt.subject, len(lessons), len(tt.want))
		}
		for i, l := range lessons {
			if l.ID != tt.want[i] {
				t.Errorf("Lessons(%q)[%d] = %q, want %q", tt.subject, i, l.ID, tt.want[i])
			}
		}
	}
}

func TestDefault_AlphabetLesson(t *testing.T) {
	l, err := Default().Lesson(SubjectVietnamese, "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !l.Sequenced() {
		t.Fatal("vietnamese/1 should be sequenced")
	}
	if got := l.TotalUnits(); got != 29 {
		t.Errorf("TotalUnits() = %d, want 29", got)
	}
	if got := len(l.Groups); got != 10 {
		t.Errorf("groups = %d, want 10", got)
	}

	lower, _ := Default().Lesson(SubjectVietnamese, "2")
	if lower.Groups[2].Units[0] != "đ" {
		t.Errorf("lowercase lesson first unit of group 3 = %q, want %q", lower.Groups[2].Units[0], "đ")
	}
}

func TestLesson_Errors(t *testing.T) {
	c := Default()

	if _, err := c.Lesson("history", "1"); !errors.Is(err, ErrUnknownSubject) {
		t.Errorf("unknown subject: got %v, want ErrUnknownSubject", err)
	}
	if _, err := c.Lesson(SubjectMath, "1"); !errors.Is(err, ErrUnknownLesson) {
		t.Errorf("unknown lesson: got %v, want ErrUnknownLesson", err)
	}
}

func TestGroupOf(t *testing.T) {
	l, _ := Default().Lesson(SubjectVietnamese, "1")

	tests := []struct {
		unit      string
		wantGroup int
		wantOK    bool
	}{
		{"A", 0, true},
		{"Đ", 2, true},
		{"Y", 9, true},
		{"F", 0, false},
	}
	for _, tt := range tests {
		g, ok := l.GroupOf(tt.unit)
		if ok != tt.wantOK || g != tt.wantGroup {
			t.Errorf("GroupOf(%q) = (%d, %v), want (%d, %v)", tt.unit, g, ok, tt.wantGroup, tt.wantOK)
		}
	}
}

func TestFirstIncomplete_DeclaredOrder(t *testing.T) {
	l := Lesson{
		ID: "x", Subject: SubjectMath, Kind: KindSequenced,
		Groups: []Group{
			{Units: []string{"a", "b", "c"}},
			{Units: []string{"d", "e", "f"}},
		},
	}

	// "f" was studied before "d" and "e"; the earliest declared unit still wins.
	studied := map[string]bool{"a": true, "b": true, "c": true, "f": true}
	gi, unit, ok := l.FirstIncomplete(studied)
	if !ok || gi != 1 || unit != "d" {
		t.Errorf("FirstIncomplete = (%d, %q, %v), want (1, \"d\", true)", gi, unit, ok)
	}

	all := map[string]bool{"a": true, "b": true, "c": true, "d": true, "e": true, "f": true}
	if _, _, ok := l.FirstIncomplete(all); ok {
		t.Error("expected no incomplete unit when every unit is studied")
	}
	if !l.Groups[0].Complete(all) {
		t.Error("group 0 should be complete")
	}
}

func TestNewCatalog_Validation(t *testing.T) {
	tests := []struct {
		name    string
		lessons []Lesson
		wantErr string
	}{
		{
			name:    "duplicate lesson",
			lessons: []Lesson{{ID: "1", Subject: SubjectAnimal}, {ID: "1", Subject: SubjectAnimal}},
			wantErr: "duplicate lesson",
		},
		{
			name:    "unknown subject",
			lessons: []Lesson{{ID: "1", Subject: "art"}},
			wantErr: "unknown subject",
		},
		{
			name:    "sequenced without groups",
			lessons: []Lesson{{ID: "1", Subject: SubjectMath, Kind: KindSequenced}},
			wantErr: "has no groups",
		},
		{
			name: "repeated unit",
			lessons: []Lesson{{ID: "1", Subject: SubjectMath, Kind: KindSequenced, Groups: []Group{
				{Units: []string{"1", "2"}}, {Units: []string{"2"}},
			}}},
			wantErr: "repeats unit",
		},
		{
			name:    "simple with groups",
			lessons: []Lesson{{ID: "1", Subject: SubjectAnimal, Groups: []Group{{Units: []string{"cat"}}}}},
			wantErr: "has groups",
		},
		{
			name: "sequenced with cards",
			lessons: []Lesson{{ID: "1", Subject: SubjectMath, Kind: KindSequenced,
				Groups: []Group{{Units: []string{"1"}}}, Cards: []Card{{Name: "Một"}}}},
			wantErr: "has cards",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.lessons)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseSubject(t *testing.T) {
	if s, ok := ParseSubject("math"); !ok || s != SubjectMath {
		t.Errorf("ParseSubject(math) = (%q, %v)", s, ok)
	}
	if _, ok := ParseSubject("Math"); ok {
		t.Error("ParseSubject is case-sensitive")
	}
}
