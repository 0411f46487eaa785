package progress

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rainbowedu/rainbow/internal/curriculum"
	"github.com/rainbowedu/rainbow/internal/store"
)

func TestExportImport(t *testing.T) {
	src := newTestTracker(t, nil)
	studyAll(t, src.tracker, curriculum.SubjectMath, "4", "0", "1", "2", "3")
	_, _, err := src.tracker.CompleteLesson(context.Background(), curriculum.SubjectAnimal, "1", 75, 64)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, src.tracker.Export(&buf))
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))
	assert.Contains(t, buf.String(), `"completedUnits": [`)

	kv := store.NewMemoryKV()
	dst := newTestTracker(t, kv)
	require.NoError(t, dst.tracker.Import(context.Background(), &buf))

	want := src.tracker.AllSummaries()
	assert.Equal(t, want, dst.tracker.AllSummaries())

	// The import was persisted, not only applied in memory.
	reopened := newTestTracker(t, kv)
	assert.Equal(t, want, reopened.tracker.AllSummaries())

	pos, err := reopened.tracker.FindLessonResumePosition(curriculum.SubjectMath, "4")
	require.NoError(t, err)
	assert.Equal(t, "3", pos.Unit)
	assert.Equal(t, ReasonResumeSaved, pos.Reason)
}

func TestImport_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"garbage", "hello"},
		{"negative time", `{"version":1,"subjects":{"animal":{"lessons":{"1":{"completed":true,"score":1,"timeSpent":-4}}}},"overall":{}}`},
		{"lesson missing fields", `{"version":1,"subjects":{"animal":{"lessons":{"1":{"completed":true}}}},"overall":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestTracker(t, nil)
			before := env.tracker.Snapshot()

			err := env.tracker.Import(context.Background(), strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSnapshot), "got %v", err)
			assert.Equal(t, before, env.tracker.Snapshot(), "a rejected import changes nothing")
		})
	}
}

func TestDecodeSnapshot_AcceptsMinimalDocument(t *testing.T) {
	snap, err := decodeSnapshot([]byte(`{"version":1,"subjects":{},"overall":{}}`))
	require.NoError(t, err)
	assert.Equal(t, SnapshotVersion, snap.Version)
	assert.Empty(t, snap.Subjects)
}

func TestStorageError(t *testing.T) {
	inner := errors.New("disk full")
	err := error(&StorageError{Op: "write", Key: DefaultStorageKey, Err: inner})

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "write")
	assert.Contains(t, err.Error(), DefaultStorageKey)

	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "write", se.Op)
}

func TestMotivationalMessage(t *testing.T) {
	tests := []struct {
		progress int
		prefix   string
	}{
		{0, "🌱"},
		{24, "🌱"},
		{25, "🚀"},
		{50, "💪"},
		{75, "🌟"},
		{99, "🌟"},
		{100, "🎉"},
	}
	for _, tt := range tests {
		assert.True(t, strings.HasPrefix(MotivationalMessage(tt.progress), tt.prefix), "progress %d", tt.progress)
	}
}
