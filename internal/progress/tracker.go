package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rainbowedu/rainbow/internal/curriculum"
	"github.com/rainbowedu/rainbow/internal/store"
)

// DefaultStorageKey is the single key the whole snapshot lives under.
const DefaultStorageKey = "rainbow_education_progress"

// Tracker owns the learner's progress snapshot for one session. Views report
// studied units and completed lessons through it and read summaries back;
// they never mutate the snapshot directly.
//
// Every mutation rewrites the full snapshot to the KV before returning. A
// failed write is logged and the in-memory state stays authoritative.
type Tracker struct {
	mu      sync.Mutex
	kv      store.KV
	catalog *curriculum.Catalog
	log     logrus.FieldLogger
	now     func() time.Time
	key     string
	session string

	snap *Snapshot
	// revision of the snapshot this session last read or wrote.
	seenRevision int64
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithCatalog replaces the built-in curriculum.
func WithCatalog(c *curriculum.Catalog) Option {
	return func(t *Tracker) { t.catalog = c }
}

// WithLogger sets the logger for storage warnings.
func WithLogger(l logrus.FieldLogger) Option {
	return func(t *Tracker) { t.log = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithStorageKey overrides DefaultStorageKey.
func WithStorageKey(key string) Option {
	return func(t *Tracker) { t.key = key }
}

// WithSessionID overrides the generated session id recorded as the writer.
func WithSessionID(id string) Option {
	return func(t *Tracker) { t.session = id }
}

// New creates a Tracker holding the zeroed defaults. Call Load to read the
// persisted snapshot.
func New(kv store.KV, opts ...Option) *Tracker {
	t := &Tracker{
		kv:      kv,
		catalog: curriculum.Default(),
		now:     time.Now,
		key:     DefaultStorageKey,
		session: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.log == nil {
		l := logrus.New()
		l.SetOutput(os.Stderr)
		t.log = l
	}
	t.snap = newSnapshot(t.catalog)
	return t
}

// SessionID returns the id this tracker writes snapshots under.
func (t *Tracker) SessionID() string {
	return t.session
}

// Catalog returns the curriculum the tracker validates against.
func (t *Tracker) Catalog() *curriculum.Catalog {
	return t.catalog
}

// Load reads the persisted snapshot. Absent, unreadable or malformed data
// yields the zeroed defaults; the failure is logged, never returned.
func (t *Tracker) Load(ctx context.Context) *Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	loaded, err := t.read(ctx)
	switch {
	case err != nil:
		t.log.WithError(err).WithField("key", t.key).Warn("could not load progress, starting fresh")
		t.snap = newSnapshot(t.catalog)
		t.seenRevision = 0
	case loaded == nil:
		t.snap = newSnapshot(t.catalog)
		t.seenRevision = 0
	default:
		t.snap = normalize(loaded, t.catalog)
		t.seenRevision = loaded.Revision
	}
	return t.snap.Clone()
}

// Snapshot returns a deep copy of the current in-memory snapshot.
func (t *Tracker) Snapshot() *Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap.Clone()
}

// RecordUnitStudied marks unitID of a sequenced lesson as studied with the
// caller's cursor at group. Covering the last unit completes the lesson.
// group must be the group that contains unitID.
func (t *Tracker) RecordUnitStudied(ctx context.Context, subject curriculum.Subject, lessonID, unitID string, group int) (SubjectSummary, error) {
	return t.studyUnit(ctx, subject, lessonID, unitID, group, 0)
}

// RecordUnitStudiedFor is RecordUnitStudied that also adds seconds of study
// time to the lesson.
func (t *Tracker) RecordUnitStudiedFor(ctx context.Context, subject curriculum.Subject, lessonID, unitID string, group, seconds int) (SubjectSummary, error) {
	return t.studyUnit(ctx, subject, lessonID, unitID, group, seconds)
}

func (t *Tracker) studyUnit(ctx context.Context, subject curriculum.Subject, lessonID, unitID string, group, seconds int) (SubjectSummary, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	lesson, rec, err := t.lookup(subject, lessonID)
	if err != nil {
		return SubjectSummary{}, err
	}
	if !lesson.Sequenced() {
		return SubjectSummary{}, fmt.Errorf("%w: %s/%s", ErrNotSequenced, subject, lessonID)
	}
	if !lesson.HasUnit(unitID) {
		return SubjectSummary{}, fmt.Errorf("%w: %q in %s/%s", ErrUnknownUnit, unitID, subject, lessonID)
	}
	if group < 0 || group >= len(lesson.Groups) {
		return SubjectSummary{}, fmt.Errorf("%w: %d in %s/%s", ErrUnknownGroup, group, subject, lessonID)
	}
	if !slices.Contains(lesson.Groups[group].Units, unitID) {
		return SubjectSummary{}, fmt.Errorf("%w: %q is not in group %d of %s/%s", ErrUnknownGroup, unitID, group, subject, lessonID)
	}

	now := t.now()
	seq := rec.Sequence
	if !seq.studied()[unitID] {
		seq.CompletedUnits = append(seq.CompletedUnits, unitID)
	}
	seq.Progress = unitProgress(len(seq.CompletedUnits), lesson.TotalUnits())
	seq.CurrentUnit = unitID
	seq.CurrentGroup = &group
	seq.LastStudiedAt = &now
	rec.TimeSpent += max(seconds, 0)

	if !rec.Completed {
		rec.Score = roundInt(seq.Progress)
		if len(seq.CompletedUnits) == lesson.TotalUnits() {
			markCompleted(rec, 100, now)
		}
	}

	t.touch(now)
	t.persist(ctx)
	return t.summary(subject), nil
}

// CompleteLesson marks a lesson completed with the given score and time. A
// completed lesson stays completed; calling again overwrites score, time and
// completion timestamp.
func (t *Tracker) CompleteLesson(ctx context.Context, subject curriculum.Subject, lessonID string, score, timeSpentSeconds int) (SubjectSummary, OverallRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, rec, err := t.lookup(subject, lessonID)
	if err != nil {
		return SubjectSummary{}, OverallRecord{}, err
	}

	now := t.now()
	markCompleted(rec, score, now)
	rec.TimeSpent = max(timeSpentSeconds, 0)

	t.touch(now)
	t.persist(ctx)
	return t.summary(subject), t.overall(), nil
}

// LessonProgress returns a copy of one lesson record.
func (t *Tracker) LessonProgress(subject curriculum.Subject, lessonID string) (LessonRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, rec, err := t.lookup(subject, lessonID)
	if err != nil {
		return LessonRecord{}, err
	}
	return rec.Clone(), nil
}

// Overall returns the cross-subject aggregate.
func (t *Tracker) Overall() OverallRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.overall()
}

// Streak returns the consecutive-day counter carried in the snapshot.
func (t *Tracker) Streak() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap.Overall.StreakDays
}

// ResetProgress replaces the whole snapshot with the zeroed defaults and
// persists it.
func (t *Tracker) ResetProgress(ctx context.Context) *Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.snap = newSnapshot(t.catalog)
	t.persist(ctx)
	return t.snap.Clone()
}

// Export writes the current snapshot as indented JSON.
func (t *Tracker) Export(w io.Writer) error {
	t.mu.Lock()
	data, err := json.MarshalIndent(t.snap, "", "  ")
	t.mu.Unlock()
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Import replaces the snapshot with one read from r and persists it. The data
// must pass the snapshot schema; it is then fitted to the catalogue.
func (t *Tracker) Import(ctx context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	snap, err := decodeSnapshot(data)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap = normalize(snap, t.catalog)
	t.persist(ctx)
	return nil
}

func markCompleted(rec *LessonRecord, score int, now time.Time) {
	rec.Completed = true
	rec.Score = clamp(score, 0, 100)
	rec.CompletedAt = &now
}

// lookup resolves a lesson in the catalogue and its record in the snapshot.
func (t *Tracker) lookup(subject curriculum.Subject, lessonID string) (curriculum.Lesson, *LessonRecord, error) {
	lesson, err := t.catalog.Lesson(subject, lessonID)
	if err != nil {
		return curriculum.Lesson{}, nil, err
	}
	rec := t.snap.Subjects[subject].Lessons[lessonID]
	return lesson, rec, nil
}

func (t *Tracker) touch(now time.Time) {
	t.snap.Overall.LastActiveDate = &now
	recompute(t.snap, t.catalog)
}

func (t *Tracker) overall() OverallRecord {
	o := t.snap.Overall
	o.LastActiveDate = cloneTime(o.LastActiveDate)
	return o
}

// read returns the stored snapshot, nil if none exists.
func (t *Tracker) read(ctx context.Context) (*Snapshot, error) {
	data, ok, err := t.kv.Get(ctx, t.key)
	if err != nil {
		return nil, &StorageError{Op: "read", Key: t.key, Err: err}
	}
	if !ok {
		return nil, nil
	}
	snap, err := decodeSnapshot(data)
	if err != nil {
		return nil, &StorageError{Op: "read", Key: t.key, Err: err}
	}
	return snap, nil
}

// persist rewrites the whole snapshot. Another session having written since
// our last read is logged; the write still goes ahead (last write wins).
func (t *Tracker) persist(ctx context.Context) {
	base := t.seenRevision
	if stored, err := t.peekRevision(ctx); err != nil {
		t.log.WithError(err).WithField("key", t.key).Debug("could not check stored progress revision")
	} else if stored.Revision > t.seenRevision {
		t.log.WithFields(logrus.Fields{
			"key":             t.key,
			"stored_revision": stored.Revision,
			"seen_revision":   t.seenRevision,
			"stored_writer":   stored.Writer,
		}).Warn("progress was changed by another session, overwriting")
		base = stored.Revision
	}

	t.snap.Revision = base + 1
	t.snap.Writer = t.session

	data, err := json.Marshal(t.snap)
	if err != nil {
		t.log.WithError(err).Error("could not encode progress snapshot")
		return
	}
	if err := t.kv.Set(ctx, t.key, data); err != nil {
		t.log.WithError(&StorageError{Op: "write", Key: t.key, Err: err}).Warn("could not save progress")
		return
	}
	t.seenRevision = t.snap.Revision
}

type revisionHeader struct {
	Revision int64  `json:"revision"`
	Writer   string `json:"writer"`
}

func (t *Tracker) peekRevision(ctx context.Context) (revisionHeader, error) {
	var h revisionHeader
	data, ok, err := t.kv.Get(ctx, t.key)
	if err != nil || !ok {
		return h, err
	}
	if err := json.Unmarshal(data, &h); err != nil {
		return h, err
	}
	return h, nil
}
