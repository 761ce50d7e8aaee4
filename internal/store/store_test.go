package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/lessonmark/lessonmark/internal/db"
	"github.com/lessonmark/lessonmark/internal/lesson"
	"github.com/lessonmark/lessonmark/internal/store"
	"github.com/lessonmark/lessonmark/internal/structure"
	"github.com/lessonmark/lessonmark/internal/validate"
)

func newTestStore(t *testing.T) *store.SQLStore {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db")
	dbh, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("db.Open() error = %v", err)
	}
	t.Cleanup(func() { dbh.Close() })
	return store.New(dbh, "sqlite")
}

func TestLessonRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	doc := lesson.Document{
		Content: "Some prose.\n",
		Questions: []lesson.Question{{
			Prompt: "Pick one",
			Kind:   lesson.KindSingle,
			Choices: []lesson.Choice{
				{Text: "right", Correct: true},
				{Text: "wrong"},
			},
		}},
	}
	if err := s.PutLesson(ctx, "syntax", "1", "Variables", doc); err != nil {
		t.Fatalf("PutLesson() error = %v", err)
	}
	got, err := s.GetLesson(ctx, "syntax", "1")
	if err != nil {
		t.Fatalf("GetLesson() error = %v", err)
	}
	if got.Content != doc.Content || len(got.Questions) != 1 {
		t.Errorf("GetLesson() = %+v", got)
	}
	if got.Questions[0].Kind != lesson.KindSingle || !got.Questions[0].Choices[0].Correct {
		t.Errorf("question round trip lost data: %+v", got.Questions[0])
	}
}

func TestLessonUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.PutLesson(ctx, "syntax", "1", "old", lesson.Document{Content: "old"}); err != nil {
		t.Fatal(err)
	}
	if err := s.PutLesson(ctx, "syntax", "1", "new", lesson.Document{Content: "new"}); err != nil {
		t.Fatalf("upsert error = %v", err)
	}
	got, err := s.GetLesson(ctx, "syntax", "1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Content != "new" {
		t.Errorf("Content = %q, want new", got.Content)
	}
}

func TestGetLesson_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetLesson(context.Background(), "nope", "0")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("GetLesson() error = %v, want ErrNotFound", err)
	}
}

func TestCoursesAndTopics(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	course := structure.Course{ID: "go-basics", Name: "Go Basics", Levels: []string{"beginner"}}
	if err := s.PutCourse(ctx, course); err != nil {
		t.Fatal(err)
	}
	topic := structure.Topic{ID: "syntax", Name: "Syntax", Lessons: []structure.LessonMeta{{ID: "1", TopicID: "syntax", Title: "Variables", AuthorID: "ann", Duration: 5}}}
	if err := s.PutTopic(ctx, topic); err != nil {
		t.Fatal(err)
	}
	cs, err := s.ListCourses(ctx)
	if err != nil || len(cs) != 1 || cs[0].ID != "go-basics" {
		t.Fatalf("ListCourses() = %+v, %v", cs, err)
	}
	ts, err := s.ListTopics(ctx)
	if err != nil || len(ts) != 1 || len(ts[0].Lessons) != 1 {
		t.Fatalf("ListTopics() = %+v, %v", ts, err)
	}
}

func TestValidationRuns(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rep := &validate.Report{
		Files:        []validate.FileReport{{Path: "topics/syntax/1.md", TopicID: "syntax", LessonID: "1", Questions: 2}},
		FilesChecked: 1,
	}
	id, err := s.PutRun(ctx, rep)
	if err != nil {
		t.Fatalf("PutRun() error = %v", err)
	}
	runs, err := s.ListRuns(ctx, 10)
	if err != nil || len(runs) != 1 || runs[0].ID != id {
		t.Fatalf("ListRuns() = %+v, %v", runs, err)
	}
	got, err := s.GetRun(ctx, id)
	if err != nil || got.FilesChecked != 1 {
		t.Fatalf("GetRun() = %+v, %v", got, err)
	}
}

func TestListRuns_LimitClamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for i := 0; i < 60; i++ {
		if _, err := s.PutRun(ctx, &validate.Report{}); err != nil {
			t.Fatalf("PutRun() error = %v", err)
		}
	}
	// An oversized limit is clamped to the maximum, not reset to the default.
	runs, err := s.ListRuns(ctx, 1000)
	if err != nil || len(runs) != 60 {
		t.Fatalf("ListRuns(1000) = %d runs, %v, want all 60", len(runs), err)
	}
	runs, err = s.ListRuns(ctx, 0)
	if err != nil || len(runs) != 50 {
		t.Fatalf("ListRuns(0) = %d runs, %v, want default 50", len(runs), err)
	}
	runs, err = s.ListRuns(ctx, 5)
	if err != nil || len(runs) != 5 {
		t.Fatalf("ListRuns(5) = %d runs, %v", len(runs), err)
	}
}
