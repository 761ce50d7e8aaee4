package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/lessonmark/lessonmark/internal/lesson"
	"github.com/lessonmark/lessonmark/internal/structure"
	"github.com/lessonmark/lessonmark/internal/validate"
)

var ErrNotFound = errors.New("store: not found")

// SQLStore persists imported content snapshots and validation runs. Parsed
// documents are kept as JSON text columns, keyed by topic/lesson id.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func New(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutCourse(ctx context.Context, c structure.Course) error {
	buf, err := json.Marshal(c)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO courses (id, name, course_json, imported_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, course_json=EXCLUDED.course_json, imported_at=EXCLUDED.imported_at`,
		c.ID, c.Name, string(buf), time.Now().Unix())
	return err
}

func (s *SQLStore) ListCourses(ctx context.Context) ([]structure.Course, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT course_json FROM courses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []structure.Course{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var c structure.Course
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetCourse(ctx context.Context, id string) (structure.Course, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT course_json FROM courses WHERE id=$1`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return structure.Course{}, ErrNotFound
	}
	if err != nil {
		return structure.Course{}, err
	}
	var c structure.Course
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return structure.Course{}, err
	}
	return c, nil
}

func (s *SQLStore) PutTopic(ctx context.Context, t structure.Topic) error {
	buf, err := json.Marshal(t)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO topics (id, name, topic_json, imported_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, topic_json=EXCLUDED.topic_json, imported_at=EXCLUDED.imported_at`,
		t.ID, t.Name, string(buf), time.Now().Unix())
	return err
}

func (s *SQLStore) ListTopics(ctx context.Context) ([]structure.Topic, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT topic_json FROM topics ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []structure.Topic{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var t structure.Topic
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetTopic(ctx context.Context, id string) (structure.Topic, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT topic_json FROM topics WHERE id=$1`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return structure.Topic{}, ErrNotFound
	}
	if err != nil {
		return structure.Topic{}, err
	}
	var t structure.Topic
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return structure.Topic{}, err
	}
	return t, nil
}

func (s *SQLStore) PutLesson(ctx context.Context, topicID, lessonID, title string, doc lesson.Document) error {
	buf, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO lessons (topic_id, lesson_id, title, document_json, imported_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (topic_id, lesson_id) DO UPDATE SET title=EXCLUDED.title, document_json=EXCLUDED.document_json, imported_at=EXCLUDED.imported_at`,
		topicID, lessonID, title, string(buf), time.Now().Unix())
	return err
}

func (s *SQLStore) GetLesson(ctx context.Context, topicID, lessonID string) (lesson.Document, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT document_json FROM lessons WHERE topic_id=$1 AND lesson_id=$2`, topicID, lessonID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return lesson.Document{}, ErrNotFound
	}
	if err != nil {
		return lesson.Document{}, err
	}
	var doc lesson.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return lesson.Document{}, err
	}
	return doc, nil
}

type RunSummary struct {
	ID           int64     `json:"id"`
	ErrorCount   int       `json:"error_count"`
	WarningCount int       `json:"warning_count"`
	CreatedAt    time.Time `json:"created_at"`
}

func (s *SQLStore) PutRun(ctx context.Context, rep *validate.Report) (int64, error) {
	buf, err := json.Marshal(rep)
	if err != nil {
		return 0, err
	}
	now := time.Now().Unix()
	if s.driver == "postgres" {
		var id int64
		err := s.db.QueryRowContext(ctx, `INSERT INTO validation_runs (report_json, error_count, warning_count, created_at)
			VALUES ($1, $2, $3, $4) RETURNING id`,
			string(buf), rep.ErrorCount, rep.WarningCount, now).Scan(&id)
		return id, err
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO validation_runs (report_json, error_count, warning_count, created_at)
		VALUES ($1, $2, $3, $4)`,
		string(buf), rep.ErrorCount, rep.WarningCount, now)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLStore) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 50
	} else if limit > 200 {
		limit = 200
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, error_count, warning_count, created_at FROM validation_runs ORDER BY id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []RunSummary{}
	for rows.Next() {
		var r RunSummary
		var ts int64
		if err := rows.Scan(&r.ID, &r.ErrorCount, &r.WarningCount, &ts); err != nil {
			return nil, err
		}
		r.CreatedAt = time.Unix(ts, 0).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetRun(ctx context.Context, id int64) (*validate.Report, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT report_json FROM validation_runs WHERE id=$1`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var rep validate.Report
	if err := json.Unmarshal([]byte(raw), &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}
