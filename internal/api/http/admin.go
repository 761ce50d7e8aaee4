package http

import (
	"errors"
	"fmt"
	"strconv"

	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lessonmark/lessonmark/internal/content"
	"github.com/lessonmark/lessonmark/internal/lesson"
	"github.com/lessonmark/lessonmark/internal/store"
	"github.com/lessonmark/lessonmark/internal/structure"
	"github.com/lessonmark/lessonmark/internal/validate"
)

// ImportHandler snapshots the content tree into the SQL store: every
// course and topic index plus every lesson that parses. Broken lessons are
// reported and skipped so one bad file does not block the rest.
func ImportHandler(s *store.SQLStore, tree *content.Tree, st *structure.Structure) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		ctx := r.Context()
		var importErrs []string
		courses, topics, lessons := 0, 0, 0

		for _, c := range st.Courses {
			if err := s.PutCourse(ctx, c); err != nil {
				nethttp.Error(w, "db error", nethttp.StatusInternalServerError)
				return
			}
			courses++
		}
		for _, t := range st.Topics {
			if err := s.PutTopic(ctx, t); err != nil {
				nethttp.Error(w, "db error", nethttp.StatusInternalServerError)
				return
			}
			topics++
			for _, meta := range t.Lessons {
				src, err := tree.ReadLesson(t.ID, meta.ID)
				if err != nil {
					importErrs = append(importErrs, fmt.Sprintf("%s/%s: %v", t.ID, meta.ID, err))
					continue
				}
				doc, err := lesson.Parse(src)
				if err != nil {
					importErrs = append(importErrs, fmt.Sprintf("%s/%s: %v", t.ID, meta.ID, err))
					continue
				}
				if err := s.PutLesson(ctx, t.ID, meta.ID, meta.Title, doc); err != nil {
					nethttp.Error(w, "db error", nethttp.StatusInternalServerError)
					return
				}
				lessons++
			}
		}
		writeJSON(w, map[string]any{
			"courses": courses,
			"topics":  topics,
			"lessons": lessons,
			"errors":  importErrs,
		})
	}
}

// ValidateHandler runs a full batch validation and persists the report.
func ValidateHandler(s *store.SQLStore, runner *validate.Runner, st *structure.Structure) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		rep, err := runner.Run(r.Context(), st)
		if err != nil {
			nethttp.Error(w, "validation failed: "+err.Error(), nethttp.StatusInternalServerError)
			return
		}
		id, err := s.PutRun(r.Context(), rep)
		if err != nil {
			nethttp.Error(w, "db error", nethttp.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"id": id, "report": rep})
	}
}

func ListRunsHandler(s *store.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		runs, err := s.ListRuns(r.Context(), limit)
		if err != nil {
			nethttp.Error(w, "db error", nethttp.StatusInternalServerError)
			return
		}
		writeJSON(w, runs)
	}
}

func GetRunHandler(s *store.SQLStore) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "runID"), 10, 64)
		if err != nil {
			nethttp.Error(w, "bad run id", nethttp.StatusBadRequest)
			return
		}
		rep, err := s.GetRun(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			nethttp.Error(w, "run not found", nethttp.StatusNotFound)
			return
		}
		if err != nil {
			nethttp.Error(w, "db error", nethttp.StatusInternalServerError)
			return
		}
		writeJSON(w, rep)
	}
}
