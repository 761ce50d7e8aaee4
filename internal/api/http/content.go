package http

import (
	"encoding/json"
	"io"
	"os"

	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lessonmark/lessonmark/internal/content"
	"github.com/lessonmark/lessonmark/internal/lesson"
	"github.com/lessonmark/lessonmark/internal/render"
	"github.com/lessonmark/lessonmark/internal/structure"
)

// Handlers only; routes are declared in cmd/contentd.

func writeJSON(w nethttp.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func ListCoursesHandler(st *structure.Structure) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, st.Courses)
	}
}

func GetCourseHandler(st *structure.Structure) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		c, ok := st.Course(chi.URLParam(r, "courseID"))
		if !ok {
			nethttp.Error(w, "course not found", nethttp.StatusNotFound)
			return
		}
		writeJSON(w, c)
	}
}

func GetLevelHandler(st *structure.Structure) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		l, ok := st.Level(chi.URLParam(r, "courseID"), chi.URLParam(r, "levelID"))
		if !ok {
			nethttp.Error(w, "level not found", nethttp.StatusNotFound)
			return
		}
		writeJSON(w, l)
	}
}

func ListTopicsHandler(st *structure.Structure) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		writeJSON(w, st.Topics)
	}
}

func GetTopicHandler(st *structure.Structure) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		t, ok := st.Topic(chi.URLParam(r, "topicID"))
		if !ok {
			nethttp.Error(w, "topic not found", nethttp.StatusNotFound)
			return
		}
		writeJSON(w, t)
	}
}

type lessonResponse struct {
	TopicID  string           `json:"topic_id"`
	LessonID string           `json:"lesson_id"`
	Document lesson.Document  `json:"document"`
	Problems []lesson.Problem `json:"problems,omitempty"`
}

// loadLesson reads and parses one lesson file, mapping errors onto status
// codes: missing file 404, malformed markup 422.
func loadLesson(w nethttp.ResponseWriter, r *nethttp.Request, tree *content.Tree) (lessonResponse, bool) {
	topicID := chi.URLParam(r, "topicID")
	lessonID := chi.URLParam(r, "lessonID")
	src, err := tree.ReadLesson(topicID, lessonID)
	if err != nil {
		if os.IsNotExist(err) {
			nethttp.Error(w, "lesson not found", nethttp.StatusNotFound)
		} else {
			nethttp.Error(w, "read lesson", nethttp.StatusInternalServerError)
		}
		return lessonResponse{}, false
	}
	doc, err := lesson.Parse(src)
	if err != nil {
		nethttp.Error(w, err.Error(), nethttp.StatusUnprocessableEntity)
		return lessonResponse{}, false
	}
	return lessonResponse{
		TopicID:  topicID,
		LessonID: lessonID,
		Document: doc,
		Problems: lesson.Lint(doc),
	}, true
}

// GetLessonHandler serves the parsed document; the renderer front-end is
// expected to display Content as-is and the questions as select widgets.
func GetLessonHandler(tree *content.Tree) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		resp, ok := loadLesson(w, r, tree)
		if !ok {
			return
		}
		writeJSON(w, resp)
	}
}

// GetLessonHTMLHandler serves the same lesson with markup pre-rendered.
func GetLessonHTMLHandler(tree *content.Tree) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		resp, ok := loadLesson(w, r, tree)
		if !ok {
			return
		}
		html, err := render.Document(resp.Document)
		if err != nil {
			nethttp.Error(w, "render", nethttp.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{
			"topic_id":  resp.TopicID,
			"lesson_id": resp.LessonID,
			"document":  html,
			"problems":  resp.Problems,
		})
	}
}

// MountAssets exposes image/video files from the content tree.
func MountAssets(r chi.Router, tree *content.Tree) {
	r.Get("/*", func(w nethttp.ResponseWriter, req *nethttp.Request) {
		key := chi.URLParam(req, "*")
		f, err := tree.Open(key)
		if err != nil {
			nethttp.Error(w, "asset not found", nethttp.StatusNotFound)
			return
		}
		defer f.Close()
		_, _ = io.Copy(w, f)
	})
}
