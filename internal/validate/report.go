package validate

import "github.com/lessonmark/lessonmark/internal/lesson"

// FileReport is the outcome for one lesson file. Parse errors are hard
// failures; problems are lint findings the parser let through.
type FileReport struct {
	Path      string           `json:"path"`
	TopicID   string           `json:"topic_id"`
	LessonID  string           `json:"lesson_id"`
	Questions int              `json:"questions"`
	Errors    []string         `json:"errors,omitempty"`
	Problems  []lesson.Problem `json:"problems,omitempty"`
}

// Report aggregates a whole content-tree run. Every file is parsed
// independently so a contributor sees all failures at once.
type Report struct {
	Files        []FileReport `json:"files"`
	Structure    []string     `json:"structure_errors,omitempty"`
	FilesChecked int          `json:"files_checked"`
	ErrorCount   int          `json:"error_count"`
	WarningCount int          `json:"warning_count"`
}

func (r *Report) tally() {
	r.FilesChecked = len(r.Files)
	r.ErrorCount = len(r.Structure)
	r.WarningCount = 0
	for _, f := range r.Files {
		r.ErrorCount += len(f.Errors)
		r.WarningCount += len(f.Problems)
	}
}

// HasErrors reports whether any hard failure was found. Lint problems
// alone do not fail a run unless the caller opts in.
func (r *Report) HasErrors() bool { return r.ErrorCount > 0 }
