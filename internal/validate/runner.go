package validate

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/lessonmark/lessonmark/internal/content"
	"github.com/lessonmark/lessonmark/internal/lesson"
	"github.com/lessonmark/lessonmark/internal/structure"
)

// Options tune a batch run. Zero values mean "sensible defaults".
type Options struct {
	Workers int      // parallel parses; lessons are independent pure parses
	Skip    []string // glob patterns matched against topic/lesson paths
}

type Runner struct {
	tree *content.Tree
	log  *slog.Logger
	opts Options
}

func NewRunner(tree *content.Tree, log *slog.Logger, opts Options) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = 8
	}
	if log == nil {
		log = slog.Default()
	}
	return &Runner{tree: tree, log: log, opts: opts}
}

// Run parses and lints every lesson file in the tree, then cross-checks the
// structure indices against what is on disk. st may be nil to skip the
// cross-reference phase (e.g. when only the markup is of interest).
func (r *Runner) Run(ctx context.Context, st *structure.Structure) (*Report, error) {
	refs, err := r.tree.LessonFiles()
	if err != nil {
		return nil, err
	}
	refs = r.filterSkipped(refs)
	r.log.Info("validating content tree", "files", len(refs), "workers", r.opts.Workers)

	reports := make([]FileReport, len(refs))
	sem := make(chan struct{}, r.opts.Workers)
	done := make(chan int, len(refs))

	for i, ref := range refs {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		go func(i int, ref content.LessonRef) {
			defer func() { <-sem }()
			reports[i] = r.checkFile(ref)
			done <- i
		}(i, ref)
	}
	for range refs {
		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	rep := &Report{Files: reports}
	if st != nil {
		rep.Structure = crossCheck(st, refs)
	}
	rep.tally()
	r.log.Info("validation finished",
		"files", rep.FilesChecked, "errors", rep.ErrorCount, "warnings", rep.WarningCount)
	return rep, nil
}

func (r *Runner) filterSkipped(refs []content.LessonRef) []content.LessonRef {
	if len(r.opts.Skip) == 0 {
		return refs
	}
	kept := refs[:0]
	for _, ref := range refs {
		rel := ref.TopicID + "/" + ref.LessonID + content.LessonExt
		skip := false
		for _, pat := range r.opts.Skip {
			if ok, _ := filepath.Match(pat, rel); ok {
				skip = true
				break
			}
		}
		if !skip {
			kept = append(kept, ref)
		}
	}
	return kept
}

func (r *Runner) checkFile(ref content.LessonRef) FileReport {
	fr := FileReport{Path: ref.Path, TopicID: ref.TopicID, LessonID: ref.LessonID}
	src, err := r.tree.ReadFile(ref.Path)
	if err != nil {
		fr.Errors = append(fr.Errors, err.Error())
		return fr
	}
	doc, err := lesson.Parse(src)
	if err != nil {
		fr.Errors = append(fr.Errors, err.Error())
		r.log.Debug("parse failed", "path", ref.Path, "error", err)
		return fr
	}
	fr.Questions = len(doc.Questions)
	fr.Problems = lesson.Lint(doc)
	return fr
}

// crossCheck verifies the declarative indices against the files on disk:
// every indexed lesson has a file and every file is indexed, authors and
// prerequisites resolve, and level ranges point at known topics.
func crossCheck(st *structure.Structure, refs []content.LessonRef) []string {
	var errs []string

	onDisk := make(map[string]bool, len(refs))
	for _, ref := range refs {
		onDisk[ref.TopicID+"/"+ref.LessonID] = true
	}
	indexed := map[string]bool{}

	for _, topic := range st.Topics {
		for _, l := range topic.Lessons {
			key := topic.ID + "/" + l.ID
			indexed[key] = true
			if !onDisk[key] {
				errs = append(errs, fmt.Sprintf("topic %s: lesson %s has no markup file", topic.ID, l.ID))
			}
			if _, ok := st.Author(l.AuthorID); !ok {
				errs = append(errs, fmt.Sprintf("topic %s: lesson %s author %s is not in authors.json", topic.ID, l.ID, l.AuthorID))
			}
			for _, p := range l.Prerequisites {
				pt, ok := st.Topic(p.TopicID)
				if !ok {
					errs = append(errs, fmt.Sprintf("topic %s: lesson %s prerequisite topic %s unknown", topic.ID, l.ID, p.TopicID))
					continue
				}
				if !topicHasLesson(pt, p.LessonID) {
					errs = append(errs, fmt.Sprintf("topic %s: lesson %s prerequisite %s/%s unknown", topic.ID, l.ID, p.TopicID, p.LessonID))
				}
			}
		}
	}

	for _, ref := range refs {
		if !indexed[ref.TopicID+"/"+ref.LessonID] {
			errs = append(errs, fmt.Sprintf("file %s is not listed in topic %s index", ref.Path, ref.TopicID))
		}
	}

	for _, lvl := range st.Levels {
		for _, rg := range lvl.Ranges {
			if _, ok := st.Topic(rg.TopicID); !ok {
				errs = append(errs, fmt.Sprintf("course %s level %s: range topic %s unknown", lvl.CourseID, lvl.ID, rg.TopicID))
			}
		}
	}

	sort.Strings(errs)
	return errs
}

func topicHasLesson(t structure.Topic, lessonID string) bool {
	for _, l := range t.Lessons {
		if l.ID == lessonID {
			return true
		}
	}
	return false
}
