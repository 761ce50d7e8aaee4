package lesson_test

import (
	"testing"

	"github.com/lessonmark/lessonmark/internal/lesson"
)

func TestLint_CleanDocument(t *testing.T) {
	doc, err := lesson.Parse("?---?\n# Q\n- [x] a\n- [ ] b\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if probs := lesson.Lint(doc); len(probs) != 0 {
		t.Errorf("Lint() = %v, want none", probs)
	}
}

func TestLint_AmbiguousSingleAnswer(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"none checked", "?---?\n# Q\n- [ ] a\n- [ ] b\n"},
		{"two checked", "?---?\n# Q\n- [x] a\n- [X] b\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := lesson.Parse(tc.src)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			probs := lesson.Lint(doc)
			if len(probs) != 1 {
				t.Fatalf("Lint() = %v, want one problem", probs)
			}
			if probs[0].Code != lesson.AmbiguousSingleAnswer {
				t.Errorf("Code = %q, want %q", probs[0].Code, lesson.AmbiguousSingleAnswer)
			}
			if probs[0].Question != 1 {
				t.Errorf("Question = %d, want 1", probs[0].Question)
			}
		})
	}
}

func TestLint_MultipleNeedsAtLeastOneChecked(t *testing.T) {
	doc, err := lesson.Parse("?---?\n# Q\n* [ ] a\n* [ ] b\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	probs := lesson.Lint(doc)
	if len(probs) != 1 || probs[0].Code != lesson.NoCheckedChoice {
		t.Fatalf("Lint() = %v, want one NoCheckedChoice", probs)
	}
}

func TestLint_MultipleWithChecksIsClean(t *testing.T) {
	doc, err := lesson.Parse("?---?\n# Q\n* [x] a\n* [x] b\n* [ ] c\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if probs := lesson.Lint(doc); len(probs) != 0 {
		t.Errorf("Lint() = %v, want none", probs)
	}
}
