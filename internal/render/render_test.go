package render_test

import (
	"strings"
	"testing"

	"github.com/lessonmark/lessonmark/internal/lesson"
	"github.com/lessonmark/lessonmark/internal/render"
)

func TestHTML_Inline(t *testing.T) {
	out, err := render.HTML("use `len` on a **slice**")
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	if !strings.Contains(out, "<code>len</code>") || !strings.Contains(out, "<strong>slice</strong>") {
		t.Errorf("HTML() = %q", out)
	}
}

func TestDocument(t *testing.T) {
	doc, err := lesson.Parse("Intro with a table:\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n?---?\n# Which prints `1`?\n```go\nfmt.Println(1)\n```\n- [x] the snippet above\n- [ ] nothing\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	out, err := render.Document(doc)
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	if !strings.Contains(out.ContentHTML, "<table>") {
		t.Errorf("ContentHTML lost table: %q", out.ContentHTML)
	}
	if len(out.Questions) != 1 {
		t.Fatalf("Questions = %d, want 1", len(out.Questions))
	}
	q := out.Questions[0]
	if !strings.Contains(q.PromptHTML, "<pre>") {
		t.Errorf("PromptHTML lost code fence: %q", q.PromptHTML)
	}
	if len(q.Choices) != 2 || !q.Choices[0].Correct {
		t.Errorf("Choices = %+v", q.Choices)
	}
}
