package render

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/lessonmark/lessonmark/internal/lesson"
)

// Rendering is a consumer of parsed documents, not part of parsing: the
// Document keeps its markup verbatim and this package converts a copy.

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// HTML converts lesson markup to HTML.
func HTML(markup string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markup), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type ChoiceHTML struct {
	TextHTML string `json:"text_html"`
	Correct  bool   `json:"correct"`
}

type QuestionHTML struct {
	PromptHTML string       `json:"prompt_html"`
	Kind       lesson.Kind  `json:"kind"`
	Choices    []ChoiceHTML `json:"choices"`
}

type DocumentHTML struct {
	ContentHTML string         `json:"content_html"`
	Questions   []QuestionHTML `json:"questions"`
}

// Document renders a parsed lesson for display: prose, prompts and choice
// texts each go through the markdown converter.
func Document(doc lesson.Document) (DocumentHTML, error) {
	out := DocumentHTML{Questions: []QuestionHTML{}}
	var err error
	if out.ContentHTML, err = HTML(doc.Content); err != nil {
		return DocumentHTML{}, err
	}
	for _, q := range doc.Questions {
		qh := QuestionHTML{Kind: q.Kind}
		if qh.PromptHTML, err = HTML(q.Prompt); err != nil {
			return DocumentHTML{}, err
		}
		for _, c := range q.Choices {
			th, err := HTML(c.Text)
			if err != nil {
				return DocumentHTML{}, err
			}
			qh.Choices = append(qh.Choices, ChoiceHTML{TextHTML: th, Correct: c.Correct})
		}
		out.Questions = append(out.Questions, qh)
	}
	return out, nil
}
