package lesson

// Kind tells the renderer whether a question accepts one answer or several.
// It is derived from the list-marker character of the answer list: "-" for
// single-answer, "*" for multi-answer.
type Kind string

const (
	KindSingle   Kind = "single"
	KindMultiple Kind = "multiple"
)

type Choice struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type Question struct {
	Prompt  string   `json:"prompt"`
	Kind    Kind     `json:"kind"`
	Choices []Choice `json:"choices"`
}

// Document is the parsed form of one lesson file: the prose before the
// question divider, verbatim, plus the questions in source order. A
// Document is built once per file read and never mutated afterwards.
type Document struct {
	Content   string     `json:"content"`
	Questions []Question `json:"questions"`
}
