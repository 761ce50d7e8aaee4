package lesson

import "fmt"

// ProblemCode classifies content-quality findings. These are authoring
// mistakes, not structural ones: the document still parses and renders.
type ProblemCode string

const (
	// AmbiguousSingleAnswer: a single-answer question with zero or more
	// than one checked choice.
	AmbiguousSingleAnswer ProblemCode = "ambiguous_single_answer"
	// NoCheckedChoice: a multi-answer question with nothing checked.
	NoCheckedChoice ProblemCode = "no_checked_choice"
)

type Problem struct {
	Question int         `json:"question"` // 1-based
	Code     ProblemCode `json:"code"`
	Message  string      `json:"message"`
}

// Lint flags answer-key defects that the parser deliberately lets through.
func Lint(doc Document) []Problem {
	var out []Problem
	for i, q := range doc.Questions {
		checked := 0
		for _, c := range q.Choices {
			if c.Correct {
				checked++
			}
		}
		switch q.Kind {
		case KindSingle:
			if checked != 1 {
				out = append(out, Problem{
					Question: i + 1,
					Code:     AmbiguousSingleAnswer,
					Message:  fmt.Sprintf("single-answer question %d has %d checked choices, want exactly 1", i+1, checked),
				})
			}
		case KindMultiple:
			if checked == 0 {
				out = append(out, Problem{
					Question: i + 1,
					Code:     NoCheckedChoice,
					Message:  fmt.Sprintf("multi-answer question %d has no checked choice", i+1),
				})
			}
		}
	}
	return out
}
