package lesson

import (
	"errors"
	"fmt"
)

// ErrTooLarge is returned for inputs over MaxInput bytes.
var ErrTooLarge = errors.New("lesson: input too large")

// NoHeaderError: the questions block has content before its first
// top-level "# " header, so there is nothing to attach answers to.
type NoHeaderError struct {
	Line int
}

func (e *NoHeaderError) Error() string {
	return fmt.Sprintf("line %d: questions block has content before the first question header", e.Line)
}

// MixedMarkerError: an answer list switched between "-" and "*" markers.
// The marker selects the question kind, so mixing them is a contradiction.
type MixedMarkerError struct {
	Question int // 1-based position in the questions block
	Line     int
	Got      byte
	Want     byte
}

func (e *MixedMarkerError) Error() string {
	return fmt.Sprintf("question %d, line %d: answer list mixes %q and %q markers",
		e.Question, e.Line, string(e.Got), string(e.Want))
}

// UnrecognizedCheckboxError: a list line carries checkbox brackets whose
// interior is neither blank nor one of the accepted checked spellings.
type UnrecognizedCheckboxError struct {
	Question int
	Line     int
	Token    string
}

func (e *UnrecognizedCheckboxError) Error() string {
	return fmt.Sprintf("question %d, line %d: unrecognized checkbox token %q",
		e.Question, e.Line, e.Token)
}

// NoChoicesError: a question header was found but no answer list followed.
type NoChoicesError struct {
	Question int
	Line     int
}

func (e *NoChoicesError) Error() string {
	return fmt.Sprintf("question %d, line %d: question has no answer choices", e.Question, e.Line)
}
