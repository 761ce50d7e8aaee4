package lesson

import (
	"regexp"
	"strings"
)

// Divider separates lesson prose from the quiz section. Only a line that is
// exactly this token counts; later occurrences belong to the questions
// block verbatim.
const Divider = "?---?"

// MaxInput bounds pathological inputs. Real lessons are a few KB.
const MaxInput = 4 << 20

const fence = "```"

// Parse splits raw lesson text into prose and questions. The prose part is
// returned byte-for-byte (after CRLF normalization); a missing divider
// simply yields zero questions. Parse stops at the first structural error;
// callers that want every problem in a tree parse each file independently.
func Parse(src string) (Document, error) {
	if len(src) > MaxInput {
		return Document{}, ErrTooLarge
	}
	src = normalize(src)

	doc := Document{Questions: []Question{}}
	content, block, blockStart, found := splitDivider(src)
	doc.Content = content
	if !found {
		return doc, nil
	}
	qs, err := parseQuestions(block, blockStart)
	if err != nil {
		return Document{}, err
	}
	doc.Questions = qs
	return doc, nil
}

// ParseQuestions parses text that is already a questions block (no prose,
// no divider), e.g. a standalone quiz fragment.
func ParseQuestions(block string) ([]Question, error) {
	if len(block) > MaxInput {
		return nil, ErrTooLarge
	}
	return parseQuestions(normalize(block), 1)
}

func normalize(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// splitDivider returns the prose before the first divider line, the block
// after it, and the 1-based line number where the block starts. Fenced code
// blocks are tracked so a code sample showing the divider token stays prose.
func splitDivider(src string) (content, block string, blockStart int, found bool) {
	line := 1
	inFence := false
	for i := 0; i < len(src); {
		end := len(src)
		next := end
		if j := strings.IndexByte(src[i:], '\n'); j >= 0 {
			end = i + j
			next = end + 1
		}
		ln := src[i:end]
		if !inFence && ln == Divider {
			return src[:i], src[next:], line + 1, true
		}
		if strings.HasPrefix(strings.TrimSpace(ln), fence) {
			inFence = !inFence
		}
		i = next
		line++
	}
	return src, "", 0, false
}

// rawBlock is one question's span: the header line plus everything up to
// the next top-level header.
type rawBlock struct {
	lines []string
	start int // line number of the header line
}

// isHeader reports a top-level question header: exactly one '#' at column
// zero followed by whitespace.
func isHeader(ln string) bool {
	if len(ln) < 2 || ln[0] != '#' {
		return false
	}
	return ln[1] == ' ' || ln[1] == '\t'
}

// segment splits a questions block into per-question sub-blocks, tracking
// fenced code blocks so a '#' line inside a fence is not taken for a new
// question.
func segment(block string, base int) ([]rawBlock, error) {
	lines := strings.Split(block, "\n")
	var blocks []rawBlock
	inFence := false
	for idx, ln := range lines {
		n := base + idx
		trimmed := strings.TrimSpace(ln)
		if !inFence && isHeader(ln) {
			blocks = append(blocks, rawBlock{start: n})
		}
		if len(blocks) == 0 {
			if trimmed != "" {
				return nil, &NoHeaderError{Line: n}
			}
			continue
		}
		cur := &blocks[len(blocks)-1]
		cur.lines = append(cur.lines, ln)
		if strings.HasPrefix(trimmed, fence) {
			inFence = !inFence
		}
	}
	return blocks, nil
}

func parseQuestions(block string, base int) ([]Question, error) {
	blocks, err := segment(block, base)
	if err != nil {
		return nil, err
	}
	qs := make([]Question, 0, len(blocks))
	for i, b := range blocks {
		q, err := parseQuestion(b, i+1)
		if err != nil {
			return nil, err
		}
		qs = append(qs, q)
	}
	return qs, nil
}

// checkboxLine matches "marker [interior] text" after leading indentation.
var (
	listStartRe    = regexp.MustCompile(`^([-*])[ \t]+\[`)
	checkboxLineRe = regexp.MustCompile(`^([-*])[ \t]+\[([^\]]*)\][ \t]*(.*)$`)
)

// checkboxState maps a bracket interior to a correctness flag. The corpus
// spells "checked" three ways ([x], [X], [*]); all must be accepted.
func checkboxState(inner string) (correct, ok bool) {
	switch inner {
	case "x", "X", "*":
		return true, true
	}
	if strings.TrimLeft(inner, " ") == "" {
		return false, true
	}
	return false, false
}

// parseQuestion runs the per-block state machine:
// prompt -> collecting(marker) -> done. There is no way back from
// collecting to prompt.
func parseQuestion(b rawBlock, index int) (Question, error) {
	header := strings.TrimSpace(strings.TrimPrefix(b.lines[0], "#"))
	promptLines := []string{header}

	const (
		statePrompt = iota
		stateCollecting
	)
	state := statePrompt
	inFence := false
	var marker byte
	var choices []Choice

scan:
	for i := 1; i < len(b.lines); i++ {
		ln := b.lines[i]
		lineNo := b.start + i
		trimmed := strings.TrimSpace(ln)

		switch state {
		case statePrompt:
			if inFence {
				promptLines = append(promptLines, ln)
				if strings.HasPrefix(trimmed, fence) {
					inFence = false
				}
				continue
			}
			if strings.HasPrefix(trimmed, fence) {
				inFence = true
				promptLines = append(promptLines, ln)
				continue
			}
			lt := strings.TrimLeft(ln, " \t")
			if listStartRe.MatchString(lt) {
				m := checkboxLineRe.FindStringSubmatch(lt)
				if m == nil {
					return Question{}, &UnrecognizedCheckboxError{Question: index, Line: lineNo, Token: lt}
				}
				correct, ok := checkboxState(m[2])
				if !ok {
					return Question{}, &UnrecognizedCheckboxError{Question: index, Line: lineNo, Token: "[" + m[2] + "]"}
				}
				marker = m[1][0]
				choices = append(choices, Choice{Text: m[3], Correct: correct})
				state = stateCollecting
				continue
			}
			promptLines = append(promptLines, ln)

		case stateCollecting:
			lt := strings.TrimLeft(ln, " \t")
			m := checkboxLineRe.FindStringSubmatch(lt)
			if m == nil {
				if listStartRe.MatchString(lt) {
					return Question{}, &UnrecognizedCheckboxError{Question: index, Line: lineNo, Token: lt}
				}
				break scan
			}
			if m[1][0] != marker {
				return Question{}, &MixedMarkerError{Question: index, Line: lineNo, Got: m[1][0], Want: marker}
			}
			correct, ok := checkboxState(m[2])
			if !ok {
				return Question{}, &UnrecognizedCheckboxError{Question: index, Line: lineNo, Token: "[" + m[2] + "]"}
			}
			choices = append(choices, Choice{Text: m[3], Correct: correct})
		}
	}

	if marker == 0 {
		return Question{}, &NoChoicesError{Question: index, Line: b.start}
	}

	q := Question{
		Prompt:  strings.TrimRight(strings.Join(promptLines, "\n"), " \t\n"),
		Choices: choices,
	}
	if marker == '-' {
		q.Kind = KindSingle
	} else {
		q.Kind = KindMultiple
	}
	return q, nil
}
