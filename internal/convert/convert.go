// Package convert turns the plain-text lines of a reading test into a
// structured question bank.
package convert

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/pavelanni/quizbank/internal/model"
)

var (
	// ErrEmptyInput is returned when there is not even a title line.
	ErrEmptyInput = errors.New("empty input")
	// ErrNoQuestionsFound is returned when no line looks like the start of
	// the first question.
	ErrNoQuestionsFound = errors.New("could not find start of questions")
)

// annotationMarker tags editorial notes pasted between questions.
const annotationMarker = "该题布置历史"

const answerMarker = "Correct Answer"

// Whitespace also covers U+3000 and U+00A0, common in exported Word text.
var (
	questionStartRegex = regexp.MustCompile(`^\d+\.[\s\p{Zs}]*(?:According|[\p{L}\p{N}_])`)
	markerRegex        = regexp.MustCompile(`^(\d+)\.[\s\p{Zs}]*(.*)$`)
	answerRegex        = regexp.MustCompile(`Correct Answer[:：][\s\p{Zs}]*([A-F]+)`)
)

// Convert parses lines into a Document. Lines must already be trimmed with
// blank lines removed. The first line is the title; the passage runs up to
// the first question marker.
//
// Malformed lines inside the question region never abort the conversion;
// they are absorbed or dropped and reported as diagnostics. Only the
// absence of any question marker is fatal.
func Convert(lines []string) (*model.Document, []Diagnostic, error) {
	if len(lines) == 0 {
		return nil, nil, ErrEmptyInput
	}

	start := findQuestionStart(lines)
	if start < 0 {
		return nil, nil, ErrNoQuestionsFound
	}

	p := newParser(start)
	for _, line := range lines[start:] {
		p.feed(line)
	}
	p.flush()

	doc := &model.Document{
		Title:     lines[0],
		Passage:   append([]string{}, lines[1:start]...),
		Questions: p.questions,
	}
	doc.Normalize()
	return doc, p.diags, nil
}

// findQuestionStart returns the index of the first question line, skipping
// the title, or -1. A strict pattern is tried over the whole input before
// falling back to any line beginning with "1.".
func findQuestionStart(lines []string) int {
	for i := 1; i < len(lines); i++ {
		if questionStartRegex.MatchString(lines[i]) {
			return i
		}
	}
	for i := 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], "1.") {
			return i
		}
	}
	return -1
}

// parser folds question-region lines into questions. At most one question
// is under construction; nil current means no question is active.
type parser struct {
	offset    int
	n         int
	current   *model.Question
	questions []model.Question
	diags     []Diagnostic
	seen      map[int]bool
	lastID    int
}

func newParser(offset int) *parser {
	return &parser{offset: offset, seen: make(map[int]bool)}
}

func (p *parser) feed(line string) {
	p.n++
	switch {
	case p.startQuestion(line):
	case isOption(line):
		if p.active(line) {
			p.current.Options = append(p.current.Options, line)
		}
	case strings.Contains(line, answerMarker):
		if p.active(line) {
			p.setAnswer(line)
		}
	case strings.Contains(line, annotationMarker):
		// editorial note, dropped
	default:
		if p.active(line) {
			p.continueLast(line)
		}
	}
}

// startQuestion handles a marker line, flushing the previous question.
// It reports false if line is not a marker.
func (p *parser) startQuestion(line string) bool {
	m := markerRegex.FindStringSubmatch(line)
	if m == nil {
		return false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return false
	}
	p.flush()

	switch {
	case p.seen[id]:
		p.report(KindDuplicateID, line)
	case len(p.seen) > 0 && id < p.lastID:
		p.report(KindOutOfOrderID, line)
	}
	p.seen[id] = true
	p.lastID = id

	text := m[2]
	p.current = &model.Question{
		ID:      id,
		Text:    text,
		Type:    Classify(text),
		Options: []string{},
	}
	return true
}

func (p *parser) setAnswer(line string) {
	m := answerRegex.FindStringSubmatch(line)
	if m == nil {
		p.report(KindUnparsedAnswer, line)
		return
	}
	p.current.Answer = m[1]
}

func (p *parser) continueLast(line string) {
	q := p.current
	if len(q.Options) == 0 {
		if q.Text == "" {
			q.Text = line
		} else {
			q.Text += " " + line
		}
		return
	}
	q.Options[len(q.Options)-1] += " " + line
}

// active reports whether a question is under construction, recording the
// line as an orphan when none is.
func (p *parser) active(line string) bool {
	if p.current != nil {
		return true
	}
	p.report(KindOrphanLine, line)
	return false
}

func (p *parser) flush() {
	if p.current == nil {
		return
	}
	p.questions = append(p.questions, *p.current)
	p.current = nil
}

func (p *parser) report(kind DiagnosticKind, line string) {
	p.diags = append(p.diags, Diagnostic{
		Line: p.offset + p.n,
		Kind: kind,
		Text: line,
	})
}

func isOption(line string) bool {
	return len(line) >= 2 && line[0] >= 'A' && line[0] <= 'F' && line[1] == '.'
}
