package convert

import "fmt"

// DiagnosticKind names a non-fatal problem found while parsing questions.
type DiagnosticKind string

const (
	// KindOrphanLine is an option, answer or continuation line seen before
	// any question marker. The line is dropped.
	KindOrphanLine DiagnosticKind = "orphan-line"
	// KindDuplicateID is a question marker repeating an earlier id.
	KindDuplicateID DiagnosticKind = "duplicate-id"
	// KindOutOfOrderID is a question marker whose id is lower than the previous one.
	KindOutOfOrderID DiagnosticKind = "out-of-order-id"
	// KindUnparsedAnswer is an answer-key line with no recognizable letters.
	KindUnparsedAnswer DiagnosticKind = "unparsed-answer"
)

// Diagnostic reports a line that did not fit the expected shape.
// Line is 1-based and indexes the input passed to Convert.
type Diagnostic struct {
	Line int
	Kind DiagnosticKind
	Text string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %q", d.Line, d.Kind, d.Text)
}
