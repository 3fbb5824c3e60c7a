package model

import "context"

// QuestionType tags a reading question by the kind of skill it tests.
type QuestionType string

const (
	TypeVocabulary     QuestionType = "vocabulary"
	TypeNegativeDetail QuestionType = "negative-detail"
	TypeInference      QuestionType = "inference"
	TypeSummary        QuestionType = "summary"
	TypeInsertion      QuestionType = "insertion"
	// TypeDetail is the default when no other rule matches.
	TypeDetail QuestionType = "detail"
)

// AllQuestionTypes returns every question type in classification precedence
// order, ending with the default.
func AllQuestionTypes() []QuestionType {
	return []QuestionType{
		TypeVocabulary,
		TypeNegativeDetail,
		TypeInference,
		TypeSummary,
		TypeInsertion,
		TypeDetail,
	}
}

// Valid reports whether t is one of the known question types.
func (t QuestionType) Valid() bool {
	for _, known := range AllQuestionTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Question is one multiple-choice reading question.
type Question struct {
	ID      int          `json:"id" yaml:"id"`
	Text    string       `json:"text" yaml:"text"`
	Type    QuestionType `json:"type" yaml:"type"`
	Options []string     `json:"options" yaml:"options"`
	Answer  string       `json:"answer" yaml:"answer"`
}

// Document is a converted question bank: a title, the reading passage and
// its questions in the order they appear in the source.
type Document struct {
	Title     string     `json:"title" yaml:"title"`
	Passage   []string   `json:"passage" yaml:"passage"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Normalize replaces nil slices with empty ones so the document always
// encodes arrays rather than nulls.
func (d *Document) Normalize() {
	if d.Passage == nil {
		d.Passage = []string{}
	}
	if d.Questions == nil {
		d.Questions = []Question{}
	}
	for i := range d.Questions {
		if d.Questions[i].Options == nil {
			d.Questions[i].Options = []string{}
		}
	}
}

// QuestionsByID returns every question carrying id, in document order.
// Ids are not guaranteed unique.
func (d *Document) QuestionsByID(id int) []Question {
	var out []Question
	for _, q := range d.Questions {
		if q.ID == id {
			out = append(out, q)
		}
	}
	return out
}

// ServeConfig holds quiz server parameters set via CLI flags.
type ServeConfig struct {
	StaticDir   string   // directory with the quiz front-end; empty disables /quiz/
	QuizURL     string   // iframe source, relative to the base path
	BasePath    string   // URL prefix for sub-path deployments (e.g. "/toefl")
	CORSOrigins []string // allowed origins for /api and bank requests
}

type basePathCtxKey struct{}

// ContextWithBasePath stores the base path prefix in context.
func ContextWithBasePath(ctx context.Context, basePath string) context.Context {
	return context.WithValue(ctx, basePathCtxKey{}, basePath)
}

// BasePathFromContext retrieves the base path from context (empty string if not set).
func BasePathFromContext(ctx context.Context) string {
	bp, _ := ctx.Value(basePathCtxKey{}).(string)
	return bp
}
