package convert

import (
	"strings"

	"github.com/pavelanni/quizbank/internal/model"
)

// classifyRule maps a set of case-sensitive phrases to a question type.
type classifyRule struct {
	qtype   model.QuestionType
	phrases []string
}

// classifyRules is tested top to bottom; the first rule with a matching
// phrase wins.
var classifyRules = []classifyRule{
	{model.TypeVocabulary, []string{"closest in meaning"}},
	{model.TypeNegativeDetail, []string{"EXCEPT"}},
	{model.TypeInference, []string{"infer", "imply", "implies"}},
	{model.TypeSummary, []string{"summary", "essential information"}},
	{model.TypeInsertion, []string{"where the following sentence could be added"}},
}

// Classify returns the question type for a question prompt.
func Classify(text string) model.QuestionType {
	for _, rule := range classifyRules {
		for _, p := range rule.phrases {
			if strings.Contains(text, p) {
				return rule.qtype
			}
		}
	}
	return model.TypeDetail
}
