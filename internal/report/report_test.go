package report

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pavelanni/quizbank/internal/model"
)

func testDoc() *model.Document {
	return &model.Document{
		Title:   "The Origin of the K-T Asteroid",
		Passage: []string{"p1", "p2", "p3"},
		Questions: []model.Question{
			{ID: 1, Type: model.TypeVocabulary, Options: []string{"A. a"}, Answer: "A"},
			{ID: 2, Type: model.TypeDetail, Options: []string{"A. a"}},
			{ID: 3, Type: model.TypeDetail, Options: []string{}, Answer: "C"},
			{ID: 4, Type: model.TypeSummary, Options: []string{}},
		},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(testDoc())

	if s.PassageLines != 3 || s.Questions != 4 {
		t.Errorf("expected 3 passage lines and 4 questions, got %d and %d", s.PassageLines, s.Questions)
	}
	if !reflect.DeepEqual(s.NoAnswer, []int{2, 4}) {
		t.Errorf("expected no-answer ids [2 4], got %v", s.NoAnswer)
	}
	if !reflect.DeepEqual(s.NoOptions, []int{3, 4}) {
		t.Errorf("expected no-options ids [3 4], got %v", s.NoOptions)
	}

	want := []TypeCount{
		{model.TypeVocabulary, 1},
		{model.TypeNegativeDetail, 0},
		{model.TypeInference, 0},
		{model.TypeSummary, 1},
		{model.TypeInsertion, 0},
		{model.TypeDetail, 2},
	}
	if !reflect.DeepEqual(s.ByType, want) {
		t.Errorf("ByType = %v, want %v", s.ByType, want)
	}
}

func TestRenderNoColor(t *testing.T) {
	out := Render(Summarize(testDoc()), true)

	for _, want := range []string{
		"The Origin of the K-T Asteroid",
		"questions: 4",
		"TYPE",
		"negative-detail",
		"no answer key: 2, 4",
		"no options: 3, 4",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("no-color report contains ANSI escapes")
	}
}

func TestRenderCleanBank(t *testing.T) {
	doc := &model.Document{
		Title:     "Clean",
		Questions: []model.Question{{ID: 1, Type: model.TypeDetail, Options: []string{"A. a"}, Answer: "A"}},
	}
	out := Render(Summarize(doc), true)
	if strings.Contains(out, "no answer key") || strings.Contains(out, "no options") {
		t.Errorf("unexpected warnings in report:\n%s", out)
	}
}
