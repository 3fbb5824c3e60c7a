package bank

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pavelanni/quizbank/internal/model"
)

func sampleDoc() *model.Document {
	return &model.Document{
		Title:   "My Title",
		Passage: []string{"Line of passage."},
		Questions: []model.Question{
			{ID: 1, Text: "What is X?", Type: model.TypeDetail, Options: []string{"A. foo", "B. bar"}, Answer: "B"},
			{ID: 2, Text: "Which is true EXCEPT?", Type: model.TypeNegativeDetail, Options: []string{"A. x", "B. y"}, Answer: "A"},
		},
	}
}

const sampleJSON = `{
  "title": "My Title",
  "passage": [
    "Line of passage."
  ],
  "questions": [
    {
      "id": 1,
      "text": "What is X?",
      "type": "detail",
      "options": [
        "A. foo",
        "B. bar"
      ],
      "answer": "B"
    },
    {
      "id": 2,
      "text": "Which is true EXCEPT?",
      "type": "negative-detail",
      "options": [
        "A. x",
        "B. y"
      ],
      "answer": "A"
    }
  ]
}
`

func TestWriteJSON(t *testing.T) {
	got, err := Marshal(sampleDoc(), FormatJSON)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(got) != sampleJSON {
		t.Errorf("unexpected JSON:\n%s", got)
	}
}

func TestWriteJSONVerbatimText(t *testing.T) {
	doc := &model.Document{
		Title: "小行星 <K-T> & more",
		Questions: []model.Question{
			{ID: 1, Text: "Correct Answer：C", Type: model.TypeDetail},
		},
	}
	got, err := Marshal(doc, FormatJSON)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for _, want := range []string{`"小行星 <K-T> & more"`, `"Correct Answer：C"`, `"passage": []`, `"options": []`, `"answer": ""`} {
		if !strings.Contains(string(got), want) {
			t.Errorf("expected output to contain %s, got:\n%s", want, got)
		}
	}
	if doc.Questions[0].Options != nil {
		t.Error("Write mutated the input document")
	}
}

func TestMarshalQuestions(t *testing.T) {
	qs := []model.Question{
		{ID: 3, Text: "Which <b>word</b> means “hit”?", Type: model.TypeVocabulary, Answer: "A"},
	}

	data, err := MarshalQuestions(qs)
	if err != nil {
		t.Fatalf("MarshalQuestions: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, "<b>word</b>") || !strings.Contains(got, "“hit”") {
		t.Errorf("expected verbatim text, got:\n%s", got)
	}
	if !strings.Contains(got, `"options": []`) {
		t.Errorf("expected empty options array, got:\n%s", got)
	}
	if !strings.HasPrefix(got, "[\n  {") {
		t.Errorf("expected indented array, got:\n%s", got)
	}
	if qs[0].Options != nil {
		t.Error("MarshalQuestions modified its input")
	}
}

func TestWriteDeterministic(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML} {
		a, err := Marshal(sampleDoc(), f)
		if err != nil {
			t.Fatalf("Marshal %s: %v", f, err)
		}
		b, _ := Marshal(sampleDoc(), f)
		if !bytes.Equal(a, b) {
			t.Errorf("%s output differs between runs", f)
		}
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	data, err := Marshal(sampleDoc(), FormatYAML)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), "type: negative-detail") {
		t.Errorf("unexpected YAML:\n%s", data)
	}

	got, err := Read(bytes.NewReader(data), FormatYAML)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(got, sampleDoc()) {
		t.Errorf("Read() = %+v, want %+v", got, sampleDoc())
	}
}

func TestReadJSON(t *testing.T) {
	got, err := Read(strings.NewReader(`{"title":"T","questions":[{"id":3,"text":"Q","type":"summary"}]}`), FormatJSON)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Passage == nil || got.Questions[0].Options == nil {
		t.Error("expected nil slices to be normalized")
	}
	if got.Questions[0].Type != model.TypeSummary {
		t.Errorf("expected type summary, got %q", got.Questions[0].Type)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		f     Format
	}{
		{"bad json", `{"title":`, FormatJSON},
		{"bad yaml", "title: [", FormatYAML},
		{"unknown type", `{"title":"T","questions":[{"id":1,"type":"trivia"}]}`, FormatJSON},
		{"unknown format", `{}`, Format("xml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tt.input), tt.f); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{" yml ", FormatYAML, false},
		{"toml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"bank.json":          FormatJSON,
		"bank.yaml":          FormatYAML,
		"dir/bank.YML":       FormatYAML,
		"questions_new":      FormatJSON,
		"data/questions.txt": FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestWriteFileAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "questions_new.json")
	if err := WriteFile(path, sampleDoc(), FormatJSON); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != sampleJSON {
		t.Errorf("unexpected file content:\n%s", data)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !reflect.DeepEqual(got, sampleDoc()) {
		t.Errorf("ReadFile() = %+v", got)
	}
}

func TestWriteFileEmptyPath(t *testing.T) {
	if err := WriteFile("", sampleDoc(), FormatJSON); err == nil {
		t.Error("expected error for empty path")
	}
}
