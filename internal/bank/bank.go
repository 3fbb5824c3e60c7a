// Package bank reads and writes converted question banks.
package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pavelanni/quizbank/internal/model"
)

// Format is a question bank serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown bank format %q (want json or yaml)", s)
}

// FormatFromPath picks a format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Write encodes doc to w. Non-ASCII text is written verbatim.
func Write(w io.Writer, doc *model.Document, f Format) error {
	out := *doc
	out.Questions = append([]model.Question(nil), doc.Questions...)
	out.Normalize()

	switch f {
	case FormatJSON:
		return encodeJSON(w, &out)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&out); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown bank format %q", f)
}

// Marshal is Write into a byte slice.
func Marshal(doc *model.Document, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, doc, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalQuestions encodes a question list as JSON, the same way Write
// encodes the questions of a bank.
func MarshalQuestions(qs []model.Question) ([]byte, error) {
	doc := model.Document{Questions: append([]model.Question(nil), qs...)}
	doc.Normalize()

	var buf bytes.Buffer
	if err := encodeJSON(&buf, doc.Questions); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}

// WriteFile writes doc to path, creating parent directories.
func WriteFile(path string, doc *model.Document, f Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	data, err := Marshal(doc, f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Read decodes a bank from r.
func Read(r io.Reader, f Format) (*model.Document, error) {
	var doc model.Document
	switch f {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown bank format %q", f)
	}

	for _, q := range doc.Questions {
		if !q.Type.Valid() {
			return nil, fmt.Errorf("question %d: unknown type %q", q.ID, q.Type)
		}
	}
	doc.Normalize()
	return &doc, nil
}

// ReadFile loads a bank file, choosing the format from its extension.
func ReadFile(path string) (*model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := Read(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return doc, nil
}
