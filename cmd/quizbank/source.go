package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pavelanni/quizbank/internal/convert"
	"github.com/pavelanni/quizbank/internal/docx"
	"github.com/pavelanni/quizbank/internal/model"
)

func extractDocx(path string) ([]string, error) {
	lines, err := docx.Extract(path)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}
	slog.Debug("extracted paragraphs", "path", path, "count", len(lines))
	return lines, nil
}

// readSource returns the trimmed, non-blank lines of a .docx or text file.
// A path of "-" reads text from stdin.
func readSource(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".docx") {
		return extractDocx(path)
	}

	if path == "-" {
		return convert.ReadLines(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	lines, err := convert.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

// convertSource reads path and converts it into a question bank, logging
// every diagnostic. In strict mode any diagnostic fails the conversion.
func convertSource(path string, strict bool) (*model.Document, error) {
	lines, err := readSource(path)
	if err != nil {
		return nil, err
	}

	doc, diags, err := convert.Convert(lines)
	if err != nil {
		if errors.Is(err, convert.ErrNoQuestionsFound) {
			slog.Error("failed to parse content", "path", path, "lines", len(lines))
		}
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}

	for _, d := range diags {
		slog.Warn("conversion diagnostic", "path", path, "line", d.Line, "kind", d.Kind, "text", d.Text)
	}
	if strict && len(diags) > 0 {
		return nil, fmt.Errorf("convert %s: %d diagnostics in strict mode", path, len(diags))
	}

	slog.Info("converted question bank",
		"path", path,
		"title", doc.Title,
		"passage_lines", len(doc.Passage),
		"questions", len(doc.Questions),
	)
	return doc, nil
}
