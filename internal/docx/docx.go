// Package docx extracts paragraph text from Word documents.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// wordNS is the WordprocessingML main namespace.
const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

const documentPart = "word/document.xml"

// ErrNoDocumentPart is returned when the archive has no main document part.
var ErrNoDocumentPart = errors.New(documentPart + " not found")

// Extract returns the text of every non-empty paragraph in the .docx file
// at path, one entry per paragraph, in document order.
func Extract(path string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	defer zr.Close()
	return extractZip(&zr.Reader)
}

// ExtractReader is like Extract for a .docx archive held in r.
func ExtractReader(r io.ReaderAt, size int64) ([]string, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open docx: %w", err)
	}
	return extractZip(zr)
}

func extractZip(zr *zip.Reader) ([]string, error) {
	var part *zip.File
	for _, f := range zr.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return nil, ErrNoDocumentPart
	}

	rc, err := part.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", documentPart, err)
	}
	defer rc.Close()

	paras, err := Paragraphs(rc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", documentPart, err)
	}
	return paras, nil
}

// Paragraphs walks a WordprocessingML document body and returns the
// concatenated run text of each paragraph. Paragraphs with no text after
// trimming are skipped. Text of a paragraph nested inside another (text
// boxes) belongs to the inner paragraph only.
func Paragraphs(r io.Reader) ([]string, error) {
	dec := xml.NewDecoder(r)

	var (
		paras  []string
		open   []*strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				open = append(open, &strings.Builder{})
			case "t":
				inText = len(open) > 0
			}
		case xml.EndElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if len(open) == 0 {
					continue
				}
				text := strings.TrimSpace(open[len(open)-1].String())
				open = open[:len(open)-1]
				if text != "" {
					paras = append(paras, text)
				}
			}
		case xml.CharData:
			if inText {
				open[len(open)-1].Write(t)
			}
		}
	}
	return paras, nil
}
