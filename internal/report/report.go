// Package report summarizes a converted question bank for the terminal.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pavelanni/quizbank/internal/model"
)

// TypeCount is the number of questions of one type.
type TypeCount struct {
	Type  model.QuestionType
	Count int
}

// Summary describes a converted bank.
type Summary struct {
	Title        string
	PassageLines int
	Questions    int
	ByType       []TypeCount // every known type, in classification order
	NoAnswer     []int       // ids of questions with an empty answer
	NoOptions    []int       // ids of questions without options
}

// Summarize builds a Summary of doc.
func Summarize(doc *model.Document) Summary {
	counts := make(map[model.QuestionType]int)
	s := Summary{
		Title:        doc.Title,
		PassageLines: len(doc.Passage),
		Questions:    len(doc.Questions),
	}
	for _, q := range doc.Questions {
		counts[q.Type]++
		if q.Answer == "" {
			s.NoAnswer = append(s.NoAnswer, q.ID)
		}
		if len(q.Options) == 0 {
			s.NoOptions = append(s.NoOptions, q.ID)
		}
	}
	for _, qt := range model.AllQuestionTypes() {
		s.ByType = append(s.ByType, TypeCount{Type: qt, Count: counts[qt]})
	}
	return s
}

type styles struct {
	title lipgloss.Style
	label lipgloss.Style
	warn  lipgloss.Style
	head  lipgloss.Style
	cell  lipgloss.Style
	rule  lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{
			title: plain,
			label: plain,
			warn:  plain,
			head:  plain.Padding(0, 1),
			cell:  plain.Padding(0, 1),
			rule:  plain,
		}
	}
	return styles{
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		label: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		head:  lipgloss.NewStyle().Bold(true).Padding(0, 1),
		cell:  lipgloss.NewStyle().Padding(0, 1),
		rule:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Render formats s as a short report with a per-type table.
func Render(s Summary, noColor bool) string {
	st := newStyles(noColor)

	header := st.title.Render(s.Title)
	counts := fmt.Sprintf("%s %d   %s %d",
		st.label.Render("passage lines:"), s.PassageLines,
		st.label.Render("questions:"), s.Questions)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.rule).
		Headers("TYPE", "COUNT").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.head
			}
			return st.cell
		})
	for _, tc := range s.ByType {
		t.Row(string(tc.Type), strconv.Itoa(tc.Count))
	}

	parts := []string{header, counts, t.String()}
	if len(s.NoAnswer) > 0 {
		parts = append(parts, st.warn.Render("no answer key: "+joinIDs(s.NoAnswer)))
	}
	if len(s.NoOptions) > 0 {
		parts = append(parts, st.warn.Render("no options: "+joinIDs(s.NoOptions)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func joinIDs(ids []int) string {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = strconv.Itoa(id)
	}
	return strings.Join(strs, ", ")
}
