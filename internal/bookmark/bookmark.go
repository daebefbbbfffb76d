// Package bookmark holds the operator's bookmark table and turns its rows
// into the entries stamped onto merged documents.
//
// Types:
//   - Row: One editable table row; the page cell is raw text.
//   - Entry: A parsed (page, label) pair with a 1-based page.
//   - Table: Ordered rows with add/remove as simple list splices.
//
// Parse converts rows to entries once per run, skipping rows whose page text
// is not an integer with a warning.
package bookmark

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"go-pdfbinder/internal/logsink"
	"go-pdfbinder/internal/utils"
)

var (
	ErrEmptyField  = errors.New("page and label must not be empty")
	ErrNoSelection = errors.New("no bookmark row selected")
	ErrInvalidPage = errors.New("page is not a valid integer")
)

// Entry is a bookmark resolved to a page number. Order is application order;
// duplicate pages or labels are allowed.
type Entry struct {
	Page  int    `json:"page"`
	Label string `json:"label"`
}

// Row is an operator-editable table row.
type Row struct {
	ID    string `json:"id"`
	Page  string `json:"page"`
	Label string `json:"label"`
}

var defaultRows = []struct{ page, label string }{
	{"1", "封面"},
	{"2", "扉页"},
	{"3", "版权"},
	{"4", "目录"},
	{"6", "正文"},
}

// Defaults returns fresh copies of the pre-populated rows.
func Defaults() []Row {
	rows := make([]Row, len(defaultRows))
	for i, d := range defaultRows {
		rows[i] = Row{ID: utils.GenerateUUID(), Page: d.page, Label: d.label}
	}
	return rows
}

// Table is not safe for concurrent use; callers guard it.
type Table struct {
	rows []Row
}

func NewTable(rows ...Row) *Table {
	t := &Table{rows: make([]Row, 0, len(rows))}
	for _, r := range rows {
		if r.ID == "" {
			r.ID = utils.GenerateUUID()
		}
		t.rows = append(t.rows, r)
	}
	return t
}

func DefaultTable() *Table {
	return NewTable(Defaults()...)
}

// Add appends a row. Both fields must be non-empty; the page text is not
// validated here.
func (t *Table) Add(page, label string) (Row, error) {
	if strings.TrimSpace(page) == "" || strings.TrimSpace(label) == "" {
		return Row{}, ErrEmptyField
	}
	row := Row{ID: utils.GenerateUUID(), Page: page, Label: label}
	t.rows = append(t.rows, row)
	return row, nil
}

// Remove deletes the row with the given ID.
func (t *Table) Remove(id string) error {
	i := slices.IndexFunc(t.rows, func(r Row) bool { return r.ID == id })
	if id == "" || i < 0 {
		return ErrNoSelection
	}
	t.rows = slices.Delete(t.rows, i, i+1)
	return nil
}

// Rows returns a copy of the rows in table order.
func (t *Table) Rows() []Row {
	return slices.Clone(t.rows)
}

func (t *Table) Len() int {
	return len(t.rows)
}

// ParseRow converts a single row. Surrounding whitespace in the page cell is
// ignored, full-width digits (as typed with a CJK input method) are accepted,
// and single underscores may group digits ("1_000").
func ParseRow(r Row) (Entry, error) {
	text, ok := normalizePage(r.Page)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidPage, r.Page)
	}
	page, err := strconv.Atoi(text)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidPage, r.Page)
	}
	return Entry{Page: page, Label: r.Label}, nil
}

func normalizePage(s string) (string, bool) {
	s = strings.TrimSpace(width.Narrow.String(s))
	if !strings.Contains(s, "_") {
		return s, true
	}
	isDigit := func(b byte) bool { return b >= '0' && b <= '9' }
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return "", false
		}
	}
	return strings.ReplaceAll(s, "_", ""), true
}

// Parse converts rows to entries in order. Rows with an unparseable page are
// reported to log and left out.
func Parse(rows []Row, log logsink.Logger) []Entry {
	if log == nil {
		log = logsink.Discard
	}
	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		e, err := ParseRow(r)
		if err != nil {
			log.Logf("警告：页码 '%s' 不是有效的整数，已跳过该行。", r.Page)
			continue
		}
		entries = append(entries, e)
	}
	return entries
}
