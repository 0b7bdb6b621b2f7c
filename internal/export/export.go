// Package export renders expense lists as CSV or JSON documents and writes
// them to disk.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
)

// Kind is an export document format.
type Kind string

const (
	KindCSV  Kind = "csv"
	KindJSON Kind = "json"
)

// ParseKind reports whether s names a supported format. Matching ignores case.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindCSV, KindJSON:
		return k, true
	}
	return "", false
}

// Extension is the file extension for k, without the dot.
func (k Kind) Extension() string {
	return string(k)
}

// ContentType is the MIME type served for k.
func (k Kind) ContentType() string {
	switch k {
	case KindCSV:
		return "text/csv; charset=utf-8"
	case KindJSON:
		return "application/json; charset=utf-8"
	}
	return "application/octet-stream"
}

// MediumDateLayout renders dates like "Jan 2, 2006".
const MediumDateLayout = "Jan 2, 2006"

// MediumDate formats t in loc with MediumDateLayout.
func MediumDate(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(MediumDateLayout)
}

var csvHeader = []string{"ID", "Name", "Date", "Amount", "Category"}

// Format renders expenses in input order. Dates are rendered in loc. On
// failure no bytes are returned.
func Format(expenses []models.Expense, kind Kind, loc *time.Location) ([]byte, error) {
	for _, e := range expenses {
		if !utf8.ValidString(e.Name) || !utf8.ValidString(string(e.Category)) {
			return nil, apperrors.Wrap(apperrors.ErrExportFailed,
				fmt.Errorf("expense %s: invalid UTF-8 in text field", e.ID))
		}
	}

	switch kind {
	case KindCSV:
		return formatCSV(expenses, loc), nil
	case KindJSON:
		out, err := formatJSON(expenses, loc)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrExportFailed, err)
		}
		return out, nil
	}
	return nil, apperrors.ErrInvalidExportFormat
}

func formatCSV(expenses []models.Expense, loc *time.Location) []byte {
	var buf bytes.Buffer
	writeCSVRow(&buf, csvHeader)
	for _, e := range expenses {
		writeCSVRow(&buf, []string{
			e.ID,
			e.Name,
			MediumDate(e.Date, loc),
			e.Value.String(),
			string(e.Category.Normalize()),
		})
	}
	return buf.Bytes()
}

func writeCSVRow(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(escapeCSV(f))
	}
	buf.WriteByte('\n')
}

// escapeCSV quotes f only when it holds a separator, quote or line break.
// encoding/csv also quotes fields with a leading space, which would change
// otherwise plain values.
func escapeCSV(f string) string {
	if !strings.ContainsAny(f, ",\"\n\r") {
		return f
	}
	return `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
}

type jsonExpense struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Date     string      `json:"date"`
	Amount   json.Number `json:"amount"`
	Category string      `json:"category"`
}

func formatJSON(expenses []models.Expense, loc *time.Location) ([]byte, error) {
	rows := make([]jsonExpense, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, jsonExpense{
			ID:       e.ID,
			Name:     e.Name,
			Date:     MediumDate(e.Date, loc),
			Amount:   json.Number(e.Value.String()),
			Category: string(e.Category.Normalize()),
		})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
