package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dtnitsch/feeday/models"
)

// Column names the core reads. Everything else is carried along as extra data.
const (
	ColumnStudentID         = "student_id"
	ColumnFeeSubmissionDate = "fee_submission_date"
	ColumnName              = "name"
)

// ErrMissingColumn is returned when a required column is absent from the header.
var ErrMissingColumn = errors.New("missing required column")

// Table is a materialized tabular input: one header row and its data rows.
type Table struct {
	Source  string
	Headers []string
	Rows    [][]string
}

// normalizeHeader lowercases and trims a header cell, dropping a UTF-8 BOM.
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	return strings.ToLower(strings.TrimSpace(h))
}

// Column returns the index of the named column, matched case-insensitively.
func (t *Table) Column(name string) (int, error) {
	want := normalizeHeader(name)
	for i, h := range t.Headers {
		if normalizeHeader(h) == want {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w %q in %s", ErrMissingColumn, name, t.Source)
}

// cell returns row[i], or "" for short rows.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// FeeRows maps the table to raw fee rows. Rows without a student_id are rejected.
func (t *Table) FeeRows() ([]models.FeeRow, error) {
	idCol, err := t.Column(ColumnStudentID)
	if err != nil {
		return nil, err
	}
	dateCol, err := t.Column(ColumnFeeSubmissionDate)
	if err != nil {
		return nil, err
	}

	rows := make([]models.FeeRow, 0, len(t.Rows))
	for i, row := range t.Rows {
		studentID := cell(row, idCol)
		if studentID == "" {
			return nil, fmt.Errorf("%s row %d: empty %s", t.Source, i+1, ColumnStudentID)
		}

		var extra map[string]string
		for c, h := range t.Headers {
			if c == idCol || c == dateCol {
				continue
			}
			if extra == nil {
				extra = make(map[string]string, len(t.Headers)-2)
			}
			extra[normalizeHeader(h)] = cell(row, c)
		}

		rows = append(rows, models.FeeRow{
			Line:              i + 1,
			StudentID:         studentID,
			FeeSubmissionDate: cell(row, dateCol),
			Extra:             extra,
		})
	}
	return rows, nil
}

// Students maps the table to student records. Rows without a student_id are skipped.
func (t *Table) Students() ([]models.Student, error) {
	idCol, err := t.Column(ColumnStudentID)
	if err != nil {
		return nil, err
	}
	nameCol, err := t.Column(ColumnName)
	if err != nil {
		return nil, err
	}

	students := make([]models.Student, 0, len(t.Rows))
	for _, row := range t.Rows {
		id := cell(row, idCol)
		if id == "" {
			continue
		}
		students = append(students, models.Student{StudentID: id, Name: cell(row, nameCol)})
	}
	return students, nil
}
