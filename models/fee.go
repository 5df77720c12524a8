package models

import "time"

// FeeRow is a fee record as read from a tabular source, before the
// submission day has been derived.
type FeeRow struct {
	Line              int // 1-based data row, header excluded
	StudentID         string
	FeeSubmissionDate string
	Extra             map[string]string
}

// FeeRecord is a fee payment with its derived submission day.
type FeeRecord struct {
	StudentID     string            `json:"student_id" yaml:"student_id"`
	SubmittedAt   time.Time         `json:"fee_submission_date" yaml:"fee_submission_date"`
	SubmissionDay int               `json:"submission_day" yaml:"submission_day"`
	Extra         map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Student is used only to put names next to results.
type Student struct {
	StudentID string `json:"student_id" yaml:"student_id"`
	Name      string `json:"name" yaml:"name"`
}

// StudentNames builds a student_id -> name lookup. The first row wins
// when an id is listed twice.
func StudentNames(students []Student) map[string]string {
	names := make(map[string]string, len(students))
	for _, s := range students {
		if _, ok := names[s.StudentID]; ok {
			continue
		}
		names[s.StudentID] = s.Name
	}
	return names
}
