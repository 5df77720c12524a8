package mapreduce

import (
	"fmt"

	"github.com/dtnitsch/feeday/models"
	"github.com/dtnitsch/feeday/pkg/analytics"
)

// Map computes the most common submission day for every student in records.
// It is both the sequential path and the per-chunk task of the parallel path.
func Map(records []models.FeeRecord) (models.Result, error) {
	order, groups := analytics.GroupDays(records)

	results := make(models.Result, len(order))
	for _, studentID := range order {
		mode, err := analytics.ModeDay(groups[studentID])
		if err != nil {
			return nil, fmt.Errorf("student_id %s: %w", studentID, err)
		}
		results[studentID] = mode
	}

	return results, nil
}

// Reduce merges per-chunk results into a single map. When a student appears
// in more than one part the later part wins.
func Reduce(intermediate []models.Result) models.Result {
	size := 0
	for _, part := range intermediate {
		size += len(part)
	}

	finalResults := make(models.Result, size)
	for _, part := range intermediate {
		for studentID, mode := range part {
			finalResults[studentID] = mode
		}
	}

	return finalResults
}

// Mismatch describes a student whose sequential and parallel results differ.
type Mismatch struct {
	StudentID  string          `json:"student_id" yaml:"student_id"`
	Sequential *models.DayMode `json:"sequential,omitempty" yaml:"sequential,omitempty"`
	Parallel   *models.DayMode `json:"parallel,omitempty" yaml:"parallel,omitempty"`
}

// Diff lists the students whose entries differ between two results, in
// natural student order. A nil side means the student is missing there.
func Diff(sequential, parallel models.Result) []Mismatch {
	seen := make(map[string]struct{}, len(sequential))
	var ids []string
	for id := range sequential {
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for id := range parallel {
		if _, ok := seen[id]; !ok {
			ids = append(ids, id)
		}
	}
	models.SortStudentIDs(ids)

	var mismatches []Mismatch
	for _, id := range ids {
		s, sok := sequential[id]
		p, pok := parallel[id]
		if sok && pok && s == p {
			continue
		}
		m := Mismatch{StudentID: id}
		if sok {
			m.Sequential = &s
		}
		if pok {
			m.Parallel = &p
		}
		mismatches = append(mismatches, m)
	}
	return mismatches
}
