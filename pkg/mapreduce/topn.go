package mapreduce

import (
	"fmt"
	"sort"

	"github.com/dtnitsch/feeday/models"
)

// StudentMode pairs a student id with its result.
type StudentMode struct {
	StudentID string
	models.DayMode
}

// TopStudents returns the n students with the most submissions on their most
// common day. Equal counts keep natural student order.
func TopStudents(results models.Result, n int) []StudentMode {
	keys := results.Keys()
	ss := make([]StudentMode, 0, len(keys))
	for _, k := range keys {
		ss = append(ss, StudentMode{StudentID: k, DayMode: results[k]})
	}

	sort.SliceStable(ss, func(i, j int) bool {
		return ss[i].SubmissionCount > ss[j].SubmissionCount
	})

	limit := n
	if len(ss) < n {
		limit = len(ss)
	}
	if limit < 0 {
		limit = 0
	}
	return ss[:limit]
}

// TopStudentLabels formats the top n students as "id:day:count" strings.
func TopStudentLabels(results models.Result, n int) []string {
	top := TopStudents(results, n)
	labels := make([]string, len(top))
	for i, s := range top {
		labels[i] = fmt.Sprintf("%s:%d:%d", s.StudentID, s.MostCommonDay, s.SubmissionCount)
	}
	return labels
}

// Sample returns the first n students in natural order. n <= 0 returns all.
func Sample(results models.Result, n int) []StudentMode {
	keys := results.Keys()
	if n > 0 && n < len(keys) {
		keys = keys[:n]
	}
	out := make([]StudentMode, len(keys))
	for i, k := range keys {
		out[i] = StudentMode{StudentID: k, DayMode: results[k]}
	}
	return out
}
