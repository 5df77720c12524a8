package models

import (
	"sort"
	"strconv"
)

// DayMode is the most common submission day of one student.
type DayMode struct {
	MostCommonDay   int `json:"most_common_day" yaml:"most_common_day"`
	SubmissionCount int `json:"submission_count" yaml:"submission_count"`
}

// Result maps student_id to its DayMode.
type Result map[string]DayMode

// Keys returns the student ids in natural order: numeric ids sort by value
// and come before non-numeric ids, which sort lexically.
func (r Result) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	SortStudentIDs(keys)
	return keys
}

// Equal reports whether both results hold the same students with the same
// day and count.
func (r Result) Equal(other Result) bool {
	if len(r) != len(other) {
		return false
	}
	for k, v := range r {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// SortStudentIDs sorts ids in place using the same order as Result.Keys.
func SortStudentIDs(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		return lessStudentID(ids[i], ids[j])
	})
}

func lessStudentID(a, b string) bool {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)
	switch {
	case aErr == nil && bErr == nil:
		if ai != bi {
			return ai < bi
		}
		return a < b
	case aErr == nil:
		return true
	case bErr == nil:
		return false
	default:
		return a < b
	}
}
