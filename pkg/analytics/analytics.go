package analytics

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/dtnitsch/feeday/models"
)

// MaxDay is the largest day-of-month.
const MaxDay = 31

var (
	// ErrEmptyTimestamp is returned for blank or null-like timestamp cells.
	ErrEmptyTimestamp = errors.New("empty timestamp")
	// ErrEmptyGroup is returned when a mode is requested for no observations.
	ErrEmptyGroup = errors.New("empty group")
	// ErrDayOutOfRange is returned for days outside 1..31.
	ErrDayOutOfRange = errors.New("day out of range")
)

// Analytics derives submission days and day frequencies.
// Timestamps without a zone are read in Location (UTC when nil).
type Analytics struct {
	Location *time.Location
}

// nullValues are cells that spreadsheet and dataframe exports use for missing dates.
var nullValues = map[string]struct{}{
	"": {}, "nan": {}, "nat": {}, "null": {}, "none": {}, "n/a": {}, "na": {},
}

// SubmissionDay parses raw and returns the timestamp and its day-of-month,
// taken in the timestamp's own zone.
func (a *Analytics) SubmissionDay(raw string) (time.Time, int, error) {
	cleaned := strings.TrimSpace(raw)
	if _, isNull := nullValues[strings.ToLower(cleaned)]; isNull {
		return time.Time{}, 0, ErrEmptyTimestamp
	}

	loc := a.Location
	if loc == nil {
		loc = time.UTC
	}

	ts, err := dateparse.ParseIn(cleaned, loc)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("unparseable timestamp %q: %w", raw, err)
	}
	return ts, ts.Day(), nil
}

// DeriveDays converts raw rows into fee records. It stops at the first row
// whose timestamp cannot be parsed.
func (a *Analytics) DeriveDays(rows []models.FeeRow) ([]models.FeeRecord, error) {
	records := make([]models.FeeRecord, 0, len(rows))
	for i, row := range rows {
		ts, day, err := a.SubmissionDay(row.FeeSubmissionDate)
		if err != nil {
			line := row.Line
			if line == 0 {
				line = i + 1
			}
			return nil, fmt.Errorf("row %d (student_id %s): %w", line, row.StudentID, err)
		}
		records = append(records, models.FeeRecord{
			StudentID:     row.StudentID,
			SubmittedAt:   ts,
			SubmissionDay: day,
			Extra:         row.Extra,
		})
	}
	return records, nil
}

// DayCounts is a tally indexed by day-of-month; index 0 is unused.
type DayCounts [MaxDay + 1]int

// DayFrequency counts occurrences of each day in a single pass.
func DayFrequency(days []int) (DayCounts, error) {
	var counts DayCounts
	for _, d := range days {
		if d < 1 || d > MaxDay {
			return DayCounts{}, fmt.Errorf("%w: %d", ErrDayOutOfRange, d)
		}
		counts[d]++
	}
	return counts, nil
}

// Mode returns the day with the highest count. Ties go to the smallest day.
func (c DayCounts) Mode() models.DayMode {
	var best models.DayMode
	for day := 1; day <= MaxDay; day++ {
		if c[day] > best.SubmissionCount {
			best = models.DayMode{MostCommonDay: day, SubmissionCount: c[day]}
		}
	}
	return best
}

// Total returns the number of observations.
func (c DayCounts) Total() int {
	total := 0
	for _, n := range c[1:] {
		total += n
	}
	return total
}

type DayCount struct {
	Day   int `json:"day" yaml:"day"`
	Count int `json:"count" yaml:"count"`
}

// Histogram lists the days that occurred, most frequent first, then by day.
func (c DayCounts) Histogram() []DayCount {
	out := make([]DayCount, 0, MaxDay)
	for day := 1; day <= MaxDay; day++ {
		if c[day] > 0 {
			out = append(out, DayCount{Day: day, Count: c[day]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// ModeDay returns the most common day in days and how often it occurs.
func ModeDay(days []int) (models.DayMode, error) {
	if len(days) == 0 {
		return models.DayMode{}, ErrEmptyGroup
	}
	counts, err := DayFrequency(days)
	if err != nil {
		return models.DayMode{}, err
	}
	return counts.Mode(), nil
}

// GroupDays groups submission days by student. order lists students in the
// order they first appear; each group keeps record order.
func GroupDays(records []models.FeeRecord) (order []string, groups map[string][]int) {
	groups = make(map[string][]int)
	for _, r := range records {
		if _, seen := groups[r.StudentID]; !seen {
			order = append(order, r.StudentID)
		}
		groups[r.StudentID] = append(groups[r.StudentID], r.SubmissionDay)
	}
	return order, groups
}
