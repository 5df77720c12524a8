// Package report renders analysis results as text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dtnitsch/feeday/models"
	"github.com/dtnitsch/feeday/pkg/analytics"
	"github.com/dtnitsch/feeday/pkg/manifest"
	"github.com/dtnitsch/feeday/pkg/mapreduce"
	"gopkg.in/yaml.v3"
)

// StudentResult is one student's result joined with the student's name.
type StudentResult struct {
	StudentID       string               `json:"student_id" yaml:"student_id"`
	Name            string               `json:"name,omitempty" yaml:"name,omitempty"`
	MostCommonDay   int                  `json:"most_common_day" yaml:"most_common_day"`
	SubmissionCount int                  `json:"submission_count" yaml:"submission_count"`
	Histogram       []analytics.DayCount `json:"histogram,omitempty" yaml:"histogram,omitempty"`
}

// FinalOutput is the structured output for an entire run.
type FinalOutput struct {
	Status     string                   `json:"status" yaml:"status"`
	Results    []StudentResult          `json:"results" yaml:"results"`
	Mismatches []mapreduce.Mismatch     `json:"mismatches,omitempty" yaml:"mismatches,omitempty"`
	Manifest   manifest.SummaryManifest `json:"manifest" yaml:"manifest"`
}

// Join pairs results with names. Students without a name keep an empty one.
func Join(modes []mapreduce.StudentMode, names map[string]string) []StudentResult {
	out := make([]StudentResult, len(modes))
	for i, m := range modes {
		out[i] = StudentResult{
			StudentID:       m.StudentID,
			Name:            names[m.StudentID],
			MostCommonDay:   m.MostCommonDay,
			SubmissionCount: m.SubmissionCount,
		}
	}
	return out
}

// Marshal encodes out as JSON or YAML.
func Marshal(out FinalOutput, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(out)
	case "json":
		return json.MarshalIndent(out, "", "  ")
	}
	return nil, fmt.Errorf("unsupported structured format %q", format)
}

// WriteAnalysis prints every student's result in the plain layout of the
// sequential report.
func WriteAnalysis(w io.Writer, results []StudentResult) error {
	var sb strings.Builder
	sb.WriteString("Analysis of Fee Submission Days (Individual Students):\n")
	for _, r := range results {
		fmt.Fprintf(&sb, "Student ID: %s\n", r.StudentID)
		if r.Name != "" {
			fmt.Fprintf(&sb, "  Name: %s\n", r.Name)
		}
		fmt.Fprintf(&sb, "  Most common fee submission day: %d\n", r.MostCommonDay)
		fmt.Fprintf(&sb, "  Number of submissions on that day: %d\n", r.SubmissionCount)
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteComparison prints timings, the speedup verdict, the equivalence check
// and a sample of the parallel results with names.
func WriteComparison(w io.Writer, m manifest.SummaryManifest, mismatches []mapreduce.Mismatch, sample []StudentResult) error {
	if m.Parallel == nil {
		return fmt.Errorf("manifest has no parallel section")
	}
	p := m.Parallel

	var sb strings.Builder
	fmt.Fprintf(&sb, "Records: %s  Students: %s  Partitions: %d (%s, %d workers)\n",
		humanize.Comma(int64(m.Records)), humanize.Comma(int64(m.Students)), len(p.ChunkSizes), p.Strategy, p.Workers)
	fmt.Fprintf(&sb, "Sequential Execution Time: %.4f seconds\n", m.SequentialSeconds)
	fmt.Fprintf(&sb, "Parallel Execution Time: %.4f seconds\n", p.Seconds)
	fmt.Fprintf(&sb, "Speedup: %.2f%%\n", p.SpeedupPercent)

	if p.MeetsTarget {
		fmt.Fprintf(&sb, "Parallel processing is at least %.0f%% faster than sequential processing.\n", manifest.SpeedupTarget)
	} else {
		fmt.Fprintf(&sb, "Parallel processing is not %.0f%% faster. Consider optimizing further or increasing data size.\n", manifest.SpeedupTarget)
	}

	if p.Equivalent {
		fmt.Fprintf(&sb, "Sequential and parallel results match for all %s students.\n", humanize.Comma(int64(m.Students)))
	} else {
		fmt.Fprintf(&sb, "WARNING: %d students differ between sequential and parallel results.\n", p.Mismatches)
		for _, mm := range mismatches {
			fmt.Fprintf(&sb, "  %s: sequential %s, parallel %s\n", mm.StudentID, describe(mm.Sequential), describe(mm.Parallel))
		}
	}
	if len(p.SpanningStudents) > 0 {
		fmt.Fprintf(&sb, "%d students have records in more than one chunk.\n", len(p.SpanningStudents))
	}

	sb.WriteString("\nSample Parallel Results with Student Names:\n")
	for _, r := range sample {
		name := r.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(&sb, "  %-10s %-24s day %2d  (%s)\n", r.StudentID, name, r.MostCommonDay, plural(r.SubmissionCount, "submission"))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteStudents prints a per-student detail view including the day histogram.
func WriteStudents(w io.Writer, results []StudentResult) error {
	var sb strings.Builder
	for _, r := range results {
		fmt.Fprintf(&sb, "Student ID: %s", r.StudentID)
		if r.Name != "" {
			fmt.Fprintf(&sb, " (%s)", r.Name)
		}
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  Most common fee submission day: %d (%s)\n", r.MostCommonDay, plural(r.SubmissionCount, "submission"))
		if len(r.Histogram) > 0 {
			parts := make([]string, len(r.Histogram))
			for i, h := range r.Histogram {
				parts[i] = fmt.Sprintf("%s=%d", humanize.Ordinal(h.Day), h.Count)
			}
			fmt.Fprintf(&sb, "  Days: %s\n", strings.Join(parts, ", "))
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func describe(m *models.DayMode) string {
	if m == nil {
		return "missing"
	}
	return fmt.Sprintf("day %d x%d", m.MostCommonDay, m.SubmissionCount)
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%s %ss", humanize.Comma(int64(n)), noun)
}
