package manifest

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dtnitsch/feeday/models"
	"github.com/dtnitsch/feeday/pkg/mapreduce"
	"github.com/dtnitsch/feeday/pkg/storage"
)

func TestSpeedup(t *testing.T) {
	tests := []struct {
		name     string
		seq, par time.Duration
		want     float64
	}{
		{name: "twice as fast", seq: 2 * time.Second, par: time.Second, want: 50},
		{name: "slower", seq: time.Second, par: 2 * time.Second, want: -100},
		{name: "equal", seq: time.Second, par: time.Second, want: 0},
		{name: "zero sequential", seq: 0, par: time.Second, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Speedup(tt.seq, tt.par); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Speedup(%v, %v) = %v, want %v", tt.seq, tt.par, got, tt.want)
			}
		})
	}
}

func TestGenerateSummary_Sequential(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fees.csv")
	content := "student_id,fee_submission_date\n1,2024-01-01\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	results := models.Result{
		"1": {MostCommonDay: 1, SubmissionCount: 1},
		"2": {MostCommonDay: 9, SubmissionCount: 4},
	}
	m := GenerateSummary(RunInfo{RunID: "run-1", Source: "csv", FeesPath: path, Records: 5, Sequential: time.Second}, results, &storage.Storage{})

	if m.Students != 2 || m.Records != 5 {
		t.Errorf("counts = %d students, %d records", m.Students, m.Records)
	}
	if m.InputSizeBytes != int64(len(content)) {
		t.Errorf("InputSizeBytes = %d, want %d", m.InputSizeBytes, len(content))
	}
	if m.Parallel != nil {
		t.Errorf("Parallel = %+v, want nil for sequential runs", m.Parallel)
	}
	if len(m.TopStudents) != 2 || m.TopStudents[0] != "2:9:4" {
		t.Errorf("TopStudents = %v", m.TopStudents)
	}
}

func TestGenerateSummary_Parallel(t *testing.T) {
	results := models.Result{"1": {MostCommonDay: 1, SubmissionCount: 1}}
	run := &mapreduce.ParallelRun{
		Result:     results,
		Strategy:   models.PartitionByRange,
		ChunkSizes: []int{2, 3},
		Workers:    2,
	}

	m := GenerateSummary(RunInfo{
		Source:           "csv",
		Sequential:       10 * time.Second,
		Parallel:         run,
		ParallelDuration: 3 * time.Second,
		Mismatches:       []mapreduce.Mismatch{{StudentID: "1"}},
	}, results, nil)

	if m.Parallel == nil {
		t.Fatal("Parallel = nil")
	}
	if math.Abs(m.Parallel.SpeedupPercent-70) > 1e-9 {
		t.Errorf("SpeedupPercent = %v, want 70", m.Parallel.SpeedupPercent)
	}
	if !m.Parallel.MeetsTarget {
		t.Error("MeetsTarget = false, want true at 70%")
	}
	if m.Parallel.Equivalent || m.Parallel.Mismatches != 1 {
		t.Errorf("Equivalent = %v, Mismatches = %d", m.Parallel.Equivalent, m.Parallel.Mismatches)
	}
	if m.Parallel.Strategy != "range" {
		t.Errorf("Strategy = %q, want range", m.Parallel.Strategy)
	}
}
