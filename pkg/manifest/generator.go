package manifest

import (
	"time"

	"github.com/dtnitsch/feeday/models"
	"github.com/dtnitsch/feeday/pkg/mapreduce"
	"github.com/dtnitsch/feeday/pkg/storage"
)

// SpeedupTarget is the speedup percentage a parallel run is expected to reach.
const SpeedupTarget = 60.0

// RunInfo carries what GenerateSummary needs from a run.
type RunInfo struct {
	RunID        string
	Source       string
	FeesPath     string
	StudentsPath string
	Records      int
	Sequential   time.Duration

	// Set only for comparison runs.
	Parallel         *mapreduce.ParallelRun
	ParallelDuration time.Duration
	Mismatches       []mapreduce.Mismatch
}

// Speedup returns the relative reduction in wall-clock time from sequential
// to parallel, as a percentage. It is negative when parallel was slower.
func Speedup(sequential, parallel time.Duration) float64 {
	if sequential <= 0 {
		return 0
	}
	return float64(sequential-parallel) / float64(sequential) * 100
}

// GenerateSummary builds the manifest for a run. The storage instance is used
// to stat the input file; a failed stat leaves the size at zero.
func GenerateSummary(info RunInfo, results models.Result, s *storage.Storage) SummaryManifest {
	manifest := SummaryManifest{
		GeneratedAt:       time.Now().Format(time.RFC3339),
		RunID:             info.RunID,
		Source:            info.Source,
		FeesPath:          info.FeesPath,
		StudentsPath:      info.StudentsPath,
		Records:           info.Records,
		Students:          len(results),
		SequentialSeconds: info.Sequential.Seconds(),
		TopStudents:       mapreduce.TopStudentLabels(results, 10),
	}

	if s != nil && info.FeesPath != "" {
		if stats, err := s.GetFileStats(info.FeesPath); err == nil {
			manifest.InputSizeBytes = stats.SizeBytes
		}
	}

	if info.Parallel != nil {
		speedup := Speedup(info.Sequential, info.ParallelDuration)
		manifest.Parallel = &Parallel{
			Strategy:         string(info.Parallel.Strategy),
			Workers:          info.Parallel.Workers,
			ChunkSizes:       info.Parallel.ChunkSizes,
			SpanningStudents: info.Parallel.SpanningKeys,
			Seconds:          info.ParallelDuration.Seconds(),
			SpeedupPercent:   speedup,
			MeetsTarget:      speedup >= SpeedupTarget,
			Equivalent:       len(info.Mismatches) == 0,
			Mismatches:       len(info.Mismatches),
		}
	}

	return manifest
}
