package compare

import (
	"context"
	"io"
	"time"

	"github.com/dtnitsch/feeday/internal/common"
	"github.com/dtnitsch/feeday/internal/dataset"
	"github.com/dtnitsch/feeday/internal/report"
	"github.com/dtnitsch/feeday/models"
	"github.com/dtnitsch/feeday/pkg/analytics"
	"github.com/dtnitsch/feeday/pkg/manifest"
	"github.com/dtnitsch/feeday/pkg/mapreduce"
	"github.com/dtnitsch/feeday/pkg/storage"
	"github.com/urfave/cli/v2"
)

// CompareAction times the sequential and parallel analyses over the same
// records, checks that they agree and prints a sample of the parallel result.
func CompareAction(c *cli.Context) error {
	run, err := common.Setup(c)
	if err != nil {
		return err
	}
	cfg := run.Config
	logger := run.Logger

	strategy, err := models.ParsePartitionStrategy(cfg.Partition)
	if err != nil {
		return cli.Exit(err.Error(), common.ExitUsage)
	}

	s := &storage.Storage{Sheet: cfg.Sheet}
	ds, err := dataset.Load(logger, cfg, s, &analytics.Analytics{})
	if err != nil {
		logger.Error("Failed to load dataset", "error", err)
		return common.DataError(err)
	}

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}

	seqStart := time.Now()
	sequential, err := mapreduce.Map(ds.Records)
	if err != nil {
		logger.Error("Sequential analysis failed", "error", err)
		return common.DataError(err)
	}
	seqElapsed := time.Since(seqStart)
	logger.Info("Sequential analysis complete", "students", len(sequential), "elapsed", seqElapsed.String())

	parStart := time.Now()
	parallel, err := mapreduce.RunParallel(ctx, logger, ds.Records, mapreduce.Options{
		Chunks:   cfg.Chunks,
		Workers:  cfg.WorkerCount(),
		Strategy: strategy,
	})
	if err != nil {
		logger.Error("Parallel analysis failed", "error", err)
		return common.DataError(err)
	}
	parElapsed := time.Since(parStart)
	logger.Info("Parallel analysis complete",
		"students", len(parallel.Result),
		"partitions", len(parallel.ChunkSizes),
		"workers", parallel.Workers,
		"elapsed", parElapsed.String())

	mismatches := mapreduce.Diff(sequential, parallel.Result)
	if len(mismatches) > 0 {
		logger.Warn("Parallel result differs from sequential result", "strategy", parallel.Strategy, "mismatches", len(mismatches))
	}

	summary := manifest.GenerateSummary(manifest.RunInfo{
		RunID:            run.ID,
		Source:           cfg.Source,
		FeesPath:         cfg.FeesPath,
		StudentsPath:     cfg.StudentsPath,
		Records:          len(ds.Records),
		Sequential:       seqElapsed,
		Parallel:         parallel,
		ParallelDuration: parElapsed,
		Mismatches:       mismatches,
	}, parallel.Result, s)

	sample := report.Join(mapreduce.Sample(parallel.Result, cfg.Sample), ds.Names)
	status := "success"
	if len(mismatches) > 0 {
		status = "mismatch"
	}
	out := report.FinalOutput{
		Status:     status,
		Results:    sample,
		Mismatches: mismatches,
		Manifest:   summary,
	}
	return run.Emit(out, func(w io.Writer) error {
		return report.WriteComparison(w, summary, mismatches, sample)
	})
}
