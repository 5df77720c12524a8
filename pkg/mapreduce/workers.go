package mapreduce

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dtnitsch/feeday/models"
	"golang.org/x/sync/errgroup"
)

// Job is one partition handed to a worker.
type Job struct {
	ChunkID int
	Records []models.FeeRecord
}

// ChunkResult holds the outcome of a processed job.
type ChunkResult struct {
	ChunkID int
	Records int
	Result  models.Result
	Elapsed time.Duration
}

// Options configures a parallel run.
type Options struct {
	Chunks   int
	Workers  int // 0 means one worker per partition
	Strategy models.PartitionStrategy
}

// ParallelRun is the merged output of a parallel run plus partition details.
type ParallelRun struct {
	Result       models.Result
	Strategy     models.PartitionStrategy
	ChunkSizes   []int
	Workers      int
	SpanningKeys []string
}

// RunParallel partitions records, aggregates every partition on a worker
// pool that lives only for this call, and merges the partial results in
// partition order. The first failing partition cancels the run.
func RunParallel(ctx context.Context, logger *slog.Logger, records []models.FeeRecord, opts Options) (*ParallelRun, error) {
	parts, err := Partition(records, opts.Chunks, opts.Strategy)
	if err != nil {
		return nil, err
	}

	strategy := opts.Strategy
	if strategy == "" {
		strategy = models.PartitionByKey
	}
	run := &ParallelRun{
		Strategy:   strategy,
		ChunkSizes: ChunkSizes(parts),
	}

	if strategy == models.PartitionByRange {
		run.SpanningKeys = SpanningKeys(parts)
		if len(run.SpanningKeys) > 0 {
			logger.Warn("Students span more than one chunk; their merged result comes from the last chunk only",
				"spanning_students", len(run.SpanningKeys), "chunks", len(parts))
		}
	}

	if len(parts) == 0 {
		run.Result = models.Result{}
		return run, nil
	}

	workerCount := opts.Workers
	if workerCount <= 0 || workerCount > len(parts) {
		workerCount = len(parts)
	}
	run.Workers = workerCount

	logger.Info("Starting parallel aggregation", "records", len(records), "partitions", len(parts), "workers", workerCount, "strategy", string(strategy))

	jobs := make(chan Job, len(parts))
	results := make(chan ChunkResult, len(parts))

	g, gctx := errgroup.WithContext(ctx)
	for w := 1; w <= workerCount; w++ {
		id := w
		g.Go(func() error {
			return worker(gctx, id, logger, jobs, results)
		})
	}

	for i, part := range parts {
		jobs <- Job{ChunkID: i, Records: part}
	}
	close(jobs)

	if err := g.Wait(); err != nil {
		close(results)
		return nil, err
	}
	close(results)
	logger.Info("All aggregation workers finished")

	ordered := make([]models.Result, len(parts))
	for res := range results {
		ordered[res.ChunkID] = res.Result
	}
	run.Result = Reduce(ordered)

	return run, nil
}

// worker aggregates jobs until the channel is drained or the run is cancelled.
func worker(ctx context.Context, id int, logger *slog.Logger, jobs <-chan Job, results chan<- ChunkResult) error {
	for job := range jobs {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		res, err := Map(job.Records)
		if err != nil {
			logger.Error("Chunk aggregation failed", "worker_id", id, "chunk", job.ChunkID, "error", err)
			return fmt.Errorf("chunk %d: %w", job.ChunkID, err)
		}

		results <- ChunkResult{
			ChunkID: job.ChunkID,
			Records: len(job.Records),
			Result:  res,
			Elapsed: time.Since(start),
		}
		logger.Debug("Worker finished chunk", "worker_id", id, "chunk", job.ChunkID, "records", len(job.Records), "students", len(res))
	}
	return nil
}
