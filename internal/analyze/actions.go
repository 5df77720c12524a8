package analyze

import (
	"io"
	"time"

	"github.com/dtnitsch/feeday/internal/common"
	"github.com/dtnitsch/feeday/internal/dataset"
	"github.com/dtnitsch/feeday/internal/report"
	"github.com/dtnitsch/feeday/pkg/analytics"
	"github.com/dtnitsch/feeday/pkg/manifest"
	"github.com/dtnitsch/feeday/pkg/mapreduce"
	"github.com/dtnitsch/feeday/pkg/storage"
	"github.com/urfave/cli/v2"
)

// AnalyzeAction runs the sequential analysis and prints every student's most
// common submission day.
func AnalyzeAction(c *cli.Context) error {
	run, err := common.Setup(c)
	if err != nil {
		return err
	}
	cfg := run.Config
	logger := run.Logger

	s := &storage.Storage{Sheet: cfg.Sheet}
	ds, err := dataset.Load(logger, cfg, s, &analytics.Analytics{})
	if err != nil {
		logger.Error("Failed to load dataset", "error", err)
		return common.DataError(err)
	}

	start := time.Now()
	results, err := mapreduce.Map(ds.Records)
	if err != nil {
		logger.Error("Sequential analysis failed", "error", err)
		return common.DataError(err)
	}
	elapsed := time.Since(start)
	logger.Info("Sequential analysis complete", "students", len(results), "elapsed", elapsed.String())

	summary := manifest.GenerateSummary(manifest.RunInfo{
		RunID:        run.ID,
		Source:       cfg.Source,
		FeesPath:     cfg.FeesPath,
		StudentsPath: cfg.StudentsPath,
		Records:      len(ds.Records),
		Sequential:   elapsed,
	}, results, s)

	rows := report.Join(mapreduce.Sample(results, 0), ds.Names)
	out := report.FinalOutput{
		Status:   "success",
		Results:  rows,
		Manifest: summary,
	}
	return run.Emit(out, func(w io.Writer) error {
		return report.WriteAnalysis(w, rows)
	})
}
