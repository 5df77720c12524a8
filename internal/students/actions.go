package students

import (
	"fmt"
	"io"

	"github.com/dtnitsch/feeday/internal/common"
	"github.com/dtnitsch/feeday/internal/dataset"
	"github.com/dtnitsch/feeday/internal/report"
	"github.com/dtnitsch/feeday/models"
	"github.com/dtnitsch/feeday/pkg/analytics"
	"github.com/dtnitsch/feeday/pkg/storage"
	"github.com/urfave/cli/v2"
)

// StudentsAction shows the most common day and the full day histogram for
// each student id given as an argument.
func StudentsAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("no student ids given. Usage: feeday students <id> [<id>...]", common.ExitUsage)
	}

	run, err := common.Setup(c)
	if err != nil {
		return err
	}
	cfg := run.Config

	ds, err := dataset.Load(run.Logger, cfg, &storage.Storage{Sheet: cfg.Sheet}, &analytics.Analytics{})
	if err != nil {
		run.Logger.Error("Failed to load dataset", "error", err)
		return common.DataError(err)
	}

	rows, err := Lookup(ds, c.Args().Slice())
	if err != nil {
		return common.DataError(err)
	}

	out := report.FinalOutput{Status: "success", Results: rows}
	return run.Emit(out, func(w io.Writer) error {
		return report.WriteStudents(w, rows)
	})
}

// Lookup builds the detailed result for each requested id, in natural order.
func Lookup(ds *dataset.Dataset, ids []string) ([]report.StudentResult, error) {
	_, groups := analytics.GroupDays(ds.Records)

	wanted := append([]string(nil), ids...)
	models.SortStudentIDs(wanted)

	rows := make([]report.StudentResult, 0, len(wanted))
	seen := make(map[string]bool, len(wanted))
	for _, id := range wanted {
		if seen[id] {
			continue
		}
		seen[id] = true

		days, ok := groups[id]
		if !ok {
			return nil, fmt.Errorf("student_id %s has no fee records", id)
		}
		counts, err := analytics.DayFrequency(days)
		if err != nil {
			return nil, fmt.Errorf("student_id %s: %w", id, err)
		}
		mode := counts.Mode()
		rows = append(rows, report.StudentResult{
			StudentID:       id,
			Name:            ds.Names[id],
			MostCommonDay:   mode.MostCommonDay,
			SubmissionCount: mode.SubmissionCount,
			Histogram:       counts.Histogram(),
		})
	}
	return rows, nil
}
