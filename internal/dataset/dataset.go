// Package dataset loads fee and student records from the configured source.
package dataset

import (
	"fmt"
	"log/slog"

	"github.com/dtnitsch/feeday/models"
	"github.com/dtnitsch/feeday/pkg/analytics"
	"github.com/dtnitsch/feeday/pkg/db"
	"github.com/dtnitsch/feeday/pkg/storage"
)

// Dataset is the fully materialized input of a run.
type Dataset struct {
	Records  []models.FeeRecord
	Students []models.Student
	Names    map[string]string
}

// Load reads fees and students according to cfg and derives submission days.
// For the sqlite source FeesPath is the database file and both tables are
// read from it; a missing students table just means no names.
func Load(logger *slog.Logger, cfg *models.AnalyzeConfig, s *storage.Storage, a *analytics.Analytics) (*Dataset, error) {
	var feeTable, studentTable *storage.Table
	var err error

	switch cfg.Source {
	case "sqlite":
		feeTable, studentTable, err = loadSQLite(logger, cfg.FeesPath)
	default:
		feeTable, studentTable, err = loadFiles(cfg, s)
	}
	if err != nil {
		return nil, err
	}

	rows, err := feeTable.FeeRows()
	if err != nil {
		return nil, err
	}
	records, err := a.DeriveDays(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", feeTable.Source, err)
	}

	ds := &Dataset{Records: records}
	if studentTable != nil {
		ds.Students, err = studentTable.Students()
		if err != nil {
			return nil, err
		}
	}
	ds.Names = models.StudentNames(ds.Students)

	logger.Info("Dataset loaded", "source", cfg.Source, "fee_records", len(ds.Records), "students", len(ds.Students))
	return ds, nil
}

func loadFiles(cfg *models.AnalyzeConfig, s *storage.Storage) (*storage.Table, *storage.Table, error) {
	format := storage.Format(cfg.Source)
	if cfg.Source == "" {
		format = storage.DetectFormat(cfg.FeesPath)
	}

	feeTable, err := s.ReadTable(cfg.FeesPath, format)
	if err != nil {
		return nil, nil, err
	}
	if cfg.StudentsPath == "" {
		return feeTable, nil, nil
	}

	studentTable, err := s.ReadTable(cfg.StudentsPath, storage.DetectFormat(cfg.StudentsPath))
	if err != nil {
		return nil, nil, err
	}
	return feeTable, studentTable, nil
}

func loadSQLite(logger *slog.Logger, path string) (*storage.Table, *storage.Table, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer database.Close()

	feeTable, err := database.ReadTable(db.FeesTable)
	if err != nil {
		return nil, nil, err
	}

	studentTable, err := database.ReadTable(db.StudentsTable)
	if err != nil {
		logger.Warn("No students table, results will not include names", "database", path, "error", err)
		return feeTable, nil, nil
	}
	return feeTable, studentTable, nil
}
