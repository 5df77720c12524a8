package common

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dtnitsch/feeday/internal/report"
	"github.com/dtnitsch/feeday/models"
	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
)

// Exit codes returned by every command.
const (
	ExitUsage = 1
	ExitData  = 2
)

// Run bundles what every command needs: the resolved config, a logger tagged
// with the run id and the writer results go to.
type Run struct {
	ID     string
	Config *models.AnalyzeConfig
	Logger *slog.Logger
	Out    io.Writer
}

// Setup resolves configuration from defaults, the --config file, FEEDAY_*
// environment variables and finally explicitly set flags.
func Setup(c *cli.Context) (*Run, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return nil, cli.Exit(err.Error(), ExitUsage)
	}
	ApplyFlags(c, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, cli.Exit(err.Error(), ExitUsage)
	}

	runID := uuid.NewString()
	return &Run{
		ID:     runID,
		Config: cfg,
		Logger: NewLogger(c.Bool("quiet"), os.Stderr).With("run_id", runID),
		Out:    c.App.Writer,
	}, nil
}

// NewLogger returns a JSON logger on w. Quiet mode only shows errors.
func NewLogger(quiet bool, w io.Writer) *slog.Logger {
	logLevel := slog.LevelInfo
	if quiet {
		logLevel = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// ApplyFlags copies every flag the user set onto cfg.
func ApplyFlags(c *cli.Context, cfg *models.AnalyzeConfig) {
	strs := map[string]*string{
		"source":    &cfg.Source,
		"fees":      &cfg.FeesPath,
		"students":  &cfg.StudentsPath,
		"sheet":     &cfg.Sheet,
		"partition": &cfg.Partition,
		"format":    &cfg.Format,
	}
	for name, dst := range strs {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}

	ints := map[string]*int{
		"chunks":  &cfg.Chunks,
		"workers": &cfg.Workers,
		"sample":  &cfg.Sample,
	}
	for name, dst := range ints {
		if c.IsSet(name) {
			*dst = c.Int(name)
		}
	}
}

// DataError wraps a load or processing failure with the data exit code.
func DataError(err error) error {
	if err == nil {
		return nil
	}
	return cli.Exit(fmt.Sprintf("Error: %v", err), ExitData)
}

// Emit writes out in the configured format. Text output is produced by text.
func (r *Run) Emit(out report.FinalOutput, text func(io.Writer) error) error {
	if r.Config.Format == "text" {
		return text(r.Out)
	}

	data, err := report.Marshal(out, r.Config.Format)
	if err != nil {
		return err
	}
	if _, err := r.Out.Write(data); err != nil {
		return err
	}
	if r.Config.Format == "json" {
		_, err = io.WriteString(r.Out, "\n")
	}
	return err
}
