package common

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dtnitsch/feeday/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// setupFromArgs runs Setup inside a minimal app carrying the global flags.
func setupFromArgs(t *testing.T, args ...string) (*Run, error) {
	t.Helper()

	var run *Run
	var setupErr error
	app := &cli.App{
		Name:   "feeday",
		Writer: &bytes.Buffer{},
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config"},
			&cli.BoolFlag{Name: "quiet"},
			&cli.StringFlag{Name: "format"},
			&cli.StringFlag{Name: "source"},
			&cli.StringFlag{Name: "fees"},
			&cli.StringFlag{Name: "students"},
			&cli.StringFlag{Name: "sheet"},
			&cli.IntFlag{Name: "chunks"},
			&cli.IntFlag{Name: "workers"},
			&cli.StringFlag{Name: "partition"},
			&cli.IntFlag{Name: "sample"},
		},
		Action: func(c *cli.Context) error {
			run, setupErr = Setup(c)
			return nil
		},
	}
	require.NoError(t, app.Run(append([]string{"feeday"}, args...)))
	return run, setupErr
}

func TestSetup_Defaults(t *testing.T) {
	run, err := setupFromArgs(t, "--quiet")
	require.NoError(t, err)

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "fees.csv", run.Config.FeesPath)
	assert.Equal(t, 4, run.Config.Chunks)
	assert.Equal(t, "key", run.Config.Partition)
}

func TestSetup_Layering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeday.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunks: 6\nsample: 3\nfees: from-file.csv\n"), 0600))
	t.Setenv("FEEDAY_CHUNKS", "7")

	run, err := setupFromArgs(t, "--config", path, "--fees", "flag.csv", "--partition", "range")
	require.NoError(t, err)

	cfg := run.Config
	assert.Equal(t, "flag.csv", cfg.FeesPath, "flag beats file")
	assert.Equal(t, 7, cfg.Chunks, "environment beats file")
	assert.Equal(t, 3, cfg.Sample, "file beats default")
	assert.Equal(t, "range", cfg.Partition)

	run, err = setupFromArgs(t, "--config", path, "--chunks", "9")
	require.NoError(t, err)
	assert.Equal(t, 9, run.Config.Chunks, "flag beats environment")
}

func TestSetup_InvalidConfig(t *testing.T) {
	tests := [][]string{
		{"--chunks", "0"},
		{"--partition", "random"},
		{"--format", "xml"},
		{"--source", "parquet"},
		{"--config", "does-not-exist.yaml"},
	}
	for _, args := range tests {
		_, err := setupFromArgs(t, args...)
		require.Error(t, err, "args %v", args)

		var exitErr cli.ExitCoder
		require.True(t, errors.As(err, &exitErr), "args %v", args)
		assert.Equal(t, ExitUsage, exitErr.ExitCode())
	}
}

func TestDataError(t *testing.T) {
	assert.NoError(t, DataError(nil))

	err := DataError(errors.New("row 3 (student_id 4): empty timestamp"))
	var exitErr cli.ExitCoder
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, ExitData, exitErr.ExitCode())
	assert.Contains(t, err.Error(), "row 3")
}

func TestEmit(t *testing.T) {
	run, err := setupFromArgs(t, "--quiet", "--format", "json")
	require.NoError(t, err)

	var buf bytes.Buffer
	run.Out = &buf
	textCalled := false
	require.NoError(t, run.Emit(report.FinalOutput{Status: "success"}, func(_ io.Writer) error {
		textCalled = true
		return nil
	}))
	assert.False(t, textCalled)
	assert.Contains(t, buf.String(), `"status": "success"`)

	run.Config.Format = "text"
	require.NoError(t, run.Emit(report.FinalOutput{}, func(_ io.Writer) error {
		textCalled = true
		return nil
	}))
	assert.True(t, textCalled)
}
