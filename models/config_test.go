package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.Source)
	assert.Equal(t, "fees.csv", cfg.FeesPath)
	assert.Equal(t, "students.csv", cfg.StudentsPath)
	assert.Equal(t, 4, cfg.Chunks)
	assert.Equal(t, "key", cfg.Partition)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feeday.yaml")
	content := "fees: larger_fees.csv\nstudents: larger_students.csv\nchunks: 8\nformat: json\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	t.Setenv("FEEDAY_CHUNKS", "2")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "larger_fees.csv", cfg.FeesPath)
	assert.Equal(t, "larger_students.csv", cfg.StudentsPath)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 2, cfg.Chunks, "environment overrides the file")
	assert.Equal(t, "csv", cfg.Source, "unset keys keep their defaults")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestAnalyzeConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *AnalyzeConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *AnalyzeConfig) {}},
		{name: "zero chunks", mutate: func(c *AnalyzeConfig) { c.Chunks = 0 }, wantErr: true},
		{name: "negative workers", mutate: func(c *AnalyzeConfig) { c.Workers = -1 }, wantErr: true},
		{name: "unknown source", mutate: func(c *AnalyzeConfig) { c.Source = "parquet" }, wantErr: true},
		{name: "unknown format", mutate: func(c *AnalyzeConfig) { c.Format = "xml" }, wantErr: true},
		{name: "range partition", mutate: func(c *AnalyzeConfig) { c.Partition = "range" }},
		{name: "missing fees", mutate: func(c *AnalyzeConfig) { c.FeesPath = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWorkerCount(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.WorkerCount(); got != 4 {
		t.Errorf("WorkerCount() = %d, want 4", got)
	}
	cfg.Workers = 2
	if got := cfg.WorkerCount(); got != 2 {
		t.Errorf("WorkerCount() = %d, want 2", got)
	}
}
