// Package models defines data structures for configuration, fee records and results.
package models

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment overrides, e.g. FEEDAY_CHUNKS=8.
const EnvPrefix = "FEEDAY"

// AnalyzeConfig holds runtime configuration for an analysis run.
// Values are layered: defaults, optional YAML file, environment, then CLI flags.
type AnalyzeConfig struct {
	Source       string `yaml:"source" envconfig:"SOURCE" validate:"oneof=csv xlsx sqlite"`
	FeesPath     string `yaml:"fees" envconfig:"FEES" validate:"required"`
	StudentsPath string `yaml:"students" envconfig:"STUDENTS"`
	Sheet        string `yaml:"sheet" envconfig:"SHEET"`
	Chunks       int    `yaml:"chunks" envconfig:"CHUNKS" validate:"min=1"`
	Workers      int    `yaml:"workers" envconfig:"WORKERS" validate:"min=0"`
	Partition    string `yaml:"partition" envconfig:"PARTITION" validate:"oneof=key range"`
	Format       string `yaml:"format" envconfig:"FORMAT" validate:"oneof=text json yaml"`
	Sample       int    `yaml:"sample" envconfig:"SAMPLE" validate:"min=0"`
}

// DefaultConfig reads fees.csv and students.csv and splits work into four chunks.
func DefaultConfig() *AnalyzeConfig {
	return &AnalyzeConfig{
		Source:       "csv",
		FeesPath:     "fees.csv",
		StudentsPath: "students.csv",
		Chunks:       4,
		Partition:    string(PartitionByKey),
		Format:       "text",
		Sample:       10,
	}
}

// LoadConfig reads the YAML file at path (skipped when path is empty) on top of
// the defaults and then applies FEEDAY_* environment overrides.
func LoadConfig(path string) (*AnalyzeConfig, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	return cfg, nil
}

// Validate checks the config after all layers have been applied.
func (c *AnalyzeConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// WorkerCount returns the pool size: Workers when set, otherwise one worker per chunk.
func (c *AnalyzeConfig) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return c.Chunks
}
