package storage

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Format is the on-disk layout of a tabular input file.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

type Storage struct {
	// Sheet selects the worksheet for XLSX input; empty means the first sheet.
	Sheet string
}

// FileStats holds metadata about a file without reading its contents.
type FileStats struct {
	SizeBytes int64
	ModTime   time.Time
}

func (s *Storage) ReadFile(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return data, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

func (s *Storage) HasFile(fn string) bool {
	return fileExists(fn)
}

// GetFileStats returns metadata about a file using os.Stat (no I/O overhead).
func (s *Storage) GetFileStats(filePath string) (*FileStats, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error getting file stats: %w", err)
	}

	return &FileStats{
		SizeBytes: info.Size(),
		ModTime:   info.ModTime(),
	}, nil
}

// DetectFormat picks a format from the file extension, falling back to CSV.
func DetectFormat(filePath string) Format {
	lower := strings.ToLower(filePath)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") {
		return FormatXLSX
	}
	return FormatCSV
}

// ReadTable loads a whole tabular file into memory.
func (s *Storage) ReadTable(filePath string, format Format) (*Table, error) {
	if !s.HasFile(filePath) {
		return nil, fmt.Errorf("input file not found: %s", filePath)
	}

	switch format {
	case FormatXLSX:
		return s.readXLSX(filePath)
	case FormatCSV, "":
		data, err := s.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
		return parseCSV(filePath, data)
	}
	return nil, fmt.Errorf("unsupported input format %q", format)
}
