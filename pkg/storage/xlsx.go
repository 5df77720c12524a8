package storage

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readXLSX loads one worksheet. The first non-blank row is the header.
func (s *Storage) readXLSX(filePath string) (*Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", filePath, err)
	}
	defer f.Close()

	sheet := s.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", filePath)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheet, filePath, err)
	}

	source := fmt.Sprintf("%s[%s]", filePath, sheet)
	table := &Table{Source: source}
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		if table.Headers == nil {
			table.Headers = row
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	if table.Headers == nil {
		return nil, fmt.Errorf("%s: empty sheet, expected a header row", source)
	}
	return table, nil
}
