// Package spreadsheet decodes uploaded workbooks into raw header→cell rows.
package spreadsheet

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"crewtravel-service/internal/domain/entity"
)

// Read decodes the first sheet of an xlsx upload. The first row is the
// header row; every following row becomes a RawRow keyed by those headers.
// Rows with no non-empty cell are skipped.
func Read(data []byte) ([]string, []entity.RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}

	iter, err := f.Rows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	defer iter.Close()

	var headers []string
	var rows []entity.RawRow
	first := true
	for iter.Next() {
		cells, err := iter.Columns()
		if err != nil {
			return nil, nil, fmt.Errorf("read row: %w", err)
		}
		if first {
			headers = cells
			first = false
			continue
		}
		row := make(entity.RawRow, len(headers))
		hasData := false
		for i, header := range headers {
			if header == "" {
				continue
			}
			var value interface{}
			if i < len(cells) && strings.TrimSpace(cells[i]) != "" {
				value = cells[i]
				hasData = true
			}
			row[header] = value
		}
		if hasData {
			rows = append(rows, row)
		}
	}
	if headers == nil {
		return nil, nil, fmt.Errorf("workbook has no header row")
	}
	return headers, rows, nil
}
