// Package tabular parses raw delimited data into generic rows that the
// analytics layer can classify and consume.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Table is a parsed data set: ordered headers plus one map per row.
// Numeric cells are float64, everything else stays string.
type Table struct {
	Headers []string
	Rows    []map[string]any
}

// ParseCSV parses CSV bytes into a Table. Cells that parse as numbers
// become float64 values. Malformed rows are skipped, not errored.
func ParseCSV(data []byte) (Table, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return Table{}, fmt.Errorf("failed to read CSV headers: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	table := Table{Headers: headers}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		if len(row) != len(headers) {
			continue
		}

		rec := make(map[string]any, len(headers))
		for i, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if f, err := strconv.ParseFloat(cell, 64); err == nil {
				rec[headers[i]] = f
			} else {
				rec[headers[i]] = cell
			}
		}
		table.Rows = append(table.Rows, rec)
	}

	return table, nil
}
