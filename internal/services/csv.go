package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// readCSVRows parses header-driven CSV data into one map per row, keyed by
// the trimmed header names. Cell values are trimmed as well, so column order
// and stray whitespace in the file never matter downstream.
func readCSVRows(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV header: %w", err)
	}

	for i, col := range header {
		header[i] = strings.TrimSpace(col)
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV row %d: %w", len(rows)+2, err)
		}

		row := make(map[string]string, len(header))
		for i, cell := range record {
			if i >= len(header) {
				break
			}
			row[header[i]] = strings.TrimSpace(cell)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// numField coerces a cell to a number, defaulting missing, empty and
// non-numeric values to 0.
func numField(row map[string]string, key string) float64 {
	val, ok := row[key]
	if !ok || val == "" {
		return 0
	}
	n, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0
	}
	return n
}
