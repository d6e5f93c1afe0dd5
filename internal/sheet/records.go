package sheet

import (
	"fmt"
	"strings"

	"study-tracker/pkg/errors"
)

// Record is one data row keyed by its table's header names.
type Record map[string]string

func (r Record) Get(field string) string {
	return strings.TrimSpace(r[field])
}

// parseRecords turns raw rows (header first) into records. Rows shorter
// than the header yield empty fields; blank rows are skipped.
func parseRecords(rows [][]string) []Record {
	if len(rows) == 0 {
		return nil
	}

	header := make([]string, len(rows[0]))
	for i, col := range rows[0] {
		header[i] = strings.TrimSpace(col)
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		record := make(Record, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(row) {
				record[col] = row[i]
			} else {
				record[col] = ""
			}
		}
		records = append(records, record)
	}
	return records
}

// findRow returns the 1-based row number of the first data row holding
// match in any cell, or 0.
func findRow(rows [][]string, match string) int {
	for i := 1; i < len(rows); i++ {
		for _, cell := range rows[i] {
			if cell == match {
				return i + 1
			}
		}
	}
	return 0
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func checkTables(present []string) error {
	have := make(map[string]bool, len(present))
	for _, name := range present {
		have[name] = true
	}
	for _, table := range Tables {
		if !have[string(table)] {
			return fmt.Errorf("%w: %s", errors.ErrTableNotFound, table)
		}
	}
	return nil
}
