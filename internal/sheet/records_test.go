package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRecords(t *testing.T) {
	rows := [][]string{
		{" Date ", "Name", "Minutes", "Memo"},
		{"2024-01-01", "A", "30"},
		{"", "", ""},
		{"2024-01-02", "B", "45", "algebra"},
	}

	records := parseRecords(rows)

	assert.Len(t, records, 2)
	assert.Equal(t, "2024-01-01", records[0].Get("Date"))
	assert.Equal(t, "", records[0].Get("Memo"))
	assert.Equal(t, "algebra", records[1].Get("Memo"))
}

func TestParseRecordsEmpty(t *testing.T) {
	assert.Empty(t, parseRecords(nil))
	assert.Empty(t, parseRecords([][]string{{"Date", "Name"}}))
}

func TestFindRow(t *testing.T) {
	rows := [][]string{
		{"Date", "Name", "Content", "Done"},
		{"2024-01-01", "A", "p.42", "FALSE"},
		{"2024-01-02", "B", "p.42", "FALSE"},
		{"2024-01-03", "A", "essay", "TRUE"},
	}

	tests := []struct {
		name  string
		match string
		want  int
	}{
		{name: "first of duplicates", match: "p.42", want: 2},
		{name: "any column", match: "2024-01-03", want: 4},
		{name: "header ignored", match: "Content", want: 0},
		{name: "no match", match: "missing", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findRow(rows, tt.match))
		})
	}
}

func TestCheckTables(t *testing.T) {
	all := []string{"Students", "StudyLogs", "Exams", "Homework", "Summaries", "Extra"}
	assert.NoError(t, checkTables(all))
	assert.Error(t, checkTables(all[:4]))
}

func TestA1(t *testing.T) {
	assert.Equal(t, "'Homework'", a1(TableHomework, ""))
	assert.Equal(t, "'Homework'!D3", a1(TableHomework, "D3"))
}
