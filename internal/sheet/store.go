package sheet

import (
	"context"
	"fmt"

	"study-tracker/internal/config"
	"study-tracker/internal/storage"
)

type Table string

const (
	TableStudents  Table = "Students"
	TableStudyLogs Table = "StudyLogs"
	TableExams     Table = "Exams"
	TableHomework  Table = "Homework"
	TableSummaries Table = "Summaries"
)

var Tables = []Table{TableStudents, TableStudyLogs, TableExams, TableHomework, TableSummaries}

// Headers is the header row each table is created with. Appends are
// positional and follow this order.
var Headers = map[Table][]string{
	TableStudents:  {"Name", "Password", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
	TableStudyLogs: {"Date", "Name", "Subject", "Minutes", "Memo", "ID"},
	TableExams:     {"Date", "Name", "Exam", "Total", "Correct", "PassMark", "ID"},
	TableHomework:  {"Date", "Name", "Content", "Done", "ID"},
	TableSummaries: {"Date", "Name", "Minutes", "GoalMinutes", "Progress"},
}

// Store is a remote tabular store with one table per entity.
type Store interface {
	// Check verifies that every table exists.
	Check(ctx context.Context) error
	// FetchAll returns every data row keyed by header name.
	FetchAll(ctx context.Context, table Table) ([]Record, error)
	// AppendRow appends values positionally without validating arity or type.
	AppendRow(ctx context.Context, table Table, values []interface{}) error
	// FindAndUpdate overwrites the cell at the 1-based column of the first
	// data row holding match in any cell. It reports whether a row matched.
	FindAndUpdate(ctx context.Context, table Table, match string, column int, value interface{}) (bool, error)
}

// Open connects to the configured backend and verifies its tables.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Store.ConnectTimeout)
	defer cancel()

	var (
		store Store
		err   error
	)

	switch cfg.Store.Backend {
	case config.StoreBackendSheets:
		creds, credErr := cfg.ResolveCredentials()
		if credErr != nil {
			return nil, credErr
		}
		store, err = NewSheetsStore(ctx, cfg, creds)
	case config.StoreBackendWorkbook:
		objects, storageErr := storage.New(cfg)
		if storageErr != nil {
			return nil, storageErr
		}
		wb := NewWorkbookStore(objects, cfg.Store.WorkbookKey)
		if cfg.Store.InitWorkbook {
			if err := wb.Init(ctx); err != nil {
				return nil, err
			}
		}
		store = wb
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
	if err != nil {
		return nil, err
	}

	if err := store.Check(ctx); err != nil {
		return nil, err
	}
	return store, nil
}
