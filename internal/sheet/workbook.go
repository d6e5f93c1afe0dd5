package sheet

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"study-tracker/internal/logger"
	"study-tracker/internal/storage"
	"study-tracker/pkg/errors"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// WorkbookStore keeps the five tables as worksheets of one .xlsx object.
// The object is read fresh on every call; there is no cache.
type WorkbookStore struct {
	storage storage.Storage
	key     string
	mu      sync.Mutex
	log     zerolog.Logger
}

func NewWorkbookStore(objects storage.Storage, key string) *WorkbookStore {
	return &WorkbookStore{
		storage: objects,
		key:     key,
		log:     logger.For("workbook"),
	}
}

// Init creates the workbook with every table and its header row unless the
// object already exists.
func (s *WorkbookStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.storage.Exists(ctx, s.key)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrConnection, err)
	}
	if exists {
		return nil
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, table := range Tables {
		name := string(table)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return err
		}

		header := make([]interface{}, len(Headers[table]))
		for j, col := range Headers[table] {
			header[j] = col
		}
		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return err
		}
	}

	s.log.Info().Str("key", s.key).Msg("Creating workbook")
	return s.save(ctx, f)
}

func (s *WorkbookStore) Check(ctx context.Context) error {
	f, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer f.Close()

	return checkTables(f.GetSheetList())
}

func (s *WorkbookStore) FetchAll(ctx context.Context, table Table) ([]Record, error) {
	f, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := s.rows(f, table)
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("table", string(table)).Int("rows", len(rows)).Msg("Fetched table")
	return parseRecords(rows), nil
}

func (s *WorkbookStore) AppendRow(ctx context.Context, table Table, values []interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := s.rows(f, table)
	if err != nil {
		return err
	}

	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(string(table), cell, &values); err != nil {
		return fmt.Errorf("failed to append row to %s: %w", table, err)
	}

	if err := s.save(ctx, f); err != nil {
		return err
	}

	s.log.Info().Str("table", string(table)).Str("cell", cell).Msg("Row appended")
	return nil
}

func (s *WorkbookStore) FindAndUpdate(ctx context.Context, table Table, match string, column int, value interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open(ctx)
	if err != nil {
		return false, err
	}
	defer f.Close()

	rows, err := s.rows(f, table)
	if err != nil {
		return false, err
	}

	row := findRow(rows, match)
	if row == 0 {
		return false, nil
	}

	cell, err := excelize.CoordinatesToCellName(column, row)
	if err != nil {
		return false, err
	}
	if err := f.SetCellValue(string(table), cell, value); err != nil {
		return false, fmt.Errorf("failed to update %s!%s: %w", table, cell, err)
	}

	if err := s.save(ctx, f); err != nil {
		return false, err
	}

	s.log.Info().Str("table", string(table)).Str("cell", cell).Msg("Cell updated")
	return true, nil
}

func (s *WorkbookStore) open(ctx context.Context) (*excelize.File, error) {
	reader, err := s.storage.Download(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrConnection, err)
	}
	defer reader.Close()

	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", s.key, err)
	}
	return f, nil
}

func (s *WorkbookStore) rows(f *excelize.File, table Table) ([][]string, error) {
	if idx, err := f.GetSheetIndex(string(table)); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %s", errors.ErrTableNotFound, table)
	}

	rows, err := f.GetRows(string(table))
	if err != nil {
		return nil, fmt.Errorf("failed to get rows of %s: %w", table, err)
	}
	return rows, nil
}

func (s *WorkbookStore) save(ctx context.Context, f *excelize.File) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}
	if err := s.storage.Upload(ctx, s.key, bytes.NewReader(buf.Bytes())); err != nil {
		return fmt.Errorf("failed to upload workbook: %w", err)
	}
	return nil
}
