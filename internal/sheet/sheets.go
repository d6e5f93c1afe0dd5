package sheet

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"study-tracker/internal/config"
	"study-tracker/internal/logger"
	"study-tracker/pkg/errors"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

// SheetsStore is the Google Sheets backend. Every call is a synchronous
// round trip with no retry.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
	log           zerolog.Logger
}

func NewSheetsStore(ctx context.Context, cfg *config.Config, creds *config.Credentials) (*SheetsStore, error) {
	opts := []option.ClientOption{
		option.WithCredentialsJSON(creds.JSON),
		option.WithScopes(creds.Scopes...),
	}

	// the service outlives ctx, which only bounds the connect phase
	svc, err := sheets.NewService(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrConnection, err)
	}

	id := cfg.Store.SpreadsheetID
	if id == "" {
		id, err = ResolveSpreadsheetID(ctx, cfg.Store.SpreadsheetName, opts...)
		if err != nil {
			return nil, err
		}
	}

	log := logger.For("sheets")
	log.Info().
		Str("spreadsheet_id", id).
		Str("credentials", creds.Source).
		Str("client_email", creds.Account.ClientEmail).
		Msg("Connected to spreadsheet")

	return &SheetsStore{
		svc:           svc,
		spreadsheetID: id,
		log:           log,
	}, nil
}

// ResolveSpreadsheetID looks a spreadsheet up by name through Drive.
func ResolveSpreadsheetID(ctx context.Context, name string, opts ...option.ClientOption) (string, error) {
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrConnection, err)
	}

	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false",
		strings.ReplaceAll(name, "'", `\'`), spreadsheetMimeType)

	list, err := svc.Files.List().Q(q).Fields("files(id, name)").PageSize(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: drive lookup failed: %v", errors.ErrConnection, err)
	}
	if len(list.Files) == 0 {
		return "", fmt.Errorf("%w: spreadsheet %q not found", errors.ErrConnection, name)
	}
	return list.Files[0].Id, nil
}

func (s *SheetsStore) Check(ctx context.Context) error {
	ss, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrConnection, err)
	}

	titles := make([]string, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			titles = append(titles, sh.Properties.Title)
		}
	}
	return checkTables(titles)
}

func (s *SheetsStore) FetchAll(ctx context.Context, table Table) ([]Record, error) {
	rows, err := s.rows(ctx, table)
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("table", string(table)).Int("rows", len(rows)).Msg("Fetched table")
	return parseRecords(rows), nil
}

func (s *SheetsStore) AppendRow(ctx context.Context, table Table, values []interface{}) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{values}}

	// RAW keeps free text such as "=..." or "001" and date strings as typed
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, a1(table, "A1"), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return classify(err, "append row")
	}

	s.log.Info().Str("table", string(table)).Msg("Row appended")
	return nil
}

func (s *SheetsStore) FindAndUpdate(ctx context.Context, table Table, match string, column int, value interface{}) (bool, error) {
	rows, err := s.rows(ctx, table)
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

	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, a1(table, cell), vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return false, classify(err, "update cell")
	}

	s.log.Info().Str("table", string(table)).Str("cell", cell).Msg("Cell updated")
	return true, nil
}

func (s *SheetsStore) rows(ctx context.Context, table Table) ([][]string, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, a1(table, "")).Context(ctx).Do()
	if err != nil {
		return nil, classify(err, "fetch "+string(table))
	}

	rows := make([][]string, len(resp.Values))
	for i, raw := range resp.Values {
		rows[i] = make([]string, len(raw))
		for j, v := range raw {
			rows[i][j] = fmt.Sprint(v)
		}
	}
	return rows, nil
}

func a1(table Table, cell string) string {
	name := "'" + strings.ReplaceAll(string(table), "'", "''") + "'"
	if cell == "" {
		return name
	}
	return name + "!" + cell
}

func classify(err error, op string) error {
	if gerr, ok := err.(*googleapi.Error); ok {
		switch {
		case gerr.Code == http.StatusNotFound:
			return fmt.Errorf("%w: %s: %v", errors.ErrTableNotFound, op, err)
		case gerr.Code == http.StatusTooManyRequests || gerr.Code >= 500:
			return errors.NewRetryableError(err, op)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
