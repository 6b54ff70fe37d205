// Package sheets is the Google Sheets backed row store
package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	perr "minishop/internal/platform/errors"
	"minishop/internal/platform/logger"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

const (
	lastColumn   = "Z"
	inputRaw     = "RAW"
	insertRows   = "INSERT_ROWS"
	renderFormat = "FORMATTED_VALUE"
)

// Options configures the Store
type Options struct {
	SpreadsheetID string

	// CredentialsFile is a service account json, empty uses application default credentials
	CredentialsFile string

	// HeaderRows are skipped on Read and offset row indexes
	HeaderRows int

	// ClientOptions are appended after the credential option, tests use them to point at a fake endpoint
	ClientOptions []option.ClientOption
}

// Store reads and writes rows of one spreadsheet
type Store struct {
	values *gsheets.SpreadsheetsValuesService
	sheets *gsheets.SpreadsheetsService
	id     string
	header int
	log    logger.Logger
}

// New builds the sheets client. It does not contact the API
func New(ctx context.Context, o Options) (*Store, error) {
	if strings.TrimSpace(o.SpreadsheetID) == "" {
		return nil, perr.InvalidArgf("sheets: spreadsheet id is required")
	}
	if o.HeaderRows < 0 {
		return nil, perr.InvalidArgf("sheets: negative header rows %d", o.HeaderRows)
	}

	opts := []option.ClientOption{option.WithScopes(gsheets.SpreadsheetsScope)}
	if o.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(o.CredentialsFile))
	}
	opts = append(opts, o.ClientOptions...)

	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "sheets client")
	}
	return &Store{
		values: svc.Spreadsheets.Values,
		sheets: svc.Spreadsheets,
		id:     o.SpreadsheetID,
		header: o.HeaderRows,
		log:    *logger.Named("sheets"),
	}, nil
}

// Read returns the data rows of sheet below the header, trailing empty cells trimmed by the API
func (s *Store) Read(ctx context.Context, sheet string) ([][]string, error) {
	rng, err := a1(sheet, fmt.Sprintf("A%d:%s", s.header+1, lastColumn))
	if err != nil {
		return nil, err
	}
	vr, err := s.values.Get(s.id, rng).
		ValueRenderOption(renderFormat).
		MajorDimension("ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, mapErr(err, "sheets read "+sheet)
	}
	out := make([][]string, 0, len(vr.Values))
	for _, r := range vr.Values {
		out = append(out, cellsOf(r))
	}
	return out, nil
}

// Append adds row after the last non-empty row of sheet
func (s *Store) Append(ctx context.Context, sheet string, row []string) error {
	rng, err := a1(sheet, "A1")
	if err != nil {
		return err
	}
	_, err = s.values.Append(s.id, rng, &gsheets.ValueRange{Values: [][]any{anyRow(row)}}).
		ValueInputOption(inputRaw).
		InsertDataOption(insertRows).
		Context(ctx).
		Do()
	if err != nil {
		return mapErr(err, "sheets append "+sheet)
	}
	return nil
}

// UpdateRow overwrites the row at index, counted from zero in Read order
func (s *Store) UpdateRow(ctx context.Context, sheet string, index int, row []string) error {
	if index < 0 {
		return perr.InvalidArgf("sheets: negative row index %d", index)
	}
	rng, err := a1(sheet, fmt.Sprintf("A%d", s.header+1+index))
	if err != nil {
		return err
	}
	_, err = s.values.Update(s.id, rng, &gsheets.ValueRange{Values: [][]any{anyRow(row)}}).
		ValueInputOption(inputRaw).
		Context(ctx).
		Do()
	if err != nil {
		return mapErr(err, "sheets update "+sheet)
	}
	s.log.Debug().Str("sheet", sheet).Int("index", index).Msg("row updated")
	return nil
}

// Ping fetches the spreadsheet id only
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.sheets.Get(s.id).Fields(googleapi.Field("spreadsheetId")).Context(ctx).Do()
	if err != nil {
		return mapErr(err, "sheets ping")
	}
	return nil
}

// a1 builds a quoted A1 range for sheet
func a1(sheet, cells string) (string, error) {
	sheet = strings.TrimSpace(sheet)
	if sheet == "" {
		return "", perr.InvalidArgf("sheets: empty sheet name")
	}
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'!" + cells, nil
}

func cellsOf(r []any) []string {
	out := make([]string, len(r))
	for i, v := range r {
		switch x := v.(type) {
		case nil:
		case string:
			out[i] = x
		default:
			out[i] = fmt.Sprint(x)
		}
	}
	return out
}

func anyRow(row []string) []any {
	out := make([]any, len(row))
	for i, v := range row {
		out[i] = v
	}
	return out
}

// mapErr turns API failures into project codes
func mapErr(err error, msg string) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == http.StatusNotFound:
			return perr.Wrap(err, perr.ErrorCodeNotFound, msg)
		case gerr.Code == http.StatusUnauthorized:
			return perr.Wrap(err, perr.ErrorCodeUnavailable, msg+": credentials rejected")
		case gerr.Code == http.StatusForbidden:
			return perr.Wrap(err, perr.ErrorCodeForbidden, msg)
		case gerr.Code == http.StatusBadRequest:
			return perr.Wrap(err, perr.ErrorCodeInvalidArgument, msg)
		}
	}
	return perr.Wrap(err, perr.ErrorCodeUnavailable, msg)
}
