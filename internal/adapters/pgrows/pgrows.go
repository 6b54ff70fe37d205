// Package pgrows keeps spreadsheet style rows in a postgres table
//
// Each sheet is an ordered list of text arrays. Row indexes match the order
// Read returns, so UpdateRow(sheet, i, ...) rewrites the i-th row Read saw
package pgrows

import (
	"context"
	"strings"

	"minishop/internal/modkit/repokit"
	perr "minishop/internal/platform/errors"
	"minishop/internal/platform/logger"
	"minishop/internal/platform/store"
)

// appendAttempts bounds reruns of an append that lost a lock or serialization race
const appendAttempts = 3

const (
	sqlSchema = `
create table if not exists rowstore_rows (
	sheet text    not null,
	pos   integer not null,
	cells text[]  not null default '{}',
	primary key (sheet, pos)
)`

	sqlRead = `select cells from rowstore_rows where sheet = $1 order by pos`

	sqlLock = `select pg_advisory_xact_lock(hashtext($1))`

	sqlAppend = `
insert into rowstore_rows (sheet, pos, cells)
select $1::text, coalesce(max(pos) + 1, 0), $2::text[]
  from rowstore_rows
 where sheet = $1`

	sqlUpdate = `
update rowstore_rows
   set cells = $3::text[]
 where sheet = $1
   and pos = (select pos from rowstore_rows where sheet = $1 order by pos offset $2 limit 1)`
)

// Store implements the row store on a store.TxRunner
type Store struct {
	db  store.TxRunner
	log logger.Logger
}

// New wraps db
func New(db store.TxRunner) *Store {
	return &Store{db: db, log: *logger.Named("pgrows")}
}

// Migrate creates the table when missing
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, sqlSchema); err != nil {
		return perr.FromPostgres(err, "rowstore migrate")
	}
	s.log.Debug().Msg("rowstore_rows ready")
	return nil
}

// Read returns every row of sheet in order, empty when the sheet has none
func (s *Store) Read(ctx context.Context, sheet string) ([][]string, error) {
	sheet, err := sheetName(sheet)
	if err != nil {
		return nil, err
	}
	out, err := store.Many(ctx, s.db, scanCells, sqlRead, sheet)
	if err != nil {
		return nil, perr.FromPostgresf(err, "rowstore read %s", sheet)
	}
	return out, nil
}

// Append adds row after the last row of sheet
func (s *Store) Append(ctx context.Context, sheet string, row []string) error {
	sheet, err := sheetName(sheet)
	if err != nil {
		return err
	}
	tx := repokit.WithBeginHooks(s.db, lockSheet(sheet))
	for attempt := 1; ; attempt++ {
		err = tx.Tx(ctx, func(q repokit.Queryer) error {
			_, err := q.Exec(ctx, sqlAppend, sheet, cells(row))
			return err
		})
		if err == nil || attempt == appendAttempts || !perr.IsRetryable(err) {
			break
		}
		s.log.Warn().Err(err).Str("sheet", sheet).Int("attempt", attempt).Msg("rowstore append retry")
	}
	if err != nil {
		return perr.FromPostgresf(err, "rowstore append %s", sheet)
	}
	return nil
}

// UpdateRow replaces the row at index, counted from zero in Read order
func (s *Store) UpdateRow(ctx context.Context, sheet string, index int, row []string) error {
	sheet, err := sheetName(sheet)
	if err != nil {
		return err
	}
	if index < 0 {
		return perr.InvalidArgf("rowstore: negative row index %d", index)
	}
	n, err := store.Affected(ctx, s.db, sqlUpdate, sheet, index, cells(row))
	if err != nil {
		return perr.FromPostgresf(err, "rowstore update %s[%d]", sheet, index)
	}
	if n == 0 {
		return perr.NotFoundf("rowstore: %s has no row %d", sheet, index)
	}
	return nil
}

// Ping checks the database answers
func (s *Store) Ping(ctx context.Context) error {
	if p, ok := s.db.(store.Pinger); ok {
		return p.Ping(ctx)
	}
	_, err := store.Scalar[int](ctx, s.db, "select 1")
	return err
}

// lockSheet serializes appends to one sheet for the rest of the tx
func lockSheet(sheet string) repokit.BeginHook {
	return func(ctx context.Context, q repokit.Queryer) error {
		_, err := q.Exec(ctx, sqlLock, sheet)
		return err
	}
}

func scanCells(r store.Row) ([]string, error) {
	var c []string
	if err := r.Scan(&c); err != nil {
		return nil, err
	}
	if c == nil {
		c = []string{}
	}
	return c, nil
}

func cells(row []string) []string {
	if row == nil {
		return []string{}
	}
	return row
}

func sheetName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", perr.InvalidArgf("rowstore: empty sheet name")
	}
	return s, nil
}
