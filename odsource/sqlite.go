// SPDX-License-Identifier: MIT

package odsource

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver

	"github.com/katalvlaran/spatialacc/od"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func validateTable(name string) error {
	if !identRe.MatchString(name) {
		return fmt.Errorf("%q: %w", name, ErrBadTable)
	}

	return nil
}

type sqliteSource struct {
	path  string
	table string
}

// Records reads the table read-only. The five Columns must exist; their
// type affinity may be anything SQLite can convert to TEXT/REAL.
func (s *sqliteSource) Records(ctx context.Context) ([]od.Record, error) {
	db, err := sql.Open("sqlite3", "file:"+s.path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("odsource: open %s: %w", s.path, err)
	}
	defer db.Close()

	return ReadSQLite(ctx, db, s.table)
}

// ReadSQLite reads an OD table from db.
func ReadSQLite(ctx context.Context, db *sql.DB, table string) ([]od.Record, error) {
	if err := validateTable(table); err != nil {
		return nil, fmt.Errorf("sqlite: %w", err)
	}
	query := fmt.Sprintf(`SELECT "%s" FROM "%s"`, strings.Join(Columns, `", "`), table)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		if strings.Contains(err.Error(), "no such column") {
			return nil, fmt.Errorf("sqlite: %s: %v: %w", table, err, ErrMissingColumn)
		}
		return nil, fmt.Errorf("sqlite: %s: %w", table, err)
	}
	defer rows.Close()

	var (
		out      []od.Record
		origin   string
		dest     string
		cost     float64
		demand   float64
		supply   float64
		rowIndex int
	)
	for rows.Next() {
		rowIndex++
		if err = rows.Scan(&origin, &dest, &cost, &demand, &supply); err != nil {
			return nil, fmt.Errorf("sqlite: %s row %d: %v: %w", table, rowIndex, err, ErrBadValue)
		}
		out = append(out, od.Record{
			Origin:      od.ID(origin),
			Destination: od.ID(dest),
			TravelCost:  cost,
			Demand:      demand,
			Supply:      supply,
		})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: %s: %w", table, err)
	}

	return out, nil
}

// WriteSQLite creates table (if absent) with the canonical columns and
// inserts records in one transaction.
func WriteSQLite(ctx context.Context, db *sql.DB, table string, records []od.Record) error {
	if err := validateTable(table); err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	create := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS "%s" (
		OriginID TEXT NOT NULL, DestinationID TEXT NOT NULL,
		TravelCost REAL NOT NULL, O_Demand REAL NOT NULL, D_Supply REAL NOT NULL)`, table)
	if _, err = tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("sqlite: create %s: %w", table, err)
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO "%s" (OriginID, DestinationID, TravelCost, O_Demand, D_Supply) VALUES (?, ?, ?, ?, ?)`, table))
	if err != nil {
		return fmt.Errorf("sqlite: prepare %s: %w", table, err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err = stmt.ExecContext(ctx, string(r.Origin), string(r.Destination), r.TravelCost, r.Demand, r.Supply); err != nil {
			return fmt.Errorf("sqlite: insert row %d: %w", i, err)
		}
	}

	return tx.Commit()
}
