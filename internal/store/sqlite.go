// Package store exports output tables to a SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/KaramelBytes/drillchem-cli/internal/table"
	_ "modernc.org/sqlite"
)

// DB is a SQLite database holding one table per output frame.
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single writer avoids SQLITE_BUSY across batch workers
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return &DB{db: db}, nil
}

// Close releases the database.
func (d *DB) Close() error { return d.db.Close() }

// WriteFrame replaces table name with the contents of f in one transaction.
func (d *DB) WriteFrame(ctx context.Context, name string, f *table.Frame) error {
	if len(f.Columns) == 0 {
		return fmt.Errorf("write %s: frame has no columns", name)
	}
	defs := make([]string, len(f.Columns))
	cols := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		cols[i] = quoteIdent(c.Name)
		defs[i] = cols[i] + " " + sqlType(c.Kind)
	}
	qName := quoteIdent(name)

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+qName); err != nil {
		return fmt.Errorf("drop %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `CREATE TABLE `+qName+` (`+strings.Join(defs, ",")+`)`); err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	ph := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO `+qName+` (`+strings.Join(cols, ",")+`) VALUES (`+ph+`)`)
	if err != nil {
		return fmt.Errorf("prepare insert %s: %w", name, err)
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for i, row := range f.Rows {
		for j := range args {
			args[j] = nil
			if j < len(row) {
				args[j] = row[j]
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert %s row %d: %w", name, i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", name, err)
	}
	return nil
}

// Count returns the number of rows in table name.
func (d *DB) Count(ctx context.Context, name string) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+quoteIdent(name)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", name, err)
	}
	return n, nil
}

// TableName maps an output file stem such as "Au_dh_max" to a table name.
func TableName(stem string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			return r
		}
		return '_'
	}, stem)
}

func sqlType(k table.Kind) string {
	switch k {
	case table.Integer:
		return "INTEGER"
	case table.Real:
		return "REAL"
	default:
		return "TEXT"
	}
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
