package db

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"

	"github.com/dtnitsch/feeday/pkg/storage"
	_ "modernc.org/sqlite"
)

const (
	FeesTable     = "fees"
	StudentsTable = "students"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type DB struct {
	*sql.DB
	path string
}

// openDB opens a SQLite database using the given DSN
func openDB(dsn string) (*sql.DB, error) {
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = sqlDB.Close() // Close error less important than PRAGMA error
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return sqlDB, nil
}

// fileDSN builds a SQLite URI for path with the given open mode. The path is
// made absolute and percent-escaped so '?' and '#' in file names survive.
func fileDSN(path, mode string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve database path: %w", err)
	}
	dsn := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(abs),
		RawQuery: url.Values{"mode": {mode}}.Encode(),
	}
	return dsn.String(), nil
}

// Open opens an existing fee database read-only and checks that the fees
// table is present.
func Open(path string) (*DB, error) {
	dsn, err := fileDSN(path, "ro")
	if err != nil {
		return nil, err
	}
	sqlDB, err := openDB(dsn)
	if err != nil {
		return nil, err
	}

	db := &DB{
		DB:   sqlDB,
		path: path,
	}

	if err := db.ensureTable(FeesTable); err != nil {
		_ = db.Close() // Close error less important than schema error
		return nil, err
	}

	return db, nil
}

// ensureTable returns an error when the named table does not exist
func (db *DB) ensureTable(name string) error {
	var tableName string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name = ?", name).Scan(&tableName)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("database %s has no %q table", db.path, name)
	}
	if err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}
	return nil
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// InitSchema creates the fees and students tables
func (db *DB) InitSchema() error {
	_, err := db.Exec(schema)
	return err
}

// ReadTable loads every row of a table, in rowid order, as text cells.
// NULL reads as an empty cell.
func (db *DB) ReadTable(name string) (*storage.Table, error) {
	if !identPattern.MatchString(name) {
		return nil, fmt.Errorf("invalid table name %q", name)
	}
	if err := db.ensureTable(name); err != nil {
		return nil, err
	}

	rows, err := db.Query(fmt.Sprintf(`SELECT * FROM "%s" ORDER BY rowid`, name))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", name, err)
	}

	table := &storage.Table{
		Source:  fmt.Sprintf("%s:%s", db.path, name),
		Headers: columns,
	}

	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row %d: %w", name, len(table.Rows)+1, err)
		}
		row := make([]string, len(columns))
		for i, v := range values {
			if v.Valid {
				row[i] = v.String
			}
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", name, err)
	}

	return table, nil
}
