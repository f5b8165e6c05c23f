package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"learnai.dev/ai-basics/internal/core"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps an in-memory database alive and serializes writers.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err = store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS responses (
        table_name TEXT NOT NULL CHECK (table_name IN ('output', 'chat')),
        keyword TEXT NOT NULL CHECK (keyword <> ''),
        response TEXT NOT NULL,
        position INTEGER NOT NULL,
        updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
        PRIMARY KEY (table_name, keyword)
    );
    `
	_, err := s.db.Exec(schema)
	return err
}

// SaveResponse inserts a keyword at the end of its table, or overwrites the
// response of an existing keyword without moving it.
func (s *SQLiteStore) SaveResponse(table, keyword, response string) error {
	stmt, err := s.db.Prepare(`
        INSERT INTO responses (table_name, keyword, response, position, updated_at)
        VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM responses WHERE table_name = ?), ?)
        ON CONFLICT (table_name, keyword) DO UPDATE SET
            response = excluded.response,
            updated_at = excluded.updated_at
    `)
	if err != nil {
		return fmt.Errorf("failed to prepare response upsert: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(table, keyword, response, table, time.Now())
	if err != nil {
		return fmt.Errorf("failed to execute response upsert: %w", err)
	}
	return nil
}

// GetResponses returns a table's rows in definition order.
func (s *SQLiteStore) GetResponses(table string) ([]Response, error) {
	rows, err := s.db.Query("SELECT table_name, keyword, response, position, updated_at FROM responses WHERE table_name = ? ORDER BY position ASC", table)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	defer rows.Close()

	var responses []Response
	for rows.Next() {
		var r Response
		if err := rows.Scan(&r.Table, &r.Keyword, &r.Response, &r.Position, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan response row: %w", err)
		}
		responses = append(responses, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate responses: %w", err)
	}
	return responses, nil
}

func (s *SQLiteStore) CountResponses(table string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM responses WHERE table_name = ?", table).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return n, nil
}

// SeedResponses writes entries in order when the table is still empty and
// reports how many rows were inserted.
func (s *SQLiteStore) SeedResponses(table string, entries []core.ResponseEntry) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	var n int
	if err := tx.QueryRow("SELECT COUNT(*) FROM responses WHERE table_name = ?", table).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	stmt, err := tx.Prepare("INSERT INTO responses (table_name, keyword, response, position, updated_at) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare seed insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for i, e := range entries {
		if _, err := stmt.Exec(table, e.Keyword, e.Response, i+1, now); err != nil {
			return 0, fmt.Errorf("failed to seed %s response %q: %w", table, e.Keyword, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}
	return len(entries), nil
}

// LoadTable reads a stored table into a ResponseTable, seeding it with
// defaults first if it has never been written.
func (s *SQLiteStore) LoadTable(table string, defaults []core.ResponseEntry) (*core.ResponseTable, error) {
	if _, err := s.SeedResponses(table, defaults); err != nil {
		return nil, err
	}
	rows, err := s.GetResponses(table)
	if err != nil {
		return nil, err
	}
	t := core.NewResponseTable()
	for _, r := range rows {
		t.Set(r.Keyword, r.Response)
	}
	return t, nil
}

// LoadTables loads both response tables.
func (s *SQLiteStore) LoadTables() (core.Tables, error) {
	output, err := s.LoadTable(core.OutputTableName, core.DefaultOutputResponses())
	if err != nil {
		return core.Tables{}, fmt.Errorf("failed to load output responses: %w", err)
	}
	chat, err := s.LoadTable(core.ChatTableName, core.DefaultChatResponses())
	if err != nil {
		return core.Tables{}, fmt.Errorf("failed to load chat responses: %w", err)
	}
	return core.Tables{Output: output, Chat: chat}, nil
}
