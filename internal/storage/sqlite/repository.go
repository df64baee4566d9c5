// Package sqlite stores the template and month documents in SQLite, one row
// per document, with the same JSON bodies the file backend writes.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"habits/internal/core"
	"habits/internal/storage"
)

type Repository struct {
	db *sql.DB
}

var _ storage.Store = (*Repository)(nil)

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// One writer at a time; avoids SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) GetDefaults(ctx context.Context) ([]core.DefaultHabitEntry, error) {
	var body string
	err := r.db.QueryRowContext(ctx, `SELECT body FROM template_documents WHERE id = 1`).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return []core.DefaultHabitEntry{}, nil
	}
	if err != nil {
		return nil, &core.PersistenceError{Op: "read", Key: storage.DefaultsKey, Err: err}
	}
	return storage.DecodeDefaults([]byte(body))
}

func (r *Repository) SetDefaults(ctx context.Context, defaults []core.DefaultHabitEntry) error {
	data, err := storage.EncodeDefaults(defaults)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO template_documents (id, body, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`, string(data), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return &core.PersistenceError{Op: "write", Key: storage.DefaultsKey, Err: err}
	}

	slog.InfoContext(ctx, "Defaults saved to SQLite", "count", len(defaults))
	return nil
}

func (r *Repository) LoadMonth(ctx context.Context, id core.MonthID) (core.MonthRecord, bool, error) {
	var body string
	err := r.db.QueryRowContext(ctx, `SELECT body FROM month_documents WHERE month_id = ?`, string(id)).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return core.MonthRecord{}, false, nil
	}
	if err != nil {
		return core.MonthRecord{}, false, &core.PersistenceError{Op: "read", Key: string(id), Err: err}
	}
	record, err := storage.DecodeMonth(id, []byte(body))
	if err != nil {
		return core.MonthRecord{}, true, err
	}
	return record, true, nil
}

func (r *Repository) SaveMonth(ctx context.Context, id core.MonthID, record core.MonthRecord) error {
	if _, err := core.ParseMonthID(string(id)); err != nil {
		return err
	}
	data, err := storage.EncodeMonth(id, record)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO month_documents (month_id, body, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(month_id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`, string(id), string(data), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return &core.PersistenceError{Op: "write", Key: string(id), Err: err}
	}

	slog.InfoContext(ctx, "Month saved to SQLite",
		"month_id", id,
		"habits", len(record.Habits),
		"logged_days", len(record.DailyLogs))
	return nil
}

func (r *Repository) ListMonthIDs(ctx context.Context) ([]core.MonthID, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT month_id FROM month_documents ORDER BY month_id ASC`)
	if err != nil {
		return nil, &core.PersistenceError{Op: "list", Err: err}
	}
	defer rows.Close()

	var ids []core.MonthID
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, &core.PersistenceError{Op: "list", Err: err}
		}
		if id, err := core.ParseMonthID(key); err == nil {
			ids = append(ids, id)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &core.PersistenceError{Op: "list", Err: err}
	}
	return ids, nil
}

// putRaw writes a document body without encoding or validation.
func (r *Repository) putRaw(ctx context.Context, key, body string) error {
	if key == storage.DefaultsKey {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO template_documents (id, body, updated_at) VALUES (1, ?, '')
			ON CONFLICT(id) DO UPDATE SET body = excluded.body`, body)
		return err
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO month_documents (month_id, body, updated_at) VALUES (?, ?, '')
		ON CONFLICT(month_id) DO UPDATE SET body = excluded.body`, key, body)
	return err
}
