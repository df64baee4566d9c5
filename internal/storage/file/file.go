// Package file stores templates and month records as JSON documents in a
// directory: defaults.json plus one YYYY-MM.json per month.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"habits/internal/core"
	"habits/internal/storage"
)

const (
	defaultsFile = "defaults.json"
	monthExt     = ".json"
)

type Store struct {
	dir string
}

var _ storage.Store = (*Store)(nil)

// Open prepares dir (creating it if needed) and returns a store rooted there.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Close is a no-op; the store holds no open handles.
func (s *Store) Close() error { return nil }

func (s *Store) GetDefaults(ctx context.Context) ([]core.DefaultHabitEntry, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, defaultsFile))
	if errors.Is(err, fs.ErrNotExist) {
		return []core.DefaultHabitEntry{}, nil
	}
	if err != nil {
		return nil, &core.PersistenceError{Op: "read", Key: storage.DefaultsKey, Err: err}
	}
	return storage.DecodeDefaults(data)
}

func (s *Store) SetDefaults(ctx context.Context, defaults []core.DefaultHabitEntry) error {
	data, err := storage.EncodeDefaults(defaults)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.dir, defaultsFile, data); err != nil {
		return &core.PersistenceError{Op: "write", Key: storage.DefaultsKey, Err: err}
	}
	slog.InfoContext(ctx, "Defaults saved to file", "count", len(defaults))
	return nil
}

func (s *Store) LoadMonth(ctx context.Context, id core.MonthID) (core.MonthRecord, bool, error) {
	path, err := s.monthPath(id)
	if err != nil {
		return core.MonthRecord{}, false, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return core.MonthRecord{}, false, nil
	}
	if err != nil {
		return core.MonthRecord{}, false, &core.PersistenceError{Op: "read", Key: string(id), Err: err}
	}
	record, err := storage.DecodeMonth(id, data)
	if err != nil {
		return core.MonthRecord{}, true, err
	}
	return record, true, nil
}

func (s *Store) SaveMonth(ctx context.Context, id core.MonthID, record core.MonthRecord) error {
	if _, err := s.monthPath(id); err != nil {
		return err
	}
	data, err := storage.EncodeMonth(id, record)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.dir, string(id)+monthExt, data); err != nil {
		return &core.PersistenceError{Op: "write", Key: string(id), Err: err}
	}
	slog.InfoContext(ctx, "Month saved to file",
		"month_id", id,
		"habits", len(record.Habits),
		"logged_days", len(record.DailyLogs))
	return nil
}

// ListMonthIDs returns months from files named YYYY-MM.json. Other files are ignored.
func (s *Store) ListMonthIDs(ctx context.Context) ([]core.MonthID, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &core.PersistenceError{Op: "list", Err: err}
	}
	ids := make([]core.MonthID, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), monthExt) {
			continue
		}
		id, err := core.ParseMonthID(strings.TrimSuffix(e.Name(), monthExt))
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (s *Store) monthPath(id core.MonthID) (string, error) {
	if _, err := core.ParseMonthID(string(id)); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, string(id)+monthExt), nil
}

// writeFileAtomic replaces dir/name through a temp file and rename so a failed
// write never leaves a truncated document behind.
func writeFileAtomic(dir, name string, data []byte) error {
	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, filepath.Join(dir, name))
}
