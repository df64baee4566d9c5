// Package memory is an in-process backend. Documents are kept encoded so the
// read path behaves like the persistent backends.
package memory

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"

	"habits/internal/core"
	"habits/internal/storage"
)

type Store struct {
	mu       sync.Mutex
	defaults []byte
	months   map[string][]byte
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	return &Store{months: map[string][]byte{}}
}

// NewFromFiles returns a store whose templates are seeded from
// base/defaults.yaml when that file exists. An unreadable seed file is logged
// and the store starts with no templates.
func NewFromFiles(base string) *Store {
	s := New()
	path := filepath.Join(base, "defaults.yaml")
	seed, err := storage.LoadDefaultsSeed(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s
	}
	if err != nil {
		slog.Warn("Ignoring invalid defaults seed file", "path", path, "error", err)
		return s
	}
	if len(seed) == 0 {
		return s
	}
	data, err := storage.EncodeDefaults(seed)
	if err != nil {
		slog.Warn("Failed to encode seeded defaults", "path", path, "error", err)
		return s
	}
	s.defaults = data
	return s
}

func (s *Store) Close() error { return nil }

func (s *Store) GetDefaults(_ context.Context) ([]core.DefaultHabitEntry, error) {
	s.mu.Lock()
	data := s.defaults
	s.mu.Unlock()
	if data == nil {
		return []core.DefaultHabitEntry{}, nil
	}
	return storage.DecodeDefaults(data)
}

func (s *Store) SetDefaults(_ context.Context, defaults []core.DefaultHabitEntry) error {
	data, err := storage.EncodeDefaults(defaults)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults = data
	return nil
}

func (s *Store) LoadMonth(_ context.Context, id core.MonthID) (core.MonthRecord, bool, error) {
	s.mu.Lock()
	data, ok := s.months[string(id)]
	s.mu.Unlock()
	if !ok {
		return core.MonthRecord{}, false, nil
	}
	record, err := storage.DecodeMonth(id, data)
	if err != nil {
		return core.MonthRecord{}, true, err
	}
	return record, true, nil
}

func (s *Store) SaveMonth(_ context.Context, id core.MonthID, record core.MonthRecord) error {
	if _, err := core.ParseMonthID(string(id)); err != nil {
		return err
	}
	data, err := storage.EncodeMonth(id, record)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.months[string(id)] = data
	return nil
}

func (s *Store) ListMonthIDs(_ context.Context) ([]core.MonthID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]core.MonthID, 0, len(s.months))
	for key := range s.months {
		if id, err := core.ParseMonthID(key); err == nil {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// PutRaw stores data under key without validation. Keys that are not month
// ids are kept but never listed; the key "defaults" replaces the template document.
func (s *Store) PutRaw(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if key == storage.DefaultsKey {
		s.defaults = append([]byte{}, data...)
		return
	}
	s.months[key] = append([]byte{}, data...)
}
