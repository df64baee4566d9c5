// Package memory is an in-process MonthExporter used for development and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"habits/internal/core"
	ports "habits/internal/sheets"
)

type Exporter struct {
	mu      sync.Mutex
	exports map[core.MonthID]core.MonthRecord
	count   int
	err     error
}

var _ ports.MonthExporter = (*Exporter)(nil)

func New() *Exporter {
	return &Exporter{exports: map[core.MonthID]core.MonthRecord{}}
}

// ExportMonth keeps a copy of the record and returns a synthetic reference.
func (e *Exporter) ExportMonth(_ context.Context, record core.MonthRecord) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return "", e.err
	}
	e.exports[record.MonthID] = record.Clone()
	e.count++
	return fmt.Sprintf("mem:%s#%d", record.MonthID, e.count), nil
}

// Exported returns the last exported version of id.
func (e *Exporter) Exported(id core.MonthID) (core.MonthRecord, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	r, ok := e.exports[id]
	return r, ok
}

// Count returns the number of successful exports.
func (e *Exporter) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.count
}

// FailWith makes subsequent exports return err. Pass nil to recover.
func (e *Exporter) FailWith(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = err
}
