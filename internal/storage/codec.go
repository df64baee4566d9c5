package storage

import (
	"encoding/json"
	"fmt"

	"habits/internal/core"
)

// DefaultsKey is the document key used for the template list.
const DefaultsKey = "defaults"

// EncodeDefaults renders the template document as indented JSON.
func EncodeDefaults(defaults []core.DefaultHabitEntry) ([]byte, error) {
	if defaults == nil {
		defaults = []core.DefaultHabitEntry{}
	}
	data, err := json.MarshalIndent(defaults, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode defaults: %w", err)
	}
	return data, nil
}

// DecodeDefaults parses a template document.
func DecodeDefaults(data []byte) ([]core.DefaultHabitEntry, error) {
	var defaults []core.DefaultHabitEntry
	if err := json.Unmarshal(data, &defaults); err != nil {
		return nil, &core.MalformedRecordError{Key: DefaultsKey, Err: err}
	}
	if defaults == nil {
		defaults = []core.DefaultHabitEntry{}
	}
	return defaults, nil
}

// EncodeMonth renders a month document as indented JSON. The document's
// monthId is always the key it is stored under.
func EncodeMonth(id core.MonthID, record core.MonthRecord) ([]byte, error) {
	record.MonthID = id
	record.Normalize()
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode month %s: %w", id, err)
	}
	return data, nil
}

// DecodeMonth parses a month document stored under id.
func DecodeMonth(id core.MonthID, data []byte) (core.MonthRecord, error) {
	var record core.MonthRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return core.MonthRecord{}, &core.MalformedRecordError{Key: string(id), Err: err}
	}
	if record.MonthID == "" {
		record.MonthID = id
	}
	record.Normalize()
	return record, nil
}
