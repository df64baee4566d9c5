package core

import "fmt"

// PersistenceError reports that the storage medium could not be read or written.
type PersistenceError struct {
	Op  string // "read", "write" or "list"
	Key string // document key, e.g. "defaults" or "2024-05"
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("persistence %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("persistence %s %s failed: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// MalformedRecordError reports a stored document that does not decode.
type MalformedRecordError struct {
	Key string
	Err error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record %s: %v", e.Key, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }
