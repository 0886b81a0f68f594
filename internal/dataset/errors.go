package dataset

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a dataset id is unknown to the store.
var ErrNotFound = errors.New("dataset not found")

// FormatError indicates the uploaded file is not usable CSV: wrong
// extension, undecodable bytes, or broken CSV structure. These are
// user-correctable and terminal for the request.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *FormatError) Unwrap() error { return e.Err }

// StorageError indicates the backing store rejected a write. No partial
// dataset is ever returned alongside one.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// FileMissingError indicates the dataset record exists but its backing
// bytes no longer resolve. This is a data-integrity condition, distinct
// from an unknown dataset id.
type FileMissingError struct {
	Locator string
}

func (e *FileMissingError) Error() string {
	return fmt.Sprintf("csv file not found at: %s", e.Locator)
}

// AnalysisError indicates a fatal failure during a full-table scan,
// such as the stored file becoming unreadable or its header diverging
// from the recorded columns. Per-column numeric failures never surface
// as an AnalysisError; they degrade to the reduced profile instead.
type AnalysisError struct {
	DatasetID string
	Err       error
}

func (e *AnalysisError) Error() string {
	if e.DatasetID != "" {
		return fmt.Sprintf("analyze dataset %s: %v", e.DatasetID, e.Err)
	}
	return fmt.Sprintf("analyze dataset: %v", e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }
