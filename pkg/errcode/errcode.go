// Package errcode defines the closed set of error codes used across
// minedb, together with a coded error type that wraps an underlying
// error with a code and a user-facing message.
package errcode

import "fmt"

// Code identifies a class of failure.
type Code int

const (
	UnknownError Code = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError

	// Legacy API errors
	APIRequestError
	APIDecodeError
	VocabCycleError

	// Store errors
	StoreQueryError
	StoreSaveError
	StoreUnknownKindError

	// Import errors
	ImportQueryError
	ImportVocFileError
	ImportLabelsFileError
	ImportEntityError
	ImportRelationError
	ImportRecordsFailedError
)

// Error is an error with a code and a human readable message.
type Error struct {
	Code Code
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error.
func New(code Code, msg string, err error) *Error {
	return &Error{Code: code, Msg: msg, Err: err}
}
