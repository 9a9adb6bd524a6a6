package ioimport

import (
	"fmt"

	"github.com/acdh-oeaw/minedb/pkg/errcode"
)

// QueryError creates an error for an unparseable person query.
func QueryError(query string, err error) error {
	return errcode.New(
		errcode.ImportQueryError,
		fmt.Sprintf("cannot parse person query %q", query),
		err,
	)
}

// VocFileError creates an error for an unreadable vocabulary mapping
// file.
func VocFileError(path string, err error) error {
	return errcode.New(
		errcode.ImportVocFileError,
		fmt.Sprintf("cannot read vocabulary mapping file %q", path),
		err,
	)
}

// LabelsFileError creates an error for an unreadable labels file.
func LabelsFileError(path string, err error) error {
	return errcode.New(
		errcode.ImportLabelsFileError,
		fmt.Sprintf("cannot read labels file %q", path),
		err,
	)
}

// EntityError creates an error for a failed entity import.
func EntityError(kind string, oldID int, err error) error {
	return errcode.New(
		errcode.ImportEntityError,
		fmt.Sprintf("cannot import %s with legacy id %d", kind, oldID),
		err,
	)
}

// EntityNotFoundError creates an error for a legacy id that none of
// the configured API routes could resolve.
func EntityNotFoundError(kind string, oldID int) error {
	return errcode.New(
		errcode.ImportEntityError,
		fmt.Sprintf("no API route found for %s with legacy id %d", kind, oldID),
		nil,
	)
}

// UnknownEntityKindError creates an error for a kind tag outside the
// closed set.
func UnknownEntityKindError(kind string) error {
	return errcode.New(
		errcode.ImportEntityError,
		fmt.Sprintf("unknown entity kind %q", kind),
		nil,
	)
}

// RelationError creates an error for a failed relation import.
func RelationError(kind string, oldID int, err error) error {
	return errcode.New(
		errcode.ImportRelationError,
		fmt.Sprintf("cannot import relation %s with legacy id %d", kind, oldID),
		err,
	)
}

// RecordsFailedError creates the run-level error returned when some
// records could not be imported.
func RecordsFailedError(failed int) error {
	return errcode.New(
		errcode.ImportRecordsFailedError,
		fmt.Sprintf("%d records failed to import", failed),
		nil,
	)
}
