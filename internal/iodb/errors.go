package iodb

import (
	"fmt"

	"github.com/acdh-oeaw/minedb/pkg/errcode"
)

// ConnectionError creates an error for a failed database connection.
func ConnectionError(database string, err error) error {
	return errcode.New(
		errcode.DBConnectionError,
		fmt.Sprintf("cannot connect to database %s", database),
		err,
	)
}

// NotConnectedError creates an error for an operation attempted
// without a database connection.
func NotConnectedError() error {
	return errcode.New(
		errcode.DBNotConnectedError,
		"not connected to database",
		nil,
	)
}

// TableExistsCheckError creates an error for a failed table check.
func TableExistsCheckError(table string, err error) error {
	return errcode.New(
		errcode.DBTableExistsCheckError,
		fmt.Sprintf("cannot check table %s", table),
		err,
	)
}

// QueryTablesError creates an error for a failed table listing.
func QueryTablesError(err error) error {
	return errcode.New(
		errcode.DBQueryTablesError,
		"cannot query tables",
		err,
	)
}

// ScanTableError creates an error for a failed row scan.
func ScanTableError(err error) error {
	return errcode.New(
		errcode.DBScanTableError,
		"cannot scan table name",
		err,
	)
}

// DropTableError creates an error for a failed table drop.
func DropTableError(table string, err error) error {
	return errcode.New(
		errcode.DBDropTableError,
		fmt.Sprintf("cannot drop table %s", table),
		err,
	)
}
