package iologger

import (
	"fmt"

	"github.com/acdh-oeaw/minedb/pkg/errcode"
)

// CreateLogFileError creates an error for when the log file cannot be
// created.
func CreateLogFileError(path string, err error) error {
	return errcode.New(
		errcode.CreateLogFileError,
		fmt.Sprintf("cannot create log file %s", path),
		err,
	)
}
