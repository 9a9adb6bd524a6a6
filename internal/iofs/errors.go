package iofs

import (
	"fmt"

	"github.com/acdh-oeaw/minedb/pkg/errcode"
)

// CreateDirError creates an error for a directory that cannot be made.
func CreateDirError(dir string, err error) error {
	return errcode.New(
		errcode.CreateDirError,
		fmt.Sprintf("cannot create directory %s", dir),
		err,
	)
}

// CopyFileError creates an error for a file that cannot be written.
func CopyFileError(path string, err error) error {
	return errcode.New(
		errcode.CopyFileError,
		fmt.Sprintf("cannot write file %s", path),
		err,
	)
}

// ReadFileError creates an error for a file that cannot be read.
func ReadFileError(path string, err error) error {
	return errcode.New(
		errcode.ReadFileError,
		fmt.Sprintf("cannot read file %s", path),
		err,
	)
}
