package iostore

import (
	"fmt"

	"github.com/acdh-oeaw/minedb/pkg/errcode"
)

// GORMConnectionError creates an error for a failed GORM session.
func GORMConnectionError(err error) error {
	return errcode.New(
		errcode.SchemaGORMConnectionError,
		"cannot open GORM session over pgx pool",
		err,
	)
}

// QueryError creates an error for a failed lookup.
func QueryError(what string, err error) error {
	return errcode.New(
		errcode.StoreQueryError,
		fmt.Sprintf("cannot query %s", what),
		err,
	)
}

// SaveError creates an error for a failed write.
func SaveError(what string, err error) error {
	return errcode.New(
		errcode.StoreSaveError,
		fmt.Sprintf("cannot save %s", what),
		err,
	)
}

// UnknownKindError creates an error for a kind tag outside the closed
// set.
func UnknownKindError(kind string) error {
	return errcode.New(
		errcode.StoreUnknownKindError,
		fmt.Sprintf("unknown entity kind %q", kind),
		nil,
	)
}
