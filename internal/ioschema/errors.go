package ioschema

import "github.com/acdh-oeaw/minedb/pkg/errcode"

// NotConnectedError creates an error for a schema operation attempted
// without a database connection.
func NotConnectedError() error {
	return errcode.New(
		errcode.DBNotConnectedError,
		"schema operation attempted without database connection",
		nil,
	)
}

// GORMConnectionError creates an error for a failed GORM session.
func GORMConnectionError(err error) error {
	return errcode.New(
		errcode.SchemaGORMConnectionError,
		"cannot open GORM session over pgx pool",
		err,
	)
}

// CreateSchemaError creates an error for failed schema creation.
func CreateSchemaError(err error) error {
	return errcode.New(
		errcode.SchemaCreateError,
		"cannot create database schema",
		err,
	)
}

// MigrateSchemaError creates an error for a failed migration.
func MigrateSchemaError(err error) error {
	return errcode.New(
		errcode.SchemaMigrateError,
		"cannot migrate database schema",
		err,
	)
}
