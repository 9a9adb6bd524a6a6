// Package iodb implements the db.Operator interface with a pgx
// connection pool.
package iodb

import (
	"context"
	"fmt"

	"github.com/acdh-oeaw/minedb/pkg/config"
	"github.com/acdh-oeaw/minedb/pkg/db"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgxOperator struct {
	pool *pgxpool.Pool
}

// NewPgxOperator creates a database operator backed by pgxpool.
func NewPgxOperator() db.Operator {
	return &pgxOperator{}
}

// Connect establishes a connection pool to PostgreSQL.
func (o *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port,
		cfg.Database, cfg.SSLMode,
	)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return ConnectionError(cfg.Database, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(cfg.Database, err)
	}

	o.pool = pool
	return nil
}

// Close closes the database connection pool.
func (o *pgxOperator) Close() error {
	if o.pool != nil {
		o.pool.Close()
		o.pool = nil
	}
	return nil
}

// Pool returns the underlying pgxpool.Pool, or nil when not connected.
func (o *pgxOperator) Pool() *pgxpool.Pool {
	return o.pool
}

// TableExists checks if a table exists in the public schema.
func (o *pgxOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if o.pool == nil {
		return false, NotConnectedError()
	}

	var exists bool
	q := `SELECT EXISTS (
		SELECT FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name = $1
	)`
	err := o.pool.QueryRow(ctx, q, tableName).Scan(&exists)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}
	return exists, nil
}

// HasTables checks if the public schema contains any tables.
func (o *pgxOperator) HasTables(ctx context.Context) (bool, error) {
	if o.pool == nil {
		return false, NotConnectedError()
	}

	var count int
	q := `SELECT count(*) FROM information_schema.tables
		WHERE table_schema = 'public'`
	err := o.pool.QueryRow(ctx, q).Scan(&count)
	if err != nil {
		return false, QueryTablesError(err)
	}
	return count > 0, nil
}

// DropAllTables drops all tables in the public schema.
func (o *pgxOperator) DropAllTables(ctx context.Context) error {
	if o.pool == nil {
		return NotConnectedError()
	}

	rows, err := o.pool.Query(ctx,
		`SELECT tablename FROM pg_tables WHERE schemaname = 'public'`)
	if err != nil {
		return QueryTablesError(err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return ScanTableError(err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return QueryTablesError(err)
	}

	for _, name := range tables {
		q := fmt.Sprintf(`DROP TABLE IF EXISTS %q CASCADE`, name)
		if _, err := o.pool.Exec(ctx, q); err != nil {
			return DropTableError(name, err)
		}
	}

	return nil
}
