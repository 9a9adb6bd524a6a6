// Package minedb defines the contracts between the CLI and the
// implementations in internal/io*. Implementations live in impure
// packages; this package stays free of I/O.
package minedb

import (
	"context"

	"github.com/acdh-oeaw/minedb/pkg/legacy"
)

var (
	// Version is the application version, set via build flags.
	Version = "dev"
	// Build is the build timestamp, set via build flags.
	Build = "unknown"
)

// LegacyClient reads from the legacy APIS REST API.
type LegacyClient interface {
	// BaseURL returns the configured API root.
	BaseURL() string

	// Get issues an authenticated GET request and decodes the JSON
	// object response.
	Get(ctx context.Context, url string, params map[string]string) (legacy.Payload, error)

	// GetObject is Get without query parameters, memoized by URL for
	// the lifetime of the run.
	GetObject(ctx context.Context, url string) (legacy.Payload, error)

	// ListPage fetches one page of a paginated list endpoint.
	ListPage(ctx context.Context, url string, params map[string]string) (*legacy.Page, error)

	// ResolveVocab walks a vocabulary term's parent chain and returns
	// the path ordered root first.
	ResolveVocab(ctx context.Context, leafURL string) ([]legacy.VocabTerm, error)
}

// SchemaManager creates and migrates the database schema.
type SchemaManager interface {
	Create(ctx context.Context) error
	Migrate(ctx context.Context) error
}

// Stats summarises the outcome of an import run.
type Stats struct {
	Persons   int
	Relations int
	Labels    int
	Images    int
	Skipped   int
	Failed    int
}

// Importer runs the legacy data import.
type Importer interface {
	// Run imports all persons matching the query (a numeric id or a
	// JSON filter string) together with their relation graph, then
	// applies the alternate-label backfill pass.
	Run(ctx context.Context, personQuery string) (*Stats, error)
}
