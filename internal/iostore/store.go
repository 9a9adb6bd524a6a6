// Package iostore implements the persistence layer of the importer: a
// GORM-backed store with get-or-create semantics keyed on the legacy
// identifier of each record.
package iostore

import (
	"errors"

	"github.com/acdh-oeaw/minedb/pkg/schema"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Store wraps a GORM session over the target database.
type Store struct {
	db *gorm.DB
}

// New creates a store from an existing GORM session. Used by tests
// with an in-memory SQLite database.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// NewFromPool creates a store over the shared pgx connection pool.
func NewFromPool(pool *pgxpool.Pool) (*Store, error) {
	sqlDB := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	return &Store{db: gormDB}, nil
}

// AutoMigrate creates or updates the schema tables.
func (s *Store) AutoMigrate() error {
	return schema.Migrate(s.db)
}

// FindEntityByOldID looks up one entity table by legacy id.
func (s *Store) FindEntityByOldID(
	kind schema.Kind,
	oldID int,
) (schema.Entity, bool, error) {
	model, err := emptyEntity(kind)
	if err != nil {
		return nil, false, err
	}

	res := s.db.Where("old_id = ?", oldID).First(model)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, QueryError(string(kind), res.Error)
	}
	return model, true, nil
}

// FindAnyByOldID fans the legacy id lookup out across all entity
// tables and returns the first match, in the fixed order of
// schema.EntityKinds.
func (s *Store) FindAnyByOldID(oldID int) (schema.Entity, bool, error) {
	for _, kind := range schema.EntityKinds {
		e, ok, err := s.FindEntityByOldID(kind, oldID)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return e, true, nil
		}
	}
	return nil, false, nil
}

// CreateEntity persists a new entity record.
func (s *Store) CreateEntity(e schema.Entity) error {
	if res := s.db.Create(e); res.Error != nil {
		return SaveError(string(e.Kind()), res.Error)
	}
	return nil
}

// SaveEntity persists changes to an existing entity record.
func (s *Store) SaveEntity(e schema.Entity) error {
	if res := s.db.Save(e); res.Error != nil {
		return SaveError(string(e.Kind()), res.Error)
	}
	return nil
}

// emptyEntity returns a zero model pointer for a kind.
func emptyEntity(kind schema.Kind) (schema.Entity, error) {
	switch kind {
	case schema.KindPerson:
		return &schema.Person{}, nil
	case schema.KindInstitution:
		return &schema.Institution{}, nil
	case schema.KindOrt:
		return &schema.Ort{}, nil
	case schema.KindEreignis:
		return &schema.Ereignis{}, nil
	case schema.KindWerk:
		return &schema.Werk{}, nil
	case schema.KindPreis:
		return &schema.Preis{}, nil
	case schema.KindReligion:
		return &schema.Religion{}, nil
	case schema.KindFach:
		return &schema.Fach{}, nil
	default:
		return nil, UnknownKindError(string(kind))
	}
}
