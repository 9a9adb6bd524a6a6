package iostore

import (
	"errors"

	"github.com/acdh-oeaw/minedb/pkg/schema"
	"gorm.io/gorm"
)

// FindRelationByOldID looks the relations table up by legacy id.
func (s *Store) FindRelationByOldID(
	oldID int,
) (*schema.Relation, bool, error) {
	var rel schema.Relation
	res := s.db.Where("old_id = ?", oldID).First(&rel)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, QueryError("relation", res.Error)
	}
	return &rel, true, nil
}

// CreateRelation validates and persists a new relation row. For
// institution-hierarchy relations, the derived reverse label is filled
// from the hierarchy options table.
func (s *Store) CreateRelation(rel *schema.Relation) error {
	if err := rel.Validate(); err != nil {
		return SaveError("relation", err)
	}

	if rel.Kind == schema.RelInstitutionHierarchie {
		if rev := schema.HierarchyReverse(rel.Label); rev != "" {
			rel.LabelReverse = rev
		}
	}

	if res := s.db.Create(rel); res.Error != nil {
		return SaveError("relation", res.Error)
	}
	return nil
}

// SaveRelation persists changes to an existing relation row.
func (s *Store) SaveRelation(rel *schema.Relation) error {
	if rel.Kind == schema.RelInstitutionHierarchie {
		if rev := schema.HierarchyReverse(rel.Label); rev != "" {
			rel.LabelReverse = rev
		}
	}
	if res := s.db.Save(rel); res.Error != nil {
		return SaveError("relation", res.Error)
	}
	return nil
}

// AddActor attaches a person to a relation in a named role unless the
// same attachment already exists.
func (s *Store) AddActor(
	relationID, personID uint,
	role string,
) error {
	actor := schema.RelationActor{
		RelationID: relationID,
		PersonID:   personID,
		Role:       role,
	}
	res := s.db.
		Where(&actor).
		FirstOrCreate(&actor)
	if res.Error != nil {
		return SaveError("relation actor", res.Error)
	}
	return nil
}
