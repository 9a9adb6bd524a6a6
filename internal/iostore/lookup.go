package iostore

import (
	"errors"

	"github.com/acdh-oeaw/minedb/pkg/schema"
	"gorm.io/gorm"
)

// AddURI attaches a same-as URI to an entity. URIs are globally
// unique: when the URI is already attached (to this or any other
// record) nothing is written and created is false, so the caller can
// log the duplicate and continue with the remaining entries.
func (s *Store) AddURI(
	uri string,
	entity schema.Entity,
) (created bool, existing *schema.Uri, err error) {
	var found schema.Uri
	res := s.db.Where("uri = ?", uri).First(&found)
	if res.Error == nil {
		return false, &found, nil
	}
	if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return false, nil, QueryError("uri", res.Error)
	}

	row := schema.Uri{
		URI:        uri,
		EntityKind: entity.Kind(),
		EntityID:   entity.PK(),
	}
	if res := s.db.Create(&row); res.Error != nil {
		return false, nil, SaveError("uri", res.Error)
	}
	return true, nil, nil
}

// GetOrCreateBeruf resolves a profession row by legacy id, creating it
// on first sight.
func (s *Store) GetOrCreateBeruf(
	oldID int,
	name string,
) (*schema.Beruf, error) {
	var beruf schema.Beruf
	res := s.db.Where("old_id = ?", oldID).First(&beruf)
	if res.Error == nil {
		return &beruf, nil
	}
	if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, QueryError("beruf", res.Error)
	}

	beruf = schema.Beruf{OldID: &oldID, Name: name}
	if res := s.db.Create(&beruf); res.Error != nil {
		return nil, SaveError("beruf", res.Error)
	}
	return &beruf, nil
}

// LinkBeruf attaches a profession to a person.
func (s *Store) LinkBeruf(p *schema.Person, b *schema.Beruf) error {
	if err := s.db.Model(p).Association("Berufe").Append(b); err != nil {
		return SaveError("person beruf", err)
	}
	return nil
}

// AddAltName appends a structured alternative-name entry to an entity
// that carries the alternative-name array and persists the entity.
func (s *Store) AddAltName(
	entity schema.Entity,
	name schema.AltName,
) error {
	named, ok := entity.(schema.AltNamed)
	if !ok {
		return SaveError(
			string(entity.Kind()),
			errors.New("entity has no alternative-name field"),
		)
	}
	list := named.AltNameList()
	*list = append(*list, name)
	return s.SaveEntity(entity)
}

// CreateBild persists an image attachment.
func (s *Store) CreateBild(b *schema.Bild) error {
	if res := s.db.Create(b); res.Error != nil {
		return SaveError("bild", res.Error)
	}
	return nil
}

// FindBild returns the image of a given kind attached to an entity.
func (s *Store) FindBild(
	entity schema.Entity,
	art string,
) (*schema.Bild, bool, error) {
	var bild schema.Bild
	res := s.db.
		Where("entity_kind = ? AND entity_id = ? AND art = ?",
			entity.Kind(), entity.PK(), art).
		First(&bild)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, QueryError("bild", res.Error)
	}
	return &bild, true, nil
}

// SaveBild persists changes to an image attachment.
func (s *Store) SaveBild(b *schema.Bild) error {
	if res := s.db.Save(b); res.Error != nil {
		return SaveError("bild", res.Error)
	}
	return nil
}
