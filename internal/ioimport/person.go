package ioimport

import (
	"strings"

	"github.com/acdh-oeaw/minedb/pkg/legacy"
	"github.com/acdh-oeaw/minedb/pkg/schema"
)

// genderMap translates the English gender choices of the legacy system
// into the German labels of the target schema. Unknown values pass
// through unchanged.
var genderMap = map[string]string{
	"male":         "männlich",
	"female":       "weiblich",
	"third gender": "divers",
}

func fillPerson(f legacy.Payload) schema.Entity {
	gender := fieldStr(f, "gender")
	if g, ok := genderMap[gender]; ok {
		gender = g
	}
	p := &schema.Person{
		Forename:    fieldStr(f, "forename"),
		Surname:     fieldStr(f, "surname"),
		Gender:      gender,
		DateOfBirth: fieldStr(f, "date_of_birth"),
		DateOfDeath: fieldStr(f, "date_of_death"),
	}
	fillLegacy(&p.LegacyFields, f)
	return p
}

// personPost derives the person state that does not map field for
// field: academic titles, professions and the membership summary read
// off the person's relation labels.
func personPost(imp *Importer, ent schema.Entity, raw legacy.Payload) error {
	p, ok := ent.(*schema.Person)
	if !ok {
		return UnknownEntityKindError(string(ent.Kind()))
	}

	for _, t := range legacy.List(raw, "title") {
		title, ok := t.(string)
		if !ok || title == "" {
			continue
		}
		p.Titel = append(p.Titel, schema.AltName{Name: title})
	}

	for _, prof := range legacy.MapList(raw, "profession") {
		oldID := legacy.Int(prof, "id")
		name := legacy.Str(prof, "label")
		if name == "" {
			name = legacy.Str(prof, "name")
		}
		if oldID == 0 || name == "" {
			continue
		}
		beruf, err := imp.store.GetOrCreateBeruf(oldID, name)
		if err != nil {
			return err
		}
		if err := imp.store.LinkBeruf(p, beruf); err != nil {
			return err
		}
	}

	inferMembership(p, raw)
	return nil
}

// inferMembership scans the relation labels attached to the person
// payload. A membership relation marks the person as a member; the
// class labels decide which academy class the person belongs to.
// Membership in both classes resolves to the whole academy.
func inferMembership(p *schema.Person, raw legacy.Payload) {
	var mathNat, philHist bool
	for _, rel := range legacy.MapList(raw, "relations") {
		label := strings.ToUpper(legacy.Str(rel, "label"))
		if label == "" {
			continue
		}
		if strings.Contains(label, "MITGLIED") {
			p.Mitglied = true
		}
		switch {
		case strings.Contains(label, "MATHEMATISCH-NATURWISSENSCHAFTLICHE"):
			mathNat = true
		case strings.Contains(label, "PHILOSOPHISCH-HISTORISCHE"):
			philHist = true
		case strings.Contains(label, "GESAMTAKADEMIE"):
			mathNat, philHist = true, true
		}
	}

	switch {
	case mathNat && philHist:
		p.Klasse = schema.KlasseGesamt
	case mathNat:
		p.Klasse = schema.KlasseMathNat
	case philHist:
		p.Klasse = schema.KlassePhilHist
	}
}
