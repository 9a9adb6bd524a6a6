package ioimport

import (
	"strings"

	"github.com/acdh-oeaw/minedb/pkg/legacy"
	"github.com/acdh-oeaw/minedb/pkg/schema"
)

func fillInstitution(f legacy.Payload) schema.Entity {
	i := &schema.Institution{
		Name:   fieldStr(f, "name"),
		Beginn: fieldStr(f, "beginn"),
		Ende:   fieldStr(f, "ende"),
	}
	fillLegacy(&i.LegacyFields, f)
	return i
}

// institutionPost derives the institution type from the hierarchical
// kind label of the legacy record. Labels use the "parent >> leaf"
// form; the leaf segment is the type. An "Akademie" top segment marks
// the institution as a body of the academy itself.
func institutionPost(imp *Importer, ent schema.Entity, raw legacy.Payload) error {
	i, ok := ent.(*schema.Institution)
	if !ok {
		return UnknownEntityKindError(string(ent.Kind()))
	}

	kind := legacy.Map(raw, "kind")
	if kind == nil {
		return nil
	}
	label := legacy.Str(kind, "label")
	if label == "" {
		return nil
	}

	segments := strings.Split(label, ">>")
	for n, s := range segments {
		segments[n] = strings.TrimSpace(s)
	}

	i.Typ = segments[len(segments)-1]
	if strings.Contains(segments[0], "Akademie") && len(segments) > 1 {
		i.AkademieInstitution = true
	}
	return nil
}
