package ioimport

import (
	"context"

	"github.com/acdh-oeaw/minedb/pkg/legacy"
	"github.com/acdh-oeaw/minedb/pkg/schema"
)

// relationImporter is the per-kind relation import configuration.
// useDatum moves the start date into the Datum column for relation
// kinds that record a point in time rather than a span. apply runs
// before the row is persisted and derives the subtype payload from the
// resolved vocabulary path; post runs after, for hooks that need the
// stored row (nominator cross-referencing).
type relationImporter struct {
	kind       string
	subjFields []string
	objFields  []string
	useDatum   bool
	apply      func(imp *Importer, rel *schema.Relation, raw legacy.Payload, path []legacy.VocabTerm) error
	post       func(ctx context.Context, imp *Importer, rel *schema.Relation, raw legacy.Payload, path []legacy.VocabTerm) error
}

// relationBaseMapping is the field mapping shared by all relation
// kinds.
var relationBaseMapping = []fieldMap{
	{"id", "old_id", intField},
	{"start_date_written", "beginn", dateField},
	{"end_date_written", "ende", dateField},
	{"notes", "notes", textField},
	{"references", "references", textField},
	{"review", "", boolField},
	{"status", "", textField},
}

// sideCandidates returns the raw payload keys that may hold a side's
// legacy id. When both sides are the same entity kind the legacy API
// suffixes the keys with A and B; prizes were modelled as institutions
// or works, so the prize side tries both keys.
func sideCandidates(side, other schema.Kind, subjSide bool) []string {
	if side == other {
		suffix := "B"
		if subjSide {
			suffix = "A"
		}
		switch side {
		case schema.KindPerson:
			return []string{"related_person" + suffix}
		case schema.KindInstitution:
			return []string{"related_institution" + suffix}
		case schema.KindOrt:
			return []string{"related_place" + suffix}
		}
	}
	switch side {
	case schema.KindPerson:
		return []string{"related_person"}
	case schema.KindInstitution:
		return []string{"related_institution"}
	case schema.KindOrt:
		return []string{"related_place"}
	case schema.KindEreignis:
		return []string{"related_event"}
	case schema.KindWerk:
		return []string{"related_work"}
	case schema.KindPreis:
		return []string{"related_institution", "related_work"}
	case schema.KindReligion:
		return []string{"related_religion", "related_institution"}
	}
	return nil
}

// sideOldID extracts the legacy id of a relation side, trying the
// candidate keys in order. The value is either a nested object
// carrying its own id or a plain number.
func sideOldID(raw legacy.Payload, candidates []string) int {
	for _, key := range candidates {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		if obj, ok := v.(map[string]any); ok {
			if id := legacy.Int(obj, "id"); id != 0 {
				return id
			}
			continue
		}
		if id := legacy.Int(raw, key); id != 0 {
			return id
		}
	}
	return 0
}

// newRelationImporter builds the default configuration for a kind; the
// table below overrides the subtype hooks.
func newRelationImporter(kind string, useDatum bool) *relationImporter {
	spec, _ := schema.SpecFor(kind)
	return &relationImporter{
		kind:       kind,
		subjFields: sideCandidates(spec.Subj, spec.Obj, true),
		objFields:  sideCandidates(spec.Obj, spec.Subj, false),
		useDatum:   useDatum,
	}
}

// relationImporters is the closed dispatch table from relation kind to
// its import configuration.
var relationImporters = map[string]*relationImporter{}

func init() {
	for _, kind := range schema.RelationKinds() {
		relationImporters[kind] = newRelationImporter(kind, false)
	}
	for _, kind := range []string{
		schema.RelSchreibtAus,
		schema.RelWirdGestiftetVon,
		schema.RelGewinnt,
		schema.RelStiftet,
		schema.RelEhrentitelVonInstitution,
		schema.RelEhrentitelVon,
		schema.RelLehntPreisAb,
		schema.RelStelltAntragAn,
		schema.RelNichtGewaehlt,
		schema.RelHaeltRedeBei,
	} {
		relationImporters[kind].useDatum = true
	}

	relationImporters[schema.RelOeawMitgliedschaft].apply = applyMembership
	relationImporters[schema.RelOeawMitgliedschaft].post = postMembershipNominators
	relationImporters[schema.RelNichtGewaehlt].apply = applyMembership
	relationImporters[schema.RelNichtGewaehlt].post = postMembershipNominators
	relationImporters[schema.RelPositionAn].apply = applyPosition
	relationImporters[schema.RelAusbildungAn].apply = applyAusbildung
	relationImporters[schema.RelInstitutionHierarchie].apply = applyHierarchie
	relationImporters[schema.RelMitglied].apply = applyLeafTo(setArt)
	relationImporters[schema.RelLehrerVon].apply = applyLeafTo(setArt)
	relationImporters[schema.RelEhrentitelVonInstitution].apply = applyLeafTo(setTitel)
	relationImporters[schema.RelEhrentitelVon].apply = applyLeafTo(setTitel)
	relationImporters[schema.RelHaeltRedeBei].apply = applyLeafTo(setTitel)
	relationImporters[schema.RelLehntPreisAb].apply = applyLeafTo(setGrund)
	relationImporters[schema.RelStelltAntragAn].apply = applyLeafTo(setStatus)
	relationImporters[schema.RelKindVon].apply = applyKindVon
}

// ImportRelation imports one relation stub from a person payload: the
// detail record is fetched, the vocabulary mapping decides the target
// kind, and the configured importer builds the row. Unknown relation
// types are logged and skipped, never treated as failures.
func (imp *Importer) ImportRelation(
	ctx context.Context,
	stub legacy.Payload,
) (created bool, err error) {
	url := legacy.Str(stub, "url")
	if url == "" {
		imp.log.Error("relation stub without detail URL", "stub", stub)
		return false, nil
	}

	raw, err := imp.client.GetObject(ctx, url)
	if err != nil {
		return false, RelationError("", legacy.Int(stub, "id"), err)
	}

	relType := legacy.Map(raw, "relation_type")
	typeID := legacy.Int(relType, "id")
	kind, ok := imp.voc[typeID]
	if !ok {
		imp.log.Error("relation type not in vocabulary mapping, skipping",
			"relation_type_id", typeID,
			"label", legacy.Str(relType, "label"),
			"old_id", legacy.Int(raw, "id"),
		)
		imp.stats.Skipped++
		return false, nil
	}

	path, err := imp.client.ResolveVocab(ctx, legacy.Str(relType, "url"))
	if err != nil {
		return false, RelationError(kind, legacy.Int(raw, "id"), err)
	}

	return imp.createRelation(ctx, kind, raw, path)
}

func (imp *Importer) createRelation(
	ctx context.Context,
	kind string,
	raw legacy.Payload,
	path []legacy.VocabTerm,
) (created bool, err error) {
	ri, ok := relationImporters[kind]
	if !ok {
		return false, RelationError(kind, legacy.Int(raw, "id"),
			UnknownEntityKindError(kind))
	}
	spec, _ := schema.SpecFor(kind)

	subjOldID := sideOldID(raw, ri.subjFields)
	objOldID := sideOldID(raw, ri.objFields)
	if subjOldID == 0 || objOldID == 0 {
		imp.log.Error("relation without resolvable sides, skipping",
			"kind", kind, "old_id", legacy.Int(raw, "id"))
		imp.stats.Skipped++
		return false, nil
	}

	subj, err := imp.GetOrCreateEntity(ctx, spec.Subj, subjOldID)
	if err != nil {
		return false, RelationError(kind, legacy.Int(raw, "id"), err)
	}
	obj, err := imp.GetOrCreateEntity(ctx, spec.Obj, objOldID)
	if err != nil {
		return false, RelationError(kind, legacy.Int(raw, "id"), err)
	}

	oldID := legacy.Int(raw, "id")
	if existing, found, err := imp.store.FindRelationByOldID(oldID); err != nil {
		return false, RelationError(kind, oldID, err)
	} else if found {
		imp.log.Warn("relation already imported, skipping",
			"kind", existing.Kind, "old_id", oldID)
		return false, nil
	}

	fields := mapFields(relationBaseMapping, raw)
	rel := &schema.Relation{
		Kind:     kind,
		SubjKind: subj.Kind(),
		SubjID:   subj.PK(),
		ObjKind:  obj.Kind(),
		ObjID:    obj.PK(),
		Beginn:   fieldStr(fields, "beginn"),
		Ende:     fieldStr(fields, "ende"),
	}
	fillLegacy(&rel.LegacyFields, fields)
	if ri.useDatum {
		rel.Datum, rel.Beginn = rel.Beginn, ""
	}

	if ri.apply != nil {
		if err := ri.apply(imp, rel, raw, path); err != nil {
			return false, RelationError(kind, oldID, err)
		}
	}

	if err := imp.store.CreateRelation(rel); err != nil {
		return false, RelationError(rel.Kind, oldID, err)
	}

	if ri.post != nil {
		if err := ri.post(ctx, imp, rel, raw, path); err != nil {
			return false, RelationError(rel.Kind, oldID, err)
		}
	}

	imp.log.Info("imported relation",
		"kind", rel.Kind,
		"old_id", oldID,
		"subj", subj.DisplayName(),
		"obj", obj.DisplayName(),
	)
	return true, nil
}

// leafLabel returns the display label of the deepest vocabulary term.
func leafLabel(path []legacy.VocabTerm) string {
	if len(path) == 0 {
		return ""
	}
	return path[len(path)-1].DisplayLabel()
}

// applyLeafTo builds an apply hook setting one payload column from the
// vocabulary leaf label.
func applyLeafTo(
	set func(rel *schema.Relation, label string),
) func(*Importer, *schema.Relation, legacy.Payload, []legacy.VocabTerm) error {
	return func(imp *Importer, rel *schema.Relation, raw legacy.Payload, path []legacy.VocabTerm) error {
		if label := leafLabel(path); label != "" {
			set(rel, label)
		}
		return nil
	}
}

func setArt(rel *schema.Relation, label string)    { rel.Art = label }
func setTitel(rel *schema.Relation, label string)  { rel.Titel = label }
func setGrund(rel *schema.Relation, label string)  { rel.Grund = label }
func setStatus(rel *schema.Relation, label string) { rel.Status = label }

// applyKindVon corrects relation directionality: the legacy data
// encodes both directions under the same relation type, with the
// reverse form carrying the "Elternteil von" label.
func applyKindVon(
	imp *Importer,
	rel *schema.Relation,
	raw legacy.Payload,
	path []legacy.VocabTerm,
) error {
	if label := leafLabel(path); label == "Elternteil von" {
		rel.SubjKind, rel.ObjKind = rel.ObjKind, rel.SubjKind
		rel.SubjID, rel.ObjID = rel.ObjID, rel.SubjID
	}
	return nil
}

// applyHierarchie stores the hierarchy option from the vocabulary
// leaf; the reverse form is derived when the row is persisted.
func applyHierarchie(
	imp *Importer,
	rel *schema.Relation,
	raw legacy.Payload,
	path []legacy.VocabTerm,
) error {
	rel.Label = leafLabel(path)
	return nil
}

// applyAusbildung classifies the education relation from the
// vocabulary leaf.
func applyAusbildung(
	imp *Importer,
	rel *schema.Relation,
	raw legacy.Payload,
	path []legacy.VocabTerm,
) error {
	label := leafLabel(path)
	for _, typ := range []string{"Habilitation", "Promotion", "Studium", "Schule"} {
		if containsFold(label, typ) {
			rel.Typ = typ
			return nil
		}
	}
	return nil
}

// applyPosition chooses which vocabulary path element supplies the
// position label: the leaf for function subtrees, the second element
// for deeper generic paths, the leaf otherwise.
func applyPosition(
	imp *Importer,
	rel *schema.Relation,
	raw legacy.Payload,
	path []legacy.VocabTerm,
) error {
	switch {
	case len(path) >= 3 && containsFold(path[1].DisplayLabel(), "Funktion"):
		rel.Position = leafLabel(path)
	case len(path) >= 2:
		rel.Position = path[1].DisplayLabel()
	default:
		rel.Position = leafLabel(path)
	}
	return nil
}
