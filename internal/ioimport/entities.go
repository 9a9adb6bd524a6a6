package ioimport

import (
	"context"
	"strconv"

	"github.com/acdh-oeaw/minedb/internal/iolegacy"
	"github.com/acdh-oeaw/minedb/pkg/legacy"
	"github.com/acdh-oeaw/minedb/pkg/schema"
)

// route is one candidate API lookup for an entity kind. Routes are
// tried in order; idFilter routes query the list endpoint with ?id=N
// because the route does not support direct path lookup.
type route struct {
	path     string
	idFilter bool
}

// entityImporter is the per-kind import configuration: the declarative
// field mapping, the candidate API routes for fetch-by-legacy-id, the
// fill function building the model from mapped fields, and an optional
// post hook for kind-specific rules.
type entityImporter struct {
	kind    schema.Kind
	routes  []route
	mapping []fieldMap
	fill    func(fields legacy.Payload) schema.Entity
	post    func(imp *Importer, ent schema.Entity, raw legacy.Payload) error
}

// commonEntityMapping is shared by all entity kinds.
var commonEntityMapping = []fieldMap{
	{"id", "old_id", intField},
	{"notes", "notes", textField},
	{"references", "references", textField},
	// APIS bookkeeping fields, dropped intentionally
	{"source", "", textField},
	{"collection", "", textField},
}

func entityMapping(extra ...fieldMap) []fieldMap {
	res := make([]fieldMap, 0, len(commonEntityMapping)+len(extra))
	res = append(res, commonEntityMapping...)
	res = append(res, extra...)
	return res
}

// fillLegacy sets the shared legacy bookkeeping fields.
func fillLegacy(l *schema.LegacyFields, fields legacy.Payload) {
	l.Notes = fieldStr(fields, "notes")
	l.References = fieldStr(fields, "references")
	if id := legacy.Int(fields, "old_id"); id > 0 {
		l.SetLegacyID(id)
	}
}

// entityImporters is the closed dispatch table from entity kind to its
// import configuration.
var entityImporters = map[schema.Kind]*entityImporter{
	schema.KindPerson: {
		kind:   schema.KindPerson,
		routes: []route{{path: "entities/person"}},
		mapping: entityMapping(
			fieldMap{"name", "surname", textField},
			fieldMap{"first_name", "forename", textField},
			fieldMap{"gender", "gender", textField},
			fieldMap{"start_date_written", "date_of_birth", dateField},
			fieldMap{"end_date_written", "date_of_death", dateField},
		),
		fill: fillPerson,
		post: personPost,
	},
	schema.KindInstitution: {
		kind:   schema.KindInstitution,
		routes: []route{{path: "entities/institution"}},
		mapping: entityMapping(
			fieldMap{"name", "name", textField},
			fieldMap{"start_date_written", "beginn", dateField},
			fieldMap{"end_date_written", "ende", dateField},
		),
		fill: fillInstitution,
		post: institutionPost,
	},
	schema.KindOrt: {
		kind:   schema.KindOrt,
		routes: []route{{path: "entities/place"}},
		mapping: entityMapping(
			fieldMap{"name", "name", textField},
			fieldMap{"label", "label", textField},
			fieldMap{"lng", "longitude", floatField},
			fieldMap{"lat", "latitude", floatField},
		),
		fill: func(f legacy.Payload) schema.Entity {
			ort := &schema.Ort{
				Name:      fieldStr(f, "name"),
				Label:     fieldStr(f, "label"),
				Longitude: fieldFloat(f, "longitude"),
				Latitude:  fieldFloat(f, "latitude"),
			}
			fillLegacy(&ort.LegacyFields, f)
			return ort
		},
	},
	schema.KindEreignis: {
		kind:   schema.KindEreignis,
		routes: []route{{path: "entities/event"}},
		mapping: entityMapping(
			fieldMap{"name", "name", textField},
			fieldMap{"start_date_written", "datum", dateField},
			fieldMap{"kind__label", "typ", textField},
		),
		fill: func(f legacy.Payload) schema.Entity {
			ev := &schema.Ereignis{
				Name:  fieldStr(f, "name"),
				Datum: fieldStr(f, "datum"),
				Typ:   fieldStr(f, "typ"),
			}
			fillLegacy(&ev.LegacyFields, f)
			return ev
		},
	},
	schema.KindWerk: {
		kind:   schema.KindWerk,
		routes: []route{{path: "entities/work"}},
		mapping: entityMapping(
			fieldMap{"name", "titel", textField},
		),
		fill: func(f legacy.Payload) schema.Entity {
			w := &schema.Werk{Titel: fieldStr(f, "titel")}
			fillLegacy(&w.LegacyFields, f)
			return w
		},
	},
	schema.KindPreis: {
		kind: schema.KindPreis,
		// prizes were modelled as institutions in the legacy system
		routes: []route{
			{path: "entities/institution"},
			{path: "entities/work", idFilter: true},
		},
		mapping: entityMapping(
			fieldMap{"name", "name", textField},
			fieldMap{"start_date_written", "beginn", dateField},
			fieldMap{"end_date_written", "ende", dateField},
		),
		fill: func(f legacy.Payload) schema.Entity {
			p := &schema.Preis{
				Name:   fieldStr(f, "name"),
				Beginn: fieldStr(f, "beginn"),
				Ende:   fieldStr(f, "ende"),
			}
			fillLegacy(&p.LegacyFields, f)
			return p
		},
	},
	schema.KindReligion: {
		kind:   schema.KindReligion,
		routes: []route{{path: "vocabularies/religion", idFilter: true}},
		mapping: entityMapping(
			fieldMap{"name", "name", textField},
		),
		fill: func(f legacy.Payload) schema.Entity {
			r := &schema.Religion{Name: fieldStr(f, "name")}
			fillLegacy(&r.LegacyFields, f)
			return r
		},
	},
	schema.KindFach: {
		kind:   schema.KindFach,
		routes: []route{{path: "vocabularies/professionfield", idFilter: true}},
		mapping: entityMapping(
			fieldMap{"name", "name", textField},
		),
		fill: func(f legacy.Payload) schema.Entity {
			fa := &schema.Fach{Name: fieldStr(f, "name")}
			fillLegacy(&fa.LegacyFields, f)
			return fa
		},
	},
}

// CreateEntity maps a raw legacy payload onto a new entity record and
// persists it, together with its same-as identifiers and the
// kind-specific derived state.
func (imp *Importer) CreateEntity(
	kind schema.Kind,
	raw legacy.Payload,
) (schema.Entity, error) {
	ei, ok := entityImporters[kind]
	if !ok {
		return nil, UnknownEntityKindError(string(kind))
	}

	fields := mapFields(ei.mapping, raw)
	ent := ei.fill(fields)

	if err := imp.store.CreateEntity(ent); err != nil {
		return nil, EntityError(string(kind), legacy.Int(raw, "id"), err)
	}

	imp.attachSameAs(ent, raw)

	if ei.post != nil {
		if err := ei.post(imp, ent, raw); err != nil {
			return nil, EntityError(string(kind), legacy.Int(raw, "id"), err)
		}
	}

	// second save captures post-creation derived state
	if err := imp.store.SaveEntity(ent); err != nil {
		return nil, EntityError(string(kind), legacy.Int(raw, "id"), err)
	}

	imp.log.Info("imported entity",
		"kind", kind,
		"old_id", ent.LegacyID(),
		"name", ent.DisplayName(),
	)
	return ent, nil
}

// GetOrCreateEntity resolves an entity by legacy id: local storage
// first (no network on a hit), then the kind's API routes in order.
func (imp *Importer) GetOrCreateEntity(
	ctx context.Context,
	kind schema.Kind,
	oldID int,
) (schema.Entity, error) {
	ent, ok, err := imp.store.FindEntityByOldID(kind, oldID)
	if err != nil {
		return nil, err
	}
	if ok {
		return ent, nil
	}

	ei, found := entityImporters[kind]
	if !found {
		return nil, UnknownEntityKindError(string(kind))
	}

	base := imp.client.BaseURL()
	for _, rt := range ei.routes {
		var raw legacy.Payload

		if rt.idFilter {
			page, err := imp.client.ListPage(
				ctx,
				iolegacy.ListURL(base, rt.path),
				map[string]string{"id": strconv.Itoa(oldID)},
			)
			if err != nil {
				imp.log.Warn("route lookup failed",
					"kind", kind, "route", rt.path, "old_id", oldID,
					"error", err)
				continue
			}
			if len(page.Results) == 0 {
				continue
			}
			raw = page.Results[0]
		} else {
			raw, err = imp.client.GetObject(
				ctx, iolegacy.EntityURL(base, rt.path, oldID))
			if err != nil {
				imp.log.Warn("route lookup failed",
					"kind", kind, "route", rt.path, "old_id", oldID,
					"error", err)
				continue
			}
		}

		return imp.CreateEntity(kind, raw)
	}

	return nil, EntityNotFoundError(string(kind), oldID)
}

// attachSameAs creates one external-identifier row per sameAs URL.
// Duplicate identifiers are logged and skipped; they never abort the
// remaining entries.
func (imp *Importer) attachSameAs(ent schema.Entity, raw legacy.Payload) {
	for _, v := range legacy.List(raw, "sameAs") {
		uri, ok := v.(string)
		if !ok || uri == "" {
			continue
		}
		created, existing, err := imp.store.AddURI(uri, ent)
		if err != nil {
			imp.log.Error("cannot attach sameAs URI",
				"uri", uri, "kind", ent.Kind(), "old_id", ent.LegacyID(),
				"error", err)
			continue
		}
		if !created {
			imp.log.Warn("duplicate sameAs URI skipped",
				"uri", uri,
				"kind", ent.Kind(),
				"old_id", ent.LegacyID(),
				"attached_to_kind", existing.EntityKind,
				"attached_to_id", existing.EntityID,
			)
		}
	}
}
