// Package schema provides the database schema models for minedb.
//
// The schema mirrors the membership-history data of the academy: a
// closed set of entity tables (persons, institutions, places, events,
// works, prizes, religions, fields of study, professions), polymorphic
// attachments (external identifiers, images) and a single relations
// table with a kind tag per relation subtype.
package schema

// Kind tags one of the concrete entity tables.
type Kind string

const (
	KindPerson      Kind = "person"
	KindInstitution Kind = "institution"
	KindOrt         Kind = "ort"
	KindEreignis    Kind = "ereignis"
	KindWerk        Kind = "werk"
	KindPreis       Kind = "preis"
	KindReligion    Kind = "religion"
	KindFach        Kind = "fach"
)

// EntityKinds lists all concrete entity kinds. The order is the lookup
// order of the fan-out search by legacy id.
var EntityKinds = []Kind{
	KindPerson,
	KindInstitution,
	KindOrt,
	KindEreignis,
	KindWerk,
	KindPreis,
	KindReligion,
	KindFach,
}

// Entity is implemented by every concrete entity model.
type Entity interface {
	Kind() Kind
	PK() uint
	LegacyID() int
	DisplayName() string
}

// AltNamed is implemented by entities that carry the structured
// alternative-name array.
type AltNamed interface {
	AltNameList() *AltNames
}
