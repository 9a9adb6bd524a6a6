package schema_test

import (
	"testing"

	"github.com/acdh-oeaw/minedb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		msg string
		rel schema.Relation
		ok  bool
	}{
		{
			msg: "matching kinds",
			rel: schema.Relation{
				Kind:     schema.RelGeborenIn,
				SubjKind: schema.KindPerson,
				ObjKind:  schema.KindOrt,
			},
			ok: true,
		},
		{
			msg: "wrong object kind",
			rel: schema.Relation{
				Kind:     schema.RelGeborenIn,
				SubjKind: schema.KindPerson,
				ObjKind:  schema.KindWerk,
			},
			ok: false,
		},
		{
			msg: "wrong subject kind",
			rel: schema.Relation{
				Kind:     schema.RelSchreibtAus,
				SubjKind: schema.KindPerson,
				ObjKind:  schema.KindPreis,
			},
			ok: false,
		},
		{
			msg: "unregistered kind",
			rel: schema.Relation{
				Kind:     "besucht",
				SubjKind: schema.KindPerson,
				ObjKind:  schema.KindOrt,
			},
			ok: false,
		},
	}

	for _, v := range tests {
		err := v.rel.Validate()
		if v.ok {
			assert.NoError(t, err, v.msg)
		} else {
			assert.Error(t, err, v.msg)
		}
	}
}

func TestSpecFor(t *testing.T) {
	spec, ok := schema.SpecFor(schema.RelOeawMitgliedschaft)
	require.True(t, ok)
	assert.Equal(t, schema.KindPerson, spec.Subj)
	assert.Equal(t, schema.KindInstitution, spec.Obj)
	assert.Equal(t, "Mitglied der Akademie", spec.Name)

	_, ok = schema.SpecFor("besucht")
	assert.False(t, ok)
}

func TestRelationKindsRegistered(t *testing.T) {
	kinds := schema.RelationKinds()
	assert.Len(t, kinds, 31)
	for _, kind := range kinds {
		spec, ok := schema.SpecFor(kind)
		require.True(t, ok, kind)
		assert.NotEmpty(t, spec.Name, kind)
		assert.NotEmpty(t, spec.Subj, kind)
		assert.NotEmpty(t, spec.Obj, kind)
	}
}

func TestHierarchyReverse(t *testing.T) {
	assert.Equal(t, "hat Teil", schema.HierarchyReverse("ist Teil von"))
	assert.Equal(t, "ist übergeordnet", schema.HierarchyReverse("ist untergeordnet"))
	assert.Equal(t, "ist Nachfolger von", schema.HierarchyReverse("ist Vorgänger von"))
	assert.Empty(t, schema.HierarchyReverse("unbekannte Option"))
}

func TestRelationName(t *testing.T) {
	rel := schema.Relation{Kind: schema.RelGewinnt}
	assert.Equal(t, "gewinnt", rel.Name())

	rel = schema.Relation{Kind: "besucht"}
	assert.Equal(t, "besucht", rel.Name(), "unknown kinds fall back to the tag")
}

func TestMembershipLong(t *testing.T) {
	for _, code := range schema.MembershipCodes {
		assert.NotEmpty(t, schema.MembershipLong[code], code)
	}
}

func TestLegacyFields(t *testing.T) {
	var l schema.LegacyFields
	assert.Equal(t, 0, l.LegacyID())

	l.SetLegacyID(42)
	assert.Equal(t, 42, l.LegacyID())
}

func TestDisplayNames(t *testing.T) {
	p := schema.Person{Surname: "Boltzmann", Forename: "Ludwig"}
	assert.Equal(t, "Boltzmann, Ludwig", p.DisplayName())

	p = schema.Person{Surname: "Boltzmann"}
	assert.Equal(t, "Boltzmann", p.DisplayName())

	w := schema.Werk{Titel: "Vorlesungen über Gastheorie"}
	assert.Equal(t, "Vorlesungen über Gastheorie", w.DisplayName())
}
