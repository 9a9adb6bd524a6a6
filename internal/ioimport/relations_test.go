package ioimport

import (
	"log/slog"
	"testing"

	"github.com/acdh-oeaw/minedb/pkg/legacy"
	"github.com/acdh-oeaw/minedb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func term(id int, label string) legacy.VocabTerm {
	return legacy.VocabTerm{ID: id, Label: label}
}

func TestSideOldID(t *testing.T) {
	tests := []struct {
		msg        string
		raw        legacy.Payload
		candidates []string
		want       int
	}{
		{
			msg:        "nested object",
			raw:        legacy.Payload{"related_person": map[string]any{"id": 42.0}},
			candidates: []string{"related_person"},
			want:       42,
		},
		{
			msg:        "plain number",
			raw:        legacy.Payload{"related_institution": 9.0},
			candidates: []string{"related_institution"},
			want:       9,
		},
		{
			msg: "first candidate wins",
			raw: legacy.Payload{
				"related_institution": map[string]any{"id": 9.0},
				"related_work":        map[string]any{"id": 3.0},
			},
			candidates: []string{"related_institution", "related_work"},
			want:       9,
		},
		{
			msg: "falls through nil and missing",
			raw: legacy.Payload{
				"related_institution": nil,
				"related_work":        map[string]any{"id": 3.0},
			},
			candidates: []string{"related_institution", "related_work"},
			want:       3,
		},
		{
			msg:        "nothing found",
			raw:        legacy.Payload{},
			candidates: []string{"related_person"},
			want:       0,
		},
	}

	for _, v := range tests {
		assert.Equal(t, v.want, sideOldID(v.raw, v.candidates), v.msg)
	}
}

func TestSideCandidates(t *testing.T) {
	// same-kind relations use the A/B suffixed keys
	assert.Equal(t, []string{"related_personA"},
		sideCandidates(schema.KindPerson, schema.KindPerson, true))
	assert.Equal(t, []string{"related_personB"},
		sideCandidates(schema.KindPerson, schema.KindPerson, false))

	assert.Equal(t, []string{"related_person"},
		sideCandidates(schema.KindPerson, schema.KindInstitution, true))

	// prizes were stored as institutions or works in the legacy system
	assert.Equal(t, []string{"related_institution", "related_work"},
		sideCandidates(schema.KindPreis, schema.KindPerson, false))
}

func TestRelationImportersComplete(t *testing.T) {
	for _, kind := range schema.RelationKinds() {
		ri, ok := relationImporters[kind]
		require.True(t, ok, "missing relation importer for %s", kind)
		assert.NotEmpty(t, ri.subjFields, kind)
		assert.NotEmpty(t, ri.objFields, kind)
	}
}

func TestApplyPosition(t *testing.T) {
	imp := &Importer{log: slog.Default()}

	tests := []struct {
		msg  string
		path []legacy.VocabTerm
		want string
	}{
		{
			msg: "function subtree uses the leaf",
			path: []legacy.VocabTerm{
				term(1, "Position"),
				term(2, "Funktionen"),
				term(3, "Generalsekretär"),
			},
			want: "Generalsekretär",
		},
		{
			msg: "generic path uses the second element",
			path: []legacy.VocabTerm{
				term(1, "Position"),
				term(2, "Mitarbeiter"),
				term(3, "wissenschaftlicher Mitarbeiter"),
			},
			want: "Mitarbeiter",
		},
		{
			msg:  "single term uses the leaf",
			path: []legacy.VocabTerm{term(1, "Angestellter")},
			want: "Angestellter",
		},
	}

	for _, v := range tests {
		rel := &schema.Relation{Kind: schema.RelPositionAn}
		require.NoError(t,
			applyPosition(imp, rel, legacy.Payload{}, v.path), v.msg)
		assert.Equal(t, v.want, rel.Position, v.msg)
	}
}

func TestApplyMembership(t *testing.T) {
	imp := &Importer{log: slog.Default()}

	t.Run("code and begin qualifier from path", func(t *testing.T) {
		rel := &schema.Relation{
			Kind:   schema.RelOeawMitgliedschaft,
			Beginn: "1901",
			Ende:   "1906",
		}
		path := []legacy.VocabTerm{
			term(1, "Mitgliedschaft"),
			term(2, "gewählt und bestätigt"),
			term(3, "ausgetreten"),
			term(4, "Wirkliches Mitglied (wM)"),
		}
		require.NoError(t, applyMembership(imp, rel, legacy.Payload{}, path))
		assert.Equal(t, "wM", rel.Mitgliedschaft)
		assert.Equal(t, "gewählt und bestätigt", rel.BeginnTyp)
		assert.Equal(t, "ausgetreten", rel.EndeTyp)
		assert.Equal(t, schema.RelOeawMitgliedschaft, rel.Kind)
	})

	t.Run("no end date means no end qualifier", func(t *testing.T) {
		rel := &schema.Relation{
			Kind:   schema.RelOeawMitgliedschaft,
			Beginn: "1901",
		}
		path := []legacy.VocabTerm{
			term(1, "korrespondierendes Mitglied im Ausland (kM A)"),
			term(2, "ernannt"),
		}
		require.NoError(t, applyMembership(imp, rel, legacy.Payload{}, path))
		assert.Equal(t, "kM A", rel.Mitgliedschaft)
		assert.Equal(t, "ernannt", rel.BeginnTyp)
		assert.Empty(t, rel.EndeTyp)
	})

	t.Run("failed election branches the kind", func(t *testing.T) {
		rel := &schema.Relation{
			Kind:   schema.RelOeawMitgliedschaft,
			Beginn: "1903",
		}
		path := []legacy.VocabTerm{
			term(1, "Mitgliedschaft"),
			term(2, "nicht gewählt"),
			term(3, "Ordentliches Mitglied (oM)"),
		}
		require.NoError(t, applyMembership(imp, rel, legacy.Payload{}, path))
		assert.Equal(t, schema.RelNichtGewaehlt, rel.Kind)
		assert.Equal(t, "1903", rel.Datum)
		assert.Empty(t, rel.Beginn)
		assert.Equal(t, "oM", rel.Mitgliedschaft)
	})

	t.Run("unparenthesized label yields no code", func(t *testing.T) {
		rel := &schema.Relation{Kind: schema.RelOeawMitgliedschaft}
		path := []legacy.VocabTerm{term(1, "Mitgliedschaft")}
		require.NoError(t, applyMembership(imp, rel, legacy.Payload{}, path))
		assert.Empty(t, rel.Mitgliedschaft)
	})
}

func TestApplyKindVon(t *testing.T) {
	imp := &Importer{log: slog.Default()}

	rel := &schema.Relation{
		Kind:     schema.RelKindVon,
		SubjKind: schema.KindPerson,
		SubjID:   1,
		ObjKind:  schema.KindPerson,
		ObjID:    2,
	}

	// forward direction stays put
	require.NoError(t, applyKindVon(imp, rel, legacy.Payload{},
		[]legacy.VocabTerm{term(1, "Kind von")}))
	assert.EqualValues(t, 1, rel.SubjID)

	// reverse encoding swaps the sides
	require.NoError(t, applyKindVon(imp, rel, legacy.Payload{},
		[]legacy.VocabTerm{term(1, "Elternteil von")}))
	assert.EqualValues(t, 2, rel.SubjID)
	assert.EqualValues(t, 1, rel.ObjID)
}

func TestApplyAusbildung(t *testing.T) {
	imp := &Importer{log: slog.Default()}

	rel := &schema.Relation{Kind: schema.RelAusbildungAn}
	require.NoError(t, applyAusbildung(imp, rel, legacy.Payload{},
		[]legacy.VocabTerm{term(1, "Ausbildung"), term(2, "Studium der Physik")}))
	assert.Equal(t, "Studium", rel.Typ)

	rel = &schema.Relation{Kind: schema.RelAusbildungAn}
	require.NoError(t, applyAusbildung(imp, rel, legacy.Payload{},
		[]legacy.VocabTerm{term(1, "irgendwas")}))
	assert.Empty(t, rel.Typ)
}

func TestElectionYear(t *testing.T) {
	assert.Equal(t, "1901",
		electionYear(&schema.Relation{Beginn: "23.5.1901"}))
	assert.Equal(t, "1903",
		electionYear(&schema.Relation{Datum: "1903"}))
	assert.Equal(t, "",
		electionYear(&schema.Relation{Beginn: "um 190"}))
}

func TestInferMembership(t *testing.T) {
	relLabel := func(labels ...string) legacy.Payload {
		var rels []any
		for _, l := range labels {
			rels = append(rels, map[string]any{"label": l})
		}
		return legacy.Payload{"relations": rels}
	}

	t.Run("single class member", func(t *testing.T) {
		p := &schema.Person{}
		inferMembership(p, relLabel(
			"Wirkliches Mitglied der MATHEMATISCH-NATURWISSENSCHAFTLICHE Klasse"))
		assert.True(t, p.Mitglied)
		assert.Equal(t, schema.KlasseMathNat, p.Klasse)
	})

	t.Run("both classes resolve to the whole academy", func(t *testing.T) {
		p := &schema.Person{}
		inferMembership(p, relLabel(
			"Mitglied der Mathematisch-Naturwissenschaftliche Klasse",
			"Mitglied der Philosophisch-Historische Klasse"))
		assert.True(t, p.Mitglied)
		assert.Equal(t, schema.KlasseGesamt, p.Klasse)
	})

	t.Run("no membership labels", func(t *testing.T) {
		p := &schema.Person{}
		inferMembership(p, relLabel("geboren in Wien"))
		assert.False(t, p.Mitglied)
		assert.Empty(t, p.Klasse)
	})
}
