package ioimport

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/acdh-oeaw/minedb/internal/iolegacy"
	"github.com/acdh-oeaw/minedb/internal/iostore"
	"github.com/acdh-oeaw/minedb/pkg/config"
	"github.com/acdh-oeaw/minedb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// legacyAPIStub serves a small slice of the legacy APIS data: one
// member, the academy class he was elected into, his nominator, and
// the relation-type vocabulary behind the membership.
func legacyAPIStub(t *testing.T) *httptest.Server {
	t.Helper()

	var base string
	mux := http.NewServeMux()

	mux.HandleFunc("/apis/api/entities/person/",
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("page") == "2" {
				fmt.Fprintf(w, `{
					"count": 2, "next": null,
					"results": [{"id": 43}]
				}`)
				return
			}
			fmt.Fprintf(w, `{
				"count": 2,
				"next": "%s/apis/api/entities/person/?page=2",
				"results": [{"id": 42}]
			}`, base)
		})

	mux.HandleFunc("/apis/api/entities/person/42/",
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{
				"id": 42,
				"name": "Boltzmann",
				"first_name": "Ludwig",
				"gender": "male",
				"start_date_written": "20.2.1844",
				"end_date_written": "5.9.1906",
				"title": ["Dr. phil."],
				"profession": [{"id": 5, "label": "Physiker"}],
				"sameAs": ["https://d-nb.info/gnd/118661205"],
				"relations": [
					{
						"id": 700,
						"url": "%[1]s/apis/api/relations/personinstitution/700/",
						"label": "Mitglied der Mathematisch-Naturwissenschaftliche Klasse"
					},
					{
						"id": 701,
						"url": "%[1]s/apis/api/relations/personplace/701/",
						"label": "war in"
					}
				]
			}`, base)
		})

	mux.HandleFunc("/apis/api/entities/person/43/",
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{
				"id": 43,
				"name": "Stefan",
				"first_name": "Josef",
				"relations": []
			}`)
		})

	mux.HandleFunc("/apis/api/entities/institution/9/",
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{
				"id": 9,
				"name": "Mathematisch-Naturwissenschaftliche Klasse",
				"start_date_written": "1847",
				"kind": {"id": 3, "label": "Akademie >> Klasse"}
			}`)
		})

	mux.HandleFunc("/apis/api/relations/personinstitution/700/",
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{
				"id": 700,
				"relation_type": {
					"id": 100,
					"label": "Wirkliches Mitglied (wM)",
					"url": "%s/apis/vocabularies/personinstitutionrelation/55/"
				},
				"related_person": {"id": 42},
				"related_institution": {"id": 9},
				"start_date_written": "1901",
				"end_date_written": "1906"
			}`, base)
		})

	// relation type 999 is deliberately absent from the mapping file
	mux.HandleFunc("/apis/api/relations/personplace/701/",
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{
				"id": 701,
				"relation_type": {"id": 999, "label": "war in",
					"url": "%s/apis/vocabularies/personplacerelation/90/"},
				"related_person": {"id": 42},
				"related_place": {"id": 77}
			}`, base)
		})

	mux.HandleFunc("/apis/vocabularies/personinstitutionrelation/55/",
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{
				"id": 55, "label": "Wirkliches Mitglied (wM)",
				"parent_class": {"id": 54, "label": "gewählt und bestätigt"}
			}`)
		})
	mux.HandleFunc("/apis/vocabularies/personinstitutionrelation/54/",
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{
				"id": 54, "label": "gewählt und bestätigt",
				"parent_class": {"id": 53, "label": "Mitgliedschaft"}
			}`)
		})
	mux.HandleFunc("/apis/vocabularies/personinstitutionrelation/53/",
		func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{
				"id": 53, "label": "Mitgliedschaft", "parent_class": null
			}`)
		})

	mux.HandleFunc("/apis/api/relations/personperson/",
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("related_personB") != "42" {
				fmt.Fprint(w, `{"count": 0, "next": null, "results": []}`)
				return
			}
			fmt.Fprint(w, `{
				"count": 1, "next": null,
				"results": [{
					"id": 800,
					"relation_type": {"id": 200, "label": "vorgeschlagen von"},
					"related_personA": {"id": 43},
					"related_personB": {"id": 42},
					"start_date_written": "1901"
				}]
			}`)
		})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s", r.URL)
		http.NotFound(w, r)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	base = srv.URL
	return srv
}

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestImporter(t *testing.T, srv *httptest.Server) (*Importer, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	store := iostore.New(db)
	require.NoError(t, store.AutoMigrate())

	client := iolegacy.New(&config.APIConfig{
		BaseURL:    srv.URL,
		TimeoutSec: 5,
	}, iolegacy.NewCache())

	vocFile := writeTempCSV(t, "voc.csv",
		"id,new_class\n100,OeawMitgliedschaft\n")
	labelsFile := writeTempCSV(t, "labels.csv",
		"temp_entity_id,name,label,sprache,beginn,ende\n"+
			"42,Wikicommons Image,Boltzmann.jpg,,,\n"+
			"42,filename OEAW Archiv,arch_42.jpg,,,\n"+
			"42,photocredit OEAW Archiv,OEAW Archiv,,,\n"+
			"42,Schreibvariante,Boltzman,de,,\n"+
			"999,Schreibvariante,nobody,,,\n")

	imp := New(client, store, &config.ImportConfig{
		VocFile:    vocFile,
		LabelsFile: labelsFile,
	}, nil)
	return imp, db
}

func TestRunImportsPersonGraph(t *testing.T) {
	srv := legacyAPIStub(t)
	imp, db := newTestImporter(t, srv)

	stats, err := imp.Run(context.Background(), "{}")
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Persons)
	assert.Equal(t, 1, stats.Relations)
	assert.Equal(t, 1, stats.Skipped, "unmapped relation type is skipped")
	assert.Equal(t, 0, stats.Failed)
	assert.Equal(t, 1, stats.Labels)
	assert.Equal(t, 2, stats.Images)

	// the member, with derived person state
	ent, ok, err := imp.store.FindEntityByOldID(schema.KindPerson, 42)
	require.NoError(t, err)
	require.True(t, ok)
	person := ent.(*schema.Person)
	assert.Equal(t, "männlich", person.Gender)
	assert.True(t, person.Mitglied)
	assert.Equal(t, schema.KlasseMathNat, person.Klasse)
	require.Len(t, person.Titel, 1)
	assert.Equal(t, "Dr. phil.", person.Titel[0].Name)
	require.Len(t, person.AlternativeNamen, 1)
	assert.Equal(t, "Boltzman", person.AlternativeNamen[0].Name)

	// the profession resolved during the person import
	beruf, err := imp.store.GetOrCreateBeruf(5, "Physiker")
	require.NoError(t, err)
	assert.Equal(t, "Physiker", beruf.Name)

	// the institution pulled in recursively by the relation
	ent, ok, err = imp.store.FindEntityByOldID(schema.KindInstitution, 9)
	require.NoError(t, err)
	require.True(t, ok)
	inst := ent.(*schema.Institution)
	assert.Equal(t, "Klasse", inst.Typ)
	assert.True(t, inst.AkademieInstitution)

	// the membership relation with its vocabulary-derived payload
	rel, ok, err := imp.store.FindRelationByOldID(700)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, schema.RelOeawMitgliedschaft, rel.Kind)
	assert.Equal(t, "wM", rel.Mitgliedschaft)
	assert.Equal(t, "gewählt und bestätigt", rel.BeginnTyp)
	assert.Equal(t, "unbekannt", rel.EndeTyp)
	assert.Equal(t, "1901", rel.Beginn)
	assert.Equal(t, "1906", rel.Ende)
	assert.Equal(t, schema.KindPerson, rel.SubjKind)
	assert.Equal(t, person.PK(), rel.SubjID)
	assert.Equal(t, inst.PK(), rel.ObjID)

	// the nominator, resolved by the election-year cross reference
	ent, ok, err = imp.store.FindEntityByOldID(schema.KindPerson, 43)
	require.NoError(t, err)
	require.True(t, ok)
	nominator := ent.(*schema.Person)

	var actors []schema.RelationActor
	require.NoError(t, db.Find(&actors).Error)
	require.Len(t, actors, 1)
	assert.Equal(t, rel.ID, actors[0].RelationID)
	assert.Equal(t, nominator.PK(), actors[0].PersonID)
	assert.Equal(t, schema.RoleVorgeschlagenVon, actors[0].Role)

	// the sameAs identifier
	var uris []schema.Uri
	require.NoError(t, db.Find(&uris).Error)
	require.Len(t, uris, 1)
	assert.Equal(t, "https://d-nb.info/gnd/118661205", uris[0].URI)

	// the images from the labels pass, credit attached to the archive one
	var bilder []schema.Bild
	require.NoError(t, db.Order("art").Find(&bilder).Error)
	require.Len(t, bilder, 2)
	assert.Equal(t, schema.BildArchiv, bilder[0].Art)
	assert.Equal(t, "arch_42.jpg", bilder[0].Pfad)
	assert.Equal(t, "OEAW Archiv", bilder[0].Credit)
	assert.Equal(t, schema.BildWikimedia, bilder[1].Art)
}

func TestRunIsIdempotent(t *testing.T) {
	srv := legacyAPIStub(t)
	imp, db := newTestImporter(t, srv)

	ctx := context.Background()
	_, err := imp.Run(ctx, "{}")
	require.NoError(t, err)

	stats, err := imp.Run(ctx, "{}")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Relations, "existing relations are skipped")

	var count int64
	require.NoError(t,
		db.Model(&schema.Person{}).Where("old_id = ?", 42).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	require.NoError(t,
		db.Model(&schema.Relation{}).Where("old_id = ?", 700).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRunMissingVocFile(t *testing.T) {
	srv := legacyAPIStub(t)
	imp, _ := newTestImporter(t, srv)
	imp.vocFile = "/does/not/exist.csv"

	_, err := imp.Run(context.Background(), "42")
	assert.Error(t, err)
}

func TestParsePersonQuery(t *testing.T) {
	params, err := parsePersonQuery("42")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"id": "42"}, params)

	params, err = parsePersonQuery(`{"name__icontains": "Boltzmann", "id": 7}`)
	require.NoError(t, err)
	assert.Equal(t, "Boltzmann", params["name__icontains"])
	assert.Equal(t, "7", params["id"])

	_, err = parsePersonQuery("not json")
	assert.Error(t, err)
}

func TestGetOrCreateEntityNoNetworkOnHit(t *testing.T) {
	// a server that fails every request proves storage hits never
	// reach the network
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("unexpected request: %s", r.URL)
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
	t.Cleanup(srv.Close)

	imp, _ := newTestImporter(t, srv)

	p := &schema.Person{Surname: "Hahn"}
	p.SetLegacyID(11)
	require.NoError(t, imp.store.CreateEntity(p))

	ent, err := imp.GetOrCreateEntity(
		context.Background(), schema.KindPerson, 11)
	require.NoError(t, err)
	assert.Equal(t, 11, ent.LegacyID())
}

func TestLoadVocMapping(t *testing.T) {
	path := writeTempCSV(t, "voc.csv",
		"id,new_class\n"+
			"100,OeawMitgliedschaft\n"+
			"101,kindvon\n"+
			"102,\n"+
			"103,NoSuchModel\n")

	mapping, unknown, err := loadVocMapping(path)
	require.NoError(t, err)
	assert.Equal(t, schema.RelOeawMitgliedschaft, mapping[100])
	assert.Equal(t, schema.RelKindVon, mapping[101], "matching ignores case")
	assert.Len(t, mapping, 2)
	assert.Len(t, unknown, 2)

	_, _, err = loadVocMapping(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	path = writeTempCSV(t, "bad.csv", "foo,bar\n1,2\n")
	_, _, err = loadVocMapping(path)
	assert.Error(t, err)
}
