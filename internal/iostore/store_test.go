package iostore_test

import (
	"testing"

	"github.com/acdh-oeaw/minedb/internal/iostore"
	"github.com/acdh-oeaw/minedb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *iostore.Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	store := iostore.New(db)
	require.NoError(t, store.AutoMigrate())
	return store
}

func TestFindEntityByOldID(t *testing.T) {
	store := newTestStore(t)

	p := &schema.Person{Surname: "Boltzmann", Forename: "Ludwig"}
	p.SetLegacyID(42)
	require.NoError(t, store.CreateEntity(p))

	found, ok, err := store.FindEntityByOldID(schema.KindPerson, 42)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Boltzmann, Ludwig", found.DisplayName())
	assert.Equal(t, 42, found.LegacyID())

	_, ok, err = store.FindEntityByOldID(schema.KindPerson, 43)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = store.FindEntityByOldID(schema.Kind("nonsense"), 42)
	assert.Error(t, err)
}

func TestFindAnyByOldID(t *testing.T) {
	store := newTestStore(t)

	inst := &schema.Institution{Name: "Akademie"}
	inst.SetLegacyID(9)
	require.NoError(t, store.CreateEntity(inst))

	found, ok, err := store.FindAnyByOldID(9)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, schema.KindInstitution, found.Kind())

	_, ok, err = store.FindAnyByOldID(12345)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddURIDuplicate(t *testing.T) {
	store := newTestStore(t)

	p := &schema.Person{Surname: "Exner"}
	p.SetLegacyID(1)
	require.NoError(t, store.CreateEntity(p))

	o := &schema.Ort{Name: "Wien"}
	o.SetLegacyID(2)
	require.NoError(t, store.CreateEntity(o))

	created, _, err := store.AddURI("https://d-nb.info/gnd/118531379", p)
	require.NoError(t, err)
	assert.True(t, created)

	// same URI on another record is tolerated, not written
	created, existing, err := store.AddURI("https://d-nb.info/gnd/118531379", o)
	require.NoError(t, err)
	assert.False(t, created)
	require.NotNil(t, existing)
	assert.Equal(t, schema.KindPerson, existing.EntityKind)
	assert.Equal(t, p.PK(), existing.EntityID)
}

func TestGetOrCreateBeruf(t *testing.T) {
	store := newTestStore(t)

	first, err := store.GetOrCreateBeruf(5, "Physiker")
	require.NoError(t, err)

	second, err := store.GetOrCreateBeruf(5, "Physiker")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "second call must not create a row")
}

func TestLinkBeruf(t *testing.T) {
	store := newTestStore(t)

	p := &schema.Person{Surname: "Exner"}
	p.SetLegacyID(1)
	require.NoError(t, store.CreateEntity(p))

	b, err := store.GetOrCreateBeruf(5, "Physiker")
	require.NoError(t, err)
	require.NoError(t, store.LinkBeruf(p, b))

	found, _, err := store.FindEntityByOldID(schema.KindPerson, 1)
	require.NoError(t, err)
	assert.Equal(t, "Exner", found.DisplayName())
}

func TestCreateRelationValidates(t *testing.T) {
	store := newTestStore(t)

	rel := &schema.Relation{
		Kind:     schema.RelGeborenIn,
		SubjKind: schema.KindPerson,
		SubjID:   1,
		ObjKind:  schema.KindInstitution, // must be an Ort
		ObjID:    2,
	}
	assert.Error(t, store.CreateRelation(rel))

	rel.ObjKind = schema.KindOrt
	assert.NoError(t, store.CreateRelation(rel))
}

func TestCreateRelationHierarchyReverse(t *testing.T) {
	store := newTestStore(t)

	rel := &schema.Relation{
		Kind:     schema.RelInstitutionHierarchie,
		SubjKind: schema.KindInstitution,
		SubjID:   1,
		ObjKind:  schema.KindInstitution,
		ObjID:    2,
		Label:    "ist Teil von",
	}
	require.NoError(t, store.CreateRelation(rel))
	assert.Equal(t, "hat Teil", rel.LabelReverse)
}

func TestFindRelationByOldID(t *testing.T) {
	store := newTestStore(t)

	rel := &schema.Relation{
		Kind:     schema.RelFreundVon,
		SubjKind: schema.KindPerson,
		SubjID:   1,
		ObjKind:  schema.KindPerson,
		ObjID:    2,
	}
	rel.SetLegacyID(77)
	require.NoError(t, store.CreateRelation(rel))

	found, ok, err := store.FindRelationByOldID(77)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, schema.RelFreundVon, found.Kind)

	_, ok, err = store.FindRelationByOldID(78)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddActorIdempotent(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t,
		store.AddActor(1, 2, schema.RoleVorgeschlagenVon))
	require.NoError(t,
		store.AddActor(1, 2, schema.RoleVorgeschlagenVon))
	require.NoError(t,
		store.AddActor(1, 2, schema.RoleEinspruchVon))
}

func TestAddAltName(t *testing.T) {
	store := newTestStore(t)

	p := &schema.Person{Surname: "Suess"}
	p.SetLegacyID(3)
	require.NoError(t, store.CreateEntity(p))

	err := store.AddAltName(p, schema.AltName{
		Name: "Sueß", Sprache: "de",
	})
	require.NoError(t, err)

	found, _, err := store.FindEntityByOldID(schema.KindPerson, 3)
	require.NoError(t, err)
	person := found.(*schema.Person)
	require.Len(t, person.AlternativeNamen, 1)
	assert.Equal(t, "Sueß", person.AlternativeNamen[0].Name)

	// religion rows carry no alternative names
	r := &schema.Religion{Name: "röm.-kath."}
	r.SetLegacyID(4)
	require.NoError(t, store.CreateEntity(r))
	assert.Error(t, store.AddAltName(r, schema.AltName{Name: "x"}))
}

func TestBild(t *testing.T) {
	store := newTestStore(t)

	p := &schema.Person{Surname: "Meitner"}
	p.SetLegacyID(6)
	require.NoError(t, store.CreateEntity(p))

	require.NoError(t, store.CreateBild(&schema.Bild{
		Art:        schema.BildArchiv,
		Pfad:       "meitner.jpg",
		EntityKind: p.Kind(),
		EntityID:   p.PK(),
	}))

	bild, ok, err := store.FindBild(p, schema.BildArchiv)
	require.NoError(t, err)
	require.True(t, ok)

	bild.Credit = "OEAW Archiv"
	require.NoError(t, store.SaveBild(bild))

	_, ok, err = store.FindBild(p, schema.BildWikimedia)
	require.NoError(t, err)
	assert.False(t, ok)
}
