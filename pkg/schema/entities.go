package schema

import "fmt"

// LegacyFields carries the import bookkeeping shared by all entity and
// relation tables. OldID is the identifier of the record in the legacy
// source system and is the idempotency key of the importer: at most
// one row per table may carry a given value.
type LegacyFields struct {
	Notes      string `gorm:"type:text"`
	References string `gorm:"type:text"`
	OldID      *int   `gorm:"uniqueIndex"`
}

// LegacyID returns the legacy identifier, 0 when the record was not
// imported from the legacy system.
func (l LegacyFields) LegacyID() int {
	if l.OldID == nil {
		return 0
	}
	return *l.OldID
}

// SetLegacyID records the legacy identifier.
func (l *LegacyFields) SetLegacyID(id int) {
	l.OldID = &id
}

// Person is a (potential) member of the academy.
type Person struct {
	ID uint `gorm:"primaryKey"`
	LegacyFields
	Forename    string `gorm:"size:255"`
	Surname     string `gorm:"size:255"`
	Gender      string `gorm:"size:30"`
	DateOfBirth string `gorm:"size:100"`
	DateOfDeath string `gorm:"size:100"`

	// Klasse is the academy class inferred from membership relations.
	Klasse string `gorm:"size:100"`
	// Mitglied is true when the person ever held an academy membership.
	Mitglied bool
	// RegPflichtig: registierungspflichtig aufgrund des Verbotsgesetzes.
	RegPflichtig bool
	// SfBefreitAb: von Suehnefolgen befreit ab (Nationalsozialistengesetz
	// oder Amnestie).
	SfBefreitAb string `gorm:"size:100"`

	Titel            AltNames `gorm:"type:json"`
	AlternativeNamen AltNames `gorm:"type:json"`

	Berufe []Beruf `gorm:"many2many:person_berufe"`
}

func (Person) Kind() Kind { return KindPerson }
func (p Person) PK() uint { return p.ID }
func (p Person) DisplayName() string {
	if p.Forename == "" {
		return p.Surname
	}
	return fmt.Sprintf("%s, %s", p.Surname, p.Forename)
}
func (p *Person) AltNameList() *AltNames { return &p.AlternativeNamen }

// Klasse choices.
const (
	KlasseMathNat  = "Mathematisch-Naturwissenschaftliche Klasse"
	KlassePhilHist = "Philosophisch-Historische Klasse"
	KlasseGesamt   = "Gesamtakademie"
)

// Institution is an organisation, including the academy's own bodies.
type Institution struct {
	ID uint `gorm:"primaryKey"`
	LegacyFields
	Name string `gorm:"size:255"`
	// Typ is the institution kind, derived from the hierarchical kind
	// label of the legacy record.
	Typ string `gorm:"size:100"`
	// AkademieInstitution is true for bodies of the academy itself.
	AkademieInstitution bool
	Beginn              string   `gorm:"size:100"`
	Ende                string   `gorm:"size:100"`
	AlternativeNamen    AltNames `gorm:"type:json"`
}

func (Institution) Kind() Kind                { return KindInstitution }
func (i Institution) PK() uint                { return i.ID }
func (i Institution) DisplayName() string     { return i.Name }
func (i *Institution) AltNameList() *AltNames { return &i.AlternativeNamen }

// InstitutionTypes is the closed set of institution kinds.
var InstitutionTypes = []string{
	"Kommission",
	"Institut",
	"Forschungsstelle",
	"Klasse",
	"Institution der Gesamtakademie",
	"Forschungsorientierte Einheit",
	"Einrichtung",
	"Komitee",
	"Kuratorium",
	"Beirat",
	"Delegation",
	"Internationales Forschungsprogramm",
	"Preis",
	"Ministerium",
	"Orden (geistl.)",
	"Schule",
	"Kirche",
	"Gymnasium",
	"Akademie (Ausland)",
	"Universität",
}

// Ort is a place.
type Ort struct {
	ID uint `gorm:"primaryKey"`
	LegacyFields
	Name             string   `gorm:"size:255"`
	Label            string   `gorm:"size:255"`
	Longitude        *float64
	Latitude         *float64
	AlternativeNamen AltNames `gorm:"type:json"`
}

func (Ort) Kind() Kind                { return KindOrt }
func (o Ort) PK() uint                { return o.ID }
func (o Ort) DisplayName() string     { return o.Name }
func (o *Ort) AltNameList() *AltNames { return &o.AlternativeNamen }

// Ereignis is an event, mostly election and ceremonial sessions.
type Ereignis struct {
	ID uint `gorm:"primaryKey"`
	LegacyFields
	Name             string   `gorm:"size:255"`
	Typ              string   `gorm:"size:100"`
	Datum            string   `gorm:"size:100"`
	AlternativeNamen AltNames `gorm:"type:json"`
}

func (Ereignis) Kind() Kind                { return KindEreignis }
func (e Ereignis) PK() uint                { return e.ID }
func (e Ereignis) DisplayName() string     { return e.Name }
func (e *Ereignis) AltNameList() *AltNames { return &e.AlternativeNamen }

// Ereignis Typ choices.
var EreignisTypes = []string{"Wahlsitzung", "Feierliche Sitzung", "Gesetz"}

// Werk is a publication or other work.
type Werk struct {
	ID uint `gorm:"primaryKey"`
	LegacyFields
	Titel            string   `gorm:"size:400"`
	Bibtex           string   `gorm:"type:text"`
	AlternativeNamen AltNames `gorm:"type:json"`
}

func (Werk) Kind() Kind                { return KindWerk }
func (w Werk) PK() uint                { return w.ID }
func (w Werk) DisplayName() string     { return w.Titel }
func (w *Werk) AltNameList() *AltNames { return &w.AlternativeNamen }

// Preis is a prize or prize competition.
type Preis struct {
	ID uint `gorm:"primaryKey"`
	LegacyFields
	Name string `gorm:"size:255"`
	Text string `gorm:"type:text"`
	// DatumAusschreibung is the announcement date for prize competitions.
	DatumAusschreibung string   `gorm:"size:100"`
	Beginn             string   `gorm:"size:100"`
	Ende               string   `gorm:"size:100"`
	AlternativeNamen   AltNames `gorm:"type:json"`
}

func (Preis) Kind() Kind                { return KindPreis }
func (p Preis) PK() uint                { return p.ID }
func (p Preis) DisplayName() string     { return p.Name }
func (p *Preis) AltNameList() *AltNames { return &p.AlternativeNamen }

// Religion is a religious community.
type Religion struct {
	ID uint `gorm:"primaryKey"`
	LegacyFields
	Name string `gorm:"size:255"`
}

func (Religion) Kind() Kind            { return KindReligion }
func (r Religion) PK() uint            { return r.ID }
func (r Religion) DisplayName() string { return r.Name }

// Fach is an academic field of study.
type Fach struct {
	ID uint `gorm:"primaryKey"`
	LegacyFields
	Name string `gorm:"size:400"`
	// Oestat is the OEFOS/OESTAT classification label.
	Oestat string `gorm:"size:400"`
}

func (Fach) Kind() Kind            { return KindFach }
func (f Fach) PK() uint            { return f.ID }
func (f Fach) DisplayName() string { return f.Name }

// Beruf is a profession referenced from persons. It is not an entity
// of its own right in the graph, only a lookup row.
type Beruf struct {
	ID    uint   `gorm:"primaryKey"`
	OldID *int   `gorm:"uniqueIndex"`
	Name  string `gorm:"size:1024"`
}

// Uri is an external same-as identifier attached to an entity.
type Uri struct {
	ID         uint   `gorm:"primaryKey"`
	URI        string `gorm:"size:2048;uniqueIndex"`
	EntityKind Kind   `gorm:"size:20;index:idx_uris_entity"`
	EntityID   uint   `gorm:"index:idx_uris_entity"`
}

// Bild image kinds.
const (
	BildArchiv    = "OEAW Archiv"
	BildWikimedia = "Wikimedia"
)

// Bild is an image attached to an entity, either a file in the academy
// archive or an external Wikimedia image.
type Bild struct {
	ID         uint   `gorm:"primaryKey"`
	Art        string `gorm:"size:100"`
	Pfad       string `gorm:"size:1024"`
	Credit     string `gorm:"size:1024"`
	EntityKind Kind   `gorm:"size:20;index:idx_bilder_entity"`
	EntityID   uint   `gorm:"index:idx_bilder_entity"`
}

// TableName keeps the German plural used by the original database.
func (Bild) TableName() string { return "bilder" }
