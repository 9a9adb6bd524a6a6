package schema

import (
	"fmt"
)

// Relation kind tags. The set is closed: every relation row carries
// exactly one of these, and the registry below declares the allowed
// subject/object entity kinds per tag.
const (
	RelOeawMitgliedschaft       = "oeaw_mitgliedschaft"
	RelNichtGewaehlt            = "nicht_gewaehlt"
	RelPositionAn               = "position_an"
	RelAusbildungAn             = "ausbildung_an"
	RelSchreibtAus              = "schreibt_aus"
	RelInstitutionHierarchie    = "institution_hierarchie"
	RelWirdVergebenVon          = "wird_vergeben_von"
	RelWirdGestiftetVon         = "wird_gestiftet_von"
	RelGelegenIn                = "gelegen_in"
	RelGelegenInOrt             = "gelegen_in_ort"
	RelGewinnt                  = "gewinnt"
	RelStiftet                  = "stiftet"
	RelMitglied                 = "mitglied"
	RelAnhaengerVon             = "anhaenger_von"
	RelNimmtTeilAn              = "nimmt_teil_an"
	RelEhrentitelVonInstitution = "ehrentitel_von_institution"
	RelEhrentitelVon            = "ehrentitel_von"
	RelLehntPreisAb             = "lehnt_preis_ab"
	RelStelltAntragAn           = "stellt_antrag_an"
	RelEhepartnerVon            = "ehepartner_von"
	RelFamilienmitgliedVon      = "familienmitglied_von"
	RelKindVon                  = "kind_von"
	RelFreundVon                = "freund_von"
	RelLehrerVon                = "lehrer_von"
	RelGeborenIn                = "geboren_in"
	RelGestorbenIn              = "gestorben_in"
	RelWissenschaftsaustauschIn = "wissenschaftsaustausch_in"
	RelAutorVon                 = "autor_von"
	RelErwaehntIn               = "erwaehnt_in"
	RelFindetStattIn            = "findet_statt_in"
	RelHaeltRedeBei             = "haelt_rede_bei"
)

// RelationSpec declares a relation kind: its German display labels and
// the entity kinds allowed on each side.
type RelationSpec struct {
	Kind        string
	Name        string
	ReverseName string
	Subj        Kind
	Obj         Kind
}

// relationSpecs is the compile-time registry of all relation kinds.
var relationSpecs = map[string]RelationSpec{
	RelOeawMitgliedschaft:       {RelOeawMitgliedschaft, "Mitglied der Akademie", "hat Mitglied", KindPerson, KindInstitution},
	RelNichtGewaehlt:            {RelNichtGewaehlt, "nicht gewählt", "nicht gewählt", KindPerson, KindInstitution},
	RelPositionAn:               {RelPositionAn, "hat Position inne", "hat Mitarbeiter", KindPerson, KindInstitution},
	RelAusbildungAn:             {RelAusbildungAn, "absolviert Ausbildung an", "hat Auszubildenden", KindPerson, KindInstitution},
	RelSchreibtAus:              {RelSchreibtAus, "schreibt aus", "wird ausgeschrieben von", KindInstitution, KindPreis},
	RelInstitutionHierarchie:    {RelInstitutionHierarchie, "Hierarchie", "Hierarchie", KindInstitution, KindInstitution},
	RelWirdVergebenVon:          {RelWirdVergebenVon, "wird vergeben von", "vergibt", KindPreis, KindInstitution},
	RelWirdGestiftetVon:         {RelWirdGestiftetVon, "wird gestiftet von", "stiftet", KindPreis, KindInstitution},
	RelGelegenIn:                {RelGelegenIn, "gelegen in", "schließt ein", KindInstitution, KindOrt},
	RelGelegenInOrt:             {RelGelegenInOrt, "gelegen in", "schließt ein", KindOrt, KindOrt},
	RelGewinnt:                  {RelGewinnt, "gewinnt", "gewonnen von", KindPerson, KindPreis},
	RelStiftet:                  {RelStiftet, "stiftet", "gestiftet von", KindPerson, KindInstitution},
	RelMitglied:                 {RelMitglied, "Mitglied in", "hat Mitglied", KindPerson, KindInstitution},
	RelAnhaengerVon:             {RelAnhaengerVon, "Anhänger von", "hat Anhänger", KindPerson, KindReligion},
	RelNimmtTeilAn:              {RelNimmtTeilAn, "nimmt Teil an", "hat TeilnehmerIn", KindPerson, KindEreignis},
	RelEhrentitelVonInstitution: {RelEhrentitelVonInstitution, "erhält Ehrentitel von", "verleiht Ehrentitel an", KindPerson, KindInstitution},
	RelEhrentitelVon:            {RelEhrentitelVon, "Ehrentitel von", "verleiht Ehrentitel an", KindPerson, KindOrt},
	RelLehntPreisAb:             {RelLehntPreisAb, "lehnt Preis ab", "wird abgelehnt von", KindPerson, KindPreis},
	RelStelltAntragAn:           {RelStelltAntragAn, "stellt Antrag an", "bekommt Antrag von", KindPerson, KindInstitution},
	RelEhepartnerVon:            {RelEhepartnerVon, "Ehepartner von", "Ehepartner von", KindPerson, KindPerson},
	RelFamilienmitgliedVon:      {RelFamilienmitgliedVon, "Familienmitglied von", "Familienmitglied von", KindPerson, KindPerson},
	RelKindVon:                  {RelKindVon, "Kind von", "Elternteil von", KindPerson, KindPerson},
	RelFreundVon:                {RelFreundVon, "Freund von", "Freund von", KindPerson, KindPerson},
	RelLehrerVon:                {RelLehrerVon, "Lehrer von", "Schüler von", KindPerson, KindPerson},
	RelGeborenIn:                {RelGeborenIn, "geboren in", "Geburtsort von", KindPerson, KindOrt},
	RelGestorbenIn:              {RelGestorbenIn, "gestorben in", "Sterbeort von", KindPerson, KindOrt},
	RelWissenschaftsaustauschIn: {RelWissenschaftsaustauschIn, "nimmt an Wissenschaftsaustausch teil in", "Ziel eines Wissenschaftsaustausches von", KindPerson, KindOrt},
	RelAutorVon:                 {RelAutorVon, "verfasst", "verfasst von", KindPerson, KindWerk},
	RelErwaehntIn:               {RelErwaehntIn, "erwähnt in", "erwähnt", KindPerson, KindWerk},
	RelFindetStattIn:            {RelFindetStattIn, "findet statt in", "veranstaltet", KindEreignis, KindOrt},
	RelHaeltRedeBei:             {RelHaeltRedeBei, "hält Rede bei", "Redner", KindPerson, KindEreignis},
}

// SpecFor returns the registry entry for a relation kind.
func SpecFor(kind string) (RelationSpec, bool) {
	spec, ok := relationSpecs[kind]
	return spec, ok
}

// RelationKinds returns all registered relation kind tags.
func RelationKinds() []string {
	res := make([]string, 0, len(relationSpecs))
	for k := range relationSpecs {
		res = append(res, k)
	}
	return res
}

// Relation is a typed, directed edge between two entity records. All
// relation subtypes share this table; Kind selects the subtype and the
// payload columns it uses.
type Relation struct {
	ID   uint   `gorm:"primaryKey"`
	Kind string `gorm:"size:40;index"`
	LegacyFields

	SubjKind Kind `gorm:"size:20;index:idx_relations_subj"`
	SubjID   uint `gorm:"index:idx_relations_subj"`
	ObjKind  Kind `gorm:"size:20;index:idx_relations_obj"`
	ObjID    uint `gorm:"index:idx_relations_obj"`

	Beginn string `gorm:"size:100"`
	Ende   string `gorm:"size:100"`
	Datum  string `gorm:"size:100"`

	// Typ/Art/Titel/Position/Grund/Status carry subtype specific
	// classifications (education type, honorary title, position held,
	// refusal reason, grant status, ...).
	Typ      string `gorm:"size:100"`
	Art      string `gorm:"size:255"`
	Titel    string `gorm:"size:400"`
	Position string `gorm:"size:255"`
	Grund    string `gorm:"size:255"`
	Status   string `gorm:"size:100"`

	// Membership payload (oeaw_mitgliedschaft, nicht_gewaehlt).
	Mitgliedschaft string `gorm:"size:4"`
	BeginnTyp      string `gorm:"size:100"`
	EndeTyp        string `gorm:"size:100"`

	// Label/LabelReverse carry the institution-hierarchy relation
	// label and its derived reverse form.
	Label        string `gorm:"size:255"`
	LabelReverse string `gorm:"size:255"`

	Abgeschlossen *bool

	FachID        *uint
	Fach          *Fach
	WahlsitzungID *uint
	Wahlsitzung   *Ereignis

	Actors []RelationActor
}

// RelationActor links persons to a relation in a named role, used for
// nominators (vorgeschlagen_von) and objectors (einspruch_von) of
// membership relations.
type RelationActor struct {
	ID         uint   `gorm:"primaryKey"`
	RelationID uint   `gorm:"index"`
	PersonID   uint   `gorm:"index"`
	Role       string `gorm:"size:40"`
}

// Actor roles.
const (
	RoleVorgeschlagenVon = "vorgeschlagen_von"
	RoleEinspruchVon     = "einspruch_von"
)

// Validate checks the relation against the registry: the kind must be
// registered and the subject/object kinds must match the declaration.
func (r *Relation) Validate() error {
	spec, ok := relationSpecs[r.Kind]
	if !ok {
		return fmt.Errorf("unknown relation kind %q", r.Kind)
	}
	if r.SubjKind != spec.Subj || r.ObjKind != spec.Obj {
		return fmt.Errorf(
			"relation %q requires %s->%s, got %s->%s",
			r.Kind, spec.Subj, spec.Obj, r.SubjKind, r.ObjKind,
		)
	}
	return nil
}

// Name returns the German display label of the relation.
func (r *Relation) Name() string {
	if spec, ok := relationSpecs[r.Kind]; ok {
		return spec.Name
	}
	return r.Kind
}

// Membership codes of the academy.
var MembershipCodes = []string{"wM", "oM", "kM I", "kM A", "EM", "JA"}

// MembershipLong maps a membership code to its long German form.
var MembershipLong = map[string]string{
	"wM":   "Wirkliches Mitglied",
	"oM":   "Ordentliches Mitglied",
	"kM I": "korrespondierendes Mitglied im Inland",
	"kM A": "korrespondierendes Mitglied im Ausland",
	"EM":   "Ehrenmitglied",
	"JA":   "Junge Akademie/Junge Kurie",
}

// Membership begin qualifiers.
var BeginnTypes = []string{
	"gewählt",
	"bestätigt",
	"gewählt und bestätigt",
	"gewählt und ernannt",
	"gewählt, nicht bestätigt",
	"ernannt",
	"genehmigt",
	"eingereiht",
	"reaktiviert",
	"unbekannt",
}

// Membership end qualifiers.
var EndeTypes = []string{
	"ausgetreten",
	"ausgeschlossen",
	"erloschen",
	"ruhend gestellt",
	"andere Mitgliedschaft",
	"Tod",
	"unbekannt",
}

// hierarchyReverse maps an institution-hierarchy relation label to its
// reverse form. The table mirrors the hierarchy options of the legacy
// vocabulary.
var hierarchyReverse = map[string]string{
	"ist Teil von":       "hat Teil",
	"ist untergeordnet":  "ist übergeordnet",
	"ist Nachfolger von": "ist Vorgänger von",
	"ist Vorgänger von":  "ist Nachfolger von",
	"gehört zu":          "umfasst",
}

// HierarchyReverse returns the derived reverse label for an
// institution-hierarchy relation label, or "" when the label is not
// part of the options table.
func HierarchyReverse(label string) string {
	return hierarchyReverse[label]
}
