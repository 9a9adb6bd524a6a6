package ioimport

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/acdh-oeaw/minedb/pkg/schema"
)

// classKindMap translates the target model names used in the
// vocabulary mapping CSV (matched case-insensitively) to relation kind
// tags.
var classKindMap = map[string]string{
	"oeawmitgliedschaft":       schema.RelOeawMitgliedschaft,
	"nichtgewaehlt":            schema.RelNichtGewaehlt,
	"positionan":               schema.RelPositionAn,
	"ausbildungan":             schema.RelAusbildungAn,
	"schreibtaus":              schema.RelSchreibtAus,
	"institutionhierarchie":    schema.RelInstitutionHierarchie,
	"wirdvergebenvon":          schema.RelWirdVergebenVon,
	"wirdgestiftetvon":         schema.RelWirdGestiftetVon,
	"gelegenin":                schema.RelGelegenIn,
	"gelegeninort":             schema.RelGelegenInOrt,
	"gewinnt":                  schema.RelGewinnt,
	"stiftet":                  schema.RelStiftet,
	"mitglied":                 schema.RelMitglied,
	"anhaengervon":             schema.RelAnhaengerVon,
	"nimmtteilan":              schema.RelNimmtTeilAn,
	"ehrentitelvoninstitution": schema.RelEhrentitelVonInstitution,
	"ehrentitelvon":            schema.RelEhrentitelVon,
	"lehntpreisab":             schema.RelLehntPreisAb,
	"stelltantragan":           schema.RelStelltAntragAn,
	"ehepartnervon":            schema.RelEhepartnerVon,
	"familienmitgliedvon":      schema.RelFamilienmitgliedVon,
	"kindvon":                  schema.RelKindVon,
	"freundvon":                schema.RelFreundVon,
	"lehrervon":                schema.RelLehrerVon,
	"geborenin":                schema.RelGeborenIn,
	"gestorbenin":              schema.RelGestorbenIn,
	"wissenschaftsaustauschin": schema.RelWissenschaftsaustauschIn,
	"autorvon":                 schema.RelAutorVon,
	"erwaehntin":               schema.RelErwaehntIn,
	"findetstattin":            schema.RelFindetStattIn,
	"haeltredebei":             schema.RelHaeltRedeBei,
}

// loadVocMapping reads the vocabulary mapping CSV. Each row pairs a
// legacy relation-type id with the target model name; rows with an
// empty target or an unknown model name are returned in unknown so the
// caller can log them once up front.
func loadVocMapping(path string) (mapping map[int]string, unknown []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, VocFileError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, VocFileError(path, err)
	}
	if len(rows) == 0 {
		return nil, nil, VocFileError(path, fmt.Errorf("empty file"))
	}

	head := map[string]int{}
	for n, col := range rows[0] {
		head[strings.TrimSpace(col)] = n
	}
	idCol, ok := head["id"]
	if !ok {
		return nil, nil, VocFileError(path, fmt.Errorf("missing column %q", "id"))
	}
	classCol, ok := head["new_class"]
	if !ok {
		return nil, nil, VocFileError(path, fmt.Errorf("missing column %q", "new_class"))
	}

	mapping = make(map[int]string, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) <= idCol || len(row) <= classCol {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(row[idCol]))
		if err != nil {
			unknown = append(unknown, row[idCol])
			continue
		}
		class := strings.ToLower(strings.TrimSpace(row[classCol]))
		if class == "" {
			unknown = append(unknown, row[idCol])
			continue
		}
		kind, ok := classKindMap[class]
		if !ok {
			unknown = append(unknown, row[classCol])
			continue
		}
		mapping[id] = kind
	}
	return mapping, unknown, nil
}
