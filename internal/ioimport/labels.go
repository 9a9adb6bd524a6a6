package ioimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/acdh-oeaw/minedb/pkg/schema"
)

// Label row names that carry images instead of alternative names.
const (
	labelWikicommons = "Wikicommons Image"
	labelArchivFile  = "filename OEAW Archiv"
	labelArchivCred  = "photocredit OEAW Archiv"
)

// labelRow is one line of the labels export file.
type labelRow struct {
	OldID   int
	Name    string
	Label   string
	Sprache string
	Beginn  string
	Ende    string
}

// BackfillLabels runs the second import pass: the labels export file
// attaches alternative names and images to entities already imported
// in the paginated pass. Rows whose legacy id matches no entity table
// are logged and skipped.
func (imp *Importer) BackfillLabels(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return LabelsFileError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	head, err := r.Read()
	if err != nil {
		return LabelsFileError(path, err)
	}
	cols := map[string]int{}
	for n, col := range head {
		cols[strings.TrimSpace(col)] = n
	}
	for _, required := range []string{"temp_entity_id", "name", "label"} {
		if _, ok := cols[required]; !ok {
			return LabelsFileError(path,
				fmt.Errorf("missing column %q", required))
		}
	}

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return LabelsFileError(path, err)
		}

		row := readLabelRow(cols, rec)
		if row.OldID == 0 {
			imp.log.Warn("label row without usable legacy id, skipping",
				"row", rec)
			continue
		}

		entity, found, err := imp.store.FindAnyByOldID(row.OldID)
		if err != nil {
			return err
		}
		if !found {
			imp.log.Warn("object with old_id not found, skipping label",
				"old_id", row.OldID, "name", row.Name)
			continue
		}

		if err := imp.applyLabelRow(entity, row); err != nil {
			imp.log.Error("cannot apply label row",
				"old_id", row.OldID, "name", row.Name, "error", err)
			if imp.failFast {
				return err
			}
			imp.stats.Failed++
		}
	}
	return nil
}

func readLabelRow(cols map[string]int, rec []string) labelRow {
	get := func(name string) string {
		n, ok := cols[name]
		if !ok || n >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[n])
	}
	id, _ := strconv.Atoi(get("temp_entity_id"))
	return labelRow{
		OldID:   id,
		Name:    get("name"),
		Label:   get("label"),
		Sprache: get("sprache"),
		Beginn:  get("beginn"),
		Ende:    get("ende"),
	}
}

func (imp *Importer) applyLabelRow(entity schema.Entity, row labelRow) error {
	switch row.Name {
	case labelWikicommons:
		if err := imp.store.CreateBild(&schema.Bild{
			Art:        schema.BildWikimedia,
			Pfad:       row.Label,
			EntityKind: entity.Kind(),
			EntityID:   entity.PK(),
		}); err != nil {
			return err
		}
		imp.stats.Images++

	case labelArchivFile:
		if err := imp.store.CreateBild(&schema.Bild{
			Art:        schema.BildArchiv,
			Pfad:       row.Label,
			EntityKind: entity.Kind(),
			EntityID:   entity.PK(),
		}); err != nil {
			return err
		}
		imp.stats.Images++

	case labelArchivCred:
		// the credit row follows its image row in the export
		bild, found, err := imp.store.FindBild(entity, schema.BildArchiv)
		if err != nil {
			return err
		}
		if !found {
			imp.log.Warn("photo credit without archive image, skipping",
				"old_id", entity.LegacyID())
			return nil
		}
		bild.Credit = row.Label
		if err := imp.store.SaveBild(bild); err != nil {
			return err
		}

	default:
		if err := imp.store.AddAltName(entity, schema.AltName{
			Name:    row.Label,
			Art:     row.Name,
			Sprache: row.Sprache,
			Beginn:  row.Beginn,
			Ende:    row.Ende,
		}); err != nil {
			return err
		}
		imp.stats.Labels++
	}
	return nil
}
