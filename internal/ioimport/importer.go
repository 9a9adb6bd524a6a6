// Package ioimport implements the legacy data import: a paginated pass
// over persons pulling their relation graph in recursively, followed
// by a CSV-driven backfill of alternative names and images.
package ioimport

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/acdh-oeaw/minedb/internal/iolegacy"
	"github.com/acdh-oeaw/minedb/internal/iostore"
	"github.com/acdh-oeaw/minedb/pkg/config"
	"github.com/acdh-oeaw/minedb/pkg/legacy"
	"github.com/acdh-oeaw/minedb/pkg/minedb"
	"github.com/acdh-oeaw/minedb/pkg/schema"
	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// Importer implements minedb.Importer.
type Importer struct {
	client     minedb.LegacyClient
	store      *iostore.Store
	log        *slog.Logger
	vocFile    string
	labelsFile string
	failFast   bool

	voc   map[int]string
	stats minedb.Stats
}

// New creates the importer.
func New(
	client minedb.LegacyClient,
	store *iostore.Store,
	cfg *config.ImportConfig,
	log *slog.Logger,
) *Importer {
	if log == nil {
		log = slog.Default()
	}
	return &Importer{
		client:     client,
		store:      store,
		log:        log,
		vocFile:    cfg.VocFile,
		labelsFile: cfg.LabelsFile,
		failFast:   cfg.FailFast,
	}
}

// Run imports all persons matching the query together with their
// relation graph, then applies the label backfill pass. Failed records
// are skipped and counted unless fail-fast is set; a run with failures
// returns the statistics together with a non-nil error.
func (imp *Importer) Run(
	ctx context.Context,
	personQuery string,
) (*minedb.Stats, error) {
	runID := uuid.NewString()
	imp.log = imp.log.With("run_id", runID)
	imp.stats = minedb.Stats{}
	start := time.Now()

	voc, unknown, err := loadVocMapping(imp.vocFile)
	if err != nil {
		return nil, err
	}
	imp.voc = voc
	for _, u := range unknown {
		imp.log.Warn("unmapped row in vocabulary mapping file", "value", u)
	}

	params, err := parsePersonQuery(personQuery)
	if err != nil {
		return nil, err
	}

	url := iolegacy.ListURL(imp.client.BaseURL(), "entities/person")
	page, err := imp.client.ListPage(ctx, url, params)
	if err != nil {
		return nil, err
	}
	imp.log.Info("starting person import",
		"query", params, "count", page.Count)

	bar := pb.Full.Start(page.Count)
	bar.Set("prefix", "Importing persons: ")
	bar.Set(pb.CleanOnFinish, true)

	for page != nil {
		for _, pers := range page.Results {
			personID := legacy.Int(pers, "id")
			recStart := time.Now()

			if err := imp.importPerson(ctx, personID); err != nil {
				imp.log.Error("person import failed",
					"old_id", personID, "error", err)
				if imp.failFast {
					bar.Finish()
					return &imp.stats, err
				}
				imp.stats.Failed++
			} else {
				imp.stats.Persons++
				imp.log.Info("person imported",
					"old_id", personID,
					"took", time.Since(recStart).Round(time.Millisecond),
				)
			}
			bar.Increment()
		}

		if page.Next == nil {
			imp.log.Info("no more pages to fetch")
			break
		}
		imp.log.Info("fetching next page of persons", "url", *page.Next)
		page, err = imp.client.ListPage(ctx, *page.Next, nil)
		if err != nil {
			bar.Finish()
			return &imp.stats, err
		}
	}
	bar.Finish()

	if imp.labelsFile != "" {
		if err := imp.BackfillLabels(imp.labelsFile); err != nil {
			return &imp.stats, err
		}
	}

	imp.log.Info("import finished",
		"persons", humanize.Comma(int64(imp.stats.Persons)),
		"relations", humanize.Comma(int64(imp.stats.Relations)),
		"labels", humanize.Comma(int64(imp.stats.Labels)),
		"images", humanize.Comma(int64(imp.stats.Images)),
		"skipped", imp.stats.Skipped,
		"failed", imp.stats.Failed,
		"took", time.Since(start).Round(time.Second),
	)

	if imp.stats.Failed > 0 {
		return &imp.stats, RecordsFailedError(imp.stats.Failed)
	}
	return &imp.stats, nil
}

// importPerson imports one person and every relation attached to it.
func (imp *Importer) importPerson(ctx context.Context, personID int) error {
	url := iolegacy.EntityURL(
		imp.client.BaseURL(), "entities/person", personID)
	raw, err := imp.client.GetObject(ctx, url)
	if err != nil {
		return EntityError(string(schema.KindPerson), personID, err)
	}

	_, found, err := imp.store.FindEntityByOldID(schema.KindPerson, personID)
	if err != nil {
		return err
	}
	if found {
		imp.log.Warn("person already imported", "old_id", personID)
	} else {
		if _, err := imp.CreateEntity(schema.KindPerson, raw); err != nil {
			return err
		}
	}

	for _, stub := range legacy.MapList(raw, "relations") {
		created, err := imp.ImportRelation(ctx, stub)
		if err != nil {
			imp.log.Error("relation import failed",
				"person_old_id", personID,
				"relation_old_id", legacy.Int(stub, "id"),
				"error", err,
			)
			if imp.failFast {
				return err
			}
			imp.stats.Failed++
			continue
		}
		if created {
			imp.stats.Relations++
		}
	}
	return nil
}

// parsePersonQuery accepts a bare numeric id or a JSON object of list
// query parameters.
func parsePersonQuery(query string) (map[string]string, error) {
	if _, err := strconv.Atoi(query); err == nil {
		return map[string]string{"id": query}, nil
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(query), &raw); err != nil {
		return nil, QueryError(query, err)
	}
	params := make(map[string]string, len(raw))
	for k, v := range raw {
		params[k] = legacy.ToString(v)
	}
	return params, nil
}
