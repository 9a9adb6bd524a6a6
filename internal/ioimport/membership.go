package ioimport

import (
	"context"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/acdh-oeaw/minedb/internal/iolegacy"
	"github.com/acdh-oeaw/minedb/pkg/legacy"
	"github.com/acdh-oeaw/minedb/pkg/schema"
)

var (
	// parenRe extracts the membership code from a vocabulary label of
	// the form "Wirkliches Mitglied (wM)".
	parenRe = regexp.MustCompile(`\(([^)]+)\)`)
	yearRe  = regexp.MustCompile(`\b(\d{4})\b`)
)

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func pathContainsFold(path []legacy.VocabTerm, substr string) bool {
	for _, term := range path {
		if containsFold(term.DisplayLabel(), substr) {
			return true
		}
	}
	return false
}

// applyMembership classifies an academy membership from the resolved
// vocabulary path: the membership code comes from the parenthesized
// part of a path label, begin/end qualifiers from the qualifier
// vocabularies, and failed elections branch to the nicht_gewaehlt
// kind, which records a date instead of a span.
func applyMembership(
	imp *Importer,
	rel *schema.Relation,
	raw legacy.Payload,
	path []legacy.VocabTerm,
) error {
	if pathContainsFold(path, "nicht gewählt") && rel.Kind != schema.RelNichtGewaehlt {
		rel.Kind = schema.RelNichtGewaehlt
		rel.Datum, rel.Beginn = rel.Beginn, ""
	}

	for _, term := range path {
		m := parenRe.FindStringSubmatch(term.DisplayLabel())
		if m == nil {
			continue
		}
		code := strings.TrimSpace(m[1])
		if slices.Contains(schema.MembershipCodes, code) {
			rel.Mitgliedschaft = code
			break
		}
	}
	if rel.Mitgliedschaft == "" {
		imp.log.Warn("no membership code in vocabulary path",
			"old_id", rel.LegacyID(), "leaf", leafLabel(path))
	}

	if rel.Kind == schema.RelOeawMitgliedschaft {
		rel.BeginnTyp = matchQualifier(path, schema.BeginnTypes)
		if rel.Ende != "" {
			rel.EndeTyp = matchQualifier(path, schema.EndeTypes)
		}
	}
	return nil
}

// matchQualifier finds the begin/end qualifier named in the vocabulary
// path. Longer qualifiers win so "gewählt und bestätigt" is not
// shadowed by "gewählt". Falls back to "unbekannt".
func matchQualifier(path []legacy.VocabTerm, choices []string) string {
	sorted := make([]string, len(choices))
	copy(sorted, choices)
	slices.SortFunc(sorted, func(a, b string) int {
		return len(b) - len(a)
	})
	for _, c := range sorted {
		if c == "unbekannt" {
			continue
		}
		if pathContainsFold(path, c) {
			return c
		}
	}
	return "unbekannt"
}

// postMembershipNominators recovers who nominated the person for
// election. The nomination is a separate person-person relation in the
// legacy system, so the API is queried again scoped by the member and
// filtered to nomination relations of the election year.
func postMembershipNominators(
	ctx context.Context,
	imp *Importer,
	rel *schema.Relation,
	raw legacy.Payload,
	path []legacy.VocabTerm,
) error {
	memberOldID := sideOldID(raw, []string{"related_person"})
	if memberOldID == 0 {
		return nil
	}
	year := electionYear(rel)
	if year == "" {
		return nil
	}

	page, err := imp.client.ListPage(
		ctx,
		iolegacy.ListURL(imp.client.BaseURL(), "relations/personperson"),
		map[string]string{"related_personB": strconv.Itoa(memberOldID)},
	)
	if err != nil {
		imp.log.Warn("nominator lookup failed",
			"old_id", rel.LegacyID(), "error", err)
		return nil
	}

	for _, cand := range page.Results {
		relType := legacy.Map(cand, "relation_type")
		if !containsFold(legacy.Str(relType, "label"), "vorgeschlagen") {
			continue
		}
		if !strings.Contains(legacy.Str(cand, "start_date_written"), year) {
			continue
		}
		nomOldID := sideOldID(cand, []string{"related_personA"})
		if nomOldID == 0 {
			continue
		}
		nominator, err := imp.GetOrCreateEntity(ctx, schema.KindPerson, nomOldID)
		if err != nil {
			imp.log.Warn("cannot resolve nominator",
				"old_id", nomOldID, "error", err)
			continue
		}
		if err := imp.store.AddActor(
			rel.ID, nominator.PK(), schema.RoleVorgeschlagenVon,
		); err != nil {
			return err
		}
		imp.log.Info("linked nominator",
			"relation_old_id", rel.LegacyID(),
			"nominator", nominator.DisplayName(),
		)
	}
	return nil
}

// electionYear extracts the four digit election year from the
// membership dates.
func electionYear(rel *schema.Relation) string {
	for _, date := range []string{rel.Beginn, rel.Datum} {
		if m := yearRe.FindStringSubmatch(date); m != nil {
			return m[1]
		}
	}
	return ""
}
