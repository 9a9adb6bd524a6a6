package iolegacy

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/acdh-oeaw/minedb/pkg/legacy"
)

// ResolveVocab walks a vocabulary term's parent chain from the leaf up
// to the root and returns the path ordered root first.
//
// The legacy API does not expose a parent URL, only a parent id; the
// parent's URL is derived by replacing the last two path segments of
// the current URL (the id and the trailing slash) with the parent id.
// Term fetches go through the memo cache, so one term is requested at
// most once per run. A visited set guards against cycles in the
// vocabulary data, which the source system does not rule out.
func (c *client) ResolveVocab(
	ctx context.Context,
	leafURL string,
) ([]legacy.VocabTerm, error) {
	var res []legacy.VocabTerm
	seen := make(map[int]bool)

	url := leafURL
	for {
		term, err := c.getVocabTerm(ctx, url)
		if err != nil {
			return nil, err
		}
		if seen[term.ID] {
			return nil, VocabCycleError(leafURL, term.ID)
		}
		seen[term.ID] = true
		res = append(res, term)

		if term.ParentClass == nil {
			break
		}
		url = parentURL(url, term.ParentClass.ID)
	}

	// accumulated leaf first, return root first
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return res, nil
}

// getVocabTerm fetches a vocabulary term through the memo cache.
func (c *client) getVocabTerm(
	ctx context.Context,
	url string,
) (legacy.VocabTerm, error) {
	var term legacy.VocabTerm

	obj, err := c.GetObject(ctx, url)
	if err != nil {
		return term, err
	}

	// round-trip through JSON to get the typed view of the cached map
	data, err := json.Marshal(obj)
	if err != nil {
		return term, DecodeError(url, err)
	}
	if err := json.Unmarshal(data, &term); err != nil {
		return term, DecodeError(url, err)
	}
	if term.URL == "" {
		term.URL = url
	}
	return term, nil
}

// parentURL replaces the last two path segments of a term URL with the
// parent id.
func parentURL(url string, parentID int) string {
	parts := strings.Split(url, "/")
	if len(parts) >= 2 {
		parts = parts[:len(parts)-2]
	}
	return strings.Join(parts, "/") + fmt.Sprintf("/%d/", parentID)
}
