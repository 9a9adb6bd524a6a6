// Package iolegacy implements the client for the legacy APIS REST API:
// authenticated GET requests, per-run memoization of idempotent
// lookups, and the hierarchical vocabulary resolver.
package iolegacy

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/acdh-oeaw/minedb/pkg/config"
	"github.com/acdh-oeaw/minedb/pkg/legacy"
	"github.com/acdh-oeaw/minedb/pkg/minedb"
	"github.com/go-resty/resty/v2"
)

// client implements minedb.LegacyClient with resty.
type client struct {
	rc      *resty.Client
	baseURL string
	cache   *Cache
}

// New creates a legacy API client. The cache is injected so tests and
// callers control its lifetime (one import run).
func New(cfg *config.APIConfig, cache *Cache) minedb.LegacyClient {
	rc := resty.New().
		SetTimeout(time.Duration(cfg.TimeoutSec) * time.Second).
		SetHeader("Accept", "application/json").
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))
	if cfg.Token != "" {
		rc.SetHeader("Authorization", "Token "+cfg.Token)
	}

	return &client{rc: rc, baseURL: cfg.BaseURL, cache: cache}
}

// BaseURL returns the configured API root.
func (c *client) BaseURL() string {
	return c.baseURL
}

func (c *client) doGet(
	ctx context.Context,
	url string,
	params map[string]string,
) ([]byte, error) {
	slog.Debug("API request", "url", url, "params", params)

	req := c.rc.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}

	resp, err := req.Get(url)
	if err != nil {
		slog.Error("API request failed", "url", url, "error", err)
		return nil, RequestError(url, err)
	}
	if resp.IsError() {
		slog.Error("API request failed",
			"url", url,
			"status", resp.StatusCode(),
			"body", string(resp.Body()),
		)
		return nil, StatusError(url, resp.StatusCode(), string(resp.Body()))
	}

	slog.Debug("API response", "url", url, "status", resp.StatusCode())
	return resp.Body(), nil
}

// Get issues an authenticated GET request and decodes the JSON object
// response.
func (c *client) Get(
	ctx context.Context,
	url string,
	params map[string]string,
) (legacy.Payload, error) {
	body, err := c.doGet(ctx, url, params)
	if err != nil {
		return nil, err
	}

	var res legacy.Payload
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, DecodeError(url, err)
	}
	return res, nil
}

// GetObject is Get without query parameters, memoized by URL.
func (c *client) GetObject(
	ctx context.Context,
	url string,
) (legacy.Payload, error) {
	if obj, ok := c.cache.get(url); ok {
		return obj, nil
	}

	obj, err := c.Get(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	c.cache.put(url, obj)
	return obj, nil
}

// ListPage fetches one page of a paginated list endpoint.
func (c *client) ListPage(
	ctx context.Context,
	url string,
	params map[string]string,
) (*legacy.Page, error) {
	body, err := c.doGet(ctx, url, params)
	if err != nil {
		return nil, err
	}

	var page legacy.Page
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, DecodeError(url, err)
	}
	return &page, nil
}

// EntityURL builds the detail URL of an entity route.
func EntityURL(baseURL, route string, id int) string {
	return fmt.Sprintf("%s/apis/api/%s/%d/", baseURL, route, id)
}

// ListURL builds the list URL of an entity route.
func ListURL(baseURL, route string) string {
	return fmt.Sprintf("%s/apis/api/%s/", baseURL, route)
}
