/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package openregister

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/suparena/openregister/errors"
	"github.com/suparena/openregister/resources"
	"github.com/suparena/openregister/schema"
)

// Well-known register base URL templates; the verb takes the register name.
const (
	// BetaURLTemplate addresses registers that are at least in beta.
	BetaURLTemplate = "https://%s.register.gov.uk/"
	// AlphaURLTemplate addresses alpha-phase registers.
	AlphaURLTemplate = "https://%s.alpha.openregister.org/"
)

// Client configuration defaults.
const (
	DefaultPageSize       = 100
	DefaultRequestTimeout = 15 * time.Second
)

// Client reads one named register over HTTP. It is synchronous and performs
// blocking I/O; callers needing timeouts configure them on the HTTP client.
// A client built by Discovery carries a resolved schema and hands back typed
// items; a client built directly is in open mode and hands back raw values.
type Client struct {
	name     string
	baseURL  string
	hc       *http.Client
	timeout  time.Duration
	pageSize int
	apiKey   string
	resolved *schema.Resolved
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.hc = hc
	}
}

// WithTimeout sets a custom HTTP request timeout. It applies regardless of
// option order and never mutates an HTTP client passed in by the caller.
// Zero or negative values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithPageSize sets the page size used when paginating records and entries.
func WithPageSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithAPIKey passes an opaque API key with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithBaseURL overrides the register's base URL, e.g. for the alpha
// environment or a local test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithSchema attaches a resolved field schema, turning on typed item access.
func WithSchema(resolved *schema.Resolved) Option {
	return func(c *Client) {
		c.resolved = resolved
	}
}

// NewClient creates a client for the named register. Without options the
// register is addressed through the beta URL template and items are in open
// (untyped) mode.
func NewClient(name string, opts ...Option) *Client {
	c := &Client{
		name:     name,
		baseURL:  fmt.Sprintf(BetaURLTemplate, name),
		hc:       &http.Client{Timeout: DefaultRequestTimeout},
		pageSize: DefaultPageSize,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 && c.hc.Timeout != c.timeout {
		hc := *c.hc
		hc.Timeout = c.timeout
		c.hc = &hc
	}

	c.baseURL = strings.TrimSuffix(c.baseURL, "/")
	return c
}

// Name returns the register name.
func (c *Client) Name() string { return c.name }

// BaseURL returns the register base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Schema returns the resolved field schema, or nil in open mode.
func (c *Client) Schema() *schema.Resolved { return c.resolved }

// Info fetches the register's own metadata document.
func (c *Client) Info(ctx context.Context) (*resources.RegisterInfo, error) {
	data, found, err := c.fetch(ctx, "register", nil)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.NewNotFoundError("register", c.name)
	}
	m, ok := data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("register metadata response is not an object")
	}
	info, err := resources.ParseRegisterInfo(m)
	if err != nil {
		return nil, fmt.Errorf("failed to parse register metadata: %w", err)
	}
	return &info, nil
}

// Records returns a lazy iterator over all current records. The sequence is
// single-pass; calling Records again issues fresh HTTP requests.
func (c *Client) Records(ctx context.Context) *RecordIterator {
	return &RecordIterator{ctx: ctx, client: c, path: "records", pageIndex: 1}
}

// FilteredRecords returns a lazy iterator over records whose field carries
// the given value.
func (c *Client) FilteredRecords(ctx context.Context, field, value string) *RecordIterator {
	path := fmt.Sprintf("records/%s/%s", url.PathEscape(field), url.PathEscape(value))
	return &RecordIterator{ctx: ctx, client: c, path: path, pageIndex: 1}
}

// Record fetches the current record for one key.
func (c *Client) Record(ctx context.Context, key string) (*resources.Record, error) {
	data, found, err := c.fetch(ctx, "record/"+url.PathEscape(key), nil)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.NewNotFoundError("record", key)
	}
	m, ok := data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("record response is not an object")
	}
	obj, ok := m[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("record response does not contain key %q", key)
	}
	rec, err := resources.ParseRecord(obj, c.resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to parse record %q: %w", key, err)
	}
	return &rec, nil
}

// RecordEntries fetches the change history of one record.
// NB: the record entries endpoint is not paginated by the service.
func (c *Client) RecordEntries(ctx context.Context, key string) ([]resources.Entry, error) {
	data, found, err := c.fetch(ctx, fmt.Sprintf("record/%s/entries", url.PathEscape(key)), nil)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.NewNotFoundError("record", key)
	}
	list, ok := data.([]any)
	if !ok {
		return nil, fmt.Errorf("record entries response is not a list")
	}
	entries := make([]resources.Entry, 0, len(list))
	for _, raw := range list {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record entries response has a non-object element")
		}
		e, err := resources.ParseEntry(m)
		if err != nil {
			return nil, fmt.Errorf("failed to parse entry for %q: %w", key, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Entries returns a lazy iterator over the register's full entry log.
func (c *Client) Entries(ctx context.Context) *EntryIterator {
	return &EntryIterator{ctx: ctx, client: c, start: 1}
}

// Entry fetches one entry by its entry number.
func (c *Client) Entry(ctx context.Context, number int) (*resources.Entry, error) {
	data, found, err := c.fetch(ctx, "entry/"+strconv.Itoa(number), nil)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.NewNotFoundError("entry", strconv.Itoa(number))
	}
	list, ok := data.([]any)
	if !ok || len(list) != 1 {
		return nil, fmt.Errorf("entry response should be a list of 1 entry")
	}
	m, ok := list[0].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("entry response element is not an object")
	}
	e, err := resources.ParseEntry(m)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ItemByHash fetches one item by its content hash.
func (c *Client) ItemByHash(ctx context.Context, hash string) (*resources.Item, error) {
	data, found, err := c.fetch(ctx, "item/"+url.PathEscape(hash), nil)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.NewNotFoundError("item", hash)
	}
	m, ok := data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("item response is not an object")
	}
	item := resources.NewItem(m, c.resolved)
	return &item, nil
}

// AllRecords drains the record iterator into a slice.
func (c *Client) AllRecords(ctx context.Context) ([]resources.Record, error) {
	var out []resources.Record
	it := c.Records(ctx)
	for it.Next() {
		out = append(out, *it.Record())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// fetch performs an HTTP GET and decodes the JSON body. The second return
// is false when the service answered 404; transport and decode errors are
// surfaced unchanged, with no retry.
func (c *Client) fetch(ctx context.Context, path string, query url.Values) (any, bool, error) {
	u := c.baseURL + "/" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		var decoded any
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return nil, false, fmt.Errorf("failed to decode response from %s: %w", u, err)
		}
		return decoded, true, nil
	case http.StatusNotFound:
		return nil, false, nil
	default:
		return nil, false, errors.NewStatusError(u, resp.StatusCode)
	}
}
