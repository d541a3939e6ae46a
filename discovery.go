/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package openregister

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/suparena/openregister/errors"
	"github.com/suparena/openregister/fieldtypes"
	"github.com/suparena/openregister/registry"
	"github.com/suparena/openregister/resources"
	"github.com/suparena/openregister/schema"
)

// Discovery bootstraps typed register clients from the well-known "register"
// and "field" registers. The two fetches run in a fixed order: register
// metadata first, because each register's declared field list is the input
// to resolving against the field register.
//
// Discovery resolves the bootstrap metadata once and memoizes it for its own
// lifetime; a caller needing a fresh view of the schema vocabulary
// constructs a new Discovery. Two Discovery instances share nothing.
type Discovery struct {
	urlTemplate string
	clientOpts  []Option

	once           sync.Once
	resolveErr     error
	fieldIndex     map[string]schema.FieldSpec
	registerFields map[string][]string

	mu      sync.RWMutex
	clients map[string]*Client
}

// DiscoveryOption configures a Discovery.
type DiscoveryOption func(*Discovery)

// WithURLTemplate sets the base URL template; the verb takes the register
// name. Defaults to BetaURLTemplate.
func WithURLTemplate(template string) DiscoveryOption {
	return func(d *Discovery) {
		d.urlTemplate = template
	}
}

// WithClientOptions passes options through to every client the Discovery
// constructs, including the bootstrap clients.
func WithClientOptions(opts ...Option) DiscoveryOption {
	return func(d *Discovery) {
		d.clientOpts = opts
	}
}

// NewDiscovery creates a Discovery against the beta register environment
// unless overridden with WithURLTemplate.
func NewDiscovery(opts ...DiscoveryOption) *Discovery {
	d := &Discovery{
		urlTemplate: BetaURLTemplate,
		clients:     make(map[string]*Client),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Schema resolves the named register's field schema from the bootstrap
// registers. The bootstrap metadata is fetched at most once per Discovery.
func (d *Discovery) Schema(ctx context.Context, name string) (*schema.Resolved, error) {
	if err := d.resolve(ctx); err != nil {
		return nil, err
	}
	fields, ok := d.registerFields[name]
	if !ok {
		return nil, errors.NewNotFoundError("register", name)
	}
	u := schema.Unresolved{Register: name, Fields: fields}
	return u.Resolve(d.fieldIndex)
}

// Register returns a typed client for the named register, constructing and
// retaining it on first use. The returned client's schema never changes.
func (d *Discovery) Register(ctx context.Context, name string) (*Client, error) {
	d.mu.RLock()
	client, ok := d.clients[name]
	d.mu.RUnlock()
	if ok {
		return client, nil
	}

	resolved, err := d.Schema(ctx, name)
	if err != nil {
		return nil, err
	}

	opts := append([]Option{WithBaseURL(fmt.Sprintf(d.urlTemplate, name))}, d.clientOpts...)
	opts = append(opts, WithSchema(resolved))
	client = NewClient(name, opts...)

	d.mu.Lock()
	defer d.mu.Unlock()
	if existing, ok := d.clients[name]; ok {
		return existing, nil
	}
	d.clients[name] = client
	return client, nil
}

// RegisterNames lists the registers the bootstrap register knows about.
func (d *Discovery) RegisterNames(ctx context.Context) ([]string, error) {
	if err := d.resolve(ctx); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(d.registerFields))
	for name := range d.registerFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Registers returns a typed client for every register the bootstrap register
// knows about, in name order. Resolution failure for any register fails the
// whole call.
func (d *Discovery) Registers(ctx context.Context) ([]*Client, error) {
	names, err := d.RegisterNames(ctx)
	if err != nil {
		return nil, err
	}
	clients := make([]*Client, 0, len(names))
	for _, name := range names {
		client, err := d.Register(ctx, name)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, nil
}

// RecordByCurie resolves a curie ("register:key" or "[register:key]") to the
// record it references.
func (d *Discovery) RecordByCurie(ctx context.Context, curie string) (*resources.Record, error) {
	c, err := fieldtypes.ParseCurie(curie)
	if err != nil {
		return nil, err
	}
	client, err := d.Register(ctx, c.Prefix)
	if err != nil {
		return nil, err
	}
	return client.Record(ctx, c.Reference)
}

// ExpandCurie rewrites a curie as the full URL of the record it references.
func (d *Discovery) ExpandCurie(curie string) (string, error) {
	c, err := fieldtypes.ParseCurie(curie)
	if err != nil {
		return "", err
	}
	base := strings.TrimSuffix(fmt.Sprintf(d.urlTemplate, c.Prefix), "/")
	return base + "/records/" + url.PathEscape(c.Reference), nil
}

func (d *Discovery) resolve(ctx context.Context) error {
	d.once.Do(func() {
		d.resolveErr = d.discover(ctx)
	})
	return d.resolveErr
}

func (d *Discovery) discover(ctx context.Context) error {
	// Step one: each register's declared field list.
	d.registerFields = make(map[string][]string)
	it := d.bootstrapClient("register").Records(ctx)
	for it.Next() {
		item, err := it.Record().Item()
		if err != nil {
			return fmt.Errorf("register register: %w", err)
		}
		name := rawString(item, "register")
		if name == "" {
			continue
		}
		fields, _ := item.Raw("fields")
		d.registerFields[name] = rawStrings(fields)
	}
	if err := it.Err(); err != nil {
		return fmt.Errorf("failed to read register register: %w", err)
	}

	// Step two: datatype and cardinality for every known field.
	d.fieldIndex = make(map[string]schema.FieldSpec)
	it = d.bootstrapClient("field").Records(ctx)
	for it.Next() {
		item, err := it.Record().Item()
		if err != nil {
			return fmt.Errorf("field register: %w", err)
		}
		name := rawString(item, "field")
		if name == "" {
			continue
		}
		cardinality := fieldtypes.Cardinality(rawString(item, "cardinality"))
		if cardinality == "" {
			cardinality = fieldtypes.CardinalityOne
		}
		d.fieldIndex[name] = schema.FieldSpec{
			Name:        name,
			Datatype:    rawString(item, "datatype"),
			Cardinality: cardinality,
			Description: rawString(item, "text"),
		}
	}
	if err := it.Err(); err != nil {
		return fmt.Errorf("failed to read field register: %w", err)
	}

	// Datatype descriptions are cosmetic; failure to read them never blocks
	// discovery.
	it = d.bootstrapClient("datatype").Records(ctx)
	for it.Next() {
		item, err := it.Record().Item()
		if err != nil {
			continue
		}
		if name := rawString(item, "datatype"); name != "" {
			registry.RegisterDescription(name, rawString(item, "text"))
		}
	}
	_ = it.Err()

	return nil
}

func (d *Discovery) bootstrapClient(name string) *Client {
	opts := append([]Option{WithBaseURL(fmt.Sprintf(d.urlTemplate, name))}, d.clientOpts...)
	return NewClient(name, opts...)
}

func rawString(item resources.Item, field string) string {
	v, _ := item.Raw(field)
	s, _ := v.(string)
	return s
}

func rawStrings(v any) []string {
	switch l := v.(type) {
	case []any:
		out := make([]string, 0, len(l))
		for _, e := range l {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if l == "" {
			return nil
		}
		return []string{l}
	default:
		return nil
	}
}
