/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package openregister

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/suparena/openregister/resources"
)

// RecordIterator walks a register's records page by page, constructing each
// Record lazily as the sequence is consumed. A page shorter than the
// requested page size ends the sequence; when the total count is an exact
// multiple of the page size this means one extra trailing request is issued
// before termination. That inefficiency is a known property of the
// pagination convention and is kept rather than computing totals up front.
//
//	it := client.Records(ctx)
//	for it.Next() {
//	    record := it.Record()
//	    ...
//	}
//	if err := it.Err(); err != nil { ... }
type RecordIterator struct {
	ctx       context.Context
	client    *Client
	path      string
	pageIndex int
	buf       []resources.Record
	cur       *resources.Record
	done      bool
	err       error
}

// Next advances the iterator, fetching the next page when the current one is
// exhausted. It returns false at the end of the sequence or on error.
func (it *RecordIterator) Next() bool {
	if it.err != nil {
		return false
	}
	for len(it.buf) == 0 {
		if it.done {
			return false
		}
		if err := it.fetchPage(); err != nil {
			it.err = err
			return false
		}
	}
	rec := it.buf[0]
	it.buf = it.buf[1:]
	it.cur = &rec
	return true
}

// Record returns the record produced by the last successful Next.
func (it *RecordIterator) Record() *resources.Record { return it.cur }

// Err returns the error that aborted the sequence, if any. A failed page
// aborts the whole iteration; no partial-page retry is performed.
func (it *RecordIterator) Err() error { return it.err }

func (it *RecordIterator) fetchPage() error {
	query := url.Values{}
	query.Set("page-index", strconv.Itoa(it.pageIndex))
	query.Set("page-size", strconv.Itoa(it.client.pageSize))

	data, found, err := it.client.fetch(it.ctx, it.path, query)
	if err != nil {
		return err
	}
	if !found {
		// Paginating past the last page answers 404.
		it.done = true
		return nil
	}

	// The records endpoint responds with an object keyed by record key.
	page, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("records response is not an object")
	}

	keys := make([]string, 0, len(page))
	for key := range page {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		obj, ok := page[key].(map[string]any)
		if !ok {
			return fmt.Errorf("record %q is not an object", key)
		}
		rec, err := resources.ParseRecord(obj, it.client.resolved)
		if err != nil {
			return fmt.Errorf("failed to parse record %q: %w", key, err)
		}
		it.buf = append(it.buf, rec)
	}

	if len(page) < it.client.pageSize {
		it.done = true
	}
	it.pageIndex++
	return nil
}

// EntryIterator walks a register's entry log. The entries endpoint uses
// limit-based pagination: start advances by the page size each fetch, and a
// short page ends the sequence.
type EntryIterator struct {
	ctx    context.Context
	client *Client
	start  int
	buf    []resources.Entry
	cur    *resources.Entry
	done   bool
	err    error
}

// Next advances the iterator, fetching the next page when the current one is
// exhausted. It returns false at the end of the sequence or on error.
func (it *EntryIterator) Next() bool {
	if it.err != nil {
		return false
	}
	for len(it.buf) == 0 {
		if it.done {
			return false
		}
		if err := it.fetchPage(); err != nil {
			it.err = err
			return false
		}
	}
	e := it.buf[0]
	it.buf = it.buf[1:]
	it.cur = &e
	return true
}

// Entry returns the entry produced by the last successful Next.
func (it *EntryIterator) Entry() *resources.Entry { return it.cur }

// Err returns the error that aborted the sequence, if any.
func (it *EntryIterator) Err() error { return it.err }

func (it *EntryIterator) fetchPage() error {
	query := url.Values{}
	query.Set("start", strconv.Itoa(it.start))
	query.Set("limit", strconv.Itoa(it.client.pageSize))

	data, found, err := it.client.fetch(it.ctx, "entries", query)
	if err != nil {
		return err
	}
	if !found {
		it.done = true
		return nil
	}

	list, ok := data.([]any)
	if !ok {
		return fmt.Errorf("entries response is not a list")
	}

	for _, raw := range list {
		m, ok := raw.(map[string]any)
		if !ok {
			return fmt.Errorf("entries response has a non-object element")
		}
		e, err := resources.ParseEntry(m)
		if err != nil {
			return fmt.Errorf("failed to parse entry: %w", err)
		}
		it.buf = append(it.buf, e)
	}

	if len(list) < it.client.pageSize {
		it.done = true
	}
	it.start += it.client.pageSize
	return nil
}
