/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package openregister

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/openregister/errors"
)

func testRecord(key string, item map[string]any) map[string]any {
	return map[string]any{
		"index-entry-number": "1",
		"entry-number":       "1",
		"entry-timestamp":    "2016-04-05T13:23:05Z",
		"key":                key,
		"item":               []any{item},
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

// recordsServer serves totalRecords synthetic records through the records
// endpoint's page-index pagination and counts the requests it answers.
func recordsServer(t *testing.T, totalRecords int, requests *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/records" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		atomic.AddInt32(requests, 1)

		pageIndex, err := strconv.Atoi(r.URL.Query().Get("page-index"))
		require.NoError(t, err)
		pageSize, err := strconv.Atoi(r.URL.Query().Get("page-size"))
		require.NoError(t, err)

		start := (pageIndex - 1) * pageSize
		if start >= totalRecords {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		end := start + pageSize
		if end > totalRecords {
			end = totalRecords
		}

		page := make(map[string]any, end-start)
		for i := start; i < end; i++ {
			key := fmt.Sprintf("t%03d", i)
			page[key] = testRecord(key, map[string]any{"territory": key})
		}
		writeJSON(t, w, page)
	}))
}

func TestRecordsPagination(t *testing.T) {
	// Pages of sizes [5, 5, 5, 2]: the short final page ends the sequence
	// after exactly 4 requests.
	var requests int32
	server := recordsServer(t, 17, &requests)
	defer server.Close()

	client := NewClient("territory", WithBaseURL(server.URL), WithPageSize(5))

	var count int
	it := client.Records(context.Background())
	for it.Next() {
		require.NotNil(t, it.Record())
		count++
	}
	require.NoError(t, it.Err())

	assert.Equal(t, 17, count)
	assert.Equal(t, int32(4), atomic.LoadInt32(&requests))
}

func TestRecordsPaginationExactMultiple(t *testing.T) {
	// When the total is an exact multiple of the page size the client
	// cannot tell the last full page is last, so one extra trailing
	// request is issued. That behaviour is deliberate.
	var requests int32
	server := recordsServer(t, 10, &requests)
	defer server.Close()

	client := NewClient("territory", WithBaseURL(server.URL), WithPageSize(5))

	records, err := client.AllRecords(context.Background())
	require.NoError(t, err)

	assert.Len(t, records, 10)
	assert.Equal(t, int32(3), atomic.LoadInt32(&requests))
}

func TestRecordsRestartable(t *testing.T) {
	var requests int32
	server := recordsServer(t, 3, &requests)
	defer server.Close()

	client := NewClient("territory", WithBaseURL(server.URL), WithPageSize(5))

	first, err := client.AllRecords(context.Background())
	require.NoError(t, err)
	second, err := client.AllRecords(context.Background())
	require.NoError(t, err)

	assert.Len(t, first, 3)
	assert.Len(t, second, 3)
	// Each invocation issues fresh HTTP calls.
	assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
}

func TestRecordsTransportErrorAbortsSequence(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&requests, 1) > 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		page := make(map[string]any, 5)
		for i := 0; i < 5; i++ {
			key := fmt.Sprintf("t%03d", i)
			page[key] = testRecord(key, map[string]any{"territory": key})
		}
		writeJSON(t, w, page)
	}))
	defer server.Close()

	client := NewClient("territory", WithBaseURL(server.URL), WithPageSize(5))

	it := client.Records(context.Background())
	var count int
	for it.Next() {
		count++
	}

	assert.Equal(t, 5, count)
	require.Error(t, it.Err())
	assert.True(t, errors.IsUnexpectedStatus(it.Err()))
}

func TestRecordsDecodeErrorAbortsSequence(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"GB": {`)
	}))
	defer server.Close()

	client := NewClient("territory", WithBaseURL(server.URL))

	it := client.Records(context.Background())
	assert.False(t, it.Next())
	assert.Error(t, it.Err())
}

func TestRecordOpenMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/record/GB" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(t, w, map[string]any{
			"GB": testRecord("GB", map[string]any{
				"territory":     "GB",
				"official-name": "United Kingdom",
				"population":    "66000000",
			}),
		})
	}))
	defer server.Close()

	client := NewClient("territory", WithBaseURL(server.URL))

	record, err := client.Record(context.Background(), "GB")
	require.NoError(t, err)
	assert.Equal(t, "GB", record.Key)
	assert.Equal(t, 1, record.EntryNumber)

	item, err := record.Item()
	require.NoError(t, err)

	// Without a schema every field passes through uncoerced.
	v, err := item.Get("official-name")
	require.NoError(t, err)
	assert.Equal(t, "United Kingdom", v.Raw())

	v, err = item.Get("population")
	require.NoError(t, err)
	assert.Equal(t, "66000000", v.Raw())
}

func TestRecordNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient("territory", WithBaseURL(server.URL))

	_, err := client.Record(context.Background(), "ZZ")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestFilteredRecords(t *testing.T) {
	var requests int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Field and value become path segments of the records endpoint.
		require.Equal(t, "/records/phase/beta", r.URL.Path)
		atomic.AddInt32(&requests, 1)

		writeJSON(t, w, map[string]any{
			"t000": testRecord("t000", map[string]any{"territory": "t000", "phase": "beta"}),
			"t001": testRecord("t001", map[string]any{"territory": "t001", "phase": "beta"}),
		})
	}))
	defer server.Close()

	client := NewClient("territory", WithBaseURL(server.URL), WithPageSize(5))

	it := client.FilteredRecords(context.Background(), "phase", "beta")
	var keys []string
	for it.Next() {
		keys = append(keys, it.Record().Key)
	}
	require.NoError(t, it.Err())

	assert.Equal(t, []string{"t000", "t001"}, keys)
	assert.Equal(t, int32(1), atomic.LoadInt32(&requests))
}

func TestRecordEntries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/record/GB/entries", r.URL.Path)
		// Unpaginated: the whole history arrives in one response.
		assert.Empty(t, r.URL.RawQuery)

		var history []any
		for n := 1; n <= 2; n++ {
			history = append(history, map[string]any{
				"key":                "GB",
				"entry-number":       strconv.Itoa(n),
				"index-entry-number": strconv.Itoa(n),
				"entry-timestamp":    "2016-04-05T13:23:05Z",
				"item-hash":          []any{"sha-256:6b18693874513ba13da54d61aafa7cad0c8f5573f3431d6f1c04b07ddb27d6bb"},
			})
		}
		writeJSON(t, w, history)
	}))
	defer server.Close()

	client := NewClient("territory", WithBaseURL(server.URL))

	entries, err := client.RecordEntries(context.Background(), "GB")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].EntryNumber)
	assert.Equal(t, 2, entries[1].EntryNumber)
	assert.Equal(t, "GB", entries[0].Key)
}

func TestRecordEntriesNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient("territory", WithBaseURL(server.URL))

	_, err := client.RecordEntries(context.Background(), "ZZ")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestEntriesPagination(t *testing.T) {
	var requests int32
	totalEntries := 4
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/entries", r.URL.Path)
		atomic.AddInt32(&requests, 1)

		start, err := strconv.Atoi(r.URL.Query().Get("start"))
		require.NoError(t, err)
		limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
		require.NoError(t, err)

		var page []any
		for n := start; n < start+limit && n <= totalEntries; n++ {
			page = append(page, map[string]any{
				"key":                fmt.Sprintf("t%03d", n),
				"entry-number":       strconv.Itoa(n),
				"index-entry-number": strconv.Itoa(n),
				"entry-timestamp":    "2016-04-05T13:23:05Z",
				"item-hash":          []any{"sha-256:6b18693874513ba13da54d61aafa7cad0c8f5573f3431d6f1c04b07ddb27d6bb"},
			})
		}
		if page == nil {
			page = []any{}
		}
		writeJSON(t, w, page)
	}))
	defer server.Close()

	client := NewClient("territory", WithBaseURL(server.URL), WithPageSize(3))

	it := client.Entries(context.Background())
	var numbers []int
	for it.Next() {
		numbers = append(numbers, it.Entry().EntryNumber)
	}
	require.NoError(t, it.Err())

	assert.Equal(t, []int{1, 2, 3, 4}, numbers)
	assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
}

func TestEntry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/entry/6", r.URL.Path)
		writeJSON(t, w, []any{map[string]any{
			"key":                "GB",
			"entry-number":       "6",
			"index-entry-number": "6",
			"entry-timestamp":    "2016-04-05T13:23:05Z",
			"item-hash":          []any{"sha-256:6b18693874513ba13da54d61aafa7cad0c8f5573f3431d6f1c04b07ddb27d6bb"},
		}})
	}))
	defer server.Close()

	client := NewClient("territory", WithBaseURL(server.URL))

	entry, err := client.Entry(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, "GB", entry.Key)
	assert.Equal(t, 6, entry.EntryNumber)
	require.Len(t, entry.ItemHashes, 1)
}

func TestItemByHash(t *testing.T) {
	hash := "sha-256:6b18693874513ba13da54d61aafa7cad0c8f5573f3431d6f1c04b07ddb27d6bb"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/item/"+hash, r.URL.Path)
		writeJSON(t, w, map[string]any{"territory": "GB", "official-name": "United Kingdom"})
	}))
	defer server.Close()

	client := NewClient("territory", WithBaseURL(server.URL))

	item, err := client.ItemByHash(context.Background(), hash)
	require.NoError(t, err)

	v, err := item.Get("official-name")
	require.NoError(t, err)
	assert.Equal(t, "United Kingdom", v.Raw())
}

func TestInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/register", r.URL.Path)
		writeJSON(t, w, map[string]any{
			"domain":        "register.gov.uk",
			"total-records": 199,
			"total-entries": 208,
			"last-updated":  "2017-03-29T14:22:30Z",
			"register-record": map[string]any{
				"register": "territory",
				"fields":   []any{"territory", "official-name"},
				"phase":    "beta",
			},
		})
	}))
	defer server.Close()

	client := NewClient("territory", WithBaseURL(server.URL))

	info, err := client.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 199, info.TotalRecords)
	assert.Equal(t, "territory", info.Register)
}

func TestRequestHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "s3cret", r.Header.Get("X-Api-Key"))
		writeJSON(t, w, map[string]any{})
	}))
	defer server.Close()

	client := NewClient("territory", WithBaseURL(server.URL), WithAPIKey("s3cret"))

	_, err := client.AllRecords(context.Background())
	require.NoError(t, err)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("territory")
	assert.Equal(t, "territory", c.Name())
	assert.Equal(t, "https://territory.register.gov.uk", c.BaseURL())
	assert.Nil(t, c.Schema())

	c = NewClient("territory", WithBaseURL("http://localhost:8080/"))
	assert.Equal(t, "http://localhost:8080", c.BaseURL())
}

func TestWithTimeout(t *testing.T) {
	shared := &http.Client{}

	// The timeout applies regardless of option order.
	c := NewClient("territory", WithTimeout(5*time.Second), WithHTTPClient(shared))
	assert.Equal(t, 5*time.Second, c.hc.Timeout)

	c = NewClient("territory", WithHTTPClient(shared), WithTimeout(5*time.Second))
	assert.Equal(t, 5*time.Second, c.hc.Timeout)

	// The caller's client is never mutated.
	assert.Zero(t, shared.Timeout)

	// Non-positive timeouts are ignored.
	c = NewClient("territory", WithTimeout(0))
	assert.Equal(t, DefaultRequestTimeout, c.hc.Timeout)
}
