/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package resources

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/openregister/errors"
	"github.com/suparena/openregister/fieldtypes"
	"github.com/suparena/openregister/registry"
	"github.com/suparena/openregister/schema"
)

// Item is an immutable content-addressed field-value mapping. Typed access
// goes through Get, which consults the resolved schema the item was built
// with; an item built without a schema ("open" mode) hands back raw values.
type Item struct {
	data   map[string]any
	schema *schema.Resolved
}

// NewItem wraps a decoded JSON object. The map is copied so later mutation
// of the source cannot leak into the item. A nil resolved schema selects
// open mode.
func NewItem(data map[string]any, resolved *schema.Resolved) Item {
	copied := make(map[string]any, len(data))
	for k, v := range data {
		copied[k] = v
	}
	return Item{data: copied, schema: resolved}
}

// Get converts the named field's raw value using its resolved datatype and
// cardinality. Conversion happens on every call; the item itself stays
// stateless. A field the item does not carry at all fails with
// errors.ErrAttributeMissing, which is distinct from a present-but-empty
// value. Fields outside the schema, and all fields in open mode, pass
// through as raw values.
func (it Item) Get(field string) (fieldtypes.Value, error) {
	raw, ok := it.data[field]
	if !ok {
		return fieldtypes.Value{}, errors.NewAttributeMissingError(field)
	}
	if it.schema == nil {
		return fieldtypes.RawValue(raw), nil
	}
	spec, ok := it.schema.Field(field)
	if !ok {
		return fieldtypes.RawValue(raw), nil
	}
	conv, err := registry.GetConverter(spec.Datatype)
	if err != nil {
		// Unknown datatype: the vocabulary may grow, keep the string form.
		conv = fieldtypes.ConvertString
	}
	return fieldtypes.Apply(conv, spec.Cardinality, raw)
}

// Raw returns the undecoded value for a field and whether the item carries it.
func (it Item) Raw(field string) (any, bool) {
	v, ok := it.data[field]
	return v, ok
}

// Fields returns the field names the item carries, sorted.
func (it Item) Fields() []string {
	names := make([]string, 0, len(it.data))
	for name := range it.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of fields the item carries.
func (it Item) Len() int { return len(it.data) }

// IsCurrent reports whether the item is in effect at the given moment,
// judged by its start-date and end-date fields. Boundaries keep their source
// precision: a date-level boundary bounds whole days, so the moment is
// truncated to its UTC calendar date before comparing against it. An item
// carrying neither field is always current; an empty date value counts as
// absent.
func (it Item) IsCurrent(now time.Time) (bool, error) {
	start, hasStart, err := it.dateBoundary("start-date")
	if err != nil {
		return false, err
	}
	end, hasEnd, err := it.dateBoundary("end-date")
	if err != nil {
		return false, err
	}

	current := true
	if hasStart {
		current = current && !momentAt(now, start.Precision).Before(start.Time)
	}
	if hasEnd {
		current = current && !momentAt(now, end.Precision).After(end.Time)
	}
	return current, nil
}

// dateBoundary reads a start-date or end-date field as a Datetime. Raw and
// string values (open mode, or schemas typing the field as a plain string)
// are parsed on the spot.
func (it Item) dateBoundary(field string) (fieldtypes.Datetime, bool, error) {
	v, err := it.Get(field)
	if err != nil {
		if errors.IsAttributeMissing(err) {
			return fieldtypes.Datetime{}, false, nil
		}
		return fieldtypes.Datetime{}, false, err
	}
	if d, ok := v.Datetime(); ok {
		return d, true, nil
	}
	s := v.String()
	if s == "" {
		return fieldtypes.Datetime{}, false, nil
	}
	d, err := fieldtypes.ParseDatetime(s)
	if err != nil {
		return fieldtypes.Datetime{}, false, fmt.Errorf("%s: %w", field, err)
	}
	return d, true, nil
}

func momentAt(now time.Time, p fieldtypes.Precision) time.Time {
	now = now.UTC()
	if p == fieldtypes.PrecisionSecond {
		return now.Truncate(time.Second)
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Entry is an immutable historical change record for a key, referencing its
// items by content hash.
type Entry struct {
	Key              string
	EntryNumber      int
	IndexEntryNumber int
	EntryTimestamp   strfmt.DateTime
	ItemHashes       []fieldtypes.ItemHash
}

// Record is the current state of one register entity: the latest item plus
// entry metadata.
type Record struct {
	Key              string
	EntryNumber      int
	IndexEntryNumber int
	EntryTimestamp   strfmt.DateTime
	Items            []Item
}

// Item returns the record's single item. The records endpoint always carries
// exactly one; anything else is a malformed response.
func (r Record) Item() (Item, error) {
	if len(r.Items) != 1 {
		return Item{}, fmt.Errorf("record %q does not contain exactly one item (got %d)", r.Key, len(r.Items))
	}
	return r.Items[0], nil
}

// IsCurrent reports whether the record's item is in effect at the given moment.
func (r Record) IsCurrent(now time.Time) (bool, error) {
	item, err := r.Item()
	if err != nil {
		return false, err
	}
	return item.IsCurrent(now)
}

// RegisterInfo is the register's own metadata document, merged from the
// top-level counters and the nested register-record block.
type RegisterInfo struct {
	TotalRecords int
	TotalEntries int
	LastUpdated  strfmt.DateTime
	Domain       string

	Register    string
	Fields      []string
	Description string
	Phase       string
	Registry    string
	Copyright   string
}

// ParseEntry decodes one entry object from the entries endpoint.
func ParseEntry(m map[string]any) (Entry, error) {
	e := Entry{Key: stringFrom(m["key"])}

	var err error
	if e.EntryNumber, err = intFrom(m["entry-number"]); err != nil {
		return Entry{}, fmt.Errorf("entry-number: %w", err)
	}
	if e.IndexEntryNumber, err = intFrom(m["index-entry-number"]); err != nil {
		return Entry{}, fmt.Errorf("index-entry-number: %w", err)
	}
	if e.EntryTimestamp, err = timestampFrom(m["entry-timestamp"]); err != nil {
		return Entry{}, err
	}

	for _, raw := range listFrom(m["item-hash"]) {
		s, ok := raw.(string)
		if !ok {
			return Entry{}, fmt.Errorf("item-hash: unexpected element %T", raw)
		}
		h, err := fieldtypes.ParseItemHash(s)
		if err != nil {
			return Entry{}, err
		}
		e.ItemHashes = append(e.ItemHashes, h)
	}
	return e, nil
}

// ParseRecord decodes one record object from the records endpoint. The
// resolved schema (nil in open mode) is threaded into the record's items.
func ParseRecord(m map[string]any, resolved *schema.Resolved) (Record, error) {
	r := Record{Key: stringFrom(m["key"])}

	var err error
	if r.EntryNumber, err = intFrom(m["entry-number"]); err != nil {
		return Record{}, fmt.Errorf("entry-number: %w", err)
	}
	if r.IndexEntryNumber, err = intFrom(m["index-entry-number"]); err != nil {
		return Record{}, fmt.Errorf("index-entry-number: %w", err)
	}
	if r.EntryTimestamp, err = timestampFrom(m["entry-timestamp"]); err != nil {
		return Record{}, err
	}

	for _, raw := range listFrom(m["item"]) {
		obj, ok := raw.(map[string]any)
		if !ok {
			return Record{}, fmt.Errorf("item: unexpected element %T", raw)
		}
		r.Items = append(r.Items, NewItem(obj, resolved))
	}
	return r, nil
}

// ParseRegisterInfo decodes the register metadata document.
func ParseRegisterInfo(m map[string]any) (RegisterInfo, error) {
	info := RegisterInfo{Domain: stringFrom(m["domain"])}

	var err error
	if info.TotalRecords, err = intFrom(m["total-records"]); err != nil {
		return RegisterInfo{}, fmt.Errorf("total-records: %w", err)
	}
	if info.TotalEntries, err = intFrom(m["total-entries"]); err != nil {
		return RegisterInfo{}, fmt.Errorf("total-entries: %w", err)
	}
	if info.LastUpdated, err = timestampFrom(m["last-updated"]); err != nil {
		return RegisterInfo{}, err
	}

	rr, ok := m["register-record"].(map[string]any)
	if !ok {
		return RegisterInfo{}, fmt.Errorf("register metadata has no register-record block")
	}
	info.Register = stringFrom(rr["register"])
	info.Description = stringFrom(rr["text"])
	info.Phase = stringFrom(rr["phase"])
	info.Registry = stringFrom(rr["registry"])
	info.Copyright = stringFrom(rr["copyright"])
	for _, f := range listFrom(rr["fields"]) {
		info.Fields = append(info.Fields, stringFrom(f))
	}
	return info, nil
}

// Decoding helpers. encoding/json hands back float64 for all numbers, but
// the service delivers some numeric metadata as strings, so both forms are
// accepted.

func intFrom(v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return int(n), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("unexpected number type %T", v)
	}
}

func stringFrom(v any) string {
	s, _ := v.(string)
	return s
}

func listFrom(v any) []any {
	switch l := v.(type) {
	case nil:
		return nil
	case []any:
		return l
	default:
		return []any{v}
	}
}

func timestampFrom(v any) (strfmt.DateTime, error) {
	s := stringFrom(v)
	if s == "" {
		return strfmt.DateTime{}, nil
	}
	return fieldtypes.ParseTimestamp(s)
}
