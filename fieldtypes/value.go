/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package fieldtypes

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
)

// Kind discriminates the payload carried by a Value.
type Kind int

const (
	// KindRaw carries the undecoded JSON value; produced in open (schema-less) mode.
	KindRaw Kind = iota
	KindString
	KindText
	KindInteger
	KindDatetime
	KindTimestamp
	KindURL
	KindCurie
	KindItemHash
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindString:
		return "string"
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindDatetime:
		return "datetime"
	case KindTimestamp:
		return "timestamp"
	case KindURL:
		return "url"
	case KindCurie:
		return "curie"
	case KindItemHash:
		return "item-hash"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a tagged union holding one converted field value: a typed scalar
// or, for multi-valued fields, an ordered list of typed scalars. The zero
// Value is a raw value holding nil.
type Value struct {
	kind Kind
	v    any
}

// RawValue wraps an undecoded JSON value without any type coercion.
func RawValue(raw any) Value { return Value{kind: KindRaw, v: raw} }

// StringValue wraps a plain string.
func StringValue(s string) Value { return Value{kind: KindString, v: s} }

// TextValue wraps a Markdown-carrying string.
func TextValue(s string) Value { return Value{kind: KindText, v: s} }

// IntegerValue wraps an integer.
func IntegerValue(n int64) Value { return Value{kind: KindInteger, v: n} }

// DatetimeValue wraps a possibly-truncated datetime.
func DatetimeValue(d Datetime) Value { return Value{kind: KindDatetime, v: d} }

// TimestampValue wraps a full UTC timestamp.
func TimestampValue(ts strfmt.DateTime) Value { return Value{kind: KindTimestamp, v: ts} }

// URLValue wraps a normalised URL.
func URLValue(u strfmt.URI) Value { return Value{kind: KindURL, v: u} }

// CurieValue wraps a compact URL reference.
func CurieValue(c Curie) Value { return Value{kind: KindCurie, v: c} }

// ItemHashValue wraps a content hash reference.
func ItemHashValue(h ItemHash) Value { return Value{kind: KindItemHash, v: h} }

// ListValue wraps an ordered sequence of scalar values.
func ListValue(vs []Value) Value { return Value{kind: KindList, v: vs} }

// Kind reports which member of the union the Value holds.
func (v Value) Kind() Kind { return v.kind }

// IsList reports whether the Value holds an ordered sequence.
func (v Value) IsList() bool { return v.kind == KindList }

// Raw returns the underlying payload without type information.
func (v Value) Raw() any { return v.v }

// Int returns the integer payload, if the Value holds one.
func (v Value) Int() (int64, bool) {
	n, ok := v.v.(int64)
	return n, ok && v.kind == KindInteger
}

// Datetime returns the datetime payload, if the Value holds one.
func (v Value) Datetime() (Datetime, bool) {
	d, ok := v.v.(Datetime)
	return d, ok && v.kind == KindDatetime
}

// Timestamp returns the timestamp payload, if the Value holds one.
func (v Value) Timestamp() (strfmt.DateTime, bool) {
	ts, ok := v.v.(strfmt.DateTime)
	return ts, ok && v.kind == KindTimestamp
}

// URL returns the URL payload, if the Value holds one.
func (v Value) URL() (strfmt.URI, bool) {
	u, ok := v.v.(strfmt.URI)
	return u, ok && v.kind == KindURL
}

// Curie returns the CURIE payload, if the Value holds one.
func (v Value) Curie() (Curie, bool) {
	c, ok := v.v.(Curie)
	return c, ok && v.kind == KindCurie
}

// ItemHash returns the item hash payload, if the Value holds one.
func (v Value) ItemHash() (ItemHash, bool) {
	h, ok := v.v.(ItemHash)
	return h, ok && v.kind == KindItemHash
}

// List returns the ordered sequence payload, if the Value holds one.
func (v Value) List() ([]Value, bool) {
	vs, ok := v.v.([]Value)
	return vs, ok && v.kind == KindList
}

// String renders the value in its register wire form.
func (v Value) String() string {
	switch v.kind {
	case KindString, KindText:
		return v.v.(string)
	case KindInteger:
		return strconv.FormatInt(v.v.(int64), 10)
	case KindDatetime:
		return v.v.(Datetime).String()
	case KindTimestamp:
		return time.Time(v.v.(strfmt.DateTime)).UTC().Format(timestampLayout)
	case KindURL:
		return string(v.v.(strfmt.URI))
	case KindCurie:
		return v.v.(Curie).String()
	case KindItemHash:
		return v.v.(ItemHash).String()
	case KindList:
		parts := make([]string, 0, len(v.v.([]Value)))
		for _, e := range v.v.([]Value) {
			parts = append(parts, e.String())
		}
		return strings.Join(parts, ";")
	default:
		if v.v == nil {
			return ""
		}
		return fmt.Sprint(v.v)
	}
}

// MarshalJSON encodes the value the way register fixtures expect: scalars in
// their wire form, integers as numbers, lists as arrays, raw values verbatim.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindRaw:
		return json.Marshal(v.v)
	case KindInteger:
		return json.Marshal(v.v.(int64))
	case KindList:
		return json.Marshal(v.v.([]Value))
	default:
		return json.Marshal(v.String())
	}
}
