/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package fieldtypes

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/suparena/openregister/errors"
)

// Datatype names from the register specification's datatype vocabulary.
// The vocabulary may grow; names outside this set are handled with the
// identity string conversion.
const (
	DatatypeString    = "string"
	DatatypeText      = "text"
	DatatypeInteger   = "integer"
	DatatypeDatetime  = "datetime"
	DatatypeTimestamp = "timestamp"
	DatatypeURL       = "url"
	DatatypeCurie     = "curie"
	DatatypeItemHash  = "item-hash"
)

// Cardinality says whether a field holds one value or an ordered list.
type Cardinality string

const (
	CardinalityOne  Cardinality = "1"
	CardinalityMany Cardinality = "n"
)

// Converter is a pure conversion from a raw JSON scalar to a typed Value.
type Converter func(raw any) (Value, error)

// ConvertString is the identity conversion; non-string scalars are stringified.
func ConvertString(raw any) (Value, error) {
	return StringValue(stringify(raw)), nil
}

// ConvertText converts to a Markdown-carrying string; nil becomes empty text.
func ConvertText(raw any) (Value, error) {
	if raw == nil {
		return TextValue(""), nil
	}
	return TextValue(stringify(raw)), nil
}

// ConvertInteger converts a raw numeric or numeric-string value; anything
// else fails with a conversion error at the point of typed access.
func ConvertInteger(raw any) (Value, error) {
	switch v := raw.(type) {
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Value{}, errors.NewConversionError(DatatypeInteger, v, "")
		}
		return IntegerValue(n), nil
	case float64:
		// encoding/json decodes all JSON numbers to float64
		if v != math.Trunc(v) {
			return Value{}, errors.NewConversionError(DatatypeInteger, stringify(v), "not integral")
		}
		return IntegerValue(int64(v)), nil
	case int:
		return IntegerValue(int64(v)), nil
	case int64:
		return IntegerValue(v), nil
	default:
		return Value{}, errors.NewConversionError(DatatypeInteger, stringify(raw), "not numeric")
	}
}

// ConvertDatetime converts the datetime datatype, keeping source precision.
func ConvertDatetime(raw any) (Value, error) {
	s, ok := raw.(string)
	if !ok {
		return Value{}, errors.NewConversionError(DatatypeDatetime, stringify(raw), "value must be a string")
	}
	d, err := ParseDatetime(s)
	if err != nil {
		return Value{}, err
	}
	return DatetimeValue(d), nil
}

// ConvertTimestamp converts the timestamp datatype.
func ConvertTimestamp(raw any) (Value, error) {
	s, ok := raw.(string)
	if !ok {
		return Value{}, errors.NewConversionError(DatatypeTimestamp, stringify(raw), "value must be a string")
	}
	ts, err := ParseTimestamp(s)
	if err != nil {
		return Value{}, err
	}
	return TimestampValue(ts), nil
}

// ConvertURL converts the url datatype; the value stays a marked string.
func ConvertURL(raw any) (Value, error) {
	s, ok := raw.(string)
	if !ok {
		return Value{}, errors.NewConversionError(DatatypeURL, stringify(raw), "value must be a string")
	}
	u, err := ParseURL(s)
	if err != nil {
		return Value{}, err
	}
	return URLValue(u), nil
}

// ConvertCurie converts the curie datatype.
func ConvertCurie(raw any) (Value, error) {
	s, ok := raw.(string)
	if !ok {
		return Value{}, errors.NewConversionError(DatatypeCurie, stringify(raw), "value must be a string")
	}
	c, err := ParseCurie(s)
	if err != nil {
		return Value{}, err
	}
	return CurieValue(c), nil
}

// ConvertItemHash converts the item-hash datatype.
func ConvertItemHash(raw any) (Value, error) {
	s, ok := raw.(string)
	if !ok {
		return Value{}, errors.NewConversionError(DatatypeItemHash, stringify(raw), "value must be a string")
	}
	h, err := ParseItemHash(s)
	if err != nil {
		return Value{}, err
	}
	return ItemHashValue(h), nil
}

// Apply runs a scalar converter under the field's cardinality. Multi-valued
// raw input may be a JSON list or a ";"-joined string; the result preserves
// source order, and empty input yields an empty list rather than a missing
// attribute.
func Apply(conv Converter, cardinality Cardinality, raw any) (Value, error) {
	if cardinality != CardinalityMany {
		return conv(raw)
	}

	var elems []any
	switch v := raw.(type) {
	case nil:
	case []any:
		elems = v
	case []string:
		elems = make([]any, len(v))
		for i, s := range v {
			elems[i] = s
		}
	case string:
		if v != "" {
			for _, part := range strings.Split(v, ";") {
				elems = append(elems, strings.TrimSpace(part))
			}
		}
	default:
		elems = []any{v}
	}

	out := make([]Value, 0, len(elems))
	for _, e := range elems {
		val, err := conv(e)
		if err != nil {
			return Value{}, err
		}
		out = append(out, val)
	}
	return ListValue(out), nil
}

func stringify(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
