/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package fieldtypes

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/openregister/errors"
)

func TestParseDatetimeRoundTrip(t *testing.T) {
	// Truncated forms render back exactly as they were written.
	cases := []struct {
		value     string
		precision Precision
	}{
		{"2001", PrecisionYear},
		{"2001-01", PrecisionMonth},
		{"2001-01-31", PrecisionDay},
		{"2001-01-31T23:20:55Z", PrecisionSecond},
	}
	for _, c := range cases {
		d, err := ParseDatetime(c.value)
		require.NoError(t, err, c.value)
		assert.Equal(t, c.precision, d.Precision, c.value)
		assert.Equal(t, c.value, d.String(), c.value)
	}
}

func TestParseDatetimePadding(t *testing.T) {
	d, err := ParseDatetime("2016-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2016, time.April, 1, 0, 0, 0, 0, time.UTC), d.Time)
}

func TestParseDatetimeRejectsInvalid(t *testing.T) {
	for _, value := range []string{
		"",
		"20010",
		"2001-13",
		"2001-02-30",
		"2001-01-31T25:00:00Z",
		"not a date",
		"2001-1-3",
	} {
		_, err := ParseDatetime(value)
		require.Error(t, err, value)
		assert.True(t, errors.IsInvalidValue(err), value)
	}
}

func TestParseTimestamp(t *testing.T) {
	ts, err := ParseTimestamp("2016-04-05T13:23:05Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2016, time.April, 5, 13, 23, 5, 0, time.UTC), time.Time(ts).UTC())

	// Truncated forms are valid datetimes but not timestamps.
	_, err = ParseTimestamp("2016-04")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidValue(err))
}

func TestParseCurie(t *testing.T) {
	c, err := ParseCurie("territory:GB")
	require.NoError(t, err)
	assert.Equal(t, "territory", c.Prefix)
	assert.Equal(t, "GB", c.Reference)
	assert.Equal(t, "territory:GB", c.String())
	assert.Equal(t, "[territory:GB]", c.SafeFormat())

	c, err = ParseCurie("[charity:123456]")
	require.NoError(t, err)
	assert.Equal(t, "charity", c.Prefix)
	assert.Equal(t, "123456", c.Reference)

	for _, value := range []string{"", "nocolon", ":ref", "prefix:", "a:b:c"} {
		_, err := ParseCurie(value)
		assert.Error(t, err, value)
	}
}

func TestParseItemHash(t *testing.T) {
	const digest = "6b18693874513ba13da54d61aafa7cad0c8f5573f3431d6f1c04b07ddb27d6bb"
	h, err := ParseItemHash("sha-256:" + digest)
	require.NoError(t, err)
	assert.Equal(t, "sha-256", h.Algorithm)
	assert.Equal(t, digest, h.Digest)
	assert.Equal(t, "sha-256:"+digest, h.String())

	_, err = ParseItemHash("md5:abcdef")
	assert.Error(t, err)
	_, err = ParseItemHash("sha-256:short")
	assert.Error(t, err)
}

func TestConvertInteger(t *testing.T) {
	v, err := ConvertInteger("42")
	require.NoError(t, err)
	n, ok := v.Int()
	require.True(t, ok)
	assert.Equal(t, int64(42), n)

	// encoding/json numbers arrive as float64.
	v, err = ConvertInteger(float64(7))
	require.NoError(t, err)
	n, _ = v.Int()
	assert.Equal(t, int64(7), n)

	_, err = ConvertInteger(7.5)
	assert.Error(t, err)
	_, err = ConvertInteger("seven")
	assert.Error(t, err)
}

func TestApplyCardinalityMany(t *testing.T) {
	// Semicolon-joined strings split in order.
	v, err := Apply(ConvertString, CardinalityMany, "Briton;British citizen")
	require.NoError(t, err)
	list, ok := v.List()
	require.True(t, ok)
	require.Len(t, list, 2)
	assert.Equal(t, "Briton", list[0].String())
	assert.Equal(t, "British citizen", list[1].String())

	// JSON lists pass through element by element.
	v, err = Apply(ConvertString, CardinalityMany, []any{"a", "b"})
	require.NoError(t, err)
	list, _ = v.List()
	assert.Len(t, list, 2)

	// An empty value is an empty list, not a missing attribute.
	v, err = Apply(ConvertString, CardinalityMany, "")
	require.NoError(t, err)
	list, ok = v.List()
	require.True(t, ok)
	assert.Empty(t, list)

	v, err = Apply(ConvertString, CardinalityMany, nil)
	require.NoError(t, err)
	list, _ = v.List()
	assert.Empty(t, list)

	// A failing element fails the whole field.
	_, err = Apply(ConvertInteger, CardinalityMany, "1;two;3")
	assert.Error(t, err)
}

func TestApplyCardinalityOne(t *testing.T) {
	v, err := Apply(ConvertString, CardinalityOne, "GB")
	require.NoError(t, err)
	assert.False(t, v.IsList())
	assert.Equal(t, "GB", v.String())
}

func TestValueString(t *testing.T) {
	d, err := ParseDatetime("2016-04")
	require.NoError(t, err)
	assert.Equal(t, "2016-04", DatetimeValue(d).String())

	assert.Equal(t, "42", IntegerValue(42).String())
	assert.Equal(t, "a;b", ListValue([]Value{StringValue("a"), StringValue("b")}).String())
	assert.Equal(t, "", Value{}.String())
}

func TestValueMarshalJSON(t *testing.T) {
	d, err := ParseDatetime("2016-04")
	require.NoError(t, err)

	encoded, err := json.Marshal(map[string]Value{
		"n":    IntegerValue(42),
		"s":    StringValue("GB"),
		"d":    DatetimeValue(d),
		"list": ListValue([]Value{StringValue("a"), StringValue("b")}),
		"raw":  RawValue(map[string]any{"k": "v"}),
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, float64(42), decoded["n"])
	assert.Equal(t, "GB", decoded["s"])
	assert.Equal(t, "2016-04", decoded["d"])
	assert.Equal(t, []any{"a", "b"}, decoded["list"])
	assert.Equal(t, map[string]any{"k": "v"}, decoded["raw"])
}
