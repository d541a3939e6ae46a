/*
Package fieldtypes maps register field datatypes onto typed Go values.

A register field declares a datatype name (string, integer, datetime, url,
curie, item-hash, ...) and a cardinality ("1" for a single value, "n" for an
ordered list). This package provides the pure conversion functions from raw
JSON scalars to typed values, and the Value tagged union that carries the
result:

	conv := fieldtypes.ConvertDatetime
	v, err := fieldtypes.Apply(conv, fieldtypes.CardinalityOne, "2020-01-01")
	d, _ := v.Datetime() // calendar date, day precision

Design points:

  - Conversions are lazy and stateless: they run at the point of typed
    access, never at fetch time, and malformed values fail there with an
    errors.ConversionError.
  - Multi-valued input may arrive as a JSON list or a ";"-joined string.
    Empty input converts to an empty list, which is distinct from a missing
    attribute.
  - The datetime datatype keeps its source precision: "2001", "2001-01",
    "2001-01-31" and full date-times all round-trip through Datetime.String.
  - Unknown datatype names are not an error; callers fall back to
    ConvertString so the vocabulary can grow without breaking clients.

Timestamps and URLs reuse the go-openapi strfmt types (strfmt.DateTime,
strfmt.URI) so they compose with generated API models.
*/
package fieldtypes
