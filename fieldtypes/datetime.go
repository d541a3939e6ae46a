/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package fieldtypes

import (
	"regexp"
	"strconv"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/openregister/errors"
)

// The datetime datatype allows truncated forms ("2001", "2001-01",
// "2001-01-31") as well as full date-times with an optional trailing Z.
// The timestamp datatype used by entry metadata is always the full
// second-precision UTC form.
var (
	datetimePattern  = regexp.MustCompile(`^(\d{4})(?:-(\d{2})(?:-(\d{2})(?:T(\d{2})(?::(\d{2})(?::(\d{2})Z?)?)?)?)?)?Z?$`)
	timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`)
)

const timestampLayout = "2006-01-02T15:04:05Z"

// Precision records how much of a Datetime was actually specified by the source.
type Precision int

const (
	PrecisionYear Precision = iota
	PrecisionMonth
	PrecisionDay
	PrecisionSecond
)

// Datetime is a UTC point in time together with the precision the register
// declared it at. Truncated forms are padded with the lowest valid component
// (January, the 1st, midnight) but render back at their source precision.
type Datetime struct {
	Time      time.Time
	Precision Precision
}

// ParseDatetime parses the datetime datatype, e.g. "2001", "2001-01",
// "2001-01-31" or "2001-01-31T23:20:55Z".
func ParseDatetime(value string) (Datetime, error) {
	m := datetimePattern.FindStringSubmatch(value)
	if m == nil {
		return Datetime{}, errors.NewConversionError("datetime", value, "")
	}

	parts := make([]int, 6)
	precision := PrecisionYear
	for i := 1; i <= 6; i++ {
		if m[i] == "" {
			break
		}
		parts[i-1], _ = strconv.Atoi(m[i])
		switch i {
		case 2:
			precision = PrecisionMonth
		case 3:
			precision = PrecisionDay
		case 4, 5, 6:
			precision = PrecisionSecond
		}
	}

	year, month, day := parts[0], parts[1], parts[2]
	if month == 0 {
		month = 1
	}
	if day == 0 {
		day = 1
	}
	t := time.Date(year, time.Month(month), day, parts[3], parts[4], parts[5], 0, time.UTC)
	// time.Date normalises out-of-range components (2001-13 becomes 2002-01),
	// which must be rejected rather than silently shifted.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day ||
		t.Hour() != parts[3] || t.Minute() != parts[4] || t.Second() != parts[5] {
		return Datetime{}, errors.NewConversionError("datetime", value, "")
	}

	return Datetime{Time: t, Precision: precision}, nil
}

// String renders the datetime at its source precision.
func (d Datetime) String() string {
	switch d.Precision {
	case PrecisionYear:
		return d.Time.Format("2006")
	case PrecisionMonth:
		return d.Time.Format("2006-01")
	case PrecisionDay:
		return d.Time.Format("2006-01-02")
	default:
		return d.Time.Format(timestampLayout)
	}
}

// ParseTimestamp parses the timestamp datatype, e.g. "2001-01-31T23:20:55Z".
func ParseTimestamp(value string) (strfmt.DateTime, error) {
	if !timestampPattern.MatchString(value) {
		return strfmt.DateTime{}, errors.NewConversionError("timestamp", value, "")
	}
	ts, err := strfmt.ParseDateTime(value)
	if err != nil {
		return strfmt.DateTime{}, errors.NewConversionError("timestamp", value, err.Error())
	}
	return ts, nil
}
