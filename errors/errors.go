/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a register, record, entry or item is not found
	ErrNotFound = errors.New("not found")

	// ErrFieldUndefined is returned when a register declares a field that the
	// field register does not define
	ErrFieldUndefined = errors.New("field not defined in field register")

	// ErrAttributeMissing is returned when an item does not carry a field at all,
	// as opposed to carrying it with an empty value
	ErrAttributeMissing = errors.New("attribute not present on item")

	// ErrInvalidValue is returned when a raw value cannot be converted to its
	// declared datatype
	ErrInvalidValue = errors.New("invalid value for datatype")

	// ErrUnexpectedStatus is returned when the register service responds with a
	// status the client cannot interpret
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// NotFoundError represents an error when a named resource is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// FieldUndefinedError represents a metadata inconsistency: a register's
// declared field list references a field the field register does not define
type FieldUndefinedError struct {
	Register string
	Field    string
}

func (e *FieldUndefinedError) Error() string {
	return fmt.Sprintf("register %q declares field %q which is not defined in the field register", e.Register, e.Field)
}

func (e *FieldUndefinedError) Is(target error) bool {
	return target == ErrFieldUndefined
}

// AttributeMissingError represents access to a field that an item does not carry
type AttributeMissingError struct {
	Field string
}

func (e *AttributeMissingError) Error() string {
	return fmt.Sprintf("item has no field %q", e.Field)
}

func (e *AttributeMissingError) Is(target error) bool {
	return target == ErrAttributeMissing
}

// ConversionError represents a raw value that failed datatype conversion
type ConversionError struct {
	Datatype string
	Value    string
	Reason   string
}

func (e *ConversionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%q is not a valid %s: %s", e.Value, e.Datatype, e.Reason)
	}
	return fmt.Sprintf("%q is not a valid %s", e.Value, e.Datatype)
}

func (e *ConversionError) Is(target error) bool {
	return target == ErrInvalidValue
}

// StatusError represents a non-2xx, non-404 response from the register service
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request %s returned status %d", e.URL, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resourceType, key string) error {
	return &NotFoundError{Type: resourceType, Key: key}
}

// NewFieldUndefinedError creates a new FieldUndefinedError
func NewFieldUndefinedError(register, field string) error {
	return &FieldUndefinedError{Register: register, Field: field}
}

// NewAttributeMissingError creates a new AttributeMissingError
func NewAttributeMissingError(field string) error {
	return &AttributeMissingError{Field: field}
}

// NewConversionError creates a new ConversionError
func NewConversionError(datatype, value, reason string) error {
	return &ConversionError{Datatype: datatype, Value: value, Reason: reason}
}

// NewStatusError creates a new StatusError
func NewStatusError(url string, statusCode int) error {
	return &StatusError{URL: url, StatusCode: statusCode}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsFieldUndefined checks if an error is a field undefined error
func IsFieldUndefined(err error) bool {
	return errors.Is(err, ErrFieldUndefined)
}

// IsAttributeMissing checks if an error is an attribute missing error
func IsAttributeMissing(err error) bool {
	return errors.Is(err, ErrAttributeMissing)
}

// IsInvalidValue checks if an error is a value conversion error
func IsInvalidValue(err error) bool {
	return errors.Is(err, ErrInvalidValue)
}

// IsUnexpectedStatus checks if an error is an unexpected status error
func IsUnexpectedStatus(err error) bool {
	return errors.Is(err, ErrUnexpectedStatus)
}
