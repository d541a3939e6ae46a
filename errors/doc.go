/*
Package errors provides semantic error types for the openregister client.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound         = errors.New("not found")
	    ErrFieldUndefined   = errors.New("field not defined in field register")
	    ErrAttributeMissing = errors.New("attribute not present on item")
	    ErrInvalidValue     = errors.New("invalid value for datatype")
	    ErrUnexpectedStatus = errors.New("unexpected response status")
	)

Usage:

	// Check error type
	record, err := client.Record(ctx, "GB")
	if err != nil {
	    if errors.IsNotFound(err) {
	        // Handle not found case
	        return nil, fmt.Errorf("territory %s does not exist", "GB")
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewNotFoundError("record", "GB")
	err := errors.NewFieldUndefinedError("territory", "official-name")
	err := errors.NewConversionError("integer", "twelve", "not numeric")

ErrAttributeMissing deliberately differs from an empty value: an item that
carries a field with an empty string is present-but-empty, while an item that
never carried the field at all is reported as a missing attribute.

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
