/*
Package schema models register field schemas as an explicit two-step pipeline.

Discovery first reads a register's record from the bootstrap "register"
register, which yields an Unresolved schema: the register name plus its
declared field names. Resolving against the field index built from the
bootstrap "field" register produces a Resolved schema, the mapping every
typed accessor consults:

	u := schema.Unresolved{Register: "territory", Fields: []string{"territory", "official-name"}}
	resolved, err := u.Resolve(fieldIndex)

The order of the two bootstrap fetches is fixed: the field list is the
dependent input to the second step. A field declared by a register but
absent from the field register fails resolution with
errors.ErrFieldUndefined before any item of that register can be typed.
*/
package schema
