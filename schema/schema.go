/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"github.com/suparena/openregister/errors"
	"github.com/suparena/openregister/fieldtypes"
)

// FieldSpec is one resolved field: its declared datatype, cardinality and
// the description text published by the field register.
type FieldSpec struct {
	Name        string
	Datatype    string
	Cardinality fieldtypes.Cardinality
	Description string
}

// Unresolved is the first stage of discovery: a register name together with
// the field names its register record declares, before the field register
// has been consulted.
type Unresolved struct {
	Register string
	Fields   []string
}

// Resolved maps each declared field to its FieldSpec. It is immutable after
// construction; a client holding a Resolved schema never sees a field's type
// change during its lifetime.
type Resolved struct {
	register string
	order    []string
	fields   map[string]FieldSpec
}

// Resolve completes the pipeline against the field index built from the
// field register. Every declared field must be present in the index; a
// missing field is a metadata inconsistency upstream and fails fast rather
// than being silently dropped.
func (u Unresolved) Resolve(fieldIndex map[string]FieldSpec) (*Resolved, error) {
	r := &Resolved{
		register: u.Register,
		order:    make([]string, 0, len(u.Fields)),
		fields:   make(map[string]FieldSpec, len(u.Fields)),
	}
	for _, name := range u.Fields {
		spec, ok := fieldIndex[name]
		if !ok {
			return nil, errors.NewFieldUndefinedError(u.Register, name)
		}
		r.order = append(r.order, name)
		r.fields[name] = spec
	}
	return r, nil
}

// Register returns the name of the register this schema describes.
func (r *Resolved) Register() string { return r.register }

// Field looks up the spec for a declared field name.
func (r *Resolved) Field(name string) (FieldSpec, bool) {
	spec, ok := r.fields[name]
	return spec, ok
}

// Fields returns the field specs in declared order.
func (r *Resolved) Fields() []FieldSpec {
	out := make([]FieldSpec, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.fields[name])
	}
	return out
}

// Len returns the number of declared fields.
func (r *Resolved) Len() int { return len(r.order) }
