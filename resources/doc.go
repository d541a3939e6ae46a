/*
Package resources holds the typed wrappers around register JSON documents.

The main types mirror the register data model:

  - Item: an immutable content-addressed field-value mapping with typed
    access through Get
  - Entry: an immutable change record referencing items by content hash
  - Record: the current state for one key, carrying exactly one item plus
    entry metadata
  - RegisterInfo: a register's own metadata document

Items convert lazily: Get applies the field's registered datatype converter
at access time, on every access, so wrappers stay stateless and safe to
share. An item constructed without a resolved schema is in open mode and
returns raw JSON values unchanged.
*/
package resources
