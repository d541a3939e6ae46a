/*
Package openregister is a client library for the GOV.UK Open Registers
service, reading registers, records, entries and items as typed objects.

The library follows a discover → resolve → read workflow:
  - Discover: the bootstrap "register" and "field" registers describe every
    register's fields, datatypes and cardinalities
  - Resolve: a register's declared field list becomes a resolved schema
  - Read: records and entries are fetched page by page and their items
    converted to typed values on access

Key Features:
  - Typed field access driven by the service's own schema vocabulary
  - Lazy, restartable pagination over records and entries
  - Open (untyped) mode for reading a register without discovery
  - Semantic error types for better error handling
  - Django model code generation from a resolved schema (modelgen)

Basic Usage:

	// Discover registers and build a typed client
	d := openregister.NewDiscovery()
	territories, _ := d.Register(ctx, "territory")

	// Iterate records with typed field access
	it := territories.Records(ctx)
	for it.Next() {
	    item, _ := it.Record().Item()
	    name, _ := item.Get("official-name")
	    fmt.Println(name.String())
	}
	if err := it.Err(); err != nil {
	    log.Fatal(err)
	}

	// Or read a register untyped, without discovery
	c := openregister.NewClient("territory")
	record, _ := c.Record(ctx, "GB")

The client is synchronous with blocking I/O and no internal caching of
register data; each Discovery owns one memoized schema resolution and
nothing is shared process-wide.
*/
package openregister
