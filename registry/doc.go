/*
Package registry manages datatype registration for the openregister client.

The registry system enables:
  - Resolution of declared datatype names to conversion functions
  - Forward compatibility when the datatype vocabulary grows
  - Recording datatype descriptions discovered from the datatype register

Datatype Registry:
Maps datatype names to scalar converters; the built-in register vocabulary
is registered by this package's init:

	conv, err := registry.GetConverter("integer")
	if err != nil {
	    conv = fieldtypes.ConvertString // unknown datatypes pass through
	}

Description Registry:
Holds the published description text per datatype name, populated during
register discovery:

	registry.RegisterDescription("curie", "A compact URI.")

The description registry is thread-safe. The datatype registry should be
populated during initialization, typically in init() functions.
*/
package registry
