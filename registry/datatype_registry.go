package registry

import (
	"fmt"

	"github.com/suparena/openregister/fieldtypes"
)

// datatypeRegistry holds the mapping from a datatype name (like "string",
// "integer", "curie") to its scalar conversion function.
var datatypeRegistry = make(map[string]fieldtypes.Converter)

// RegisterDatatype registers a converter for a given datatype name.
// If a converter is already registered for the name, it panics to prevent
// accidental overrides.
func RegisterDatatype(name string, conv fieldtypes.Converter) {
	if _, exists := datatypeRegistry[name]; exists {
		panic(fmt.Sprintf("datatype registry: datatype %q already registered", name))
	}
	datatypeRegistry[name] = conv
}

// GetConverter returns the registered converter for the given datatype name.
// If no converter is registered, it returns an error; callers that want the
// forward-compatible behaviour fall back to fieldtypes.ConvertString.
func GetConverter(name string) (fieldtypes.Converter, error) {
	conv, ok := datatypeRegistry[name]
	if !ok {
		return nil, fmt.Errorf("datatype registry: no converter registered for datatype %q", name)
	}
	return conv, nil
}

func init() {
	RegisterDatatype(fieldtypes.DatatypeString, fieldtypes.ConvertString)
	RegisterDatatype(fieldtypes.DatatypeText, fieldtypes.ConvertText)
	RegisterDatatype(fieldtypes.DatatypeInteger, fieldtypes.ConvertInteger)
	RegisterDatatype(fieldtypes.DatatypeDatetime, fieldtypes.ConvertDatetime)
	RegisterDatatype(fieldtypes.DatatypeTimestamp, fieldtypes.ConvertTimestamp)
	RegisterDatatype(fieldtypes.DatatypeURL, fieldtypes.ConvertURL)
	RegisterDatatype(fieldtypes.DatatypeCurie, fieldtypes.ConvertCurie)
	RegisterDatatype(fieldtypes.DatatypeItemHash, fieldtypes.ConvertItemHash)
}
