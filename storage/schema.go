package storage

import (
	"github.com/invopop/jsonschema"
)

// MetadataSchema returns the JSON Schema describing perryconf.json.
// Unknown keys are allowed.
func MetadataSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		ExpandedStruct:            true,
		AllowAdditionalProperties: true,
	}
	s := r.Reflect(&Metadata{})
	s.Title = MetadataFileName
	s.Description = "Metadata file at the top of a perrydb storage root."
	return s
}
