package schema

import "maps"

// Combine collapses fragments into a single object schema. Properties are
// unioned with later fragments overwriting earlier ones on the same name, and
// required lists are concatenated in fragment order without deduplication.
func Combine(fragments []Schema) Schema {
	properties := map[string]any{}
	required := []string{}
	for _, fragment := range fragments {
		maps.Copy(properties, fragment.Properties())
		required = append(required, fragment.Required()...)
	}
	return Schema{
		KeyType:       TypeObject,
		KeyProperties: properties,
		KeyRequired:   required,
	}
}

// NewUnion builds a union node listing schemas as plain alternatives under oneOf.
// The union has no discriminant property; an empty list yields an empty oneOf.
func NewUnion(id string, schemas []Schema) Schema {
	alternatives := make([]Schema, len(schemas))
	copy(alternatives, schemas)
	return Schema{
		KeyID:    id,
		KeyOneOf: alternatives,
	}
}
