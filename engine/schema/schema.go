package schema

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonschema"
	"github.com/mohae/deepcopy"
)

// -----------------------------------------------------------------------------
// Keywords
// -----------------------------------------------------------------------------

const (
	KeyType        = "type"
	KeyProperties  = "properties"
	KeyRequired    = "required"
	KeyTitle       = "title"
	KeyDescription = "description"
	KeyAllOf       = "allOf"
	KeyOneOf       = "oneOf"
	KeyID          = "$id"

	TypeObject = "object"
)

// -----------------------------------------------------------------------------
// Schema
// -----------------------------------------------------------------------------

type Schema map[string]any

func (s *Schema) String() string {
	bytes, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(bytes)
}

func (s *Schema) Compile() (*jsonschema.Schema, error) {
	if s == nil {
		return nil, nil
	}
	bytes, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile(bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return schema, nil
}

// Clone returns a deep copy of the schema. Nested maps decoded from YAML or JSON
// are copied as well, so the clone shares nothing with s.
func (s Schema) Clone() Schema {
	if s == nil {
		return nil
	}
	copied, ok := deepcopy.Copy(s).(Schema)
	if !ok {
		return nil
	}
	return copied
}

// -----------------------------------------------------------------------------
// Accessors
// -----------------------------------------------------------------------------

// Properties returns the "properties" keyword as a map. Decoded documents carry
// plain map[string]any values while built ones may carry Schema.
func (s Schema) Properties() map[string]any {
	switch props := s[KeyProperties].(type) {
	case map[string]any:
		return props
	case Schema:
		return props
	default:
		return nil
	}
}

// Required returns the "required" keyword in declaration order.
func (s Schema) Required() []string {
	switch required := s[KeyRequired].(type) {
	case []string:
		return required
	case []any:
		names := make([]string, 0, len(required))
		for _, item := range required {
			if name, ok := item.(string); ok {
				names = append(names, name)
			}
		}
		return names
	default:
		return nil
	}
}

// AllOf returns the "allOf" fragments. ok is false when the keyword is absent.
func (s Schema) AllOf() (fragments []Schema, ok bool) {
	raw, exists := s[KeyAllOf]
	if !exists || raw == nil {
		return nil, false
	}
	return asSchemas(raw), true
}

func (s Schema) Title() string {
	title, _ := s[KeyTitle].(string)
	return title
}

func asSchema(value any) Schema {
	switch v := value.(type) {
	case Schema:
		return v
	case map[string]any:
		return v
	case *Schema:
		if v == nil {
			return nil
		}
		return *v
	default:
		return nil
	}
}

func asSchemas(value any) []Schema {
	switch v := value.(type) {
	case []Schema:
		return v
	case []map[string]any:
		out := make([]Schema, 0, len(v))
		for _, item := range v {
			out = append(out, item)
		}
		return out
	case []any:
		out := make([]Schema, 0, len(v))
		for _, item := range v {
			if s := asSchema(item); s != nil {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
