package action

import (
	"context"
	"maps"

	"github.com/compozy/actionschema/engine/schema"
)

// OutputUnionID is the $id given to the union built over several success schemas.
const OutputUnionID = "Output"

// Schemas holds the derived input and output schemas of an action. A nil field
// means the action has no input or no declared output.
type Schemas struct {
	Input  *schema.Schema `json:"input,omitempty"  yaml:"input,omitempty"`
	Output *schema.Schema `json:"output,omitempty" yaml:"output,omitempty"`
}

// GenerateInputOutputSchemas validates spec and derives its input and output
// schemas titled "<name>Input" and "<name>Output". Schemas taken over from spec
// are copied before they are titled, so spec is never modified.
func GenerateInputOutputSchemas(ctx context.Context, spec *Spec, name string) (*Schemas, error) {
	if err := spec.Validate(ctx); err != nil {
		return nil, newSpecError(name, err)
	}
	result := &Schemas{}
	if input, ok := BuildInputSchema(&spec.Input); ok {
		input[schema.KeyTitle] = name + "Input"
		result.Input = &input
	}
	if output, ok := BuildOutputSchema(spec.Output); ok {
		output = output.Clone()
		output[schema.KeyTitle] = name + "Output"
		result.Output = &output
	}
	return result, nil
}

// BuildInputSchema merges the request body and parameters into one object
// schema. It reports false when the action takes neither.
//
// Body properties are inserted first and parameters after them, so a parameter
// replaces a body property of the same name. Required names keep source order
// (body first, then required parameters) and are not deduplicated.
func BuildInputSchema(in *Input) (schema.Schema, bool) {
	if in == nil || (len(in.Parameters) == 0 && in.Body == nil) {
		return nil, false
	}
	properties := map[string]any{}
	required := []string{}
	if in.Body != nil {
		body := *in.Body
		if fragments, ok := body.AllOf(); ok {
			body = schema.Combine(fragments)
		}
		maps.Copy(properties, body.Properties())
		required = append(required, body.Required()...)
	}
	if len(in.Parameters) > 0 {
		for i := range in.Parameters {
			properties[in.Parameters[i].Name] = in.Parameters[i].PropertySchema()
		}
		required = append(required, in.RequiredNames()...)
	}
	return schema.Schema{
		schema.KeyType:       schema.TypeObject,
		schema.KeyProperties: properties,
		schema.KeyRequired:   required,
	}, true
}

// BuildOutputSchema returns the schema of the single success response, or a
// union over all success responses when there are zero or several. It reports
// false when the action declares no output at all.
func BuildOutputSchema(out *Output) (schema.Schema, bool) {
	if out == nil {
		return nil, false
	}
	successes := out.SuccessSchemas()
	if len(successes) == 1 {
		return successes[0], true
	}
	return schema.NewUnion(OutputUnionID, successes), true
}
