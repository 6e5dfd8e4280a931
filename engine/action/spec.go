package action

import (
	"context"
	"errors"
	"fmt"

	"github.com/gosimple/slug"

	"github.com/compozy/actionschema/engine/schema"
)

// Parameter describes a single named input of an action, such as a path or query parameter.
type Parameter struct {
	Name        string         `json:"name"                  yaml:"name"                  validate:"required"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool           `json:"required,omitempty"    yaml:"required,omitempty"`
	Schema      *schema.Schema `json:"schema"                yaml:"schema"                validate:"required"`
}

// PropertySchema returns the parameter schema as it appears under the input
// properties. The parameter description always replaces whatever description
// the schema declared, including removing it when the parameter has none.
func (p *Parameter) PropertySchema() schema.Schema {
	var property schema.Schema
	if p.Schema != nil {
		property = p.Schema.Clone()
	}
	if property == nil {
		property = schema.Schema{}
	}
	if p.Description != "" {
		property[schema.KeyDescription] = p.Description
	} else {
		delete(property, schema.KeyDescription)
	}
	return property
}

type Input struct {
	Parameters []Parameter    `json:"parameters,omitempty" yaml:"parameters,omitempty" validate:"dive"`
	Body       *schema.Schema `json:"body,omitempty"       yaml:"body,omitempty"`
}

// RequiredNames returns the names of required parameters in declaration order.
func (in *Input) RequiredNames() []string {
	names := make([]string, 0, len(in.Parameters))
	for i := range in.Parameters {
		if in.Parameters[i].Required {
			names = append(names, in.Parameters[i].Name)
		}
	}
	return names
}

// Response is one possible outcome of an action.
type Response struct {
	Name    string         `json:"name,omitempty"   yaml:"name,omitempty"`
	Success bool           `json:"success"          yaml:"success"`
	Schema  *schema.Schema `json:"schema,omitempty" yaml:"schema,omitempty" validate:"required_if=Success true"`
}

type Output struct {
	Responses []Response `json:"responses" yaml:"responses" validate:"dive"`
}

// SuccessSchemas returns the schemas of every success response, in response order.
func (out *Output) SuccessSchemas() []schema.Schema {
	schemas := make([]schema.Schema, 0, len(out.Responses))
	for i := range out.Responses {
		r := &out.Responses[i]
		if !r.Success || r.Schema == nil {
			continue
		}
		schemas = append(schemas, *r.Schema)
	}
	return schemas
}

// Spec is the operation descriptor the input and output schemas are derived from.
type Spec struct {
	Input  Input   `json:"input"            yaml:"input"`
	Output *Output `json:"output,omitempty" yaml:"output,omitempty"`
}

// Validate checks the spec against the shape the schema builders rely on.
func (s *Spec) Validate(ctx context.Context) error {
	return s.validator().Validate(ctx)
}

func (s *Spec) validator() *schema.CompositeValidator {
	return schema.NewCompositeValidator(
		schema.ValidatorFunc(func(context.Context) error {
			if s == nil {
				return errors.New("spec is required")
			}
			return nil
		}),
		schema.NewStructValidator(s),
	)
}

// Config is a single action as declared in an action file.
type Config struct {
	Name        string `json:"name"                  yaml:"name"                  validate:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Spec        Spec   `json:"spec"                  yaml:"spec"`

	filePath string
}

func (c *Config) FilePath() string {
	return c.filePath
}

func (c *Config) SetFilePath(path string) {
	c.filePath = path
}

// Validate checks the action and its spec. The name must also produce a
// non-empty file name once slugified.
func (c *Config) Validate(ctx context.Context) error {
	v := schema.NewCompositeValidator(schema.NewStructValidator(c))
	v.AddValidator(schema.ValidatorFunc(c.validateFileName))
	if err := v.Validate(ctx); err != nil {
		return newSpecError(c.Name, err)
	}
	return nil
}

func (c *Config) validateFileName(context.Context) error {
	if slug.Make(c.Name) == "" {
		return &Error{
			Code:   ErrCodeInvalidSpec,
			Action: c.Name,
			Field:  "Name",
			Cause:  fmt.Errorf("name %q yields an empty file name", c.Name),
		}
	}
	return nil
}

// Schemas derives the input and output schemas of the action.
func (c *Config) Schemas(ctx context.Context) (*Schemas, error) {
	if err := c.Validate(ctx); err != nil {
		return nil, err
	}
	return GenerateInputOutputSchemas(ctx, &c.Spec, c.Name)
}
