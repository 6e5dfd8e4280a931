package schemagen

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/invopop/jsonschema"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/compozy/actionschema/engine/action"
	"github.com/compozy/actionschema/pkg/config"
	"github.com/compozy/actionschema/pkg/logger"
)

const draft07 = "http://json-schema.org/draft-07/schema#"

type schemaDefinition struct {
	name     string
	title    string
	source   any
	fieldTag string
}

func (d schemaDefinition) fileName() string {
	return d.name + ".json"
}

var schemaDefinitions = []schemaDefinition{
	{name: "action", title: "Action file", source: &action.Config{}, fieldTag: "json"},
	{name: "config", title: "actionschema configuration", source: &config.Config{}, fieldTag: "koanf"},
}

// SchemaGenerator writes the JSON Schemas describing the files actionschema reads.
type SchemaGenerator struct {
	fs          afero.Fs
	definitions []schemaDefinition
}

func NewSchemaGenerator(fs afero.Fs) *SchemaGenerator {
	return &SchemaGenerator{fs: fs, definitions: schemaDefinitions}
}

// Generate writes one file per definition into outDir and returns the written paths
// in definition order.
func (g *SchemaGenerator) Generate(ctx context.Context, outDir string) ([]string, error) {
	log := logger.FromContext(ctx)
	log.Info("Generating JSON schemas", "out", outDir)
	if err := g.fs.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	written := make([]string, len(g.definitions))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, definition := range g.definitions {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			schemaJSON, err := g.buildSchema(definition)
			if err != nil {
				return fmt.Errorf("failed to build schema for %s: %w", definition.name, err)
			}
			filePath := filepath.Join(outDir, definition.fileName())
			if err := afero.WriteFile(g.fs, filePath, schemaJSON, 0o644); err != nil {
				return fmt.Errorf("failed to write schema to %s: %w", filePath, err)
			}
			log.Debug("Generated schema", "file", filePath)
			written[i] = filePath
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return written, nil
}

func (g *SchemaGenerator) buildSchema(definition schemaDefinition) ([]byte, error) {
	reflector := newJSONSchemaReflector(definition.fieldTag)
	schema := reflector.Reflect(definition.source)
	schema.ID = jsonschema.ID(definition.fileName())
	schema.Version = draft07
	if definition.title != "" {
		schema.Title = definition.title
	}
	schema.Extras = map[string]any{"yamlCompatible": true}
	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return append(schemaJSON, '\n'), nil
}

func newJSONSchemaReflector(fieldTag string) *jsonschema.Reflector {
	return &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            false,
		FieldNameTag:              fieldTag,
	}
}
