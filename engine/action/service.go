package action

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"dario.cat/mergo"
	"github.com/spf13/afero"

	"github.com/compozy/actionschema/engine/schema"
	"github.com/compozy/actionschema/pkg/logger"
)

// Options controls a generation run. Zero-valued fields are filled from DefaultOptions.
type Options struct {
	Root      string
	Include   []string
	Exclude   []string
	OutputDir string
	Format    Format
	Pretty    bool
	Check     bool
}

func DefaultOptions() Options {
	return Options{
		Root:      ".",
		Include:   slices.Clone(DefaultIncludes),
		OutputDir: "schemas",
		Format:    FormatJSON,
	}
}

// Result describes one generated action.
type Result struct {
	Name    string
	Source  string
	Target  string
	Schemas *Schemas
}

// Service discovers action files, derives their schemas and writes them out.
type Service struct {
	fs         afero.Fs
	opts       Options
	discoverer FileDiscoverer
	writer     *Writer
}

func NewService(fs afero.Fs, opts Options) (*Service, error) {
	if err := mergo.Merge(&opts, DefaultOptions()); err != nil {
		return nil, fmt.Errorf("failed to apply default options: %w", err)
	}
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root directory: %w", err)
	}
	opts.Root = root
	if !filepath.IsAbs(opts.OutputDir) {
		opts.OutputDir = filepath.Join(root, opts.OutputDir)
	}
	return &Service{
		fs:         fs,
		opts:       opts,
		discoverer: NewFileDiscoverer(fs, root),
		writer:     NewWriter(fs, opts.OutputDir, opts.Format, opts.Pretty),
	}, nil
}

// Run processes every discovered action file and stops at the first failure.
func (s *Service) Run(ctx context.Context) ([]Result, error) {
	log := logger.FromContext(ctx).With("root", s.opts.Root)
	files, err := s.discoverer.Discover(s.opts.Include, s.opts.Exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to discover action files: %w", err)
	}
	log.Debug("Discovered action files", "count", len(files))
	if len(files) == 0 {
		log.Warn("No action files matched", "include", s.opts.Include)
		return []Result{}, nil
	}
	configs := make([]*Config, 0, len(files))
	owners := make(map[string]string, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		config, err := Load(s.fs, file)
		if err != nil {
			return nil, err
		}
		if err := config.Validate(ctx); err != nil {
			return nil, err
		}
		target := s.writer.FileName(config.Name)
		if previous, ok := owners[target]; ok {
			return nil, &Error{
				Code:   ErrCodeDuplicateAction,
				Action: config.Name,
				Cause:  fmt.Errorf("%s and %s both write %s", previous, file, target),
			}
		}
		owners[target] = file
		configs = append(configs, config)
	}
	results := make([]Result, 0, len(configs))
	for _, config := range configs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := s.generate(ctx, config)
		if err != nil {
			return nil, err
		}
		log.Debug("Wrote action schemas", "action", result.Name, "target", result.Target)
		results = append(results, result)
	}
	log.Info("Generated action schemas", "actions", len(results), "output", s.opts.OutputDir)
	return results, nil
}

func (s *Service) generate(ctx context.Context, config *Config) (Result, error) {
	schemas, err := GenerateInputOutputSchemas(ctx, &config.Spec, config.Name)
	if err != nil {
		return Result{}, err
	}
	if s.opts.Check {
		if err := checkSchemas(config.Name, schemas); err != nil {
			return Result{}, err
		}
	}
	target, err := s.writer.Write(config.Name, schemas)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Name:    config.Name,
		Source:  config.FilePath(),
		Target:  target,
		Schemas: schemas,
	}, nil
}

// checkSchemas compiles both derived schemas so a broken fragment in an action
// file is reported before anything is written.
func checkSchemas(name string, schemas *Schemas) error {
	checks := []struct {
		field  string
		schema *schema.Schema
	}{
		{"input", schemas.Input},
		{"output", schemas.Output},
	}
	for _, c := range checks {
		if _, err := c.schema.Compile(); err != nil {
			return &Error{Code: ErrCodeCheckFailed, Action: name, Field: c.field, Cause: err}
		}
	}
	return nil
}
