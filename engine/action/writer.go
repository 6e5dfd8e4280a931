package action

import (
	"fmt"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/gosimple/slug"
	"github.com/spf13/afero"
	"github.com/tidwall/pretty"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func (f Format) Ext() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// Writer stores derived schemas as one file per action.
type Writer struct {
	fs     afero.Fs
	dir    string
	format Format
	pretty bool
}

func NewWriter(fs afero.Fs, dir string, format Format, prettyPrint bool) *Writer {
	if format == "" {
		format = FormatJSON
	}
	return &Writer{fs: fs, dir: dir, format: format, pretty: prettyPrint}
}

// FileName returns the name of the file the schemas of action name are written to.
func (w *Writer) FileName(name string) string {
	return slug.Make(name) + w.format.Ext()
}

// Write encodes schemas and stores them under the writer directory, returning
// the written path.
func (w *Writer) Write(name string, schemas *Schemas) (string, error) {
	data, err := w.Encode(schemas)
	if err != nil {
		return "", &Error{Code: ErrCodeWriteFailed, Action: name, Cause: err}
	}
	if err := w.fs.MkdirAll(w.dir, 0o755); err != nil {
		return "", &Error{Code: ErrCodeWriteFailed, Action: name, Cause: fmt.Errorf("failed to create output directory: %w", err)}
	}
	target := filepath.Join(w.dir, w.FileName(name))
	if err := afero.WriteFile(w.fs, target, data, 0o644); err != nil {
		return "", &Error{Code: ErrCodeWriteFailed, Action: name, Cause: fmt.Errorf("failed to write %s: %w", target, err)}
	}
	return target, nil
}

func (w *Writer) Encode(schemas *Schemas) ([]byte, error) {
	if schemas == nil {
		schemas = &Schemas{}
	}
	switch w.format {
	case FormatYAML:
		data, err := yaml.Marshal(schemas)
		if err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return data, nil
	case FormatJSON:
		data, err := json.Marshal(schemas)
		if err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
		if w.pretty {
			return pretty.Pretty(data), nil
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", w.format)
	}
}
