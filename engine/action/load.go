package action

import (
	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Load reads an action file. YAML and JSON documents are both accepted.
func Load(fs afero.Fs, filePath string) (*Config, error) {
	data, err := afero.ReadFile(fs, filePath)
	if err != nil {
		return nil, &Error{Code: ErrCodeLoadFailed, Cause: errors.Wrapf(err, "failed to read %s", filePath)}
	}
	config, err := Decode(data)
	if err != nil {
		return nil, &Error{Code: ErrCodeLoadFailed, Cause: errors.Wrap(err, filePath)}
	}
	config.SetFilePath(filePath)
	return config, nil
}

// Decode parses an action document.
func Decode(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, "failed to decode action document")
	}
	return &config, nil
}
