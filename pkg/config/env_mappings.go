package config

import (
	"reflect"
	"sync"
)

// TagMapping maps a struct tag value (env var or CLI flag) to a config path.
type TagMapping struct {
	Name       string
	ConfigPath string
}

var (
	cachedEnvMappings  []TagMapping
	cachedFlagMappings []TagMapping
	mappingsOnce       sync.Once
)

func loadMappings() {
	mappingsOnce.Do(func() {
		t := reflect.TypeOf(Config{})
		cachedEnvMappings = extractMappings(t, "", "env")
		cachedFlagMappings = extractMappings(t, "", "flag")
	})
}

// GenerateEnvMappings generates environment variable mappings from config struct tags
func GenerateEnvMappings() []TagMapping {
	loadMappings()
	return cachedEnvMappings
}

// GenerateFlagMappings generates CLI flag mappings from config struct tags
func GenerateFlagMappings() []TagMapping {
	loadMappings()
	return cachedFlagMappings
}

// extractMappings recursively extracts tag mappings from struct fields
func extractMappings(t reflect.Type, prefix string, tag string) []TagMapping {
	var mappings []TagMapping
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		koanfTag := field.Tag.Get("koanf")
		if koanfTag == "" || koanfTag == "-" {
			continue
		}
		configPath := koanfTag
		if prefix != "" {
			configPath = prefix + "." + koanfTag
		}
		if value := field.Tag.Get(tag); value != "" && value != "-" {
			mappings = append(mappings, TagMapping{Name: value, ConfigPath: configPath})
		}
		if field.Type.Kind() == reflect.Struct {
			mappings = append(mappings, extractMappings(field.Type, configPath, tag)...)
		}
	}
	return mappings
}

func mappingIndex(mappings []TagMapping) map[string]string {
	result := make(map[string]string, len(mappings))
	for _, m := range mappings {
		result[m.Name] = m.ConfigPath
	}
	return result
}
