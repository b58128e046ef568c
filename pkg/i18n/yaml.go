package i18n

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a translation catalog of the form:
//
//	en:
//	  auth.unauthorized: "You are not authorized to perform this action"
//	de:
//	  auth.unauthorized: "Sie sind nicht berechtigt, diese Aktion auszuführen"
func ParseYAML(data []byte) (map[string]map[string]string, error) {
	var out map[string]map[string]string
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}
	return out, nil
}

// LoadYAMLFile reads and parses a translation catalog from disk.
func LoadYAMLFile(path string) (map[string]map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read translation file %s: %w", path, err)
	}
	return ParseYAML(data)
}
