package typemap

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/declgen/declgen/errors"
)

// LoadOverrides reads and merges override files in argument order. Files
// ending in .yaml or .yml are parsed as YAML, everything else as JSON. A file
// that cannot be read is an input-read error; a file whose top level is not a
// flat object is a configuration error. Both abort the run.
func (r *Resolver) LoadOverrides(paths []string) error {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Mark(errors.Wrapf(err, "read typemap override %s", path), errors.ErrInputRead)
		}
		overrides, err := parseOverrides(path, data)
		if err != nil {
			return err
		}
		r.Merge(overrides)
	}
	return nil
}

func parseOverrides(path string, data []byte) (map[string]Mapping, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAMLOverrides(path, data)
	default:
		return parseJSONOverrides(path, data)
	}
}

func parseJSONOverrides(path string, data []byte) (map[string]Mapping, error) {
	// Decode generically first so a non-object payload is reported as a
	// configuration problem rather than an opaque unmarshal type error.
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "parse typemap override %s", path), errors.ErrConfiguration)
	}
	if _, ok := raw.(map[string]any); !ok {
		return nil, errors.Mark(
			errors.Newf("typemap override %s: top level must be an object keyed by declared type name", path),
			errors.ErrConfiguration)
	}

	var overrides map[string]Mapping
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "parse typemap override %s", path), errors.ErrConfiguration)
	}
	return overrides, nil
}

func parseYAMLOverrides(path string, data []byte) (map[string]Mapping, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "parse typemap override %s", path), errors.ErrConfiguration)
	}
	if _, ok := raw.(map[string]any); !ok {
		return nil, errors.Mark(
			errors.Newf("typemap override %s: top level must be a mapping keyed by declared type name", path),
			errors.ErrConfiguration)
	}

	var overrides map[string]Mapping
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "parse typemap override %s", path), errors.ErrConfiguration)
	}
	return overrides, nil
}
