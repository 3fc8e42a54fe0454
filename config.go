package undofsm

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/comalice/undofsm/internal/primitives"
)

// ParseYAML decodes a machine document of the form
//
//	id: door            # optional
//	initial: closed
//	states:
//	  closed:
//	    transitions:
//	      open: opened
//	  opened:
//	    transitions:
//	      close: closed
//
// States keep their document order. Errors wrap ErrConfiguration.
func ParseYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, configError(fmt.Errorf("yaml unmarshal: %w", err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, configError(err)
	}
	return &cfg, nil
}

// ParseJSON decodes the JSON form of the document accepted by ParseYAML.
func ParseJSON(data []byte) (*Config, error) {
	cfg, err := primitives.ParseJSON(data)
	if err != nil {
		return nil, configError(fmt.Errorf("json unmarshal: %w", err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, configError(err)
	}
	return &cfg, nil
}

// LoadFile reads a machine document, choosing the decoder by extension:
// .json for JSON, .yaml or .yml for YAML.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, configError(fmt.Errorf("unsupported config extension %q", ext))
	}
}

// MarshalYAML encodes cfg in the document form read by ParseYAML.
func MarshalYAML(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// MarshalJSON encodes cfg in the document form read by ParseJSON.
func MarshalJSON(cfg Config) ([]byte, error) {
	return json.MarshalIndent(cfg, "", "  ")
}
