package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/flarebyte/myapp/internal/calc"
	"github.com/flarebyte/myapp/internal/greet"
)

// CurrentConfigVersion is the only configVersion Load accepts.
const CurrentConfigVersion = "1"

var supportedConfigVersions = []string{CurrentConfigVersion}

// IsSupportedConfigVersion reports whether Load accepts configVersion v.
func IsSupportedConfigVersion(v string) bool {
	return slices.Contains(supportedConfigVersions, v)
}

// document is the format-neutral view of a config file.
type document struct {
	ConfigVersion string
	Greeting      *string
	SampleA       *calc.Operand
	SampleB       *calc.Operand
}

// Load reads a .cue, .yaml or .yml config and overlays it on the default
// greet settings. Required fields:
//   - configVersion: string
func Load(path string) (greet.Settings, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".cue" && ext != ".yaml" && ext != ".yml" {
		return greet.Settings{}, errors.New("unsupported config format: expected .cue, .yaml or .yml")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return greet.Settings{}, fmt.Errorf("failed to read config: %w", err)
	}
	var doc document
	if ext == ".cue" {
		doc, err = parseCUE(data)
	} else {
		doc, err = parseYAML(data)
	}
	if err != nil {
		return greet.Settings{}, err
	}
	if !IsSupportedConfigVersion(doc.ConfigVersion) {
		return greet.Settings{}, fmt.Errorf("unsupported configVersion: %q (supported: %s)", doc.ConfigVersion, strings.Join(supportedConfigVersions, ", "))
	}
	return doc.settings(), nil
}

func (d document) settings() greet.Settings {
	s := greet.DefaultSettings()
	if d.Greeting != nil {
		s.Greeting = *d.Greeting
	}
	if d.SampleA != nil {
		s.SampleA = *d.SampleA
	}
	if d.SampleB != nil {
		s.SampleB = *d.SampleB
	}
	return s
}

func missingField(name string) error {
	return fmt.Errorf("missing required field: %s", name)
}

func invalidType(name, want string) error {
	return fmt.Errorf("invalid type for field: %s (expected %s)", name, want)
}
