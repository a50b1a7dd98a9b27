package config

import (
	_ "embed"
	"errors"

	"gopkg.in/yaml.v3"
)

//go:embed manifest.yaml
var manifestYAML []byte

// ErrInvalidManifest is returned when the embedded manifest cannot be parsed.
var ErrInvalidManifest = errors.New("config: invalid manifest")

// Manifest describes the plugin to the workflow host: its identity, the
// credential fields the provider form asks for, and the tool catalog.
type Manifest struct {
	Name        string            `yaml:"name" json:"name"`
	Version     string            `yaml:"version" json:"version"`
	Description string            `yaml:"description" json:"description"`
	Credentials []CredentialField `yaml:"credentials" json:"credentials"`
	Tools       []ToolSpec        `yaml:"tools" json:"tools"`
}

// CredentialField is one input on the provider credential form.
type CredentialField struct {
	Name     string `yaml:"name" json:"name"`
	Label    string `yaml:"label" json:"label"`
	Type     string `yaml:"type" json:"type"`
	Required bool   `yaml:"required" json:"required"`
	Help     string `yaml:"help,omitempty" json:"help,omitempty"`
}

// ToolSpec describes one tool and its parameters.
type ToolSpec struct {
	Name        string      `yaml:"name" json:"name"`
	Label       string      `yaml:"label" json:"label"`
	Description string      `yaml:"description" json:"description"`
	Parameters  []ToolParam `yaml:"parameters" json:"parameters"`
}

// ToolParam describes one tool parameter.
type ToolParam struct {
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type" json:"type"`
	Required    bool   `yaml:"required" json:"required"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// LoadManifest parses the embedded manifest.
func LoadManifest() (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(manifestYAML, &m); err != nil {
		return nil, errors.Join(ErrInvalidManifest, err)
	}
	if m.Name == "" || len(m.Tools) == 0 {
		return nil, ErrInvalidManifest
	}
	return &m, nil
}
