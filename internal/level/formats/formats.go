// Package formats provides the on-disk level document and its YAML and JSON codecs.
// The document mirrors the exported level shape of the browser version so levels
// can move between the two without conversion.
package formats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-ascent/internal/core"
	"gopkg.in/yaml.v3"
)

// Document is a level as stored in a file or exchanged by import/export.
type Document struct {
	Name        string        `yaml:"name" json:"name"`
	Platforms   []PlatformDoc `yaml:"platforms" json:"platforms"`
	Checkpoints []ObjectDoc   `yaml:"checkpoints" json:"checkpoints"`
	Traps       []TrapDoc     `yaml:"traps" json:"traps"`
	Signs       []SignDoc     `yaml:"signs,omitempty" json:"signs"`
}

// ObjectDoc is the common part of every placed object.
type ObjectDoc struct {
	ID       int       `yaml:"id" json:"id"`
	Position core.Vec2 `yaml:"position" json:"position"`
	Width    float64   `yaml:"width" json:"width"`
	Height   float64   `yaml:"height" json:"height"`
}

// PlatformDoc is a platform with optional two-point movement.
type PlatformDoc struct {
	ObjectDoc `yaml:",inline"`
	Movement  *MovementDoc `yaml:"movement,omitempty" json:"movement,omitempty"`
}

// MovementDoc is a ping-pong path between two points at speed px/s.
type MovementDoc struct {
	Path  [2]core.Vec2 `yaml:"path" json:"path"`
	Speed float64      `yaml:"speed" json:"speed"`
}

// TrapDoc is a hazard, optionally riding the platform with id PlatformID.
type TrapDoc struct {
	ObjectDoc  `yaml:",inline"`
	Type       string `yaml:"type" json:"type"`
	PlatformID *int   `yaml:"platformId,omitempty" json:"platformId"`
}

// SignDoc is a decorative difficulty sign.
type SignDoc struct {
	ObjectDoc `yaml:",inline"`
	Variant   string `yaml:"variant" json:"variant"`
}

// ParseYAML parses a YAML level document.
func ParseYAML(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return doc, nil
}

// ParseJSON parses a JSON level document.
func ParseJSON(data []byte) (Document, error) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("json unmarshal: %w", err)
	}
	return doc, nil
}

// Parse routes to the parser for the file extension ext.
func Parse(data []byte, ext string) (Document, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return Document{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// EncodeYAML renders doc as YAML.
func EncodeYAML(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeJSON renders doc as indented JSON.
func EncodeJSON(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return append(data, '\n'), nil
}

// Encode renders doc in the format implied by ext.
func Encode(doc Document, ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return EncodeYAML(doc)
	case ".json":
		return EncodeJSON(doc)
	default:
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".json"}
}

// IsSupported reports whether ext names a level format.
func IsSupported(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
