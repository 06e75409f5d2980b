// Package formats provides pluggable map file format parsers.
package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLMap represents the YAML structure for a map file.
type YAMLMap struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Grid     string            `yaml:"grid"`
	Expect   *Expect           `yaml:"expect,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// Expect holds known answers for a map, used to check solver output.
// A nil field means the answer is not recorded.
type Expect struct {
	Reachable *int `yaml:"reachable,omitempty"`
	Loops     *int `yaml:"loops,omitempty"`
}

// Map represents a parsed map file ready for use.
type Map struct {
	ID       string
	Name     string
	Grid     string
	Expect   *Expect
	Metadata map[string]string
}

// ParseYAML parses a YAML map file.
func ParseYAML(data []byte) (Map, error) {
	var ym YAMLMap
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return Map{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if strings.TrimSpace(ym.Grid) == "" {
		return Map{}, fmt.Errorf("yaml: missing grid")
	}

	return Map{
		ID:       ym.ID,
		Name:     ym.Name,
		Grid:     ym.Grid,
		Expect:   ym.Expect,
		Metadata: ym.Metadata,
	}, nil
}

// ParseText parses a plain text map. The caller supplies the ID since the
// format has no header.
func ParseText(data []byte, id string) (Map, error) {
	if strings.TrimSpace(string(data)) == "" {
		return Map{}, fmt.Errorf("text: empty map")
	}
	return Map{
		ID:   id,
		Name: id,
		Grid: string(data),
	}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".txt"}
}
