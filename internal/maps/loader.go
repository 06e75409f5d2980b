// Package maps provides loading of patrol maps from a directory.
// This package depends on patrol but patrol does not depend on maps.
package maps

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/guard-patrol/internal/maps/formats"
	"github.com/vovakirdan/guard-patrol/internal/patrol"
)

// ErrNotFound is returned when no map matches a requested ID.
var ErrNotFound = errors.New("maps: map not found")

// Map represents a complete map definition.
type Map struct {
	ID       string
	Name     string
	Grid     string
	Expect   *formats.Expect
	Metadata map[string]string
	FilePath string
}

// ToGrid parses the map text into a grid.
func (m *Map) ToGrid() (*patrol.Grid, error) {
	g, err := patrol.Parse(m.Grid)
	if err != nil {
		return nil, fmt.Errorf("maps: %s: %w", m.ID, err)
	}
	return g, nil
}

// Title returns the display name, falling back to the ID.
func (m *Map) Title() string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}

// Mismatch describes a solver answer that differs from the recorded one.
type Mismatch struct {
	Field string
	Want  int
	Got   int
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: want %d, got %d", m.Field, m.Want, m.Got)
}

// Check compares solver answers with the map's expectations.
// Fields without a recorded expectation are not compared.
func (m *Map) Check(reachable, loops int) []Mismatch {
	if m.Expect == nil {
		return nil
	}
	var out []Mismatch
	if m.Expect.Reachable != nil && *m.Expect.Reachable != reachable {
		out = append(out, Mismatch{Field: "reachable", Want: *m.Expect.Reachable, Got: reachable})
	}
	if m.Expect.Loops != nil && *m.Expect.Loops != loops {
		out = append(out, Mismatch{Field: "loops", Want: *m.Expect.Loops, Got: loops})
	}
	return out
}

// Loader handles loading maps from a directory.
type Loader struct {
	Root   string
	Logger *log.Logger // Optional; receives skipped-file diagnostics
}

// NewLoader creates a new map loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all map files.
// Files that fail to parse are skipped. Returns maps sorted by ID.
func (l *Loader) LoadAll() ([]Map, error) {
	var all []Map

	err := filepath.WalkDir(l.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		m, err := l.LoadFile(path)
		if err != nil {
			if l.Logger != nil {
				l.Logger.Debug("skipping map file", "path", path, "error", err)
			}
			return nil
		}

		all = append(all, m)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("maps: walking directory %s: %w", l.Root, err)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].ID < all[j].ID
	})

	return all, nil
}

// LoadFile loads and validates a single map file.
func (l *Loader) LoadFile(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Map{}, fmt.Errorf("maps: reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := parseByExtension(data, ext, stem(path))
	if err != nil {
		return Map{}, fmt.Errorf("maps: parsing file %s: %w", path, err)
	}
	if parsed.ID == "" {
		parsed.ID = stem(path)
	}

	m := Map{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Grid:     parsed.Grid,
		Expect:   parsed.Expect,
		Metadata: parsed.Metadata,
		FilePath: path,
	}
	if _, err := patrol.Parse(m.Grid); err != nil {
		return Map{}, fmt.Errorf("maps: %s: %w", path, err)
	}
	return m, nil
}

// LoadByID loads a specific map by ID.
func (l *Loader) LoadByID(id string) (Map, error) {
	all, err := l.LoadAll()
	if err != nil {
		return Map{}, err
	}

	for _, m := range all {
		if m.ID == id {
			return m, nil
		}
	}

	return Map{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all map IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	all, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(all))
	for i, m := range all {
		ids[i] = m.ID
	}
	return ids, nil
}

// Resolve loads arg as a file path if it names an existing file, otherwise
// as a map ID under the loader root.
func (l *Loader) Resolve(arg string) (Map, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		return l.LoadFile(arg)
	}
	return l.LoadByID(arg)
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser. Anything that is not YAML
// is read as a plain text grid, so raw puzzle inputs load by path.
func parseByExtension(data []byte, ext, id string) (formats.Map, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.ParseText(data, id)
	}
}
