// Package patternfile loads cell patterns from YAML files.
//
// A pattern file lists rows of characters, explicit cell offsets, or both:
//
//	id: rpentomino
//	name: R-pentomino
//	rows:
//	  - ".OO"
//	  - "OO."
//	  - ".O."
//	cells:
//	  - {x: 4, y: 0}
package patternfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/gridsim/internal/grid"
	"github.com/vovakirdan/gridsim/internal/grid/pattern"
)

var (
	// ErrNotFound is returned by LoadByID for an unknown ID.
	ErrNotFound = errors.New("patternfile: pattern not found")

	// ErrEmpty is returned for a file with neither rows nor cells.
	ErrEmpty = errors.New("patternfile: pattern has no cells")
)

// File is a parsed pattern file.
type File struct {
	ID       string
	Name     string
	Rows     []string
	Cells    []grid.Offset
	Metadata map[string]string
	FilePath string
}

type yamlFile struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Rows     []string          `yaml:"rows"`
	Cells    []yamlCell        `yaml:"cells,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

type yamlCell struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Parse decodes one pattern file.
func Parse(data []byte) (File, error) {
	var yf yamlFile
	if err := yaml.Unmarshal(data, &yf); err != nil {
		return File{}, fmt.Errorf("patternfile: yaml unmarshal: %w", err)
	}
	if len(yf.Rows) == 0 && len(yf.Cells) == 0 {
		return File{}, ErrEmpty
	}

	f := File{
		ID:       yf.ID,
		Name:     yf.Name,
		Rows:     yf.Rows,
		Metadata: yf.Metadata,
	}
	for _, c := range yf.Cells {
		f.Cells = append(f.Cells, grid.O(c.X, c.Y))
	}
	return f, nil
}

// Pattern builds the pattern described by f. Row characters are looked up
// in legend; explicit cells get the value cell. The result is normalized
// so its top-left corner is the origin.
func Pattern[E comparable](f File, legend map[rune]E, cell E) pattern.Pattern[E] {
	return pattern.Combine(
		pattern.Parse(f.Rows, legend),
		pattern.OfOffsets(cell, f.Cells...),
	).Normalized()
}

// Loader reads pattern files below a root directory.
type Loader struct {
	Root string
}

// NewLoader creates a loader for root.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// DefaultRoot returns ~/.gridsim/patterns, or "" without a home directory.
func DefaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gridsim", "patterns")
}

// LoadAll walks the root and loads every pattern file, sorted by ID.
// Unparseable files are skipped. A missing root yields no patterns.
func (l *Loader) LoadAll() ([]File, error) {
	if l.Root == "" {
		return nil, nil
	}
	if _, err := os.Stat(l.Root); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	var files []File
	err := filepath.WalkDir(l.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}
		f, err := l.LoadFile(path)
		if err != nil {
			return nil
		}
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("patternfile: walking %s: %w", l.Root, err)
	}

	slices.SortFunc(files, func(a, b File) int { return strings.Compare(a.ID, b.ID) })
	return files, nil
}

// LoadFile loads a single pattern file. A file without an id takes its
// base name.
func (l *Loader) LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("patternfile: reading %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("patternfile: parsing %s: %w", path, err)
	}
	if f.ID == "" {
		f.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	f.FilePath = path
	return f, nil
}

// LoadByID loads the pattern with the given ID.
func (l *Loader) LoadByID(id string) (File, error) {
	files, err := l.LoadAll()
	if err != nil {
		return File{}, err
	}
	for _, f := range files {
		if f.ID == id {
			return f, nil
		}
	}
	return File{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all pattern IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	files, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(files))
	for i, f := range files {
		ids[i] = f.ID
	}
	return ids, nil
}

func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
