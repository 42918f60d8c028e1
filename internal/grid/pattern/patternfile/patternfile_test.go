package patternfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/gridsim/internal/grid"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse(t *testing.T) {
	f, err := Parse([]byte(`
id: rpentomino
name: R-pentomino
rows:
  - ".OO"
  - "OO."
  - ".O."
metadata:
  period: "1103"
`))
	require.NoError(t, err)
	assert.Equal(t, "rpentomino", f.ID)
	assert.Equal(t, "R-pentomino", f.Name)
	assert.Len(t, f.Rows, 3)
	assert.Equal(t, "1103", f.Metadata["period"])

	_, err = Parse([]byte("id: nothing\n"))
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Parse([]byte("rows: [unterminated"))
	assert.Error(t, err)
}

func TestPatternCombinesRowsAndCells(t *testing.T) {
	f := File{
		Rows:  []string{"..O", "..O"},
		Cells: []grid.Offset{grid.O(5, 1)},
	}
	p := Pattern(f, map[rune]int{'O': 1}, 2)

	assert.Equal(t, 3, p.Len())
	assert.True(t, p.IsTopLeftAtOrigin())
	assert.Equal(t, 4, p.Width())
	assert.Equal(t, 2, p.Height())

	v, ok := p.Get(grid.O(3, 1))
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", "id: beta\nrows: [\"OO\"]\n")
	writeFile(t, dir, "nested/a.yml", "rows: [\"O\"]\n")
	writeFile(t, dir, "broken.yaml", "rows: [unterminated")
	writeFile(t, dir, "notes.txt", "rows: [\"O\"]\n")

	l := NewLoader(dir)
	ids, err := l.ListIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "beta"}, ids, "sorted, id defaults to file name, bad files skipped")

	f, err := l.LoadByID("beta")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "b.yaml"), f.FilePath)

	_, err = l.LoadByID("gamma")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoaderMissingRoot(t *testing.T) {
	files, err := NewLoader(filepath.Join(t.TempDir(), "absent")).LoadAll()
	require.NoError(t, err)
	assert.Empty(t, files)

	_, err = NewLoader("").LoadByID("x")
	assert.ErrorIs(t, err, ErrNotFound)
}
