package maps_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/guard-patrol/internal/maps"
)

const testRoot = "testdata/maps"

func TestLoaderLoadAll(t *testing.T) {
	loader := maps.NewLoader(testRoot)

	all, err := loader.LoadAll()
	require.NoError(t, err)

	// broken.yaml and README.md are skipped.
	ids := make([]string, len(all))
	for i, m := range all {
		ids[i] = m.ID
	}
	assert.Equal(t, []string{"canonical", "corridor", "square"}, ids)
}

func TestLoaderLoadYAML(t *testing.T) {
	loader := maps.NewLoader(testRoot)

	m, err := loader.LoadByID("canonical")
	require.NoError(t, err)

	assert.Equal(t, "Lab entrance", m.Name)
	assert.Equal(t, "Lab entrance", m.Title())
	assert.Equal(t, "puzzle example", m.Metadata["source"])
	require.NotNil(t, m.Expect)
	require.NotNil(t, m.Expect.Reachable)
	require.NotNil(t, m.Expect.Loops)
	assert.Equal(t, 41, *m.Expect.Reachable)
	assert.Equal(t, 6, *m.Expect.Loops)

	g, err := m.ToGrid()
	require.NoError(t, err)
	assert.Equal(t, 10, g.W)
	assert.Equal(t, 10, g.H)
}

func TestLoaderLoadText(t *testing.T) {
	loader := maps.NewLoader(testRoot)

	m, err := loader.LoadByID("corridor")
	require.NoError(t, err)

	assert.Equal(t, "corridor", m.Name)
	assert.Nil(t, m.Expect)
	assert.Equal(t, filepath.Join(testRoot, "corridor.txt"), m.FilePath)
}

func TestLoaderLoadNested(t *testing.T) {
	loader := maps.NewLoader(testRoot)

	m, err := loader.LoadByID("square")
	require.NoError(t, err)
	require.NotNil(t, m.Expect)
	assert.Nil(t, m.Expect.Loops)
}

func TestLoaderNotFound(t *testing.T) {
	loader := maps.NewLoader(testRoot)

	_, err := loader.LoadByID("missing")
	assert.ErrorIs(t, err, maps.ErrNotFound)
}

func TestLoaderBrokenFile(t *testing.T) {
	loader := maps.NewLoader(testRoot)

	_, err := loader.LoadFile(filepath.Join(testRoot, "broken.yaml"))
	assert.Error(t, err)
}

func TestLoaderListIDs(t *testing.T) {
	loader := maps.NewLoader(testRoot)

	ids, err := loader.ListIDs()
	require.NoError(t, err)
	assert.Len(t, ids, 3)
}

func TestLoaderMissingRoot(t *testing.T) {
	loader := maps.NewLoader(filepath.Join(t.TempDir(), "nope"))

	_, err := loader.LoadAll()
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	loader := maps.NewLoader(testRoot)

	byID, err := loader.Resolve("square")
	require.NoError(t, err)
	assert.Equal(t, "square", byID.ID)

	// Raw puzzle input without an extension loads by path.
	path := filepath.Join(t.TempDir(), "input")
	require.NoError(t, os.WriteFile(path, []byte("#.\n^.\n"), 0o600))

	byPath, err := loader.Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "input", byPath.ID)
}

func TestCheck(t *testing.T) {
	loader := maps.NewLoader(testRoot)

	m, err := loader.LoadByID("canonical")
	require.NoError(t, err)

	assert.Empty(t, m.Check(41, 6))

	mismatches := m.Check(40, 6)
	require.Len(t, mismatches, 1)
	assert.Equal(t, "reachable", mismatches[0].Field)
	assert.Equal(t, "reachable: want 41, got 40", mismatches[0].String())

	var noExpect maps.Map
	assert.Nil(t, noExpect.Check(1, 1))
}
