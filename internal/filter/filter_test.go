package filter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to dir for the duration of the test. Resolve operates on
// paths relative to the working directory.
func chdir(t *testing.T, dir string) {
	t.Helper()

	old, err := os.Getwd()
	require.NoError(t, err)

	require.NoError(t, os.Chdir(dir))

	t.Cleanup(func() {
		_ = os.Chdir(old)
	})
}

func touch(t *testing.T, paths ...string) {
	t.Helper()

	for _, path := range paths {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	}
}

func TestResolveWalksAndFilters(t *testing.T) {
	chdir(t, t.TempDir())
	touch(t, "a.txt", "b.enc", "sub/c.txt", "sub/d.enc")

	files, scanned, err := Resolve([]string{"."}, []string{"*.enc"}, nil, true)
	require.NoError(t, err)

	assert.Equal(t, 4, scanned)
	assert.ElementsMatch(t, []string{"b.enc", filepath.Join("sub", "d.enc")}, files)
}

func TestResolveExcludesWin(t *testing.T) {
	chdir(t, t.TempDir())
	touch(t, "keep.txt", "skip.txt")

	files, _, err := Resolve([]string{"."}, []string{"*.txt"}, []string{"skip*"}, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"keep.txt"}, files)
}

func TestResolveExplicitFileBypassesFilter(t *testing.T) {
	chdir(t, t.TempDir())
	touch(t, "plain.bin")

	// An explicitly named file is taken as-is, even when it matches no pattern.
	files, _, err := Resolve([]string{"plain.bin"}, []string{"*.enc"}, nil, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"plain.bin"}, files)
}

func TestResolveNoMatches(t *testing.T) {
	chdir(t, t.TempDir())
	touch(t, "a.txt")

	_, _, err := Resolve([]string{"."}, []string{"*.enc"}, nil, true)

	assert.Error(t, err)
}

func TestResolveRejectsEscapingPaths(t *testing.T) {
	chdir(t, t.TempDir())

	_, _, err := Resolve([]string{"/etc"}, nil, nil, false)
	assert.Error(t, err, "absolute paths are rejected")

	_, _, err = Resolve([]string{"../outside"}, nil, nil, false)
	assert.Error(t, err, "parent traversal is rejected")
}

func TestLoadPatterns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.jsonc")

	content := `[
	// encrypted artifacts
	"*.enc",
	"secrets/*", // trailing comment
]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	patterns, err := LoadPatterns(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"*.enc", "secrets/*"}, patterns)

	_, err = LoadPatterns(filepath.Join(dir, "missing.jsonc"))
	assert.Error(t, err)
}
