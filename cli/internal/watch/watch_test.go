package watch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintStableForSameContent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.go"), []byte("package b\n"), 0o644))

	first, err := Fingerprint([]string{dir})
	require.NoError(t, err)
	second, err := Fingerprint([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFingerprintChangesWithContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.go")
	require.NoError(t, os.WriteFile(path, []byte("package a\n"), 0o644))

	before, err := Fingerprint([]string{dir})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("package a // edited\n"), 0o644))
	after, err := Fingerprint([]string{dir})
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestFingerprintIgnoresNonGoFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a\n"), 0o644))

	before, err := Fingerprint([]string{dir})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("scratch"), 0o644))
	after, err := Fingerprint([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFingerprintMissingDirContributesNothing(t *testing.T) {
	empty, err := Fingerprint(nil)
	require.NoError(t, err)

	missing, err := Fingerprint([]string{filepath.Join(t.TempDir(), "nope")})
	require.NoError(t, err)
	assert.Equal(t, empty, missing)
}
