package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBundleResolve(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "static", "js"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "static", "js", "main.js"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, IndexFile), []byte("<html>"), 0o644))

	bundle, err := NewBundle(root)
	require.NoError(t, err)

	t.Run("file resolves inside root", func(t *testing.T) {
		resolved, ok := bundle.Resolve("/static/js/main.js")
		require.True(t, ok)
		require.Equal(t, filepath.Join(bundle.RootAbs(), "static", "js", "main.js"), resolved)
	})

	t.Run("backslashes are normalized", func(t *testing.T) {
		_, ok := bundle.Resolve(`static\js\main.js`)
		require.True(t, ok)
	})

	t.Run("root and directories are not files", func(t *testing.T) {
		_, ok := bundle.Resolve("/")
		require.False(t, ok)
		_, ok = bundle.Resolve("/static")
		require.False(t, ok)
	})

	t.Run("missing file", func(t *testing.T) {
		_, ok := bundle.Resolve("/cart")
		require.False(t, ok)
	})

	t.Run("path traversal is rejected", func(t *testing.T) {
		_, ok := bundle.Resolve("/static/../../etc/passwd")
		require.False(t, ok)
	})

	t.Run("control characters are rejected", func(t *testing.T) {
		_, ok := bundle.Resolve("static\njs/main.js")
		require.False(t, ok)
	})

	t.Run("index", func(t *testing.T) {
		index, ok := bundle.Index()
		require.True(t, ok)
		require.Equal(t, filepath.Join(bundle.RootAbs(), IndexFile), index)
	})

	t.Run("within root check is prefix safe", func(t *testing.T) {
		require.False(t, isWithinRoot("/srv/build", "/srv/build-old/index.html"))
		require.True(t, isWithinRoot("/srv/build", "/srv/build/index.html"))
	})
}

func TestNewBundle_EmptyRoot(t *testing.T) {
	_, err := NewBundle("  ")
	require.Error(t, err)
}
