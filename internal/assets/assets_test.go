package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withRoot(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "assets")
	old := Roots
	Roots = []string{root}
	t.Cleanup(func() { Roots = old })
	return root
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestResolveReroots(t *testing.T) {
	root := withRoot(t)
	touch(t, filepath.Join(root, "ui", "gallery.css"))

	got, err := Resolve("assets/ui/gallery.css")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "ui", "gallery.css"), got)

	_, err = Resolve("assets/ui/missing.css")
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = Resolve("")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindFontPrefersRegular(t *testing.T) {
	root := withRoot(t)
	touch(t, filepath.Join(root, "fonts", "Inter", "Inter-Bold.ttf"))
	touch(t, filepath.Join(root, "fonts", "Inter", "Inter-Regular.ttf"))
	touch(t, filepath.Join(root, "fonts", "Inter", "OFL.txt"))

	got, err := FindFont("inter")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "fonts", "Inter", "Inter-Regular.ttf"), got)

	got, err = FindFont("Inter Bold")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "fonts", "Inter", "Inter-Bold.ttf"), got)

	_, err = FindFont("Roboto")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindFontIgnoresRegularInDirectoryNames(t *testing.T) {
	root := filepath.Join(t.TempDir(), "Regular-install", "assets")
	old := Roots
	Roots = []string{root}
	t.Cleanup(func() { Roots = old })
	touch(t, filepath.Join(root, "fonts", "Inter", "Inter-Bold.ttf"))
	touch(t, filepath.Join(root, "fonts", "Inter", "Inter-Regular.ttf"))

	got, err := FindFont("inter")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "fonts", "Inter", "Inter-Regular.ttf"), got)
}

func TestFindFontExactPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Custom.otf")
	touch(t, path)
	got, err := FindFont(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestFindFontNoFontsDir(t *testing.T) {
	withRoot(t)
	_, err := FindFont("Inter")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
