// Package assets locates files under assets/ whether the binary runs from the repo root or
// from cmd/gallery.
package assets

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FontExts are the font file extensions raylib can load.
var FontExts = []string{".ttf", ".otf"}

// Roots are the candidate asset directories, tried in order.
var Roots = []string{"assets", "../../assets"}

// Resolve returns the first existing path among path itself and path re-rooted under each of
// Roots (for a path starting with "assets/"). Absolute paths are returned as-is if they exist.
func Resolve(path string) (string, error) {
	if path == "" {
		return "", os.ErrNotExist
	}
	candidates := []string{path}
	if !filepath.IsAbs(path) {
		rel := filepath.ToSlash(filepath.Clean(path))
		rel = strings.TrimPrefix(rel, "assets/")
		for _, root := range Roots {
			candidates = append(candidates, filepath.Join(root, rel))
		}
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", os.ErrNotExist
}

// scanFonts returns slash-separated paths of font files under dir, relative to dir.
func scanFonts(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || !isFont(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

func isFont(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range FontExts {
		if ext == e {
			return true
		}
	}
	return false
}

// normalize lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalize(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}

// FindFont resolves a configured font: an existing path wins; otherwise search is matched
// fuzzily (e.g. "Inter" or "inter-regular") against fonts under <root>/fonts. When several
// match, a "Regular" face is preferred.
func FindFont(search string) (string, error) {
	if p, err := Resolve(search); err == nil && isFont(p) {
		return p, nil
	}
	norm := normalize(strings.TrimSuffix(filepath.Base(search), filepath.Ext(search)))
	if norm == "" {
		return "", os.ErrNotExist
	}
	var matches []string
	for _, root := range Roots {
		dir := filepath.Join(root, "fonts")
		list, err := scanFonts(dir)
		if err != nil {
			return "", err
		}
		for _, rel := range list {
			if strings.Contains(normalize(rel), norm) {
				matches = append(matches, filepath.Join(dir, filepath.FromSlash(rel)))
			}
		}
	}
	if len(matches) == 0 {
		return "", os.ErrNotExist
	}
	for _, m := range matches {
		if strings.Contains(strings.ToLower(filepath.Base(m)), "regular") {
			return m, nil
		}
	}
	return matches[0], nil
}
