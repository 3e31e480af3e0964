// Package fontfetch installs overlay fonts from the google/fonts repository or a direct URL.
package fontfetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"hark-back/internal/assets"
)

const (
	githubContentsURL = "https://api.github.com/repos/google/fonts/contents/ofl"
	githubRawPrefix   = "https://raw.githubusercontent.com/google/fonts/"
	userAgent         = "hark-back-fontfetch"
)

// DefaultDir is where fetched fonts land; assets.FindFont searches it.
const DefaultDir = "assets/fonts"

type githubFile struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// Fetcher looks fonts up and downloads them. The zero value is not usable; call New.
type Fetcher struct {
	// ContentsURL lists a family folder; RawPrefix is the only host downloads may come from.
	ContentsURL string
	RawPrefix   string
	client      *http.Client
	log         *zap.Logger
}

func New(log *zap.Logger) *Fetcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{
		ContentsURL: githubContentsURL,
		RawPrefix:   githubRawPrefix,
		client:      &http.Client{Timeout: 60 * time.Second},
		log:         log,
	}
}

// Folders converts a display name to the folder names google/fonts uses under ofl,
// e.g. "Open Sans" -> ["opensans", "open-sans"].
func Folders(family string) []string {
	lower := strings.ToLower(strings.TrimSpace(family))
	if lower == "" {
		return nil
	}
	noSpaces := strings.ReplaceAll(lower, " ", "")
	withHyphens := strings.ReplaceAll(lower, " ", "-")
	out := []string{noSpaces}
	if withHyphens != noSpaces {
		out = append(out, withHyphens)
	}
	return out
}

func (f *Fetcher) get(ctx context.Context, u string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	return f.client.Do(req)
}

// LookupFolder returns the raw URL of a font file in folder, preferring an upright face.
func (f *Fetcher) LookupFolder(ctx context.Context, folder string) (string, error) {
	resp, err := f.get(ctx, f.ContentsURL+"/"+url.PathEscape(folder))
	if err != nil {
		return "", fmt.Errorf("google fonts: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("font %q not found on Google Fonts", folder)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google fonts: HTTP %d", resp.StatusCode)
	}
	var files []githubFile
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return "", fmt.Errorf("google fonts: %w", err)
	}
	var italic string
	for _, file := range files {
		if file.Type != "file" || !isFontName(file.Name) || !strings.HasPrefix(file.DownloadURL, f.RawPrefix) {
			continue
		}
		if strings.Contains(strings.ToLower(file.Name), "italic") {
			if italic == "" {
				italic = file.DownloadURL
			}
			continue
		}
		return file.DownloadURL, nil
	}
	if italic != "" {
		return italic, nil
	}
	return "", fmt.Errorf("no .ttf/.otf file found for %q on Google Fonts", folder)
}

// LookupFamily tries each of Folders(family) and returns the first download URL found.
func (f *Fetcher) LookupFamily(ctx context.Context, family string) (string, error) {
	folders := Folders(family)
	if len(folders) == 0 {
		return "", fmt.Errorf("invalid font name")
	}
	var lastErr error
	for _, folder := range folders {
		u, err := f.LookupFolder(ctx, folder)
		if err == nil {
			return u, nil
		}
		lastErr = err
	}
	return "", lastErr
}

// Download saves u under destDir and returns the file path. The name comes from
// Content-Disposition or the URL path.
func (f *Fetcher) Download(ctx context.Context, u, destDir string) (string, error) {
	resp, err := f.get(ctx, u)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: HTTP %d", resp.StatusCode)
	}

	name := filenameFromContentDisposition(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = filenameFromURL(u)
	}
	name = sanitizeFilename(name)
	if filepath.Ext(name) == "" {
		name += extensionFromContentType(resp.Header.Get("Content-Type"))
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	saved := filepath.Join(destDir, name)
	out, err := os.Create(saved)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = os.Remove(saved)
		return "", fmt.Errorf("download: %w", err)
	}
	return saved, nil
}

// Install fetches a font by family name or direct URL into destDir and returns the
// installed font files. Zip archives are unpacked and removed.
func (f *Fetcher) Install(ctx context.Context, nameOrURL, destDir string) ([]string, error) {
	u := nameOrURL
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		found, err := f.LookupFamily(ctx, nameOrURL)
		if err != nil {
			return nil, err
		}
		u = found
	}
	f.log.Info("fetching font", zap.String("url", u), zap.String("dir", destDir))
	saved, err := f.Download(ctx, u, destDir)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(saved)) {
	case ".zip":
		defer os.Remove(saved)
		return Unzip(saved, destDir)
	case ".ttf", ".otf":
		return []string{saved}, nil
	}
	_ = os.Remove(saved)
	return nil, fmt.Errorf("%s is not a font or zip archive", filepath.Base(saved))
}

func isFontName(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range assets.FontExts {
		if ext == e {
			return true
		}
	}
	return false
}

func filenameFromContentDisposition(cd string) string {
	cd = strings.TrimSpace(cd)
	if i := strings.Index(cd, "filename*=UTF-8''"); i >= 0 {
		s := cd[i+len("filename*=UTF-8''"):]
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return strings.Trim(s, "\"")
	}
	if i := strings.Index(cd, "filename="); i >= 0 {
		s := cd[i+len("filename="):]
		if j := strings.IndexAny(s, ";\r\n"); j >= 0 {
			s = s[:j]
		}
		return strings.Trim(s, "\" ")
	}
	return ""
}

func extensionFromContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	switch {
	case strings.Contains(ct, "zip"):
		return ".zip"
	case strings.Contains(ct, "otf"):
		return ".otf"
	case strings.Contains(ct, "font"), strings.Contains(ct, "ttf"):
		return ".ttf"
	}
	return ".bin"
}

func filenameFromURL(u string) string {
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	base, err := url.PathUnescape(filepath.Base(u))
	if err != nil {
		return filepath.Base(u)
	}
	return base
}

var safeNameRe = regexp.MustCompile(`[^a-zA-Z0-9_.\[\],-]+`)

func sanitizeFilename(name string) string {
	name = safeNameRe.ReplaceAllString(name, "_")
	name = strings.Trim(name, ".")
	if name == "" || name == "_" {
		return "font"
	}
	if len(name) > 96 {
		name = name[:96]
	}
	return name
}
