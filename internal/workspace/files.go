package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/ironsheep/image-composer/internal/config"
	"github.com/ironsheep/image-composer/internal/imaging"
)

// Layout names the files the tool reads and writes in a directory.
type Layout struct {
	composedName string
	manifestName string
	toolPrefix   string
	editedPrefix string
	extensions   map[string]bool
}

// NewLayout builds a Layout from cfg.
func NewLayout(cfg config.Config) *Layout {
	exts := make(map[string]bool, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		exts["."+strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}
	return &Layout{
		composedName: cfg.ComposedFilename,
		manifestName: cfg.ManifestFilename,
		toolPrefix:   cfg.ToolPrefix,
		editedPrefix: cfg.EditedPrefix,
		extensions:   exts,
	}
}

// IsImage reports whether name carries one of the accepted extensions.
func (l *Layout) IsImage(name string) bool {
	return l.extensions[strings.ToLower(filepath.Ext(name))]
}

// IsToolOutput reports whether name was written by this tool.
func (l *Layout) IsToolOutput(name string) bool {
	if l.toolPrefix != "" && strings.HasPrefix(name, l.toolPrefix) {
		return true
	}
	return name == l.composedName || name == l.manifestName
}

// ComposedImagePath returns where the composed image of dir is written.
func (l *Layout) ComposedImagePath(dir string) string {
	return filepath.Join(dir, l.composedName)
}

// ManifestPath returns where the manifest of dir is written.
func (l *Layout) ManifestPath(dir string) string {
	return filepath.Join(dir, l.manifestName)
}

// EditedImagePath returns the path an edited version of source is saved to:
// the same directory, the base name with the edited prefix. Sources whose
// format cannot be written (e.g. WebP) are saved as PNG with ".png" appended
// to the full name, so photo.webp and photo.png never share a target.
func (l *Layout) EditedImagePath(source string) string {
	dir, name := filepath.Split(source)
	target := filepath.Join(dir, l.editedPrefix+name)
	if !imaging.CanEncode(target) {
		target += ".png"
	}
	return target
}

// scanned is a candidate file with its capture time, if known.
type scanned struct {
	path  string
	taken time.Time
}

// ScanDirectory lists the source images of dir.
//
// Only regular files with an accepted extension are returned; files written
// by this tool are skipped. Photos with an EXIF capture time come first,
// oldest first, followed by the rest; ties are broken by file name.
func (l *Layout) ScanDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	files := make([]scanned, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || !l.IsImage(name) || l.IsToolOutput(name) {
			continue
		}
		path := filepath.Join(dir, name)
		taken, _ := captureTime(path)
		files = append(files, scanned{path: path, taken: taken})
	}

	sort.SliceStable(files, func(i, j int) bool {
		a, b := files[i], files[j]
		if a.taken.IsZero() != b.taken.IsZero() {
			return !a.taken.IsZero()
		}
		if !a.taken.Equal(b.taken) {
			return a.taken.Before(b.taken)
		}
		return a.path < b.path
	})

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.path
	}
	return paths, nil
}

// captureTime extracts the capture date from a photo's EXIF metadata.
// Returns an error if the file cannot be read or has no EXIF data.
func captureTime(path string) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, err
	}
	return x.DateTime()
}
