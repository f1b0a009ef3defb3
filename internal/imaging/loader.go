package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// LoadError reports that a source file could not be read or decoded.
//
// It is the only failure an editor can hit while preparing, and it makes that
// editor unusable. Callers use errors.As to tell it apart from other errors.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load image %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load opens and decodes the image at path.
//
// JPEG files are rotated according to their EXIF orientation tag so the
// returned pixels match what a photo viewer shows. The result is always an
// *image.NRGBA with bounds starting at (0,0).
//
// # Errors
//
// Any failure is returned as a *LoadError.
func Load(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return imaging.Clone(img), nil
}

// Save encodes img to path, choosing the encoder from the file extension.
// jpegQuality is only used for .jpg and .jpeg targets.
func Save(path string, img image.Image, jpegQuality int) error {
	if img == nil {
		return errors.New("failed to save image: nil image")
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("failed to save image %s: %w", path, err)
	}
	return nil
}

// CanEncode reports whether Save knows an encoder for the extension of path.
func CanEncode(path string) bool {
	_, err := imaging.FormatFromFilename(path)
	return err == nil
}

// ImageInfo contains metadata about an image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int

	// Height is the image height in pixels.
	Height int

	// Format is derived from the file extension ("jpeg", "png", ...).
	Format string

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64
}

// LoadImageInfo reads the image header and file size of path without
// decoding the pixel data.
func LoadImageInfo(path string) (*ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".tif", ".tiff":
		format = "tiff"
	case "":
	default:
		format = ext[1:]
	}

	return &ImageInfo{
		Width:         cfg.Width,
		Height:        cfg.Height,
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}
