package imaging

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// createTestImage creates a simple test image file in a temp dir and returns its path.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "test-image.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := createTestImage(t, 100, 80, color.RGBA{255, 0, 0, 255})

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 100, 80) {
		t.Errorf("bounds: got %v, want (0,0)-(100,80)", img.Bounds())
	}
	if c := img.NRGBAAt(10, 10); c != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("pixel: got %v, want red", c)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	notImage := filepath.Join(dir, "notes.png")
	if err := os.WriteFile(notImage, []byte("definitely not a png"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.png")},
		{"undecodable file", notImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("expected *LoadError, got %v", err)
			}
			if loadErr.Path != tt.path {
				t.Errorf("Path: got %s, want %s", loadErr.Path, tt.path)
			}
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	img := createPatternImage(40, 20)

	path := filepath.Join(dir, "out.png")
	if err := Save(path, img, 95); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !Equal(img, loaded) {
		t.Error("PNG round trip changed pixels")
	}
}

func TestSave_JPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jpg")
	if err := Save(path, createPatternImage(40, 20), 80); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	info, err := LoadImageInfo(path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if info.Format != "jpeg" || info.Width != 40 || info.Height != 20 {
		t.Errorf("info: got %+v", info)
	}
}

func TestSave_Errors(t *testing.T) {
	dir := t.TempDir()
	if err := Save(filepath.Join(dir, "out.xyz"), createPatternImage(4, 4), 95); err == nil {
		t.Error("Save should fail for an unknown extension")
	}
	if err := Save(filepath.Join(dir, "out.png"), nil, 95); err == nil {
		t.Error("Save should fail for a nil image")
	}
}

func TestCanEncode(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.png", true},
		{"a.JPG", true},
		{"a.tiff", true},
		{"a.webp", false},
		{"a", false},
	}
	for _, tt := range tests {
		if got := CanEncode(tt.path); got != tt.want {
			t.Errorf("CanEncode(%s): got %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestLoadImageInfo(t *testing.T) {
	path := createTestImage(t, 64, 32, color.RGBA{0, 0, 255, 255})

	info, err := LoadImageInfo(path)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if info.Width != 64 || info.Height != 32 {
		t.Errorf("dimensions: got %dx%d, want 64x32", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("FileSizeBytes: got %d, want > 0", info.FileSizeBytes)
	}
}
