package editor

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/image-composer/internal/config"
	imgops "github.com/ironsheep/image-composer/internal/imaging"
)

// writeImage encodes img as PNG into dir and returns its path.
func writeImage(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func solidImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// squareImage is white with a black square in the middle half.
func squareImage(width, height int) *image.RGBA {
	img := solidImage(width, height, color.White)
	for y := height / 4; y < 3*height/4; y++ {
		for x := width / 4; x < 3*width/4; x++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

func testOptions(t *testing.T, mode string) Options {
	t.Helper()
	cfg := config.Default()
	cfg.FitMode = mode
	cfg.FitPadding = 0
	opts, err := OptionsFromConfig(cfg, func(p string) string {
		return filepath.Join(filepath.Dir(p), "edited_"+filepath.Base(p))
	})
	if err != nil {
		t.Fatalf("OptionsFromConfig failed: %v", err)
	}
	return opts
}

func newPreparedEditor(t *testing.T, img image.Image, mode string) *Editor {
	t.Helper()
	path := writeImage(t, t.TempDir(), "source.png", img)
	e := New(path, testOptions(t, mode))
	if err := e.Prepare(); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	return e
}

func TestEditor_Unprepared(t *testing.T) {
	e := New(filepath.Join(t.TempDir(), "missing.png"), testOptions(t, config.FitCrop))

	if e.Prepared() {
		t.Error("new editor should be unprepared")
	}
	if e.Current() != nil {
		t.Error("Current should be nil before Prepare")
	}
	if e.Rotate(90) || e.Fit(1) || e.Undo() || e.Redo() {
		t.Error("operations on an unprepared editor should return false")
	}
	if _, err := e.Save(); !errors.Is(err, ErrNotPrepared) {
		t.Errorf("Save: got %v, want ErrNotPrepared", err)
	}
	if _, err := e.Preview(10); !errors.Is(err, ErrNotPrepared) {
		t.Errorf("Preview: got %v, want ErrNotPrepared", err)
	}
}

func TestEditor_PrepareLoadError(t *testing.T) {
	e := New(filepath.Join(t.TempDir(), "missing.png"), testOptions(t, config.FitCrop))

	err := e.Prepare()
	var loadErr *imgops.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
	if e.Prepared() {
		t.Error("editor should stay unprepared after a failed load")
	}
}

func TestEditor_CurrentIsCopy(t *testing.T) {
	e := newPreparedEditor(t, solidImage(20, 10, color.White), config.FitCrop)

	cur := e.Current()
	cur.Set(0, 0, color.Black)

	if imgops.Equal(cur, e.Current()) {
		t.Error("changing the returned image changed the history")
	}
}

func TestEditor_UndoRedoInverse(t *testing.T) {
	e := newPreparedEditor(t, squareImage(60, 40), config.FitCrop)
	if !e.Rotate(30) {
		t.Fatal("Rotate failed")
	}
	before := e.Current()

	if !e.Undo() {
		t.Fatal("Undo failed")
	}
	if !e.Redo() {
		t.Fatal("Redo failed")
	}
	if !imgops.Equal(before, e.Current()) {
		t.Error("undo followed by redo did not restore the image")
	}
	if e.Redo() {
		t.Error("Redo with an empty redo stack should return false")
	}
}

func TestEditor_UndoStopsAtOriginal(t *testing.T) {
	original := squareImage(60, 40)
	e := newPreparedEditor(t, original, config.FitCrop)

	if e.Undo() {
		t.Error("Undo with only the original should return false")
	}

	e.Rotate(90)
	e.Rotate(90)
	if !e.Undo() || !e.Undo() {
		t.Fatal("two undos should succeed after two rotations")
	}
	if e.Undo() {
		t.Error("third undo should fail")
	}
	if !imgops.Equal(original, e.Current()) {
		t.Error("undoing everything did not restore the original")
	}
}

func TestEditor_NewEditClearsRedo(t *testing.T) {
	tests := []struct {
		name string
		edit func(e *Editor) bool
	}{
		{"rotate", func(e *Editor) bool { return e.Rotate(45) }},
		{"fit", func(e *Editor) bool { return e.Fit(2) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newPreparedEditor(t, squareImage(80, 60), config.FitCrop)
			e.Rotate(10)
			if !e.Undo() {
				t.Fatal("Undo failed")
			}
			if !tt.edit(e) {
				t.Fatal("edit failed")
			}
			if e.Redo() {
				t.Error("Redo should return false after a new edit")
			}
		})
	}
}

func TestEditor_RotateKeepsSize(t *testing.T) {
	e := newPreparedEditor(t, squareImage(200, 100), config.FitCrop)
	e.Rotate(90)
	if got := e.Size(); got != image.Pt(200, 100) {
		t.Errorf("size after rotate: got %v, want (200,100)", got)
	}
}

func TestEditor_FitCrop(t *testing.T) {
	e := newPreparedEditor(t, squareImage(120, 80), config.FitCrop)

	if !e.Fit(2) {
		t.Fatal("Fit should find the square")
	}
	size := e.Size()
	if size.X >= 120 || size.Y >= 80 {
		t.Errorf("crop did not shrink the image: %v", size)
	}
	// The square is 60x40; the crop hugs it within a few pixels.
	if size.X < 56 || size.X > 68 || size.Y < 36 || size.Y > 48 {
		t.Errorf("crop size: got %v, want about 60x40", size)
	}
	if applied, redo := e.Depth(); applied != 1 || redo != 0 {
		t.Errorf("Depth: got (%d,%d), want (1,0)", applied, redo)
	}
}

func TestEditor_FitOverlay(t *testing.T) {
	e := newPreparedEditor(t, squareImage(120, 80), config.FitOverlay)
	before := e.Current()

	if !e.Fit(2) {
		t.Fatal("Fit should find the square")
	}
	if e.Size() != image.Pt(120, 80) {
		t.Errorf("overlay changed the size: %v", e.Size())
	}
	if imgops.Equal(before, e.Current()) {
		t.Error("overlay did not draw anything")
	}
}

func TestEditor_FitFailureLeavesHistory(t *testing.T) {
	e := newPreparedEditor(t, solidImage(50, 50, color.RGBA{90, 90, 90, 255}), config.FitCrop)
	e.Rotate(0)
	e.Undo()
	before := e.Current()

	if e.Fit(3) {
		t.Fatal("Fit on a uniform image should fail")
	}
	if !imgops.Equal(before, e.Current()) {
		t.Error("failed Fit changed the current image")
	}
	if applied, redo := e.Depth(); applied != 0 || redo != 1 {
		t.Errorf("failed Fit changed the stacks: got (%d,%d), want (0,1)", applied, redo)
	}
}

func TestEditor_FitPreviewDoesNotPush(t *testing.T) {
	e := newPreparedEditor(t, squareImage(120, 80), config.FitCrop)

	preview, ok := e.FitPreview(2)
	if !ok || preview == nil {
		t.Fatal("FitPreview should find the square")
	}
	if applied, _ := e.Depth(); applied != 0 {
		t.Errorf("FitPreview pushed a version: depth %d", applied)
	}
	if _, ok := New("x", testOptions(t, config.FitCrop)).FitPreview(2); ok {
		t.Error("FitPreview on an unprepared editor should fail")
	}
}

func TestEditor_Preview(t *testing.T) {
	e := newPreparedEditor(t, squareImage(200, 100), config.FitCrop)

	p, err := e.Preview(50)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if p.Bounds().Dx() != 50 || p.Bounds().Dy() != 25 {
		t.Errorf("preview: got %dx%d, want 50x25", p.Bounds().Dx(), p.Bounds().Dy())
	}
	if _, err := e.Preview(0); err == nil {
		t.Error("Preview(0) should fail")
	}
}

func TestEditor_Save(t *testing.T) {
	e := newPreparedEditor(t, squareImage(40, 30), config.FitCrop)
	e.Rotate(180)

	path, err := e.Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if path != e.EditedPath() || filepath.Base(path) != "edited_source.png" {
		t.Errorf("Save path: got %s", path)
	}

	saved, err := imgops.Load(path)
	if err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if !imgops.Equal(saved, e.Current()) {
		t.Error("saved image differs from the current image")
	}

	// Saving again overwrites the same path.
	again, err := e.Save()
	if err != nil || again != path {
		t.Errorf("second Save: got (%s, %v)", again, err)
	}
}
