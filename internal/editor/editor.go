package editor

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-composer/internal/config"
	"github.com/ironsheep/image-composer/internal/detection"
	imgops "github.com/ironsheep/image-composer/internal/imaging"
)

// ErrNotPrepared is returned by operations that need a loaded image.
var ErrNotPrepared = errors.New("image not prepared")

// Options configures an Editor.
type Options struct {
	// FitMode is config.FitCrop or config.FitOverlay.
	FitMode string

	// FitPadding grows the detected region before cropping.
	FitPadding int

	// EdgeConstant is the upper edge threshold at strength 1.
	EdgeConstant float64

	// OverlayColor and OverlayThickness style the contour overlay.
	OverlayColor     color.Color
	OverlayThickness int

	// EditedPath maps the source path to the path Save writes to.
	EditedPath func(source string) string

	// JPEGQuality is used when the edited path is a JPEG.
	JPEGQuality int
}

// OptionsFromConfig builds editor options from cfg. editedPath is the
// naming rule for saved edits.
func OptionsFromConfig(cfg config.Config, editedPath func(string) string) (Options, error) {
	overlay, err := imgops.ParseColor(cfg.OverlayColor)
	if err != nil {
		return Options{}, fmt.Errorf("overlay_color: %w", err)
	}
	return Options{
		FitMode:          cfg.FitMode,
		FitPadding:       cfg.FitPadding,
		EdgeConstant:     cfg.EdgeConstant,
		OverlayColor:     overlay,
		OverlayThickness: cfg.OverlayThickness,
		EditedPath:       editedPath,
		JPEGQuality:      cfg.JPEGQuality,
	}, nil
}

// Editor owns the edit history of one source image.
//
// An Editor starts unprepared. Prepare loads the source file as the first
// history entry; every other operation is a no-op (false) until then.
type Editor struct {
	path    string
	opts    Options
	history History
}

// New creates an unprepared editor for the image at path.
func New(path string, opts Options) *Editor {
	return &Editor{path: path, opts: opts}
}

// Path returns the source path, which is also the editor's identity.
func (e *Editor) Path() string {
	return e.path
}

// EditedPath returns where Save writes the current image.
func (e *Editor) EditedPath() string {
	return e.opts.EditedPath(e.path)
}

// Prepare loads the source file into a fresh history.
// Failures are *imaging.LoadError and leave the editor unprepared.
func (e *Editor) Prepare() error {
	img, err := imgops.Load(e.path)
	if err != nil {
		return err
	}
	e.history.Reset(img)
	return nil
}

// Prepared reports whether the editor has an image loaded.
func (e *Editor) Prepared() bool {
	return e.history.Top() != nil
}

// Current returns a copy of the current image, or nil when unprepared.
// Changing the returned image does not affect the history.
func (e *Editor) Current() *image.NRGBA {
	top := e.history.Top()
	if top == nil {
		return nil
	}
	return imaging.Clone(top)
}

// Size returns the dimensions of the current image without copying it.
func (e *Editor) Size() image.Point {
	top := e.history.Top()
	if top == nil {
		return image.Point{}
	}
	return top.Bounds().Size()
}

// Depth returns how many versions can be undone and redone.
func (e *Editor) Depth() (undo, redo int) {
	applied, undone := e.history.Depth()
	if applied > 0 {
		applied--
	}
	return applied, undone
}

// detect runs the fit detector on the current image.
func (e *Editor) detect(strength int) ([]detection.Contour, bool) {
	top := e.history.Top()
	if top == nil {
		return nil, false
	}
	contours, err := detection.DetectFitRegion(top, strength, e.opts.EdgeConstant)
	if err != nil || len(contours) == 0 {
		return nil, false
	}
	return contours, true
}

// Fit detects the dominant region of the current image and records the
// result as a new version.
//
// In crop mode the image is cropped to the detected region plus padding; in
// overlay mode the contours are drawn onto a copy instead. Fit returns false
// and leaves the history untouched when nothing is detected.
func (e *Editor) Fit(strength int) bool {
	contours, ok := e.detect(strength)
	if !ok {
		return false
	}

	var fitted *image.NRGBA
	switch e.opts.FitMode {
	case config.FitOverlay:
		fitted = detection.RenderOverlay(e.history.Top(), contours, e.opts.OverlayColor, e.opts.OverlayThickness)
	default:
		cropped, err := imgops.Crop(e.history.Top(), detection.Extent(contours), e.opts.FitPadding)
		if err != nil {
			return false
		}
		fitted = cropped
	}

	e.history.Push(fitted)
	return true
}

// FitPreview draws the detected contours onto a copy of the current image
// without changing the history.
func (e *Editor) FitPreview(strength int) (*image.NRGBA, bool) {
	contours, ok := e.detect(strength)
	if !ok {
		return nil, false
	}
	return detection.RenderOverlay(e.history.Top(), contours, e.opts.OverlayColor, e.opts.OverlayThickness), true
}

// Rotate records the current image turned clockwise by degrees.
func (e *Editor) Rotate(degrees float64) bool {
	top := e.history.Top()
	if top == nil {
		return false
	}
	e.history.Push(imgops.Rotate(top, degrees))
	return true
}

// Undo steps back one version.
func (e *Editor) Undo() bool {
	return e.history.Undo()
}

// Redo re-applies the last undone version.
func (e *Editor) Redo() bool {
	return e.history.Redo()
}

// Preview returns the current image scaled to width.
func (e *Editor) Preview(width int) (*image.NRGBA, error) {
	top := e.history.Top()
	if top == nil {
		return nil, ErrNotPrepared
	}
	if width < 1 {
		return nil, fmt.Errorf("invalid preview width %d", width)
	}
	return imgops.ResizeToWidth(top, width), nil
}

// Save writes the current image to EditedPath and returns that path.
func (e *Editor) Save() (string, error) {
	top := e.history.Top()
	if top == nil {
		return "", fmt.Errorf("failed to save %s: %w", e.path, ErrNotPrepared)
	}
	target := e.EditedPath()
	if err := imgops.Save(target, top, e.opts.JPEGQuality); err != nil {
		return "", err
	}
	return target, nil
}
