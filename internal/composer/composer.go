package composer

import (
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-composer/internal/config"
	"github.com/ironsheep/image-composer/internal/editor"
	imgops "github.com/ironsheep/image-composer/internal/imaging"
	"github.com/ironsheep/image-composer/internal/workspace"
)

// Composer owns the working set of one loaded directory.
//
// The working set is kept as two maps: order maps each display index
// (0..N-1, no gaps) to an image identity (its source path), and editors maps
// each identity to its Editor. Reordering only touches order.
type Composer struct {
	cfg    config.Config
	layout *workspace.Layout
	border imgops.Border
	logger *log.Logger

	order   map[int]string
	editors map[string]*editor.Editor

	composition *image.NRGBA
	stale       bool
}

// New creates a composer for paths, in that display order. Editors are
// created unprepared; call PrepareAll before editing.
func New(paths []string, cfg config.Config, logger *log.Logger) (*Composer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	borderColor, err := imgops.ParseColor(cfg.BorderColor)
	if err != nil {
		return nil, fmt.Errorf("border_color: %w", err)
	}

	layout := workspace.NewLayout(cfg)
	opts, err := editor.OptionsFromConfig(cfg, layout.EditedImagePath)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}

	c := &Composer{
		cfg:     cfg,
		layout:  layout,
		border:  imgops.Border{Width: cfg.BorderWidth, Color: borderColor},
		logger:  logger,
		order:   make(map[int]string, len(paths)),
		editors: make(map[string]*editor.Editor, len(paths)),
	}
	targets := make(map[string]string, len(paths))
	for i, p := range paths {
		if _, dup := c.editors[p]; dup {
			return nil, fmt.Errorf("duplicate image %s", p)
		}
		target := layout.EditedImagePath(p)
		if other, dup := targets[target]; dup {
			return nil, fmt.Errorf("images %s and %s would both be saved as %s", other, p, target)
		}
		targets[target] = p
		c.order[i] = p
		c.editors[p] = editor.New(p, opts)
	}
	return c, nil
}

// SetDebug switches debug logging on or off.
func (c *Composer) SetDebug(on bool) {
	c.cfg.Debug = on
}

func (c *Composer) debugf(format string, args ...interface{}) {
	if c.cfg.Debug {
		c.logger.Printf("DEBUG: "+format, args...)
	}
}

// PrepareAll loads every image in display order.
//
// Images that fail to load are logged, removed from the working set and
// returned as joined *imaging.LoadError values; the remaining images are
// renumbered so indices stay contiguous. A partial load is not fatal.
func (c *Composer) PrepareAll() error {
	var failures []error
	kept := make([]string, 0, len(c.order))

	for i := 0; i < len(c.order); i++ {
		id := c.order[i]
		if err := c.editors[id].Prepare(); err != nil {
			c.logger.Printf("Failed to prepare image %d: %v", i, err)
			failures = append(failures, err)
			delete(c.editors, id)
			continue
		}
		c.debugf("prepared %s (%v)", id, c.editors[id].Size())
		kept = append(kept, id)
	}

	c.order = make(map[int]string, len(kept))
	for i, id := range kept {
		c.order[i] = id
	}
	c.markStale()
	return errors.Join(failures...)
}

// Len returns the number of images in the working set.
func (c *Composer) Len() int {
	return len(c.order)
}

// CheckIndex reports whether i is a current display index.
func (c *Composer) CheckIndex(i int) bool {
	_, ok := c.order[i]
	return ok
}

// Identities returns the source paths in display order.
func (c *Composer) Identities() []string {
	ids := make([]string, len(c.order))
	for i := range ids {
		ids[i] = c.order[i]
	}
	return ids
}

// Editor returns the editor at display index i.
func (c *Composer) Editor(i int) (*editor.Editor, bool) {
	id, ok := c.order[i]
	if !ok {
		return nil, false
	}
	return c.editors[id], true
}

// Reindex swaps the images at indices i and j. It returns false and changes
// nothing if either index is invalid.
func (c *Composer) Reindex(i, j int) bool {
	if !c.CheckIndex(i) || !c.CheckIndex(j) {
		return false
	}
	c.order[i], c.order[j] = c.order[j], c.order[i]
	if i != j {
		c.markStale()
	}
	c.debugf("swapped %d and %d", i, j)
	return true
}

// apply runs op on the editor at i and marks the composition stale if it
// changed anything.
func (c *Composer) apply(i int, op func(*editor.Editor) bool) bool {
	e, ok := c.Editor(i)
	if !ok {
		return false
	}
	if !op(e) {
		return false
	}
	c.markStale()
	return true
}

// Fit runs the fit detector on image i.
func (c *Composer) Fit(i, strength int) bool {
	return c.apply(i, func(e *editor.Editor) bool { return e.Fit(strength) })
}

// Rotate turns image i clockwise by degrees.
func (c *Composer) Rotate(i int, degrees float64) bool {
	return c.apply(i, func(e *editor.Editor) bool { return e.Rotate(degrees) })
}

// Undo steps image i back one version.
func (c *Composer) Undo(i int) bool {
	return c.apply(i, (*editor.Editor).Undo)
}

// Redo re-applies the last undone version of image i.
func (c *Composer) Redo(i int) bool {
	return c.apply(i, (*editor.Editor).Redo)
}

func (c *Composer) markStale() {
	if c.composition != nil {
		c.stale = true
	}
}

// Compose builds the composition from the current version of every image in
// display order, normalised to the smallest height in the set.
func (c *Composer) Compose() (*image.NRGBA, error) {
	if len(c.order) == 0 {
		return nil, ErrEmptyWorkingSet
	}

	images := make([]image.Image, 0, len(c.order))
	for i := 0; i < len(c.order); i++ {
		cur := c.editors[c.order[i]].Current()
		if cur == nil {
			return nil, fmt.Errorf("image %d: %w", i, editor.ErrNotPrepared)
		}
		images = append(images, cur)
	}

	height := imgops.MinHeight(images)
	composed, err := imgops.Compose(images, height, c.border)
	if err != nil {
		return nil, fmt.Errorf("failed to compose: %w", err)
	}
	c.debugf("composed %d images at height %d: %v", len(images), height, composed.Bounds().Size())

	c.composition = composed
	c.stale = false
	return imaging.Clone(composed), nil
}

// Composition returns a copy of the last composition, or nil if Compose has
// not succeeded yet.
func (c *Composer) Composition() *image.NRGBA {
	if c.composition == nil {
		return nil
	}
	return imaging.Clone(c.composition)
}

// Stale reports whether an image changed since the last Compose.
func (c *Composer) Stale() bool {
	return c.stale
}

// PreviewComposition returns the last composition scaled to width.
func (c *Composer) PreviewComposition(width int) (*image.NRGBA, error) {
	if c.composition == nil {
		return nil, ErrNoComposition
	}
	if width < 1 {
		return nil, fmt.Errorf("invalid preview width %d", width)
	}
	return imgops.ResizeToWidth(c.composition, width), nil
}

// Save writes the last composition to imagePath, every edited image to its
// derived path and a manifest to manifestPath.
//
// Each step is attempted even if an earlier one failed. Failures are
// collected into a *PartialSaveError; files already written are kept. The
// manifest only lists edited images that were written, in display order.
func (c *Composer) Save(imagePath, manifestPath string) error {
	var failures []error

	if c.composition == nil {
		failures = append(failures, fmt.Errorf("composed image: %w", ErrNoComposition))
	} else if err := imgops.Save(imagePath, c.composition, c.cfg.JPEGQuality); err != nil {
		failures = append(failures, err)
	} else {
		c.debugf("wrote composition to %s", imagePath)
	}

	edited := make([]string, 0, len(c.order))
	for i := 0; i < len(c.order); i++ {
		path, err := c.editors[c.order[i]].Save()
		if err != nil {
			failures = append(failures, fmt.Errorf("image %d: %w", i, err))
			continue
		}
		edited = append(edited, path)
		c.debugf("wrote %s", path)
	}

	manifest := workspace.Manifest{Composed: imagePath, Edited: edited}
	if err := workspace.WriteManifest(manifestPath, manifest); err != nil {
		failures = append(failures, err)
	}

	if len(failures) > 0 {
		return &PartialSaveError{Failures: failures}
	}
	return nil
}

// SaveToDirectory saves into dir using the configured file names.
func (c *Composer) SaveToDirectory(dir string) (imagePath, manifestPath string, err error) {
	imagePath = c.layout.ComposedImagePath(dir)
	manifestPath = c.layout.ManifestPath(dir)
	return imagePath, manifestPath, c.Save(imagePath, manifestPath)
}
