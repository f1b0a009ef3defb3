package shell

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ironsheep/image-composer/internal/composer"
	"github.com/ironsheep/image-composer/internal/editor"
	imgops "github.com/ironsheep/image-composer/internal/imaging"
)

// requireComposer reports a failure when no directory is loaded.
func (s *Shell) requireComposer() bool {
	if s.composer == nil {
		s.out.failf("No directory loaded (use load <dir>)")
		return false
	}
	return true
}

// parseIndex converts arg to a display index of the working set.
func (s *Shell) parseIndex(arg string) (int, bool) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		s.out.failf("Invalid index %q: not a number", arg)
		return 0, false
	}
	if !s.composer.CheckIndex(i) {
		s.out.failf("Invalid index %d: working set has %d images", i, s.composer.Len())
		return 0, false
	}
	return i, true
}

func (s *Shell) parseStrength(arg string) (int, bool) {
	strength, err := strconv.Atoi(arg)
	if err != nil || strength < 1 {
		s.out.failf("Invalid strength %q: must be a positive integer", arg)
		return 0, false
	}
	return strength, true
}

// writePreview saves img as name under the preview directory.
func (s *Shell) writePreview(name string, img image.Image) {
	if err := os.MkdirAll(s.previewDir, 0o755); err != nil {
		s.out.failf("Cannot create preview directory: %v", err)
		return
	}
	path := filepath.Join(s.previewDir, name)
	if err := imgops.Save(path, img, s.cfg.JPEGQuality); err != nil {
		s.out.failf("Cannot write preview: %v", err)
		return
	}
	s.out.printf("Preview written to %s", path)
}

func (s *Shell) handleLoad(args []string) bool {
	dir := args[0]
	paths, err := s.layout.ScanDirectory(dir)
	if err != nil {
		s.out.failf("Cannot read directory: %v", err)
		return false
	}
	if len(paths) == 0 {
		s.out.warnf("No images found in %s", dir)
	}

	c, err := composer.New(paths, s.cfg, s.logger)
	if err != nil {
		s.out.failf("Cannot start composer: %v", err)
		return false
	}
	if err := c.PrepareAll(); err != nil {
		for _, e := range splitErrors(err) {
			var loadErr *imgops.LoadError
			if errors.As(e, &loadErr) {
				s.out.failf("Could not load %s: %v", loadErr.Path, loadErr.Err)
				continue
			}
			s.out.failf("%v", e)
		}
	}

	s.dir, s.composer = dir, c
	s.out.printf("Loaded %d images from %s", c.Len(), dir)
	return false
}

// splitErrors undoes errors.Join.
func splitErrors(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

func (s *Shell) handleList(args []string) bool {
	if !s.requireComposer() {
		return false
	}
	if s.composer.Len() == 0 {
		s.out.warnf("Working set is empty")
		return false
	}
	for i, id := range s.composer.Identities() {
		e, _ := s.composer.Editor(i)
		size := e.Size()
		undo, redo := e.Depth()
		s.out.printf("%2d  %s  %dx%d  (undo %d, redo %d)", i, filepath.Base(id), size.X, size.Y, undo, redo)
	}
	return false
}

func (s *Shell) handleFit(args []string) bool {
	if !s.requireComposer() {
		return false
	}
	i, ok := s.parseIndex(args[0])
	if !ok {
		return false
	}
	strength, ok := s.parseStrength(args[1])
	if !ok {
		return false
	}

	if !s.composer.Fit(i, strength) {
		s.out.warnf("No fit region found in image %d at strength %d", i, strength)
		return false
	}
	e, _ := s.composer.Editor(i)
	size := e.Size()
	s.out.printf("Fitted image %d: now %dx%d", i, size.X, size.Y)
	return false
}

func (s *Shell) handleOutline(args []string) bool {
	if !s.requireComposer() {
		return false
	}
	i, ok := s.parseIndex(args[0])
	if !ok {
		return false
	}
	strength, ok := s.parseStrength(args[1])
	if !ok {
		return false
	}

	e, _ := s.composer.Editor(i)
	overlay, found := e.FitPreview(strength)
	if !found {
		s.out.warnf("No fit region found in image %d at strength %d", i, strength)
		return false
	}
	s.writePreview(fmt.Sprintf("outline_%d.png", i), overlay)
	return false
}

func (s *Shell) handleRotate(args []string) bool {
	if !s.requireComposer() {
		return false
	}
	i, ok := s.parseIndex(args[0])
	if !ok {
		return false
	}
	angle, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		s.out.failf("Invalid angle %q: not a number", args[1])
		return false
	}

	s.composer.Rotate(i, angle)
	s.out.printf("Rotated image %d by %g degrees", i, angle)
	return false
}

func (s *Shell) handleUndo(args []string) bool {
	if !s.requireComposer() {
		return false
	}
	i, ok := s.parseIndex(args[0])
	if !ok {
		return false
	}
	if !s.composer.Undo(i) {
		s.out.warnf("Nothing to undo for image %d", i)
		return false
	}
	s.out.printf("Undid last edit of image %d", i)
	return false
}

func (s *Shell) handleRedo(args []string) bool {
	if !s.requireComposer() {
		return false
	}
	i, ok := s.parseIndex(args[0])
	if !ok {
		return false
	}
	if !s.composer.Redo(i) {
		s.out.warnf("Nothing to redo for image %d", i)
		return false
	}
	s.out.printf("Redid last edit of image %d", i)
	return false
}

func (s *Shell) handleSwap(args []string) bool {
	if !s.requireComposer() {
		return false
	}
	i, ok := s.parseIndex(args[0])
	if !ok {
		return false
	}
	j, ok := s.parseIndex(args[1])
	if !ok {
		return false
	}
	s.composer.Reindex(i, j)
	s.out.printf("Swapped images %d and %d", i, j)
	return false
}

func (s *Shell) handleCompose(args []string) bool {
	if !s.requireComposer() {
		return false
	}
	composed, err := s.composer.Compose()
	switch {
	case errors.Is(err, composer.ErrEmptyWorkingSet):
		s.out.failf("Nothing to compose: working set is empty")
		return false
	case err != nil:
		s.out.failf("Compose failed: %v", err)
		return false
	}
	size := composed.Bounds().Size()
	s.out.printf("Composed %d images into %dx%d", s.composer.Len(), size.X, size.Y)
	return false
}

func (s *Shell) handleSave(args []string) bool {
	if !s.requireComposer() {
		return false
	}
	if s.composer.Stale() {
		s.out.warnf("Images changed since the last compose; saving the last composition")
	}

	imagePath, manifestPath, err := s.composer.SaveToDirectory(s.dir)
	var partial *composer.PartialSaveError
	switch {
	case errors.As(err, &partial):
		s.out.warnf("Save incomplete, %d step(s) failed:", len(partial.Failures))
		for _, f := range partial.Failures {
			if errors.Is(f, composer.ErrNoComposition) {
				s.out.failf("  Nothing composed yet (run compose)")
				continue
			}
			s.out.failf("  %v", f)
		}
		return false
	case err != nil:
		s.out.failf("Save failed: %v", err)
		return false
	}

	s.out.printf("Saved %s", imagePath)
	s.out.printf("Saved %d edited images", s.composer.Len())
	s.out.printf("Saved %s", manifestPath)
	return false
}

func (s *Shell) handlePreview(args []string) bool {
	if !s.requireComposer() {
		return false
	}

	if strings.EqualFold(args[0], "all") {
		preview, err := s.composer.PreviewComposition(s.cfg.CompositionPreviewWidth)
		if errors.Is(err, composer.ErrNoComposition) {
			s.out.failf("Nothing composed yet (run compose)")
			return false
		} else if err != nil {
			s.out.failf("Preview failed: %v", err)
			return false
		}
		if s.composer.Stale() {
			s.out.warnf("Images changed since the last compose")
		}
		s.writePreview("preview_composition.png", preview)
		return false
	}

	i, ok := s.parseIndex(args[0])
	if !ok {
		return false
	}
	e, _ := s.composer.Editor(i)
	preview, err := e.Preview(s.cfg.PreviewWidth)
	if errors.Is(err, editor.ErrNotPrepared) {
		s.out.failf("Image %d is not loaded", i)
		return false
	} else if err != nil {
		s.out.failf("Preview failed: %v", err)
		return false
	}
	s.writePreview(fmt.Sprintf("preview_%d.png", i), preview)
	return false
}

func (s *Shell) handleInfo(args []string) bool {
	if !s.requireComposer() {
		return false
	}
	i, ok := s.parseIndex(args[0])
	if !ok {
		return false
	}
	e, _ := s.composer.Editor(i)

	s.out.titlef("Image %d", i)
	s.out.printf("Source:  %s", e.Path())
	if info, err := imgops.LoadImageInfo(e.Path()); err != nil {
		s.out.warnf("Source unreadable: %v", err)
	} else {
		s.out.printf("Format:  %s, %dx%d, %d bytes", info.Format, info.Width, info.Height, info.FileSizeBytes)
	}
	size := e.Size()
	undo, redo := e.Depth()
	s.out.printf("Current: %dx%d", size.X, size.Y)
	s.out.printf("History: %d undo, %d redo", undo, redo)
	s.out.printf("Saves:   %s", e.EditedPath())
	return false
}

func (s *Shell) handleDebug(args []string) bool {
	s.cfg.Debug = !s.cfg.Debug
	if s.composer != nil {
		s.composer.SetDebug(s.cfg.Debug)
	}
	if s.cfg.Debug {
		s.out.debugf("Debug output on")
		s.out.debugf("Border %dpx %s, overlay %dpx %s, fit mode %s",
			s.cfg.BorderWidth, normalizedHex(s.cfg.BorderColor),
			s.cfg.OverlayThickness, normalizedHex(s.cfg.OverlayColor), s.cfg.FitMode)
	} else {
		s.out.printf("Debug output off")
	}
	return false
}

// normalizedHex returns a configured colour in "#rrggbb" form.
func normalizedHex(hex string) string {
	c, err := imgops.ParseColor(hex)
	if err != nil {
		return hex
	}
	return imgops.HexColor(c)
}

func (s *Shell) handleHelp(args []string) bool {
	s.out.titlef("Commands (a leading \\ is optional):")
	for _, c := range Commands() {
		usage := c.Usage
		if len(c.Aliases) > 0 {
			usage += " [" + strings.Join(c.Aliases, ", ") + "]"
		}
		s.out.printf("%-28s %s", usage, c.Description)
	}
	return false
}

func (s *Shell) handleQuit(args []string) bool {
	return true
}
