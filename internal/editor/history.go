package editor

import "image"

// History is a linear undo/redo record of image versions.
//
// applied holds versions oldest to newest; its last element is the current
// image. undone holds versions taken off applied by Undo, most recent last.
// The first applied entry (the loaded original) is never removed.
type History struct {
	applied []*image.NRGBA
	undone  []*image.NRGBA
}

// Reset discards everything and starts over with original as the only entry.
func (h *History) Reset(original *image.NRGBA) {
	h.applied = []*image.NRGBA{original}
	h.undone = nil
}

// Push records a new version and clears the redo stack.
func (h *History) Push(img *image.NRGBA) {
	h.applied = append(h.applied, img)
	h.undone = nil
}

// Undo moves the current version onto the redo stack. It does nothing and
// returns false when only the original is left.
func (h *History) Undo() bool {
	if len(h.applied) < 2 {
		return false
	}
	top := h.applied[len(h.applied)-1]
	h.applied = h.applied[:len(h.applied)-1]
	h.undone = append(h.undone, top)
	return true
}

// Redo re-applies the most recently undone version. It returns false when
// there is nothing to redo.
func (h *History) Redo() bool {
	if len(h.undone) == 0 {
		return false
	}
	top := h.undone[len(h.undone)-1]
	h.undone = h.undone[:len(h.undone)-1]
	h.applied = append(h.applied, top)
	return true
}

// Top returns the current version, or nil before Reset.
func (h *History) Top() *image.NRGBA {
	if len(h.applied) == 0 {
		return nil
	}
	return h.applied[len(h.applied)-1]
}

// Depth returns the sizes of the applied and undone stacks.
func (h *History) Depth() (applied, undone int) {
	return len(h.applied), len(h.undone)
}
