package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Border describes the constant-colour frame put around composed images.
type Border struct {
	Width int
	Color color.Color
}

// resampleFilter picks area averaging when shrinking and linear interpolation
// when enlarging.
func resampleFilter(shrinking bool) imaging.ResampleFilter {
	if shrinking {
		return imaging.Box
	}
	return imaging.Linear
}

// ResizeToWidth scales img to the given width, keeping the aspect ratio.
//
// The new height is width*height/currentWidth with integer division. When
// the width already matches, a copy of img is returned; the result never
// shares pixels with the input.
func ResizeToWidth(img image.Image, width int) *image.NRGBA {
	b := img.Bounds()
	if width == b.Dx() {
		return imaging.Clone(img)
	}
	height := max(1, width*b.Dy()/b.Dx())
	return imaging.Resize(img, max(1, width), height, resampleFilter(width < b.Dx()))
}

// ResizeToHeight scales img to the given height, keeping the aspect ratio.
// It mirrors ResizeToWidth with the axes swapped.
func ResizeToHeight(img image.Image, height int) *image.NRGBA {
	b := img.Bounds()
	if height == b.Dy() {
		return imaging.Clone(img)
	}
	width := max(1, height*b.Dx()/b.Dy())
	return imaging.Resize(img, width, max(1, height), resampleFilter(height < b.Dy()))
}

// Rotate turns img clockwise by degrees around its centre.
//
// The canvas keeps its size, so corners that leave it are clipped and the
// uncovered area is filled with opaque black.
func Rotate(img image.Image, degrees float64) *image.NRGBA {
	b := img.Bounds()
	pivot := image.Pt(b.Dx()/2, b.Dy()/2)
	rotated := transform.Rotate(imaging.Clone(img), degrees, &transform.RotationOptions{
		ResizeBounds: false,
		Pivot:        &pivot,
	})
	background := imaging.New(b.Dx(), b.Dy(), color.Black)
	return imaging.Overlay(background, rotated, image.Pt(0, 0), 1.0)
}

// AddBorder frames img with border on the top, bottom and right, and on the
// left only when includeLeft is set.
func AddBorder(img image.Image, border Border, includeLeft bool) *image.NRGBA {
	b := img.Bounds()
	left := 0
	if includeLeft {
		left = border.Width
	}
	canvas := imaging.New(left+b.Dx()+border.Width, b.Dy()+2*border.Width, border.Color)
	return imaging.Paste(canvas, img, image.Pt(left, border.Width))
}

// MinHeight returns the smallest height among images, or 0 for an empty slice.
func MinHeight(images []image.Image) int {
	h := 0
	for i, img := range images {
		if dy := img.Bounds().Dy(); i == 0 || dy < h {
			h = dy
		}
	}
	return h
}

// Compose resizes every image to targetHeight, borders it and places the
// results side by side in slice order.
//
// Only the first image gets a left border so neighbouring images share a
// single seam. The canvas is targetHeight+2*border.Width tall. targetHeight
// should be the minimum height of the set so that nothing is enlarged.
func Compose(images []image.Image, targetHeight int, border Border) (*image.NRGBA, error) {
	if len(images) == 0 {
		return nil, errors.New("no images to compose")
	}
	if targetHeight < 1 {
		return nil, fmt.Errorf("invalid target height %d", targetHeight)
	}

	parts := make([]*image.NRGBA, len(images))
	width := 0
	for i, img := range images {
		parts[i] = AddBorder(ResizeToHeight(img, targetHeight), border, i == 0)
		width += parts[i].Bounds().Dx()
	}

	canvas := imaging.New(width, targetHeight+2*border.Width, border.Color)
	x := 0
	for _, p := range parts {
		r := p.Bounds().Add(image.Pt(x, 0))
		draw.Draw(canvas, r, p, image.Point{}, draw.Src)
		x += p.Bounds().Dx()
	}
	return canvas, nil
}

// Crop cuts rect out of img after growing it by padding on every side.
// The padded rectangle is clamped to the image bounds.
func Crop(img image.Image, rect image.Rectangle, padding int) (*image.NRGBA, error) {
	r := rect.Inset(-padding).Intersect(img.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", rect, img.Bounds())
	}
	return imaging.Crop(img, r), nil
}

// Equal reports whether a and b have the same size and the same pixels.
func Equal(a, b image.Image) bool {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return false
	}
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			r1, g1, b1, a1 := a.At(ab.Min.X+x, ab.Min.Y+y).RGBA()
			r2, g2, b2, a2 := b.At(bb.Min.X+x, bb.Min.Y+y).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
				return false
			}
		}
	}
	return true
}
