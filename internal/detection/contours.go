package detection

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	imgops "github.com/ironsheep/image-composer/internal/imaging"
)

// minContourPixels drops edge components too small to be anything but noise.
const minContourPixels = 10

// Contour is one connected group of edge pixels.
type Contour struct {
	// Points are the edge pixels of the contour, in image coordinates.
	Points []image.Point

	// Bounds is the bounding box of Points (Max exclusive).
	Bounds image.Rectangle
}

// Area is the area of the contour's bounding box in square pixels.
func (c Contour) Area() int {
	return c.Bounds.Dx() * c.Bounds.Dy()
}

// DetectFitRegion finds the edge contours of img for a given strength.
//
// Parameters:
//   - img: Source image (color or grayscale).
//   - strength: Positive integer. Larger values blur more and lower the edge
//     threshold, so the suggestion gets coarser and more aggressive.
//   - edgeConstant: Upper Canny threshold at strength 1 (250 by default).
//
// Returns the contours sorted by area, largest first, so index 0 is the
// dominant shape. A nil slice with a nil error means no contour was found,
// which callers treat as "no fit possible".
//
// # Algorithm
//
//  1. Grayscale conversion (bild effect.Grayscale)
//  2. Gaussian blur with a kernel of 1+2*strength taps (bild blur.Gaussian),
//     the radius capped at the larger image dimension
//  3. Canny edges with low threshold 0 and high edgeConstant/sqrt(strength)
//  4. Contour finding: 8-connected components of edge pixels, no hierarchy
//  5. Sorting by bounding box area, descending
func DetectFitRegion(img image.Image, strength int, edgeConstant float64) ([]Contour, error) {
	if strength < 1 {
		return nil, fmt.Errorf("strength must be a positive integer, got %d", strength)
	}

	gray := effect.Grayscale(imaging.Clone(img))
	blurred := blur.Gaussian(gray, blurRadius(strength, gray.Bounds()))
	luma := image.NewGray(blurred.Bounds())
	draw.Draw(luma, luma.Bounds(), blurred, blurred.Bounds().Min, draw.Src)

	high := edgeConstant / math.Sqrt(float64(strength))
	edges := imgops.EdgeMap(luma, 0, high)

	offset := img.Bounds().Min
	contours := findContours(edges)
	if len(contours) == 0 {
		return nil, nil
	}
	for i := range contours {
		for j := range contours[i].Points {
			contours[i].Points[j] = contours[i].Points[j].Add(offset)
		}
		contours[i].Bounds = contours[i].Bounds.Add(offset)
	}

	sort.SliceStable(contours, func(i, j int) bool {
		return contours[i].Area() > contours[j].Area()
	})
	return contours, nil
}

// blurRadius is strength capped at the larger image dimension; a wider
// kernel blurs no further and only costs memory.
func blurRadius(strength int, bounds image.Rectangle) float64 {
	return float64(min(strength, max(bounds.Dx(), bounds.Dy(), 1)))
}

// Extent returns the union of the bounding boxes of contours, or the empty
// rectangle when there are none.
func Extent(contours []Contour) image.Rectangle {
	var r image.Rectangle
	for _, c := range contours {
		r = r.Union(c.Bounds)
	}
	return r
}

// RenderOverlay returns a copy of img with every contour pixel stamped as a
// thickness-wide square in col. The input is not modified.
func RenderOverlay(img image.Image, contours []Contour, col color.Color, thickness int) *image.NRGBA {
	out := imaging.Clone(img)
	offset := img.Bounds().Min
	src := &image.Uniform{C: col}
	half := thickness / 2

	for _, c := range contours {
		for _, p := range c.Points {
			p = p.Sub(offset)
			r := image.Rect(p.X-half, p.Y-half, p.X-half+thickness, p.Y-half+thickness)
			draw.Draw(out, r.Intersect(out.Bounds()), src, image.Point{}, draw.Src)
		}
	}
	return out
}

// findContours finds connected components (contours) in a binary edge image.
//
// Uses flood-fill to group connected edge pixels into contours.
// Connectivity is 8-connected (includes diagonals).
// Components smaller than minContourPixels are discarded as noise.
func findContours(edges *image.Gray) []Contour {
	width := edges.Bounds().Dx()
	height := edges.Bounds().Dy()
	visited := make([]bool, width*height)

	contours := make([]Contour, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if visited[y*width+x] || !imgops.IsEdge(edges, x, y) {
				continue
			}
			contour := floodFill(edges, visited, x, y, width, height)
			if len(contour.Points) >= minContourPixels {
				contours = append(contours, contour)
			}
		}
	}
	return contours
}

// floodFill performs iterative flood-fill from a starting point.
//
// Uses a stack-based approach (not recursive) to avoid stack overflow
// on large contours.
func floodFill(edges *image.Gray, visited []bool, startX, startY, width, height int) Contour {
	var c Contour
	stack := []image.Point{{X: startX, Y: startY}}
	minX, minY := startX, startY
	maxX, maxY := startX, startY

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		i := p.Y*width + p.X
		if visited[i] || !imgops.IsEdge(edges, p.X, p.Y) {
			continue
		}
		visited[i] = true
		c.Points = append(c.Points, p)

		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}

	c.Bounds = image.Rect(minX, minY, maxX+1, maxY+1)
	return c
}
