package detection

import (
	"image"
	"image/color"
	"testing"
)

// createTestImage creates a solid color test image
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// createSquareImage creates a white image with a filled black rectangle
func createSquareImage(width, height int, rect image.Rectangle) *image.RGBA {
	img := createTestImage(width, height, color.White)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, color.Black)
		}
	}
	return img
}

func TestDetectFitRegion(t *testing.T) {
	img := createSquareImage(120, 100, image.Rect(30, 20, 90, 80))

	contours, err := DetectFitRegion(img, 2, 250)
	if err != nil {
		t.Fatalf("DetectFitRegion failed: %v", err)
	}
	if len(contours) == 0 {
		t.Fatal("no contours detected around the square")
	}

	extent := Extent(contours)
	want := image.Rect(30, 20, 90, 80)
	// The blur spreads the edge by a few pixels either way.
	if abs(extent.Min.X-want.Min.X) > 4 || abs(extent.Min.Y-want.Min.Y) > 4 ||
		abs(extent.Max.X-want.Max.X) > 4 || abs(extent.Max.Y-want.Max.Y) > 4 {
		t.Errorf("extent: got %v, want about %v", extent, want)
	}
}

func TestDetectFitRegion_SortedByArea(t *testing.T) {
	img := createTestImage(200, 100, color.White)
	for _, r := range []image.Rectangle{image.Rect(10, 10, 30, 30), image.Rect(80, 10, 180, 90)} {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				img.Set(x, y, color.Black)
			}
		}
	}

	contours, err := DetectFitRegion(img, 1, 250)
	if err != nil {
		t.Fatalf("DetectFitRegion failed: %v", err)
	}
	if len(contours) < 2 {
		t.Fatalf("got %d contours, want at least 2", len(contours))
	}
	for i := 1; i < len(contours); i++ {
		if contours[i].Area() > contours[i-1].Area() {
			t.Errorf("contour %d area %d larger than contour %d area %d",
				i, contours[i].Area(), i-1, contours[i-1].Area())
		}
	}
	if contours[0].Bounds.Min.X < 70 {
		t.Errorf("dominant contour should be the large square, got bounds %v", contours[0].Bounds)
	}
}

func TestDetectFitRegion_UniformImage(t *testing.T) {
	img := createTestImage(80, 60, color.RGBA{128, 128, 128, 255})

	for _, strength := range []int{1, 3, 8} {
		contours, err := DetectFitRegion(img, strength, 250)
		if err != nil {
			t.Fatalf("DetectFitRegion failed: %v", err)
		}
		if contours != nil {
			t.Errorf("strength %d: got %d contours on a uniform image, want none", strength, len(contours))
		}
	}
}

func TestDetectFitRegion_InvalidStrength(t *testing.T) {
	img := createTestImage(10, 10, color.White)
	for _, strength := range []int{0, -3} {
		if _, err := DetectFitRegion(img, strength, 250); err == nil {
			t.Errorf("strength %d should be rejected", strength)
		}
	}
}

func TestDetectFitRegion_HugeStrength(t *testing.T) {
	img := createSquareImage(40, 40, image.Rect(10, 10, 30, 30))

	// Must return promptly instead of allocating a kernel of 2*strength+1 taps.
	if _, err := DetectFitRegion(img, 1<<30, 250); err != nil {
		t.Fatalf("DetectFitRegion failed: %v", err)
	}
}

func TestBlurRadius(t *testing.T) {
	tests := []struct {
		name     string
		strength int
		bounds   image.Rectangle
		want     float64
	}{
		{"small strength", 3, image.Rect(0, 0, 40, 20), 3},
		{"capped by width", 500, image.Rect(0, 0, 40, 20), 40},
		{"capped by height", 500, image.Rect(0, 0, 20, 60), 60},
		{"offset bounds", 500, image.Rect(100, 100, 130, 110), 30},
		{"huge", 1 << 30, image.Rect(0, 0, 40, 40), 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := blurRadius(tt.strength, tt.bounds); got != tt.want {
				t.Errorf("blurRadius(%d, %v) = %v, want %v", tt.strength, tt.bounds, got, tt.want)
			}
		})
	}
}

func TestDetectFitRegion_OffsetBounds(t *testing.T) {
	base := createSquareImage(120, 100, image.Rect(30, 20, 90, 80))
	sub := base.SubImage(image.Rect(10, 10, 120, 100))

	contours, err := DetectFitRegion(sub, 2, 250)
	if err != nil {
		t.Fatalf("DetectFitRegion failed: %v", err)
	}
	if len(contours) == 0 {
		t.Fatal("no contours detected")
	}
	if extent := Extent(contours); !extent.In(sub.Bounds()) {
		t.Errorf("extent %v outside sub-image bounds %v", extent, sub.Bounds())
	}
}

func TestExtent(t *testing.T) {
	if got := Extent(nil); !got.Empty() {
		t.Errorf("Extent(nil): got %v, want empty", got)
	}

	contours := []Contour{
		{Bounds: image.Rect(10, 20, 30, 40)},
		{Bounds: image.Rect(5, 25, 15, 60)},
	}
	if got, want := Extent(contours), image.Rect(5, 20, 30, 60); got != want {
		t.Errorf("Extent: got %v, want %v", got, want)
	}
}

func TestRenderOverlay(t *testing.T) {
	img := createTestImage(50, 50, color.White)
	contours := []Contour{{Points: []image.Point{{X: 25, Y: 25}}, Bounds: image.Rect(25, 25, 26, 26)}}
	green := color.NRGBA{0, 255, 0, 255}

	out := RenderOverlay(img, contours, green, 4)

	if got := out.NRGBAAt(25, 25); got != green {
		t.Errorf("contour pixel: got %v, want green", got)
	}
	if got := out.NRGBAAt(23, 23); got != green {
		t.Errorf("thickness not applied: got %v at (23,23)", got)
	}
	if got := out.NRGBAAt(10, 10); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("background changed: got %v", got)
	}

	r, g, b, _ := img.At(25, 25).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Error("RenderOverlay modified its input")
	}
}

func TestRenderOverlay_ClipsAtBorder(t *testing.T) {
	img := createTestImage(10, 10, color.White)
	contours := []Contour{{Points: []image.Point{{X: 0, Y: 0}, {X: 9, Y: 9}}}}

	out := RenderOverlay(img, contours, color.Black, 10)
	if out.Bounds() != image.Rect(0, 0, 10, 10) {
		t.Errorf("bounds changed: %v", out.Bounds())
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
