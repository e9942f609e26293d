package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Window describes a detection window inside a source image: the top-left
// corner in (row, col) coordinates plus the window height and width.
type Window struct {
	Row    int `json:"row"`
	Col    int `json:"col"`
	Height int `json:"height"`
	Width  int `json:"width"`
}

// ExtractWindow crops the detection window from a source image.
//
// The window must have positive dimensions and lie entirely inside the
// image. When scale is positive and not 1.0 the crop is resized by that
// factor with Lanczos resampling, which is how windows are normalized to a
// canonical size before feature extraction.
func ExtractWindow(img image.Image, w Window, scale float64) (image.Image, error) {
	if w.Height <= 0 || w.Width <= 0 {
		return nil, fmt.Errorf("invalid window size %dx%d: dimensions must be positive", w.Height, w.Width)
	}

	bounds := img.Bounds()
	if w.Row < 0 || w.Col < 0 ||
		w.Row+w.Height > bounds.Dy() || w.Col+w.Width > bounds.Dx() {
		return nil, fmt.Errorf("window %dx%d at (%d,%d) outside image bounds %dx%d",
			w.Height, w.Width, w.Row, w.Col, bounds.Dy(), bounds.Dx())
	}

	rect := image.Rect(
		bounds.Min.X+w.Col,
		bounds.Min.Y+w.Row,
		bounds.Min.X+w.Col+w.Width,
		bounds.Min.Y+w.Row+w.Height,
	)
	cropped := imaging.Crop(img, rect)

	if scale > 0 && scale != 1.0 {
		newWidth := int(float64(w.Width) * scale)
		newHeight := int(float64(w.Height) * scale)
		if newWidth < 1 || newHeight < 1 {
			return nil, fmt.Errorf("scale %.3f collapses window %dx%d to zero size", scale, w.Height, w.Width)
		}
		return imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos), nil
	}

	return cropped, nil
}

// FullWindow returns the window covering an entire image.
func FullWindow(img image.Image) Window {
	bounds := img.Bounds()
	return Window{Row: 0, Col: 0, Height: bounds.Dy(), Width: bounds.Dx()}
}
