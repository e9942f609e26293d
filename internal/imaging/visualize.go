package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/haar-features-mcp/internal/haar"
)

// Default overlay styling, matching the conventional rendering of Haar
// features: additive rectangles in red, subtractive ones in green.
const (
	DefaultPositiveColor = "#FF0000"
	DefaultNegativeColor = "#00FF00"
	DefaultOverlayAlpha  = 0.5
)

// OverlayResult contains a rendered Haar feature overlay.
type OverlayResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// FeatureType and FeatureIndex identify the rendered instance.
	FeatureType  string `json:"feature_type"`
	FeatureIndex int    `json:"feature_index"`

	// NumFeatures is the total number of instances in the coordinate set,
	// useful for stepping through them one call at a time.
	NumFeatures int `json:"num_features"`

	// ImageBase64 is the overlay image encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`

	// SavedPath is the file the overlay was written to, if requested.
	SavedPath string `json:"saved_path,omitempty"`
}

// DrawFeature renders one enumerated feature instance on top of a source
// image and returns the result as base64 PNG.
//
// The instance's rectangles are alpha-blended over the window anchored at
// (w.Row, w.Col): rectangles in odd slots (the ones the evaluator adds) use
// positiveHex, even slots (subtracted) use negativeHex. Empty color strings
// and a non-positive alpha fall back to the package defaults. When savePath
// is non-empty the overlay is also written there as PNG.
//
// The coordinate set must have been enumerated for the window's dimensions,
// and the window must lie inside the image.
func DrawFeature(img image.Image, w Window, cs *haar.CoordinateSet, featureIndex int,
	positiveHex, negativeHex string, alpha float64, savePath string) (*OverlayResult, error) {

	if cs.Height != w.Height || cs.Width != w.Width {
		return nil, fmt.Errorf("coordinate set for %dx%d does not match window %dx%d",
			cs.Height, cs.Width, w.Height, w.Width)
	}
	if featureIndex < 0 || featureIndex >= cs.NumFeatures() {
		return nil, fmt.Errorf("feature index %d out of range [0,%d)", featureIndex, cs.NumFeatures())
	}
	bounds := img.Bounds()
	if w.Row < 0 || w.Col < 0 || w.Row+w.Height > bounds.Dy() || w.Col+w.Width > bounds.Dx() {
		return nil, fmt.Errorf("window %dx%d at (%d,%d) outside image bounds %dx%d",
			w.Height, w.Width, w.Row, w.Col, bounds.Dy(), bounds.Dx())
	}

	if positiveHex == "" {
		positiveHex = DefaultPositiveColor
	}
	if negativeHex == "" {
		negativeHex = DefaultNegativeColor
	}
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultOverlayAlpha
	}

	positive, err := colorful.Hex(positiveHex)
	if err != nil {
		return nil, fmt.Errorf("invalid positive color %q: %w", positiveHex, err)
	}
	negative, err := colorful.Hex(negativeHex)
	if err != nil {
		return nil, fmt.Errorf("invalid negative color %q: %w", negativeHex, err)
	}

	out := imaging.Clone(img)
	for s := range cs.Slots {
		block := negative
		if s%2 == 1 {
			block = positive
		}
		blendRect(out, cs.Slots[s][featureIndex], w, block, alpha)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}

	result := &OverlayResult{
		Width:        out.Bounds().Dx(),
		Height:       out.Bounds().Dy(),
		FeatureType:  cs.Type.String(),
		FeatureIndex: featureIndex,
		NumFeatures:  cs.NumFeatures(),
		ImageBase64:  base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:     "image/png",
	}

	if savePath != "" {
		if err := imgio.Save(savePath, out, imgio.PNGEncoder()); err != nil {
			return nil, fmt.Errorf("failed to save overlay: %w", err)
		}
		result.SavedPath = savePath
	}

	return result, nil
}

// blendRect alpha-blends a block color over one window rectangle of the
// cloned output image.
func blendRect(out *image.NRGBA, r haar.Rect, w Window, block colorful.Color, alpha float64) {
	for row := r.TopLeft.Row; row <= r.BottomRight.Row; row++ {
		y := w.Row + row
		for col := r.TopLeft.Col; col <= r.BottomRight.Col; col++ {
			x := w.Col + col
			orig, ok := colorful.MakeColor(out.NRGBAAt(x, y))
			if !ok {
				// Fully transparent pixel: take the block color as is.
				orig = block
			}
			rr, gg, bb := orig.BlendRgb(block, alpha).RGB255()
			out.SetNRGBA(x, y, color.NRGBA{R: rr, G: gg, B: bb, A: 255})
		}
	}
}
