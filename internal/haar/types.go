package haar

import (
	"errors"
	"fmt"
)

// Errors returned by the enumerator and evaluator.
var (
	// ErrInvalidFeatureType indicates an unknown feature type selector.
	ErrInvalidFeatureType = errors.New("invalid feature type")

	// ErrDimensionMismatch indicates a coordinate set that does not fit
	// inside the supplied integral image. This is a caller error: the set
	// was generated for a different window size.
	ErrDimensionMismatch = errors.New("coordinate set exceeds integral image bounds")
)

// Point is a pixel coordinate inside a detection window.
//
// Coordinates are 0-based with (0, 0) at the top-left corner, Row increasing
// downward and Col increasing rightward. Both components are inclusive.
type Point struct {
	Row int `json:"row"` // Vertical position (0 = topmost)
	Col int `json:"col"` // Horizontal position (0 = leftmost)
}

// Rect is an axis-aligned rectangle described by its inclusive top-left and
// bottom-right corners. A 1x1 rectangle has TopLeft == BottomRight.
type Rect struct {
	TopLeft     Point `json:"top_left"`
	BottomRight Point `json:"bottom_right"`
}

// Area returns the number of pixels covered by the rectangle.
func (r Rect) Area() int {
	return (r.BottomRight.Row - r.TopLeft.Row + 1) * (r.BottomRight.Col - r.TopLeft.Col + 1)
}

// FeatureType identifies one of the five classic Haar-like feature layouts.
//
// Each type tiles a sub-window with a fixed grid of equally sized rectangles:
//
//	TwoRectX   : 1x2 grid (left | right)
//	TwoRectY   : 2x1 grid (top / bottom)
//	ThreeRectX : 1x3 grid (left | middle | right)
//	ThreeRectY : 3x1 grid (top / middle / bottom)
//	FourRect   : 2x2 grid (checkerboard)
type FeatureType int

const (
	TwoRectX FeatureType = iota
	TwoRectY
	ThreeRectX
	ThreeRectY
	FourRect

	numFeatureTypes
)

// featureGrids maps each feature type to its cell grid. Rectangle slots are
// the grid cells in row-major order, which also fixes the alternating-sign
// assignment used by the evaluator.
var featureGrids = [numFeatureTypes]struct{ rows, cols int }{
	TwoRectX:   {1, 2},
	TwoRectY:   {2, 1},
	ThreeRectX: {1, 3},
	ThreeRectY: {3, 1},
	FourRect:   {2, 2},
}

// featureTokens are the string selectors accepted at the boundary. They match
// the naming used by the scikit-image Haar feature API.
var featureTokens = [numFeatureTypes]string{
	TwoRectX:   "type-2-x",
	TwoRectY:   "type-2-y",
	ThreeRectX: "type-3-x",
	ThreeRectY: "type-3-y",
	FourRect:   "type-4",
}

// AllFeatureTypes returns every feature type in canonical order.
func AllFeatureTypes() []FeatureType {
	return []FeatureType{TwoRectX, TwoRectY, ThreeRectX, ThreeRectY, FourRect}
}

// ParseFeatureType converts a string selector (e.g. "type-2-x") to its typed
// value. It returns ErrInvalidFeatureType for unknown tokens.
func ParseFeatureType(token string) (FeatureType, error) {
	for ft, t := range featureTokens {
		if t == token {
			return FeatureType(ft), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFeatureType, token)
}

// Valid reports whether the feature type is one of the five known layouts.
func (ft FeatureType) Valid() bool {
	return ft >= 0 && ft < numFeatureTypes
}

// NumRects returns the number of rectangles per feature instance: 2 for the
// two-rectangle types, 3 for the three-rectangle types and 4 for FourRect.
func (ft FeatureType) NumRects() int {
	if !ft.Valid() {
		return 0
	}
	g := featureGrids[ft]
	return g.rows * g.cols
}

// String returns the boundary token for the feature type.
func (ft FeatureType) String() string {
	if !ft.Valid() {
		return fmt.Sprintf("FeatureType(%d)", int(ft))
	}
	return featureTokens[ft]
}
