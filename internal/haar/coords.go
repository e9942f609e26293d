package haar

import "fmt"

// CoordinateSet holds every geometrically valid tiling of a feature type
// inside a height x width detection window.
//
// Rectangles are grouped by slot: Slots[s][i] is the s-th rectangle of
// feature instance i, so all slots have identical length and index i refers
// to the same tiling across slots. The set is pure geometry: it carries no
// image data, is immutable once built, and may be shared freely across
// concurrent evaluations (typically cached per window size).
type CoordinateSet struct {
	// Type is the feature layout this set was enumerated for.
	Type FeatureType `json:"feature_type"`

	// Height and Width are the window dimensions the set was built against.
	Height int `json:"height"`
	Width  int `json:"width"`

	// Slots holds one rectangle sequence per slot, all of equal length.
	// len(Slots) == Type.NumRects().
	Slots [][]Rect `json:"slots"`
}

// NumFeatures returns the number of enumerated feature instances.
func (cs *CoordinateSet) NumFeatures() int {
	if len(cs.Slots) == 0 {
		return 0
	}
	return len(cs.Slots[0])
}

// NumRects returns the number of rectangle slots per feature instance.
func (cs *CoordinateSet) NumRects() int {
	return len(cs.Slots)
}

// Enumerate generates all valid sub-rectangle tilings of the given feature
// type inside a height x width window.
//
// For every anchor (y, x) and rectangle size (dy, dx), the tiling is valid
// when the type's cell grid fits: y + gridRows*dy <= height and
// x + gridCols*dx <= width. Valid tilings are emitted in (y, x, dy, dx)
// nesting order, outermost first, which fixes the stable feature index: the
// same window size always yields the same set in the same order.
//
// Windows too small to fit any tiling, including non-positive dimensions,
// yield an empty coordinate set rather than an error: a 1x1 window is
// unproductive, not erroneous. The only failure is an unknown feature type.
//
// Enumeration cost is O(height^2 * width^2) in the worst case; callers
// should bound window sizes and reuse the returned set across images.
func Enumerate(ft FeatureType, height, width int) (*CoordinateSet, error) {
	if !ft.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFeatureType, int(ft))
	}
	g := featureGrids[ft]
	numRects := g.rows * g.cols

	// First pass: count valid tilings so the rectangle table can be laid
	// out as one contiguous allocation. For a fixed anchor the valid step
	// sizes form a full grid, so the count is closed-form per anchor.
	n := 0
	for y := 0; y+g.rows <= height; y++ {
		for x := 0; x+g.cols <= width; x++ {
			n += ((height - y) / g.rows) * ((width - x) / g.cols)
		}
	}

	// Slots are views into a single flat [numRects][n] buffer.
	flat := make([]Rect, numRects*n)
	slots := make([][]Rect, numRects)
	for s := range slots {
		slots[s] = flat[s*n : (s+1)*n : (s+1)*n]
	}

	// Second pass: fill. Slot order is the row-major cell order of the
	// grid, e.g. FourRect emits top-left, top-right, bottom-left,
	// bottom-right.
	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for dy := 1; y+g.rows*dy <= height; dy++ {
				for dx := 1; x+g.cols*dx <= width; dx++ {
					s := 0
					for cy := 0; cy < g.rows; cy++ {
						for cx := 0; cx < g.cols; cx++ {
							slots[s][i] = Rect{
								TopLeft:     Point{Row: y + cy*dy, Col: x + cx*dx},
								BottomRight: Point{Row: y + (cy+1)*dy - 1, Col: x + (cx+1)*dx - 1},
							}
							s++
						}
					}
					i++
				}
			}
		}
	}

	return &CoordinateSet{
		Type:   ft,
		Height: height,
		Width:  width,
		Slots:  slots,
	}, nil
}
