// Package integral implements summed-area tables (integral images).
//
// An integral image stores, at each cell, the sum of all source pixels above
// and to the left of it (inclusive). Once built, the sum over any axis
// aligned rectangle of the source is a four-corner lookup, independent of
// the rectangle size. That O(1) range-sum primitive is what makes Haar-like
// feature evaluation cheap enough to run over millions of rectangles.
package integral

import (
	"image"

	"github.com/disintegration/imaging"
)

// Image is an integral image with row-major float64 storage.
//
// Values are cumulative sums of the source region. The zero value is an
// empty image; use FromImage or FromMatrix to build one. An Image is
// immutable after construction and safe for concurrent reads.
type Image struct {
	rows, cols int
	data       []float64
}

// FromMatrix builds an integral image from a row-major matrix of raw source
// values. Rows must be of equal length; a nil or empty matrix yields an
// empty image.
func FromMatrix(values [][]float64) *Image {
	rows := len(values)
	if rows == 0 || len(values[0]) == 0 {
		return &Image{}
	}
	cols := len(values[0])

	ii := &Image{rows: rows, cols: cols, data: make([]float64, rows*cols)}
	for r := 0; r < rows; r++ {
		rowSum := 0.0
		for c := 0; c < cols; c++ {
			rowSum += values[r][c]
			ii.data[r*cols+c] = rowSum
			if r > 0 {
				ii.data[r*cols+c] += ii.data[(r-1)*cols+c]
			}
		}
	}
	return ii
}

// FromImage builds an integral image over the luminance of an image region.
//
// The source is converted to grayscale first (ITU-R BT.601 weights, as done
// by the imaging library) and each pixel contributes its 0-255 luminance
// value. For a detection pipeline this is typically called once per
// extracted window.
func FromImage(img image.Image) *Image {
	gray := imaging.Grayscale(img)
	bounds := gray.Bounds()
	rows := bounds.Dy()
	cols := bounds.Dx()
	if rows == 0 || cols == 0 {
		return &Image{}
	}

	ii := &Image{rows: rows, cols: cols, data: make([]float64, rows*cols)}
	for r := 0; r < rows; r++ {
		rowSum := 0.0
		for c := 0; c < cols; c++ {
			// After Grayscale the channels are equal; read red directly
			// from the NRGBA pixel buffer.
			rowSum += float64(gray.Pix[r*gray.Stride+c*4])
			ii.data[r*cols+c] = rowSum
			if r > 0 {
				ii.data[r*cols+c] += ii.data[(r-1)*cols+c]
			}
		}
	}
	return ii
}

// Rows returns the number of rows in the table.
func (ii *Image) Rows() int { return ii.rows }

// Cols returns the number of columns in the table.
func (ii *Image) Cols() int { return ii.cols }

// At returns the cumulative sum at (r, c): the sum of all source values in
// rows [0, r] and columns [0, c]. Coordinates must be in bounds.
func (ii *Image) At(r, c int) float64 {
	return ii.data[r*ii.cols+c]
}

// RangeSum returns the sum of source values over the inclusive rectangle
// (r0, c0)-(r1, c1) via the standard inclusion-exclusion identity. Lookups
// at row or column -1 are treated as zero, as if the table were zero-padded
// above and to the left. O(1), no allocation; coordinates must be inside
// the table.
func (ii *Image) RangeSum(r0, c0, r1, c1 int) float64 {
	sum := ii.data[r1*ii.cols+c1]
	if r0 > 0 {
		sum -= ii.data[(r0-1)*ii.cols+c1]
	}
	if c0 > 0 {
		sum -= ii.data[r1*ii.cols+c0-1]
	}
	if r0 > 0 && c0 > 0 {
		sum += ii.data[(r0-1)*ii.cols+c0-1]
	}
	return sum
}
