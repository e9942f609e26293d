// Package haar computes Haar-like features over rectangular image windows.
//
// Haar-like features are fast local-contrast descriptors: each feature is the
// signed difference of area sums over adjacent rectangular sub-regions of a
// detection window. They are the building blocks of classic object-detection
// cascades (face and eye detectors in particular).
//
// The package has two halves:
//
//   - The coordinate enumerator (Enumerate) generates, for a feature type and
//     window size, every valid arrangement of 2-4 adjacent equally sized
//     rectangles that tile a sub-window. Results are grouped by rectangle
//     slot and aligned by feature index.
//   - The evaluator (Features, FeaturesAt, FeaturesParallel) turns a
//     coordinate set plus an integral image into one scalar per feature
//     instance using O(1) area-sum lookups and an alternating-sign reduction.
//
// # Feature Types
//
// Five layouts are supported, selected by FeatureType or by the string
// tokens "type-2-x", "type-2-y", "type-3-x", "type-3-y" and "type-4". Each
// layout tiles a sub-window with a fixed grid of dy x dx cells; slots are the
// grid cells in row-major order.
//
// # Coordinate System
//
// All coordinates are 0-based (row, col) pairs with the origin at the top
// left of the window. Rectangle corners are inclusive on both ends, so a
// single pixel is the degenerate rectangle whose corners coincide.
//
// # Typical Usage
//
//	coords, err := haar.Enumerate(haar.TwoRectX, 24, 24)
//	if err != nil {
//	    return err
//	}
//	ii := integral.FromImage(window)
//	values, err := haar.Features(ii, coords)
//
// Coordinate sets are immutable and independent of image data; enumerate
// once per window size and reuse the set across every window of a scan.
//
// # Concurrency
//
// A CoordinateSet is safe for concurrent use once built. Each evaluation is
// independent; FeaturesParallel additionally parallelizes the rectangle-sum
// stage of a single evaluation across CPUs.
package haar
