package haar

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/ironsheep/haar-features-mcp/internal/integral"
)

// Parallel tuning parameters.
const (
	// minParallelRects is the minimum number of rectangle lookups before
	// the parallel evaluator spawns workers; below it the sequential path
	// is faster than the goroutine setup.
	minParallelRects = 1 << 14

	// featuresPerStrip is the number of feature indices each worker claims
	// at a time. Strips keep the scratch working set cache-resident while
	// still load-balancing across uneven strip costs.
	featuresPerStrip = 2048
)

// Features evaluates every feature instance of the coordinate set against an
// integral image whose dimensions match the set's window, returning one
// scalar per feature index.
//
// Evaluation is two staged: every rectangle's area sum is fetched with an
// O(1) integral-image lookup into a preallocated flat [numRects][n] buffer,
// then each instance's rectangle values are reduced with alternating sign,
// odd slots summed minus even slots summed. For TwoRectX that is the classic
// right-minus-left contrast; for the three-rectangle types it yields
// middle - (first + last).
//
// The integral image is only read and no partial output is produced on
// failure. Features returns ErrDimensionMismatch when the set was built for
// a window larger than the image.
func Features(ii *integral.Image, cs *CoordinateSet) ([]float64, error) {
	return FeaturesAt(ii, 0, 0, cs)
}

// FeaturesAt evaluates the coordinate set against the detection window
// anchored at (row, col) inside a larger integral image. The window must lie
// fully inside the image or FeaturesAt fails with ErrDimensionMismatch.
func FeaturesAt(ii *integral.Image, row, col int, cs *CoordinateSet) ([]float64, error) {
	if err := checkWindow(ii, row, col, cs); err != nil {
		return nil, err
	}

	n := cs.NumFeatures()
	k := cs.NumRects()

	// Step 1: per-rectangle area sums. Flat buffer, no allocation inside
	// the loops.
	sums := make([]float64, k*n)
	for s, rects := range cs.Slots {
		out := sums[s*n : (s+1)*n]
		for i, r := range rects {
			out[i] = ii.RangeSum(
				row+r.TopLeft.Row, col+r.TopLeft.Col,
				row+r.BottomRight.Row, col+r.BottomRight.Col,
			)
		}
	}

	// Step 2: alternating-sign reduction per feature index.
	values := make([]float64, n)
	for s := 0; s < k; s++ {
		slotSums := sums[s*n : (s+1)*n]
		if s%2 == 1 {
			for i, v := range slotSums {
				values[i] += v
			}
		} else {
			for i, v := range slotSums {
				values[i] -= v
			}
		}
	}
	return values, nil
}

// FeaturesParallel is Features with the rectangle-sum stage fanned out over
// GOMAXPROCS workers. Each worker claims strips of feature indices from a
// shared queue; every output cell is written by exactly one worker, so no
// synchronization beyond the final barrier is needed. Small sets fall back
// to the sequential path.
func FeaturesParallel(ii *integral.Image, cs *CoordinateSet) ([]float64, error) {
	n := cs.NumFeatures()
	k := cs.NumRects()
	if n*k < minParallelRects {
		return Features(ii, cs)
	}
	if err := checkWindow(ii, 0, 0, cs); err != nil {
		return nil, err
	}

	numStrips := (n + featuresPerStrip - 1) / featuresPerStrip
	work := make(chan int, numStrips)
	for strip := 0; strip < numStrips; strip++ {
		work <- strip
	}
	close(work)

	values := make([]float64, n)
	var wg sync.WaitGroup
	for w := 0; w < runtime.GOMAXPROCS(0); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for strip := range work {
				start := strip * featuresPerStrip
				end := min(start+featuresPerStrip, n)
				evalRange(ii, cs, values, start, end)
			}
		}()
	}
	wg.Wait()
	return values, nil
}

// evalRange reduces feature indices [start, end) directly into values.
// Bounds have already been validated by the caller.
func evalRange(ii *integral.Image, cs *CoordinateSet, values []float64, start, end int) {
	for s, rects := range cs.Slots {
		sign := float64(-1)
		if s%2 == 1 {
			sign = 1
		}
		for i := start; i < end; i++ {
			r := rects[i]
			values[i] += sign * ii.RangeSum(
				r.TopLeft.Row, r.TopLeft.Col,
				r.BottomRight.Row, r.BottomRight.Col,
			)
		}
	}
}

// AllFeatures evaluates every feature type over the whole integral image.
func AllFeatures(ii *integral.Image) ([]float64, error) {
	return AllFeaturesAt(ii, 0, 0, ii.Rows(), ii.Cols())
}

// AllFeaturesAt evaluates every feature type over the height x width window
// anchored at (row, col), concatenating the per-type value vectors in
// canonical type order, the behavior of requesting features with no type
// filter.
func AllFeaturesAt(ii *integral.Image, row, col, height, width int) ([]float64, error) {
	var all []float64
	for _, ft := range AllFeatureTypes() {
		cs, err := Enumerate(ft, height, width)
		if err != nil {
			return nil, err
		}
		values, err := FeaturesAt(ii, row, col, cs)
		if err != nil {
			return nil, err
		}
		all = append(all, values...)
	}
	return all, nil
}

// checkWindow validates that the set's window, anchored at (row, col), lies
// inside the integral image. Enumerate guarantees every rectangle is inside
// the window, so the window check covers all rectangles and runs once, in
// O(1), before any sums are computed.
func checkWindow(ii *integral.Image, row, col int, cs *CoordinateSet) error {
	if row < 0 || col < 0 || row+cs.Height > ii.Rows() || col+cs.Width > ii.Cols() {
		return fmt.Errorf("%w: %dx%d window at (%d,%d) against %dx%d image",
			ErrDimensionMismatch, cs.Height, cs.Width, row, col, ii.Rows(), ii.Cols())
	}
	return nil
}
