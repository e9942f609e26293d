package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// patternImage builds an image whose pixel at (row, col) encodes its own
// coordinates, so crops can be verified exactly.
func patternImage(height, width int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(y), G: uint8(x), B: 0, A: 255})
		}
	}
	return img
}

func TestExtractWindow(t *testing.T) {
	img := patternImage(8, 10)

	win, err := ExtractWindow(img, Window{Row: 2, Col: 3, Height: 4, Width: 5}, 1.0)
	require.NoError(t, err)
	require.Equal(t, 5, win.Bounds().Dx())
	require.Equal(t, 4, win.Bounds().Dy())

	// Top-left pixel of the crop is source pixel (row 2, col 3).
	r, g, _, _ := win.At(win.Bounds().Min.X, win.Bounds().Min.Y).RGBA()
	assert.Equal(t, uint32(2), r>>8)
	assert.Equal(t, uint32(3), g>>8)
}

func TestExtractWindow_FullImage(t *testing.T) {
	img := patternImage(6, 4)
	w := FullWindow(img)
	assert.Equal(t, Window{Row: 0, Col: 0, Height: 6, Width: 4}, w)

	win, err := ExtractWindow(img, w, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 4, win.Bounds().Dx())
	assert.Equal(t, 6, win.Bounds().Dy())
}

func TestExtractWindow_Scale(t *testing.T) {
	img := patternImage(8, 8)

	win, err := ExtractWindow(img, Window{Row: 0, Col: 0, Height: 4, Width: 4}, 2.0)
	require.NoError(t, err)
	assert.Equal(t, 8, win.Bounds().Dx())
	assert.Equal(t, 8, win.Bounds().Dy())
}

func TestExtractWindow_Errors(t *testing.T) {
	img := patternImage(8, 8)

	tests := []struct {
		name  string
		w     Window
		scale float64
	}{
		{"zero height", Window{0, 0, 0, 4}, 1.0},
		{"negative width", Window{0, 0, 4, -1}, 1.0},
		{"negative anchor", Window{-1, 0, 4, 4}, 1.0},
		{"overflow rows", Window{5, 0, 4, 4}, 1.0},
		{"overflow cols", Window{0, 6, 4, 4}, 1.0},
		{"collapsing scale", Window{0, 0, 4, 4}, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractWindow(img, tt.w, tt.scale)
			assert.Error(t, err)
		})
	}
}
