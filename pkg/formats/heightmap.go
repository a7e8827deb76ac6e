package formats

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"golang.org/x/image/bmp"
)

// ErrInvalidHeightmap is returned when sample data does not fit the requested image size.
var ErrInvalidHeightmap = errors.New("invalid heightmap")

// HeightmapImage renders row-major elevation samples as an 8-bit grayscale
// image, mapping the lowest sample to black and the highest to white.
// A constant field renders mid-gray.
func HeightmapImage(cols, rows int, samples []float64) (*image.Gray, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidHeightmap, cols, rows)
	}
	if len(samples) != cols*rows {
		return nil, fmt.Errorf("%w: %d samples for %dx%d", ErrInvalidHeightmap, len(samples), cols, rows)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range samples {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	img := image.NewGray(image.Rect(0, 0, cols, rows))
	for row := range rows {
		for col := range cols {
			v := samples[row*cols+col]
			level := uint8(128)
			if hi > lo {
				level = uint8(math.Round((v - lo) / (hi - lo) * 255))
			}
			img.SetGray(col, row, color.Gray{Y: level})
		}
	}
	return img, nil
}

// EncodeHeightmap writes the samples as a grayscale BMP.
func EncodeHeightmap(w io.Writer, cols, rows int, samples []float64) error {
	img, err := HeightmapImage(cols, rows, samples)
	if err != nil {
		return err
	}
	return bmp.Encode(w, img)
}
