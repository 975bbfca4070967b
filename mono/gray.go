package mono

import (
	"image"
	"image/color"

	"github.com/disintegration/gift"
	"github.com/ericpauley/go-quantize/quantize"
)

// Gray converts m to 8-bit luminance. Images that are already grayscale are
// returned as is.
func Gray(m image.Image) *image.Gray {
	if g, ok := m.(*image.Gray); ok {
		return g
	}

	g := gift.New(gift.Grayscale())
	dst := image.NewGray(g.Bounds(m.Bounds()))
	g.Draw(dst, m)

	return dst
}

// AutoThreshold picks a cutoff for m by reducing it to two colors and taking
// the midpoint of their luminance. Images with only one color get
// DefaultThreshold.
func AutoThreshold(m image.Image) uint8 {
	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, 2), m)
	if len(p) < 2 {
		return DefaultThreshold
	}

	lo := color.GrayModel.Convert(p[0]).(color.Gray).Y
	hi := color.GrayModel.Convert(p[1]).(color.Gray).Y
	if lo == hi {
		return DefaultThreshold
	}
	if lo > hi {
		lo, hi = hi, lo
	}

	// Round up so the darker color always falls below the cutoff
	return uint8((int(lo) + int(hi) + 1) / 2)
}
