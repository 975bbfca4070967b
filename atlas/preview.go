package atlas

import (
	"image"
	"image/draw"

	"github.com/bodgit/bitpack/mono"
)

// Render unpacks every cell and lays them out left to right in a single
// strip Len()*Width pixels wide and Height pixels high. Set pixels are white.
func Render(a *Atlas) (*image.Gray, error) {
	strip := image.NewGray(image.Rect(0, 0, a.Width*a.Len(), a.Height))

	b := a.Bytes()
	stride := a.Stride()
	for i := 0; i < a.Len(); i++ {
		// Derive each offset from the index rather than accumulating
		lo, hi := i*stride, (i+1)*stride
		if hi > len(b) {
			hi = len(b)
		}
		if lo > hi {
			lo = hi
		}

		m, err := mono.Unpack(b[lo:hi], a.Width, a.Height, mono.On, mono.Off)
		if err != nil {
			return nil, err
		}

		r := image.Rect(i*a.Width, 0, (i+1)*a.Width, a.Height)
		draw.Draw(strip, r, m, image.Point{}, draw.Src)
	}

	return strip, nil
}
