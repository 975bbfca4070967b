package mono

import (
	"image"
	"io"
)

// Pack binarizes m against threshold and packs the result. The bounds of m
// are honoured so a sub-image packs only its own pixels.
func Pack(m *image.Gray, threshold uint8) []byte {
	b := m.Bounds()
	out := make([]byte, Size(b.Dx(), b.Dy()))

	var p int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := m.PixOffset(b.Min.X, y)
		for _, v := range m.Pix[i : i+b.Dx()] {
			if v >= threshold {
				out[p>>3] |= 1 << uint(p&7)
			}
			p++
		}
	}

	return out
}

// Encode writes the Image m to w in packed monochrome format.
func Encode(w io.Writer, m image.Image, threshold uint8) error {
	_, err := w.Write(Pack(Gray(m), threshold))
	return err
}
