/*
Package mono implements the packed monochrome bitmap format used for static
image and font data on small displays.

Each pixel is reduced to a single bit by comparing its luminance against a
threshold; a pixel is set when its value is greater than or equal to the
threshold. Pixels are taken in row-major order and packed eight to a byte,
least significant bit first. Rows are not padded, so a byte may hold pixels
from two adjacent rows and the packed size is always ceil(width*height/8)
bytes. No dimensions are stored alongside the pixel data.
*/
package mono

const (
	// DefaultThreshold is the cutoff used for generic images
	DefaultThreshold = 128

	// GlyphThreshold is the cutoff used for rendered font glyphs
	GlyphThreshold = 170

	// On is the value given to set pixels when unpacking
	On = 0xff

	// Off is the value given to clear pixels when unpacking
	Off = 0x00
)

// Size returns the number of bytes needed to pack a width by height bitmap.
func Size(width, height int) int {
	return (width*height + 7) >> 3
}
