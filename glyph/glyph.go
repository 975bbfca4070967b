/*
Package glyph renders single characters from a TrueType font into fixed size
grayscale cells.

Glyphs are drawn in black on a white background with the pen placed at the
left edge of the cell on the font's ascent line, so every glyph of a face
shares the same baseline. The cell size is normally taken from a reference
glyph, the lowercase 'm'.
*/
package glyph

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io/ioutil"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ReferenceRune is the glyph used to size cells.
const ReferenceRune = 'm'

// ErrUnreadableFont is returned when a font cannot be read or parsed.
var ErrUnreadableFont = errors.New("glyph: unreadable font")

var errBadSize = errors.New("glyph: invalid size")

// Face is a TrueType font at a fixed pixel size.
type Face struct {
	font *truetype.Font
	face font.Face
}

// Parse parses TrueType data in b and returns a Face rendering it at size
// pixels.
func Parse(b []byte, size float64) (*Face, error) {
	if size <= 0 {
		return nil, errBadSize
	}

	f, err := truetype.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFont, err)
	}

	return &Face{
		font: f,
		// 72 DPI makes points equal to pixels
		face: truetype.NewFace(f, &truetype.Options{
			Size: size,
			DPI:  72,
		}),
	}, nil
}

// Open reads the font file at path and calls Parse.
func Open(path string, size float64) (*Face, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFont, err)
	}
	return Parse(b, size)
}

// Has reports whether the font contains a glyph for r.
func (f *Face) Has(r rune) bool {
	return f.font.Index(r) != 0
}

// Measure returns the cell size needed for r: its advance width and the
// height of the face from ascent to descent.
func (f *Face) Measure(r rune) (int, int) {
	m := f.face.Metrics()
	return font.MeasureString(f.face, string(r)).Ceil(), (m.Ascent + m.Descent).Ceil()
}

// Rasterize draws r into a new width by height cell. Anything falling outside
// the cell is clipped.
func (f *Face) Rasterize(r rune, width, height int) (*image.Gray, error) {
	if width < 0 || height < 0 {
		return nil, errBadSize
	}

	m := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(m, m.Bounds(), image.White, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  m,
		Src:  image.Black,
		Face: f.face,
		Dot:  fixed.Point26_6{Y: f.face.Metrics().Ascent},
	}
	d.DrawString(string(r))

	return m, nil
}
