/*
Package atlas assembles packed glyph bitmaps for a contiguous range of
characters into a single font atlas.

Every cell in an atlas has the same width and height and occupies exactly
mono.Size(width, height) bytes, so cell i starts at byte i*Stride() of the
concatenated data. Cells are stored in ascending code point order from First
to Last with no gaps.
*/
package atlas

import (
	"errors"
	"fmt"
	"image"

	"github.com/bodgit/bitpack/mono"
)

const (
	// DefaultFirst is the first printable ASCII character after space
	DefaultFirst = 0x21

	// DefaultLast is the last printable ASCII character
	DefaultLast = 0x7e
)

var (
	// ErrDimensionMismatch is returned when glyphs in one atlas are not
	// all the same size
	ErrDimensionMismatch = errors.New("atlas: glyph dimensions differ")

	errBadLength = errors.New("atlas: data length does not match range")
	errNoImage   = errors.New("atlas: rasterizer returned no image")
)

// A Rasterizer renders a single character to a grayscale image.
type Rasterizer interface {
	Rasterize(r rune) (*image.Gray, error)
}

// RasterizerFunc adapts an ordinary function to the Rasterizer interface.
type RasterizerFunc func(r rune) (*image.Gray, error)

// Rasterize calls f(r).
func (f RasterizerFunc) Rasterize(r rune) (*image.Gray, error) {
	return f(r)
}

// Cell is the packed bitmap of one character.
type Cell struct {
	Code   rune
	Bitmap []byte
}

// Atlas is a sequence of equally sized packed glyphs.
type Atlas struct {
	Width  int
	Height int
	First  rune
	Last   rune
	Cells  []Cell
}

// Len returns the number of cells.
func (a *Atlas) Len() int {
	return len(a.Cells)
}

// Stride returns the number of bytes used by each cell.
func (a *Atlas) Stride() int {
	return mono.Size(a.Width, a.Height)
}

// Bytes returns the packed cells concatenated in code point order.
func (a *Atlas) Bytes() []byte {
	b := make([]byte, 0, a.Len()*a.Stride())
	for _, c := range a.Cells {
		b = append(b, c.Bitmap...)
	}
	return b
}

// Build rasterizes every character from first to last inclusive, packs each
// one using threshold and returns the resulting atlas. The first glyph fixes
// the cell size; any later glyph of a different size aborts the build with
// ErrDimensionMismatch. An empty range, where last is before first, is not
// an error.
func Build(rz Rasterizer, first, last rune, threshold uint8) (*Atlas, error) {
	a := &Atlas{
		First: first,
		Last:  last,
	}
	if last < first {
		return a, nil
	}

	a.Cells = make([]Cell, 0, int(last-first)+1)
	for c := first; ; c++ {
		m, err := rz.Rasterize(c)
		if err != nil {
			return nil, err
		}
		if m == nil {
			return nil, fmt.Errorf("%w for %#x", errNoImage, c)
		}

		b := m.Bounds()
		if c == first {
			a.Width, a.Height = b.Dx(), b.Dy()
		} else if b.Dx() != a.Width || b.Dy() != a.Height {
			return nil, fmt.Errorf("%w: %#x is %dx%d, expected %dx%d", ErrDimensionMismatch, c, b.Dx(), b.Dy(), a.Width, a.Height)
		}

		a.Cells = append(a.Cells, Cell{
			Code:   c,
			Bitmap: mono.Pack(m, threshold),
		})

		if c == last {
			break
		}
	}

	return a, nil
}

// FromBytes splits concatenated packed data back into an atlas covering
// first to last inclusive.
func FromBytes(b []byte, width, height int, first, last rune) (*Atlas, error) {
	a := &Atlas{
		Width:  width,
		Height: height,
		First:  first,
		Last:   last,
	}

	n := 0
	if last >= first {
		n = int(last-first) + 1
	}
	stride := a.Stride()
	if len(b) != n*stride {
		return nil, errBadLength
	}

	for i := 0; i < n; i++ {
		a.Cells = append(a.Cells, Cell{
			Code:   first + rune(i),
			Bitmap: b[i*stride : (i+1)*stride],
		})
	}

	return a, nil
}
