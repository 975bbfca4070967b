/*
Package carray writes packed bitmap data as C source suitable for compiling
into display firmware.

Arrays are written as const uint8_t declarations with one "0xhh," token per
byte. Element lines are indented by three spaces and wrapped so none is wider
than 80 columns, and array names must be short enough for the declaration
line to fit the same width. Fonts are written as a static data array followed by a
cgui_font_t definition that records the cell size and character range.
*/
package carray

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/bodgit/bitpack/atlas"
)

const (
	lineWidth  = 80
	indent     = "   "
	tokenWidth = len(" 0x00,")
)

var errLongName = errors.New("carray: declaration does not fit on one line")

func writeArray(w *bufio.Writer, prefix, name string, b []byte) error {
	decl := fmt.Sprintf("%sconst uint8_t %s[] = {", prefix, name)
	if len(decl) > lineWidth {
		return fmt.Errorf("%w: %q", errLongName, name)
	}
	w.WriteString(decl)

	// Force a line break before the first element
	col := lineWidth
	for _, v := range b {
		if col+tokenWidth > lineWidth {
			w.WriteString("\n" + indent)
			col = len(indent)
		}
		fmt.Fprintf(w, " 0x%02x,", v)
		col += tokenWidth
	}

	w.WriteString("\n};\n")

	return nil
}

// Encode writes b to w as a C array called name. Names too long for the
// declaration to fit in 80 columns are rejected.
func Encode(w io.Writer, name string, b []byte) error {
	bw := bufio.NewWriter(w)
	if err := writeArray(bw, "", name, b); err != nil {
		return err
	}
	return bw.Flush()
}

// DataName returns the name of the data array for a font of the given cell
// size.
func DataName(width, height int) string {
	return fmt.Sprintf("cguii_font_data_%dx%d", width, height)
}

// FontName returns the name of the font definition for a font of the given
// cell size.
func FontName(width, height int) string {
	return fmt.Sprintf("cgui_font_%dx%d", width, height)
}

// Font writes a as a static data array and a cgui_font_t definition
// referencing it.
func Font(w io.Writer, a *atlas.Atlas) error {
	bw := bufio.NewWriter(w)

	data := DataName(a.Width, a.Height)

	if err := writeArray(bw, "static ", data, a.Bytes()); err != nil {
		return err
	}
	fmt.Fprintf(bw, "const cgui_font_t %s = { %s, %d, %d, %d, %d };\n", FontName(a.Width, a.Height), data, a.Width, a.Height, a.First, a.Last)

	return bw.Flush()
}
