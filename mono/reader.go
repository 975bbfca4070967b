package mono

import (
	"errors"
	"fmt"
	"image"
	"io"
)

var (
	// ErrOutOfBounds is returned when the packed data holds fewer pixels
	// than requested
	ErrOutOfBounds = errors.New("mono: not enough packed data")

	errBadSize = errors.New("mono: invalid dimensions")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Unpack expands packed data into a width by height grayscale image. Set
// pixels are given the value on and clear pixels the value off. Any unused
// bits in the final byte are ignored.
func Unpack(b []byte, width, height int, on, off uint8) (*image.Gray, error) {
	if width < 0 || height < 0 {
		return nil, errBadSize
	}
	if width*height > len(b)<<3 {
		return nil, fmt.Errorf("%w: %dx%d needs %d bytes, have %d", ErrOutOfBounds, width, height, Size(width, height), len(b))
	}

	m := image.NewGray(image.Rect(0, 0, width, height))
	for p := range m.Pix {
		if b[p>>3]&(1<<uint(p&7)) != 0 {
			m.Pix[p] = on
		} else {
			m.Pix[p] = off
		}
	}

	return m, nil
}

// Decode reads a width by height packed bitmap from r and returns it as an
// image.Image.
func Decode(r io.Reader, width, height int) (image.Image, error) {
	if width < 0 || height < 0 {
		return nil, errBadSize
	}

	b := make([]byte, Size(width, height))
	if err := readFull(r, b); err != nil {
		if err != io.ErrUnexpectedEOF {
			return nil, err
		}
		return nil, ErrOutOfBounds
	}

	return Unpack(b, width, height, On, Off)
}
