package bitpack

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // gif
	_ "image/jpeg" // jpeg
	_ "image/png"  // png
	"io"
	"os"

	"github.com/bodgit/bitpack/mono"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp" // bmp
)

var errBadSize = errors.New("bitpack: invalid image size")

// Bitmap is a packed image together with its dimensions.
type Bitmap struct {
	Data   []byte
	Width  int
	Height int
}

// Image unpacks the bitmap with set pixels shown as white.
func (b *Bitmap) Image() (*image.Gray, error) {
	return mono.Unpack(b.Data, b.Width, b.Height, mono.On, mono.Off)
}

// LoadImage decodes the GIF, JPEG, PNG or BMP image at path.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableSource, path, err)
	}

	return m, nil
}

// ResizeDimensions works out the target size for a w by h image. If only
// one of width or height is non-zero the other is scaled to keep the aspect
// ratio, if both are given they are used as is and if neither is given the
// original size is kept.
func ResizeDimensions(w, h, width, height int) (int, int) {
	switch {
	case width == 0 && height == 0:
		return w, h
	case width == 0:
		if h == 0 {
			return 0, height
		}
		return w * height / h, height
	case height == 0:
		if w == 0 {
			return width, 0
		}
		return width, h * width / w
	default:
		return width, height
	}
}

// Resize scales m according to ResizeDimensions.
func Resize(m image.Image, width, height int) (image.Image, error) {
	if width < 0 || height < 0 {
		return nil, errBadSize
	}

	b := m.Bounds()
	w, h := ResizeDimensions(b.Dx(), b.Dy(), width, height)
	if w == b.Dx() && h == b.Dy() {
		return m, nil
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", errBadSize, w, h)
	}

	return resize.Resize(uint(w), uint(h), m, resize.Bicubic), nil
}

func (c *Converter) load(path string, width, height int) (image.Image, uint8, error) {
	m, err := LoadImage(path)
	if err != nil {
		return nil, 0, err
	}
	c.logger.Printf("Loaded %s, %dx%d\n", path, m.Bounds().Dx(), m.Bounds().Dy())

	if m, err = Resize(m, width, height); err != nil {
		return nil, 0, err
	}

	threshold := c.imageThreshold
	if c.auto {
		threshold = mono.AutoThreshold(m)
		c.logger.Printf("Using threshold %d\n", threshold)
	}

	return m, threshold, nil
}

// Image loads the image at path, scales it to width and height as
// described by ResizeDimensions and packs it.
func (c *Converter) Image(path string, width, height int) (*Bitmap, error) {
	m, threshold, err := c.load(path, width, height)
	if err != nil {
		return nil, err
	}

	g := mono.Gray(m)

	return &Bitmap{
		Data:   mono.Pack(g, threshold),
		Width:  g.Bounds().Dx(),
		Height: g.Bounds().Dy(),
	}, nil
}

// Encode is like Image but writes the packed data to w, returning the
// dimensions of the packed image.
func (c *Converter) Encode(w io.Writer, path string, width, height int) (int, int, error) {
	m, threshold, err := c.load(path, width, height)
	if err != nil {
		return 0, 0, err
	}

	if err := mono.Encode(w, m, threshold); err != nil {
		return 0, 0, err
	}

	return m.Bounds().Dx(), m.Bounds().Dy(), nil
}

// LoadBitmap reads raw packed data for a width by height image from the file
// at path.
func LoadBitmap(path string, width, height int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}
	defer f.Close()

	return mono.Decode(f, width, height)
}
