package bitpack

import (
	"errors"
	"fmt"
	"image"
	"io/ioutil"

	"github.com/bodgit/bitpack/atlas"
	"github.com/bodgit/bitpack/glyph"
	"github.com/bodgit/bitpack/store"
)

// Font renders every character from first to last inclusive of the font at
// path, at size pixels, into an atlas. Cells are sized to fit the reference
// glyph.
func (c *Converter) Font(path string, size float64, first, last rune) (*atlas.Atlas, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
	}

	var key string
	if c.cache != nil {
		key = store.Key(b, size, first, last, c.glyphThreshold)
		a, err := c.cache.Get(key)
		if err != nil {
			return nil, err
		}
		if a != nil {
			c.logger.Printf("Using cached atlas for %s\n", path)
			return a, nil
		}
	}

	face, err := glyph.Parse(b, size)
	if err != nil {
		if errors.Is(err, glyph.ErrUnreadableFont) {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableSource, path, err)
		}
		return nil, err
	}

	width, height := face.Measure(glyph.ReferenceRune)
	c.logger.Printf("Cell size is %dx%d\n", width, height)

	a, err := atlas.Build(atlas.RasterizerFunc(func(r rune) (*image.Gray, error) {
		if !face.Has(r) {
			c.logger.Printf("No glyph for %q\n", r)
		} else {
			c.logger.Printf("%c\n", r)
		}
		return face.Rasterize(r, width, height)
	}), first, last, c.glyphThreshold)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Put(key, a); err != nil {
			return nil, err
		}
	}

	return a, nil
}
