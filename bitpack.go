/*
Package bitpack is a library for converting images and fonts into packed
monochrome bitmaps for embedding in display firmware.
*/
package bitpack

import (
	"errors"
	"io/ioutil"
	"log"

	"github.com/bodgit/bitpack/mono"
	"github.com/bodgit/bitpack/store"
)

// ErrUnreadableSource is returned when an image or font file cannot be
// read or decoded.
var ErrUnreadableSource = errors.New("bitpack: unreadable source")

// Converter runs the conversion pipeline.
type Converter struct {
	logger *log.Logger
	cache  *store.Store

	imageThreshold uint8
	glyphThreshold uint8
	auto           bool
}

// Option configures a Converter.
type Option func(*Converter)

// WithCache stores built font atlases in s and reuses them on later runs.
func WithCache(s *store.Store) Option {
	return func(c *Converter) {
		c.cache = s
	}
}

// WithImageThreshold sets the cutoff used when converting images.
func WithImageThreshold(t uint8) Option {
	return func(c *Converter) {
		c.imageThreshold = t
	}
}

// WithGlyphThreshold sets the cutoff used when converting font glyphs.
func WithGlyphThreshold(t uint8) Option {
	return func(c *Converter) {
		c.glyphThreshold = t
	}
}

// WithAutoThreshold picks the image cutoff from the image itself.
func WithAutoThreshold() Option {
	return func(c *Converter) {
		c.auto = true
	}
}

// New returns a Converter logging to logger, which may be nil.
func New(logger *log.Logger, opts ...Option) *Converter {
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}

	c := &Converter{
		logger:         logger,
		imageThreshold: mono.DefaultThreshold,
		glyphThreshold: mono.GlyphThreshold,
	}
	for _, o := range opts {
		o(c)
	}

	return c
}
