package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"golang.org/x/image/font/gofont/goregular"
)

func init() {
	cli.OsExiter = func(int) {}
	cli.ErrWriter = ioutil.Discard
}

func run(t *testing.T, args ...string) (string, error) {
	out := new(bytes.Buffer)
	app := newApp()
	app.Writer = out
	err := app.Run(append([]string{"bitpack"}, args...))
	return out.String(), err
}

func tempDir(t *testing.T) (string, func()) {
	dir, err := ioutil.TempDir("", "bitpack")
	require.NoError(t, err)
	return dir, func() {
		os.RemoveAll(dir)
	}
}

func writeImage(t *testing.T, dir string) string {
	m := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if (x+y)%2 == 0 {
				m.SetGray(x, y, color.Gray{Y: 0xff})
			}
		}
	}

	path := filepath.Join(dir, "test.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, m))

	return path
}

func readPNG(t *testing.T, path string) image.Image {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	m, err := png.Decode(f)
	require.NoError(t, err)
	return m
}

func TestImage(t *testing.T) {
	dir, done := tempDir(t)
	defer done()

	out, err := run(t, "image", "--name", "logo", writeImage(t, dir))
	require.NoError(t, err)
	assert.Equal(t, "const uint8_t logo[] = {\n    0xa5, 0xa5,\n};\nDimensions are 4x4\n", out)
}

func TestImageResize(t *testing.T) {
	dir, done := tempDir(t)
	defer done()

	out, err := run(t, "image", "-x", "2", writeImage(t, dir))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "Dimensions are 2x2\n"), out)
}

func TestImageTrailingFlags(t *testing.T) {
	dir, done := tempDir(t)
	defer done()

	out, err := run(t, "image", writeImage(t, dir), "-x", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flags must come before FILE")
	assert.Empty(t, out)
}

func TestImageBinaryUnpack(t *testing.T) {
	dir, done := tempDir(t)
	defer done()

	out, err := run(t, "image", "--binary", writeImage(t, dir))
	require.NoError(t, err)
	assert.Equal(t, "\xa5\xa5", out)

	bin := filepath.Join(dir, "test.bin")
	require.NoError(t, ioutil.WriteFile(bin, []byte(out), 0644))

	preview := filepath.Join(dir, "unpacked.png")
	_, err = run(t, "unpack", "-x", "4", "-y", "4", "--scale", "2", bin, preview)
	require.NoError(t, err)

	m := readPNG(t, preview)
	assert.Equal(t, image.Rect(0, 0, 8, 8), m.Bounds())
	assert.Equal(t, color.GrayModel.Convert(color.White), color.GrayModel.Convert(m.At(0, 0)))
	assert.Equal(t, color.GrayModel.Convert(color.Black), color.GrayModel.Convert(m.At(2, 0)))

	_, err = run(t, "unpack", bin, preview)
	assert.Error(t, err)
}

func TestFont(t *testing.T) {
	dir, done := tempDir(t)
	defer done()

	path := filepath.Join(dir, "goregular.ttf")
	require.NoError(t, ioutil.WriteFile(path, goregular.TTF, 0644))
	preview := filepath.Join(dir, "preview.png")

	out, err := run(t, "font", "--first", "65", "--last", "70", "--preview", preview, path, "12")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "static const uint8_t cguii_font_data_"), out)
	assert.Contains(t, out, ", 65, 70 };\n")

	m := readPNG(t, preview)
	assert.Equal(t, 0, m.Bounds().Dx()%6)
}

func TestFontTrailingFlags(t *testing.T) {
	dir, done := tempDir(t)
	defer done()

	path := filepath.Join(dir, "goregular.ttf")
	require.NoError(t, ioutil.WriteFile(path, goregular.TTF, 0644))

	out, err := run(t, "font", path, "12", "--preview", filepath.Join(dir, "preview.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flags must come before FILE SIZE")
	assert.Empty(t, out)
}
