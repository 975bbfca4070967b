package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"strconv"

	"github.com/bodgit/bitpack"
	"github.com/bodgit/bitpack/atlas"
	"github.com/bodgit/bitpack/carray"
	"github.com/bodgit/bitpack/mono"
	"github.com/bodgit/bitpack/store"
	"github.com/disintegration/gift"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func threshold(c *cli.Context) (uint8, error) {
	t := c.Int("threshold")
	if t < 0 || t > 0xff {
		return 0, errors.New("threshold must be between 0 and 255")
	}
	return uint8(t), nil
}

func writePreview(file string, m *image.Gray, scale int) error {
	if scale < 1 {
		return errors.New("scale must be at least 1")
	}

	var out image.Image = m
	if scale > 1 {
		b := m.Bounds()
		g := gift.New(gift.Resize(b.Dx()*scale, b.Dy()*scale, gift.NearestNeighborResampling))
		dst := image.NewGray(g.Bounds(b))
		g.Draw(dst, m)
		out = dst
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, out)
}

var previewFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "preview",
		Usage: "write a PNG preview decoded from the packed data to `FILE`",
	},
	&cli.IntFlag{
		Name:  "scale",
		Value: 1,
		Usage: "scale the preview by `N`",
	},
}

// Flags following the positional arguments are not parsed, so refuse them
// rather than silently ignoring them.
func checkArgs(c *cli.Context, n int) error {
	if c.NArg() < n {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}
	if c.NArg() > n {
		return cli.NewExitError(fmt.Errorf("unexpected arguments %q, flags must come before %s", c.Args().Slice()[n:], c.Command.ArgsUsage), 1)
	}
	return nil
}

func fontAction(c *cli.Context) error {
	if err := checkArgs(c, 2); err != nil {
		return err
	}

	size, err := strconv.ParseFloat(c.Args().Get(1), 64)
	if err != nil || size <= 0 {
		return cli.NewExitError(fmt.Errorf("invalid size %q", c.Args().Get(1)), 1)
	}

	t, err := threshold(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	opts := []bitpack.Option{bitpack.WithGlyphThreshold(t)}
	if file := c.String("cache"); file != "" {
		s, err := store.Open(file)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		defer s.Close()
		opts = append(opts, bitpack.WithCache(s))
	}

	a, err := bitpack.New(newLogger(c), opts...).Font(c.Args().First(), size, rune(c.Int("first")), rune(c.Int("last")))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if file := c.String("preview"); file != "" {
		m, err := atlas.Render(a)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		if err := writePreview(file, m, c.Int("scale")); err != nil {
			return cli.NewExitError(err, 1)
		}
	}

	if err := carray.Font(c.App.Writer, a); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func imageAction(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}

	t, err := threshold(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	opts := []bitpack.Option{bitpack.WithImageThreshold(t)}
	if c.Bool("auto-threshold") {
		opts = append(opts, bitpack.WithAutoThreshold())
	}

	conv := bitpack.New(newLogger(c), opts...)

	if c.Bool("binary") {
		if _, _, err := conv.Encode(c.App.Writer, c.Args().First(), c.Int("width"), c.Int("height")); err != nil {
			return cli.NewExitError(err, 1)
		}
		if c.String("preview") == "" {
			return nil
		}
	}

	b, err := conv.Image(c.Args().First(), c.Int("width"), c.Int("height"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if file := c.String("preview"); file != "" {
		m, err := b.Image()
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		if err := writePreview(file, m, c.Int("scale")); err != nil {
			return cli.NewExitError(err, 1)
		}
	}

	if c.Bool("binary") {
		return nil
	}

	if err := carray.Encode(c.App.Writer, c.String("name"), b.Data); err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Fprintf(c.App.Writer, "Dimensions are %dx%d\n", b.Width, b.Height)

	return nil
}

func unpackAction(c *cli.Context) error {
	if err := checkArgs(c, 2); err != nil {
		return err
	}

	width, height := c.Int("width"), c.Int("height")
	if width <= 0 || height <= 0 {
		return cli.NewExitError(errors.New("width and height are required"), 1)
	}

	m, err := bitpack.LoadBitmap(c.Args().First(), width, height)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if err := writePreview(c.Args().Get(1), mono.Gray(m), c.Int("scale")); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "bitpack"
	app.Usage = "Packed monochrome bitmap generator for cgui"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "font",
			Usage:       "Generate a cgui font from a TrueType font",
			Description: "Every character in the range is rendered into a cell the size of the letter 'm' and packed into a single array.",
			ArgsUsage:   "FILE SIZE",
			Flags: append([]cli.Flag{
				&cli.IntFlag{
					Name:  "first",
					Value: atlas.DefaultFirst,
					Usage: "first character code",
				},
				&cli.IntFlag{
					Name:  "last",
					Value: atlas.DefaultLast,
					Usage: "last character code",
				},
				&cli.IntFlag{
					Name:  "threshold",
					Value: mono.GlyphThreshold,
					Usage: "minimum pixel value that is set",
				},
				&cli.StringFlag{
					Name:    "cache",
					EnvVars: []string{"BITPACK_CACHE"},
					Usage:   "path to atlas cache database",
				},
			}, previewFlags...),
			Action: fontAction,
		},
		{
			Name:        "image",
			Usage:       "Generate a cgui image array from an image file",
			Description: "If either width or height is supplied, the second dimension is calculated, if both are given, the image size is forced.",
			ArgsUsage:   "FILE",
			Flags: append([]cli.Flag{
				&cli.IntFlag{
					Name:    "width",
					Aliases: []string{"x"},
					Usage:   "required width",
				},
				&cli.IntFlag{
					Name:    "height",
					Aliases: []string{"y"},
					Usage:   "required height",
				},
				&cli.IntFlag{
					Name:  "threshold",
					Value: mono.DefaultThreshold,
					Usage: "minimum pixel value that is set",
				},
				&cli.BoolFlag{
					Name:  "auto-threshold",
					Usage: "pick the threshold from the image",
				},
				&cli.StringFlag{
					Name:    "name",
					Value:   "test",
					EnvVars: []string{"BITPACK_NAME"},
					Usage:   "name of the generated array",
				},
				&cli.BoolFlag{
					Name:  "binary",
					Usage: "write the raw packed bytes instead of C source",
				},
			}, previewFlags...),
			Action: imageAction,
		},
		{
			Name:        "unpack",
			Usage:       "Decode raw packed data back into a PNG",
			Description: "Reads data written by \"image --binary\" and writes it as a PNG image.",
			ArgsUsage:   "FILE PNG",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "width",
					Aliases: []string{"x"},
					Usage:   "image width",
				},
				&cli.IntFlag{
					Name:    "height",
					Aliases: []string{"y"},
					Usage:   "image height",
				},
				&cli.IntFlag{
					Name:  "scale",
					Value: 1,
					Usage: "scale the image by `N`",
				},
			},
			Action: unpackAction,
		},
	}

	return app
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatal(err)
	}

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
