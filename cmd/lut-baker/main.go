package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hellflame/argparse"
	"github.com/jwalton/go-supportscolor"

	"github.com/ryanjsims/lut-baker/app"
	"github.com/ryanjsims/lut-baker/help"
	"github.com/ryanjsims/lut-baker/imageio"
	"github.com/ryanjsims/lut-baker/lut"
	"github.com/ryanjsims/lut-baker/raster"
)

const (
	defaultSize1D = 1024
	defaultSize3D = 33
)

func main() {
	prt := app.NewPrinter(
		supportscolor.SupportsColor(os.Stderr.Fd(), supportscolor.SniffFlagsOption(true)).SupportsColor,
		os.Stdout,
		os.Stderr,
	)

	parser := argparse.NewParser(
		"lut-baker",
		"Generates identity LUT images and bakes processed images back into 1D or 3D LUT files",
		&argparse.ParserConfig{
			DisableDefaultShowHelp: true,
		},
	)

	generate := parser.AddCommand("generate", "write an identity ramp image for a LUT domain", nil)
	genSize := generate.Int("s", "size", &argparse.Option{
		Help: "samples per axis; defaults to 1024, or 33 with --cube",
	})
	genMin := generate.Float("", "min", &argparse.Option{
		Default: "0",
		Help:    "1D domain lower bound",
	})
	genMax := generate.Float("", "max", &argparse.Option{
		Default: "1",
		Help:    "1D domain upper bound",
	})
	genCube := generate.Flag("c", "cube", &argparse.Option{
		Help: "generate a tiled 3D identity cube over [0,1] instead of a 1D ramp",
	})
	genHalf := generate.Flag("", "half", &argparse.Option{
		Help: "store EXR samples as float16 instead of float32",
	})
	genOut := generate.String("o", "output", &argparse.Option{
		Default: "identity.exr",
		Help:    "output image path (.exr, .tiff or .png)",
	})

	bake := parser.AddCommand("bake", "convert a processed identity image into a LUT file", nil)
	bakePath := bake.String("p", "path", &argparse.Option{
		Positional: true,
		Required:   true,
		Help:       "processed identity image to bake (.exr, .tiff or .png)",
	})
	bakeSize := bake.Int("s", "size", &argparse.Option{
		Help: "cube edge size; inferred from the image height when omitted",
	})
	bakeMin := bake.Float("", "min", &argparse.Option{
		Default: "0",
		Help:    "1D domain lower bound written to the LUT header",
	})
	bakeMax := bake.Float("", "max", &argparse.Option{
		Default: "1",
		Help:    "1D domain upper bound written to the LUT header",
	})
	bakeCube := bake.Flag("c", "cube", &argparse.Option{
		Help: "treat the image as a tiled 3D identity cube",
	})
	bakeFormat := bake.String("f", "format", &argparse.Option{
		Help: "LUT format: spi, cube or cub; defaults to spi, or cube with --cube",
	})
	bakeOut := bake.String("o", "output", &argparse.Option{
		Help: "output LUT path; defaults to the image name with the format's extension",
	})

	formats := parser.AddCommand("formats", "list supported LUT and image formats", nil)

	if err := parser.Parse(nil); err != nil {
		if err == argparse.BreakAfterHelpError {
			os.Exit(0)
		}
		prt.Fatalf("%v", err)
	}

	switch {
	case generate.Invoked:
		runGenerate(prt, *genSize, *genMin, *genMax, *genCube, *genHalf, *genOut)
	case bake.Invoked:
		runBake(prt, *bakePath, *bakeOut, *bakeSize, *bakeMin, *bakeMax, *bakeCube, *bakeFormat)
	case formats.Invoked:
		runFormats(prt)
	default:
		parser.PrintHelp()
	}
}

func runGenerate(prt *app.Printer, size int, min, max float64, cube, half bool, out string) {
	if size <= 0 {
		if cube {
			size = defaultSize3D
		} else {
			size = defaultSize1D
		}
	}

	buf, err := identityBuffer(lut.Shape{Min: min, Max: max, Size: size}, cube)
	if err != nil {
		prt.Fatalf("%v", err)
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			prt.Fatalf("%v", err)
		}
	}
	warnings, err := imageio.Write(out, buf, half)
	for _, w := range warnings {
		prt.Warnf("%s", w)
	}
	if err != nil {
		prt.Fatalf("writing %s: %v", out, err)
	}
	if cube {
		prt.Infof("wrote %dx%d identity cube image (size %d) to %s", buf.Width, buf.Height, size, out)
	} else {
		prt.Infof("wrote %d-sample identity ramp over [%v, %v] to %s", size, min, max, out)
	}
}

func identityBuffer(shape lut.Shape, cube bool) (*raster.Buffer, error) {
	if cube {
		return lut.Encode3D(shape.Size)
	}
	ramp, err := shape.Ramp()
	if err != nil {
		return nil, err
	}
	return lut.Encode1D(ramp), nil
}

func runBake(prt *app.Printer, in, out string, size int, min, max float64, cube bool, format string) {
	if format == "" {
		if cube {
			format = "cube"
		} else {
			format = "spi"
		}
	}
	f, err := lut.ParseFormat(format)
	if err != nil {
		prt.Fatalf("%v", err)
	}
	if f.Is3D() != cube {
		prt.Fatalf("format %s does not match the --cube flag", f)
	}

	buf, warnings, err := imageio.Read(in)
	for _, w := range warnings {
		prt.Warnf("%s", w)
	}
	if err != nil {
		prt.Fatalf("loading %s: %v", in, err)
	}

	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + f.Extension()
	}
	outFile, err := os.Create(out)
	if err != nil {
		prt.Fatalf("%v", err)
	}
	defer outFile.Close()

	if cube {
		if size <= 0 {
			size = buf.Height
		}
		triples, warn, err := lut.Decode3D(buf, size)
		if warn != nil {
			prt.Warnf("%s", warn)
		}
		if err != nil {
			prt.Fatalf("%v", err)
		}
		if err := lut.WriteCube(outFile, size, triples); err != nil {
			prt.Fatalf("writing %s: %v", out, err)
		}
		prt.Infof("baked %d^3 cube LUT to %s", size, out)
		return
	}

	samples, warn, err := lut.Decode1D(buf)
	if warn != nil {
		prt.Warnf("%s", warn)
	}
	if err != nil {
		prt.Fatalf("%v", err)
	}
	if size > 0 && size != len(samples) {
		prt.Fatalf("image has %d samples, --size asked for %d", len(samples), size)
	}
	shape := lut.Shape{Min: min, Max: max, Size: len(samples)}
	if err := lut.WriteSPI1D(outFile, shape, samples); err != nil {
		prt.Fatalf("writing %s: %v", out, err)
	}
	prt.Infof("baked %d-sample 1D LUT to %s", len(samples), out)
}

func runFormats(prt *app.Printer) {
	h, err := help.GetHelp()
	if err != nil {
		prt.Fatalf("%v", err)
	}
	prt.Infof("LUT formats:")
	for _, f := range h.LutFormats {
		prt.Infof("  %-5s %-7s %dD  %s", f.Name, f.Extension, f.Dimensions, f.Description)
	}
	prt.Infof("Image formats:")
	for _, f := range h.ImageFormats {
		prt.Infof("  %-5s %-7s     %s", f.Name, f.Extension, f.Description)
	}
}
