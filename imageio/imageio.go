// Package imageio reads and writes the pixel buffers the LUT codecs work
// on. OpenEXR is the native interchange format and keeps full float
// precision; TIFF and PNG are offered for tools that cannot read EXR and
// carry at most 16 bits per channel, which is reported as a warning.
package imageio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"

	"github.com/ryanjsims/lut-baker/openexr"
	"github.com/ryanjsims/lut-baker/raster"
)

// Read loads the image at path into a raster buffer, dispatching on the
// file extension. The returned warnings flag precision loss: LUT domains
// read back from integer formats were quantized by the round trip.
func Read(path string) (*raster.Buffer, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".exr":
		buf, err := openexr.Decode(f)
		return buf, nil, err
	case ".tif", ".tiff":
		img, err := tiff.Decode(f)
		if err != nil {
			return nil, nil, err
		}
		buf, warnings := fromImage(img)
		return buf, warnings, nil
	case ".png":
		img, err := png.Decode(f)
		if err != nil {
			return nil, nil, err
		}
		buf, warnings := fromImage(img)
		return buf, warnings, nil
	default:
		return nil, nil, fmt.Errorf("unsupported image format %q", ext)
	}
}

// Write stores buf at path, dispatching on the file extension. For EXR
// output, half selects float16 sample storage instead of float32; the
// narrowing is reported as a warning. Integer formats clamp to [0, 1] and
// quantize to 16 bits, reported as a warning.
func Write(path string, buf *raster.Buffer, half bool) ([]string, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".exr":
		pixType := openexr.TypeFloat
		var warnings []string
		if half {
			pixType = openexr.TypeHalf
			warnings = []string{".exr half output rounds samples to float16"}
		}
		return warnings, openexr.Encode(f, buf, pixType)
	case ".tif", ".tiff":
		img, err := toImage(buf)
		if err != nil {
			return nil, err
		}
		warnings := []string{fmt.Sprintf("%s output quantizes samples to 16 bits", ext)}
		return warnings, tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case ".png":
		img, err := toImage(buf)
		if err != nil {
			return nil, err
		}
		warnings := []string{".png output quantizes samples to 16 bits"}
		return warnings, png.Encode(f, img)
	default:
		return nil, fmt.Errorf("unsupported image format %q", ext)
	}
}

// fromImage widens a decoded stdlib image into a float buffer: one channel
// for grayscale images, three for everything else. The source bit depth is
// reported so callers know the domain was quantized before it got here.
func fromImage(img image.Image) (*raster.Buffer, []string) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	depth := 16
	switch img.ColorModel() {
	case color.GrayModel, color.NRGBAModel, color.RGBAModel, color.YCbCrModel:
		depth = 8
	}
	warnings := []string{fmt.Sprintf("%d-bit source image, samples were quantized", depth)}

	if img.ColorModel() == color.GrayModel || img.ColorModel() == color.Gray16Model {
		buf := raster.New(width, height, 1)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				g := color.Gray16Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray16)
				buf.Set(x, y, 0, float32(g.Y)/65535.0)
			}
		}
		return buf, warnings
	}

	buf := raster.New(width, height, 3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBA64Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA64)
			buf.Set(x, y, 0, float32(c.R)/65535.0)
			buf.Set(x, y, 1, float32(c.G)/65535.0)
			buf.Set(x, y, 2, float32(c.B)/65535.0)
		}
	}
	return buf, warnings
}

// toImage narrows a float buffer to a 16-bit stdlib image: Gray16 for one
// channel, NRGBA64 for three or four. Samples clamp to [0, 1].
func toImage(buf *raster.Buffer) (image.Image, error) {
	quantize := func(v float32) uint16 {
		return uint16(min(max(v, 0.0), 1.0)*65535.0 + 0.5)
	}

	switch buf.Channels {
	case 1:
		img := image.NewGray16(image.Rect(0, 0, buf.Width, buf.Height))
		for y := 0; y < buf.Height; y++ {
			for x := 0; x < buf.Width; x++ {
				img.SetGray16(x, y, color.Gray16{Y: quantize(buf.At(x, y, 0))})
			}
		}
		return img, nil
	case 3, 4:
		img := image.NewNRGBA64(image.Rect(0, 0, buf.Width, buf.Height))
		for y := 0; y < buf.Height; y++ {
			for x := 0; x < buf.Width; x++ {
				alpha := uint16(0xffff)
				if buf.Channels == 4 {
					alpha = quantize(buf.At(x, y, 3))
				}
				img.SetNRGBA64(x, y, color.NRGBA64{
					R: quantize(buf.At(x, y, 0)),
					G: quantize(buf.At(x, y, 1)),
					B: quantize(buf.At(x, y, 2)),
					A: alpha,
				})
			}
		}
		return img, nil
	}
	return nil, fmt.Errorf("cannot represent %d channels in a 16-bit image", buf.Channels)
}
