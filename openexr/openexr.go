package openexr

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"slices"
	"sort"

	"github.com/x448/float16"

	"github.com/ryanjsims/lut-baker/raster"
)

const EXR_MAGIC uint32 = 20000630

type PixelType uint32

const (
	TypeUInt  PixelType = 0
	TypeHalf  PixelType = 1
	TypeFloat PixelType = 2
)

func (t PixelType) String() string {
	switch t {
	case TypeUInt:
		return "uint32"
	case TypeHalf:
		return "float16"
	case TypeFloat:
		return "float32"
	default:
		return fmt.Sprint(uint32(t))
	}
}

// Size returns the storage size of one sample in bytes, or -1 for unknown
// pixel types.
func (t PixelType) Size() int {
	switch t {
	case TypeUInt, TypeFloat:
		return 4
	case TypeHalf:
		return 2
	default:
		return -1
	}
}

type Compression uint8

const (
	CompressionNone  Compression = 0
	CompressionRLE   Compression = 1
	CompressionZIPS  Compression = 2
	CompressionZIP   Compression = 3
	CompressionPIZ   Compression = 4
	CompressionPXR24 Compression = 5
	CompressionB44   Compression = 6
	CompressionB44A  Compression = 7
	CompressionDWAA  Compression = 8
	CompressionDWAB  Compression = 9
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "No compression"
	case CompressionRLE:
		return "Run length encoding"
	case CompressionZIPS:
		return "Zip (single scanline)"
	case CompressionZIP:
		return "Zip (multi scanline)"
	case CompressionPIZ:
		return "PIZ wavelet compression"
	case CompressionPXR24:
		return "Pixar 24 bit deflate"
	case CompressionB44:
		return "B44"
	case CompressionB44A:
		return "B44A"
	case CompressionDWAA:
		return "Dreamworks Animation 32 scanline"
	case CompressionDWAB:
		return "Dreamworks Animation 256 scanline"
	default:
		return fmt.Sprint(uint32(c))
	}
}

type LineOrder uint8

const (
	OrderIncreasingY LineOrder = 0
	OrderDecreasingY LineOrder = 1
	OrderRandomY     LineOrder = 2
)

type Box2i struct {
	XMin int32
	YMin int32
	XMax int32
	YMax int32
}

func (b Box2i) Width() int  { return int(b.XMax - b.XMin + 1) }
func (b Box2i) Height() int { return int(b.YMax - b.YMin + 1) }

type Channel struct {
	Name      string
	PixelFmt  PixelType
	Linear    uint32
	XSampling uint32
	YSampling uint32
}

// Header holds the parsed attributes of a scanline EXR file.
type Header struct {
	Channels    []Channel
	Compression Compression
	DataWindow  Box2i
	LineOrder   LineOrder
}

func readNullString(r *bufio.Reader) (string, error) {
	s, err := r.ReadString(0)
	if err != nil {
		return "", err
	}
	return s[:len(s)-1], nil
}

func loadChannels(r *bufio.Reader) ([]Channel, error) {
	channels := make([]Channel, 0, 4)

	for {
		name, err := readNullString(r)
		if err != nil {
			return nil, err
		}
		if name == "" {
			return channels, nil
		}

		ch := Channel{Name: name}
		var pLinear uint32
		for _, field := range []any{&ch.PixelFmt, &pLinear, &ch.XSampling, &ch.YSampling} {
			if err := binary.Read(r, binary.LittleEndian, field); err != nil {
				return nil, err
			}
		}
		ch.Linear = pLinear & 0xff
		channels = append(channels, ch)
	}
}

// readHeader parses the magic number, version and attribute list.
func readHeader(r *bufio.Reader) (*Header, error) {
	var magic uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, err
	}
	if magic != EXR_MAGIC {
		return nil, fmt.Errorf("invalid file magic %v", magic)
	}

	var versionFlags [4]uint8
	if err := binary.Read(r, binary.LittleEndian, &versionFlags); err != nil {
		return nil, err
	}
	if versionFlags[0] != 2 {
		return nil, fmt.Errorf("unsupported EXR version %v", versionFlags[0])
	}
	if versionFlags[1] != 0 || versionFlags[2] != 0 || versionFlags[3] != 0 {
		return nil, fmt.Errorf("unsupported flags in EXR %02x %02x %02x", versionFlags[1], versionFlags[2], versionFlags[3])
	}

	hdr := &Header{}
	requiredFields := []string{
		"channels",
		"compression",
		"dataWindow",
		"displayWindow",
		"lineOrder",
		"pixelAspectRatio",
		"screenWindowCenter",
		"screenWindowWidth",
	}

	for {
		name, err := readNullString(r)
		if err != nil {
			return nil, err
		}
		if name == "" {
			break
		}
		if _, err := readNullString(r); err != nil { // attribute type
			return nil, err
		}
		var size uint32
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return nil, err
		}

		switch name {
		case "channels":
			hdr.Channels, err = loadChannels(r)
		case "compression":
			err = binary.Read(r, binary.LittleEndian, &hdr.Compression)
		case "dataWindow":
			err = binary.Read(r, binary.LittleEndian, &hdr.DataWindow)
		case "lineOrder":
			err = binary.Read(r, binary.LittleEndian, &hdr.LineOrder)
		default:
			_, err = io.CopyN(io.Discard, r, int64(size))
		}
		if err != nil {
			return nil, err
		}

		if index := slices.Index(requiredFields, name); index != -1 {
			requiredFields = append(requiredFields[:index], requiredFields[index+1:]...)
		}
	}

	if len(requiredFields) > 0 {
		return nil, fmt.Errorf("exr missing required fields %v", requiredFields)
	}
	return hdr, nil
}

// displayOrder returns the channel indices sorted into display order: R (or
// Y for luminance files), G, B, A first, remaining channels alphabetical.
// EXR stores channels alphabetically; buffer consumers want red in slot 0.
func displayOrder(channels []Channel) []int {
	rank := func(name string) int {
		switch name {
		case "R", "Y":
			return 0
		case "G":
			return 1
		case "B":
			return 2
		case "A":
			return 3
		}
		return 4
	}
	order := make([]int, len(channels))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := rank(channels[order[a]].Name), rank(channels[order[b]].Name)
		if ra != rb {
			return ra < rb
		}
		return channels[order[a]].Name < channels[order[b]].Name
	})
	return order
}

// Decode reads an uncompressed scanline EXR file into a raster buffer. The
// buffer carries one channel per file channel, reordered so that channel 0
// is R (or Y), then G, B, A, then any extras alphabetically. Half and float
// samples decode losslessly; uint samples are converted to float32.
func Decode(r io.Reader) (*raster.Buffer, error) {
	br := bufio.NewReader(r)
	hdr, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	if hdr.Compression != CompressionNone {
		return nil, fmt.Errorf("unsupported compression: %v", hdr.Compression)
	}
	if len(hdr.Channels) == 0 {
		return nil, fmt.Errorf("exr has no channels")
	}
	for _, ch := range hdr.Channels {
		if ch.PixelFmt.Size() < 0 {
			return nil, fmt.Errorf("channel %q has unknown pixel type %v", ch.Name, ch.PixelFmt)
		}
		if ch.XSampling > 1 || ch.YSampling > 1 {
			return nil, fmt.Errorf("channel %q is subsampled", ch.Name)
		}
	}

	width := hdr.DataWindow.Width()
	height := hdr.DataWindow.Height()
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("bad data window %+v", hdr.DataWindow)
	}

	// One scanline per chunk without compression.
	offsetTable := make([]uint64, height)
	if err := binary.Read(br, binary.LittleEndian, offsetTable); err != nil {
		return nil, err
	}

	// File channel index -> buffer channel index.
	slot := make([]int, len(hdr.Channels))
	for display, file := range displayOrder(hdr.Channels) {
		slot[file] = display
	}

	buf := raster.New(width, height, len(hdr.Channels))
	lineSize := 0
	for _, ch := range hdr.Channels {
		lineSize += width * ch.PixelFmt.Size()
	}

	for line := 0; line < height; line++ {
		var yCoord int32
		var size uint32
		if err := binary.Read(br, binary.LittleEndian, &yCoord); err != nil {
			return nil, err
		}
		if err := binary.Read(br, binary.LittleEndian, &size); err != nil {
			return nil, err
		}
		if int(size) != lineSize {
			return nil, fmt.Errorf("scanline %d has size %d, expected %d", yCoord, size, lineSize)
		}
		data := make([]uint8, size)
		if _, err := io.ReadFull(br, data); err != nil {
			return nil, err
		}

		y := int(yCoord - hdr.DataWindow.YMin)
		if y < 0 || y >= height {
			return nil, fmt.Errorf("scanline y %d outside data window", yCoord)
		}
		pos := 0
		for file, ch := range hdr.Channels {
			c := slot[file]
			for x := 0; x < width; x++ {
				var v float32
				switch ch.PixelFmt {
				case TypeHalf:
					v = float16.Float16(binary.LittleEndian.Uint16(data[pos:])).Float32()
					pos += 2
				case TypeFloat:
					v = math.Float32frombits(binary.LittleEndian.Uint32(data[pos:]))
					pos += 4
				case TypeUInt:
					v = float32(binary.LittleEndian.Uint32(data[pos:]))
					pos += 4
				}
				buf.Set(x, y, c, v)
			}
		}
	}

	return buf, nil
}

// channelNames returns the alphabetical file channel names for a buffer
// channel count, and for each file channel the buffer channel it stores.
func channelNames(channels int) ([]string, []int, error) {
	switch channels {
	case 1:
		return []string{"Y"}, []int{0}, nil
	case 3:
		return []string{"B", "G", "R"}, []int{2, 1, 0}, nil
	case 4:
		return []string{"A", "B", "G", "R"}, []int{3, 2, 1, 0}, nil
	}
	return nil, nil, fmt.Errorf("cannot name %d channels for EXR output", channels)
}

func writeAttribute(w io.Writer, name, attrType string, value any) error {
	if err := binary.Write(w, binary.LittleEndian, []byte(name+"\x00"+attrType+"\x00")); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(binary.Size(value))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, value)
}

// Encode writes buf as an uncompressed scanline EXR file. Buffers with 1
// channel are written as luminance ("Y"), 3 as RGB and 4 as RGBA; other
// channel counts are rejected. pixType selects half or float sample storage.
func Encode(w io.Writer, buf *raster.Buffer, pixType PixelType) error {
	if pixType != TypeHalf && pixType != TypeFloat {
		return fmt.Errorf("unsupported output pixel type %v", pixType)
	}
	if buf.Width < 1 || buf.Height < 1 {
		return fmt.Errorf("cannot encode empty %dx%d buffer", buf.Width, buf.Height)
	}
	names, source, err := channelNames(buf.Channels)
	if err != nil {
		return err
	}

	var hdr bytes.Buffer
	binary.Write(&hdr, binary.LittleEndian, EXR_MAGIC)
	binary.Write(&hdr, binary.LittleEndian, uint32(2))

	// Channel list size is the terminating null byte plus, per channel, its
	// null terminated name and 16 bytes of fields.
	binary.Write(&hdr, binary.LittleEndian, []byte("channels\x00chlist\x00"))
	channelListSize := uint32(1 + 17*len(names))
	for _, name := range names {
		channelListSize += uint32(len(name))
	}
	binary.Write(&hdr, binary.LittleEndian, channelListSize)
	for _, name := range names {
		binary.Write(&hdr, binary.LittleEndian, []byte(name+"\x00"))
		binary.Write(&hdr, binary.LittleEndian, pixType)
		binary.Write(&hdr, binary.LittleEndian, uint32(1)) // pLinear
		binary.Write(&hdr, binary.LittleEndian, uint32(1)) // xSampling
		binary.Write(&hdr, binary.LittleEndian, uint32(1)) // ySampling
	}
	binary.Write(&hdr, binary.LittleEndian, byte(0))

	window := Box2i{XMax: int32(buf.Width - 1), YMax: int32(buf.Height - 1)}
	attrs := []struct {
		name     string
		attrType string
		value    any
	}{
		{"compression", "compression", CompressionNone},
		{"dataWindow", "box2i", window},
		{"displayWindow", "box2i", window},
		{"lineOrder", "lineOrder", OrderIncreasingY},
		{"pixelAspectRatio", "float", float32(1)},
		{"screenWindowCenter", "v2f", [2]float32{0, 0}},
		{"screenWindowWidth", "float", float32(1)},
	}
	for _, attr := range attrs {
		if err := writeAttribute(&hdr, attr.name, attr.attrType, attr.value); err != nil {
			return err
		}
	}
	hdr.WriteByte(0) // end of attribute list

	lineSize := buf.Width * len(names) * pixType.Size()
	chunkSize := 8 + lineSize
	base := uint64(hdr.Len() + 8*buf.Height)
	offsetTable := make([]uint64, buf.Height)
	for i := range offsetTable {
		offsetTable[i] = base + uint64(i*chunkSize)
	}

	if _, err := w.Write(hdr.Bytes()); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, offsetTable); err != nil {
		return err
	}

	line := make([]uint8, lineSize)
	for y := 0; y < buf.Height; y++ {
		pos := 0
		for _, c := range source {
			for x := 0; x < buf.Width; x++ {
				v := buf.At(x, y, c)
				switch pixType {
				case TypeHalf:
					binary.LittleEndian.PutUint16(line[pos:], float16.Fromfloat32(v).Bits())
					pos += 2
				case TypeFloat:
					binary.LittleEndian.PutUint32(line[pos:], math.Float32bits(v))
					pos += 4
				}
			}
		}
		if err := binary.Write(w, binary.LittleEndian, int32(y)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(lineSize)); err != nil {
			return err
		}
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}
