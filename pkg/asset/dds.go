package asset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/EchoTools/sequinFileTools/pkg/sequin"
)

var (
	// ErrBadTexture is returned for a DDS payload whose header is malformed.
	ErrBadTexture = errors.New("malformed DDS texture")
	// ErrUnsupportedFormat is returned for a pixel format with no decoder.
	ErrUnsupportedFormat = errors.New("unsupported texture format")
)

const (
	ddsHeaderSize = 124 // dwSize, excluding the magic
	maxDimension  = 16384

	ddpfAlphaPixels = 0x00000001
	ddpfFourCC      = 0x00000004
	ddpfRGB         = 0x00000040
	ddpfLuminance   = 0x00020000
)

// DXGI formats with a decoder.
const (
	DXGIR11G11B10Float   = 26
	DXGIR8G8B8A8Unorm    = 28
	DXGIR8G8B8A8SRGB     = 29
	DXGIR8Unorm          = 61
	DXGIBC1Unorm         = 71
	DXGIBC1SRGB          = 72
	DXGIBC2Unorm         = 74
	DXGIBC2SRGB          = 75
	DXGIBC3Unorm         = 77
	DXGIBC3SRGB          = 78
	DXGIBC4Unorm         = 80
	DXGIBC5Unorm         = 83
	DXGIB8G8R8A8Unorm    = 87
	DXGIB8G8R8X8Unorm    = 88
	DXGIB8G8R8A8Typeless = 90
	DXGIB8G8R8A8SRGB     = 91
)

// ddsHeader is the legacy header, magic included (128 bytes).
type ddsHeader struct {
	Magic       [4]byte
	Size        uint32
	Flags       uint32
	Height      uint32
	Width       uint32
	Pitch       uint32
	Depth       uint32
	MipMapCount uint32
	_           [11]uint32
	PixelFormat struct {
		Size        uint32
		Flags       uint32
		FourCC      [4]byte
		RGBBitCount uint32
		RMask       uint32
		GMask       uint32
		BMask       uint32
		AMask       uint32
	}
	Caps [4]uint32
	_    uint32
}

type dx10Header struct {
	Format            uint32
	ResourceDimension uint32
	MiscFlag          uint32
	ArraySize         uint32
	MiscFlags2        uint32
}

// pixelFormat decodes either whole 4x4 blocks or single pixels.
type pixelFormat struct {
	name      string
	blockSize int
	pixelSize int
	block     func(b []byte, out *[16][4]uint8)
	pixel     func(b []byte) [4]uint8
}

var pixelFormats = map[uint32]pixelFormat{
	DXGIR11G11B10Float:   {name: "R11G11B10_FLOAT", pixelSize: 4, pixel: r11g11b10},
	DXGIR8G8B8A8Unorm:    {name: "R8G8B8A8", pixelSize: 4, pixel: rgba},
	DXGIR8G8B8A8SRGB:     {name: "R8G8B8A8_SRGB", pixelSize: 4, pixel: rgba},
	DXGIR8Unorm:          {name: "R8", pixelSize: 1, pixel: gray},
	DXGIBC1Unorm:         {name: "BC1", blockSize: 8, block: bc1},
	DXGIBC1SRGB:          {name: "BC1_SRGB", blockSize: 8, block: bc1},
	DXGIBC2Unorm:         {name: "BC2", blockSize: 16, block: bc2},
	DXGIBC2SRGB:          {name: "BC2_SRGB", blockSize: 16, block: bc2},
	DXGIBC3Unorm:         {name: "BC3", blockSize: 16, block: bc3},
	DXGIBC3SRGB:          {name: "BC3_SRGB", blockSize: 16, block: bc3},
	DXGIBC4Unorm:         {name: "BC4", blockSize: 8, block: bc4},
	DXGIBC5Unorm:         {name: "BC5", blockSize: 16, block: bc5},
	DXGIB8G8R8A8Unorm:    {name: "B8G8R8A8", pixelSize: 4, pixel: bgra},
	DXGIB8G8R8X8Unorm:    {name: "B8G8R8X8", pixelSize: 4, pixel: bgrx},
	DXGIB8G8R8A8Typeless: {name: "B8G8R8A8_TYPELESS", pixelSize: 4, pixel: bgra},
	DXGIB8G8R8A8SRGB:     {name: "B8G8R8A8_SRGB", pixelSize: 4, pixel: bgra},
}

// Texture is the top mip level of a DDS file.
type Texture struct {
	Width     int
	Height    int
	MipLevels int
	Format    uint32 // DXGI format
	Pixels    []byte // top level only, as stored
}

// FormatName names the pixel format.
func (t *Texture) FormatName() string {
	if f, ok := pixelFormats[t.Format]; ok {
		return f.name
	}
	return fmt.Sprintf("DXGI(%d)", t.Format)
}

// ParseDDS reads a DDS file starting at its magic. Legacy FourCC and
// uncompressed headers are mapped onto their DXGI format.
func ParseDDS(src []byte) (*Texture, error) {
	var h ddsHeader
	if len(src) < binary.Size(h) {
		return nil, &sequin.DecodeError{Kind: sequin.KindTruncated, Construct: "DDS header"}
	}
	n, err := binary.Decode(src, binary.LittleEndian, &h)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadTexture, err)
	}
	if h.Magic != sequin.MagicTexture || h.Size != ddsHeaderSize {
		return nil, fmt.Errorf("%w: magic %q, header size %d", ErrBadTexture, h.Magic[:], h.Size)
	}
	if h.Width == 0 || h.Height == 0 || h.Width > maxDimension || h.Height > maxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadTexture, h.Width, h.Height)
	}

	t := &Texture{
		Width:     int(h.Width),
		Height:    int(h.Height),
		MipLevels: max(1, int(h.MipMapCount)),
	}

	if string(h.PixelFormat.FourCC[:]) == "DX10" && h.PixelFormat.Flags&ddpfFourCC != 0 {
		var dx10 dx10Header
		m, err := binary.Decode(src[n:], binary.LittleEndian, &dx10)
		if err != nil {
			return nil, &sequin.DecodeError{Kind: sequin.KindTruncated, Construct: "DX10 header", Offset: n}
		}
		n += m
		t.Format = dx10.Format
	} else if t.Format, err = h.legacyFormat(); err != nil {
		return nil, err
	}

	f, ok := pixelFormats[t.Format]
	if !ok {
		return nil, fmt.Errorf("%w: DXGI format %d", ErrUnsupportedFormat, t.Format)
	}
	size := f.levelSize(t.Width, t.Height)
	if len(src)-n < size {
		return nil, &sequin.DecodeError{
			Kind:      sequin.KindTruncated,
			Construct: "texture pixels",
			Offset:    n,
			Detail:    fmt.Sprintf("%s %dx%d needs %d bytes, have %d", f.name, t.Width, t.Height, size, len(src)-n),
		}
	}
	t.Pixels = src[n : n+size]
	return t, nil
}

func (h *ddsHeader) legacyFormat() (uint32, error) {
	pf := h.PixelFormat
	switch {
	case pf.Flags&ddpfFourCC != 0:
		switch string(pf.FourCC[:]) {
		case "DXT1":
			return DXGIBC1Unorm, nil
		case "DXT2", "DXT3":
			return DXGIBC2Unorm, nil
		case "DXT4", "DXT5":
			return DXGIBC3Unorm, nil
		case "ATI1", "BC4U":
			return DXGIBC4Unorm, nil
		case "ATI2", "BC5U":
			return DXGIBC5Unorm, nil
		}
	case pf.Flags&ddpfRGB != 0 && pf.RGBBitCount == 32:
		switch {
		case pf.RMask == 0x000000ff:
			return DXGIR8G8B8A8Unorm, nil
		case pf.RMask == 0x00ff0000 && pf.Flags&ddpfAlphaPixels == 0:
			return DXGIB8G8R8X8Unorm, nil
		case pf.RMask == 0x00ff0000:
			return DXGIB8G8R8A8Unorm, nil
		}
	case pf.Flags&ddpfLuminance != 0 && pf.RGBBitCount == 8:
		return DXGIR8Unorm, nil
	}
	return 0, fmt.Errorf("%w: fourcc %q, flags %#x, %d bits", ErrUnsupportedFormat, pf.FourCC[:], pf.Flags, pf.RGBBitCount)
}

func (f pixelFormat) levelSize(width, height int) int {
	if f.blockSize > 0 {
		return ((width + 3) / 4) * ((height + 3) / 4) * f.blockSize
	}
	return width * height * f.pixelSize
}

// Image decodes the top mip level.
func (t *Texture) Image() (*image.NRGBA, error) {
	f, ok := pixelFormats[t.Format]
	if !ok {
		return nil, fmt.Errorf("%w: DXGI format %d", ErrUnsupportedFormat, t.Format)
	}
	if len(t.Pixels) < f.levelSize(t.Width, t.Height) {
		return nil, &sequin.DecodeError{Kind: sequin.KindTruncated, Construct: "texture pixels"}
	}

	img := image.NewNRGBA(image.Rect(0, 0, t.Width, t.Height))
	if f.pixel != nil {
		for i := 0; i < t.Width*t.Height; i++ {
			c := f.pixel(t.Pixels[i*f.pixelSize:])
			copy(img.Pix[i*4:], c[:])
		}
		return img, nil
	}

	var px [16][4]uint8
	blocksWide := (t.Width + 3) / 4
	for by := 0; by < (t.Height+3)/4; by++ {
		for bx := 0; bx < blocksWide; bx++ {
			off := (by*blocksWide + bx) * f.blockSize
			f.block(t.Pixels[off:off+f.blockSize], &px)
			for i, c := range px {
				x, y := bx*4+i%4, by*4+i/4
				if x >= t.Width || y >= t.Height {
					continue
				}
				copy(img.Pix[img.PixOffset(x, y):], c[:])
			}
		}
	}
	return img, nil
}

// DDSToPNG decodes the top mip level of a DDS texture and writes it as PNG.
type DDSToPNG struct{}

// Name implements Extractor.
func (DDSToPNG) Name() string { return "texture" }

// Extract implements Extractor.
func (DDSToPNG) Extract(src []byte, dst io.Writer) error {
	t, err := ParseDDS(src)
	if err != nil {
		return err
	}
	img, err := t.Image()
	if err != nil {
		return fmt.Errorf("decode %s: %w", t.FormatName(), err)
	}
	if err := png.Encode(dst, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func rgba(b []byte) [4]uint8 { return [4]uint8{b[0], b[1], b[2], b[3]} }
func bgra(b []byte) [4]uint8 { return [4]uint8{b[2], b[1], b[0], b[3]} }
func bgrx(b []byte) [4]uint8 { return [4]uint8{b[2], b[1], b[0], 255} }
func gray(b []byte) [4]uint8 { return [4]uint8{b[0], b[0], b[0], 255} }

func r11g11b10(b []byte) [4]uint8 {
	v := binary.LittleEndian.Uint32(b)
	return [4]uint8{
		unitByte(smallFloat(v&0x7ff, 6)),
		unitByte(smallFloat(v>>11&0x7ff, 6)),
		unitByte(smallFloat(v>>22&0x3ff, 5)),
		255,
	}
}

// smallFloat expands an unsigned float with a 5-bit exponent and the given
// mantissa width.
func smallFloat(v uint32, mantissaBits uint) float64 {
	exp := int(v >> mantissaBits)
	frac := float64(v&(1<<mantissaBits-1)) / float64(uint32(1)<<mantissaBits)
	switch exp {
	case 0:
		return math.Ldexp(frac, -14)
	case 31:
		return 65504
	}
	return math.Ldexp(1+frac, exp-15)
}

func unitByte(v float64) uint8 {
	return uint8(math.Round(math.Min(1, math.Max(0, v)) * 255))
}

func rgb565(c uint16) [4]uint8 {
	r, g, b := uint8(c>>11&0x1f), uint8(c>>5&0x3f), uint8(c&0x1f)
	return [4]uint8{r<<3 | r>>2, g<<2 | g>>4, b<<3 | b>>2, 255}
}

func mix(a, b [4]uint8, wa, wb, div int) [4]uint8 {
	var c [4]uint8
	for i := 0; i < 3; i++ {
		c[i] = uint8((int(a[i])*wa + int(b[i])*wb) / div)
	}
	c[3] = 255
	return c
}

// colorBlock decodes the 8-byte color half shared by BC1, BC2 and BC3.
// BC2 and BC3 always use four colors.
func colorBlock(b []byte, out *[16][4]uint8, fourColor bool) {
	c0, c1 := binary.LittleEndian.Uint16(b), binary.LittleEndian.Uint16(b[2:])

	var pal [4][4]uint8
	pal[0], pal[1] = rgb565(c0), rgb565(c1)
	if c0 > c1 || fourColor {
		pal[2] = mix(pal[0], pal[1], 2, 1, 3)
		pal[3] = mix(pal[0], pal[1], 1, 2, 3)
	} else {
		pal[2] = mix(pal[0], pal[1], 1, 1, 2)
		// pal[3] stays transparent black
	}

	idx := binary.LittleEndian.Uint32(b[4:])
	for i := range out {
		out[i] = pal[idx>>(2*i)&3]
	}
}

// channelBlock decodes an 8-byte interpolated channel: BC3 alpha, BC4 and
// each half of BC5.
func channelBlock(b []byte) (v [16]uint8) {
	a0, a1 := int(b[0]), int(b[1])

	var pal [8]uint8
	pal[0], pal[1] = b[0], b[1]
	if a0 > a1 {
		for i := 1; i < 7; i++ {
			pal[i+1] = uint8((a0*(7-i) + a1*i) / 7)
		}
	} else {
		for i := 1; i < 5; i++ {
			pal[i+1] = uint8((a0*(5-i) + a1*i) / 5)
		}
		pal[6], pal[7] = 0, 255
	}

	var bits uint64
	for i := 0; i < 6; i++ {
		bits |= uint64(b[2+i]) << (8 * i)
	}
	for i := range v {
		v[i] = pal[bits>>(3*i)&7]
	}
	return v
}

func bc1(b []byte, out *[16][4]uint8) {
	colorBlock(b, out, false)
}

func bc2(b []byte, out *[16][4]uint8) {
	colorBlock(b[8:], out, true)
	for i := range out {
		out[i][3] = (b[i/2] >> (4 * (i % 2)) & 0xf) * 17
	}
}

func bc3(b []byte, out *[16][4]uint8) {
	colorBlock(b[8:], out, true)
	alpha := channelBlock(b)
	for i := range out {
		out[i][3] = alpha[i]
	}
}

func bc4(b []byte, out *[16][4]uint8) {
	for i, v := range channelBlock(b) {
		out[i] = [4]uint8{v, v, v, 255}
	}
}

// bc5 holds the X and Y of a tangent-space normal; Z is rebuilt.
func bc5(b []byte, out *[16][4]uint8) {
	xs, ys := channelBlock(b), channelBlock(b[8:])
	for i := range out {
		nx := float64(xs[i])/127.5 - 1
		ny := float64(ys[i])/127.5 - 1
		nz := math.Sqrt(math.Max(0, 1-nx*nx-ny*ny))
		out[i] = [4]uint8{xs[i], ys[i], unitByte(nz*0.5 + 0.5), 255}
	}
}
