package texture

import (
	"encoding/binary"
	"io"

	"github.com/deretore/jacket/bundle"
)

const (
	ddsMagic      = "DDS "
	ddsHeaderSize = 124

	ddpfRGB = 0x40
)

type ddsPixelFormat struct {
	Size        uint32
	Flags       uint32
	FourCC      uint32
	RGBBitCount uint32
	RBitMask    uint32
	GBitMask    uint32
	BBitMask    uint32
	ABitMask    uint32
}

type ddsHeader struct {
	Size              uint32
	Flags             uint32
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipMapCount       uint32
	Reserved1         [11]uint32
	PixelFormat       ddsPixelFormat
	Caps              [4]uint32
	Reserved2         uint32
}

func (p *ddsPixelFormat) isRGB565() bool {
	return p.Flags&ddpfRGB != 0 &&
		p.RGBBitCount == 16 &&
		p.RBitMask == 0xf800 &&
		p.GBitMask == 0x07e0 &&
		p.BBitMask == 0x001f
}

// ReadDDS reads an uncompressed 16-bit R5G6B5 DDS file and returns its
// payload as an RGB565 texture.
func ReadDDS(r io.Reader) (*Texture, error) {
	var magic [4]byte
	if err := readFull(r, magic[:]); err != nil {
		return nil, err
	}
	if string(magic[:]) != ddsMagic {
		return nil, ErrBadMagic
	}

	var h ddsHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	if h.Size != ddsHeaderSize {
		return nil, ErrBadMagic
	}
	if !h.PixelFormat.isRGB565() {
		return nil, ErrUnsupported
	}

	b, err := readPayload(r)
	if err != nil {
		return nil, err
	}

	return &Texture{
		Data:   b,
		Width:  int(h.Width),
		Height: int(h.Height),
		Format: bundle.FormatRGB565,
	}, nil
}
