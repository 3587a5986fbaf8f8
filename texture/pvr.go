package texture

import (
	"encoding/binary"
	"io"

	"github.com/deretore/jacket/bundle"
)

const (
	pvrMagic      = 0x03525650
	pvrHeaderSize = 52

	// PVRTexTool pixel format id for ETC1, which the runtime loads as
	// ETC_RGB4.
	pvrFormatETC1 = 6
)

type pvrHeader struct {
	Version      uint32
	Flags        uint32
	PixelFormat  uint64
	ColourSpace  uint32
	ChannelType  uint32
	Height       uint32
	Width        uint32
	Depth        uint32
	Surfaces     uint32
	Faces        uint32
	MipMaps      uint32
	MetadataSize uint32
}

// ReadPVR reads a PVR v3 file holding ETC1 data and returns its payload as
// an ETC_RGB4 texture. Any mipmaps are kept in the payload.
func ReadPVR(r io.Reader) (*Texture, error) {
	var h pvrHeader
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	if h.Version != pvrMagic {
		return nil, ErrBadMagic
	}
	if h.PixelFormat != pvrFormatETC1 {
		return nil, ErrUnsupported
	}

	if h.MetadataSize > 0 {
		if _, err := io.CopyN(io.Discard, r, int64(h.MetadataSize)); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
	}

	b, err := readPayload(r)
	if err != nil {
		return nil, err
	}

	return &Texture{
		Data:   b,
		Width:  int(h.Width),
		Height: int(h.Height),
		Format: bundle.FormatETCRGB4,
	}, nil
}
