package bundle

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/deretore/jacket/endian"
)

// Format is the engine's texture format code.
type Format int32

// Only these two formats are ever written to jacket bundles.
const (
	FormatRGB565  Format = 7
	FormatETCRGB4 Format = 34
)

func (f Format) String() string {
	switch f {
	case FormatRGB565:
		return "RGB565"
	case FormatETCRGB4:
		return "ETC_RGB4"
	default:
		return fmt.Sprintf("Format(%d)", int32(f))
	}
}

const (
	filterModeBilinear = 1
	wrapModeClamp      = 1
	colorSpaceLinear   = 1
	textureDimension2D = 2
)

// Variant suffixes fixed by the runtime.
const (
	suffixSmall  = "s"
	suffixMedium = "m"
)

func textureName(songID int, suffix string) string {
	return fmt.Sprintf("jacket_%04d_%s", songID, suffix)
}

// wrapTexture serializes src as a Texture2D object. The block is aligned
// relative to its own start, which is always placed on an 8 byte boundary.
func wrapTexture(order binary.ByteOrder, name string, src *TextureSource) ([]byte, error) {
	b := new(bytes.Buffer)
	w := endian.NewWriter(b, order)

	w.WriteAlignedString(name)
	w.WriteInt32(int32(src.Width))
	w.WriteInt32(int32(src.Height))
	// complete image size
	w.WriteInt32(int32(len(src.Data)))
	w.WriteInt32(int32(src.Format))

	// The runtime ignores mipmaps in these textures, so this stays false
	// even when the payload carries them
	w.WriteBool(false)
	// is readable
	w.WriteBool(false)
	// is read allowed
	w.WriteBool(true)
	w.Align(4)

	// image count
	w.WriteInt32(1)
	w.WriteInt32(textureDimension2D)
	w.WriteInt32(filterModeBilinear)
	// aniso level
	w.WriteInt32(0)
	// mip bias
	w.WriteFloat32(0)
	w.WriteInt32(wrapModeClamp)
	// lightmap format
	w.WriteInt32(0)
	w.WriteInt32(colorSpaceLinear)

	// image data size
	w.WriteInt32(int32(len(src.Data)))
	w.Write(src.Data)

	if err := w.Err(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
