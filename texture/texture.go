/*
Package texture prepares the two texture payloads stored in a jacket bundle.

The small jacket is ETC_RGB4 and is taken from a PVR v3 file produced by an
external encoder. The medium jacket is RGB565 and is either taken from a DDS
file or encoded here from any image the image package can decode. In every
case the payload is the raw texel data with all container headers removed.
*/
package texture

import (
	"errors"
	"io"

	"github.com/deretore/jacket/bundle"
)

var (
	// ErrBadMagic is returned when a file is not of the expected type.
	ErrBadMagic = errors.New("texture: invalid magic")
	// ErrUnsupported is returned when a file holds a pixel format that
	// cannot be stored in a jacket bundle.
	ErrUnsupported = errors.New("texture: unsupported pixel format")
	// ErrNoData is returned when a file ends before any texel data.
	ErrNoData = errors.New("texture: no texel data")
)

// Texture is a texture payload ready to be placed in a bundle.
type Texture struct {
	Data   []byte
	Width  int
	Height int
	Format bundle.Format
}

// Source returns the bundle texture source for t with the given path id.
func (t *Texture) Source(pathID int64) bundle.TextureSource {
	return bundle.TextureSource{
		Data:   t.Data,
		Width:  t.Width,
		Height: t.Height,
		Format: t.Format,
		PathID: pathID,
	}
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

func readPayload(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, ErrNoData
	}
	return b, nil
}
