package texture

import (
	"errors"
	"image"

	"github.com/deretore/jacket/bundle"
	"golang.org/x/image/draw"
)

// EncodeRGB565 scales m to width by height and packs every pixel into a
// little-endian R5G6B5 word, rows top to bottom. A zero width or height keeps
// the source dimension.
func EncodeRGB565(m image.Image, width, height int) (*Texture, error) {
	b := m.Bounds()
	if b.Empty() {
		return nil, errors.New("texture: image is empty")
	}
	if width == 0 {
		width = b.Dx()
	}
	if height == 0 {
		height = b.Dy()
	}
	if width < 0 || height < 0 {
		return nil, errors.New("texture: invalid size")
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	if width == b.Dx() && height == b.Dy() {
		draw.Draw(dst, dst.Bounds(), m, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), m, b, draw.Src, nil)
	}

	data := make([]byte, 0, width*height*2)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := dst.PixOffset(x, y)
			v := pack565(dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2])
			data = append(data, byte(v), byte(v>>8))
		}
	}

	return &Texture{
		Data:   data,
		Width:  width,
		Height: height,
		Format: bundle.FormatRGB565,
	}, nil
}

// Colour is packed as RRRRRGGGGGGBBBBB
func pack565(r, g, b uint8) uint16 {
	return uint16(r)>>3<<11 | uint16(g)>>2<<5 | uint16(b)>>3
}
