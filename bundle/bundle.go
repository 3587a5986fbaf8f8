/*
Package bundle implements an encoder for the uncompressed engine asset bundles
that carry a song jacket.

A jacket bundle holds a single asset file with three objects: the small
jacket texture in ETC_RGB4, the bundle index and the medium jacket texture
in RGB565. The layout is fixed down to the padding so most of the file is
constants; only the song id, the textures and their path ids vary.

The container header is big-endian. The asset file switches to little-endian
straight after its version string and stays that way.
*/
package bundle

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/deretore/jacket/endian"
)

// ErrInvalidArgument is returned when a request cannot be encoded. Nothing
// is written to the output when it is returned.
var ErrInvalidArgument = errors.New("bundle: invalid argument")

const (
	signatureRaw  = "UnityRaw"
	formatVersion = 3
	playerVersion = "5.x.x"
	engineVersion = "5.1.2f1"

	bundleHeaderSize = 0x70
	assetHeaderSize  = 0x10

	// Offset of the asset directory; fixed because nothing is compressed.
	baseOffset      = 0x3c
	directoryOffset = 0x34

	assetTableSize = 0x08ba
	// Serialized file format 15, engine 5.x
	assetFormat = 0x0f
)

// MaxSongID is the largest song id that fits the four digit names.
const MaxSongID = 9999

var unknownHeaderBytes = [...]byte{0x00, 0x00, 0x34, 0x00}

// TextureSource is one encoded variant of the jacket image. Data must already
// be in the layout the runtime expects for Format; it is not checked against
// Width and Height.
type TextureSource struct {
	Data   []byte
	Width  int
	Height int
	Format Format
	// PathID identifies the texture object within the asset file. It must
	// be stable for a given song.
	PathID int64
}

// Request describes one jacket bundle.
type Request struct {
	SongID int
	// Platform is written verbatim as the asset file's target platform.
	Platform byte
	// Small is stored as jacket_NNNN_s, usually ETC_RGB4.
	Small TextureSource
	// Medium is stored as jacket_NNNN_m, usually RGB565.
	Medium TextureSource
}

func (r *Request) validate() error {
	if r.SongID < 0 || r.SongID > MaxSongID {
		return fmt.Errorf("%w: song id %d does not fit in four digits", ErrInvalidArgument, r.SongID)
	}
	if r.Small.PathID == indexPathID || r.Medium.PathID == indexPathID {
		return fmt.Errorf("%w: path id %d is reserved for the bundle index", ErrInvalidArgument, indexPathID)
	}
	if r.Small.PathID == r.Medium.PathID {
		return fmt.Errorf("%w: both textures use path id %d", ErrInvalidArgument, r.Small.PathID)
	}
	return nil
}

// assetFile builds the asset file that follows the asset header. It returns
// the bytes and the position of the object data within them.
func assetFile(r *Request) ([]byte, int64, error) {
	b := new(bytes.Buffer)
	w := endian.NewWriter(b, binary.BigEndian)

	w.WriteInt32(0)
	w.WriteCString(engineVersion)

	w.SetOrder(binary.LittleEndian)
	// A single byte here, not the int32 the engine writes for other bundles
	w.WriteUint8(r.Platform)
	// has base definitions
	w.WriteBool(true)
	// base count
	w.WriteInt32(2)
	w.Write(texture2DClass)
	w.Write(assetBundleClass)
	if err := w.Err(); err != nil {
		return nil, 0, err
	}

	small, err := wrapTexture(w.Order(), textureName(r.SongID, suffixSmall), &r.Small)
	if err != nil {
		return nil, 0, err
	}
	medium, err := wrapTexture(w.Order(), textureName(r.SongID, suffixMedium), &r.Medium)
	if err != nil {
		return nil, 0, err
	}
	index := patchIndex(w.Order(), r.SongID, r.Small.PathID, r.Medium.PathID)

	dataStart, err := writePreload(w, []subAsset{
		{pathID: r.Small.PathID, data: small, typ: typeTexture2D},
		{pathID: indexPathID, data: index, typ: typeAssetBundle},
		{pathID: r.Medium.PathID, data: medium, typ: typeTexture2D},
	})
	if err != nil {
		return nil, 0, err
	}

	return b.Bytes(), dataStart, nil
}

func writeHeader(w *endian.Writer, cabName string, assetSize int) error {
	total := int32(bundleHeaderSize + assetHeaderSize + assetSize)

	w.WriteCString(signatureRaw)
	w.WriteInt32(formatVersion)
	w.WriteCString(playerVersion)
	w.WriteCString(engineVersion)

	w.WriteInt32(total)
	w.WriteUint16(0)
	w.WriteUint16(baseOffset)
	// dummy
	w.WriteInt32(1)
	// LZMA chunks
	w.WriteInt32(1)
	// LZMA compressed and stream sizes, the same as nothing is compressed
	w.WriteInt32(total - baseOffset)
	w.WriteInt32(total - baseOffset)
	w.WriteInt32(total)
	w.Align(4)
	w.Write(unknownHeaderBytes[:])

	if err := w.Err(); err != nil {
		return err
	}
	if w.Position() != baseOffset {
		return fmt.Errorf("bundle: header ends at %#x, expected %#x", w.Position(), baseOffset)
	}

	// asset file count
	w.WriteInt32(1)
	w.WriteCString(cabName)
	w.WriteInt32(directoryOffset)
	w.WriteInt32(int32(assetHeaderSize + assetSize))
	w.Align(4)

	if err := w.Err(); err != nil {
		return err
	}
	if w.Position() != bundleHeaderSize {
		return fmt.Errorf("bundle: directory ends at %#x, expected %#x", w.Position(), bundleHeaderSize)
	}
	return nil
}

func writeAssetHeader(w *endian.Writer, assetSize int, dataStart int64) error {
	w.WriteInt32(assetTableSize)
	// data end
	w.WriteInt32(int32(assetHeaderSize + assetSize))
	w.WriteInt32(assetFormat)
	// data offset, from the start of the asset header
	w.WriteInt32(int32(dataStart + assetHeaderSize))
	return w.Err()
}

// Encode writes the jacket bundle described by r to w. An invalid request
// is rejected before anything is written. If writing fails the error from w
// is returned unchanged and whatever was written must be discarded.
func Encode(w io.Writer, r *Request) error {
	if err := r.validate(); err != nil {
		return err
	}

	asset, dataStart, err := assetFile(r)
	if err != nil {
		return err
	}

	hw := endian.NewWriter(w, binary.BigEndian)
	if err := writeHeader(hw, CABName(r.SongID), len(asset)); err != nil {
		return err
	}
	if err := writeAssetHeader(hw, len(asset), dataStart); err != nil {
		return err
	}
	hw.Write(asset)

	return hw.Err()
}

// Marshal returns the jacket bundle described by r.
func Marshal(r *Request) ([]byte, error) {
	b := new(bytes.Buffer)
	if err := Encode(b, r); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
