package bundle

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/deretore/jacket/endian"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSmallID  = int64(-0x12c9d528c3cda4aa)
	testMediumID = int64(0x547e3042158b3095)
)

// Position of the preload table count within the asset file: the leading
// descriptor, platform, flag, base count and both class blocks.
const preloadTableStart = 4 + 8 + 1 + 1 + 4 + 844 + 1279

func testRequest(songID int) *Request {
	return &Request{
		SongID:   songID,
		Platform: 13,
		Small: TextureSource{
			Data:   bytes.Repeat([]byte{0x5a}, 8),
			Width:  128,
			Height: 128,
			Format: FormatETCRGB4,
			PathID: testSmallID,
		},
		Medium: TextureSource{
			Data:   bytes.Repeat([]byte{0xa5}, 2),
			Width:  128,
			Height: 128,
			Format: FormatRGB565,
			PathID: testMediumID,
		},
	}
}

type failingWriter struct {
	after int
	err   error
}

func (f *failingWriter) Write(p []byte) (int, error) {
	if len(p) > f.after {
		n := f.after
		f.after = 0
		return n, f.err
	}
	f.after -= len(p)
	return len(p), nil
}

func TestTemplateSizes(t *testing.T) {
	assert.Len(t, texture2DClass, 844)
	assert.Len(t, assetBundleClass, 1279)
	assert.Len(t, indexTemplate, 260)

	le := binary.LittleEndian
	assert.Equal(t, uint32(typeTexture2D), le.Uint32(texture2DClass))
	assert.Equal(t, uint32(typeAssetBundle), le.Uint32(assetBundleClass))
}

func TestMarshalDeterministic(t *testing.T) {
	b1, err := Marshal(testRequest(1001))
	require.NoError(t, err)
	b2, err := Marshal(testRequest(1001))
	require.NoError(t, err)
	assert.Equal(t, b1, b2)

	b3, err := Marshal(testRequest(1002))
	require.NoError(t, err)
	assert.NotEqual(t, b1, b3)
}

func TestMarshalHeader(t *testing.T) {
	b, err := Marshal(testRequest(1))
	require.NoError(t, err)
	require.True(t, len(b) > bundleHeaderSize+assetHeaderSize)

	be := binary.BigEndian
	total := uint32(len(b))
	assetSize := total - bundleHeaderSize

	assert.Equal(t, "UnityRaw\x00", string(b[0:9]))
	assert.Equal(t, uint32(3), be.Uint32(b[9:]))
	assert.Equal(t, "5.x.x\x005.1.2f1\x00", string(b[13:27]))

	assert.Equal(t, total, be.Uint32(b[27:]))
	assert.Equal(t, uint16(0), be.Uint16(b[31:]))
	assert.Equal(t, uint16(0x3c), be.Uint16(b[33:]))
	assert.Equal(t, uint32(1), be.Uint32(b[35:]))
	assert.Equal(t, uint32(1), be.Uint32(b[39:]))
	assert.Equal(t, total-0x3c, be.Uint32(b[43:]))
	assert.Equal(t, total-0x3c, be.Uint32(b[47:]))
	assert.Equal(t, total, be.Uint32(b[51:]))
	assert.Equal(t, []byte{0}, b[55:56])
	assert.Equal(t, []byte{0x00, 0x00, 0x34, 0x00}, b[56:60])

	// Asset directory
	assert.Equal(t, uint32(1), be.Uint32(b[0x3c:]))
	assert.Equal(t, "CAB-5ce19ef7f590d355241236863b2b7f73\x00", string(b[0x40:0x65]))
	assert.Equal(t, uint32(0x34), be.Uint32(b[0x65:]))
	assert.Equal(t, assetSize, be.Uint32(b[0x69:]))
	assert.Equal(t, []byte{0, 0, 0}, b[0x6d:0x70])

	// Asset header
	assert.Equal(t, uint32(0x8ba), be.Uint32(b[0x70:]))
	assert.Equal(t, assetSize, be.Uint32(b[0x74:]))
	assert.Equal(t, uint32(0xf), be.Uint32(b[0x78:]))
	dataOffset := be.Uint32(b[0x7c:])
	assert.Equal(t, uint32(4064+assetHeaderSize), dataOffset)
}

func TestMarshalAssetFile(t *testing.T) {
	r := testRequest(1)
	b, err := Marshal(r)
	require.NoError(t, err)

	asset := b[bundleHeaderSize+assetHeaderSize:]
	le := binary.LittleEndian

	assert.Equal(t, []byte{0, 0, 0, 0}, asset[0:4])
	assert.Equal(t, "5.1.2f1\x00", string(asset[4:12]))
	assert.Equal(t, byte(13), asset[12])
	assert.Equal(t, byte(1), asset[13])
	assert.Equal(t, uint32(2), le.Uint32(asset[14:]))
	assert.Equal(t, texture2DClass, asset[18:18+844])
	assert.Equal(t, assetBundleClass, asset[18+844:preloadTableStart])

	assert.Equal(t, uint32(3), le.Uint32(asset[preloadTableStart:]))

	dataStart := int(binary.BigEndian.Uint32(b[0x7c:])) - assetHeaderSize
	assert.Zero(t, dataStart%16)

	// Walk the preload table and check every object it points to
	p := preloadTableStart + 4
	var objects [3][]byte
	for i := range objects {
		offset := int(le.Uint32(asset[p+8:]))
		size := int(le.Uint32(asset[p+12:]))
		assert.Zero(t, offset%8)
		objects[i] = asset[dataStart+offset : dataStart+offset+size]
		p = int(endian.RoundUp(int64(p+23), 4))
	}

	assert.Equal(t, testSmallID, int64(le.Uint64(asset[preloadTableStart+4:])))
	assert.Equal(t, "jacket_0001_s", string(objects[0][4:17]))
	assert.Equal(t, r.Small.Data, objects[0][76:])

	index := objects[1]
	assert.Len(t, index, 260)
	for _, o := range songIDOffsets {
		assert.Equal(t, "0001", string(index[o:o+4]))
	}
	for _, o := range smallPathIDOffsets {
		assert.Equal(t, testSmallID, int64(le.Uint64(index[o:])))
	}
	for _, o := range mediumPathIDOffsets {
		assert.Equal(t, testMediumID, int64(le.Uint64(index[o:])))
	}

	assert.Equal(t, "jacket_0001_m", string(objects[2][4:17]))
	assert.Equal(t, r.Medium.Data, objects[2][76:])

	// The file ends on the padding after the last object
	assert.Zero(t, len(asset)%8)
	assert.Equal(t, []byte{0xa5, 0xa5, 0, 0}, asset[len(asset)-4:])
}

func TestMarshalSizes(t *testing.T) {
	for _, n := range []int{1, 7, 8, 4096, 32768} {
		r := testRequest(1001)
		r.Small.Data = make([]byte, n)
		r.Medium.Data = make([]byte, n*2)

		b, err := Marshal(r)
		require.NoError(t, err)

		asset, dataStart, err := assetFile(r)
		require.NoError(t, err)

		be := binary.BigEndian
		assert.Equal(t, bundleHeaderSize+assetHeaderSize+len(asset), len(b))
		assert.Equal(t, uint32(len(b)), be.Uint32(b[27:]))
		assert.Equal(t, uint32(assetHeaderSize+len(asset)), be.Uint32(b[0x74:]))
		assert.Equal(t, uint32(dataStart+assetHeaderSize), be.Uint32(b[0x7c:]))
		assert.Equal(t, asset, b[bundleHeaderSize+assetHeaderSize:])
	}
}

func TestEncodeInvalid(t *testing.T) {
	tables := []func(*Request){
		func(r *Request) { r.SongID = -1 },
		func(r *Request) { r.SongID = 10000 },
		func(r *Request) { r.Small.PathID = indexPathID },
		func(r *Request) { r.Medium.PathID = indexPathID },
		func(r *Request) { r.Medium.PathID = r.Small.PathID },
	}

	for i, modify := range tables {
		r := testRequest(1)
		modify(r)

		b := new(bytes.Buffer)
		err := Encode(b, r)
		assert.True(t, errors.Is(err, ErrInvalidArgument), "case %d", i)
		assert.Zero(t, b.Len(), "case %d", i)
	}
}

func TestEncodeSinkFailure(t *testing.T) {
	errFull := errors.New("no space left on device")

	for _, after := range []int{0, 10, 0x70, 0x80, 3000} {
		err := Encode(&failingWriter{after: after, err: errFull}, testRequest(1))
		assert.Equal(t, errFull, err, "after %d bytes", after)
	}
}
