package bundle

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPatchIndex(t *testing.T) {
	const (
		small  = int64(-0x12c9d528c3cda4aa)
		medium = int64(0x547e3042158b3095)
	)

	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		b := patchIndex(order, 42, small, medium)
		assert.Len(t, b, len(indexTemplate))

		for _, o := range songIDOffsets {
			assert.Equal(t, "0042", string(b[o:o+4]), "offset %d", o)
		}
		for _, o := range smallPathIDOffsets {
			assert.Equal(t, small, int64(order.Uint64(b[o:])), "offset %d", o)
		}
		for _, o := range mediumPathIDOffsets {
			assert.Equal(t, medium, int64(order.Uint64(b[o:])), "offset %d", o)
		}
	}
}

func TestPatchIndexLeavesTemplate(t *testing.T) {
	before := append([]byte(nil), indexTemplate...)

	b := patchIndex(binary.LittleEndian, 9999, 2, 3)

	assert.Equal(t, before, indexTemplate)
	assert.Equal(t, "1001", string(indexTemplate[75:79]))
	assert.Equal(t, "9999", string(b[75:79]))

	// Everything outside the injected ranges is untouched
	patched := make(map[int]bool)
	for _, o := range songIDOffsets {
		for i := 0; i < 4; i++ {
			patched[o+i] = true
		}
	}
	for _, o := range append(smallPathIDOffsets[:], mediumPathIDOffsets[:]...) {
		for i := 0; i < 8; i++ {
			patched[o+i] = true
		}
	}
	for i := range b {
		if !patched[i] {
			assert.Equal(t, indexTemplate[i], b[i], "byte %d", i)
		}
	}
}

func TestIndexTemplateSample(t *testing.T) {
	// The template was captured from jacket_1001; its own path ids sit at
	// the injection offsets.
	le := binary.LittleEndian
	assert.Equal(t, uint64(0xed362ad73c325b56), le.Uint64(indexTemplate[12:]))
	assert.Equal(t, uint64(0xed362ad73c325b56), le.Uint64(indexTemplate[196:]))
	assert.Equal(t, uint64(0x547e3042158b3095), le.Uint64(indexTemplate[24:]))
	assert.Equal(t, uint64(0x547e3042158b3095), le.Uint64(indexTemplate[112:]))
	assert.Equal(t, "jacket_1001.unity3d", string(indexTemplate[232:251]))
}
