package bundle

import (
	"encoding/binary"
	"fmt"
)

// Offsets into indexTemplate.
var (
	// "1001" in both asset paths, both container names and the bundle name
	songIDOffsets = [...]int{75, 87, 159, 171, 239}
	// the _s texture, once in the preload table and once in the container
	smallPathIDOffsets = [...]int{12, 196}
	// the _m texture
	mediumPathIDOffsets = [...]int{24, 112}
)

// patchIndex returns a copy of the bundle index template describing the
// given song and texture path ids. The path ids must use the same byte order
// as the preload table.
func patchIndex(order binary.ByteOrder, songID int, small, medium int64) []byte {
	b := append([]byte(nil), indexTemplate...)

	id := []byte(fmt.Sprintf("%04d", songID))
	for _, o := range songIDOffsets {
		copy(b[o:o+len(id)], id)
	}

	for _, o := range smallPathIDOffsets {
		order.PutUint64(b[o:o+8], uint64(small))
	}

	for _, o := range mediumPathIDOffsets {
		order.PutUint64(b[o:o+8], uint64(medium))
	}

	return b
}
