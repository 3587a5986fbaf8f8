package bundle

import (
	"github.com/deretore/jacket/endian"
)

// Engine class ids used as preload type tags.
const (
	typeTexture2D = 28
	// The index object is really an AssetBundleManifest, but the runtime
	// only accepts the AssetBundle class id here.
	typeAssetBundle = 142
)

const (
	indexPathID = 1

	preloadSentinel = 0xffff

	// Empty shared assets table, no fix-ups.
	sharedAssetsGap = 0x730

	objectAlign = 8
)

// PreloadEntry describes one serialized object in the asset file's data
// region. Offset is relative to the data start.
type PreloadEntry struct {
	PathID int64
	Offset uint32
	Size   uint32
	Type1  uint16
	Type2  uint16
}

type subAsset struct {
	pathID int64
	data   []byte
	typ    uint16
}

func preloadEntries(assets []subAsset) []PreloadEntry {
	entries := make([]PreloadEntry, 0, len(assets))
	var offset int64
	for _, a := range assets {
		entries = append(entries, PreloadEntry{
			PathID: a.pathID,
			Offset: uint32(offset),
			Size:   uint32(len(a.data)),
			Type1:  a.typ,
			Type2:  a.typ,
		})
		offset = endian.RoundUp(offset+int64(len(a.data)), objectAlign)
	}
	return entries
}

// writePreload writes the preload table, the empty shared assets table and
// the object data. It returns the position where the object data starts.
func writePreload(w *endian.Writer, assets []subAsset) (int64, error) {
	entries := preloadEntries(assets)

	w.WriteInt32(int32(len(entries)))
	for _, e := range entries {
		w.WriteInt64(e.PathID)
		w.WriteUint32(e.Offset)
		w.WriteUint32(e.Size)
		w.WriteUint16(e.Type1)
		w.WriteUint16(e.Type2)
		w.WriteUint16(preloadSentinel)
		w.WriteUint8(0)
		w.Align(4)
	}
	w.Align(16)
	w.Pad(sharedAssetsGap)

	dataStart := w.Position()
	for _, a := range assets {
		w.Write(a.data)
		w.Align(objectAlign)
	}

	if err := w.Err(); err != nil {
		return 0, err
	}
	return dataStart, nil
}
