package bundle

import (
	_ "embed" // templates are opaque binary data
)

// The class structures describe the engine's field layout for the two
// object kinds stored in a jacket bundle. Each one starts with the class id
// and the 16 byte class hash. They have not changed across engine releases
// that read these bundles and must be written byte for byte.
var (
	//go:embed templates/texture2d.bin
	texture2DClass []byte

	//go:embed templates/assetbundle.bin
	assetBundleClass []byte

	// Serialized AssetBundle object for jacket_1001 with two textures. The
	// song id and both texture path ids are patched per bundle.
	//go:embed templates/index.bin
	indexTemplate []byte
)
