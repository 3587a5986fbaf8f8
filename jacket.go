/*
Package jacket is a library for building the song jacket asset bundles loaded
by the game runtime.

Each bundle carries the jacket in two texture encodings. The small ETC_RGB4
texture comes from a PVR file; the medium RGB565 texture comes from a DDS
file or any PNG, JPEG or GIF image. Texture path ids are kept in a SQLite
catalog so a rebuilt bundle is identical to the previous one.
*/
package jacket

import (
	"log"
)

// Platform is the default target platform written to bundles.
const Platform = 13

type Jacket struct {
	catalog *Catalog
	logger  *log.Logger
}

// New opens the catalog in file and returns a Jacket logging to logger.
func New(file string, logger *log.Logger) (*Jacket, error) {
	catalog, err := NewCatalog(file)
	if err != nil {
		return nil, err
	}
	return &Jacket{
		catalog: catalog,
		logger:  logger,
	}, nil
}

// Catalog returns the path id catalog.
func (j *Jacket) Catalog() *Catalog {
	return j.catalog
}

func (j *Jacket) Close() error {
	return j.catalog.Close()
}
