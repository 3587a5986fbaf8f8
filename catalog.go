package jacket

import (
	"crypto/rand"
	"database/sql"
	"encoding/binary"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Path id 1 always belongs to the bundle index object.
const reservedPathID = 1

// Catalog remembers the texture path ids used for each song so rebuilding a
// jacket produces the same objects.
type Catalog struct {
	db *sql.DB
}

// NewCatalog opens or creates the catalog database in file.
func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS song (id INTEGER PRIMARY KEY NOT NULL, small_path_id INTEGER NOT NULL, medium_path_id INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func randomPathID(exclude ...int64) (int64, error) {
	for {
		var id int64
		if err := binary.Read(rand.Reader, binary.LittleEndian, &id); err != nil {
			return 0, err
		}
		if id == 0 || id == reservedPathID {
			continue
		}
		ok := true
		for _, e := range exclude {
			if id == e {
				ok = false
			}
		}
		if ok {
			return id, nil
		}
	}
}

// PathIDs returns the path ids of the small and medium textures for the
// song, allocating and storing random ones the first time a song is seen.
func (c *Catalog) PathIDs(songID int) (int64, int64, error) {
	var small, medium int64
	switch err := c.db.QueryRow("SELECT small_path_id, medium_path_id FROM song WHERE id = ?", songID).Scan(&small, &medium); err {
	case sql.ErrNoRows:
		if small, err = randomPathID(); err != nil {
			return 0, 0, err
		}
		if medium, err = randomPathID(small); err != nil {
			return 0, 0, err
		}
		if err := c.SetPathIDs(songID, small, medium); err != nil {
			return 0, 0, err
		}
		return small, medium, nil
	case nil:
		return small, medium, nil
	default:
		return 0, 0, err
	}
}

// SetPathIDs stores the path ids for a song, replacing any existing ones.
// This is used to keep the ids of bundles that were built elsewhere.
func (c *Catalog) SetPathIDs(songID int, small, medium int64) error {
	if small == reservedPathID || medium == reservedPathID || small == medium {
		return fmt.Errorf("jacket: invalid path ids %d and %d", small, medium)
	}
	if _, err := c.db.Exec("INSERT OR REPLACE INTO song (id, small_path_id, medium_path_id) VALUES (?, ?, ?)", songID, small, medium); err != nil {
		return err
	}
	return nil
}
