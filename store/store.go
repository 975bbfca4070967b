/*
Package store caches built font atlases in a SQLite database so that
regenerating a header for an unchanged font does not rasterize every glyph
again.

Atlases are keyed by the SHA-1 of the font data together with the size,
character range and threshold used to build them.
*/
package store

import (
	"crypto/sha1"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/bodgit/bitpack/atlas"
	_ "github.com/mattn/go-sqlite3" // driver
)

// Store is an atlas cache.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database at file.
func Open(file string) (*Store, error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS atlas (id INTEGER PRIMARY KEY NOT NULL, key TEXT NOT NULL UNIQUE, width INTEGER NOT NULL, height INTEGER NOT NULL, first INTEGER NOT NULL, last INTEGER NOT NULL, data BLOB NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key returns the cache key for an atlas built from font data b.
func Key(b []byte, size float64, first, last rune, threshold uint8) string {
	h := sha1.New()
	h.Write(b)

	var tmp [17]byte
	binary.LittleEndian.PutUint64(tmp[0:], math.Float64bits(size))
	binary.LittleEndian.PutUint32(tmp[8:], uint32(first))
	binary.LittleEndian.PutUint32(tmp[12:], uint32(last))
	tmp[16] = threshold
	h.Write(tmp[:])

	return fmt.Sprintf("%X", h.Sum(nil))
}

// Get returns the atlas stored under key, or nil if there isn't one.
func (s *Store) Get(key string) (*atlas.Atlas, error) {
	var width, height int
	var first, last int32
	var data []byte
	switch err := s.db.QueryRow("SELECT width, height, first, last, data FROM atlas WHERE key = ?", key).Scan(&width, &height, &first, &last, &data); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return atlas.FromBytes(data, width, height, first, last)
	default:
		return nil, err
	}
}

// Put stores a under key, replacing anything already there.
func (s *Store) Put(key string, a *atlas.Atlas) error {
	if _, err := s.db.Exec("INSERT OR REPLACE INTO atlas (key, width, height, first, last, data) VALUES (?, ?, ?, ?, ?, ?)", key, a.Width, a.Height, a.First, a.Last, a.Bytes()); err != nil {
		return err
	}
	return nil
}
