package store

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32
// (lowercase, no padding). 8 chars base32 ~= 40 bits of space.
func newRandomID(prefix string) (string, error) {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

func idExists(db *DB, id string) bool {
	for _, inv := range db.Investigations {
		if inv.ID == id {
			return true
		}
	}
	for _, d := range db.Definitions {
		if d.ID == id {
			return true
		}
	}
	for _, c := range db.Claims {
		if c.ID == id {
			return true
		}
	}
	for _, e := range db.Evidence {
		if e.ID == id {
			return true
		}
	}
	for _, ca := range db.Counterarguments {
		if ca.ID == id {
			return true
		}
	}
	return false
}

// NewID generates a fresh id with the given prefix, retrying on the (very
// unlikely) collision with an existing entity.
func NewID(db *DB, prefix string) (string, error) {
	for {
		id, err := newRandomID(prefix)
		if err != nil {
			return "", err
		}
		if !idExists(db, id) {
			return id, nil
		}
	}
}
