// Package ids generates primary keys for stored records.
package ids

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// Length is the number of characters in every generated id.
const Length = 32

// New returns a random 32-character lowercase hex id. Uniqueness is
// probabilistic; callers do not check for collisions.
func New() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// Valid reports whether s has the shape of an id produced by New.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	return strings.Trim(s, "0123456789abcdef") == ""
}
