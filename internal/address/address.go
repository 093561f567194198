// Package address derives content addresses from canonical document bytes.
package address

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Prefix names the hash function of an address.
const Prefix = "sha256:"

// Of returns the content address of canonical bytes: "sha256:" followed by
// the lowercase hex SHA-256 digest.
func Of(canonical []byte) string {
	sum := sha256.Sum256(canonical)
	return Prefix + hex.EncodeToString(sum[:])
}

// Valid reports whether s has the form produced by Of.
func Valid(s string) bool {
	digest, ok := strings.CutPrefix(s, Prefix)
	if !ok || len(digest) != 2*sha256.Size {
		return false
	}
	for _, c := range digest {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
