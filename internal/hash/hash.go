// Package hash provides content hashing for merge outputs.
//
// propmerge hashes the merged output and the current destination to tell
// whether a merge would change anything. This backs dry runs, the --check
// mode, and the checksum reported with every merge result.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// Hasher provides an abstraction for content hashing operations.
type Hasher interface {
	// HashBytes computes the hash of data.
	HashBytes(data []byte) string

	// HashReader computes the hash of everything read from r.
	HashReader(r io.Reader) (string, error)
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// HashBytes computes the hex-encoded SHA-256 of data.
func (h *SHA256Hasher) HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashReader computes the hex-encoded SHA-256 of the stream.
func (h *SHA256Hasher) HashReader(r io.Reader) (string, error) {
	hasher := sha256.New()
	if _, err := io.Copy(hasher, r); err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
