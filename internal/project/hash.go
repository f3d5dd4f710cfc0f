package project

import "crypto/sha256"

// Digest matches source.File.Hash.
type Digest [32]byte

// Combine hashes content followed by each part, in order. The disk cache
// keys a file's summary by its content combined with the analyser version.
func Combine(content Digest, parts ...[]byte) Digest {
	h := sha256.New()
	h.Write(content[:])
	for _, p := range parts {
		h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
