// Package cryptox holds the hashing primitives used by the reference backend.
package cryptox

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// TokenDigest returns the keyed BLAKE2b-256 digest of a one-time login token,
// hex encoded. Only digests are stored, so a leaked table cannot be replayed
// without the server key. Keys longer than 64 bytes are truncated.
func TokenDigest(key []byte, token string) string {
	if len(key) > blake2b.Size {
		key = key[:blake2b.Size]
	}
	h, err := blake2b.New256(key)
	if err != nil {
		// only possible for keys > 64 bytes, excluded above
		panic(err)
	}
	h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil))
}
