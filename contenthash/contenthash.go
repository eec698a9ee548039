// Package contenthash computes canonical BLAKE2b-512 digests for
// in-memory merge values. Encodings are length-prefixed so that
// concatenated fields never collide.
package contenthash

import (
	"encoding/binary"
	"encoding/hex"
	"hash"
	"io"

	blake2b "github.com/minio/blake2b-simd"
)

// Size is the digest size in bytes.
const Size = blake2b.Size

// Hashable is implemented by values that can write a canonical encoding
// of themselves into a hasher.
type Hashable interface {
	HashInto(w io.Writer)
}

// New returns a fresh BLAKE2b-512 hasher.
func New() hash.Hash {
	return blake2b.New512()
}

// Sum returns the digest of v's canonical encoding.
func Sum(v Hashable) []byte {
	h := New()
	v.HashInto(h)
	return h.Sum(nil)
}

// HexSum returns Sum(v) as a lowercase hex string.
func HexSum(v Hashable) string {
	return hex.EncodeToString(Sum(v))
}

// WriteUint64 writes n in little-endian order.
func WriteUint64(w io.Writer, n uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], n)
	_, _ = w.Write(buf[:])
}

// WriteByte writes a single byte.
func WriteByte(w io.Writer, b byte) {
	_, _ = w.Write([]byte{b})
}

// WriteBytes writes b prefixed with its length.
func WriteBytes(w io.Writer, b []byte) {
	WriteUint64(w, uint64(len(b)))
	_, _ = w.Write(b)
}

// WriteString writes s prefixed with its length.
func WriteString(w io.Writer, s string) {
	WriteBytes(w, []byte(s))
}
