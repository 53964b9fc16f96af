// Package checksum implements the rolling digest used to validate ABI offset
// tables that are too large to keep in memory.
//
// An array of dynamic elements starts with a table of relative offsets, one
// per element, and the elements follow later in the stream. Instead of storing
// the table, the decoder folds every announced absolute position into a
// preview digest. When it later reaches the head of each element it folds the
// actual position into a value digest. Once the last element is reached both
// digests must be equal, which proves that every element started exactly
// where the table said, in the same order.
//
// The fold is d' = Keccak256(d || uint32_be(position)) starting from the zero
// digest.
package checksum

import (
	"encoding/binary"
	"errors"
	"fmt"
	stdhash "hash"

	"github.com/Fantom-foundation/lachesis-base/hash"
	"golang.org/x/crypto/sha3"
)

var (
	// ErrChecksumMismatch is returned when the visited positions differ from the announced ones.
	ErrChecksumMismatch = errors.New("offset table checksum mismatch")
	// ErrHashPrimitiveFailure is returned when the hash function fails.
	ErrHashPrimitiveFailure = errors.New("hash primitive failure")
)

const digestLength = len(hash.Hash{})

// newHasher is replaced in tests.
var newHasher = func() stdhash.Hash {
	return sha3.NewLegacyKeccak256()
}

// Verifier holds both digests of one offset table.
// The zero value is ready to use.
type Verifier struct {
	preview hash.Hash
	value   hash.Hash

	// anchor is the absolute position of the first table word. Offsets in the
	// table are relative to it.
	anchor   uint32
	anchored bool
}

// Preview folds one table entry. rel is the relative offset read from the word,
// pos is the absolute position of that word. The first call anchors the table.
func (v *Verifier) Preview(rel uint16, pos uint32) error {
	if !v.anchored {
		v.anchor = pos
		v.anchored = true
	}
	return fold(&v.preview, v.anchor+uint32(rel))
}

// Visit folds the absolute position pos of an element head. When last is set
// the element is the final one of the table and the digests are compared.
func (v *Verifier) Visit(pos uint32, last bool) error {
	if err := fold(&v.value, pos); err != nil {
		return err
	}
	if last && v.preview != v.value {
		return fmt.Errorf("%w: preview %x, value %x", ErrChecksumMismatch, v.preview[:4], v.value[:4])
	}
	return nil
}

// Reset clears both digests and the anchor so the verifier can serve the next table.
func (v *Verifier) Reset() {
	*v = Verifier{}
}

func fold(d *hash.Hash, pos uint32) error {
	var buf [digestLength + 4]byte
	copy(buf[:], d[:])
	binary.BigEndian.PutUint32(buf[digestLength:], pos)

	h := newHasher()
	if _, err := h.Write(buf[:]); err != nil {
		return fmt.Errorf("%w: %v", ErrHashPrimitiveFailure, err)
	}
	sum := h.Sum(nil)
	if len(sum) != digestLength {
		return fmt.Errorf("%w: digest is %d bytes", ErrHashPrimitiveFailure, len(sum))
	}
	*d = hash.BytesToHash(sum)
	return nil
}
