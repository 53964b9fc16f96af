// Package calldata models the unit of input of the streaming decoder: the 4-byte
// function selector and the 32-byte ABI words that follow it.
//
// Words are decoded in place. Numeric fields used for lengths and offsets are
// read as two-byte big-endian integers from the tail of the word, and any other
// non-zero byte makes the word malformed. Addresses occupy the low 20 bytes and
// require zero padding, like the Solidity ABI decoder.
package calldata

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

const (
	// SelectorLength is the size of a function selector.
	SelectorLength = 4
	// WordLength is the size of one ABI word.
	WordLength = 32

	addressPadding = WordLength - common.AddressLength
	u16Padding     = WordLength - 2
)

// Selector identifies the contract function a call invokes.
type Selector [SelectorLength]byte

// SelectorFromUint32 builds a selector from its numeric form (0xe7a050aa).
func SelectorFromUint32(v uint32) Selector {
	var s Selector
	binary.BigEndian.PutUint32(s[:], v)
	return s
}

// Uint32 returns the numeric form of the selector.
func (s Selector) Uint32() uint32 {
	return binary.BigEndian.Uint32(s[:])
}

// String returns the selector as 0x-prefixed hex.
func (s Selector) String() string {
	return fmt.Sprintf("0x%08x", s.Uint32())
}

// Word is a single 32-byte ABI slot.
type Word [WordLength]byte

// BytesToWord left-pads b into a word. Longer inputs keep their last 32 bytes.
func BytesToWord(b []byte) Word {
	var w Word
	if len(b) > WordLength {
		b = b[len(b)-WordLength:]
	}
	copy(w[WordLength-len(b):], b)
	return w
}

// Uint16 parses the word as a two-byte big-endian integer.
// ok is false if any of the leading 30 bytes is set.
func (w Word) Uint16() (v uint16, ok bool) {
	if !zeroes(w[:u16Padding]) {
		return 0, false
	}
	return binary.BigEndian.Uint16(w[u16Padding:]), true
}

// Address extracts the address held in the low 20 bytes.
// ok is false if the 12 padding bytes are dirty.
func (w Word) Address() (a common.Address, ok bool) {
	if !zeroes(w[:addressPadding]) {
		return a, false
	}
	return common.BytesToAddress(w[addressPadding:]), true
}

// Uint256 returns the word verbatim as an unsigned 256-bit integer.
func (w Word) Uint256() *uint256.Int {
	return new(uint256.Int).SetBytes(w[:])
}

// Hex returns the word as 0x-prefixed hex.
func (w Word) Hex() string {
	return fmt.Sprintf("%#x", w[:])
}

func zeroes(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
