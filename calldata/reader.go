package calldata

// reader.go splits raw call data the way the host does before handing it to a plugin:
// a 4-byte selector followed by 32-byte words, each delivered together with its
// absolute byte offset inside the call data.
//
// The Reader is a plain cursor over the input slice. It never copies the input and
// is not safe for concurrent use.

import (
	"errors"
	"fmt"
)

var (
	// ErrShortCalldata is returned when the input cannot even hold a selector.
	ErrShortCalldata = errors.New("calldata shorter than a selector")
	// ErrUnalignedCalldata is returned when the arguments are not a whole number of words.
	ErrUnalignedCalldata = errors.New("calldata arguments are not word aligned")
)

// Reader hands out the words of a call data payload in order.
type Reader struct {
	// buf is the full call data, selector included.
	buf []byte
	// offset is the absolute position of the next word.
	offset int
}

// NewReader validates the framing of data and positions the cursor on the first
// argument word.
func NewReader(data []byte) (*Reader, error) {
	if len(data) < SelectorLength {
		return nil, ErrShortCalldata
	}
	if rest := len(data) - SelectorLength; rest%WordLength != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrUnalignedCalldata, rest%WordLength)
	}
	return &Reader{
		buf:    data,
		offset: SelectorLength,
	}, nil
}

// Selector returns the function selector at the head of the call data.
func (r *Reader) Selector() Selector {
	var s Selector
	copy(s[:], r.buf[:SelectorLength])
	return s
}

// Next returns the next word and its absolute offset. ok is false once every
// word has been consumed.
func (r *Reader) Next() (w Word, offset uint32, ok bool) {
	if r.Empty() {
		return w, 0, false
	}
	copy(w[:], r.buf[r.offset:r.offset+WordLength])
	offset = uint32(r.offset)
	r.offset += WordLength
	return w, offset, true
}

// Position returns the absolute offset of the next word.
func (r *Reader) Position() int {
	return r.offset
}

// Remaining returns how many words are left.
func (r *Reader) Remaining() int {
	return (len(r.buf) - r.offset) / WordLength
}

// Empty reports whether all words have been consumed.
func (r *Reader) Empty() bool {
	return len(r.buf) == r.offset
}
