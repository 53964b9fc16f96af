package decoder

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-restaking-clearsign/calldata"
)

// W is the ABI word size in bytes.
const W = calldata.WordLength

func readUint16(w calldata.Word) (uint16, error) {
	v, ok := w.Uint16()
	if !ok {
		return 0, fmt.Errorf("%w: %s is not a 16-bit integer", ErrMalformedField, w.Hex())
	}
	return v, nil
}

func readAddress(w calldata.Word) (common.Address, error) {
	a, ok := w.Address()
	if !ok {
		return a, fmt.Errorf("%w: %s is not an address", ErrMalformedField, w.Hex())
	}
	return a, nil
}

// readOffset reads an offset word that must hold exactly want.
func readOffset(w calldata.Word, want uint32) error {
	v, err := readUint16(w)
	if err != nil {
		return err
	}
	if uint32(v) != want {
		return fmt.Errorf("%w: %d, expected %d", ErrUnexpectedOffset, v, want)
	}
	return nil
}

// checkPosition verifies that an array recorded at rel (relative to the
// argument head) starts at the absolute position pos.
func checkPosition(name string, rel uint16, pos uint32) error {
	if uint32(rel)+calldata.SelectorLength != pos {
		return fmt.Errorf("%w: %s array at %d, recorded at %d", ErrUnexpectedOffset, name, pos, uint32(rel)+calldata.SelectorLength)
	}
	return nil
}

// checkLength bounds a parallel array by the withdrawal count.
func checkLength(name string, n, withdrawals uint16) error {
	if n > withdrawals {
		return fmt.Errorf("%w: %s has %d items, %d withdrawals", ErrLengthMismatch, name, n, withdrawals)
	}
	return nil
}

func unsupportedField(f fmt.Stringer) error {
	return fmt.Errorf("%w: no word expected in state %s", ErrUnsupportedOperation, f)
}
