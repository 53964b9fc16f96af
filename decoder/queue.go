package decoder

import (
	"fmt"

	"github.com/rony4d/go-restaking-clearsign/calldata"
	"github.com/rony4d/go-restaking-clearsign/checksum"
	"github.com/rony4d/go-restaking-clearsign/registry"
)

// queueWithdrawals((address[] strategies, uint256[] shares, address withdrawer)[] params)
//
// Layout after the selector:
//
//	4     offset of params (always one word)
//	36    params length n
//	68    n offsets of the elements, relative to 68
//	...   n elements, each:
//	        +0   strategies offset (3 words)
//	        +32  shares offset
//	        +64  withdrawer
//	        +96  strategies length k, k strategies
//	        ...  shares length, shares

type queueField uint8

const (
	queueDataOffset queueField = iota
	queueWithdrawalsSize
	queueWithdrawalOffset
	queueStrategyOffset
	queueSharesOffset
	queueWithdrawer
	queueStrategySize
	queueStrategy
	queueSharesSize
	queueShare
	queueDone
)

var queueFieldNames = [...]string{
	"DataOffset",
	"WithdrawalsSize",
	"WithdrawalOffset",
	"StrategyOffset",
	"SharesOffset",
	"Withdrawer",
	"StrategySize",
	"Strategy",
	"SharesSize",
	"Share",
	"Done",
}

func (f queueField) String() string {
	return fieldName(queueFieldNames[:], uint8(f))
}

type queueWithdrawalMachine struct {
	next queueField

	// remaining counts table words, then elements still to parse.
	remaining uint16
	// items counts the words left in the current inner array.
	items uint16
	// sharesOffset is relative to the element head.
	sharesOffset uint16

	table checksum.Verifier
	who   withdrawer
	res   QueueWithdrawal
}

func (m *queueWithdrawalMachine) advance(w calldata.Word, off uint32) error {
	switch m.next {
	case queueDataOffset:
		if err := readOffset(w, W); err != nil {
			return err
		}
		m.next = queueWithdrawalsSize

	case queueWithdrawalsSize:
		n, err := readUint16(w)
		if err != nil {
			return err
		}
		m.res.Withdrawals, m.remaining = n, n
		if n == 0 {
			m.next = queueDone
		} else {
			m.next = queueWithdrawalOffset
		}

	case queueWithdrawalOffset:
		rel, err := readUint16(w)
		if err != nil {
			return err
		}
		if err := m.table.Preview(rel, off); err != nil {
			return err
		}
		m.remaining--
		if m.remaining == 0 {
			m.remaining = m.res.Withdrawals
			m.next = queueStrategyOffset
		}

	case queueStrategyOffset:
		// element head
		if err := m.table.Visit(off, m.remaining == 1); err != nil {
			return err
		}
		if err := readOffset(w, 3*W); err != nil {
			return err
		}
		m.next = queueSharesOffset

	case queueSharesOffset:
		rel, err := readUint16(w)
		if err != nil {
			return err
		}
		m.sharesOffset = rel
		m.next = queueWithdrawer

	case queueWithdrawer:
		a, err := readAddress(w)
		if err != nil {
			return err
		}
		if err := m.who.bind(a); err != nil {
			return err
		}
		m.next = queueStrategySize

	case queueStrategySize:
		n, err := readUint16(w)
		if err != nil {
			return err
		}
		if want := 3*W + W + uint32(n)*W; uint32(m.sharesOffset) != want {
			return fmt.Errorf("%w: shares at %d, expected %d", ErrUnexpectedOffset, m.sharesOffset, want)
		}
		m.items = n
		if n == 0 {
			m.next = queueSharesSize
		} else {
			m.next = queueStrategy
		}

	case queueStrategy:
		a, err := readAddress(w)
		if err != nil {
			return err
		}
		if err := m.res.Strategies.Append(registry.StrategyIndex(a)); err != nil {
			return err
		}
		m.items--
		if m.items == 0 {
			m.next = queueSharesSize
		}

	case queueSharesSize:
		n, err := readUint16(w)
		if err != nil {
			return err
		}
		m.items = n
		if n == 0 {
			m.endElement()
		} else {
			m.next = queueShare
		}

	case queueShare:
		m.items--
		if m.items == 0 {
			m.endElement()
		}

	default:
		return unsupportedField(m.next)
	}
	return nil
}

func (m *queueWithdrawalMachine) endElement() {
	m.remaining--
	if m.remaining == 0 {
		m.next = queueDone
	} else {
		m.next = queueStrategyOffset
	}
}

func (m *queueWithdrawalMachine) done() bool    { return m.next == queueDone }
func (m *queueWithdrawalMachine) field() string { return m.next.String() }

func (m *queueWithdrawalMachine) result() Result {
	res := m.res
	res.Withdrawer, res.HasWithdrawer = m.who.addr, m.who.set
	return res
}
