package decoder

import (
	"fmt"

	"github.com/rony4d/go-restaking-clearsign/calldata"
	"github.com/rony4d/go-restaking-clearsign/checksum"
	"github.com/rony4d/go-restaking-clearsign/registry"
)

// completeQueuedWithdrawals(Withdrawal[] withdrawals, address[][] tokens,
//	uint256[] middlewareTimesIndexes, bool[] receiveAsTokens)
//
// Withdrawal is (address staker, address delegatedTo, address withdrawer,
// uint256 nonce, uint32 startBlock, address[] strategies, uint256[] shares).
//
// Layout after the selector:
//
//	4     offset of withdrawals (always four words)
//	36    offset of tokens
//	68    offset of middlewareTimesIndexes
//	100   offset of receiveAsTokens
//	132   withdrawals length n
//	164   n offsets of the Withdrawal structs, relative to 164
//	...   n structs, 7 head words each, then strategies and shares
//	...   tokens length g, g offsets relative to the first one, g address groups
//	...   middlewareTimesIndexes
//	...   receiveAsTokens
//
// Each strategy is paired with the index of its withdrawal so that the
// token groups can be checked against it later.

type completeField uint8

const (
	completeWithdrawalsOffset completeField = iota
	completeTokensOffset
	completeMiddlewareTimesOffset
	completeReceiveAsTokensOffset
	completeWithdrawalsSize
	completeWithdrawalOffset
	completeStaker
	completeDelegatedTo
	completeWithdrawer
	completeNonce
	completeStartBlock
	completeStrategyOffset
	completeSharesOffset
	completeStrategySize
	completeStrategy
	completeSharesSize
	completeShare
	completeTokensSize
	completeTokenOffset
	completeTokensItemSize
	completeTokensItemElement
	completeMiddlewareTimesSize
	completeMiddlewareTimesItem
	completeReceiveAsTokensSize
	completeReceiveAsTokensItem
	completeDone
)

var completeFieldNames = [...]string{
	"WithdrawalsOffset",
	"TokensOffset",
	"MiddlewareTimesOffset",
	"ReceiveAsTokensOffset",
	"WithdrawalsSize",
	"WithdrawalOffset",
	"Staker",
	"DelegatedTo",
	"Withdrawer",
	"Nonce",
	"StartBlock",
	"StrategyOffset",
	"SharesOffset",
	"StrategySize",
	"Strategy",
	"SharesSize",
	"Share",
	"TokensSize",
	"TokenOffset",
	"TokensItemSize",
	"TokensItemElement",
	"MiddlewareTimesSize",
	"MiddlewareTimesItem",
	"ReceiveAsTokensSize",
	"ReceiveAsTokensItem",
	"Done",
}

func (f completeField) String() string {
	return fieldName(completeFieldNames[:], uint8(f))
}

// Withdrawal struct head: staker, delegatedTo, withdrawer, nonce, startBlock,
// strategies offset, shares offset.
const (
	withdrawalHeadWords   = 7
	withdrawalSharesField = 6
)

type completeWithdrawalsMachine struct {
	next completeField

	// recorded array offsets, relative to the first argument
	tokensOffset     uint16
	middlewareOffset uint16
	receiveOffset    uint16

	// remaining counts table words, then withdrawals or token groups still to parse.
	remaining uint16
	// items counts the words left in the current inner array.
	items uint16
	// withdrawal is the index of the Withdrawal being parsed.
	withdrawal uint16
	// groupItem is the index of the next token inside its group.
	groupItem uint16
	// sharesAt is the absolute position the shares array must start at.
	sharesAt uint32

	table checksum.Verifier
	who   withdrawer
	res   CompleteWithdrawals
}

func (m *completeWithdrawalsMachine) advance(w calldata.Word, off uint32) error {
	switch m.next {
	case completeWithdrawalsOffset:
		if err := readOffset(w, 4*W); err != nil {
			return err
		}
		m.next = completeTokensOffset

	case completeTokensOffset, completeMiddlewareTimesOffset, completeReceiveAsTokensOffset:
		rel, err := readUint16(w)
		if err != nil {
			return err
		}
		switch m.next {
		case completeTokensOffset:
			m.tokensOffset = rel
		case completeMiddlewareTimesOffset:
			m.middlewareOffset = rel
		default:
			m.receiveOffset = rel
		}
		m.next++

	case completeWithdrawalsSize:
		n, err := readUint16(w)
		if err != nil {
			return err
		}
		m.res.Withdrawals, m.remaining = n, n
		if n == 0 {
			m.next = completeTokensSize
		} else {
			m.next = completeWithdrawalOffset
		}

	case completeWithdrawalOffset:
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
			m.next = completeStaker
		}

	case completeStaker:
		// struct head
		if err := m.table.Visit(off, m.remaining == 1); err != nil {
			return err
		}
		if _, err := readAddress(w); err != nil {
			return err
		}
		m.next = completeDelegatedTo

	case completeDelegatedTo:
		m.next = completeWithdrawer

	case completeWithdrawer:
		a, err := readAddress(w)
		if err != nil {
			return err
		}
		if err := m.who.bind(a); err != nil {
			return err
		}
		m.next = completeNonce

	case completeNonce:
		m.next = completeStartBlock

	case completeStartBlock:
		m.next = completeStrategyOffset

	case completeStrategyOffset:
		if err := readOffset(w, withdrawalHeadWords*W); err != nil {
			return err
		}
		m.next = completeSharesOffset

	case completeSharesOffset:
		rel, err := readUint16(w)
		if err != nil {
			return err
		}
		m.sharesAt = off - withdrawalSharesField*W + uint32(rel)
		m.next = completeStrategySize

	case completeStrategySize:
		n, err := readUint16(w)
		if err != nil {
			return err
		}
		m.items = n
		if n == 0 {
			m.next = completeSharesSize
		} else {
			m.next = completeStrategy
		}

	case completeStrategy:
		a, err := readAddress(w)
		if err != nil {
			return err
		}
		if m.withdrawal >= MaxPairedWithdrawals {
			return fmt.Errorf("%w: withdrawal index %d", ErrCapacityExceeded, m.withdrawal)
		}
		pair := WithdrawalStrategy{Withdrawal: uint8(m.withdrawal), Strategy: registry.StrategyIndex(a)}
		if err := m.res.Strategies.Append(pair); err != nil {
			return err
		}
		m.items--
		if m.items == 0 {
			m.next = completeSharesSize
		}

	case completeSharesSize:
		if off != m.sharesAt {
			return fmt.Errorf("%w: shares array at %d, expected %d", ErrUnexpectedOffset, off, m.sharesAt)
		}
		n, err := readUint16(w)
		if err != nil {
			return err
		}
		m.items = n
		if n == 0 {
			m.endWithdrawal()
		} else {
			m.next = completeShare
		}

	case completeShare:
		m.items--
		if m.items == 0 {
			m.endWithdrawal()
		}

	case completeTokensSize:
		if err := checkPosition("tokens", m.tokensOffset, off); err != nil {
			return err
		}
		n, err := readUint16(w)
		if err != nil {
			return err
		}
		if err := checkLength("tokens", n, m.res.Withdrawals); err != nil {
			return err
		}
		m.table.Reset()
		m.res.TokenGroups, m.remaining = n, n
		if n == 0 {
			m.next = completeMiddlewareTimesSize
		} else {
			m.next = completeTokenOffset
		}

	case completeTokenOffset:
		rel, err := readUint16(w)
		if err != nil {
			return err
		}
		if err := m.table.Preview(rel, off); err != nil {
			return err
		}
		m.remaining--
		if m.remaining == 0 {
			m.remaining = m.res.TokenGroups
			m.next = completeTokensItemSize
		}

	case completeTokensItemSize:
		// group head
		if err := m.table.Visit(off, m.remaining == 1); err != nil {
			return err
		}
		n, err := readUint16(w)
		if err != nil {
			return err
		}
		m.items = n
		if n == 0 {
			m.endGroup()
		} else {
			m.next = completeTokensItemElement
		}

	case completeTokensItemElement:
		a, err := readAddress(w)
		if err != nil {
			return err
		}
		if err := m.checkToken(registry.TokenIndex(a)); err != nil {
			return err
		}
		m.res.Tokens++
		m.groupItem++
		m.items--
		if m.items == 0 {
			m.endGroup()
		}

	case completeMiddlewareTimesSize:
		if err := checkPosition("middlewareTimesIndexes", m.middlewareOffset, off); err != nil {
			return err
		}
		n, err := readUint16(w)
		if err != nil {
			return err
		}
		if err := checkLength("middlewareTimesIndexes", n, m.res.Withdrawals); err != nil {
			return err
		}
		m.items = n
		if n == 0 {
			m.next = completeReceiveAsTokensSize
		} else {
			m.next = completeMiddlewareTimesItem
		}

	case completeMiddlewareTimesItem:
		m.items--
		if m.items == 0 {
			m.next = completeReceiveAsTokensSize
		}

	case completeReceiveAsTokensSize:
		if err := checkPosition("receiveAsTokens", m.receiveOffset, off); err != nil {
			return err
		}
		n, err := readUint16(w)
		if err != nil {
			return err
		}
		if err := checkLength("receiveAsTokens", n, m.res.Withdrawals); err != nil {
			return err
		}
		m.res.ReceiveAsTokens, m.items = n, n
		if n == 0 {
			m.next = completeDone
		} else {
			m.next = completeReceiveAsTokensItem
		}

	case completeReceiveAsTokensItem:
		m.items--
		if m.items == 0 {
			m.next = completeDone
		}

	default:
		return unsupportedField(m.next)
	}
	return nil
}

// checkToken matches a token against the strategy at the same place in the
// withdrawal of the current group. Unknown strategies accept any token.
func (m *completeWithdrawalsMachine) checkToken(token registry.Index) error {
	group := m.res.TokenGroups - m.remaining
	var (
		pair WithdrawalStrategy
		ok   bool
	)
	if group < MaxPairedWithdrawals {
		pair, ok = m.res.Strategies.Nth(uint8(group), int(m.groupItem))
	}
	if !ok {
		return fmt.Errorf("%w: token %d of withdrawal %d has no strategy", ErrTokenStrategyMismatch, m.groupItem, group)
	}
	if pair.Strategy.Known() && pair.Strategy != token {
		return fmt.Errorf("%w: %s token for %s strategy", ErrTokenStrategyMismatch, registry.Ticker(token), registry.Ticker(pair.Strategy))
	}
	return nil
}

func (m *completeWithdrawalsMachine) endWithdrawal() {
	m.withdrawal++
	m.remaining--
	if m.remaining == 0 {
		m.next = completeTokensSize
	} else {
		m.next = completeStaker
	}
}

func (m *completeWithdrawalsMachine) endGroup() {
	m.groupItem = 0
	m.remaining--
	if m.remaining == 0 {
		m.next = completeMiddlewareTimesSize
	} else {
		m.next = completeTokensItemSize
	}
}

func (m *completeWithdrawalsMachine) done() bool    { return m.next == completeDone }
func (m *completeWithdrawalsMachine) field() string { return m.next.String() }

func (m *completeWithdrawalsMachine) result() Result {
	res := m.res
	res.Withdrawer, res.HasWithdrawer = m.who.addr, m.who.set
	return res
}
