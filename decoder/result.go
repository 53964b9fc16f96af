package decoder

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/rony4d/go-restaking-clearsign/registry"
)

// Result is what a finished machine hands to the display layer. The concrete
// type always matches Kind.
type Result interface {
	Kind() Kind
}

// Deposit is the result of depositIntoStrategy.
type Deposit struct {
	Strategy registry.Index
	Token    registry.Index
	// Amount is the raw token amount in base units.
	Amount uint256.Int
}

// Undelegate is the result of undelegate.
type Undelegate struct {
	Staker common.Address
}

// Delegate is the result of delegateTo.
type Delegate struct {
	Operator common.Address
	// SignatureWords counts the approver signature words consumed.
	SignatureWords uint16
}

// QueueWithdrawal is the result of queueWithdrawals.
type QueueWithdrawal struct {
	Withdrawer    common.Address
	HasWithdrawer bool
	Strategies    StrategyList
	Withdrawals   uint16
}

// CompleteWithdrawals is the result of completeQueuedWithdrawals.
type CompleteWithdrawals struct {
	Withdrawer    common.Address
	HasWithdrawer bool
	Strategies    PairList
	Withdrawals   uint16
	// TokenGroups is the length of the outer tokens array, Tokens the
	// number of token addresses across all groups.
	TokenGroups     uint16
	Tokens          uint16
	ReceiveAsTokens uint16
}

func (Deposit) Kind() Kind             { return OpDepositIntoStrategy }
func (Undelegate) Kind() Kind          { return OpUndelegate }
func (Delegate) Kind() Kind            { return OpDelegateTo }
func (QueueWithdrawal) Kind() Kind     { return OpQueueWithdrawals }
func (CompleteWithdrawals) Kind() Kind { return OpCompleteQueuedWithdrawals }

// withdrawer is an address that may be set once and must match afterwards.
type withdrawer struct {
	addr common.Address
	set  bool
}

func (w *withdrawer) bind(a common.Address) error {
	if !w.set {
		w.addr, w.set = a, true
		return nil
	}
	if w.addr != a {
		return fmt.Errorf("%w: %s, expected %s", ErrWithdrawerMismatch, a.Hex(), w.addr.Hex())
	}
	return nil
}
