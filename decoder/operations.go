package decoder

import (
	"fmt"

	"github.com/rony4d/go-restaking-clearsign/calldata"
)

// Kind enumerates the supported contract calls.
type Kind uint8

const (
	OpDepositIntoStrategy Kind = iota
	OpDelegateTo
	OpUndelegate
	OpQueueWithdrawals
	OpCompleteQueuedWithdrawals
)

// Operation describes one supported contract call.
type Operation struct {
	Kind      Kind
	Name      string
	Signature string
	Selector  calldata.Selector
	// Label is shown as the operation name on the lead screen.
	Label string
}

// Operations is the dispatch table. It is ordered by Kind.
var Operations = [...]Operation{
	{
		Kind:      OpDepositIntoStrategy,
		Name:      "depositIntoStrategy",
		Signature: "depositIntoStrategy(address,address,uint256)",
		Selector:  calldata.SelectorFromUint32(0xe7a050aa),
		Label:     "Deposit into Strategy",
	},
	{
		Kind:      OpDelegateTo,
		Name:      "delegateTo",
		Signature: "delegateTo(address,(bytes,uint256),bytes32)",
		Selector:  calldata.SelectorFromUint32(0xeea9064b),
		Label:     "Delegate to",
	},
	{
		Kind:      OpUndelegate,
		Name:      "undelegate",
		Signature: "undelegate(address)",
		Selector:  calldata.SelectorFromUint32(0xda8be864),
		Label:     "Undelegate",
	},
	{
		Kind:      OpQueueWithdrawals,
		Name:      "queueWithdrawals",
		Signature: "queueWithdrawals((address[],uint256[],address)[])",
		Selector:  calldata.SelectorFromUint32(0x0dd8dd02),
		Label:     "Queued Withdrawal",
	},
	{
		Kind:      OpCompleteQueuedWithdrawals,
		Name:      "completeQueuedWithdrawals",
		Signature: "completeQueuedWithdrawals((address,address,address,uint256,uint32,address[],uint256[])[],address[][],uint256[],bool[])",
		Selector:  calldata.SelectorFromUint32(0x33404396),
		Label:     "Complete Queued Withdrawals",
	},
}

// Lookup finds the operation for an exact selector match.
func Lookup(sel calldata.Selector) (*Operation, error) {
	for i := range Operations {
		if Operations[i].Selector == sel {
			return &Operations[i], nil
		}
	}
	return nil, fmt.Errorf("%w: selector %s", ErrUnsupportedOperation, sel)
}

// Operation returns the table entry of k.
func (k Kind) Operation() *Operation {
	if int(k) >= len(Operations) {
		return nil
	}
	return &Operations[k]
}

func (k Kind) String() string {
	if op := k.Operation(); op != nil {
		return op.Name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}
