// Package display turns decoded parameters into the title/value screens the
// signer reviews.
package display

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/rony4d/go-restaking-clearsign/decoder"
	"github.com/rony4d/go-restaking-clearsign/registry"
)

// TokenDecimals is used for every amount. All supported tokens have 18 decimals.
const TokenDecimals = 18

var (
	ErrScreenOutOfRange  = errors.New("screen index out of range")
	ErrUnsupportedResult = errors.New("unsupported result")
)

// Screen is one page of the review.
type Screen struct {
	Title string
	Value string
}

// Count returns the number of screens needed for r.
func Count(r decoder.Result) int {
	switch r := r.(type) {
	case decoder.Deposit:
		return 2
	case decoder.Undelegate, decoder.Delegate:
		return 1
	case decoder.QueueWithdrawal:
		return 1 + r.Strategies.Len()
	case decoder.CompleteWithdrawals:
		return 1 + r.Strategies.Len()
	}
	return 0
}

// Render builds screen i of r.
func Render(r decoder.Result, i int) (Screen, error) {
	if i < 0 || i >= Count(r) {
		if Count(r) == 0 {
			return Screen{}, fmt.Errorf("%w: %T", ErrUnsupportedResult, r)
		}
		return Screen{}, fmt.Errorf("%w: %d of %d", ErrScreenOutOfRange, i, Count(r))
	}

	switch r := r.(type) {
	case decoder.Deposit:
		if i == 0 {
			return Screen{"Strategy", registry.Ticker(r.Strategy)}, nil
		}
		return Screen{"Amount", FormatAmount(&r.Amount, registry.Ticker(r.Token))}, nil

	case decoder.Undelegate:
		return Screen{"Staker", r.Staker.Hex()}, nil

	case decoder.Delegate:
		return Screen{"Operator", r.Operator.Hex()}, nil

	case decoder.QueueWithdrawal:
		if i == 0 {
			return Screen{"Withdrawer", r.Withdrawer.Hex()}, nil
		}
		return Screen{"Strategy", registry.Ticker(r.Strategies.At(i - 1))}, nil

	case decoder.CompleteWithdrawals:
		if i == 0 {
			return Screen{"Withdrawer", r.Withdrawer.Hex()}, nil
		}
		return Screen{"Strategy", registry.Ticker(r.Strategies.At(i - 1).Strategy)}, nil
	}
	return Screen{}, fmt.Errorf("%w: %T", ErrUnsupportedResult, r)
}

// FormatAmount renders a raw token amount as "<ticker> <amount>" with
// TokenDecimals decimals and no trailing zeros.
func FormatAmount(amount *uint256.Int, ticker string) string {
	return ticker + " " + decimal.NewFromBigInt(amount.ToBig(), -TokenDecimals).String()
}
