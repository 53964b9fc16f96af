package decoder

import (
	"fmt"

	"github.com/rony4d/go-restaking-clearsign/registry"
)

const (
	// MaxStrategies bounds the strategies a single call may display.
	MaxStrategies = 32
	// MaxPairedWithdrawals bounds the withdrawal index of a strategy pair.
	MaxPairedWithdrawals = 16

	maxPairedStrategy = 16
)

// StrategyList is a fixed capacity list of resolved strategies.
type StrategyList struct {
	items [MaxStrategies]registry.Index
	n     uint8
}

// Append adds i or fails with ErrCapacityExceeded.
func (l *StrategyList) Append(i registry.Index) error {
	if int(l.n) >= len(l.items) {
		return fmt.Errorf("%w: more than %d strategies", ErrCapacityExceeded, MaxStrategies)
	}
	l.items[l.n] = i
	l.n++
	return nil
}

func (l *StrategyList) Len() int {
	return int(l.n)
}

// At returns the i-th strategy. It panics when i is out of range.
func (l *StrategyList) At(i int) registry.Index {
	return l.items[:l.n][i]
}

// WithdrawalStrategy pairs a strategy with the withdrawal it belongs to.
type WithdrawalStrategy struct {
	Withdrawal uint8
	Strategy   registry.Index
}

// PairList is a fixed capacity list of withdrawal/strategy pairs in stream order.
type PairList struct {
	items [MaxStrategies]WithdrawalStrategy
	n     uint8
}

// Append adds p or fails with ErrCapacityExceeded. Both halves of the pair
// must fit in four bits.
func (l *PairList) Append(p WithdrawalStrategy) error {
	switch {
	case int(l.n) >= len(l.items):
		return fmt.Errorf("%w: more than %d strategies", ErrCapacityExceeded, MaxStrategies)
	case p.Withdrawal >= MaxPairedWithdrawals:
		return fmt.Errorf("%w: withdrawal index %d", ErrCapacityExceeded, p.Withdrawal)
	case p.Strategy >= maxPairedStrategy:
		return fmt.Errorf("%w: strategy index %d", ErrCapacityExceeded, p.Strategy)
	}
	l.items[l.n] = p
	l.n++
	return nil
}

func (l *PairList) Len() int {
	return int(l.n)
}

// At returns the i-th pair. It panics when i is out of range.
func (l *PairList) At(i int) WithdrawalStrategy {
	return l.items[:l.n][i]
}

// Nth returns the k-th pair of the given withdrawal.
func (l *PairList) Nth(withdrawal uint8, k int) (WithdrawalStrategy, bool) {
	for _, p := range l.items[:l.n] {
		if p.Withdrawal != withdrawal {
			continue
		}
		if k == 0 {
			return p, true
		}
		k--
	}
	return WithdrawalStrategy{}, false
}
