package decoder

import (
	"github.com/rony4d/go-restaking-clearsign/calldata"
	"github.com/rony4d/go-restaking-clearsign/registry"
)

// depositIntoStrategy(address strategy, address token, uint256 amount)

type depositField uint8

const (
	depositStrategy depositField = iota
	depositToken
	depositAmount
	depositDone
)

var depositFieldNames = [...]string{"Strategy", "Token", "Amount", "Done"}

func (f depositField) String() string {
	return fieldName(depositFieldNames[:], uint8(f))
}

type depositMachine struct {
	next depositField
	res  Deposit
}

func (m *depositMachine) advance(w calldata.Word, _ uint32) error {
	switch m.next {
	case depositStrategy:
		a, err := readAddress(w)
		if err != nil {
			return err
		}
		m.res.Strategy = registry.StrategyIndex(a)
		m.next = depositToken
	case depositToken:
		a, err := readAddress(w)
		if err != nil {
			return err
		}
		m.res.Token = registry.TokenIndex(a)
		m.next = depositAmount
	case depositAmount:
		m.res.Amount.SetBytes(w[:])
		m.next = depositDone
	default:
		return unsupportedField(m.next)
	}
	return nil
}

func (m *depositMachine) done() bool     { return m.next == depositDone }
func (m *depositMachine) field() string  { return m.next.String() }
func (m *depositMachine) result() Result { return m.res }
