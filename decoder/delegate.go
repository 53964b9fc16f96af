package decoder

import (
	"github.com/rony4d/go-restaking-clearsign/calldata"
)

// undelegate(address staker)

type undelegateField uint8

const (
	undelegateStaker undelegateField = iota
	undelegateDone
)

var undelegateFieldNames = [...]string{"Staker", "Done"}

func (f undelegateField) String() string {
	return fieldName(undelegateFieldNames[:], uint8(f))
}

type undelegateMachine struct {
	next undelegateField
	res  Undelegate
}

func (m *undelegateMachine) advance(w calldata.Word, _ uint32) error {
	if m.next != undelegateStaker {
		return unsupportedField(m.next)
	}
	a, err := readAddress(w)
	if err != nil {
		return err
	}
	m.res.Staker = a
	m.next = undelegateDone
	return nil
}

func (m *undelegateMachine) done() bool     { return m.next == undelegateDone }
func (m *undelegateMachine) field() string  { return m.next.String() }
func (m *undelegateMachine) result() Result { return m.res }

// delegateTo(address operator, (bytes signature, uint256 expiry) approverSignatureAndExpiry, bytes32 approverSalt)
//
// The signature tuple is dynamic, so the head holds its offset. Inside the
// tuple the signature bytes are again referenced by offset and follow the
// expiry.

type delegateField uint8

const (
	delegateOperator delegateField = iota
	delegateSignatureOffset
	delegateApproverSalt
	delegateSignatureSigOffset
	delegateSignatureExpiry
	delegateSignatureLength
	delegateSignaturePacket
	delegateDone
)

var delegateFieldNames = [...]string{
	"Operator",
	"SignatureOffset",
	"ApproverSalt",
	"SignatureSigOffset",
	"SignatureExpiry",
	"SignatureLength",
	"SignaturePacket",
	"Done",
}

func (f delegateField) String() string {
	return fieldName(delegateFieldNames[:], uint8(f))
}

type delegateMachine struct {
	next delegateField
	// packets left in the signature bytes
	packets uint16
	res     Delegate
}

func (m *delegateMachine) advance(w calldata.Word, _ uint32) error {
	switch m.next {
	case delegateOperator:
		a, err := readAddress(w)
		if err != nil {
			return err
		}
		m.res.Operator = a
		m.next = delegateSignatureOffset
	case delegateSignatureOffset:
		// operator, tuple offset, salt
		if err := readOffset(w, 3*W); err != nil {
			return err
		}
		m.next = delegateApproverSalt
	case delegateApproverSalt:
		m.next = delegateSignatureSigOffset
	case delegateSignatureSigOffset:
		// bytes offset, expiry
		if err := readOffset(w, 2*W); err != nil {
			return err
		}
		m.next = delegateSignatureExpiry
	case delegateSignatureExpiry:
		m.next = delegateSignatureLength
	case delegateSignatureLength:
		n, err := readUint16(w)
		if err != nil {
			return err
		}
		m.packets = uint16((uint32(n) + W - 1) / W)
		if m.packets == 0 {
			m.next = delegateDone
		} else {
			m.next = delegateSignaturePacket
		}
	case delegateSignaturePacket:
		m.packets--
		m.res.SignatureWords++
		if m.packets == 0 {
			m.next = delegateDone
		}
	default:
		return unsupportedField(m.next)
	}
	return nil
}

func (m *delegateMachine) done() bool     { return m.next == delegateDone }
func (m *delegateMachine) field() string  { return m.next.String() }
func (m *delegateMachine) result() Result { return m.res }
