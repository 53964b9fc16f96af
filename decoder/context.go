// Package decoder decodes the call data of the supported restaking operations
// one 32-byte word at a time.
//
// The host never hands over the whole call data. It calls Advance once per
// word, in order, with the absolute offset of the word. Every operation is a
// small state machine whose cursor names the field the next word belongs to.
// Machines keep only what the summary screens need plus the bookkeeping
// required to validate the encoding: counters, a few recorded offsets and a
// checksum over each offset table that is too large to store.
//
// A Context is not safe for concurrent use. Once it reports an error it is
// terminal and must be discarded or Reset.
package decoder

import (
	"errors"
	"fmt"
	"io"
	"unsafe"

	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-restaking-clearsign/calldata"
)

// ContextBudget bounds the state of a single machine, in bytes.
const ContextBudget = 256

var (
	_ [ContextBudget - unsafe.Sizeof(depositMachine{})]struct{}
	_ [ContextBudget - unsafe.Sizeof(undelegateMachine{})]struct{}
	_ [ContextBudget - unsafe.Sizeof(delegateMachine{})]struct{}
	_ [ContextBudget - unsafe.Sizeof(queueWithdrawalMachine{})]struct{}
	_ [ContextBudget - unsafe.Sizeof(completeWithdrawalsMachine{})]struct{}
)

type machine interface {
	advance(w calldata.Word, off uint32) error
	done() bool
	// field names the field the next word is expected to be.
	field() string
	result() Result
}

// Context decodes the parameters of one transaction.
type Context struct {
	op      *Operation
	machine machine
	// expect is the offset of the next word.
	expect uint32
	failed error

	log logrus.FieldLogger
}

// NewContext dispatches sel and returns a context positioned on the first
// argument word. A nil log discards all output.
func NewContext(sel calldata.Selector, log logrus.FieldLogger) (*Context, error) {
	op, err := Lookup(sel)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = discard()
	}
	c := &Context{
		op:  op,
		log: log.WithField("op", op.Name),
	}
	c.Reset()
	return c, nil
}

// Reset returns the context to its initial state for the same operation.
func (c *Context) Reset() {
	c.machine = newMachine(c.op.Kind)
	c.expect = calldata.SelectorLength
	c.failed = nil
}

func newMachine(k Kind) machine {
	switch k {
	case OpDepositIntoStrategy:
		return &depositMachine{}
	case OpDelegateTo:
		return &delegateMachine{}
	case OpUndelegate:
		return &undelegateMachine{}
	case OpQueueWithdrawals:
		return &queueWithdrawalMachine{}
	case OpCompleteQueuedWithdrawals:
		return &completeWithdrawalsMachine{}
	}
	panic(fmt.Sprintf("no machine for %s", k))
}

// Operation returns the dispatched operation.
func (c *Context) Operation() *Operation {
	return c.op
}

// Kind returns the dispatched operation kind.
func (c *Context) Kind() Kind {
	return c.op.Kind
}

// Advance feeds the word found at the absolute offset off. Offsets must
// start at 4 and grow by one word per call. Words past the end of the call
// are ignored.
func (c *Context) Advance(w calldata.Word, off uint32) error {
	if c.failed != nil {
		return fmt.Errorf("%w: %v", ErrContextFailed, c.failed)
	}
	if c.machine.done() {
		return nil
	}

	field := c.machine.field()
	var err error
	if off != c.expect {
		err = fmt.Errorf("%w: word at %d, expected %d", ErrUnexpectedOffset, off, c.expect)
	} else {
		err = c.machine.advance(w, off)
	}
	if err != nil {
		c.failed = &FieldError{Op: c.op.Kind, Field: field, Offset: off, Err: err}
		c.logFailure(field, off, err)
		return c.failed
	}

	c.expect += calldata.WordLength
	if c.machine.done() {
		c.log.WithField("words", (c.expect-calldata.SelectorLength)/calldata.WordLength).Debug("Parameters decoded")
	}
	return nil
}

func (c *Context) logFailure(field string, off uint32, err error) {
	entry := c.log.WithFields(logrus.Fields{
		"field":  field,
		"offset": off,
	})
	// adversarial encodings are worth a warning, plain garbage is not
	switch {
	case errors.Is(err, ErrChecksumMismatch),
		errors.Is(err, ErrWithdrawerMismatch),
		errors.Is(err, ErrTokenStrategyMismatch),
		errors.Is(err, ErrHashPrimitiveFailure):
		entry.WithError(err).Warn("Rejected parameter")
	default:
		entry.WithError(err).Debug("Rejected parameter")
	}
}

// Done reports whether the last expected word has been consumed.
func (c *Context) Done() bool {
	return c.failed == nil && c.machine.done()
}

// Err returns the error that stopped the context, if any.
func (c *Context) Err() error {
	return c.failed
}

// Field names the field the next word is expected to be.
func (c *Context) Field() string {
	return c.machine.field()
}

// Result returns the decoded parameters. It fails until Done.
func (c *Context) Result() (Result, error) {
	if c.failed != nil {
		return nil, fmt.Errorf("%w: %v", ErrContextFailed, c.failed)
	}
	if !c.machine.done() {
		return nil, fmt.Errorf("%w: %s waits for %s", ErrIncompleteStream, c.op.Name, c.machine.field())
	}
	return c.machine.result(), nil
}

// Decode runs a whole call data payload through a fresh context.
func Decode(data []byte, log logrus.FieldLogger) (Result, error) {
	r, err := calldata.NewReader(data)
	if err != nil {
		return nil, err
	}
	c, err := NewContext(r.Selector(), log)
	if err != nil {
		return nil, err
	}
	for w, off, ok := r.Next(); ok; w, off, ok = r.Next() {
		if err := c.Advance(w, off); err != nil {
			return nil, err
		}
	}
	return c.Result()
}

func fieldName(names []string, i uint8) string {
	if int(i) < len(names) {
		return names[i]
	}
	return fmt.Sprintf("field(%d)", i)
}

func discard() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
