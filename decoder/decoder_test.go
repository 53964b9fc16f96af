package decoder

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-restaking-clearsign/calldata"
	"github.com/rony4d/go-restaking-clearsign/registry"
)

func TestOperations_MatchABI(t *testing.T) {
	parsed, err := ABI()
	require.NoError(t, err)
	require.Len(t, parsed.Methods, len(Operations))

	for i, op := range Operations {
		t.Run(op.Name, func(t *testing.T) {
			require := require.New(t)

			require.Equal(Kind(i), op.Kind, "table must be ordered by kind")
			method, ok := parsed.Methods[op.Name]
			require.True(ok)
			require.Equal(op.Signature, method.Sig)
			require.Equal(method.ID, op.Selector[:])

			found, err := Lookup(op.Selector)
			require.NoError(err)
			require.Equal(op.Kind, found.Kind)
			require.Equal(op.Name, op.Kind.String())
		})
	}
}

func TestLookup_Unsupported(t *testing.T) {
	_, err := Lookup(calldata.SelectorFromUint32(0xa9059cbb))
	require.ErrorIs(t, err, ErrUnsupportedOperation)

	_, err = NewContext(calldata.SelectorFromUint32(0), nil)
	require.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestDeposit(t *testing.T) {
	require := require.New(t)

	amount, _ := new(big.Int).SetString("1500000000000000000", 10)
	data := pack(t, "depositIntoStrategy", strategyOf("stETH"), tokenOf("stETH"), amount)

	res, err := Decode(data, nil)
	require.NoError(err)

	dep, ok := res.(Deposit)
	require.True(ok)
	require.Equal(OpDepositIntoStrategy, dep.Kind())
	require.Equal(index("stETH"), dep.Strategy)
	require.Equal(index("stETH"), dep.Token)
	require.Zero(amount.Cmp(dep.Amount.ToBig()))
}

func TestDeposit_UnknownAddresses(t *testing.T) {
	data := pack(t, "depositIntoStrategy", randomAddr, stranger, big.NewInt(1))

	res, err := Decode(data, nil)
	require.NoError(t, err)
	require.Equal(t, registry.Unknown, res.(Deposit).Strategy)
	require.Equal(t, registry.Unknown, res.(Deposit).Token)
}

func TestUndelegate(t *testing.T) {
	res, err := Decode(pack(t, "undelegate", staker), nil)
	require.NoError(t, err)
	require.Equal(t, Undelegate{Staker: staker}, res)
}

func TestDelegate(t *testing.T) {
	for name, tc := range map[string]struct {
		sig   []byte
		words uint16
	}{
		"no approver":   {nil, 0},
		"ecdsa":         {bytes.Repeat([]byte{0xab}, 65), 3},
		"aligned":       {bytes.Repeat([]byte{0xcd}, 64), 2},
		"single packet": {[]byte{1}, 1},
	} {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			var salt [32]byte
			salt[0] = 0x42
			data := pack(t, "delegateTo", operator, signatureWithExpiry{Signature: tc.sig, Expiry: big.NewInt(1700000000)}, salt)

			c, err := feed(t, data)
			require.NoError(err)
			require.True(c.Done())

			res, err := c.Result()
			require.NoError(err)
			require.Equal(Delegate{Operator: operator, SignatureWords: tc.words}, res)
		})
	}
}

func TestDelegate_BadTupleOffset(t *testing.T) {
	data := pack(t, "delegateTo", operator, signatureWithExpiry{Signature: []byte{1}, Expiry: big.NewInt(1)}, [32]byte{})
	setUint(data, 1, 4*calldata.WordLength)

	_, err := feed(t, data)
	require.ErrorIs(t, err, ErrUnexpectedOffset)

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, "SignatureOffset", fe.Field)
	require.Equal(t, uint32(36), fe.Offset)
	require.Equal(t, OpDelegateTo, fe.Op)
}

func TestContext_Positions(t *testing.T) {
	require := require.New(t)

	c, err := NewContext(Operations[OpUndelegate].Selector, nil)
	require.NoError(err)
	w := calldata.BytesToWord(staker.Bytes())

	// the first word must sit right after the selector
	err = c.Advance(w, 36)
	require.ErrorIs(err, ErrUnexpectedOffset)
	require.False(c.Done())

	// failures are terminal
	err = c.Advance(w, 4)
	require.ErrorIs(err, ErrContextFailed)
	_, err = c.Result()
	require.ErrorIs(err, ErrContextFailed)

	c.Reset()
	require.NoError(c.Advance(w, 4))
	require.True(c.Done())

	// words past the end are ignored
	require.NoError(c.Advance(calldata.Word{0xff}, 36))
	res, err := c.Result()
	require.NoError(err)
	require.Equal(Undelegate{Staker: staker}, res)
}

func TestContext_Incomplete(t *testing.T) {
	require := require.New(t)

	data := pack(t, "depositIntoStrategy", strategyOf("rETH"), tokenOf("rETH"), big.NewInt(5))
	c, err := feed(t, data[:len(data)-calldata.WordLength])
	require.NoError(err)
	require.False(c.Done())
	require.Equal("Amount", c.Field())

	_, err = c.Result()
	require.ErrorIs(err, ErrIncompleteStream)
}

func TestContext_MalformedField(t *testing.T) {
	data := pack(t, "undelegate", staker)
	wordAt(data, 0)[0] = 1

	_, err := Decode(data, nil)
	require.ErrorIs(t, err, ErrMalformedField)
}

func TestContext_LogsRejections(t *testing.T) {
	require := require.New(t)

	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	data := pack(t, "queueWithdrawals", []queuedWithdrawalParams{
		{Strategies: []common.Address{strategyOf("stETH")}, Shares: shares(1), Withdrawer: withdrawTo},
		{Strategies: []common.Address{strategyOf("rETH"), strategyOf("mETH")}, Shares: shares(2), Withdrawer: withdrawTo},
	})
	swapWords(data, 2, 3)

	_, err := Decode(data, log)
	require.ErrorIs(err, ErrChecksumMismatch)

	entry := hook.LastEntry()
	require.NotNil(entry)
	require.Equal(logrus.WarnLevel, entry.Level)
	require.Equal("queueWithdrawals", entry.Data["op"])
	require.Equal("StrategyOffset", entry.Data["field"])
}

func TestFieldError(t *testing.T) {
	err := &FieldError{Op: OpQueueWithdrawals, Field: "Withdrawer", Offset: 196, Err: ErrWithdrawerMismatch}
	assert.Equal(t, "queueWithdrawals: field Withdrawer at offset 196: withdrawer mismatch", err.Error())
	assert.True(t, errors.Is(err, ErrWithdrawerMismatch))
}
