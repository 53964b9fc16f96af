package decoder

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-restaking-clearsign/calldata"
	"github.com/rony4d/go-restaking-clearsign/registry"
)

func twoQueued() []queuedWithdrawalParams {
	return []queuedWithdrawalParams{
		{Strategies: []common.Address{strategyOf("stETH")}, Shares: shares(1), Withdrawer: withdrawTo},
		{Strategies: []common.Address{strategyOf("rETH"), randomAddr}, Shares: shares(2), Withdrawer: withdrawTo},
	}
}

func TestQueueWithdrawals(t *testing.T) {
	require := require.New(t)

	res, err := Decode(pack(t, "queueWithdrawals", twoQueued()), nil)
	require.NoError(err)

	qw, ok := res.(QueueWithdrawal)
	require.True(ok)
	require.Equal(withdrawTo, qw.Withdrawer)
	require.True(qw.HasWithdrawer)
	require.Equal(uint16(2), qw.Withdrawals)
	require.Equal(3, qw.Strategies.Len())
	require.Equal(index("stETH"), qw.Strategies.At(0))
	require.Equal(index("rETH"), qw.Strategies.At(1))
	require.Equal(registry.Unknown, qw.Strategies.At(2))
}

func TestQueueWithdrawals_Empty(t *testing.T) {
	t.Run("No withdrawals", func(t *testing.T) {
		require := require.New(t)

		data := pack(t, "queueWithdrawals", []queuedWithdrawalParams{})
		// data offset and length only
		require.Len(data, calldata.SelectorLength+2*calldata.WordLength)

		c, err := feed(t, data)
		require.NoError(err)
		require.True(c.Done())

		res, err := c.Result()
		require.NoError(err)
		require.False(res.(QueueWithdrawal).HasWithdrawer)
		qw := res.(QueueWithdrawal)
		require.Zero(qw.Strategies.Len())
	})

	t.Run("No strategies", func(t *testing.T) {
		require := require.New(t)

		data := pack(t, "queueWithdrawals", []queuedWithdrawalParams{
			{Strategies: []common.Address{}, Shares: []*big.Int{}, Withdrawer: withdrawTo},
		})

		c, err := feed(t, data)
		require.NoError(err)
		require.True(c.Done())

		res, err := c.Result()
		require.NoError(err)
		require.Equal(withdrawTo, res.(QueueWithdrawal).Withdrawer)
		qw := res.(QueueWithdrawal)
		require.Zero(qw.Strategies.Len())
	})
}

func TestQueueWithdrawals_WithdrawerMismatch(t *testing.T) {
	params := twoQueued()
	params[1].Withdrawer = stranger

	_, err := Decode(pack(t, "queueWithdrawals", params), nil)
	require.ErrorIs(t, err, ErrWithdrawerMismatch)
}

func TestQueueWithdrawals_OffsetTable(t *testing.T) {
	for name, tamper := range map[string]func([]byte){
		"Swapped":    func(d []byte) { swapWords(d, 2, 3) },
		"Duplicated": func(d []byte) { copy(wordAt(d, 3), wordAt(d, 2)) },
	} {
		t.Run(name, func(t *testing.T) {
			data := pack(t, "queueWithdrawals", twoQueued())
			tamper(data)

			_, err := Decode(data, nil)
			require.ErrorIs(t, err, ErrChecksumMismatch)
		})
	}
}

func TestQueueWithdrawals_Layout(t *testing.T) {
	for name, tc := range map[string]struct {
		word  int
		value uint64
		want  error
	}{
		// header: data offset, length, 2 element offsets; element 0 starts at word 4
		"data offset":     {0, 64, ErrUnexpectedOffset},
		"strategy offset": {4, 128, ErrUnexpectedOffset},
		"shares offset":   {5, 32 * 6, ErrUnexpectedOffset},
	} {
		t.Run(name, func(t *testing.T) {
			data := pack(t, "queueWithdrawals", twoQueued())
			setUint(data, tc.word, tc.value)

			_, err := Decode(data, nil)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestQueueWithdrawals_Capacity(t *testing.T) {
	strategies := make([]common.Address, MaxStrategies+1)
	for i := range strategies {
		strategies[i] = strategyOf(registry.Assets[i%len(registry.Assets)].Ticker)
	}
	data := pack(t, "queueWithdrawals", []queuedWithdrawalParams{
		{Strategies: strategies, Shares: shares(len(strategies)), Withdrawer: withdrawTo},
	})

	_, err := Decode(data, nil)
	require.ErrorIs(t, err, ErrCapacityExceeded)

	// exactly at the bound is fine
	data = pack(t, "queueWithdrawals", []queuedWithdrawalParams{
		{Strategies: strategies[:MaxStrategies], Shares: shares(MaxStrategies), Withdrawer: withdrawTo},
	})
	res, err := Decode(data, nil)
	require.NoError(t, err)
	qw := res.(QueueWithdrawal)
	require.Equal(t, MaxStrategies, qw.Strategies.Len())
}
