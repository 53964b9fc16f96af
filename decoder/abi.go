package decoder

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// contractABI covers the supported methods of the strategy manager and the
// delegation manager.
const contractABI = `[
{"type":"function","name":"depositIntoStrategy","stateMutability":"nonpayable","inputs":[
	{"name":"strategy","type":"address"},
	{"name":"token","type":"address"},
	{"name":"amount","type":"uint256"}],
 "outputs":[{"name":"shares","type":"uint256"}]},
{"type":"function","name":"delegateTo","stateMutability":"nonpayable","inputs":[
	{"name":"operator","type":"address"},
	{"name":"approverSignatureAndExpiry","type":"tuple","components":[
		{"name":"signature","type":"bytes"},
		{"name":"expiry","type":"uint256"}]},
	{"name":"approverSalt","type":"bytes32"}],
 "outputs":[]},
{"type":"function","name":"undelegate","stateMutability":"nonpayable","inputs":[
	{"name":"staker","type":"address"}],
 "outputs":[{"name":"withdrawalRoots","type":"bytes32[]"}]},
{"type":"function","name":"queueWithdrawals","stateMutability":"nonpayable","inputs":[
	{"name":"queuedWithdrawalParams","type":"tuple[]","components":[
		{"name":"strategies","type":"address[]"},
		{"name":"shares","type":"uint256[]"},
		{"name":"withdrawer","type":"address"}]}],
 "outputs":[{"name":"","type":"bytes32[]"}]},
{"type":"function","name":"completeQueuedWithdrawals","stateMutability":"nonpayable","inputs":[
	{"name":"withdrawals","type":"tuple[]","components":[
		{"name":"staker","type":"address"},
		{"name":"delegatedTo","type":"address"},
		{"name":"withdrawer","type":"address"},
		{"name":"nonce","type":"uint256"},
		{"name":"startBlock","type":"uint32"},
		{"name":"strategies","type":"address[]"},
		{"name":"shares","type":"uint256[]"}]},
	{"name":"tokens","type":"address[][]"},
	{"name":"middlewareTimesIndexes","type":"uint256[]"},
	{"name":"receiveAsTokens","type":"bool[]"}],
 "outputs":[]}
]`

var (
	parsedABI     abi.ABI
	parsedABIErr  error
	parsedABIOnce sync.Once
)

// ABI returns the parsed JSON ABI of the supported methods.
// Method names match Operation.Name.
func ABI() (abi.ABI, error) {
	parsedABIOnce.Do(func() {
		parsedABI, parsedABIErr = abi.JSON(strings.NewReader(contractABI))
	})
	return parsedABI, parsedABIErr
}
