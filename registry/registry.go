// Package registry holds the static table of restaking assets the decoder can
// name: every known strategy contract paired with the token it accepts.
//
// Lookups return a compact Index into Assets. Anything not in the table maps
// to Unknown, which still fits in four bits so that indices can be packed
// alongside withdrawal numbers.
package registry

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Index points into Assets.
type Index uint8

const (
	// Unknown is returned for addresses that are not in the table.
	Unknown Index = 15
	// UnknownTicker is displayed for unknown strategies and tokens.
	UnknownTicker = "UNKNOWN"

	hexAddressLength = 2 + 2*common.AddressLength
)

// Asset is a known strategy and its underlying token.
type Asset struct {
	Ticker   string
	Strategy string
	Token    string
}

// Assets is the resolver table. Order defines the Index values.
var Assets = [...]Asset{
	{"cbETH", "0x54945180dB7943c0ed0FEE7EdaB2Bd24620256bc", "0xBe9895146f7AF43049ca1c1AE358B0541Ea49704"},
	{"stETH", "0x93c4b944D05dfe6df7645A86cd2206016c51564D", "0xae7ab96520DE3A18E5e111B5EaAb095312D7fE84"},
	{"rETH", "0x1BeE69b7dFFfA4E2d53C2a2Df135C388AD25dCD2", "0xae78736Cd615f374D3085123A210448E74Fc6393"},
	{"ETHx", "0x9d7eD45EE2E8FC5482fa2428f15C971e6369011d", "0xA35b1B31Ce002FBF2058D22F30f95D405200A15b"},
	{"ankrETH", "0x13760F50a9d7377e4F20CB8CF9e4c26586c658ff", "0xE95A203B1a91a908F9B9CE46459d101078c2c3cb"},
	{"OETH", "0xa4C637e0F704745D182e4D38cAb7E7485321d059", "0x856c4Efb76C1D1AE02e20CEB03A2A6a08b0b8dC3"},
	{"osETH", "0x57ba429517c3473B6d34CA9aCd56c0e735b94c02", "0xf1C9acDc66974dFB6dEcB12aA385b9cD01190E38"},
	{"swETH", "0x0Fe4F44beE93503346A3Ac9EE5A26b130a5796d6", "0xf951E335afb289353dc249e82926178EaC7DEd78"},
	{"wBETH", "0x7CA911E83dabf90C90dD3De5411a10F1A6112184", "0xa2E3356610840701BDf5611a53974510Ae27E2e1"},
	{"sfrxETH", "0x8CA7A5d6f3acd3A7A8bC468a8CD0FB14B6BD28b6", "0xac3E018457B222d93114458476f3E3416Abbe38F"},
	{"mETH", "0x298aFB19A105D59E74658C4C334Ff360BadE6dd2", "0xd5F7838F5C461fefF7FE49ea5ebaF7728bB0ADfa"},
}

// the table must leave room for the Unknown marker
var _ [Unknown - Index(len(Assets))]struct{}

// Known reports whether i names an entry of Assets.
func (i Index) Known() bool {
	return int(i) < len(Assets)
}

// Ticker returns the display name of i, or UnknownTicker.
func Ticker(i Index) string {
	if !i.Known() {
		return UnknownTicker
	}
	return Assets[i].Ticker
}

// StrategyIndex resolves a strategy contract address.
func StrategyIndex(addr common.Address) Index {
	return StrategyIndexHex(addr.Hex())
}

// StrategyIndexHex resolves a 0x-prefixed strategy address in any letter case.
func StrategyIndexHex(s string) Index {
	return lookup(s, func(a *Asset) string { return a.Strategy })
}

// TokenIndex resolves a token contract address.
func TokenIndex(addr common.Address) Index {
	return TokenIndexHex(addr.Hex())
}

// TokenIndexHex resolves a 0x-prefixed token address in any letter case.
func TokenIndexHex(s string) Index {
	return lookup(s, func(a *Asset) string { return a.Token })
}

func lookup(s string, field func(*Asset) string) Index {
	// prefixes and partial addresses never match
	if len(s) != hexAddressLength {
		return Unknown
	}
	for i := range Assets {
		if strings.EqualFold(field(&Assets[i]), s) {
			return Index(i)
		}
	}
	return Unknown
}
