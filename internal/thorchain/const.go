// Package thorchain implements the THORChain wallet client: key
// derivation at the THORChain path, balance and transaction queries
// against a thornode LCD endpoint, and MsgSend transfer signing.
package thorchain

// ChainID is the THORChain network chain id used in sign docs.
const ChainID = "thorchain"

// Address prefixes per network.
const (
	MainnetPrefix = "thor"
	TestnetPrefix = "tthor"
)

// AssetRune is the native asset denomination.
const AssetRune = "rune"

// MsgSendType is the amino type tag of a THORChain bank transfer.
const MsgSendType = "thorchain/MsgSend"

// DefaultGasValue is the fixed gas limit for transfers. THORChain has
// no fee market; every tier quotes this value.
const DefaultGasValue uint64 = 2000000
