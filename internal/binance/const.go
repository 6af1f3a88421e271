// Package binance implements the Binance Chain (BNB Beacon Chain)
// wallet client: key derivation at the Binance path, account and
// transaction queries against a dex REST endpoint, and transfer signing
// with the chain's binary amino wire format.
package binance

// Chain ids per network.
const (
	ChainIDMainnet = "Binance-Chain-Tigris"
	ChainIDTestnet = "Binance-Chain-Ganges"
)

// Address prefixes per network.
const (
	MainnetPrefix = "bnb"
	TestnetPrefix = "tbnb"
)

// AssetBNB is the native asset symbol.
const AssetBNB = "BNB"

// Decimals is the fixed decimal precision of dex amounts. The REST API
// reports balances as decimal strings; all amounts on the wire are
// integer base units scaled by 10^Decimals.
const Decimals = 8

// DefaultTransferFee is the flat send fee in base units, used when the
// fee endpoint is unreachable.
const DefaultTransferFee uint64 = 37500

// txSource identifies the broadcasting client to the chain. Zero is
// reserved; wallets use their assigned source id.
const txSource int64 = 0
