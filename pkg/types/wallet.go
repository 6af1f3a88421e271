// Package types defines the chain-agnostic wallet types shared by all
// chain clients.
package types

import "time"

// Network identifies mainnet or testnet.
type Network string

const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

// Valid reports whether n is a known network.
func (n Network) Valid() bool {
	return n == Mainnet || n == Testnet
}

// Balance is a single asset holding, in base units (1e8 per whole coin).
type Balance struct {
	Asset  string
	Amount uint64
}

// TxParams describes a transfer to build, sign and broadcast.
type TxParams struct {
	Amount    uint64 // base units
	Recipient string
	Asset     string // denom/symbol; empty means the chain's native asset
	Memo      string
}

// TxRecord is the result of a transaction-by-hash lookup.
type TxRecord struct {
	Hash      string
	Height    int64
	From      string
	To        string
	Asset     string
	Amount    uint64
	Memo      string
	Timestamp time.Time
}

// Fees holds the three fee tiers returned by Fees(). Chains without a
// dynamic fee market return the same value for every tier.
type Fees struct {
	Average uint64
	Fast    uint64
	Fastest uint64
}

// FixedFees returns a Fees with every tier set to v.
func FixedFees(v uint64) Fees {
	return Fees{Average: v, Fast: v, Fastest: v}
}
