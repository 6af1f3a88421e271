// Package client defines the capability interface every chain client
// implements. Callers that only need the shared operations can hold an
// XChainClient; chain-specific extras stay on the concrete types.
package client

import (
	"context"

	"github.com/xchainlabs/xchain-go/pkg/crypto"
	"github.com/xchainlabs/xchain-go/pkg/types"
)

// XChainClient is the common wallet surface of a chain client.
//
// Implementations cache the derived key and address per instance and
// serialize cache mutation with an internal lock, so a single client
// is safe for concurrent use; calls still interleave arbitrarily with
// respect to each other.
type XChainClient interface {
	// SetPhrase validates and stores the mnemonic, clears any cached
	// key/address, and returns the derived address.
	SetPhrase(phrase string) (string, error)

	// SetNetwork switches between mainnet and testnet, resetting the
	// node URL and cached address but keeping the phrase.
	SetNetwork(network types.Network) error

	// Network returns the current network.
	Network() types.Network

	// SetClientURL overrides the node endpoint.
	SetClientURL(url string)

	// Address lazily derives and caches the wallet address.
	Address() (string, error)

	// PrivateKey lazily derives and caches the signing key.
	PrivateKey() (*crypto.PrivateKey, error)

	// Balance lists holdings of the given address, or of the wallet
	// address when address is empty. A non-empty asset filters the
	// result to that denomination.
	Balance(ctx context.Context, address, asset string) ([]types.Balance, error)

	// TransactionData looks up a committed transaction by hash.
	TransactionData(ctx context.Context, txID string) (*types.TxRecord, error)

	// Transfer builds, signs and broadcasts a transfer, returning the
	// transaction hash. Single attempt, no retry.
	Transfer(ctx context.Context, params types.TxParams) (string, error)

	// Fees returns the three fee tiers.
	Fees(ctx context.Context) (types.Fees, error)

	// ExplorerAddressURL returns the explorer page for an address.
	ExplorerAddressURL(address string) string

	// ExplorerTxURL returns the explorer page for a transaction.
	ExplorerTxURL(txID string) string

	// Purge forgets the phrase and all cached key material.
	Purge()
}
