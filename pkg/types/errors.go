package types

import "errors"

// Sentinel errors for the wallet client surface. Transport and node
// failures wrap ErrNetwork or ErrBroadcast so callers can test with
// errors.Is while keeping the underlying cause in the chain.
var (
	// ErrInvalidPhrase means the mnemonic failed BIP-39 checksum validation.
	ErrInvalidPhrase = errors.New("invalid phrase")

	// ErrNetworkNotSet means an empty or unknown network was supplied.
	ErrNetworkNotSet = errors.New("network not set")

	// ErrPhraseNotSet means an address or key was requested before SetPhrase.
	ErrPhraseNotSet = errors.New("phrase not set")

	// ErrAddressResolution means the public key could not be encoded
	// into a chain address.
	ErrAddressResolution = errors.New("address resolution failed")

	// ErrTxNotFound means the node has no record of the transaction hash.
	ErrTxNotFound = errors.New("transaction not found")

	// ErrNetwork wraps transport failures on query operations.
	ErrNetwork = errors.New("network request failed")

	// ErrBroadcast wraps node rejections and transport failures during
	// transaction broadcast.
	ErrBroadcast = errors.New("broadcast failed")

	// ErrIncompleteTx means a signed transaction was assembled with a
	// required field missing.
	ErrIncompleteTx = errors.New("incomplete transaction")

	// ErrSigning means the signer was given a malformed key or payload.
	ErrSigning = errors.New("signing failed")
)
