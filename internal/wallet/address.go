package wallet

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/xchainlabs/xchain-go/pkg/crypto"
	"github.com/xchainlabs/xchain-go/pkg/types"
)

// PubKeySize is the length of a compressed secp256k1 public key.
const PubKeySize = 33

// AccAddress encodes a compressed public key into a bech32 account
// address with the given human-readable prefix (thor/tthor, bnb/tbnb).
// Address data is RIPEMD160(SHA256(pubkey)).
func AccAddress(pubKey []byte, hrp string) (string, error) {
	if len(pubKey) != PubKeySize {
		return "", fmt.Errorf("%w: public key must be %d bytes, got %d",
			types.ErrAddressResolution, PubKeySize, len(pubKey))
	}
	conv, err := bech32.ConvertBits(crypto.Hash160(pubKey), 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrAddressResolution, err)
	}
	addr, err := bech32.Encode(hrp, conv)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrAddressResolution, err)
	}
	return addr, nil
}

// DecodeAccAddress decodes a bech32 account address, returning its
// prefix and the 20-byte public key hash.
func DecodeAccAddress(addr string) (string, []byte, error) {
	hrp, conv, err := bech32.Decode(addr)
	if err != nil {
		return "", nil, fmt.Errorf("decode address: %w", err)
	}
	data, err := bech32.ConvertBits(conv, 5, 8, false)
	if err != nil {
		return "", nil, fmt.Errorf("decode address: %w", err)
	}
	if len(data) != 20 {
		return "", nil, fmt.Errorf("decode address: hash is %d bytes, want 20", len(data))
	}
	return hrp, data, nil
}
