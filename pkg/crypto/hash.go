// Package crypto provides the cryptographic primitives shared by the
// chain clients: secp256k1 keys, deterministic ECDSA signatures and the
// hash functions used for address derivation.
package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
)

// Sha256 computes a SHA-256 hash of the input data.
func Sha256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// Hash160 computes RIPEMD160(SHA256(data)), the 20-byte public key
// hash used by bech32 account addresses.
func Hash160(data []byte) []byte {
	first := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(first[:])
	return h.Sum(nil)
}
