// Package wallet implements BIP-39/BIP-44 key derivation for the chain
// clients, plus encrypted phrase storage for the CLI.
package wallet

import (
	"fmt"

	"github.com/tyler-smith/go-bip39"
)

// Entropy sizes for the two supported phrase lengths.
const (
	EntropyBits12Words = 128
	EntropyBits24Words = 256
)

// GenerateMnemonic creates a new BIP-39 mnemonic with the given entropy
// size (EntropyBits12Words or EntropyBits24Words).
func GenerateMnemonic(entropyBits int) (string, error) {
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidateMnemonic checks a phrase against the BIP-39 English wordlist:
// correct word count, known words, valid checksum.
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(mnemonic)
}
