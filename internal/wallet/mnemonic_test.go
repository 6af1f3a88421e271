package wallet

import (
	"strings"
	"testing"
)

// testPhrase is the standard BIP-39 test vector.
const testPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestValidateMnemonic(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
		want   bool
	}{
		{"valid 12 words", testPhrase, true},
		{"empty", "", false},
		{"bad checksum", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon", false},
		{"unknown word", "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon zzzzz", false},
		{"wrong word count", "abandon about", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateMnemonic(tt.phrase); got != tt.want {
				t.Errorf("ValidateMnemonic(%q) = %v, want %v", tt.phrase, got, tt.want)
			}
		})
	}
}

func TestGenerateMnemonic(t *testing.T) {
	tests := []struct {
		name        string
		entropyBits int
		wantWords   int
	}{
		{"12 words", EntropyBits12Words, 12},
		{"24 words", EntropyBits24Words, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mnemonic, err := GenerateMnemonic(tt.entropyBits)
			if err != nil {
				t.Fatalf("GenerateMnemonic() error: %v", err)
			}
			if words := len(strings.Fields(mnemonic)); words != tt.wantWords {
				t.Errorf("word count = %d, want %d", words, tt.wantWords)
			}
			if !ValidateMnemonic(mnemonic) {
				t.Error("generated mnemonic should validate")
			}
		})
	}
}

func TestGenerateMnemonic_InvalidEntropy(t *testing.T) {
	if _, err := GenerateMnemonic(100); err == nil {
		t.Error("expected error for non-standard entropy size")
	}
}
