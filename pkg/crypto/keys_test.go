package crypto

import (
	"bytes"
	"testing"
)

// testKey returns a private key built from a fixed scalar.
func testKey(t *testing.T) *PrivateKey {
	t.Helper()
	scalar := bytes.Repeat([]byte{0x42}, PrivateKeySize)
	key, err := PrivateKeyFromBytes(scalar)
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes() error: %v", err)
	}
	return key
}

func TestPrivateKeyFromBytes_InvalidLength(t *testing.T) {
	tests := []struct {
		name string
		key  []byte
	}{
		{"empty", []byte{}},
		{"too short", make([]byte, 16)},
		{"too long", make([]byte, 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := PrivateKeyFromBytes(tt.key); err == nil {
				t.Error("expected error for invalid key length")
			}
		})
	}
}

func TestSign_Deterministic(t *testing.T) {
	key := testKey(t)
	hash := Sha256([]byte("sign me"))

	sig1, err := key.Sign(hash[:])
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}
	sig2, err := key.Sign(hash[:])
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	if len(sig1) != SignatureSize {
		t.Errorf("signature length = %d, want %d", len(sig1), SignatureSize)
	}
	if !bytes.Equal(sig1, sig2) {
		t.Error("signing the same hash twice should yield identical signatures")
	}
}

func TestSign_InvalidHashLength(t *testing.T) {
	key := testKey(t)
	if _, err := key.Sign([]byte("short")); err == nil {
		t.Error("expected error for non-32-byte hash")
	}
}

func TestSignVerify_RoundTrip(t *testing.T) {
	key := testKey(t)
	hash := Sha256([]byte("round trip payload"))

	sig, err := key.Sign(hash[:])
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	if !VerifySignature(hash[:], sig, key.PublicKey()) {
		t.Error("signature should verify against the signing key")
	}
}

func TestVerifySignature_Tampered(t *testing.T) {
	key := testKey(t)
	hash := Sha256([]byte("payload"))

	sig, err := key.Sign(hash[:])
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	// Flip one bit in the signature.
	bad := append([]byte(nil), sig...)
	bad[10] ^= 0x01
	if VerifySignature(hash[:], bad, key.PublicKey()) {
		t.Error("tampered signature should not verify")
	}

	// Flip one bit in the hash.
	badHash := hash
	badHash[0] ^= 0x01
	if VerifySignature(badHash[:], sig, key.PublicKey()) {
		t.Error("signature over different hash should not verify")
	}

	// Wrong key.
	other, err := GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey() error: %v", err)
	}
	if VerifySignature(hash[:], sig, other.PublicKey()) {
		t.Error("signature should not verify against a different key")
	}
}

func TestVerifySignature_MalformedInputs(t *testing.T) {
	key := testKey(t)
	hash := Sha256([]byte("payload"))
	sig, err := key.Sign(hash[:])
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	if VerifySignature(hash[:12], sig, key.PublicKey()) {
		t.Error("short hash should not verify")
	}
	if VerifySignature(hash[:], sig[:40], key.PublicKey()) {
		t.Error("short signature should not verify")
	}
	if VerifySignature(hash[:], sig, []byte{0x02, 0x03}) {
		t.Error("malformed public key should not verify")
	}
}

func TestPublicKey_Compressed(t *testing.T) {
	key := testKey(t)
	pub := key.PublicKey()
	if len(pub) != 33 {
		t.Fatalf("public key length = %d, want 33", len(pub))
	}
	if pub[0] != 0x02 && pub[0] != 0x03 {
		t.Errorf("compressed public key prefix = %#x, want 0x02 or 0x03", pub[0])
	}
}
