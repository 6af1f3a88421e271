package cosmos

import (
	"bytes"
	"testing"

	"github.com/xchainlabs/xchain-go/pkg/crypto"
)

func testSigner(t *testing.T) *crypto.PrivateKey {
	t.Helper()
	key, err := crypto.PrivateKeyFromBytes(bytes.Repeat([]byte{0x17}, crypto.PrivateKeySize))
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes() error: %v", err)
	}
	return key
}

func TestSign_Deterministic(t *testing.T) {
	key := testSigner(t)
	doc := NewSignDoc([]Msg{testMsgSend()}, NewStdFee(2000000), "memo", 12, 4, "thorchain")
	signBytes, err := doc.SignBytes()
	if err != nil {
		t.Fatalf("SignBytes() error: %v", err)
	}

	s1, err := Sign(key, signBytes)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}
	s2, err := Sign(key, signBytes)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}

	if s1.Signature != s2.Signature {
		t.Error("signing identical bytes should yield identical signatures")
	}
	if s1.PubKey.Type != PubKeySecp256k1AminoType {
		t.Errorf("pubkey type = %q, want %q", s1.PubKey.Type, PubKeySecp256k1AminoType)
	}
}

func TestSign_NilKey(t *testing.T) {
	if _, err := Sign(nil, []byte("payload")); err == nil {
		t.Error("expected error for nil key")
	}
}

func TestVerifyStdTx(t *testing.T) {
	key := testSigner(t)
	msgs := []Msg{testMsgSend()}
	fee := NewStdFee(2000000)
	doc := NewSignDoc(msgs, fee, "memo", 12, 4, "thorchain")
	signBytes, err := doc.SignBytes()
	if err != nil {
		t.Fatalf("SignBytes() error: %v", err)
	}

	sig, err := Sign(key, signBytes)
	if err != nil {
		t.Fatalf("Sign() error: %v", err)
	}
	tx, err := BuildStdTx(msgs, fee, []StdSignature{sig}, "memo")
	if err != nil {
		t.Fatalf("BuildStdTx() error: %v", err)
	}

	if err := VerifyStdTx(tx, signBytes); err != nil {
		t.Errorf("VerifyStdTx() error: %v", err)
	}

	// The same tx must not verify against different sign bytes — e.g.
	// a sequence bumped after signing.
	staleDoc := NewSignDoc(msgs, fee, "memo", 12, 5, "thorchain")
	staleBytes, err := staleDoc.SignBytes()
	if err != nil {
		t.Fatalf("SignBytes() error: %v", err)
	}
	if err := VerifyStdTx(tx, staleBytes); err == nil {
		t.Error("signature should not verify against altered sign bytes")
	}
}
