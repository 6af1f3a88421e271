package binance

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/xchainlabs/xchain-go/pkg/types"
)

func testAddr(fill byte) []byte {
	addr := make([]byte, 20)
	for i := range addr {
		addr[i] = fill
	}
	return addr
}

func TestEncodeCoin(t *testing.T) {
	got := encodeCoin(Coin{Denom: "BNB", Amount: 1})
	want := []byte{0x0A, 0x03, 'B', 'N', 'B', 0x10, 0x01}
	if !bytes.Equal(got, want) {
		t.Errorf("encodeCoin() = %x, want %x", got, want)
	}
}

func TestEncodeCoin_ZeroAmountOmitted(t *testing.T) {
	got := encodeCoin(Coin{Denom: "BNB"})
	want := []byte{0x0A, 0x03, 'B', 'N', 'B'}
	if !bytes.Equal(got, want) {
		t.Errorf("encodeCoin() = %x, want %x", got, want)
	}
}

func TestEncodePubKey(t *testing.T) {
	pub := make([]byte, 33)
	pub[0] = 0x02
	got, err := encodePubKey(pub)
	if err != nil {
		t.Fatalf("encodePubKey() error: %v", err)
	}
	if len(got) != 4+1+33 {
		t.Fatalf("encoded length = %d, want 38", len(got))
	}
	if !bytes.Equal(got[:4], pubKeyPrefix) {
		t.Errorf("prefix = %x, want %x", got[:4], pubKeyPrefix)
	}
	if got[4] != 0x21 {
		t.Errorf("length byte = %#x, want 0x21", got[4])
	}
	if !bytes.Equal(got[5:], pub) {
		t.Error("key bytes do not round-trip")
	}
}

func TestEncodePubKey_WrongSize(t *testing.T) {
	if _, err := encodePubKey(make([]byte, 32)); err == nil {
		t.Error("expected error for 32-byte key")
	}
}

func TestEncodeMsgSend_Prefix(t *testing.T) {
	msg := MsgSend{
		Inputs:  []AddressedCoins{{Address: testAddr(1), Coins: []Coin{{Denom: "BNB", Amount: 5}}}},
		Outputs: []AddressedCoins{{Address: testAddr(2), Coins: []Coin{{Denom: "BNB", Amount: 5}}}},
	}
	got, err := encodeMsgSend(msg)
	if err != nil {
		t.Fatalf("encodeMsgSend() error: %v", err)
	}
	if !bytes.HasPrefix(got, msgSendPrefix) {
		t.Errorf("encoding %x should start with prefix %x", got[:4], msgSendPrefix)
	}
}

func TestEncodeAddressedCoins_WrongAddressSize(t *testing.T) {
	_, err := encodeAddressedCoins(AddressedCoins{Address: []byte{1, 2, 3}})
	if err == nil {
		t.Error("expected error for short address")
	}
}

func testStdTx() StdTx {
	coins := []Coin{{Denom: "BNB", Amount: 100000000}}
	pub := make([]byte, 33)
	pub[0] = 0x03
	return StdTx{
		Msg: MsgSend{
			Inputs:  []AddressedCoins{{Address: testAddr(0xAA), Coins: coins}},
			Outputs: []AddressedCoins{{Address: testAddr(0xBB), Coins: coins}},
		},
		Signatures: []StdSignature{{
			PubKey:        pub,
			Signature:     make([]byte, 64),
			AccountNumber: 34,
			Sequence:      31,
		}},
		Memo: "memo",
	}
}

func TestMarshalStdTx(t *testing.T) {
	got, err := MarshalStdTx(testStdTx())
	if err != nil {
		t.Fatalf("MarshalStdTx() error: %v", err)
	}

	// Leading uvarint is the length of everything after it.
	length, n := binary.Uvarint(got)
	if n <= 0 {
		t.Fatal("missing length prefix")
	}
	if int(length) != len(got)-n {
		t.Errorf("length prefix %d, body is %d bytes", length, len(got)-n)
	}
	if !bytes.HasPrefix(got[n:], stdTxPrefix) {
		t.Errorf("body should start with prefix %x", stdTxPrefix)
	}
	if !bytes.Contains(got, msgSendPrefix) {
		t.Error("encoding should embed the MsgSend prefix")
	}
	if !bytes.Contains(got, pubKeyPrefix) {
		t.Error("encoding should embed the pubkey prefix")
	}
	if !bytes.Contains(got, []byte("memo")) {
		t.Error("encoding should embed the memo")
	}
}

func TestMarshalStdTx_Deterministic(t *testing.T) {
	a, err := MarshalStdTx(testStdTx())
	if err != nil {
		t.Fatalf("MarshalStdTx() error: %v", err)
	}
	b, err := MarshalStdTx(testStdTx())
	if err != nil {
		t.Fatalf("MarshalStdTx() error: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical transactions should encode identically")
	}
}

func TestMarshalStdTx_Incomplete(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*StdTx)
	}{
		{"no inputs", func(tx *StdTx) { tx.Msg.Inputs = nil }},
		{"no outputs", func(tx *StdTx) { tx.Msg.Outputs = nil }},
		{"no signatures", func(tx *StdTx) { tx.Signatures = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := testStdTx()
			tt.mutate(&tx)
			if _, err := MarshalStdTx(tx); !errors.Is(err, types.ErrIncompleteTx) {
				t.Errorf("error = %v, want ErrIncompleteTx", err)
			}
		})
	}
}

func TestMarshalStdTx_BadSignatureSize(t *testing.T) {
	tx := testStdTx()
	tx.Signatures[0].Signature = make([]byte, 63)
	if _, err := MarshalStdTx(tx); err == nil {
		t.Error("expected error for 63-byte signature")
	}
}
