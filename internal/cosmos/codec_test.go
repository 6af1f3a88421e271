package cosmos

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xchainlabs/xchain-go/pkg/types"
)

func testMsgSend() Msg {
	return Msg{
		Type: "thorchain/MsgSend",
		Value: MsgSend{
			Amount:      []Coin{{Amount: "1000000", Denom: "rune"}},
			FromAddress: "tthor1sender",
			ToAddress:   "tthor1recipient",
		},
	}
}

func TestSignDoc_SignBytes_Exact(t *testing.T) {
	doc := NewSignDoc([]Msg{testMsgSend()}, NewStdFee(2000000), "memo", 12, 4, "thorchain")

	got, err := doc.SignBytes()
	if err != nil {
		t.Fatalf("SignBytes() error: %v", err)
	}

	want := `{"account_number":"12","chain_id":"thorchain",` +
		`"fee":{"amount":[],"gas":"2000000"},"memo":"memo",` +
		`"msgs":[{"type":"thorchain/MsgSend","value":` +
		`{"amount":[{"amount":"1000000","denom":"rune"}],` +
		`"from_address":"tthor1sender","to_address":"tthor1recipient"}}],` +
		`"sequence":"4"}`
	if string(got) != want {
		t.Errorf("canonical bytes mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestSignDoc_SignBytes_Deterministic(t *testing.T) {
	doc := NewSignDoc([]Msg{testMsgSend()}, NewStdFee(2000000), "", 7, 0, "thorchain")

	b1, err := doc.SignBytes()
	if err != nil {
		t.Fatalf("SignBytes() error: %v", err)
	}
	b2, err := doc.SignBytes()
	if err != nil {
		t.Fatalf("SignBytes() error: %v", err)
	}
	if !bytes.Equal(b1, b2) {
		t.Error("repeated encoding should yield identical bytes")
	}
}

// The canonical order is fixed by the encoder, not by how the caller
// assembled the value: a map with the same content must encode to the
// same bytes as the typed struct.
func TestSortedJSON_OrderInsensitive(t *testing.T) {
	fromStruct, err := SortedJSON(MsgSend{
		Amount:      []Coin{{Amount: "25", Denom: "rune"}},
		FromAddress: "tthor1aaa",
		ToAddress:   "tthor1bbb",
	})
	if err != nil {
		t.Fatalf("SortedJSON(struct) error: %v", err)
	}

	fromMap, err := SortedJSON(map[string]interface{}{
		"to_address":   "tthor1bbb",
		"amount":       []map[string]string{{"denom": "rune", "amount": "25"}},
		"from_address": "tthor1aaa",
	})
	if err != nil {
		t.Fatalf("SortedJSON(map) error: %v", err)
	}

	if !bytes.Equal(fromStruct, fromMap) {
		t.Errorf("struct and map encodings differ:\n%s\n%s", fromStruct, fromMap)
	}
}

func TestSortedJSON_NoHTMLEscaping(t *testing.T) {
	got, err := SortedJSON(map[string]string{"memo": "swap:BNB.BNB<=>&RUNE"})
	if err != nil {
		t.Fatalf("SortedJSON() error: %v", err)
	}
	want := `{"memo":"swap:BNB.BNB<=>&RUNE"}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestSortedJSON_NumbersPreserved(t *testing.T) {
	got, err := SortedJSON(map[string]interface{}{"amount": int64(100000000), "flag": true})
	if err != nil {
		t.Fatalf("SortedJSON() error: %v", err)
	}
	want := `{"amount":100000000,"flag":true}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestBuildStdTx_Incomplete(t *testing.T) {
	sig := StdSignature{
		PubKey:    PubKey{Type: PubKeySecp256k1AminoType, Value: "AAA="},
		Signature: "BBB=",
	}

	tests := []struct {
		name string
		msgs []Msg
		fee  StdFee
		sigs []StdSignature
	}{
		{"no messages", nil, NewStdFee(1), []StdSignature{sig}},
		{"no gas", []Msg{testMsgSend()}, StdFee{}, []StdSignature{sig}},
		{"no signatures", []Msg{testMsgSend()}, NewStdFee(1), nil},
		{"empty signature", []Msg{testMsgSend()}, NewStdFee(1), []StdSignature{{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildStdTx(tt.msgs, tt.fee, tt.sigs, "")
			if !errors.Is(err, types.ErrIncompleteTx) {
				t.Errorf("error = %v, want ErrIncompleteTx", err)
			}
		})
	}
}
