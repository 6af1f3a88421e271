package cosmos

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xchainlabs/xchain-go/pkg/types"
)

func TestLCDClient_Balances(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bank/balances/tthor1addr" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"height":"100","result":[{"denom":"rune","amount":"123456"}]}`))
	}))
	defer srv.Close()

	client := NewLCDClient(srv.URL)
	coins, err := client.Balances(context.Background(), "tthor1addr")
	if err != nil {
		t.Fatalf("Balances() error: %v", err)
	}
	if len(coins) != 1 || coins[0].Denom != "rune" || coins[0].Amount != "123456" {
		t.Errorf("Balances() = %+v", coins)
	}
}

func TestLCDClient_Balances_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"height":"100","result":[]}`))
	}))
	defer srv.Close()

	coins, err := NewLCDClient(srv.URL).Balances(context.Background(), "tthor1addr")
	if err != nil {
		t.Fatalf("Balances() error: %v", err)
	}
	if len(coins) != 0 {
		t.Errorf("expected no holdings, got %+v", coins)
	}
}

func TestLCDClient_Balances_TransportError(t *testing.T) {
	// Point at a closed server.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewLCDClient(srv.URL).Balances(context.Background(), "tthor1addr")
	if !errors.Is(err, types.ErrNetwork) {
		t.Errorf("error = %v, want ErrNetwork", err)
	}
}

func TestLCDClient_GetAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/accounts/tthor1addr" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"height":"100","result":{"type":"cosmos-sdk/Account","value":{"address":"tthor1addr","account_number":"42","sequence":"7"}}}`))
	}))
	defer srv.Close()

	acc, err := NewLCDClient(srv.URL).GetAccount(context.Background(), "tthor1addr")
	if err != nil {
		t.Fatalf("GetAccount() error: %v", err)
	}
	if acc.AccountNumber != 42 || acc.Sequence != 7 {
		t.Errorf("GetAccount() = %+v, want number 42 sequence 7", acc)
	}
}

func TestLCDClient_TxByHash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"height":"55","txhash":"ABCDEF","raw_log":"[]","timestamp":"2021-05-14T12:00:00Z"}`))
	}))
	defer srv.Close()

	tx, err := NewLCDClient(srv.URL).TxByHash(context.Background(), "ABCDEF")
	if err != nil {
		t.Fatalf("TxByHash() error: %v", err)
	}
	if tx.TxHash != "ABCDEF" || tx.Height != "55" {
		t.Errorf("TxByHash() = %+v", tx)
	}
}

func TestLCDClient_TxByHash_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"tx (DEAD) not found"}`))
	}))
	defer srv.Close()

	_, err := NewLCDClient(srv.URL).TxByHash(context.Background(), "DEAD")
	if !errors.Is(err, types.ErrTxNotFound) {
		t.Errorf("error = %v, want ErrTxNotFound", err)
	}
}

func TestLCDClient_BroadcastStdTx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/txs" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req broadcastRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode broadcast body: %v", err)
		}
		if req.Mode != "sync" {
			t.Errorf("mode = %q, want sync", req.Mode)
		}
		w.Write([]byte(`{"height":"0","txhash":"CAFEBABE"}`))
	}))
	defer srv.Close()

	tx := StdTx{
		Msg:        []Msg{testMsgSend()},
		Fee:        NewStdFee(2000000),
		Signatures: []StdSignature{{PubKey: PubKey{Type: PubKeySecp256k1AminoType, Value: "AA=="}, Signature: "BB=="}},
	}
	resp, err := NewLCDClient(srv.URL).BroadcastStdTx(context.Background(), tx)
	if err != nil {
		t.Fatalf("BroadcastStdTx() error: %v", err)
	}
	if resp.TxHash != "CAFEBABE" {
		t.Errorf("txhash = %q", resp.TxHash)
	}
}

func TestLCDClient_BroadcastStdTx_ChainRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"height":"0","txhash":"CAFEBABE","code":4,"raw_log":"signature verification failed"}`))
	}))
	defer srv.Close()

	_, err := NewLCDClient(srv.URL).BroadcastStdTx(context.Background(), StdTx{})
	if !errors.Is(err, types.ErrBroadcast) {
		t.Errorf("error = %v, want ErrBroadcast", err)
	}
}
