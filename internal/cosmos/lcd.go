package cosmos

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/xchainlabs/xchain-go/pkg/types"
)

// LCDClient is a plain HTTP client for the legacy Cosmos-SDK LCD REST
// API (balance, account, tx-by-hash, broadcast). The base URL can be
// repointed while requests are in flight, so it has its own lock.
type LCDClient struct {
	mu      sync.Mutex
	baseURL string
	http    *http.Client
}

// NewLCDClient creates a client targeting the given node REST endpoint.
func NewLCDClient(baseURL string) *LCDClient {
	return NewLCDClientWithTimeout(baseURL, 15*time.Second)
}

// NewLCDClientWithTimeout creates a client with a custom HTTP timeout.
func NewLCDClientWithTimeout(baseURL string, timeout time.Duration) *LCDClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &LCDClient{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetBaseURL points the client at a different node.
func (c *LCDClient) SetBaseURL(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = url
}

// BaseURL returns the node REST endpoint currently in use.
func (c *LCDClient) BaseURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.baseURL
}

// balancesResponse is the /bank/balances envelope.
type balancesResponse struct {
	Height string `json:"height"`
	Result []Coin `json:"result"`
}

// Balances returns all holdings of an address. An address unknown to
// the node reports no holdings, not an error.
func (c *LCDClient) Balances(ctx context.Context, address string) ([]Coin, error) {
	var resp balancesResponse
	if err := c.get(ctx, "/bank/balances/"+address, &resp); err != nil {
		return nil, err
	}
	return resp.Result, nil
}

// accountResponse is the /auth/accounts envelope.
type accountResponse struct {
	Height string `json:"height"`
	Result struct {
		Type  string `json:"type"`
		Value struct {
			Address       string `json:"address"`
			AccountNumber string `json:"account_number"`
			Sequence      string `json:"sequence"`
		} `json:"value"`
	} `json:"result"`
}

// GetAccount fetches the current account number and sequence for an
// address. Call immediately before signing.
func (c *LCDClient) GetAccount(ctx context.Context, address string) (Account, error) {
	var resp accountResponse
	if err := c.get(ctx, "/auth/accounts/"+address, &resp); err != nil {
		return Account{}, err
	}

	acc := Account{Address: resp.Result.Value.Address}
	var err error
	if v := resp.Result.Value.AccountNumber; v != "" {
		if acc.AccountNumber, err = strconv.ParseUint(v, 10, 64); err != nil {
			return Account{}, fmt.Errorf("parse account number %q: %w", v, err)
		}
	}
	if v := resp.Result.Value.Sequence; v != "" {
		if acc.Sequence, err = strconv.ParseUint(v, 10, 64); err != nil {
			return Account{}, fmt.Errorf("parse sequence %q: %w", v, err)
		}
	}
	return acc, nil
}

// TxByHash looks up a committed transaction. Fails with
// types.ErrTxNotFound when the node has no record of the hash.
func (c *LCDClient) TxByHash(ctx context.Context, hash string) (*TxResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL()+"/txs/"+hash, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", types.ErrNetwork, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", types.ErrTxNotFound, hash)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", types.ErrNetwork, resp.StatusCode, data)
	}

	var tx TxResponse
	if err := json.Unmarshal(data, &tx); err != nil {
		return nil, fmt.Errorf("decode tx: %w", err)
	}
	if tx.TxHash == "" {
		return nil, fmt.Errorf("%w: %s", types.ErrTxNotFound, hash)
	}
	return &tx, nil
}

// broadcastRequest is the POST /txs body.
type broadcastRequest struct {
	Tx   StdTx  `json:"tx"`
	Mode string `json:"mode"`
}

// BroadcastStdTx submits a signed transaction in sync mode and returns
// the node's response. A non-zero code is surfaced as ErrBroadcast —
// there is no retry.
func (c *LCDClient) BroadcastStdTx(ctx context.Context, tx StdTx) (*TxResponse, error) {
	body, err := json.Marshal(broadcastRequest{Tx: tx, Mode: "sync"})
	if err != nil {
		return nil, fmt.Errorf("marshal broadcast: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL()+"/txs", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrBroadcast, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", types.ErrBroadcast, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", types.ErrBroadcast, resp.StatusCode, data)
	}

	var txResp TxResponse
	if err := json.Unmarshal(data, &txResp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", types.ErrBroadcast, err)
	}
	if txResp.Code != 0 {
		return nil, fmt.Errorf("%w: code %d: %s", types.ErrBroadcast, txResp.Code, txResp.RawLog)
	}
	if txResp.TxHash == "" {
		return nil, fmt.Errorf("%w: node returned no tx hash", types.ErrBroadcast)
	}
	return &txResp, nil
}

// get performs a GET and decodes the JSON body into out.
func (c *LCDClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL()+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", types.ErrNetwork, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d: %s", types.ErrNetwork, resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
