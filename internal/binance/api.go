package binance

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/xchainlabs/xchain-go/pkg/types"
)

// DexClient is a plain HTTP client for the Binance Chain dex REST API
// (account, tx-by-hash, fees, broadcast). The base URL can be
// repointed while requests are in flight, so it has its own lock.
type DexClient struct {
	mu      sync.Mutex
	baseURL string
	http    *http.Client
}

// NewDexClient creates a client targeting the given dex endpoint.
func NewDexClient(baseURL string) *DexClient {
	return NewDexClientWithTimeout(baseURL, 15*time.Second)
}

// NewDexClientWithTimeout creates a client with a custom HTTP timeout.
func NewDexClientWithTimeout(baseURL string, timeout time.Duration) *DexClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &DexClient{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetBaseURL points the client at a different dex endpoint.
func (c *DexClient) SetBaseURL(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = url
}

// BaseURL returns the dex endpoint currently in use.
func (c *DexClient) BaseURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.baseURL
}

// AccountBalance is one asset line of a dex account. Amounts are
// decimal strings with 8 fractional digits.
type AccountBalance struct {
	Symbol string `json:"symbol"`
	Free   string `json:"free"`
	Frozen string `json:"frozen"`
	Locked string `json:"locked"`
}

// Account is the /api/v1/account response.
type Account struct {
	Address       string           `json:"address"`
	AccountNumber uint64           `json:"account_number"`
	Sequence      uint64           `json:"sequence"`
	Balances      []AccountBalance `json:"balances"`
}

// GetAccount fetches the account metadata and balances for an address.
// The dex answers 404 for addresses it has never seen; those come back
// as a zero-valued account, not an error.
func (c *DexClient) GetAccount(ctx context.Context, address string) (Account, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL()+"/api/v1/account/"+address, nil)
	if err != nil {
		return Account{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Account{}, fmt.Errorf("%w: %v", types.ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Account{}, fmt.Errorf("%w: read response: %v", types.ErrNetwork, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return Account{Address: address}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return Account{}, fmt.Errorf("%w: status %d: %s", types.ErrNetwork, resp.StatusCode, data)
	}

	var acc Account
	if err := json.Unmarshal(data, &acc); err != nil {
		return Account{}, fmt.Errorf("decode account: %w", err)
	}
	return acc, nil
}

// TxResponse is the /api/v1/tx envelope (format=json).
type TxResponse struct {
	Hash   string          `json:"hash"`
	Height string          `json:"height"`
	Code   int             `json:"code"`
	Log    string          `json:"log"`
	Tx     json.RawMessage `json:"tx"`
}

// TxByHash looks up a committed transaction. Fails with
// types.ErrTxNotFound when the dex has no record of the hash.
func (c *DexClient) TxByHash(ctx context.Context, hash string) (*TxResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL()+"/api/v1/tx/"+hash+"?format=json", nil)
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
	if tx.Hash == "" {
		return nil, fmt.Errorf("%w: %s", types.ErrTxNotFound, hash)
	}
	return &tx, nil
}

// fixedFeeEntry is one element of the /api/v1/fees array. The endpoint
// mixes several fee shapes; only fixed_fee_params entries matter here.
type fixedFeeEntry struct {
	FixedFeeParams *struct {
		MsgType string `json:"msg_type"`
		Fee     uint64 `json:"fee"`
	} `json:"fixed_fee_params"`
}

// TransferFee returns the flat send fee in base units.
func (c *DexClient) TransferFee(ctx context.Context) (uint64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL()+"/api/v1/fees", nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", types.ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: read response: %v", types.ErrNetwork, err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: status %d: %s", types.ErrNetwork, resp.StatusCode, data)
	}

	var entries []fixedFeeEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return 0, fmt.Errorf("decode fees: %w", err)
	}
	for _, entry := range entries {
		if entry.FixedFeeParams != nil && entry.FixedFeeParams.MsgType == "send" {
			return entry.FixedFeeParams.Fee, nil
		}
	}
	return 0, fmt.Errorf("%w: fee schedule has no send entry", types.ErrNetwork)
}

// broadcastResult is one element of the broadcast response array.
type broadcastResult struct {
	Code int    `json:"code"`
	Hash string `json:"hash"`
	Log  string `json:"log"`
	OK   bool   `json:"ok"`
}

// Broadcast submits signed amino tx bytes in sync mode and returns the
// transaction hash. A rejection is surfaced as ErrBroadcast — there is
// no retry.
func (c *DexClient) Broadcast(ctx context.Context, txBytes []byte) (string, error) {
	body := hex.EncodeToString(txBytes)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL()+"/api/v1/broadcast?sync=true", bytes.NewReader([]byte(body)))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrBroadcast, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", types.ErrBroadcast, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", types.ErrBroadcast, resp.StatusCode, data)
	}

	var results []broadcastResult
	if err := json.Unmarshal(data, &results); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", types.ErrBroadcast, err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("%w: empty broadcast response", types.ErrBroadcast)
	}
	result := results[0]
	if result.Code != 0 || !result.OK {
		return "", fmt.Errorf("%w: code %d: %s", types.ErrBroadcast, result.Code, result.Log)
	}
	if result.Hash == "" {
		return "", fmt.Errorf("%w: dex returned no tx hash", types.ErrBroadcast)
	}
	return result.Hash, nil
}
