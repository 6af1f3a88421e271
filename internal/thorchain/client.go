package thorchain

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/xchainlabs/xchain-go/config"
	"github.com/xchainlabs/xchain-go/internal/cosmos"
	"github.com/xchainlabs/xchain-go/internal/log"
	"github.com/xchainlabs/xchain-go/internal/wallet"
	"github.com/xchainlabs/xchain-go/pkg/client"
	"github.com/xchainlabs/xchain-go/pkg/crypto"
	"github.com/xchainlabs/xchain-go/pkg/types"
)

// Client is the THORChain wallet client. The phrase, derived key and
// address are cached per instance; a mutex serializes cache mutation so
// one client can be shared across goroutines.
type Client struct {
	mu       sync.Mutex
	network  types.Network
	phrase   string
	key      *crypto.PrivateKey
	address  string
	explorer string
	lcd      *cosmos.LCDClient
	logger   zerolog.Logger
}

var _ client.XChainClient = (*Client)(nil)

// Options configures a new Client. Zero values fall back to mainnet
// defaults; Phrase may be empty and set later via SetPhrase.
type Options struct {
	Network     types.Network
	Phrase      string
	ClientURL   string
	ExplorerURL string
}

// New creates a THORChain client. It fails with ErrInvalidPhrase when
// a phrase is given and does not validate.
func New(opts Options) (*Client, error) {
	network := opts.Network
	if network == "" {
		network = types.Mainnet
	}
	if !network.Valid() {
		return nil, fmt.Errorf("%w: %q", types.ErrNetworkNotSet, opts.Network)
	}

	defaults := config.ThorchainDefaults(network)
	nodeURL := opts.ClientURL
	if nodeURL == "" {
		nodeURL = defaults.Node
	}
	explorer := opts.ExplorerURL
	if explorer == "" {
		explorer = defaults.Explorer
	}

	c := &Client{
		network:  network,
		explorer: explorer,
		lcd:      cosmos.NewLCDClient(nodeURL),
		logger:   log.Thorchain,
	}

	if opts.Phrase != "" {
		if _, err := c.SetPhrase(opts.Phrase); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// SetPhrase validates and stores the mnemonic and returns the derived
// address. An invalid phrase fails with ErrInvalidPhrase and leaves any
// previously cached key and address untouched.
func (c *Client) SetPhrase(phrase string) (string, error) {
	if !wallet.ValidateMnemonic(phrase) {
		return "", types.ErrInvalidPhrase
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phrase != phrase {
		c.phrase = phrase
		c.key = nil
		c.address = ""
	}
	return c.addressLocked()
}

// SetNetwork switches networks, pointing the client at that network's
// default node and explorer and invalidating the cached address (the
// bech32 prefix changes). The phrase is preserved.
func (c *Client) SetNetwork(network types.Network) error {
	if !network.Valid() {
		return fmt.Errorf("%w: %q", types.ErrNetworkNotSet, network)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.network = network
	defaults := config.ThorchainDefaults(network)
	c.lcd.SetBaseURL(defaults.Node)
	c.explorer = defaults.Explorer
	c.address = ""
	return nil
}

// Network returns the current network.
func (c *Client) Network() types.Network {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.network
}

// SetClientURL overrides the node REST endpoint.
func (c *Client) SetClientURL(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lcd.SetBaseURL(url)
}

// ClientURL returns the node REST endpoint currently in use.
func (c *Client) ClientURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lcd.BaseURL()
}

// SetExplorerURL overrides the block explorer base URL.
func (c *Client) SetExplorerURL(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.explorer = url
}

// ExplorerAddressURL returns the explorer page for an address.
func (c *Client) ExplorerAddressURL(address string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.explorer + "/address/" + address
}

// ExplorerTxURL returns the explorer page for a transaction.
func (c *Client) ExplorerTxURL(txID string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.explorer + "/txs/" + txID
}

// Prefix returns the bech32 address prefix for the current network.
func (c *Client) Prefix() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prefixLocked()
}

func (c *Client) prefixLocked() string {
	if c.network == types.Testnet {
		return TestnetPrefix
	}
	return MainnetPrefix
}

// PrivateKey lazily derives and caches the signing key at
// m/44'/931'/0'/0/0. Fails with ErrPhraseNotSet before SetPhrase.
func (c *Client) PrivateKey() (*crypto.PrivateKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keyLocked()
}

func (c *Client) keyLocked() (*crypto.PrivateKey, error) {
	if c.key != nil {
		return c.key, nil
	}
	if c.phrase == "" {
		return nil, types.ErrPhraseNotSet
	}
	key, err := wallet.KeyFromPhrase(c.phrase, "", wallet.CoinTypeThorchain)
	if err != nil {
		return nil, err
	}
	c.key = key
	return key, nil
}

// Address lazily derives and caches the wallet's bech32 address.
func (c *Client) Address() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.addressLocked()
}

func (c *Client) addressLocked() (string, error) {
	if c.address != "" {
		return c.address, nil
	}
	key, err := c.keyLocked()
	if err != nil {
		return "", err
	}
	addr, err := wallet.AccAddress(key.PublicKey(), c.prefixLocked())
	if err != nil {
		return "", err
	}
	c.address = addr
	return addr, nil
}

// Purge forgets the phrase and all cached key material.
func (c *Client) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.key != nil {
		c.key.Zero()
	}
	c.phrase = ""
	c.key = nil
	c.address = ""
}

// Balance lists holdings of the given address, or of the wallet address
// when address is empty. A non-empty asset filters to that denom.
func (c *Client) Balance(ctx context.Context, address, asset string) ([]types.Balance, error) {
	if address == "" {
		resolved, err := c.Address()
		if err != nil {
			return nil, err
		}
		address = resolved
	}

	coins, err := c.lcd.Balances(ctx, address)
	if err != nil {
		return nil, err
	}

	balances := make([]types.Balance, 0, len(coins))
	for _, coin := range coins {
		if asset != "" && coin.Denom != asset {
			continue
		}
		amount, err := strconv.ParseUint(coin.Amount, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse balance amount %q: %w", coin.Amount, err)
		}
		balances = append(balances, types.Balance{Asset: coin.Denom, Amount: amount})
	}
	return balances, nil
}

// TransactionData looks up a committed transaction by hash and decodes
// the first transfer message in it.
func (c *Client) TransactionData(ctx context.Context, txID string) (*types.TxRecord, error) {
	resp, err := c.lcd.TxByHash(ctx, txID)
	if err != nil {
		return nil, err
	}
	return parseTxRecord(resp)
}

// Transfer fetches fresh account metadata, builds and signs a MsgSend,
// verifies the signature against the canonical sign bytes and
// broadcasts it. Single attempt; failures surface wrapped, untouched.
func (c *Client) Transfer(ctx context.Context, params types.TxParams) (string, error) {
	key, err := c.PrivateKey()
	if err != nil {
		return "", err
	}
	from, err := c.Address()
	if err != nil {
		return "", err
	}

	asset := params.Asset
	if asset == "" {
		asset = AssetRune
	}
	if err := c.checkRecipient(params.Recipient); err != nil {
		return "", err
	}

	// Sequence must be current at signing time; a stale one is
	// rejected by the chain, not detected here.
	acc, err := c.lcd.GetAccount(ctx, from)
	if err != nil {
		return "", err
	}

	msgs := []cosmos.Msg{{
		Type: MsgSendType,
		Value: cosmos.MsgSend{
			Amount:      []cosmos.Coin{{Amount: strconv.FormatUint(params.Amount, 10), Denom: asset}},
			FromAddress: from,
			ToAddress:   params.Recipient,
		},
	}}
	fee := cosmos.NewStdFee(DefaultGasValue)

	doc := cosmos.NewSignDoc(msgs, fee, params.Memo, acc.AccountNumber, acc.Sequence, ChainID)
	signBytes, err := doc.SignBytes()
	if err != nil {
		return "", err
	}

	sig, err := cosmos.Sign(key, signBytes)
	if err != nil {
		return "", err
	}
	tx, err := cosmos.BuildStdTx(msgs, fee, []cosmos.StdSignature{sig}, params.Memo)
	if err != nil {
		return "", err
	}
	if err := cosmos.VerifyStdTx(tx, signBytes); err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrSigning, err)
	}

	resp, err := c.lcd.BroadcastStdTx(ctx, tx)
	if err != nil {
		return "", err
	}

	c.logger.Info().
		Str("txhash", resp.TxHash).
		Str("to", params.Recipient).
		Uint64("amount", params.Amount).
		Str("asset", asset).
		Msg("transfer broadcast")
	return resp.TxHash, nil
}

// Fees returns the fixed gas value for all tiers.
func (c *Client) Fees(ctx context.Context) (types.Fees, error) {
	return types.FixedFees(DefaultGasValue), nil
}

// checkRecipient rejects recipients that are not valid bech32 addresses
// for the current network before anything is signed.
func (c *Client) checkRecipient(recipient string) error {
	hrp, _, err := wallet.DecodeAccAddress(recipient)
	if err != nil {
		return fmt.Errorf("invalid recipient %q: %w", recipient, err)
	}
	if want := c.Prefix(); hrp != want {
		return fmt.Errorf("invalid recipient %q: prefix %q, want %q", recipient, hrp, want)
	}
	return nil
}

// stdTxEnvelope is the amino JSON shape of a committed tx as returned
// by /txs/{hash}.
type stdTxEnvelope struct {
	Type  string `json:"type"`
	Value struct {
		Msg []struct {
			Type  string          `json:"type"`
			Value json.RawMessage `json:"value"`
		} `json:"msg"`
		Memo string `json:"memo"`
	} `json:"value"`
}

func parseTxRecord(resp *cosmos.TxResponse) (*types.TxRecord, error) {
	record := &types.TxRecord{Hash: resp.TxHash}

	if resp.Height != "" {
		height, err := strconv.ParseInt(resp.Height, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse tx height %q: %w", resp.Height, err)
		}
		record.Height = height
	}
	if resp.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, resp.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("parse tx timestamp %q: %w", resp.Timestamp, err)
		}
		record.Timestamp = ts
	}

	if len(resp.Tx) == 0 {
		return record, nil
	}
	var envelope stdTxEnvelope
	if err := json.Unmarshal(resp.Tx, &envelope); err != nil {
		return nil, fmt.Errorf("decode tx body: %w", err)
	}
	record.Memo = envelope.Value.Memo

	for _, msg := range envelope.Value.Msg {
		if msg.Type != MsgSendType {
			continue
		}
		var send cosmos.MsgSend
		if err := json.Unmarshal(msg.Value, &send); err != nil {
			return nil, fmt.Errorf("decode MsgSend: %w", err)
		}
		record.From = send.FromAddress
		record.To = send.ToAddress
		if len(send.Amount) > 0 {
			record.Asset = send.Amount[0].Denom
			amount, err := strconv.ParseUint(send.Amount[0].Amount, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parse tx amount %q: %w", send.Amount[0].Amount, err)
			}
			record.Amount = amount
		}
		break
	}
	return record, nil
}
