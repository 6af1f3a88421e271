package binance

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/xchainlabs/xchain-go/config"
	"github.com/xchainlabs/xchain-go/internal/log"
	"github.com/xchainlabs/xchain-go/internal/wallet"
	"github.com/xchainlabs/xchain-go/pkg/client"
	"github.com/xchainlabs/xchain-go/pkg/crypto"
	"github.com/xchainlabs/xchain-go/pkg/types"
)

// Client is the Binance Chain wallet client. The phrase, derived key
// and address are cached per instance; a mutex serializes cache
// mutation so one client can be shared across goroutines.
type Client struct {
	mu       sync.Mutex
	network  types.Network
	phrase   string
	key      *crypto.PrivateKey
	address  string
	explorer string
	dex      *DexClient
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

// New creates a Binance Chain client. It fails with ErrInvalidPhrase
// when a phrase is given and does not validate.
func New(opts Options) (*Client, error) {
	network := opts.Network
	if network == "" {
		network = types.Mainnet
	}
	if !network.Valid() {
		return nil, fmt.Errorf("%w: %q", types.ErrNetworkNotSet, opts.Network)
	}

	defaults := config.BinanceDefaults(network)
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
		dex:      NewDexClient(nodeURL),
		logger:   log.Binance,
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
// default dex and explorer and invalidating the cached address (the
// bech32 prefix changes). The phrase is preserved.
func (c *Client) SetNetwork(network types.Network) error {
	if !network.Valid() {
		return fmt.Errorf("%w: %q", types.ErrNetworkNotSet, network)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.network = network
	defaults := config.BinanceDefaults(network)
	c.dex.SetBaseURL(defaults.Node)
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

// SetClientURL overrides the dex REST endpoint.
func (c *Client) SetClientURL(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dex.SetBaseURL(url)
}

// ClientURL returns the dex REST endpoint currently in use.
func (c *Client) ClientURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dex.BaseURL()
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
	return c.explorer + "/tx/" + txID
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

// ChainID returns the chain id signed into transactions for the current
// network.
func (c *Client) ChainID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.chainIDLocked()
}

func (c *Client) chainIDLocked() string {
	if c.network == types.Testnet {
		return ChainIDTestnet
	}
	return ChainIDMainnet
}

// PrivateKey lazily derives and caches the signing key at
// m/44'/714'/0'/0/0. Fails with ErrPhraseNotSet before SetPhrase.
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
	key, err := wallet.KeyFromPhrase(c.phrase, "", wallet.CoinTypeBinance)
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

// Balance lists free holdings of the given address, or of the wallet
// address when address is empty, converted from the dex decimal strings
// to base units. A non-empty asset filters to that symbol.
func (c *Client) Balance(ctx context.Context, address, asset string) ([]types.Balance, error) {
	if address == "" {
		resolved, err := c.Address()
		if err != nil {
			return nil, err
		}
		address = resolved
	}

	acc, err := c.dex.GetAccount(ctx, address)
	if err != nil {
		return nil, err
	}

	balances := make([]types.Balance, 0, len(acc.Balances))
	for _, bal := range acc.Balances {
		if asset != "" && bal.Symbol != asset {
			continue
		}
		amount, err := baseUnits(bal.Free)
		if err != nil {
			return nil, fmt.Errorf("parse balance %q: %w", bal.Free, err)
		}
		balances = append(balances, types.Balance{Asset: bal.Symbol, Amount: amount})
	}
	return balances, nil
}

// TransactionData looks up a committed transaction by hash and decodes
// the first transfer message in it.
func (c *Client) TransactionData(ctx context.Context, txID string) (*types.TxRecord, error) {
	resp, err := c.dex.TxByHash(ctx, txID)
	if err != nil {
		return nil, err
	}
	return parseTxRecord(resp)
}

// Transfer fetches fresh account metadata, builds and signs a single
// input/output send, verifies the signature against the canonical sign
// bytes and broadcasts the amino encoding. Single attempt; failures
// surface wrapped, untouched.
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
		asset = AssetBNB
	}
	toRaw, err := c.checkRecipient(params.Recipient)
	if err != nil {
		return "", err
	}
	fromRaw := crypto.Hash160(key.PublicKey())

	// Sequence must be current at signing time; a stale one is
	// rejected by the chain, not detected here.
	acc, err := c.dex.GetAccount(ctx, from)
	if err != nil {
		return "", err
	}

	// Sign docs and the amino encoding carry amounts as int64.
	if params.Amount > math.MaxInt64 {
		return "", fmt.Errorf("%w: amount %d exceeds maximum", types.ErrIncompleteTx, params.Amount)
	}
	amount := int64(params.Amount)
	coins := []signDocCoin{{Amount: amount, Denom: asset}}
	msg := signDocMsg{
		Inputs:  []signDocIO{{Address: from, Coins: coins}},
		Outputs: []signDocIO{{Address: params.Recipient, Coins: coins}},
	}

	doc := NewSignDoc(msg, params.Memo, acc.AccountNumber, acc.Sequence, c.ChainID(), txSource)
	signBytes, err := doc.SignBytes()
	if err != nil {
		return "", err
	}
	sig, err := Sign(key, signBytes)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(signBytes)
	if !crypto.VerifySignature(hash[:], sig, key.PublicKey()) {
		return "", fmt.Errorf("%w: signature does not verify against sign bytes", types.ErrSigning)
	}

	wireCoins := []Coin{{Denom: asset, Amount: amount}}
	tx := StdTx{
		Msg: MsgSend{
			Inputs:  []AddressedCoins{{Address: fromRaw, Coins: wireCoins}},
			Outputs: []AddressedCoins{{Address: toRaw, Coins: wireCoins}},
		},
		Signatures: []StdSignature{{
			PubKey:        key.PublicKey(),
			Signature:     sig,
			AccountNumber: acc.AccountNumber,
			Sequence:      acc.Sequence,
		}},
		Memo:   params.Memo,
		Source: txSource,
	}
	txBytes, err := MarshalStdTx(tx)
	if err != nil {
		return "", err
	}

	txHash, err := c.dex.Broadcast(ctx, txBytes)
	if err != nil {
		return "", err
	}

	c.logger.Info().
		Str("txhash", txHash).
		Str("to", params.Recipient).
		Uint64("amount", params.Amount).
		Str("asset", asset).
		Msg("transfer broadcast")
	return txHash, nil
}

// Fees returns the flat send fee for all tiers, falling back to the
// fixed default when the fee schedule is unreachable.
func (c *Client) Fees(ctx context.Context) (types.Fees, error) {
	fee, err := c.dex.TransferFee(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("fee schedule unavailable, using default")
		return types.FixedFees(DefaultTransferFee), nil
	}
	return types.FixedFees(fee), nil
}

// checkRecipient rejects recipients that are not valid bech32 addresses
// for the current network before anything is signed, and returns the
// decoded raw address bytes for the wire encoding.
func (c *Client) checkRecipient(recipient string) ([]byte, error) {
	hrp, raw, err := wallet.DecodeAccAddress(recipient)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", recipient, err)
	}
	if want := c.Prefix(); hrp != want {
		return nil, fmt.Errorf("invalid recipient %q: prefix %q, want %q", recipient, hrp, want)
	}
	return raw, nil
}

// baseUnits converts a dex decimal amount string to integer base units.
func baseUnits(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	scaled := d.Mul(decimal.New(1, Decimals))
	if !scaled.IsInteger() || scaled.IsNegative() {
		return 0, fmt.Errorf("amount %q is not a whole non-negative base unit count", s)
	}
	return uint64(scaled.IntPart()), nil
}

// txEnvelope is the JSON shape of a committed tx as returned by
// /api/v1/tx?format=json.
type txEnvelope struct {
	Type  string `json:"type"`
	Value struct {
		Msg []struct {
			Type  string          `json:"type"`
			Value json.RawMessage `json:"value"`
		} `json:"msg"`
		Memo string `json:"memo"`
	} `json:"value"`
}

// txIO is an input or output of a committed send; amounts are decimal
// strings of base units here, unlike the sign doc.
type txIO struct {
	Address string `json:"address"`
	Coins   []struct {
		Amount string `json:"amount"`
		Denom  string `json:"denom"`
	} `json:"coins"`
}

func parseTxRecord(resp *TxResponse) (*types.TxRecord, error) {
	record := &types.TxRecord{Hash: resp.Hash}

	if resp.Height != "" {
		height, err := strconv.ParseInt(resp.Height, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse tx height %q: %w", resp.Height, err)
		}
		record.Height = height
	}

	if len(resp.Tx) == 0 {
		return record, nil
	}
	var envelope txEnvelope
	if err := json.Unmarshal(resp.Tx, &envelope); err != nil {
		return nil, fmt.Errorf("decode tx body: %w", err)
	}
	record.Memo = envelope.Value.Memo

	for _, msg := range envelope.Value.Msg {
		var send struct {
			Inputs  []txIO `json:"inputs"`
			Outputs []txIO `json:"outputs"`
		}
		if err := json.Unmarshal(msg.Value, &send); err != nil {
			return nil, fmt.Errorf("decode send msg: %w", err)
		}
		if len(send.Inputs) == 0 || len(send.Outputs) == 0 {
			continue
		}
		record.From = send.Inputs[0].Address
		record.To = send.Outputs[0].Address
		if coins := send.Outputs[0].Coins; len(coins) > 0 {
			record.Asset = coins[0].Denom
			amount, err := strconv.ParseUint(coins[0].Amount, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parse tx amount %q: %w", coins[0].Amount, err)
			}
			record.Amount = amount
		}
		break
	}
	return record, nil
}
