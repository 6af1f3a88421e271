package cosmos

import "encoding/json"

// Amino type tags used in JSON sign docs and broadcast payloads.
const (
	PubKeySecp256k1AminoType = "tendermint/PubKeySecp256k1"
)

// Coin is an amount of a single denomination. Amounts are decimal
// strings of base units, as the LCD API expects.
type Coin struct {
	Amount string `json:"amount"`
	Denom  string `json:"denom"`
}

// Msg is the amino JSON wrapper: a type tag plus the message value.
type Msg struct {
	Type  string      `json:"type"`
	Value interface{} `json:"value"`
}

// MsgSend is a single-sender bank transfer.
type MsgSend struct {
	Amount      []Coin `json:"amount"`
	FromAddress string `json:"from_address"`
	ToAddress   string `json:"to_address"`
}

// StdFee is the fee and gas limit attached to a transaction.
type StdFee struct {
	Amount []Coin `json:"amount"`
	Gas    string `json:"gas"`
}

// NewStdFee returns a StdFee with the given gas limit and no fee coins
// (THORChain deducts its fixed fee on-chain).
func NewStdFee(gas uint64) StdFee {
	return StdFee{Amount: []Coin{}, Gas: formatUint(gas)}
}

// PubKey is the amino JSON form of a compressed secp256k1 public key.
type PubKey struct {
	Type  string `json:"type"`
	Value string `json:"value"` // base64 of the 33-byte key
}

// StdSignature couples a signature with the public key that produced it.
type StdSignature struct {
	PubKey    PubKey `json:"pub_key"`
	Signature string `json:"signature"` // base64 of the 64-byte r||s
}

// StdTx is the broadcastable transaction: messages, fee, signatures
// and memo.
type StdTx struct {
	Msg        []Msg          `json:"msg"`
	Fee        StdFee         `json:"fee"`
	Signatures []StdSignature `json:"signatures"`
	Memo       string         `json:"memo"`
}

// Account is the metadata fetched from the node immediately before
// signing. A stale sequence is rejected chain-side, not here.
type Account struct {
	Address       string
	AccountNumber uint64
	Sequence      uint64
}

// TxResponse is the LCD response for broadcast and tx-by-hash queries.
type TxResponse struct {
	Height    string          `json:"height"`
	TxHash    string          `json:"txhash"`
	Code      int             `json:"code"`
	RawLog    string          `json:"raw_log"`
	Timestamp string          `json:"timestamp"`
	Tx        json.RawMessage `json:"tx"`
}
