package binance

import (
	"encoding/binary"
	"fmt"

	"github.com/xchainlabs/xchain-go/pkg/types"
)

// Registered amino type prefixes on Binance Chain. The StdTx prefix is
// additionally preceded by a uvarint of the total encoded length.
var (
	stdTxPrefix   = []byte{0xF0, 0x62, 0x5D, 0xEE}
	msgSendPrefix = []byte{0x2A, 0x2C, 0x87, 0xFA}
	pubKeyPrefix  = []byte{0xEB, 0x5A, 0xE9, 0x87}
)

// Coin is an amount of a single asset in base units.
type Coin struct {
	Denom  string
	Amount int64
}

// AddressedCoins binds raw (decoded bech32) address bytes to coins; it
// is the wire shape of both MsgSend inputs and outputs.
type AddressedCoins struct {
	Address []byte
	Coins   []Coin
}

// MsgSend is the dex bank transfer message.
type MsgSend struct {
	Inputs  []AddressedCoins
	Outputs []AddressedCoins
}

// StdSignature carries the compressed public key, the 64-byte r||s
// signature and the account metadata the signature committed to.
type StdSignature struct {
	PubKey        []byte
	Signature     []byte
	AccountNumber uint64
	Sequence      uint64
}

// StdTx is the broadcast transaction envelope.
type StdTx struct {
	Msg        MsgSend
	Signatures []StdSignature
	Memo       string
	Source     int64
	Data       []byte
}

func appendUvarint(b []byte, v uint64) []byte {
	return binary.AppendUvarint(b, v)
}

// appendFieldBytes appends a length-delimited field (wire type 2).
func appendFieldBytes(b []byte, fieldNum int, data []byte) []byte {
	b = appendUvarint(b, uint64(fieldNum)<<3|2)
	b = appendUvarint(b, uint64(len(data)))
	return append(b, data...)
}

// appendFieldVarint appends a varint field (wire type 0).
func appendFieldVarint(b []byte, fieldNum int, v uint64) []byte {
	b = appendUvarint(b, uint64(fieldNum)<<3)
	return appendUvarint(b, v)
}

func encodeCoin(c Coin) []byte {
	var b []byte
	b = appendFieldBytes(b, 1, []byte(c.Denom))
	if c.Amount != 0 {
		b = appendFieldVarint(b, 2, uint64(c.Amount))
	}
	return b
}

func encodeAddressedCoins(ac AddressedCoins) ([]byte, error) {
	if len(ac.Address) != 20 {
		return nil, fmt.Errorf("address must be 20 bytes, got %d", len(ac.Address))
	}
	var b []byte
	b = appendFieldBytes(b, 1, ac.Address)
	for _, c := range ac.Coins {
		b = appendFieldBytes(b, 2, encodeCoin(c))
	}
	return b, nil
}

func encodeMsgSend(msg MsgSend) ([]byte, error) {
	b := append([]byte{}, msgSendPrefix...)
	for _, in := range msg.Inputs {
		enc, err := encodeAddressedCoins(in)
		if err != nil {
			return nil, fmt.Errorf("input: %w", err)
		}
		b = appendFieldBytes(b, 1, enc)
	}
	for _, out := range msg.Outputs {
		enc, err := encodeAddressedCoins(out)
		if err != nil {
			return nil, fmt.Errorf("output: %w", err)
		}
		b = appendFieldBytes(b, 2, enc)
	}
	return b, nil
}

// encodePubKey wraps a compressed secp256k1 key in its amino envelope:
// type prefix, byte length, key bytes.
func encodePubKey(pubKey []byte) ([]byte, error) {
	if len(pubKey) != 33 {
		return nil, fmt.Errorf("public key must be 33 bytes, got %d", len(pubKey))
	}
	b := append([]byte{}, pubKeyPrefix...)
	b = append(b, byte(len(pubKey)))
	return append(b, pubKey...), nil
}

func encodeStdSignature(sig StdSignature) ([]byte, error) {
	if len(sig.Signature) != 64 {
		return nil, fmt.Errorf("signature must be 64 bytes, got %d", len(sig.Signature))
	}
	pub, err := encodePubKey(sig.PubKey)
	if err != nil {
		return nil, err
	}
	var b []byte
	b = appendFieldBytes(b, 1, pub)
	b = appendFieldBytes(b, 2, sig.Signature)
	if sig.AccountNumber != 0 {
		b = appendFieldVarint(b, 3, sig.AccountNumber)
	}
	if sig.Sequence != 0 {
		b = appendFieldVarint(b, 4, sig.Sequence)
	}
	return b, nil
}

// MarshalStdTx encodes a signed transaction into the length-prefixed
// amino bytes the dex broadcast endpoint accepts (hex-encoded by the
// caller). Fails with ErrIncompleteTx when the message or signatures
// are missing.
func MarshalStdTx(tx StdTx) ([]byte, error) {
	if len(tx.Msg.Inputs) == 0 || len(tx.Msg.Outputs) == 0 {
		return nil, fmt.Errorf("%w: message has no inputs or outputs", types.ErrIncompleteTx)
	}
	if len(tx.Signatures) == 0 {
		return nil, fmt.Errorf("%w: no signatures", types.ErrIncompleteTx)
	}

	body := append([]byte{}, stdTxPrefix...)
	msg, err := encodeMsgSend(tx.Msg)
	if err != nil {
		return nil, fmt.Errorf("encode msg: %w", err)
	}
	body = appendFieldBytes(body, 1, msg)
	for _, sig := range tx.Signatures {
		enc, err := encodeStdSignature(sig)
		if err != nil {
			return nil, fmt.Errorf("encode signature: %w", err)
		}
		body = appendFieldBytes(body, 2, enc)
	}
	if tx.Memo != "" {
		body = appendFieldBytes(body, 3, []byte(tx.Memo))
	}
	if tx.Source != 0 {
		body = appendFieldVarint(body, 4, uint64(tx.Source))
	}
	if len(tx.Data) != 0 {
		body = appendFieldBytes(body, 5, tx.Data)
	}

	out := appendUvarint(nil, uint64(len(body)))
	return append(out, body...), nil
}
