package cosmos

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/xchainlabs/xchain-go/pkg/crypto"
	"github.com/xchainlabs/xchain-go/pkg/types"
)

// SignDoc is the payload a transaction signature commits to: messages,
// fee and memo plus the replay-protection fields (chain id, account
// number, sequence). Numeric fields are decimal strings, as the chain
// verifies them.
type SignDoc struct {
	AccountNumber string `json:"account_number"`
	ChainID       string `json:"chain_id"`
	Fee           StdFee `json:"fee"`
	Memo          string `json:"memo"`
	Msgs          []Msg  `json:"msgs"`
	Sequence      string `json:"sequence"`
}

// NewSignDoc assembles a sign doc from message, fee and account state.
func NewSignDoc(msgs []Msg, fee StdFee, memo string, accountNumber, sequence uint64, chainID string) SignDoc {
	return SignDoc{
		AccountNumber: formatUint(accountNumber),
		ChainID:       chainID,
		Fee:           fee,
		Memo:          memo,
		Msgs:          msgs,
		Sequence:      formatUint(sequence),
	}
}

// SignBytes returns the canonical byte encoding of the sign doc. Same
// logical inputs always produce identical bytes, regardless of how the
// caller assembled them.
func (d SignDoc) SignBytes() ([]byte, error) {
	return SortedJSON(d)
}

// Sign hashes the canonical bytes with SHA-256 and signs them with a
// deterministic ECDSA signature, returning the amino StdSignature.
func Sign(key *crypto.PrivateKey, signBytes []byte) (StdSignature, error) {
	if key == nil {
		return StdSignature{}, fmt.Errorf("%w: nil key", types.ErrSigning)
	}
	hash := crypto.Sha256(signBytes)
	sig, err := key.Sign(hash[:])
	if err != nil {
		return StdSignature{}, fmt.Errorf("%w: %v", types.ErrSigning, err)
	}
	return StdSignature{
		PubKey: PubKey{
			Type:  PubKeySecp256k1AminoType,
			Value: base64.StdEncoding.EncodeToString(key.PublicKey()),
		},
		Signature: base64.StdEncoding.EncodeToString(sig),
	}, nil
}

// BuildStdTx assembles the broadcastable transaction. Pure assembly:
// the only validation is structural completeness.
func BuildStdTx(msgs []Msg, fee StdFee, sigs []StdSignature, memo string) (StdTx, error) {
	if len(msgs) == 0 {
		return StdTx{}, fmt.Errorf("%w: no messages", types.ErrIncompleteTx)
	}
	if fee.Gas == "" {
		return StdTx{}, fmt.Errorf("%w: no gas limit", types.ErrIncompleteTx)
	}
	if len(sigs) == 0 {
		return StdTx{}, fmt.Errorf("%w: no signatures", types.ErrIncompleteTx)
	}
	for _, sig := range sigs {
		if sig.PubKey.Value == "" || sig.Signature == "" {
			return StdTx{}, fmt.Errorf("%w: empty signature", types.ErrIncompleteTx)
		}
	}
	return StdTx{Msg: msgs, Fee: fee, Signatures: sigs, Memo: memo}, nil
}

// VerifyStdTx checks every signature on the transaction against the
// canonical sign bytes. Run before broadcast: a mismatch here would be
// silently rejected by the chain's signature verification instead.
func VerifyStdTx(tx StdTx, signBytes []byte) error {
	hash := crypto.Sha256(signBytes)
	for i, sig := range tx.Signatures {
		pub, err := base64.StdEncoding.DecodeString(sig.PubKey.Value)
		if err != nil {
			return fmt.Errorf("signature %d: decode pubkey: %w", i, err)
		}
		raw, err := base64.StdEncoding.DecodeString(sig.Signature)
		if err != nil {
			return fmt.Errorf("signature %d: decode: %w", i, err)
		}
		if !crypto.VerifySignature(hash[:], raw, pub) {
			return fmt.Errorf("signature %d does not verify against sign bytes", i)
		}
	}
	return nil
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
