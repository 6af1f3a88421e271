package binance

import (
	"crypto/sha256"
	"fmt"
	"strconv"

	"github.com/xchainlabs/xchain-go/internal/cosmos"
	"github.com/xchainlabs/xchain-go/pkg/crypto"
	"github.com/xchainlabs/xchain-go/pkg/types"
)

// The JSON sign doc mirrors the binary message but with bech32 address
// strings and bare integer amounts; the dex verifies signatures against
// this canonical form, not the broadcast bytes.
type signDocCoin struct {
	Amount int64  `json:"amount"`
	Denom  string `json:"denom"`
}

type signDocIO struct {
	Address string        `json:"address"`
	Coins   []signDocCoin `json:"coins"`
}

type signDocMsg struct {
	Inputs  []signDocIO `json:"inputs"`
	Outputs []signDocIO `json:"outputs"`
}

// SignDoc is the canonical signing payload for a dex transaction. All
// numeric account fields are decimal strings except coin amounts, which
// the chain signs as bare integers.
type SignDoc struct {
	AccountNumber string       `json:"account_number"`
	ChainID       string       `json:"chain_id"`
	Data          interface{}  `json:"data"`
	Memo          string       `json:"memo"`
	Msgs          []signDocMsg `json:"msgs"`
	Sequence      string       `json:"sequence"`
	Source        string       `json:"source"`
}

// NewSignDoc builds the sign doc for a single transfer message. Data is
// always null for transfers.
func NewSignDoc(msg signDocMsg, memo string, accountNumber, sequence uint64, chainID string, source int64) SignDoc {
	return SignDoc{
		AccountNumber: strconv.FormatUint(accountNumber, 10),
		ChainID:       chainID,
		Memo:          memo,
		Msgs:          []signDocMsg{msg},
		Sequence:      strconv.FormatUint(sequence, 10),
		Source:        strconv.FormatInt(source, 10),
	}
}

// SignBytes returns the canonical byte layout of the doc: keys sorted
// at every level, no whitespace, no HTML escaping.
func (d SignDoc) SignBytes() ([]byte, error) {
	return cosmos.SortedJSON(d)
}

// Sign hashes the canonical sign bytes and produces the deterministic
// 64-byte signature the StdSignature envelope carries.
func Sign(key *crypto.PrivateKey, signBytes []byte) ([]byte, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: no signing key", types.ErrSigning)
	}
	hash := sha256.Sum256(signBytes)
	sig, err := key.Sign(hash[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrSigning, err)
	}
	return sig, nil
}
