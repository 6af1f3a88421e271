package wallet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xchainlabs/xchain-go/internal/log"
)

// keystoreFile is the on-disk JSON format for an encrypted wallet.
// The mnemonic phrase itself is stored (encrypted), not a derived seed,
// so any chain client can re-derive at its own coin type.
type keystoreFile struct {
	Version         int       `json:"version"`
	CreatedAt       time.Time `json:"created_at"`
	EncryptedPhrase []byte    `json:"encrypted_phrase"`
}

// Keystore manages encrypted phrase storage on disk for the CLI. The
// chain clients themselves never persist a phrase.
type Keystore struct {
	path string
}

// NewKeystore creates a keystore that reads/writes to the given directory.
// The directory is created if it doesn't exist.
func NewKeystore(path string) (*Keystore, error) {
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, fmt.Errorf("create keystore dir: %w", err)
	}
	return &Keystore{path: path}, nil
}

// walletPath returns the file path for a wallet by name.
func (ks *Keystore) walletPath(name string) string {
	return filepath.Join(ks.path, name+".wallet")
}

// Import encrypts a mnemonic phrase under password and stores it as a
// named wallet. The phrase must pass BIP-39 validation first.
func (ks *Keystore) Import(name, phrase string, password []byte, params EncryptionParams) error {
	if !ValidateMnemonic(phrase) {
		return fmt.Errorf("wallet %q: invalid mnemonic", name)
	}

	path := ks.walletPath(name)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("wallet %q already exists", name)
	}

	encrypted, err := Encrypt([]byte(phrase), password, params)
	if err != nil {
		return fmt.Errorf("encrypt phrase: %w", err)
	}

	kf := keystoreFile{
		Version:         1,
		CreatedAt:       time.Now().UTC(),
		EncryptedPhrase: encrypted,
	}

	if err := ks.writeFile(path, &kf); err != nil {
		return err
	}
	log.Wallet.Info().Str("wallet", name).Msg("wallet stored")
	return nil
}

// Load decrypts a wallet and returns the mnemonic phrase.
func (ks *Keystore) Load(name string, password []byte) (string, error) {
	kf, err := ks.readFile(ks.walletPath(name))
	if err != nil {
		return "", err
	}

	phrase, err := Decrypt(kf.EncryptedPhrase, password)
	if err != nil {
		return "", fmt.Errorf("wallet %q: %w", name, err)
	}
	return string(phrase), nil
}

// List returns the names of all stored wallets, sorted by the
// filesystem's directory order.
func (ks *Keystore) List() ([]string, error) {
	entries, err := os.ReadDir(ks.path)
	if err != nil {
		return nil, fmt.Errorf("read keystore dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".wallet") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".wallet"))
	}
	return names, nil
}

// Delete removes a wallet file.
func (ks *Keystore) Delete(name string) error {
	if err := os.Remove(ks.walletPath(name)); err != nil {
		return fmt.Errorf("delete wallet %q: %w", name, err)
	}
	log.Wallet.Info().Str("wallet", name).Msg("wallet deleted")
	return nil
}

func (ks *Keystore) writeFile(path string, kf *keystoreFile) error {
	data, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal wallet: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write wallet: %w", err)
	}
	return nil
}

func (ks *Keystore) readFile(path string) (*keystoreFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("wallet not found: %s", path)
		}
		return nil, fmt.Errorf("read wallet: %w", err)
	}

	var kf keystoreFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("parse wallet: %w", err)
	}
	return &kf, nil
}
