// Package config holds per-network defaults for the chain clients:
// node endpoints, RPC endpoints and block explorers. All of them are
// overridable at client construction time.
package config

import (
	"os"
	"path/filepath"

	"github.com/xchainlabs/xchain-go/pkg/types"
)

// Endpoints groups the remote URLs a chain client talks to.
type Endpoints struct {
	// Node is the REST (LCD / dex API) endpoint.
	Node string
	// RPC is the tendermint RPC endpoint, where the chain has one.
	RPC string
	// Explorer is the public block explorer base URL.
	Explorer string
}

// CLIConfig holds runtime settings for xchain-cli.
type CLIConfig struct {
	Network  types.Network
	DataDir  string
	LogLevel string
	LogJSON  bool
}

// DefaultCLI returns the default CLI configuration.
func DefaultCLI() CLIConfig {
	return CLIConfig{
		Network:  types.Mainnet,
		DataDir:  DefaultDataDir(),
		LogLevel: "info",
	}
}

// DefaultDataDir returns the default data directory (~/.xchain).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".xchain"
	}
	return filepath.Join(home, ".xchain")
}

// KeystoreDir returns the keystore path under a data directory:
// <datadir>/<network>/keystore
func KeystoreDir(dataDir string, network types.Network) string {
	return filepath.Join(dataDir, string(network), "keystore")
}
