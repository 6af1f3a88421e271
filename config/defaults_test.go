package config

import (
	"strings"
	"testing"

	"github.com/xchainlabs/xchain-go/pkg/types"
)

func TestThorchainDefaults(t *testing.T) {
	tests := []struct {
		network  types.Network
		wantNode string
	}{
		{types.Mainnet, "https://thornode.thorchain.info"},
		{types.Testnet, "https://testnet.thornode.thorchain.info"},
	}

	for _, tt := range tests {
		t.Run(string(tt.network), func(t *testing.T) {
			ep := ThorchainDefaults(tt.network)
			if ep.Node != tt.wantNode {
				t.Errorf("Node = %q, want %q", ep.Node, tt.wantNode)
			}
			if ep.RPC == "" || ep.Explorer == "" {
				t.Error("RPC and Explorer should have defaults")
			}
		})
	}
}

func TestBinanceDefaults(t *testing.T) {
	if got := BinanceDefaults(types.Testnet).Node; !strings.Contains(got, "testnet") {
		t.Errorf("testnet node %q should contain 'testnet'", got)
	}
	if got := BinanceDefaults(types.Mainnet).Node; got != "https://dex.binance.org" {
		t.Errorf("mainnet node = %q", got)
	}
}

func TestKeystoreDir(t *testing.T) {
	got := KeystoreDir("/data", types.Testnet)
	if got != "/data/testnet/keystore" {
		t.Errorf("KeystoreDir = %q", got)
	}
}
