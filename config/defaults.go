package config

import "github.com/xchainlabs/xchain-go/pkg/types"

// ThorchainDefaults returns the default THORChain endpoints for a network.
func ThorchainDefaults(network types.Network) Endpoints {
	if network == types.Testnet {
		return Endpoints{
			Node:     "https://testnet.thornode.thorchain.info",
			RPC:      "https://testnet.rpc.thorchain.info",
			Explorer: "https://testnet.thorchain.net",
		}
	}
	return Endpoints{
		Node:     "https://thornode.thorchain.info",
		RPC:      "https://rpc.thorchain.info",
		Explorer: "https://thorchain.net",
	}
}

// BinanceDefaults returns the default Binance Chain endpoints for a network.
func BinanceDefaults(network types.Network) Endpoints {
	if network == types.Testnet {
		return Endpoints{
			Node:     "https://testnet-dex.binance.org",
			Explorer: "https://testnet-explorer.binance.org",
		}
	}
	return Endpoints{
		Node:     "https://dex.binance.org",
		Explorer: "https://explorer.binance.org",
	}
}
