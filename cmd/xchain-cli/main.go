// xchain-cli is a command-line wallet for THORChain and Binance Chain.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/term"

	"github.com/xchainlabs/xchain-go/config"
	"github.com/xchainlabs/xchain-go/internal/binance"
	"github.com/xchainlabs/xchain-go/internal/log"
	"github.com/xchainlabs/xchain-go/internal/thorchain"
	"github.com/xchainlabs/xchain-go/internal/wallet"
	"github.com/xchainlabs/xchain-go/pkg/client"
	"github.com/xchainlabs/xchain-go/pkg/types"
)

// decimals is the display precision of both chains' native assets.
const decimals = 8

const requestTimeout = 30 * time.Second

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg := config.DefaultCLI()
	chain := "thor"
	nodeURL := ""

	// Scan for --chain, --network, --node, --datadir and --log-level
	// before the subcommand.
	args := os.Args[1:]
	for len(args) > 0 {
		switch {
		case args[0] == "--chain" && len(args) > 1:
			chain = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--chain="):
			chain = args[0][len("--chain="):]
			args = args[1:]
		case args[0] == "--network" && len(args) > 1:
			cfg.Network = types.Network(args[1])
			args = args[2:]
		case strings.HasPrefix(args[0], "--network="):
			cfg.Network = types.Network(args[0][len("--network="):])
			args = args[1:]
		case args[0] == "--node" && len(args) > 1:
			nodeURL = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--node="):
			nodeURL = args[0][len("--node="):]
			args = args[1:]
		case args[0] == "--datadir" && len(args) > 1:
			cfg.DataDir = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--datadir="):
			cfg.DataDir = args[0][len("--datadir="):]
			args = args[1:]
		case args[0] == "--log-level" && len(args) > 1:
			cfg.LogLevel = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--log-level="):
			cfg.LogLevel = args[0][len("--log-level="):]
			args = args[1:]
		default:
			goto dispatch
		}
	}

dispatch:
	log.Init(cfg.LogLevel, cfg.LogJSON)

	if !cfg.Network.Valid() {
		fatal("invalid network %q (mainnet or testnet)", cfg.Network)
	}
	if chain != "thor" && chain != "bnb" {
		fatal("invalid chain %q (thor or bnb)", chain)
	}

	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	ksDir := config.KeystoreDir(cfg.DataDir, cfg.Network)
	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case "address":
		cmdAddress(chain, cfg.Network, nodeURL, cmdArgs, ksDir)
	case "balance":
		cmdBalance(chain, cfg.Network, nodeURL, cmdArgs, ksDir)
	case "tx":
		cmdTx(chain, cfg.Network, nodeURL, cmdArgs)
	case "transfer":
		cmdTransfer(chain, cfg.Network, nodeURL, cmdArgs, ksDir)
	case "fees":
		cmdFees(chain, cfg.Network, nodeURL)
	case "wallet":
		cmdWallet(cmdArgs, ksDir)
	case "help", "--help", "-h":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: xchain-cli [global flags] <command> [flags]

Global flags:
  --chain <chain>     thor (default) or bnb
  --network <net>     mainnet (default) or testnet
  --node <url>        Node REST endpoint (default: per-network)
  --datadir <path>    Data directory (default: ~/.xchain)
  --log-level <lvl>   Log level (default: info)

Commands:
  address [--wallet <w>]          Show the wallet address
  balance [<address>] [--asset <sym>] [--wallet <w>]
                                  Show balances
  tx <hash>                       Show transaction details
  transfer --to <addr> --amount <amt> [--asset <sym>] [--memo <m>] [--wallet <w>]
                                  Send a transfer
  fees                            Show fee tiers

  wallet create --name <n> [--words 12|24]
                                  Create a new wallet
  wallet import --name <n>        Import wallet from mnemonic
  wallet list                     List wallets
  wallet delete --name <n>        Delete a wallet
`)
}

// newChainClient builds the client for the selected chain.
func newChainClient(chain string, network types.Network, nodeURL string) (client.XChainClient, error) {
	switch chain {
	case "bnb":
		return binance.New(binance.Options{Network: network, ClientURL: nodeURL})
	default:
		return thorchain.New(thorchain.Options{Network: network, ClientURL: nodeURL})
	}
}

// loadPhrase resolves the mnemonic: from the named keystore wallet when
// --wallet is given, otherwise prompted with hidden input.
func loadPhrase(walletName, ksDir string) string {
	if walletName != "" {
		ks, err := wallet.NewKeystore(ksDir)
		if err != nil {
			fatal("open keystore: %v", err)
		}
		password, err := readPassword("Enter password: ")
		if err != nil {
			fatal("read password: %v", err)
		}
		phrase, err := ks.Load(walletName, password)
		if err != nil {
			fatal("load wallet %q: %v", walletName, err)
		}
		return phrase
	}

	phrase, err := readPassword("Enter mnemonic phrase: ")
	if err != nil {
		fatal("read phrase: %v", err)
	}
	return strings.TrimSpace(string(phrase))
}

// ── address ─────────────────────────────────────────────────────────────

func cmdAddress(chain string, network types.Network, nodeURL string, args []string, ksDir string) {
	fs := flag.NewFlagSet("address", flag.ExitOnError)
	walletName := fs.String("wallet", "", "Wallet name")
	fs.Parse(args)

	c, err := newChainClient(chain, network, nodeURL)
	if err != nil {
		fatal("%v", err)
	}
	addr, err := c.SetPhrase(loadPhrase(*walletName, ksDir))
	if err != nil {
		fatal("%v", err)
	}
	defer c.Purge()

	fmt.Printf("Address:  %s\n", addr)
	fmt.Printf("Explorer: %s\n", c.ExplorerAddressURL(addr))
}

// ── balance ─────────────────────────────────────────────────────────────

func cmdBalance(chain string, network types.Network, nodeURL string, args []string, ksDir string) {
	// Optional positional address before flags.
	address := ""
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		address = args[0]
		args = args[1:]
	}

	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	asset := fs.String("asset", "", "Filter to one asset")
	walletName := fs.String("wallet", "", "Wallet name")
	fs.Parse(args)

	c, err := newChainClient(chain, network, nodeURL)
	if err != nil {
		fatal("%v", err)
	}
	if address == "" {
		if _, err := c.SetPhrase(loadPhrase(*walletName, ksDir)); err != nil {
			fatal("%v", err)
		}
		defer c.Purge()
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	balances, err := c.Balance(ctx, address, *asset)
	if err != nil {
		fatal("%v", err)
	}

	if len(balances) == 0 {
		fmt.Println("No holdings")
		return
	}
	for _, bal := range balances {
		fmt.Printf("%-12s %s\n", bal.Asset, formatAmount(bal.Amount))
	}
}

// ── tx ──────────────────────────────────────────────────────────────────

func cmdTx(chain string, network types.Network, nodeURL string, args []string) {
	if len(args) < 1 {
		fatal("Usage: xchain-cli tx <hash>")
	}

	c, err := newChainClient(chain, network, nodeURL)
	if err != nil {
		fatal("%v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	record, err := c.TransactionData(ctx, args[0])
	if err != nil {
		fatal("%v", err)
	}

	fmt.Printf("Hash:    %s\n", record.Hash)
	fmt.Printf("Height:  %d\n", record.Height)
	fmt.Printf("From:    %s\n", record.From)
	fmt.Printf("To:      %s\n", record.To)
	fmt.Printf("Amount:  %s %s\n", formatAmount(record.Amount), record.Asset)
	if record.Memo != "" {
		fmt.Printf("Memo:    %s\n", record.Memo)
	}
	if !record.Timestamp.IsZero() {
		fmt.Printf("Time:    %s\n", record.Timestamp.UTC().Format("2006-01-02 15:04:05 UTC"))
	}
	fmt.Printf("Explorer: %s\n", c.ExplorerTxURL(record.Hash))
}

// ── transfer ────────────────────────────────────────────────────────────

func cmdTransfer(chain string, network types.Network, nodeURL string, args []string, ksDir string) {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	toAddr := fs.String("to", "", "Recipient address")
	amountStr := fs.String("amount", "", "Amount to send (e.g. 1.5)")
	asset := fs.String("asset", "", "Asset to send (default: chain native)")
	memo := fs.String("memo", "", "Transaction memo")
	walletName := fs.String("wallet", "", "Wallet name")
	fs.Parse(args)

	if *toAddr == "" || *amountStr == "" {
		fatal("Usage: xchain-cli transfer --to <addr> --amount <amt> [--asset <sym>] [--memo <m>]")
	}
	amount, err := parseAmount(*amountStr)
	if err != nil {
		fatal("invalid amount: %v", err)
	}

	c, err := newChainClient(chain, network, nodeURL)
	if err != nil {
		fatal("%v", err)
	}
	if _, err := c.SetPhrase(loadPhrase(*walletName, ksDir)); err != nil {
		fatal("%v", err)
	}
	defer c.Purge()

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	hash, err := c.Transfer(ctx, types.TxParams{
		Amount:    amount,
		Recipient: *toAddr,
		Asset:     *asset,
		Memo:      *memo,
	})
	if err != nil {
		fatal("%v", err)
	}

	fmt.Printf("Submitted: %s\n", hash)
	fmt.Printf("Explorer:  %s\n", c.ExplorerTxURL(hash))
}

// ── fees ────────────────────────────────────────────────────────────────

func cmdFees(chain string, network types.Network, nodeURL string) {
	c, err := newChainClient(chain, network, nodeURL)
	if err != nil {
		fatal("%v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	fees, err := c.Fees(ctx)
	if err != nil {
		fatal("%v", err)
	}

	fmt.Printf("Average: %s\n", formatAmount(fees.Average))
	fmt.Printf("Fast:    %s\n", formatAmount(fees.Fast))
	fmt.Printf("Fastest: %s\n", formatAmount(fees.Fastest))
}

// ── wallet ──────────────────────────────────────────────────────────────

func cmdWallet(args []string, ksDir string) {
	if len(args) < 1 {
		fatal("Usage: xchain-cli wallet <create|import|list|delete> [flags]")
	}

	ks, err := wallet.NewKeystore(ksDir)
	if err != nil {
		fatal("open keystore: %v", err)
	}

	switch args[0] {
	case "create":
		cmdWalletCreate(ks, args[1:])
	case "import":
		cmdWalletImport(ks, args[1:])
	case "list":
		cmdWalletList(ks)
	case "delete":
		cmdWalletDelete(ks, args[1:])
	default:
		fatal("unknown wallet command: %s", args[0])
	}
}

func cmdWalletCreate(ks *wallet.Keystore, args []string) {
	fs := flag.NewFlagSet("wallet create", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	words := fs.Int("words", 24, "Mnemonic length: 12 or 24 words")
	fs.Parse(args)

	if *name == "" {
		fatal("Usage: xchain-cli wallet create --name <n> [--words 12|24]")
	}

	entropy := wallet.EntropyBits24Words
	switch *words {
	case 12:
		entropy = wallet.EntropyBits12Words
	case 24:
	default:
		fatal("--words must be 12 or 24")
	}

	phrase, err := wallet.GenerateMnemonic(entropy)
	if err != nil {
		fatal("generate mnemonic: %v", err)
	}
	password, err := readNewPassword()
	if err != nil {
		fatal("read password: %v", err)
	}
	if err := ks.Import(*name, phrase, password, wallet.DefaultParams()); err != nil {
		fatal("save wallet: %v", err)
	}

	fmt.Printf("Created wallet %q\n\n", *name)
	fmt.Println("Recovery phrase (write it down, it is shown only once):")
	fmt.Printf("\n  %s\n", phrase)
}

func cmdWalletImport(ks *wallet.Keystore, args []string) {
	fs := flag.NewFlagSet("wallet import", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	fs.Parse(args)

	if *name == "" {
		fatal("Usage: xchain-cli wallet import --name <n>")
	}

	phraseBytes, err := readPassword("Enter mnemonic phrase: ")
	if err != nil {
		fatal("read phrase: %v", err)
	}
	phrase := strings.TrimSpace(string(phraseBytes))

	password, err := readNewPassword()
	if err != nil {
		fatal("read password: %v", err)
	}
	if err := ks.Import(*name, phrase, password, wallet.DefaultParams()); err != nil {
		fatal("import wallet: %v", err)
	}
	fmt.Printf("Imported wallet %q\n", *name)
}

func cmdWalletList(ks *wallet.Keystore) {
	names, err := ks.List()
	if err != nil {
		fatal("list wallets: %v", err)
	}
	if len(names) == 0 {
		fmt.Println("No wallets")
		return
	}
	for _, name := range names {
		fmt.Println(name)
	}
}

func cmdWalletDelete(ks *wallet.Keystore, args []string) {
	fs := flag.NewFlagSet("wallet delete", flag.ExitOnError)
	name := fs.String("name", "", "Wallet name")
	fs.Parse(args)

	if *name == "" {
		fatal("Usage: xchain-cli wallet delete --name <n>")
	}
	if err := ks.Delete(*name); err != nil {
		fatal("delete wallet: %v", err)
	}
	fmt.Printf("Deleted wallet %q\n", *name)
}

// ── Amount helpers ──────────────────────────────────────────────────────

// formatAmount converts base units to a decimal display string.
func formatAmount(units uint64) string {
	return decimal.New(int64(units), -decimals).StringFixed(decimals)
}

// parseAmount converts a decimal string to base units.
func parseAmount(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("negative amount")
	}
	scaled := d.Mul(decimal.New(1, decimals))
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("too many decimal places (max %d)", decimals)
	}
	return uint64(scaled.IntPart()), nil
}

// ── Password helpers ────────────────────────────────────────────────────

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}

// readNewPassword prompts twice and insists the entries match.
func readNewPassword() ([]byte, error) {
	password, err := readPassword("Enter new password: ")
	if err != nil {
		return nil, err
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return nil, err
	}
	if string(password) != string(confirm) {
		return nil, fmt.Errorf("passwords do not match")
	}
	return password, nil
}

// ── Error helper ────────────────────────────────────────────────────────

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
