//go:build tools
// +build tools

package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/arcregistry/wallet-activation/internal/activation/verify"
	"github.com/arcregistry/wallet-activation/internal/chain"
	"github.com/arcregistry/wallet-activation/internal/data/store"
	"github.com/ethereum/go-ethereum/common"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

func main() {
	var (
		txHash  = flag.String("tx", "", "Transaction hash to check")
		chainID = flag.Int("chain", 11155111, "Chain ID (default: 11155111 for Sepolia)")
		from    = flag.String("from", "", "Expected sender (wallet) address")
		amount  = flag.String("amount", "", "Expected amount in native units, e.g. 0.0015")
		timeout = flag.Duration("timeout", 5*time.Second, "Timeout per source attempt")
	)
	flag.Parse()

	if *txHash == "" {
		fmt.Println("Error: transaction hash is required")
		flag.Usage()
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := sql.Open("postgres", mustDatabaseURL())
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	c, err := chain.NewService(store.New(db)).GetChain(ctx, *chainID)
	if err != nil {
		fmt.Printf("Error loading chain %d: %v\n", *chainID, err)
		os.Exit(1)
	}
	endpoints := chain.Endpoints(c)

	fmt.Printf("Chain: %s (%d)\n", endpoints.Name, endpoints.ChainID)
	fmt.Printf("Receiving address: %s\n", orNone(endpoints.ReceivingAddress))
	fmt.Println()

	dialer := verify.NewEthDialer()
	defer dialer.Close()

	v, err := verify.New(dialer, &http.Client{}, nil, verify.Options{
		SourceTimeout: *timeout,
		ToleranceBps:  100,
		Production:    true,
	})
	if err != nil {
		fmt.Printf("Error creating verifier: %v\n", err)
		os.Exit(1)
	}

	hash := common.HexToHash(*txHash)
	for _, source := range v.Sources(endpoints) {
		attemptCtx, cancel := context.WithTimeout(ctx, *timeout)
		transfer, err := source.Attempt(attemptCtx, hash)
		cancel()

		if err != nil {
			fmt.Printf("❌ %s: %v\n", source.Name(), err)
			continue
		}

		fmt.Printf("✅ %s: found in block %d\n", source.Name(), transfer.BlockNumber)
		fmt.Printf("   From: %s\n", strings.ToLower(transfer.From.Hex()))
		if transfer.To != nil {
			fmt.Printf("   To: %s\n", strings.ToLower(transfer.To.Hex()))
		} else {
			fmt.Println("   To: Contract Creation")
		}
		fmt.Printf("   Value: %s wei\n", transfer.Value.String())
		fmt.Printf("   Failed: %t\n", transfer.Failed)
	}
	fmt.Println()

	if *from == "" || *amount == "" {
		fmt.Println("Pass -from and -amount to evaluate the transaction as activation payment.")
		return
	}

	expected, err := decimal.NewFromString(*amount)
	if err != nil {
		fmt.Printf("Error parsing amount: %v\n", err)
		os.Exit(1)
	}

	res := v.Verify(ctx, verify.Request{
		TxHash:         *txHash,
		FromAddress:    *from,
		ToAddress:      endpoints.ReceivingAddress,
		ExpectedAmount: expected,
		Chain:          endpoints,
	})
	if res.Matched {
		fmt.Printf("✅ Payment accepted (source: %s)\n", res.Source)
		return
	}

	fmt.Printf("❌ Payment rejected: %s (retryable: %t)\n", res.Reason, res.Reason.Retryable())
	os.Exit(1)
}

func orNone(s string) string {
	if s == "" {
		return "<none>"
	}
	return s
}

func mustDatabaseURL() string {
	if val := os.Getenv("DATABASE_URL"); val != "" {
		return val
	}
	fmt.Fprintln(os.Stderr, "Error: DATABASE_URL environment variable is required")
	os.Exit(1)
	return ""
}
