package test

import (
	"path/filepath"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/arcregistry/wallet-activation/internal/data"
	"github.com/arcregistry/wallet-activation/internal/util"
)

const (
	FixtureChainSepolia     = 11155111
	FixtureChainAmoy        = 80002
	FixtureChainInactive    = 1
	FixtureReceivingAddress = "0x00000000000000000000000000000000000ba5e0"
	FixtureWalletAddress    = "0xaaaa000000000000000000000000000000000001"

	// FixturePaidTxHash pays FixtureQuotedAmount to FixtureReceivingAddress on StubVerifier.
	FixturePaidTxHash   = "0xdead000000000000000000000000000000000000000000000000000000000001"
	FixtureQuotedAmount = "0.00166667"
)

// FixtureTime is the time of the mock clock used by test servers.
var FixtureTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

// FixtureChains returns the chains every test database and test server starts with.
// Sepolia is fully configured, Amoy lacks a receiving address, chain 1 is inactive.
func FixtureChains() []*data.Chain {
	return []*data.Chain{
		{
			ChainID:          FixtureChainSepolia,
			Name:             "Sepolia",
			Symbol:           "ETH",
			NativeDecimals:   18,
			RPCURL:           "http://127.0.0.1:1/sepolia,http://127.0.0.1:1/sepolia-backup",
			ExplorerURL:      null.StringFrom("https://sepolia.etherscan.io"),
			ExplorerAPIURL:   null.StringFrom("http://127.0.0.1:1/etherscan"),
			PriceFeedID:      "ethereum",
			ReceivingAddress: null.StringFrom(FixtureReceivingAddress),
			IsActive:         true,
			IsTestnet:        true,
			CreatedAt:        FixtureTime,
			UpdatedAt:        FixtureTime,
		},
		{
			ChainID:        FixtureChainAmoy,
			Name:           "Polygon Amoy",
			Symbol:         "POL",
			NativeDecimals: 18,
			RPCURL:         "http://127.0.0.1:1/amoy",
			PriceFeedID:    "polygon-ecosystem-token",
			IsActive:       true,
			IsTestnet:      true,
			CreatedAt:      FixtureTime,
			UpdatedAt:      FixtureTime,
		},
		{
			ChainID:          FixtureChainInactive,
			Name:             "Ethereum",
			Symbol:           "ETH",
			NativeDecimals:   18,
			RPCURL:           "http://127.0.0.1:1/mainnet",
			PriceFeedID:      "ethereum",
			ReceivingAddress: null.StringFrom(FixtureReceivingAddress),
			IsActive:         false,
			CreatedAt:        FixtureTime,
			UpdatedAt:        FixtureTime,
		},
	}
}

// SeedChainsFilePath returns the chains file shipped in assets/.
func SeedChainsFilePath() string {
	return filepath.Join(util.GetProjectRootDir(), "assets", "chains.toml")
}
