package data

import (
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"
)

// Chain is the endpoint set of one supported chain. Rows are maintained by operators
// (see `app db seed`) and only read while serving requests.
type Chain struct {
	ChainID          int         `boil:"chain_id" json:"chainId" toml:"chain_id"`
	Name             string      `boil:"name" json:"name" toml:"name"`
	Symbol           string      `boil:"symbol" json:"symbol" toml:"symbol"`
	NativeDecimals   int         `boil:"native_decimals" json:"nativeDecimals" toml:"native_decimals"`
	RPCURL           string      `boil:"rpc_url" json:"-" toml:"rpc_url"`
	ExplorerURL      null.String `boil:"explorer_url" json:"explorerUrl,omitempty" toml:"explorer_url"`
	ExplorerAPIURL   null.String `boil:"explorer_api_url" json:"-" toml:"explorer_api_url"`
	ExplorerAPIKey   null.String `boil:"explorer_api_key" json:"-" toml:"explorer_api_key"`
	PriceFeedID      string      `boil:"price_feed_id" json:"priceFeedId" toml:"price_feed_id"`
	ReceivingAddress null.String `boil:"receiving_address" json:"receivingAddress,omitempty" toml:"receiving_address"`
	IsActive         bool        `boil:"is_active" json:"isActive" toml:"is_active"`
	IsTestnet        bool        `boil:"is_testnet" json:"isTestnet" toml:"is_testnet"`
	IconURL          null.String `boil:"icon_url" json:"iconUrl,omitempty" toml:"icon_url"`
	CreatedAt        time.Time   `boil:"created_at" json:"createdAt" toml:"-"`
	UpdatedAt        time.Time   `boil:"updated_at" json:"updatedAt" toml:"-"`
}

// Wallet holds the onboarding state of a self-custodied wallet.
type Wallet struct {
	WalletAddress  string    `boil:"wallet_address" json:"walletAddress"`
	FeePaid        bool      `boil:"fee_paid" json:"feePaid"`
	SetupStep      int       `boil:"setup_step" json:"setupStep"`
	SetupCompleted bool      `boil:"setup_completed" json:"setupCompleted"`
	LastLogin      null.Time `boil:"last_login" json:"lastLogin,omitempty"`
	CreatedAt      time.Time `boil:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `boil:"updated_at" json:"updatedAt"`
}

// Registration is the quoted activation fee of a wallet on one chain.
// There is at most one row per (wallet, chain).
type Registration struct {
	ID            int64           `boil:"id" json:"id"`
	WalletAddress string          `boil:"wallet_address" json:"walletAddress"`
	ChainID       int             `boil:"chain_id" json:"chainId"`
	CryptoAmount  decimal.Decimal `boil:"crypto_amount" json:"cryptoAmount"`
	ValidTo       time.Time       `boil:"valid_to" json:"validTo"`
	Confirmed     bool            `boil:"confirmed" json:"confirmed"`
	TxHash        null.String     `boil:"tx_hash" json:"txHash,omitempty"`
	CreatedAt     time.Time       `boil:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `boil:"updated_at" json:"updatedAt"`
}

// IsLive reports whether the registration still accepts payments at now.
// valid_to itself is inclusive.
func (r *Registration) IsLive(now time.Time) bool {
	return !r.Confirmed && !now.After(r.ValidTo)
}

// NormalizeAddress returns the canonical (lowercased, trimmed) representation
// of an EVM address as it is stored.
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
