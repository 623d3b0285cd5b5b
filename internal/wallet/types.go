package wallet

import (
	"context"
	"errors"
	"time"

	"github.com/arcregistry/wallet-activation/internal/data"
)

var ErrWalletNotFound = errors.New("wallet not found")

const (
	// SetupStepFeePaid is the onboarding step unlocked by the activation payment.
	SetupStepFeePaid = 1
)

// Store is the wallet persistence. store.Postgres implements it.
type Store interface {
	EnsureWallet(ctx context.Context, walletAddress string, now time.Time) (*data.Wallet, error)
	GetWallet(ctx context.Context, walletAddress string) (*data.Wallet, error)
	PromoteWallet(ctx context.Context, walletAddress string) (bool, error)
}

// Wallet represents the onboarding state of a wallet
type Wallet struct {
	Address        string
	FeePaid        bool
	SetupStep      int
	SetupCompleted bool
	LastLogin      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FromModel creates Wallet from data.Wallet
//
//nolint:varnamelen // m is a common abbreviation for model
func FromModel(m *data.Wallet) *Wallet {
	w := &Wallet{
		Address:        m.WalletAddress,
		FeePaid:        m.FeePaid,
		SetupStep:      m.SetupStep,
		SetupCompleted: m.SetupCompleted,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}

	if m.LastLogin.Valid {
		lastLogin := m.LastLogin.Time
		w.LastLogin = &lastLogin
	}

	return w
}
