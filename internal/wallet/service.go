package wallet

import (
	"context"

	"github.com/arcregistry/wallet-activation/internal/data"
	"github.com/arcregistry/wallet-activation/internal/util"
	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
)

// Service provides wallet onboarding state management
type Service interface {
	// Ensure creates the wallet if it does not exist yet and refreshes its last login
	Ensure(ctx context.Context, walletAddress string) (*Wallet, error)

	// Get returns the wallet or ErrWalletNotFound
	Get(ctx context.Context, walletAddress string) (*Wallet, error)

	// PromoteOnPayment marks the activation fee as paid and unlocks the next setup step.
	// It never moves the setup step backwards and is safe to call any number of times.
	// Returns true only for the call which actually promoted the wallet.
	PromoteOnPayment(ctx context.Context, walletAddress string) (bool, error)
}

type service struct {
	store Store
	clock time2.Clock
}

// NewService creates a new wallet Service
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(store Store, clock time2.Clock) Service {
	return &service{
		store: store,
		clock: clock,
	}
}

// Ensure creates the wallet if it does not exist yet and refreshes its last login
func (s *service) Ensure(ctx context.Context, walletAddress string) (*Wallet, error) {
	walletAddress = data.NormalizeAddress(walletAddress)

	w, err := s.store.EnsureWallet(ctx, walletAddress, s.clock.Now())
	if err != nil {
		return nil, errors.Wrap(err, "failed to ensure wallet")
	}

	return FromModel(w), nil
}

// Get returns the wallet or ErrWalletNotFound
func (s *service) Get(ctx context.Context, walletAddress string) (*Wallet, error) {
	w, err := s.store.GetWallet(ctx, data.NormalizeAddress(walletAddress))
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, errors.Wrap(err, "failed to get wallet")
	}

	return FromModel(w), nil
}

// PromoteOnPayment marks the activation fee as paid and unlocks the next setup step
func (s *service) PromoteOnPayment(ctx context.Context, walletAddress string) (bool, error) {
	walletAddress = data.NormalizeAddress(walletAddress)
	log := util.LogFromContext(ctx).With().Str("wallet_address", walletAddress).Logger()

	promoted, err := s.store.PromoteWallet(ctx, walletAddress)
	if err != nil {
		log.Error().Err(err).Msg("Failed to promote wallet")
		return false, errors.Wrap(err, "failed to promote wallet")
	}

	if promoted {
		log.Info().Msg("Wallet promoted after activation payment")
	} else {
		log.Debug().Msg("Wallet already promoted")
	}

	return promoted, nil
}
