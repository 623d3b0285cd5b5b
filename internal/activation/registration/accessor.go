package registration

import (
	"context"
	"time"

	"github.com/arcregistry/wallet-activation/internal/data"
	"github.com/arcregistry/wallet-activation/internal/util"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Store is the persistence the accessor needs. store.Postgres implements it.
type Store interface {
	LatestRegistration(ctx context.Context, walletAddress string, chainID int) (*data.Registration, error)
	LatestRegistrationForWallet(ctx context.Context, walletAddress string) (*data.Registration, error)
	RegistrationByID(ctx context.Context, id int64) (*data.Registration, error)
	InsertRegistration(ctx context.Context, reg *data.Registration) error
	UpdatePendingRegistration(ctx context.Context, id int64, amount decimal.Decimal, validTo time.Time) (bool, error)
	ConfirmRegistration(ctx context.Context, id int64, txHash string) (bool, error)
}

// Accessor serializes all writes to registrations through the (wallet, chain)
// uniqueness constraint of the store. It keeps no in-process locks, so any
// number of instances may run side by side.
type Accessor struct {
	store Store
}

func NewAccessor(store Store) *Accessor {
	return &Accessor{store: store}
}

// Latest returns the most recent registration of the wallet on the chain, regardless of validity.
// Returns data.ErrNotFound if the wallet never registered on the chain.
func (a *Accessor) Latest(ctx context.Context, walletAddress string, chainID int) (*data.Registration, error) {
	reg, err := a.store.LatestRegistration(ctx, data.NormalizeAddress(walletAddress), chainID)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return nil, err
		}
		return nil, errors.Wrap(err, "failed to load latest registration")
	}

	return reg, nil
}

// LatestForWallet returns the most recently touched registration of the wallet on any chain.
func (a *Accessor) LatestForWallet(ctx context.Context, walletAddress string) (*data.Registration, error) {
	reg, err := a.store.LatestRegistrationForWallet(ctx, data.NormalizeAddress(walletAddress))
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return nil, err
		}
		return nil, errors.Wrap(err, "failed to load latest registration of wallet")
	}

	return reg, nil
}

// UpsertLiveRegistration makes sure the wallet has exactly one registration on the chain
// quoting amount until validTo. An existing unconfirmed row is updated in place, a
// confirmed row is returned unchanged. created reports whether a new row was inserted.
// Concurrent callers for the same (wallet, chain) all end up with the same row.
func (a *Accessor) UpsertLiveRegistration(ctx context.Context, walletAddress string, chainID int, amount decimal.Decimal, validTo time.Time) (reg *data.Registration, created bool, err error) {
	walletAddress = data.NormalizeAddress(walletAddress)
	log := util.LogFromContext(ctx).With().
		Str("wallet_address", walletAddress).
		Int("chain_id", chainID).
		Logger()

	existing, err := a.store.LatestRegistration(ctx, walletAddress, chainID)
	if err != nil && !errors.Is(err, data.ErrNotFound) {
		return nil, false, errors.Wrap(err, "failed to load registration")
	}

	if existing != nil {
		reg, err = a.refresh(ctx, existing, amount, validTo)
		return reg, false, err
	}

	reg = &data.Registration{
		WalletAddress: walletAddress,
		ChainID:       chainID,
		CryptoAmount:  amount,
		ValidTo:       validTo,
	}

	err = a.store.InsertRegistration(ctx, reg)
	if err == nil {
		log.Debug().Int64("registration_id", reg.ID).Msg("Registration created")
		return reg, true, nil
	}

	if !errors.Is(err, data.ErrUniqueViolation) {
		return nil, false, errors.Wrap(err, "failed to insert registration")
	}

	// A concurrent request inserted the row first, continue with the winner.
	log.Debug().Msg("Registration insert lost to concurrent request, re-reading")

	winner, err := a.store.LatestRegistration(ctx, walletAddress, chainID)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to re-read registration after conflict")
	}

	reg, err = a.refresh(ctx, winner, amount, validTo)
	return reg, false, err
}

func (a *Accessor) refresh(ctx context.Context, existing *data.Registration, amount decimal.Decimal, validTo time.Time) (*data.Registration, error) {
	if existing.Confirmed {
		return existing, nil
	}

	updated, err := a.store.UpdatePendingRegistration(ctx, existing.ID, amount, validTo)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update registration %d", existing.ID)
	}

	reg, err := a.store.RegistrationByID(ctx, existing.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to reload registration %d", existing.ID)
	}

	if !updated && !reg.Confirmed {
		return nil, errors.Errorf("registration %d was neither updated nor confirmed", existing.ID)
	}

	return reg, nil
}

// MarkConfirmed flips the registration to confirmed exactly once. It reports whether
// this call performed the transition; confirming an already confirmed row is a no-op.
func (a *Accessor) MarkConfirmed(ctx context.Context, registrationID int64, txHash string) (bool, error) {
	confirmed, err := a.store.ConfirmRegistration(ctx, registrationID, txHash)
	if err != nil {
		return false, errors.Wrapf(err, "failed to confirm registration %d", registrationID)
	}

	if !confirmed {
		util.LogFromContext(ctx).Debug().
			Int64("registration_id", registrationID).
			Str("tx_hash", txHash).
			Msg("Registration already confirmed, skipping")
	}

	return confirmed, nil
}
