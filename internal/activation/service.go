package activation

import (
	"context"

	"github.com/arcregistry/wallet-activation/internal/activation/registration"
	"github.com/arcregistry/wallet-activation/internal/activation/verify"
	"github.com/arcregistry/wallet-activation/internal/chain"
	"github.com/arcregistry/wallet-activation/internal/data"
	"github.com/arcregistry/wallet-activation/internal/util"
	"github.com/arcregistry/wallet-activation/internal/wallet"
	"github.com/dropbox/godropbox/time2"
	"github.com/kat-co/vala"
	"github.com/pkg/errors"
)

// Service drives a wallet through registration, payment verification and promotion.
// All state lives in the store; any number of instances may serve the same wallet.
type Service struct {
	config        Config
	clock         time2.Clock
	chains        chain.Service
	registrations *registration.Accessor
	wallets       wallet.Service
	quoter        Quoter
	verifier      Verifier
}

func NewService(
	config Config,
	clock time2.Clock,
	chains chain.Service,
	registrations *registration.Accessor,
	wallets wallet.Service,
	quoter Quoter,
	verifier Verifier,
) (*Service, error) {
	err := vala.BeginValidation().Validate(
		vala.IsNotNil(clock, "clock"),
		vala.IsNotNil(chains, "chains"),
		vala.IsNotNil(registrations, "registrations"),
		vala.IsNotNil(wallets, "wallets"),
		vala.IsNotNil(quoter, "quoter"),
		vala.IsNotNil(verifier, "verifier"),
		vala.StringNotEmpty(config.FiatCurrency, "config.FiatCurrency"),
		vala.GreaterThan(int(config.RegistrationValidity.Seconds()), 0, "config.RegistrationValidity"),
	).Check()
	if err != nil {
		return nil, errors.Wrap(err, "invalid activation service parameters")
	}

	if !config.FeeFiatAmount.IsPositive() {
		return nil, errors.Errorf("activation fee must be positive, got %s", config.FeeFiatAmount)
	}

	return &Service{
		config:        config,
		clock:         clock,
		chains:        chains,
		registrations: registrations,
		wallets:       wallets,
		quoter:        quoter,
		verifier:      verifier,
	}, nil
}

type selectedChain struct {
	chain     *data.Chain
	endpoints chain.EndpointSet
	active    []*data.Chain
}

// Check registers the wallet on the chain, verifies a submitted payment or reports
// the pending registration, depending on the current state.
func (s *Service) Check(ctx context.Context, req CheckRequest) (*Result, error) {
	walletAddress := data.NormalizeAddress(req.WalletAddress)
	log := util.LogFromContext(ctx).With().Str("wallet_address", walletAddress).Logger()

	sel, err := s.resolveChain(ctx, req.ChainID)
	if err != nil {
		return nil, err
	}

	latest, err := s.registrations.Latest(ctx, walletAddress, sel.chain.ChainID)
	if err != nil && !errors.Is(err, data.ErrNotFound) {
		return nil, err
	}

	now := s.clock.Now()

	switch {
	case latest != nil && latest.Confirmed:
		return s.confirmed(ctx, walletAddress, sel, latest)

	case latest != nil && latest.IsLive(now) && req.TransactionHash != "":
		return s.verifyAndConfirm(ctx, walletAddress, sel, latest, req.TransactionHash)

	case latest != nil && latest.IsLive(now):
		return s.result(StatusAwaitingPayment, walletAddress, sel, latest), nil
	}

	if req.TransactionHash != "" {
		log.Info().Str("tx_hash", req.TransactionHash).Msg("Ignoring transaction hash, registration expired or missing, quoting again")
	}

	amount, err := s.quoter.Quote(ctx, s.config.FeeFiatAmount, s.config.FiatCurrency, sel.chain.PriceFeedID)
	if err != nil {
		return nil, err
	}

	if _, err := s.wallets.Ensure(ctx, walletAddress); err != nil {
		return nil, err
	}

	reg, created, err := s.registrations.UpsertLiveRegistration(ctx, walletAddress, sel.chain.ChainID, amount, now.Add(s.config.RegistrationValidity))
	if err != nil {
		return nil, err
	}

	// confirmed concurrently by another request
	if reg.Confirmed {
		return s.confirmed(ctx, walletAddress, sel, reg)
	}

	status := StatusRegistrationUpdated
	if created {
		status = StatusRegistrationCreated
	}

	log.Info().
		Int("chain_id", sel.chain.ChainID).
		Str("status", status.String()).
		Str("crypto_amount", reg.CryptoAmount.String()).
		Time("valid_to", reg.ValidTo).
		Msg("Activation fee quoted")

	return s.result(status, walletAddress, sel, reg), nil
}

// ManualVerify verifies txHash against the most recent registration of the wallet,
// even if its validity window already passed.
func (s *Service) ManualVerify(ctx context.Context, req ManualVerifyRequest) (*Result, error) {
	walletAddress := data.NormalizeAddress(req.WalletAddress)

	sel, err := s.resolveChain(ctx, req.ChainID)
	if err != nil {
		return nil, err
	}

	latest, err := s.registrations.Latest(ctx, walletAddress, sel.chain.ChainID)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}

	if latest.Confirmed {
		return s.confirmed(ctx, walletAddress, sel, latest)
	}

	return s.verifyAndConfirm(ctx, walletAddress, sel, latest, req.TransactionHash)
}

// PaymentStatus reports the wallet-level payment state without contacting any chain.
func (s *Service) PaymentStatus(ctx context.Context, walletAddress string) (*Result, error) {
	walletAddress = data.NormalizeAddress(walletAddress)
	feePaid := false

	w, err := s.wallets.Get(ctx, walletAddress)
	if err != nil && !errors.Is(err, wallet.ErrWalletNotFound) {
		return nil, err
	}
	if w != nil {
		feePaid = w.FeePaid
	}

	latest, err := s.registrations.LatestForWallet(ctx, walletAddress)
	if err != nil && !errors.Is(err, data.ErrNotFound) {
		return nil, err
	}

	res := &Result{
		Status:        StatusNoRegistration,
		WalletAddress: walletAddress,
		FeePaid:       &feePaid,
	}

	if latest != nil && (latest.Confirmed || latest.IsLive(s.clock.Now())) {
		c, err := s.chains.GetChain(ctx, latest.ChainID)
		if err != nil && !errors.Is(err, chain.ErrChainNotFound) {
			return nil, err
		}
		if c != nil {
			res.Chain = c
			res.ReceivingAddress = chain.Endpoints(c).ReceivingAddress
		}
		res.Registration = latest
		res.Status = StatusAwaitingPayment
	}

	if feePaid || (latest != nil && latest.Confirmed) {
		res.Status = StatusPaymentConfirmed
	}

	return res, nil
}

func (s *Service) verifyAndConfirm(ctx context.Context, walletAddress string, sel *selectedChain, reg *data.Registration, txHash string) (*Result, error) {
	log := util.LogFromContext(ctx).With().
		Str("wallet_address", walletAddress).
		Int("chain_id", sel.chain.ChainID).
		Int64("registration_id", reg.ID).
		Str("tx_hash", txHash).
		Logger()

	verification := s.verifier.Verify(ctx, verify.Request{
		TxHash:         txHash,
		FromAddress:    walletAddress,
		ToAddress:      sel.endpoints.ReceivingAddress,
		ExpectedAmount: reg.CryptoAmount,
		Chain:          sel.endpoints,
	})

	if !verification.Matched {
		log.Info().
			Str("reason", verification.Reason.String()).
			Str("source", verification.Source).
			Msg("Payment not verified")

		res := s.result(StatusAwaitingPayment, walletAddress, sel, reg)
		res.Reason = verification.Reason
		return res, nil
	}

	confirmedNow, err := s.registrations.MarkConfirmed(ctx, reg.ID, txHash)
	if err != nil {
		return nil, err
	}

	// A failed promotion is retried by the next request, which finds the registration confirmed.
	promoted, err := s.wallets.PromoteOnPayment(ctx, walletAddress)
	if err != nil {
		return nil, err
	}

	updated, err := s.registrations.Latest(ctx, walletAddress, sel.chain.ChainID)
	if err != nil {
		return nil, err
	}

	status := StatusPaymentConfirmed
	if confirmedNow {
		status = StatusPaymentVerified
		log.Info().Str("source", verification.Source).Msg("Activation payment verified")
	}

	res := s.result(status, walletAddress, sel, updated)
	res.Promoted = promoted

	return res, nil
}

func (s *Service) confirmed(ctx context.Context, walletAddress string, sel *selectedChain, reg *data.Registration) (*Result, error) {
	promoted, err := s.wallets.PromoteOnPayment(ctx, walletAddress)
	if err != nil {
		return nil, err
	}

	feePaid := true
	res := s.result(StatusPaymentConfirmed, walletAddress, sel, reg)
	res.FeePaid = &feePaid
	res.Promoted = promoted

	return res, nil
}

func (s *Service) result(status Status, walletAddress string, sel *selectedChain, reg *data.Registration) *Result {
	return &Result{
		Status:           status,
		WalletAddress:    walletAddress,
		Registration:     reg,
		ReceivingAddress: sel.endpoints.ReceivingAddress,
		Chain:            sel.chain,
		AvailableChains:  sel.active,
	}
}

// resolveChain selects the explicitly requested chain, else the configured default,
// else the first active chain.
func (s *Service) resolveChain(ctx context.Context, chainID *int) (*selectedChain, error) {
	log := util.LogFromContext(ctx)

	active, err := s.chains.GetActiveChains(ctx)
	if err != nil {
		return nil, err
	}

	var selected *data.Chain

	switch {
	case chainID != nil:
		selected, err = s.activeChain(ctx, *chainID)
		if err != nil {
			return nil, err
		}

	case s.config.DefaultChainID != 0:
		selected, err = s.activeChain(ctx, s.config.DefaultChainID)
		if err != nil && !errors.Is(err, ErrUnknownChain) {
			return nil, err
		}
		if selected == nil {
			log.Warn().Int("default_chain_id", s.config.DefaultChainID).Msg("Configured default chain is not available, using first active chain")
		}
	}

	if selected == nil {
		if len(active) == 0 {
			log.Error().Msg("No active chain configured")
			return nil, ErrChainUnavailable
		}
		selected = active[0]
	}

	endpoints := chain.Endpoints(selected)
	if !endpoints.HasReceivingAddress() {
		log.Error().Int("chain_id", selected.ChainID).Msg("Chain has no receiving address configured")
		return nil, errors.Wrapf(ErrConfiguration, "chain %d has no receiving address", selected.ChainID)
	}

	return &selectedChain{
		chain:     selected,
		endpoints: endpoints,
		active:    active,
	}, nil
}

func (s *Service) activeChain(ctx context.Context, chainID int) (*data.Chain, error) {
	c, err := s.chains.GetChain(ctx, chainID)
	if err != nil {
		if errors.Is(err, chain.ErrChainNotFound) {
			return nil, errors.Wrapf(ErrUnknownChain, "chain %d", chainID)
		}
		return nil, err
	}

	if !c.IsActive {
		return nil, errors.Wrapf(ErrUnknownChain, "chain %d is inactive", chainID)
	}

	return c, nil
}
