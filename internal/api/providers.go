package api

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/arcregistry/wallet-activation/internal/activation"
	"github.com/arcregistry/wallet-activation/internal/activation/quote"
	"github.com/arcregistry/wallet-activation/internal/activation/registration"
	"github.com/arcregistry/wallet-activation/internal/activation/verify"
	"github.com/arcregistry/wallet-activation/internal/chain"
	"github.com/arcregistry/wallet-activation/internal/config"
	"github.com/arcregistry/wallet-activation/internal/data/store"
	"github.com/arcregistry/wallet-activation/internal/i18n"
	"github.com/arcregistry/wallet-activation/internal/metrics"
	"github.com/arcregistry/wallet-activation/internal/wallet"
	"github.com/dropbox/godropbox/time2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// PROVIDERS - define here only providers that for various reasons (e.g. cyclic dependency) can't live in their corresponding packages
// or for wrapping providers that only accept sub-configs to prevent the requirement for defining providers for sub-configs.
// https://github.com/google/wire/blob/main/docs/guide.md#defining-providers

// NewClock returns the real clock, or a mock clock when running in a test.
//
//nolint:ireturn
func NewClock(t ...*testing.T) time2.Clock {
	if len(t) > 0 && t[0] != nil {
		return time2.NewMockClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	}

	return time2.DefaultClock
}

// NoTest is used by the production injector, which has no *testing.T to hand to NewClock.
func NoTest() []*testing.T {
	return nil
}

func NewDB(cfg config.Server) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func NewI18N(cfg config.Server) (*i18n.Service, error) {
	return i18n.New(cfg)
}

func NewMetrics(cfg config.Server, db *sql.DB) (*metrics.Service, error) {
	return metrics.New(cfg, db)
}

func NewStore(db *sql.DB) *store.Postgres {
	return store.New(db)
}

//nolint:ireturn
func NewChainService(st chain.Store) chain.Service {
	return chain.NewService(st)
}

func NewRegistrationAccessor(st registration.Store) *registration.Accessor {
	return registration.NewAccessor(st)
}

//nolint:ireturn
func NewWalletService(st wallet.Store, clock time2.Clock) wallet.Service {
	return wallet.NewService(st, clock)
}

func NewPriceFeed(cfg config.Server) *quote.CoinGecko {
	return quote.NewCoinGecko(cfg.Activation.PriceFeedURL, cfg.Activation.PriceFeedAPIKey, cfg.Activation.PriceFeedTimeout)
}

func NewQuoteCalculator(cfg config.Server, feed *quote.CoinGecko, clock time2.Clock) *quote.Calculator {
	return quote.NewCalculator(feed, clock, cfg.Activation.PriceFeedCacheTTL)
}

func NewEthDialer() *verify.EthDialer {
	return verify.NewEthDialer()
}

func NewVerifier(cfg config.Server, dialer *verify.EthDialer, m *metrics.Service) (*verify.Verifier, error) {
	return verify.New(dialer, &http.Client{}, m, verify.Options{
		SourceTimeout:        cfg.Activation.SourceTimeout,
		ToleranceBps:         cfg.Activation.ToleranceBps,
		BypassRecipientCheck: cfg.Activation.DevBypassRecipientCheck,
		Production:           cfg.Activation.IsProduction(),
	})
}

// ActivationConfig translates the environment config into the activation service config.
func ActivationConfig(cfg config.Server) (activation.Config, error) {
	fee, err := decimal.NewFromString(cfg.Activation.FeeFiatAmount)
	if err != nil {
		return activation.Config{}, errors.Wrapf(err, "invalid activation fee %q", cfg.Activation.FeeFiatAmount)
	}

	return activation.Config{
		FeeFiatAmount:        fee,
		FiatCurrency:         cfg.Activation.FiatCurrency,
		RegistrationValidity: cfg.Activation.RegistrationValidity,
		DefaultChainID:       cfg.Activation.DefaultChainID,
	}, nil
}

func NewActivationService(
	cfg config.Server,
	clock time2.Clock,
	chains chain.Service,
	registrations *registration.Accessor,
	wallets wallet.Service,
	calculator *quote.Calculator,
	verifier *verify.Verifier,
) (*activation.Service, error) {
	activationConfig, err := ActivationConfig(cfg)
	if err != nil {
		return nil, err
	}

	return activation.NewService(activationConfig, clock, chains, registrations, wallets, calculator, verifier)
}
