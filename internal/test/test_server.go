package test

import (
	"database/sql"
	"testing"

	"github.com/arcregistry/wallet-activation/internal/activation/verify"
	"github.com/arcregistry/wallet-activation/internal/api"
	"github.com/arcregistry/wallet-activation/internal/api/router"
	"github.com/arcregistry/wallet-activation/internal/chain"
	"github.com/arcregistry/wallet-activation/internal/config"
	"github.com/arcregistry/wallet-activation/internal/data/store"
	"github.com/arcregistry/wallet-activation/internal/i18n"
	"github.com/arcregistry/wallet-activation/internal/metrics"
	"github.com/arcregistry/wallet-activation/internal/wallet"
)

// DefaultTestConfig returns the environment config adjusted for test servers.
func DefaultTestConfig() config.Server {
	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Activation.DefaultChainID = FixtureChainSepolia
	cfg.Activation.RateLimitPerSecond = 0
	cfg.Echo.EnableLoggerMiddleware = false

	return cfg
}

// WithTestServer returns a fully configured server backed by a fresh test database.
// Activation uses StubQuoter and StubVerifier so no external service is contacted.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()

	WithTestServerConfigurable(t, DefaultTestConfig(), closure)
}

func WithTestServerConfigurable(t *testing.T, cfg config.Server, closure func(s *api.Server)) {
	t.Helper()

	WithTestDatabase(t, func(db *sql.DB) {
		t.Helper()

		s, err := api.InitNewServerWithDB(cfg, db, t)
		if err != nil {
			t.Fatalf("Failed to init server: %v", err)
		}

		svc, _ := NewTestActivation(t, store.New(db))
		s.Activation = svc

		if err := router.Init(s); err != nil {
			t.Fatalf("Failed to init router: %v", err)
		}

		closure(s)
	})
}

// WithMemServer runs closure with a server that keeps its state in a MemStore.
// It needs no database; s.DB stays nil so readiness probes report not ready.
func WithMemServer(t *testing.T, closure func(s *api.Server, m *MemStore, deps *ActivationDeps)) {
	t.Helper()

	cfg := DefaultTestConfig()
	m := NewMemStoreWithFixtures()

	s := api.NewServer(cfg)

	i18nService, err := i18n.New(cfg)
	if err != nil {
		t.Fatalf("Failed to init i18n: %v", err)
	}

	metricsService, err := metrics.New(cfg, nil)
	if err != nil {
		t.Fatalf("Failed to init metrics: %v", err)
	}

	svc, deps := NewTestActivation(t, m)

	s.I18n = i18nService
	s.Metrics = metricsService
	s.Clock = deps.Clock
	s.Dialer = verify.NewEthDialer()
	s.Chains = chain.NewService(m)
	s.Wallets = wallet.NewService(m, deps.Clock)
	s.Activation = svc

	if err := router.Init(s); err != nil {
		t.Fatalf("Failed to init router: %v", err)
	}

	closure(s, m, deps)
}
