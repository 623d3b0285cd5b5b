package test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/arcregistry/wallet-activation/internal/activation"
	"github.com/arcregistry/wallet-activation/internal/activation/registration"
	"github.com/arcregistry/wallet-activation/internal/activation/verify"
	"github.com/arcregistry/wallet-activation/internal/chain"
	"github.com/arcregistry/wallet-activation/internal/data"
	"github.com/arcregistry/wallet-activation/internal/data/store"
	"github.com/arcregistry/wallet-activation/internal/wallet"
	"github.com/dropbox/godropbox/time2"
	"github.com/shopspring/decimal"
)

// StubQuoter returns a fixed amount instead of asking a price feed.
type StubQuoter struct {
	mu     sync.Mutex
	Amount decimal.Decimal
	Err    error
}

func NewStubQuoter() *StubQuoter {
	return &StubQuoter{Amount: decimal.RequireFromString(FixtureQuotedAmount)}
}

func (q *StubQuoter) Quote(_ context.Context, _ decimal.Decimal, _ string, _ string) (decimal.Decimal, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.Err != nil {
		return decimal.Zero, q.Err
	}

	return q.Amount, nil
}

func (q *StubQuoter) SetErr(err error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.Err = err
}

// StubVerifier knows a fixed set of paid transactions. Unknown hashes are reported
// as not found, known ones are checked against recipient and amount.
type StubVerifier struct {
	mu    sync.Mutex
	paid  map[string]decimal.Decimal
	calls int
}

func NewStubVerifier() *StubVerifier {
	return &StubVerifier{paid: map[string]decimal.Decimal{
		FixturePaidTxHash: decimal.RequireFromString(FixtureQuotedAmount),
	}}
}

func (v *StubVerifier) Pay(txHash string, amount decimal.Decimal) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.paid[txHash] = amount
}

func (v *StubVerifier) Calls() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.calls
}

func (v *StubVerifier) Verify(_ context.Context, req verify.Request) verify.Result {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.calls++

	amount, ok := v.paid[req.TxHash]
	switch {
	case !ok:
		return verify.Result{Reason: verify.ReasonNotFound}
	case req.ToAddress != FixtureReceivingAddress:
		return verify.Result{Reason: verify.ReasonRecipientMismatch, Source: verify.SourcePrimaryRPC}
	case amount.LessThan(req.ExpectedAmount):
		return verify.Result{Reason: verify.ReasonAmountInsufficient, Source: verify.SourcePrimaryRPC}
	}

	return verify.Result{Matched: true, Source: verify.SourcePrimaryRPC}
}

// ActivationStores is implemented by store.Postgres and MemStore.
type ActivationStores interface {
	chain.Store
	registration.Store
	wallet.Store
}

// ActivationDeps are the collaborators of an activation service built by NewTestActivation.
type ActivationDeps struct {
	Clock    *time2.MockClock
	Quoter   *StubQuoter
	Verifier *StubVerifier
}

// NewTestActivation builds an activation service on st with stubbed quoter and verifier.
func NewTestActivation(t *testing.T, st ActivationStores) (*activation.Service, *ActivationDeps) {
	t.Helper()

	deps := &ActivationDeps{
		Clock:    time2.NewMockClock(FixtureTime),
		Quoter:   NewStubQuoter(),
		Verifier: NewStubVerifier(),
	}

	svc, err := activation.NewService(
		activation.Config{
			FeeFiatAmount:        decimal.NewFromInt(5),
			FiatCurrency:         "usd",
			RegistrationValidity: time.Hour,
			DefaultChainID:       FixtureChainSepolia,
		},
		deps.Clock,
		chain.NewService(st),
		registration.NewAccessor(st),
		wallet.NewService(st, deps.Clock),
		deps.Quoter,
		deps.Verifier,
	)
	if err != nil {
		t.Fatalf("Failed to create activation service: %v", err)
	}

	return svc, deps
}

// WithTestActivation runs closure with an activation service backed by a fresh test database.
func WithTestActivation(t *testing.T, closure func(svc *activation.Service, deps *ActivationDeps, db *sql.DB)) {
	t.Helper()

	WithTestDatabase(t, func(db *sql.DB) {
		t.Helper()

		svc, deps := NewTestActivation(t, store.New(db))
		closure(svc, deps, db)
	})
}

// NewMemStoreWithFixtures returns a MemStore holding FixtureChains.
func NewMemStoreWithFixtures() *MemStore {
	m := NewMemStore()
	for _, c := range FixtureChains() {
		m.PutChain(c)
	}

	return m
}

// FixtureRegistration returns a pending registration of FixtureWalletAddress on Sepolia.
func FixtureRegistration(validTo time.Time) *data.Registration {
	return &data.Registration{
		WalletAddress: FixtureWalletAddress,
		ChainID:       FixtureChainSepolia,
		CryptoAmount:  decimal.RequireFromString(FixtureQuotedAmount),
		ValidTo:       validTo,
	}
}
