package wallet_test

import (
	"sync"
	"testing"
	"time"

	"github.com/arcregistry/wallet-activation/internal/data"
	"github.com/arcregistry/wallet-activation/internal/test"
	"github.com/arcregistry/wallet-activation/internal/wallet"
	"github.com/dropbox/godropbox/time2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const walletA = "0xAaAa000000000000000000000000000000000001"

func TestEnsureCreatesAndRefreshesLastLogin(t *testing.T) {
	clock := time2.NewMockClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	svc := wallet.NewService(test.NewMemStore(), clock)
	ctx := t.Context()

	w, err := svc.Ensure(ctx, walletA)
	require.NoError(t, err)
	assert.Equal(t, data.NormalizeAddress(walletA), w.Address)
	assert.False(t, w.FeePaid)
	assert.Equal(t, 0, w.SetupStep)
	require.NotNil(t, w.LastLogin)
	assert.Equal(t, clock.Now(), *w.LastLogin)

	clock.Advance(time.Hour)

	w, err = svc.Ensure(ctx, walletA)
	require.NoError(t, err)
	assert.Equal(t, clock.Now(), *w.LastLogin)
}

func TestGetNotFound(t *testing.T) {
	svc := wallet.NewService(test.NewMemStore(), time2.DefaultClock)

	_, err := svc.Get(t.Context(), walletA)
	assert.ErrorIs(t, err, wallet.ErrWalletNotFound)
}

func TestPromoteOnPaymentIsMonotonic(t *testing.T) {
	store := test.NewMemStore()
	store.PutWallet(&data.Wallet{WalletAddress: data.NormalizeAddress(walletA), SetupStep: 3})
	svc := wallet.NewService(store, time2.DefaultClock)
	ctx := t.Context()

	promoted, err := svc.PromoteOnPayment(ctx, walletA)
	require.NoError(t, err)
	assert.True(t, promoted)

	w, err := svc.Get(ctx, walletA)
	require.NoError(t, err)
	assert.True(t, w.FeePaid)
	assert.Equal(t, 3, w.SetupStep, "setup step must never regress")
}

func TestPromoteOnPaymentConcurrent(t *testing.T) {
	store := test.NewMemStore()
	svc := wallet.NewService(store, time2.DefaultClock)
	ctx := t.Context()

	_, err := svc.Ensure(ctx, walletA)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.PromoteOnPayment(ctx, walletA)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), store.Promotions())

	w, err := svc.Get(ctx, walletA)
	require.NoError(t, err)
	assert.True(t, w.FeePaid)
	assert.Equal(t, wallet.SetupStepFeePaid, w.SetupStep)
}
