package registration_test

import (
	"sync"
	"testing"
	"time"

	"github.com/arcregistry/wallet-activation/internal/activation/registration"
	"github.com/arcregistry/wallet-activation/internal/data"
	"github.com/arcregistry/wallet-activation/internal/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	walletA = "0xAaAa000000000000000000000000000000000001"
	sepolia = 11155111
)

func TestUpsertLiveRegistrationCreatesThenUpdates(t *testing.T) {
	store := test.NewMemStore()
	acc := registration.NewAccessor(store)
	ctx := t.Context()

	validTo := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	reg, created, err := acc.UpsertLiveRegistration(ctx, walletA, sepolia, decimal.RequireFromString("0.00125"), validTo)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, data.NormalizeAddress(walletA), reg.WalletAddress)
	assert.True(t, decimal.RequireFromString("0.00125").Equal(reg.CryptoAmount))

	reg2, created, err := acc.UpsertLiveRegistration(ctx, walletA, sepolia, decimal.RequireFromString("0.0013"), validTo.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, reg.ID, reg2.ID)
	assert.True(t, decimal.RequireFromString("0.0013").Equal(reg2.CryptoAmount))
	assert.Equal(t, validTo.Add(time.Hour), reg2.ValidTo)

	assert.Len(t, store.Registrations(), 1)
}

func TestUpsertLiveRegistrationNeverReopensConfirmed(t *testing.T) {
	store := test.NewMemStore()
	acc := registration.NewAccessor(store)
	ctx := t.Context()

	validTo := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	reg, _, err := acc.UpsertLiveRegistration(ctx, walletA, sepolia, decimal.RequireFromString("1"), validTo)
	require.NoError(t, err)

	ok, err := acc.MarkConfirmed(ctx, reg.ID, "0xhash")
	require.NoError(t, err)
	require.True(t, ok)

	again, created, err := acc.UpsertLiveRegistration(ctx, walletA, sepolia, decimal.RequireFromString("2"), validTo.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, again.Confirmed)
	assert.True(t, decimal.RequireFromString("1").Equal(again.CryptoAmount))
	assert.Equal(t, "0xhash", again.TxHash.String)
}

func TestMarkConfirmedIsIdempotent(t *testing.T) {
	store := test.NewMemStore()
	acc := registration.NewAccessor(store)
	ctx := t.Context()

	reg, _, err := acc.UpsertLiveRegistration(ctx, walletA, sepolia, decimal.RequireFromString("1"), time.Now().Add(time.Hour))
	require.NoError(t, err)

	first, err := acc.MarkConfirmed(ctx, reg.ID, "0x01")
	require.NoError(t, err)
	assert.True(t, first)

	second, err := acc.MarkConfirmed(ctx, reg.ID, "0x02")
	require.NoError(t, err)
	assert.False(t, second)

	latest, err := acc.Latest(ctx, walletA, sepolia)
	require.NoError(t, err)
	assert.Equal(t, "0x01", latest.TxHash.String)
}

func TestUpsertLiveRegistrationConcurrent(t *testing.T) {
	const m = 16

	store := test.NewMemStore()
	store.HoldInserts(m)
	acc := registration.NewAccessor(store)
	ctx := t.Context()

	validTo := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	ids := make([]int64, m)
	errs := make([]error, m)
	createdCount := 0
	var mu sync.Mutex

	for i := 0; i < m; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			reg, created, err := acc.UpsertLiveRegistration(ctx, walletA, sepolia, decimal.NewFromInt(int64(i+1)), validTo)
			errs[i] = err
			if err != nil {
				return
			}
			ids[i] = reg.ID

			if created {
				mu.Lock()
				createdCount++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	regs := store.Registrations()
	require.Len(t, regs, 1)
	for _, id := range ids {
		assert.Equal(t, regs[0].ID, id)
	}

	assert.Equal(t, 1, createdCount)
	assert.Equal(t, int64(m-1), store.Conflicts())
}

func TestLatestNotFound(t *testing.T) {
	acc := registration.NewAccessor(test.NewMemStore())

	_, err := acc.Latest(t.Context(), walletA, sepolia)
	assert.ErrorIs(t, err, data.ErrNotFound)

	_, err = acc.LatestForWallet(t.Context(), walletA)
	assert.ErrorIs(t, err, data.ErrNotFound)
}
