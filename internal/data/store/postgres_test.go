package store_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/arcregistry/wallet-activation/internal/data"
	"github.com/arcregistry/wallet-activation/internal/data/store"
	"github.com/arcregistry/wallet-activation/internal/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChains(t *testing.T) {
	test.WithTestDatabase(t, func(db *sql.DB) {
		ctx := context.Background()
		st := store.New(db)

		active, err := st.ActiveChains(ctx)
		require.NoError(t, err)
		require.Len(t, active, 2)
		assert.Equal(t, test.FixtureChainAmoy, active[0].ChainID)
		assert.Equal(t, test.FixtureChainSepolia, active[1].ChainID)

		c, err := st.ChainByID(ctx, test.FixtureChainSepolia)
		require.NoError(t, err)
		assert.Equal(t, test.FixtureReceivingAddress, c.ReceivingAddress.String)
		assert.Equal(t, "ethereum", c.PriceFeedID)

		_, err = st.ChainByID(ctx, 424242)
		assert.ErrorIs(t, err, data.ErrNotFound)
	})
}

func TestRegistrationLifecycle(t *testing.T) {
	test.WithTestDatabase(t, func(db *sql.DB) {
		ctx := context.Background()
		st := store.New(db)

		_, err := st.LatestRegistration(ctx, test.FixtureWalletAddress, test.FixtureChainSepolia)
		require.ErrorIs(t, err, data.ErrNotFound)

		validTo := time.Now().Add(time.Hour).UTC().Truncate(time.Microsecond)
		reg := &data.Registration{
			WalletAddress: test.FixtureWalletAddress,
			ChainID:       test.FixtureChainSepolia,
			CryptoAmount:  decimal.RequireFromString(test.FixtureQuotedAmount),
			ValidTo:       validTo,
		}
		require.NoError(t, st.InsertRegistration(ctx, reg))
		assert.NotZero(t, reg.ID)
		assert.False(t, reg.Confirmed)

		dup := *reg
		assert.ErrorIs(t, st.InsertRegistration(ctx, &dup), data.ErrUniqueViolation)

		updated, err := st.UpdatePendingRegistration(ctx, reg.ID, decimal.RequireFromString("0.002"), validTo.Add(time.Hour))
		require.NoError(t, err)
		assert.True(t, updated)

		latest, err := st.LatestRegistration(ctx, test.FixtureWalletAddress, test.FixtureChainSepolia)
		require.NoError(t, err)
		assert.Equal(t, reg.ID, latest.ID)
		assert.True(t, decimal.RequireFromString("0.002").Equal(latest.CryptoAmount))

		confirmed, err := st.ConfirmRegistration(ctx, reg.ID, test.FixturePaidTxHash)
		require.NoError(t, err)
		assert.True(t, confirmed)

		confirmed, err = st.ConfirmRegistration(ctx, reg.ID, test.FixturePaidTxHash)
		require.NoError(t, err)
		assert.False(t, confirmed, "a registration is only confirmed once")

		updated, err = st.UpdatePendingRegistration(ctx, reg.ID, decimal.RequireFromString("1"), validTo)
		require.NoError(t, err)
		assert.False(t, updated, "confirmed registrations are never re-quoted")

		byID, err := st.RegistrationByID(ctx, reg.ID)
		require.NoError(t, err)
		assert.True(t, byID.Confirmed)
		assert.Equal(t, test.FixturePaidTxHash, byID.TxHash.String)

		forWallet, err := st.LatestRegistrationForWallet(ctx, test.FixtureWalletAddress)
		require.NoError(t, err)
		assert.Equal(t, reg.ID, forWallet.ID)
	})
}

func TestPromoteWalletOnce(t *testing.T) {
	test.WithTestDatabase(t, func(db *sql.DB) {
		ctx := context.Background()
		st := store.New(db)

		w, err := st.EnsureWallet(ctx, test.FixtureWalletAddress, test.FixtureTime)
		require.NoError(t, err)
		assert.False(t, w.FeePaid)
		assert.Equal(t, 0, w.SetupStep)
		assert.True(t, w.LastLogin.Valid)

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			promoted int
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ok, err := st.PromoteWallet(ctx, test.FixtureWalletAddress)
				assert.NoError(t, err)
				if ok {
					mu.Lock()
					promoted++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, promoted)

		w, err = st.GetWallet(ctx, test.FixtureWalletAddress)
		require.NoError(t, err)
		assert.True(t, w.FeePaid)
		assert.Equal(t, 1, w.SetupStep)
	})
}

func TestSeedChainsFileUpserts(t *testing.T) {
	test.WithTestDatabase(t, func(db *sql.DB) {
		ctx := context.Background()
		st := store.New(db)

		n, err := st.SeedChainsFile(ctx, test.SeedChainsFilePath())
		require.NoError(t, err)
		assert.Positive(t, n)

		c, err := st.ChainByID(ctx, test.FixtureChainSepolia)
		require.NoError(t, err)
		assert.False(t, c.ReceivingAddress.Valid, "seed file replaces the fixture chain")
	})
}
