package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/arcregistry/wallet-activation/internal/test"
	"github.com/arcregistry/wallet-activation/internal/util/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countWallets(t *testing.T, sqlDB *sql.DB) int {
	t.Helper()

	var n int
	require.NoError(t, sqlDB.QueryRow(`SELECT count(*) FROM wallets`).Scan(&n))

	return n
}

func insertWallet(ctx context.Context, exec boil.ContextExecutor, address string) error {
	_, err := queries.Raw(`INSERT INTO wallets (wallet_address) VALUES ($1)`, address).ExecContext(ctx, exec)
	return err
}

func TestWithTransactionCommits(t *testing.T) {
	test.WithTestDatabase(t, func(sqlDB *sql.DB) {
		ctx := context.Background()

		err := db.WithTransaction(ctx, sqlDB, func(tx boil.ContextExecutor) error {
			return insertWallet(ctx, tx, test.FixtureWalletAddress)
		})
		require.NoError(t, err)

		assert.Equal(t, 1, countWallets(t, sqlDB))
	})
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	test.WithTestDatabase(t, func(sqlDB *sql.DB) {
		ctx := context.Background()
		errBoom := errors.New("boom")

		err := db.WithTransaction(ctx, sqlDB, func(tx boil.ContextExecutor) error {
			if err := insertWallet(ctx, tx, test.FixtureWalletAddress); err != nil {
				return err
			}
			return errBoom
		})
		require.ErrorIs(t, err, errBoom)

		assert.Equal(t, 0, countWallets(t, sqlDB))
	})
}

func TestWithTransactionRollsBackOnPanic(t *testing.T) {
	test.WithTestDatabase(t, func(sqlDB *sql.DB) {
		ctx := context.Background()

		assert.Panics(t, func() {
			_ = db.WithTransaction(ctx, sqlDB, func(tx boil.ContextExecutor) error {
				if err := insertWallet(ctx, tx, test.FixtureWalletAddress); err != nil {
					return err
				}
				panic("boom")
			})
		})

		assert.Equal(t, 0, countWallets(t, sqlDB))
	})
}
