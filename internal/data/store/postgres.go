package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/arcregistry/wallet-activation/internal/data"
	"github.com/arcregistry/wallet-activation/internal/util/db"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const pgUniqueViolation = "23505"

// Postgres persists chains, wallets and registrations.
// All wallet addresses are expected to be normalized via data.NormalizeAddress.
type Postgres struct {
	db *sql.DB
}

func New(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) ChainByID(ctx context.Context, chainID int) (*data.Chain, error) {
	var chain data.Chain
	err := queries.Raw(`SELECT * FROM chains WHERE chain_id = $1`, chainID).Bind(ctx, p.db, &chain)
	if err != nil {
		return nil, translate(err, "failed to get chain")
	}

	return &chain, nil
}

func (p *Postgres) ActiveChains(ctx context.Context) ([]*data.Chain, error) {
	var chains []*data.Chain
	err := queries.Raw(`SELECT * FROM chains WHERE is_active = true ORDER BY chain_id ASC`).Bind(ctx, p.db, &chains)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrap(err, "failed to get active chains")
	}

	return chains, nil
}

// SeedChains inserts or replaces the given chains within a single transaction.
func (p *Postgres) SeedChains(ctx context.Context, chains []*data.Chain) error {
	return db.WithTransaction(ctx, p.db, func(tx boil.ContextExecutor) error {
		for _, c := range chains {
			_, err := queries.Raw(`
				INSERT INTO chains (chain_id, name, symbol, native_decimals, rpc_url, explorer_url, explorer_api_url,
					explorer_api_key, price_feed_id, receiving_address, is_active, is_testnet, icon_url)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
				ON CONFLICT (chain_id) DO UPDATE SET
					name = EXCLUDED.name,
					symbol = EXCLUDED.symbol,
					native_decimals = EXCLUDED.native_decimals,
					rpc_url = EXCLUDED.rpc_url,
					explorer_url = EXCLUDED.explorer_url,
					explorer_api_url = EXCLUDED.explorer_api_url,
					explorer_api_key = EXCLUDED.explorer_api_key,
					price_feed_id = EXCLUDED.price_feed_id,
					receiving_address = EXCLUDED.receiving_address,
					is_active = EXCLUDED.is_active,
					is_testnet = EXCLUDED.is_testnet,
					icon_url = EXCLUDED.icon_url,
					updated_at = now()`,
				c.ChainID, c.Name, c.Symbol, c.NativeDecimals, c.RPCURL, c.ExplorerURL, c.ExplorerAPIURL,
				c.ExplorerAPIKey, c.PriceFeedID, c.ReceivingAddress, c.IsActive, c.IsTestnet, c.IconURL,
			).ExecContext(ctx, tx)
			if err != nil {
				return errors.Wrapf(err, "failed to upsert chain %d", c.ChainID)
			}
		}

		return nil
	})
}

func (p *Postgres) LatestRegistration(ctx context.Context, walletAddress string, chainID int) (*data.Registration, error) {
	var reg data.Registration
	err := queries.Raw(`
		SELECT * FROM wallet_registrations
		WHERE wallet_address = $1 AND chain_id = $2
		ORDER BY updated_at DESC, id DESC
		LIMIT 1`, walletAddress, chainID).Bind(ctx, p.db, &reg)
	if err != nil {
		return nil, translate(err, "failed to get latest registration")
	}

	return &reg, nil
}

func (p *Postgres) LatestRegistrationForWallet(ctx context.Context, walletAddress string) (*data.Registration, error) {
	var reg data.Registration
	err := queries.Raw(`
		SELECT * FROM wallet_registrations
		WHERE wallet_address = $1
		ORDER BY updated_at DESC, id DESC
		LIMIT 1`, walletAddress).Bind(ctx, p.db, &reg)
	if err != nil {
		return nil, translate(err, "failed to get latest registration of wallet")
	}

	return &reg, nil
}

// InsertRegistration inserts reg and fills in the generated columns.
// Returns data.ErrUniqueViolation if a row for (wallet, chain) already exists.
func (p *Postgres) InsertRegistration(ctx context.Context, reg *data.Registration) error {
	err := queries.Raw(`
		INSERT INTO wallet_registrations (wallet_address, chain_id, crypto_amount, valid_to, confirmed)
		VALUES ($1, $2, $3, $4, false)
		RETURNING *`, reg.WalletAddress, reg.ChainID, reg.CryptoAmount, reg.ValidTo).Bind(ctx, p.db, reg)
	if err != nil {
		return translate(err, "failed to insert registration")
	}

	return nil
}

// UpdatePendingRegistration re-quotes an unconfirmed registration in place.
// Returns false if the row is confirmed (or missing) and was left untouched.
func (p *Postgres) UpdatePendingRegistration(ctx context.Context, id int64, amount decimal.Decimal, validTo time.Time) (bool, error) {
	res, err := queries.Raw(`
		UPDATE wallet_registrations
		SET crypto_amount = $2, valid_to = $3, tx_hash = NULL, updated_at = now()
		WHERE id = $1 AND confirmed = false`, id, amount, validTo).ExecContext(ctx, p.db)
	if err != nil {
		return false, errors.Wrap(err, "failed to update registration")
	}

	return affectedOne(res)
}

// ConfirmRegistration flips confirmed from false to true exactly once.
func (p *Postgres) ConfirmRegistration(ctx context.Context, id int64, txHash string) (bool, error) {
	res, err := queries.Raw(`
		UPDATE wallet_registrations
		SET confirmed = true, tx_hash = $2, updated_at = now()
		WHERE id = $1 AND confirmed = false`, id, txHash).ExecContext(ctx, p.db)
	if err != nil {
		return false, errors.Wrap(err, "failed to confirm registration")
	}

	return affectedOne(res)
}

func (p *Postgres) RegistrationByID(ctx context.Context, id int64) (*data.Registration, error) {
	var reg data.Registration
	err := queries.Raw(`SELECT * FROM wallet_registrations WHERE id = $1`, id).Bind(ctx, p.db, &reg)
	if err != nil {
		return nil, translate(err, "failed to get registration")
	}

	return &reg, nil
}

// EnsureWallet creates the wallet row if missing and refreshes last_login either way.
func (p *Postgres) EnsureWallet(ctx context.Context, walletAddress string, now time.Time) (*data.Wallet, error) {
	var w data.Wallet
	err := queries.Raw(`
		INSERT INTO wallets (wallet_address, last_login)
		VALUES ($1, $2)
		ON CONFLICT (wallet_address) DO UPDATE SET last_login = EXCLUDED.last_login, updated_at = now()
		RETURNING *`, walletAddress, now).Bind(ctx, p.db, &w)
	if err != nil {
		return nil, errors.Wrap(err, "failed to ensure wallet")
	}

	return &w, nil
}

func (p *Postgres) GetWallet(ctx context.Context, walletAddress string) (*data.Wallet, error) {
	var w data.Wallet
	err := queries.Raw(`SELECT * FROM wallets WHERE wallet_address = $1`, walletAddress).Bind(ctx, p.db, &w)
	if err != nil {
		return nil, translate(err, "failed to get wallet")
	}

	return &w, nil
}

// PromoteWallet marks the fee as paid and advances setup_step 0 -> 1 in a single statement.
// Returns true only for the call that actually performed the transition.
func (p *Postgres) PromoteWallet(ctx context.Context, walletAddress string) (bool, error) {
	res, err := queries.Raw(`
		INSERT INTO wallets (wallet_address, fee_paid, setup_step)
		VALUES ($1, true, 1)
		ON CONFLICT (wallet_address) DO UPDATE SET
			fee_paid = true,
			setup_step = CASE WHEN wallets.setup_step = 0 THEN 1 ELSE wallets.setup_step END,
			updated_at = now()
		WHERE wallets.fee_paid = false`, walletAddress).ExecContext(ctx, p.db)
	if err != nil {
		return false, errors.Wrap(err, "failed to promote wallet")
	}

	return affectedOne(res)
}

func affectedOne(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "failed to get affected rows")
	}

	return n == 1, nil
}

func translate(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return data.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
		return data.ErrUniqueViolation
	}

	return errors.Wrap(err, msg)
}
