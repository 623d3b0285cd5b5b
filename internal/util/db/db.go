package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type TxFn func(boil.ContextExecutor) error

// WithTransaction runs fn inside a transaction started on db, committing on success
// and rolling back on error or panic.
func WithTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	return WithConfiguredTransaction(ctx, db, nil, fn)
}

func WithConfiguredTransaction(ctx context.Context, db *sql.DB, options *sql.TxOptions, fn TxFn) error {
	tx, err := db.BeginTx(ctx, options)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to start transaction")
		return errors.Wrap(err, "failed to start transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			if txErr := tx.Rollback(); txErr != nil {
				log.Error().Err(txErr).Msg("Failed to roll back transaction after panic")
			}
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if txErr := tx.Rollback(); txErr != nil {
			log.Warn().Err(txErr).Msg("Failed to roll back transaction")
			return fmt.Errorf("%w (rollback failed: %v)", err, txErr) //nolint:errorlint
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("Failed to commit transaction")
		return errors.Wrap(err, "failed to commit transaction")
	}

	return nil
}
