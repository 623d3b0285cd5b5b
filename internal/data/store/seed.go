package store

import (
	"context"
	"database/sql"

	"github.com/BurntSushi/toml"
	"github.com/arcregistry/wallet-activation/internal/data"
	"github.com/pkg/errors"
	migrate "github.com/rubenv/sql-migrate"
)

type chainsFile struct {
	Chains []*data.Chain `toml:"chains"`
}

// LoadChainsFile reads the operator maintained chain list (assets/chains.toml).
func LoadChainsFile(path string) ([]*data.Chain, error) {
	var f chainsFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, errors.Wrapf(err, "failed to decode chains file %s", path)
	}

	for _, c := range f.Chains {
		if c.ChainID <= 0 {
			return nil, errors.Errorf("chains file %s: chain %q has no chain_id", path, c.Name)
		}
		if c.ReceivingAddress.Valid {
			c.ReceivingAddress.String = data.NormalizeAddress(c.ReceivingAddress.String)
		}
	}

	return f.Chains, nil
}

// Migrate applies all pending up migrations found in dir and returns how many were applied.
func Migrate(db *sql.DB, dir string) (int, error) {
	n, err := migrate.Exec(db, "postgres", migrate.FileMigrationSource{Dir: dir}, migrate.Up)
	if err != nil {
		return n, errors.Wrap(err, "failed to apply migrations")
	}

	return n, nil
}

// SeedChainsFile loads path and upserts its chains. It returns the number of chains written.
func (p *Postgres) SeedChainsFile(ctx context.Context, path string) (int, error) {
	chains, err := LoadChainsFile(path)
	if err != nil {
		return 0, err
	}

	if err := p.SeedChains(ctx, chains); err != nil {
		return 0, err
	}

	return len(chains), nil
}
