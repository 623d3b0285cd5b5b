package test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"testing"

	integresql "github.com/allaboutapps/integresql-client-go"
	integresqlUtil "github.com/allaboutapps/integresql-client-go/pkg/util"
	"github.com/arcregistry/wallet-activation/internal/config"
	"github.com/arcregistry/wallet-activation/internal/data/store"
	"github.com/arcregistry/wallet-activation/internal/util"

	// Import postgres driver for database/sql package
	_ "github.com/lib/pq"
)

const envIntegresqlBaseURL = "INTEGRESQL_CLIENT_BASE_URL"

var (
	client       *integresql.Client
	templateHash string
	setupErr     error
	setupOnce    sync.Once
)

// WithTestDatabase hands a fresh, migrated and seeded database to closure. Every call
// gets its own database cloned from a shared template by integresql.
// The test is skipped when no integresql server is configured.
func WithTestDatabase(t *testing.T, closure func(db *sql.DB)) {
	t.Helper()

	if _, ok := os.LookupEnv(envIntegresqlBaseURL); !ok {
		t.Skipf("%s not set, skipping database test", envIntegresqlBaseURL)
	}

	ctx := context.Background()

	setupOnce.Do(func() {
		setupErr = setupTemplate(ctx)
	})
	if setupErr != nil {
		t.Fatalf("Failed to set up integresql template: %v", setupErr)
	}

	testDatabase, err := client.GetTestDatabase(ctx, templateHash)
	if err != nil {
		t.Fatalf("Failed to obtain test database: %v", err)
	}

	db, err := sql.Open("postgres", testDatabase.Database.Config.ConnectionString())
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	closure(db)
}

func setupTemplate(ctx context.Context) error {
	var err error

	client, err = integresql.DefaultClientFromEnv()
	if err != nil {
		return err
	}

	cfg := config.DefaultServiceConfigFromEnv()
	templateHash, err = integresqlUtil.GetTemplateHash(
		cfg.Paths.MigrationsDir,
		filepath.Join(util.GetProjectRootDir(), "internal/test/fixtures.go"),
	)
	if err != nil {
		return err
	}

	return client.SetupTemplateWithDBClient(ctx, templateHash, func(db *sql.DB) error {
		if _, err := ApplyMigrations(db, cfg.Paths.MigrationsDir); err != nil {
			return err
		}

		return store.New(db).SeedChains(ctx, FixtureChains())
	})
}

// ApplyMigrations runs all pending up migrations found in dir.
func ApplyMigrations(db *sql.DB, dir string) (int, error) {
	return store.Migrate(db, dir)
}
