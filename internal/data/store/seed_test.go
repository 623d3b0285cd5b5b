package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arcregistry/wallet-activation/internal/data/store"
	"github.com/arcregistry/wallet-activation/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadChainsFile(t *testing.T) {
	chains, err := store.LoadChainsFile(test.SeedChainsFilePath())
	require.NoError(t, err)
	require.NotEmpty(t, chains)

	for _, c := range chains {
		assert.NotEmpty(t, c.Name)
		assert.NotEmpty(t, c.RPCURL)
		assert.NotEmpty(t, c.PriceFeedID)
		assert.Equal(t, 18, c.NativeDecimals)
	}
}

func TestLoadChainsFileNormalizesAddresses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chains.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[chains]]
chain_id = 5
name = "Test"
symbol = "TST"
native_decimals = 18
rpc_url = "http://localhost:8545"
price_feed_id = "test"
receiving_address = "  0x00000000000000000000000000000000000BA5E0 "
is_active = true
`), 0o600))

	chains, err := store.LoadChainsFile(path)
	require.NoError(t, err)
	require.Len(t, chains, 1)
	assert.Equal(t, test.FixtureReceivingAddress, chains[0].ReceivingAddress.String)
	assert.True(t, chains[0].IsActive)
	assert.False(t, chains[0].ExplorerURL.Valid)
}

func TestLoadChainsFileErrors(t *testing.T) {
	_, err := store.LoadChainsFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "chains.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[chains]]\nname = \"no id\"\n"), 0o600))

	_, err = store.LoadChainsFile(path)
	assert.ErrorContains(t, err, "no chain_id")
}
