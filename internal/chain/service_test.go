package chain_test

import (
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/arcregistry/wallet-activation/internal/chain"
	"github.com/arcregistry/wallet-activation/internal/data"
	"github.com/arcregistry/wallet-activation/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRPCURLs(t *testing.T) {
	assert.Nil(t, chain.ParseRPCURLs(""))
	assert.Equal(t, []string{"https://a", "https://b"}, chain.ParseRPCURLs(" https://a , ,https://b,"))
}

func TestEndpoints(t *testing.T) {
	set := chain.Endpoints(&data.Chain{
		ChainID:          11155111,
		Name:             "Sepolia",
		NativeDecimals:   18,
		RPCURL:           "https://primary,https://backup-1,https://backup-2",
		ExplorerAPIURL:   null.StringFrom("https://explorer/api"),
		ReceivingAddress: null.StringFrom("0xAbC0000000000000000000000000000000000001"),
		PriceFeedID:      "ethereum",
	})

	assert.Equal(t, "https://primary", set.PrimaryRPC)
	assert.Equal(t, []string{"https://backup-1", "https://backup-2"}, set.BackupRPCs)
	assert.Equal(t, "0xabc0000000000000000000000000000000000001", set.ReceivingAddress)
	assert.True(t, set.HasReceivingAddress())
	assert.Equal(t, int32(18), set.NativeDecimals)

	empty := chain.Endpoints(&data.Chain{ChainID: 1})
	assert.Empty(t, empty.PrimaryRPC)
	assert.False(t, empty.HasReceivingAddress())
}

func TestGetChain(t *testing.T) {
	store := test.NewMemStore()
	store.PutChain(&data.Chain{ChainID: 1, Name: "Ethereum", IsActive: true})
	store.PutChain(&data.Chain{ChainID: 56, Name: "BNB Smart Chain", IsActive: false})
	store.PutChain(&data.Chain{ChainID: 10, Name: "Optimism", IsActive: true})

	svc := chain.NewService(store)

	c, err := svc.GetChain(t.Context(), 56)
	require.NoError(t, err)
	assert.Equal(t, "BNB Smart Chain", c.Name)

	_, err = svc.GetChain(t.Context(), 999)
	assert.ErrorIs(t, err, chain.ErrChainNotFound)

	active, err := svc.GetActiveChains(t.Context())
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, 1, active[0].ChainID)
	assert.Equal(t, 10, active[1].ChainID)
}
