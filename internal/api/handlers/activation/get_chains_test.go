package activation_test

import (
	"net/http"
	"testing"

	"github.com/arcregistry/wallet-activation/internal/api"
	"github.com/arcregistry/wallet-activation/internal/test"
	"github.com/arcregistry/wallet-activation/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetChains(t *testing.T) {
	test.WithMemServer(t, func(s *api.Server, _ *test.MemStore, _ *test.ActivationDeps) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/activation/chains", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.GetChainsResponse
		test.ParseResponseAndValidate(t, res, &response)

		require.Len(t, response.Chains, 2)
		assert.Equal(t, int64(test.FixtureChainAmoy), *response.Chains[0].ChainID)
		assert.Equal(t, int64(test.FixtureChainSepolia), *response.Chains[1].ChainID)
		assert.Equal(t, "https://sepolia.etherscan.io", response.Chains[1].ExplorerURL)
		assert.True(t, response.Chains[1].IsTestnet)
	})
}

func TestGetChainsDatabase(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/activation/chains", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.GetChainsResponse
		test.ParseResponseAndValidate(t, res, &response)
		assert.Len(t, response.Chains, 2)
	})
}
