package wallet_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/arcregistry/wallet-activation/internal/api"
	"github.com/arcregistry/wallet-activation/internal/test"
	"github.com/arcregistry/wallet-activation/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostEnsure(t *testing.T) {
	test.WithMemServer(t, func(s *api.Server, _ *test.MemStore, deps *test.ActivationDeps) {
		payload := test.GenericPayload{"walletAddress": "0xAAAA000000000000000000000000000000000001"}

		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/ensure", payload, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.WalletResponse
		test.ParseResponseAndValidate(t, res, &response)
		assert.Equal(t, test.FixtureWalletAddress, *response.WalletAddress)
		assert.False(t, *response.FeePaid)
		assert.Equal(t, int64(0), *response.SetupStep)
		require.NotNil(t, response.LastLogin)
		assert.True(t, deps.Clock.Now().Equal(time.Time(*response.LastLogin)))
	})
}

func TestPostEnsureInvalidAddress(t *testing.T) {
	test.WithMemServer(t, func(s *api.Server, _ *test.MemStore, _ *test.ActivationDeps) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/wallet/ensure", test.GenericPayload{"walletAddress": "0x123"}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}
