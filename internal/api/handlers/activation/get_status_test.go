package activation_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/arcregistry/wallet-activation/internal/api"
	"github.com/arcregistry/wallet-activation/internal/test"
	"github.com/arcregistry/wallet-activation/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getStatus(t *testing.T, s *api.Server, walletAddress string) *types.ActivationResponse {
	t.Helper()

	res := test.PerformRequest(t, s, "GET", fmt.Sprintf("/api/v1/activation/status?walletAddress=%s", walletAddress), nil, nil)
	require.Equal(t, http.StatusOK, res.Result().StatusCode)

	var response types.ActivationResponse
	test.ParseResponseAndValidate(t, res, &response)

	return &response
}

func TestGetStatus(t *testing.T) {
	test.WithMemServer(t, func(s *api.Server, _ *test.MemStore, deps *test.ActivationDeps) {
		status := getStatus(t, s, test.FixtureWalletAddress)
		assert.Equal(t, "no_registration", *status.Status)
		assert.False(t, *status.FeePaid)

		postCheck(t, s, test.GenericPayload{"walletAddress": test.FixtureWalletAddress})

		status = getStatus(t, s, test.FixtureWalletAddress)
		assert.Equal(t, "awaiting_payment", *status.Status)
		assert.Equal(t, test.FixtureQuotedAmount, status.CryptoAmount)
		assert.Equal(t, test.FixtureReceivingAddress, status.ReceivingAddress)

		postCheck(t, s, test.GenericPayload{
			"walletAddress":   test.FixtureWalletAddress,
			"transactionHash": test.FixturePaidTxHash,
		})

		status = getStatus(t, s, test.FixtureWalletAddress)
		assert.Equal(t, "payment_confirmed", *status.Status)
		assert.True(t, *status.FeePaid)
		assert.Equal(t, 1, deps.Verifier.Calls())
	})
}

func TestGetStatusInvalidWallet(t *testing.T) {
	test.WithMemServer(t, func(s *api.Server, _ *test.MemStore, _ *test.ActivationDeps) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/activation/status?walletAddress=nope", nil, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "GET", "/api/v1/activation/status", nil, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}
