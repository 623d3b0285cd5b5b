package activation_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/arcregistry/wallet-activation/internal/activation/quote"
	"github.com/arcregistry/wallet-activation/internal/api"
	"github.com/arcregistry/wallet-activation/internal/api/httperrors"
	"github.com/arcregistry/wallet-activation/internal/test"
	"github.com/arcregistry/wallet-activation/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postCheck(t *testing.T, s *api.Server, payload test.GenericPayload) *types.ActivationResponse {
	t.Helper()

	res := test.PerformRequest(t, s, "POST", "/api/v1/activation/check", payload, nil)
	require.Equal(t, http.StatusOK, res.Result().StatusCode)

	var response types.ActivationResponse
	test.ParseResponseAndValidate(t, res, &response)

	return &response
}

func TestPostCheckScenario(t *testing.T) {
	test.WithMemServer(t, func(s *api.Server, m *test.MemStore, deps *test.ActivationDeps) {
		payload := test.GenericPayload{
			"walletAddress": "0xAAAA000000000000000000000000000000000001",
			"chainId":       test.FixtureChainSepolia,
		}

		created := postCheck(t, s, payload)
		assert.Equal(t, "registration_created", *created.Status)
		assert.Equal(t, test.FixtureQuotedAmount, created.CryptoAmount)
		assert.Equal(t, test.FixtureReceivingAddress, created.ReceivingAddress)
		require.NotNil(t, created.ValidTo)
		assert.True(t, time.Time(*created.ValidTo).After(deps.Clock.Now()))
		require.NotNil(t, created.Chain)
		assert.Equal(t, int64(test.FixtureChainSepolia), *created.Chain.ChainID)
		assert.Len(t, created.AvailableChains, 2)
		assert.Equal(t, "Please send 0.00166667 ETH before the deadline.", created.Message)

		deps.Clock.Advance(5 * time.Minute)

		awaiting := postCheck(t, s, payload)
		assert.Equal(t, "awaiting_payment", *awaiting.Status)
		assert.Equal(t, created.CryptoAmount, awaiting.CryptoAmount)
		assert.Equal(t, created.ValidTo.String(), awaiting.ValidTo.String())
		assert.Len(t, m.Registrations(), 1)

		payload["transactionHash"] = test.FixturePaidTxHash
		verified := postCheck(t, s, payload)
		assert.Equal(t, "payment_verified", *verified.Status)

		delete(payload, "transactionHash")
		confirmed := postCheck(t, s, payload)
		assert.Equal(t, "payment_confirmed", *confirmed.Status)
		require.NotNil(t, confirmed.FeePaid)
		assert.True(t, *confirmed.FeePaid)
		assert.Equal(t, 1, deps.Verifier.Calls())
	})
}

func walletPromotions(t *testing.T, s *api.Server) float64 {
	t.Helper()

	families, err := s.Metrics.Registry.Gather()
	require.NoError(t, err)

	for _, f := range families {
		if f.GetName() == "wallet_activation_wallet_promotions_total" {
			return f.GetMetric()[0].GetCounter().GetValue()
		}
	}

	return 0
}

func TestPostCheckCountsPromotionOnce(t *testing.T) {
	test.WithMemServer(t, func(s *api.Server, m *test.MemStore, deps *test.ActivationDeps) {
		amoy := test.FixtureChains()[1]
		amoy.ReceivingAddress = null.StringFrom(test.FixtureReceivingAddress)
		m.PutChain(amoy)

		const amoyTx = "0x2222222222222222222222222222222222222222222222222222222222222222"
		deps.Verifier.Pay(amoyTx, decimal.RequireFromString(test.FixtureQuotedAmount))

		payload := test.GenericPayload{
			"walletAddress": test.FixtureWalletAddress,
			"chainId":       test.FixtureChainSepolia,
		}
		postCheck(t, s, payload)
		payload["transactionHash"] = test.FixturePaidTxHash
		assert.Equal(t, "payment_verified", *postCheck(t, s, payload).Status)
		assert.Equal(t, float64(1), walletPromotions(t, s))

		payload = test.GenericPayload{
			"walletAddress": test.FixtureWalletAddress,
			"chainId":       test.FixtureChainAmoy,
		}
		postCheck(t, s, payload)
		payload["transactionHash"] = amoyTx
		assert.Equal(t, "payment_verified", *postCheck(t, s, payload).Status)

		assert.Equal(t, float64(1), walletPromotions(t, s))
		assert.Equal(t, int64(1), m.Promotions())
	})
}

func TestPostCheckLocalizedReason(t *testing.T) {
	test.WithMemServer(t, func(s *api.Server, _ *test.MemStore, _ *test.ActivationDeps) {
		payload := test.GenericPayload{"walletAddress": test.FixtureWalletAddress}
		postCheck(t, s, payload)

		payload["transactionHash"] = "0x1111111111111111111111111111111111111111111111111111111111111111"
		res := test.PerformRequest(t, s, "POST", "/api/v1/activation/check", payload, http.Header{
			"Accept-Language": []string{"de-DE,de;q=0.9"},
		})
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.ActivationResponse
		test.ParseResponseAndValidate(t, res, &response)
		assert.Equal(t, "awaiting_payment", *response.Status)
		assert.Equal(t, "not_found", response.Reason)
		assert.Equal(t, "Die Transaktion wurde noch nicht gefunden. Bitte versuchen Sie es in Kürze erneut.", response.Message)
	})
}

func TestPostCheckErrors(t *testing.T) {
	test.WithMemServer(t, func(s *api.Server, _ *test.MemStore, deps *test.ActivationDeps) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/activation/check", test.GenericPayload{
			"walletAddress": test.FixtureWalletAddress,
			"chainId":       test.FixtureChainInactive,
		}, nil)
		test.RequireHTTPError(t, res, httperrors.ErrBadRequestUnknownChain)

		res = test.PerformRequest(t, s, "POST", "/api/v1/activation/check", test.GenericPayload{
			"walletAddress": test.FixtureWalletAddress,
			"chainId":       test.FixtureChainAmoy,
		}, nil)
		test.RequireHTTPError(t, res, httperrors.ErrInternalChainMisconfigured)

		deps.Quoter.SetErr(errors.Join(quote.ErrPriceFeedUnavailable, errors.New("timeout")))
		res = test.PerformRequest(t, s, "POST", "/api/v1/activation/check", test.GenericPayload{
			"walletAddress": test.FixtureWalletAddress,
		}, nil)
		test.RequireHTTPError(t, res, httperrors.ErrServiceUnavailablePriceFeed)
		assert.Equal(t, "30", res.Header().Get("Retry-After"))
	})
}

func TestPostCheckValidation(t *testing.T) {
	test.WithMemServer(t, func(s *api.Server, _ *test.MemStore, _ *test.ActivationDeps) {
		for _, payload := range []test.GenericPayload{
			{},
			{"walletAddress": "not-a-wallet"},
			{"walletAddress": test.FixtureWalletAddress, "transactionHash": "0xdead"},
			{"walletAddress": test.FixtureWalletAddress, "chainId": 0},
		} {
			res := test.PerformRequest(t, s, "POST", "/api/v1/activation/check", payload, nil)
			assert.Equal(t, http.StatusBadRequest, res.Result().StatusCode, "payload %v", payload)
		}
	})
}

func TestPostCheckRateLimited(t *testing.T) {
	cfg := test.DefaultTestConfig()
	cfg.Activation.RateLimitPerSecond = 0.001
	cfg.Activation.RateLimitBurst = 2

	test.WithTestServerConfigurable(t, cfg, func(s *api.Server) {
		payload := test.GenericPayload{"walletAddress": test.FixtureWalletAddress}

		for i := 0; i < 2; i++ {
			res := test.PerformRequest(t, s, "POST", "/api/v1/activation/check", payload, nil)
			require.Equal(t, http.StatusOK, res.Result().StatusCode)
		}

		res := test.PerformRequest(t, s, "POST", "/api/v1/activation/check", payload, nil)
		test.RequireHTTPError(t, res, httperrors.ErrTooManyRequests)
		assert.Equal(t, "1", res.Header().Get("Retry-After"))
	})
}
