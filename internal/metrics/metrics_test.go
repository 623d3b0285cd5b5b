package metrics_test

import (
	"testing"

	"github.com/arcregistry/wallet-activation/internal/activation/verify"
	"github.com/arcregistry/wallet-activation/internal/config"
	"github.com/arcregistry/wallet-activation/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSourceAttempt(t *testing.T) {
	svc, err := metrics.New(config.DefaultServiceConfigFromEnv(), nil)
	require.NoError(t, err)

	var observer verify.Observer = svc
	observer.ObserveSourceAttempt(11155111, verify.SourcePrimaryRPC, verify.OutcomeTimeout)
	observer.ObserveSourceAttempt(11155111, "backup_rpc_1", verify.OutcomeFound)
	observer.ObserveSourceAttempt(11155111, "backup_rpc_1", verify.OutcomeFound)

	families, err := svc.Registry.Gather()
	require.NoError(t, err)

	series := map[string]int{}
	for _, f := range families {
		series[f.GetName()] = len(f.GetMetric())
	}

	assert.Equal(t, 2, series["wallet_activation_verifier_source_attempts_total"])
	assert.NotContains(t, series, "wallet_activation_activation_results_total")
}

func TestNewRegistriesAreIndependent(t *testing.T) {
	cfg := config.DefaultServiceConfigFromEnv()

	_, err := metrics.New(cfg, nil)
	require.NoError(t, err)
	_, err = metrics.New(cfg, nil)
	require.NoError(t, err)
}
