package config_test

import (
	"encoding/json"
	"testing"

	"github.com/arcregistry/wallet-activation/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintServiceEnv(t *testing.T) {
	config := config.DefaultServiceConfigFromEnv()
	_, err := json.MarshalIndent(config, "", "  ")

	if err != nil {
		t.Fatal(err)
	}
}

func TestServiceEnvOmitsSecrets(t *testing.T) {
	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Database.Password = "db-secret"
	cfg.Activation.PriceFeedAPIKey = "feed-secret"

	b, err := json.Marshal(cfg)
	require.NoError(t, err)

	assert.NotContains(t, string(b), "db-secret")
	assert.NotContains(t, string(b), "feed-secret")
}

func TestActivationIsProduction(t *testing.T) {
	assert.True(t, config.Activation{Environment: config.EnvironmentProduction}.IsProduction())
	assert.True(t, config.Activation{}.IsProduction())
	assert.False(t, config.Activation{Environment: config.EnvironmentDevelopment}.IsProduction())
}

func TestDatabaseConnectionString(t *testing.T) {
	c := config.Database{
		Host:             "localhost",
		Port:             5432,
		Username:         "dbuser",
		Password:         "pw",
		Database:         "development",
		AdditionalParams: map[string]string{"sslmode": "require", "application_name": "activation"},
	}

	assert.Equal(t, "host=localhost port=5432 user=dbuser password=pw dbname=development application_name=activation sslmode=require", c.ConnectionString())

	c.AdditionalParams = nil
	assert.Equal(t, "host=localhost port=5432 user=dbuser password=pw dbname=development sslmode=disable", c.ConnectionString())
}
