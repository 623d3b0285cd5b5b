package i18n_test

import (
	"testing"

	"github.com/arcregistry/wallet-activation/internal/config"
	"github.com/arcregistry/wallet-activation/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestTranslate(t *testing.T) {
	svc, err := i18n.New(config.DefaultServiceConfigFromEnv())
	require.NoError(t, err)

	assert.Equal(t, "Payment verified, your wallet is activated.", svc.Translate("activation.status.payment_verified", language.English))
	assert.Equal(t, "Zahlung bestätigt, Ihre Wallet ist aktiviert.", svc.Translate("activation.status.payment_verified", language.German))
	assert.Equal(t, "Payment verified, your wallet is activated.", svc.Translate("activation.status.payment_verified", language.French))
	assert.Equal(t, "unknown.key", svc.Translate("unknown.key", language.English))

	assert.Equal(t,
		"Please send 0.5 ETH before the deadline.",
		svc.Translate("activation.status.awaiting_payment", language.English, i18n.Data{"Amount": "0.5", "Symbol": "ETH"}),
	)
}

func TestParseAcceptLanguage(t *testing.T) {
	svc, err := i18n.New(config.DefaultServiceConfigFromEnv())
	require.NoError(t, err)

	assert.Equal(t, language.German, svc.ParseAcceptLanguage("de-AT,de;q=0.9,en;q=0.5"))
	assert.Equal(t, language.English, svc.ParseAcceptLanguage("fr-FR"))
	assert.Equal(t, language.English, svc.ParseAcceptLanguage(""))
	assert.Equal(t, language.English, svc.Tags()[0])
}
