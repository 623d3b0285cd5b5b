//go:build devbypass

package verify_test

import (
	"testing"
	"time"

	"github.com/arcregistry/wallet-activation/internal/activation/verify"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBypassNeverInProduction(t *testing.T) {
	v, err := verify.New(&fakeDialer{}, nil, nil, verify.Options{
		SourceTimeout:        time.Second,
		ToleranceBps:         100,
		BypassRecipientCheck: true,
		Production:           true,
	})
	require.NoError(t, err)
	assert.False(t, v.RecipientCheckBypassed())
}

func TestBypassSkipsRecipientInDevelopment(t *testing.T) {
	p := newPayer(t)
	tx := p.pay(common.HexToAddress("0x0000000000000000000000000000000000000bad"), eth("1"))
	dialer := &fakeDialer{readers: map[string]*fakeReader{primaryURL: {tx: tx}}}

	v, err := verify.New(dialer, nil, nil, verify.Options{
		SourceTimeout:        time.Second,
		ToleranceBps:         100,
		BypassRecipientCheck: true,
	})
	require.NoError(t, err)
	require.True(t, v.RecipientCheckBypassed())

	res := v.Verify(t.Context(), request(tx, p.addr, "1", endpoints("")))
	assert.True(t, res.Matched)
}
