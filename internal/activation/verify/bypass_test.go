//go:build !devbypass

package verify_test

import (
	"testing"
	"time"

	"github.com/arcregistry/wallet-activation/internal/activation/verify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBypassIgnoredWithoutBuildTag(t *testing.T) {
	v, err := verify.New(&fakeDialer{}, nil, nil, verify.Options{
		SourceTimeout:        time.Second,
		ToleranceBps:         100,
		BypassRecipientCheck: true,
		Production:           false,
	})
	require.NoError(t, err)
	assert.False(t, v.RecipientCheckBypassed())
}
