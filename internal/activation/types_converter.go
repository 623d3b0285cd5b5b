package activation

import (
	"github.com/arcregistry/wallet-activation/internal/types"
	"github.com/arcregistry/wallet-activation/internal/wallet"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
)

// ToTypes converts Result to ActivationResponse, message is the localized status text.
func (r *Result) ToTypes(message string) *types.ActivationResponse {
	res := &types.ActivationResponse{
		Status:           swag.String(r.Status.String()),
		ReceivingAddress: r.ReceivingAddress,
		Reason:           r.Reason.String(),
		Message:          message,
		FeePaid:          r.FeePaid,
		AvailableChains:  make([]*types.ChainItem, 0, len(r.AvailableChains)),
	}

	for _, c := range r.AvailableChains {
		res.AvailableChains = append(res.AvailableChains, wallet.ChainToChainItem(c))
	}

	if r.Chain != nil {
		res.Chain = wallet.ChainToChainItem(r.Chain)
	}

	if r.Registration != nil {
		res.CryptoAmount = r.Registration.CryptoAmount.String()
		validTo := strfmt.DateTime(r.Registration.ValidTo)
		res.ValidTo = &validTo
	}

	return res
}
