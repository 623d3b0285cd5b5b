package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"
)

// PostActivationManualVerifyPayload post activation manual verify payload
type PostActivationManualVerifyPayload struct {

	// Minimum: 1
	ChainID *int64 `json:"chainId,omitempty"`

	// Required: true
	TransactionHash *string `json:"transactionHash"`

	// Required: true
	WalletAddress *string `json:"walletAddress"`
}

// Validate validates this post activation manual verify payload
func (m *PostActivationManualVerifyPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if !swag.IsZero(m.ChainID) {
		if err := validate.MinimumInt("chainId", "body", *m.ChainID, 1, false); err != nil {
			res = append(res, err)
		}
	}

	if err := validate.Required("transactionHash", "body", m.TransactionHash); err != nil {
		res = append(res, err)
	} else if err := validate.Pattern("transactionHash", "body", *m.TransactionHash, transactionHashPattern); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("walletAddress", "body", m.WalletAddress); err != nil {
		res = append(res, err)
	} else if err := validate.Pattern("walletAddress", "body", *m.WalletAddress, walletAddressPattern); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}
