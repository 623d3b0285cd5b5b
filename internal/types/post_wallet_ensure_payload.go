package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// PostWalletEnsurePayload post wallet ensure payload
type PostWalletEnsurePayload struct {

	// Required: true
	WalletAddress *string `json:"walletAddress"`
}

// Validate validates this post wallet ensure payload
func (m *PostWalletEnsurePayload) Validate(formats strfmt.Registry) error {
	var res []error

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
