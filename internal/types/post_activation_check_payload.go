package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"
)

// PostActivationCheckPayload post activation check payload
type PostActivationCheckPayload struct {

	// Chain to register or verify on, defaults to the configured default chain
	// Minimum: 1
	ChainID *int64 `json:"chainId,omitempty"`

	// Hash of the fee payment, omitted while no payment has been sent yet
	TransactionHash string `json:"transactionHash,omitempty"`

	// Wallet address being activated
	// Required: true
	WalletAddress *string `json:"walletAddress"`
}

// Validate validates this post activation check payload
func (m *PostActivationCheckPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := m.validateChainID(formats); err != nil {
		res = append(res, err)
	}

	if err := m.validateTransactionHash(formats); err != nil {
		res = append(res, err)
	}

	if err := m.validateWalletAddress(formats); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

func (m *PostActivationCheckPayload) validateChainID(formats strfmt.Registry) error {
	if swag.IsZero(m.ChainID) {
		return nil
	}

	if err := validate.MinimumInt("chainId", "body", *m.ChainID, 1, false); err != nil {
		return err
	}

	return nil
}

func (m *PostActivationCheckPayload) validateTransactionHash(formats strfmt.Registry) error {
	if swag.IsZero(m.TransactionHash) {
		return nil
	}

	if err := validate.Pattern("transactionHash", "body", m.TransactionHash, transactionHashPattern); err != nil {
		return err
	}

	return nil
}

func (m *PostActivationCheckPayload) validateWalletAddress(formats strfmt.Registry) error {
	if err := validate.Required("walletAddress", "body", m.WalletAddress); err != nil {
		return err
	}

	if err := validate.Pattern("walletAddress", "body", *m.WalletAddress, walletAddressPattern); err != nil {
		return err
	}

	return nil
}
