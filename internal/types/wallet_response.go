package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// WalletResponse wallet response
type WalletResponse struct {

	// Required: true
	FeePaid *bool `json:"feePaid"`

	// Format: date-time
	LastLogin *strfmt.DateTime `json:"lastLogin,omitempty"`

	SetupCompleted bool `json:"setupCompleted"`

	// Required: true
	// Minimum: 0
	SetupStep *int64 `json:"setupStep"`

	// Required: true
	WalletAddress *string `json:"walletAddress"`
}

// Validate validates this wallet response
func (m *WalletResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("feePaid", "body", m.FeePaid); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("setupStep", "body", m.SetupStep); err != nil {
		res = append(res, err)
	} else if err := validate.MinimumInt("setupStep", "body", *m.SetupStep, 0, false); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("walletAddress", "body", m.WalletAddress); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}
