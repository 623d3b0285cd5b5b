package types

import (
	"encoding/json"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"
)

// ActivationResponse activation response
type ActivationResponse struct {

	// Chains the fee may be paid on
	AvailableChains []*ChainItem `json:"availableChains,omitempty"`

	// Chain the registration belongs to
	Chain *ChainItem `json:"chain,omitempty"`

	// Fee in the chain's native currency, decimal string
	CryptoAmount string `json:"cryptoAmount,omitempty"`

	// Only set by the status endpoint
	FeePaid *bool `json:"feePaid,omitempty"`

	// Localized, human-readable description of the status
	Message string `json:"message,omitempty"`

	// Why the supplied transaction was not accepted
	// Enum: [not_found provider_error recipient_mismatch amount_insufficient sender_mismatch transaction_failed]
	Reason string `json:"reason,omitempty"`

	// Address the fee has to be sent to
	ReceivingAddress string `json:"receivingAddress,omitempty"`

	// Required: true
	// Enum: [no_registration registration_created registration_updated awaiting_payment payment_verified payment_confirmed]
	Status *string `json:"status"`

	// Deadline of the quoted amount
	// Format: date-time
	ValidTo *strfmt.DateTime `json:"validTo,omitempty"`
}

var (
	activationResponseTypeStatusPropEnum []interface{}
	activationResponseTypeReasonPropEnum []interface{}
)

func init() {
	var statuses []string
	if err := json.Unmarshal([]byte(`["no_registration","registration_created","registration_updated","awaiting_payment","payment_verified","payment_confirmed"]`), &statuses); err != nil {
		panic(err)
	}
	for _, v := range statuses {
		activationResponseTypeStatusPropEnum = append(activationResponseTypeStatusPropEnum, v)
	}

	var reasons []string
	if err := json.Unmarshal([]byte(`["not_found","provider_error","recipient_mismatch","amount_insufficient","sender_mismatch","transaction_failed"]`), &reasons); err != nil {
		panic(err)
	}
	for _, v := range reasons {
		activationResponseTypeReasonPropEnum = append(activationResponseTypeReasonPropEnum, v)
	}
}

// Validate validates this activation response
func (m *ActivationResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validateChainItems("availableChains", m.AvailableChains, formats); err != nil {
		res = append(res, err)
	}

	if m.Chain != nil {
		if err := m.Chain.Validate(formats); err != nil {
			if ve, ok := err.(*errors.Validation); ok {
				res = append(res, ve.ValidateName("chain"))
			} else {
				res = append(res, err)
			}
		}
	}

	if !swag.IsZero(m.Reason) {
		if err := validate.EnumCase("reason", "body", m.Reason, activationResponseTypeReasonPropEnum, true); err != nil {
			res = append(res, err)
		}
	}

	if err := validate.Required("status", "body", m.Status); err != nil {
		res = append(res, err)
	} else if err := validate.EnumCase("status", "body", *m.Status, activationResponseTypeStatusPropEnum, true); err != nil {
		res = append(res, err)
	}

	if m.ValidTo != nil {
		if err := validate.FormatOf("validTo", "body", "date-time", m.ValidTo.String(), formats); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}
