package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// ChainItem chain item
type ChainItem struct {

	// Required: true
	ChainID *int64 `json:"chainId"`

	ExplorerURL string `json:"explorerUrl,omitempty"`

	IconURL string `json:"iconUrl,omitempty"`

	IsTestnet bool `json:"isTestnet"`

	// Required: true
	Name *string `json:"name"`

	// Number of decimals of the native currency
	NativeDecimals int64 `json:"nativeDecimals"`

	// Required: true
	Symbol *string `json:"symbol"`
}

// Validate validates this chain item
func (m *ChainItem) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("chainId", "body", m.ChainID); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("name", "body", m.Name); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("symbol", "body", m.Symbol); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// GetChainsResponse get chains response
type GetChainsResponse struct {

	// Required: true
	Chains []*ChainItem `json:"chains"`
}

// Validate validates this get chains response
func (m *GetChainsResponse) Validate(formats strfmt.Registry) error {
	if err := validate.Required("chains", "body", m.Chains); err != nil {
		return err
	}

	return validateChainItems("chains", m.Chains, formats)
}

func validateChainItems(name string, items []*ChainItem, formats strfmt.Registry) error {
	for i := 0; i < len(items); i++ {
		if items[i] == nil {
			continue
		}

		if err := items[i].Validate(formats); err != nil {
			if ve, ok := err.(*errors.Validation); ok {
				return ve.ValidateName(name)
			}
			return err
		}
	}

	return nil
}
