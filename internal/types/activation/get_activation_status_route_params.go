package activation

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// NewGetActivationStatusRouteParams creates a new GetActivationStatusRouteParams object
// no default values defined in spec.
func NewGetActivationStatusRouteParams() GetActivationStatusRouteParams {
	return GetActivationStatusRouteParams{}
}

// GetActivationStatusRouteParams contains all the bound params for the get activation status route operation
// typically these are obtained from a http.Request
//
// swagger:parameters getActivationStatusRoute
type GetActivationStatusRouteParams struct {

	/*Wallet address to report the payment status for
	  Required: true
	  In: query
	*/
	WalletAddress string `query:"walletAddress"`
}

// Validate validates the bound query params
func (o *GetActivationStatusRouteParams) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.RequiredString("walletAddress", "query", o.WalletAddress); err != nil {
		res = append(res, err)
	} else if err := validate.Pattern("walletAddress", "query", o.WalletAddress, `^0x[0-9a-fA-F]{40}$`); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}
