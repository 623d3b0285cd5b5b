package types

import (
	"encoding/json"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// PublicHTTPErrorType Type of error returned, should be used for client-side error handling
type PublicHTTPErrorType string

func NewPublicHTTPErrorType(value PublicHTTPErrorType) *PublicHTTPErrorType {
	return &value
}

// Pointer returns a pointer to a freshly-allocated PublicHTTPErrorType.
func (m PublicHTTPErrorType) Pointer() *PublicHTTPErrorType {
	return &m
}

const (
	PublicHTTPErrorTypeGeneric              PublicHTTPErrorType = "generic"
	PublicHTTPErrorTypeRATELIMITED          PublicHTTPErrorType = "RATE_LIMITED"
	PublicHTTPErrorTypeCHAINUNAVAILABLE     PublicHTTPErrorType = "CHAIN_UNAVAILABLE"
	PublicHTTPErrorTypeCONFIGURATIONERROR   PublicHTTPErrorType = "CONFIGURATION_ERROR"
	PublicHTTPErrorTypePRICEFEEDUNAVAILABLE PublicHTTPErrorType = "PRICE_FEED_UNAVAILABLE"
	PublicHTTPErrorTypeREGISTRATIONNOTFOUND PublicHTTPErrorType = "REGISTRATION_NOT_FOUND"
	PublicHTTPErrorTypeWALLETNOTFOUND       PublicHTTPErrorType = "WALLET_NOT_FOUND"
)

var publicHTTPErrorTypeEnum []interface{}

func init() {
	var res []PublicHTTPErrorType
	if err := json.Unmarshal([]byte(`["generic","RATE_LIMITED","CHAIN_UNAVAILABLE","CONFIGURATION_ERROR","PRICE_FEED_UNAVAILABLE","REGISTRATION_NOT_FOUND","WALLET_NOT_FOUND"]`), &res); err != nil {
		panic(err)
	}
	for _, v := range res {
		publicHTTPErrorTypeEnum = append(publicHTTPErrorTypeEnum, v)
	}
}

func (m PublicHTTPErrorType) validatePublicHTTPErrorTypeEnum(path, location string, value PublicHTTPErrorType) error {
	if err := validate.EnumCase(path, location, value, publicHTTPErrorTypeEnum, true); err != nil {
		return err
	}
	return nil
}

// Validate validates this public Http error type
func (m PublicHTTPErrorType) Validate(formats strfmt.Registry) error {
	var res []error

	if err := m.validatePublicHTTPErrorTypeEnum("", "body", m); err != nil {
		return err
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}
