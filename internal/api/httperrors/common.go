package httperrors

import (
	"net/http"

	"github.com/arcregistry/wallet-activation/internal/types"
)

var (
	ErrBadRequestUnknownChain      = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeCHAINUNAVAILABLE, "The requested chain is not available.")
	ErrInternalNoChainConfigured   = NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeCHAINUNAVAILABLE, "No chain is configured for activation payments.")
	ErrInternalChainMisconfigured  = NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeCONFIGURATIONERROR, "The chain is missing its receiving address.")
	ErrServiceUnavailablePriceFeed = NewHTTPError(http.StatusServiceUnavailable, types.PublicHTTPErrorTypePRICEFEEDUNAVAILABLE, "The price feed is currently unavailable, please retry.").WithRetryAfter(30)
	ErrNotFoundRegistration        = NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeREGISTRATIONNOTFOUND, "No registration exists for this wallet.")
	ErrNotFoundWallet              = NewHTTPError(http.StatusNotFound, types.PublicHTTPErrorTypeWALLETNOTFOUND, "Wallet not found.")
	ErrTooManyRequests             = NewHTTPError(http.StatusTooManyRequests, types.PublicHTTPErrorTypeRATELIMITED, "Too many requests, please slow down.").WithRetryAfter(1)
)
