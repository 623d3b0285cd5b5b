package activation

import (
	"context"
	"errors"
	"time"

	"github.com/arcregistry/wallet-activation/internal/activation/verify"
	"github.com/arcregistry/wallet-activation/internal/data"
	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownChain is returned when the requested chain does not exist or is inactive.
	ErrUnknownChain = errors.New("unknown chain")
	// ErrChainUnavailable is returned when no chain could be selected at all.
	ErrChainUnavailable = errors.New("no chain available")
	// ErrConfiguration is returned when the selected chain lacks its receiving address.
	ErrConfiguration = errors.New("chain misconfigured")
	// ErrRegistrationNotFound is returned by ManualVerify for wallets that never registered on the chain.
	ErrRegistrationNotFound = errors.New("registration not found")
)

type Status string

const (
	StatusNoRegistration      Status = "no_registration"
	StatusRegistrationCreated Status = "registration_created"
	StatusRegistrationUpdated Status = "registration_updated"
	StatusAwaitingPayment     Status = "awaiting_payment"
	StatusPaymentVerified     Status = "payment_verified"
	StatusPaymentConfirmed    Status = "payment_confirmed"
)

func (s Status) String() string {
	return string(s)
}

// Quoter converts the fiat fee into a native amount.
type Quoter interface {
	Quote(ctx context.Context, fiatAmount decimal.Decimal, fiat string, coinID string) (decimal.Decimal, error)
}

// Verifier checks a transaction hash against the expected payment.
type Verifier interface {
	Verify(ctx context.Context, req verify.Request) verify.Result
}

type Config struct {
	FeeFiatAmount        decimal.Decimal
	FiatCurrency         string
	RegistrationValidity time.Duration
	DefaultChainID       int
}

type CheckRequest struct {
	WalletAddress   string
	ChainID         *int
	TransactionHash string
}

type ManualVerifyRequest struct {
	WalletAddress   string
	ChainID         *int
	TransactionHash string
}

// Result is the outcome of an activation request. Only the fields relevant
// for Status are set.
type Result struct {
	Status           Status
	WalletAddress    string
	Registration     *data.Registration
	ReceivingAddress string
	Chain            *data.Chain
	AvailableChains  []*data.Chain
	Reason           verify.Reason
	FeePaid          *bool
	// Promoted is set when this request flipped the wallet's fee_paid flag.
	Promoted bool
}

// CryptoAmount returns the quoted amount or zero if no registration is attached.
func (r *Result) CryptoAmount() decimal.Decimal {
	if r.Registration == nil {
		return decimal.Zero
	}

	return r.Registration.CryptoAmount
}
