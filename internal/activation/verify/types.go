package verify

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ErrTransactionNotFound is returned by a Source that does not know the transaction
// or only knows it as pending.
var ErrTransactionNotFound = errors.New("transaction not found")

// Reason describes why a transaction was not accepted as payment.
type Reason string

const (
	ReasonNone               Reason = ""
	ReasonNotFound           Reason = "not_found"
	ReasonProviderError      Reason = "provider_error"
	ReasonRecipientMismatch  Reason = "recipient_mismatch"
	ReasonAmountInsufficient Reason = "amount_insufficient"
	ReasonSenderMismatch     Reason = "sender_mismatch"
	ReasonTransactionFailed  Reason = "transaction_failed"
)

// Retryable reports whether verifying the same hash again later may succeed.
func (r Reason) Retryable() bool {
	return r == ReasonNotFound || r == ReasonProviderError
}

func (r Reason) String() string {
	return string(r)
}

// Transfer is a mined native-currency transaction as reported by a Source.
type Transfer struct {
	Hash        common.Hash
	From        common.Address
	To          *common.Address
	Value       *big.Int
	BlockNumber uint64
	Failed      bool
}

// Source locates a transaction on one chain through one provider.
type Source interface {
	Name() string
	Attempt(ctx context.Context, txHash common.Hash) (*Transfer, error)
}

// Result of a verification. Reason is empty when Matched is true.
type Result struct {
	Matched  bool
	Reason   Reason
	Source   string
	Transfer *Transfer
}

// Observer receives one call per source attempt.
type Observer interface {
	ObserveSourceAttempt(chainID int, source string, outcome string)
}

const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
	OutcomeTimeout  = "timeout"
)

type noopObserver struct{}

func (noopObserver) ObserveSourceAttempt(int, string, string) {}
