package verify

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/arcregistry/wallet-activation/internal/chain"
	"github.com/arcregistry/wallet-activation/internal/util"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	SourcePrimaryRPC = "primary_rpc"
	SourceExplorer   = "explorer"

	bpsDenominator = 10000
)

var txHashPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// Options configures a Verifier.
type Options struct {
	// SourceTimeout bounds every single source attempt.
	SourceTimeout time.Duration

	// ToleranceBps is how far (in basis points) a payment may fall short of the
	// expected amount and still be accepted.
	ToleranceBps int

	// BypassRecipientCheck skips the recipient comparison. It only takes effect in
	// binaries built with the devbypass tag and outside of production.
	BypassRecipientCheck bool
	Production           bool
}

// Request describes the payment a transaction is expected to be.
type Request struct {
	TxHash         string
	FromAddress    string
	ToAddress      string
	ExpectedAmount decimal.Decimal
	Chain          chain.EndpointSet
}

// Verifier checks a submitted transaction hash against the expected payment by
// asking the chain's sources in order: primary RPC, backup RPCs, block explorer.
type Verifier struct {
	dialer        Dialer
	httpClient    HTTPDoer
	observer      Observer
	sourceTimeout time.Duration
	toleranceBps  int64
	bypass        bool
}

func New(dialer Dialer, httpClient HTTPDoer, observer Observer, opts Options) (*Verifier, error) {
	if opts.SourceTimeout <= 0 {
		return nil, errors.New("source timeout must be positive")
	}
	if opts.ToleranceBps < 0 || opts.ToleranceBps >= bpsDenominator {
		return nil, errors.Errorf("tolerance must be within [0, %d) basis points, got %d", bpsDenominator, opts.ToleranceBps)
	}

	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if observer == nil {
		observer = noopObserver{}
	}

	bypass := opts.BypassRecipientCheck && bypassCompiledIn && !opts.Production
	if opts.BypassRecipientCheck && !bypass {
		log.Error().
			Bool("compiled_in", bypassCompiledIn).
			Bool("production", opts.Production).
			Msg("Recipient check bypass requested but not permitted, keeping recipient check enabled")
	}
	if bypass {
		log.Warn().Msg("Recipient check bypass is ENABLED, payments to any address will be accepted")
	}

	return &Verifier{
		dialer:        dialer,
		httpClient:    httpClient,
		observer:      observer,
		sourceTimeout: opts.SourceTimeout,
		toleranceBps:  int64(opts.ToleranceBps),
		bypass:        bypass,
	}, nil
}

// RecipientCheckBypassed reports whether this verifier skips the recipient comparison.
func (v *Verifier) RecipientCheckBypassed() bool {
	return v.bypass
}

// Sources returns the ordered sources configured for the chain.
func (v *Verifier) Sources(endpoints chain.EndpointSet) []Source {
	sources := make([]Source, 0, len(endpoints.BackupRPCs)+2)

	if endpoints.PrimaryRPC != "" {
		sources = append(sources, newRPCSource(SourcePrimaryRPC, endpoints.PrimaryRPC, endpoints.ChainID, v.dialer))
	}

	for i, url := range endpoints.BackupRPCs {
		sources = append(sources, newRPCSource(fmt.Sprintf("backup_rpc_%d", i+1), url, endpoints.ChainID, v.dialer))
	}

	if endpoints.ExplorerAPIURL != "" {
		sources = append(sources, newExplorerSource(endpoints.ExplorerAPIURL, endpoints.ExplorerAPIKey, endpoints.ChainID, v.httpClient))
	}

	return sources
}

// Verify locates req.TxHash and checks it against the expected payment.
// Verification failures are reported through Result.Reason, never as error.
func (v *Verifier) Verify(ctx context.Context, req Request) Result {
	return v.VerifyWithSources(ctx, req, v.Sources(req.Chain))
}

func (v *Verifier) VerifyWithSources(ctx context.Context, req Request, sources []Source) Result {
	txHash := strings.TrimSpace(req.TxHash)
	if txHash == "" || !txHashPattern.MatchString(txHash) {
		return Result{Reason: ReasonNotFound}
	}
	hash := common.HexToHash(txHash)

	logger := util.LogFromContext(ctx).With().
		Int("chain_id", req.Chain.ChainID).
		Str("tx_hash", hash.Hex()).
		Logger()

	if len(sources) == 0 {
		logger.Error().Msg("No verification source configured for chain")
		return Result{Reason: ReasonProviderError}
	}

	notFound := false
	for _, src := range sources {
		if ctx.Err() != nil {
			break
		}

		attemptCtx, cancel := context.WithTimeout(ctx, v.sourceTimeout)
		transfer, err := src.Attempt(attemptCtx, hash)
		timedOut := errors.Is(attemptCtx.Err(), context.DeadlineExceeded)
		cancel()

		switch {
		case err == nil:
			v.observer.ObserveSourceAttempt(req.Chain.ChainID, src.Name(), OutcomeFound)
			return v.evaluate(ctx, req, transfer, src.Name())
		case errors.Is(err, ErrTransactionNotFound):
			v.observer.ObserveSourceAttempt(req.Chain.ChainID, src.Name(), OutcomeNotFound)
			logger.Debug().Str("source", src.Name()).Msg("Transaction not found by source")
			notFound = true
		case timedOut:
			v.observer.ObserveSourceAttempt(req.Chain.ChainID, src.Name(), OutcomeTimeout)
			logger.Warn().Err(err).Str("source", src.Name()).Dur("timeout", v.sourceTimeout).Msg("Verification source timed out")
		default:
			v.observer.ObserveSourceAttempt(req.Chain.ChainID, src.Name(), OutcomeError)
			logger.Warn().Err(err).Str("source", src.Name()).Msg("Verification source failed")
		}
	}

	if notFound {
		return Result{Reason: ReasonNotFound}
	}

	return Result{Reason: ReasonProviderError}
}

func (v *Verifier) evaluate(ctx context.Context, req Request, transfer *Transfer, source string) Result {
	res := Result{Source: source, Transfer: transfer}
	logger := util.LogFromContext(ctx).With().
		Int("chain_id", req.Chain.ChainID).
		Str("tx_hash", transfer.Hash.Hex()).
		Str("source", source).
		Logger()

	if transfer.Failed {
		res.Reason = ReasonTransactionFailed
		logger.Info().Msg("Transaction was mined but reverted")
		return res
	}

	if !v.bypass {
		if transfer.To == nil || !strings.EqualFold(transfer.To.Hex(), req.ToAddress) {
			res.Reason = ReasonRecipientMismatch
			logger.Info().Str("expected_to", req.ToAddress).Interface("to", transfer.To).Msg("Transaction recipient does not match")
			return res
		}
	}

	if req.FromAddress != "" && !strings.EqualFold(transfer.From.Hex(), req.FromAddress) {
		res.Reason = ReasonSenderMismatch
		logger.Info().Str("expected_from", req.FromAddress).Str("from", transfer.From.Hex()).Msg("Transaction sender does not match")
		return res
	}

	expected := ToBaseUnits(req.ExpectedAmount, req.Chain.NativeDecimals)
	if !v.withinTolerance(transfer.Value, expected) {
		res.Reason = ReasonAmountInsufficient
		logger.Info().Str("expected_value", expected.String()).Str("value", transfer.Value.String()).Msg("Transaction value is below the expected amount")
		return res
	}

	res.Matched = true
	return res
}

// withinTolerance reports value >= expected * (1 - tolerance).
func (v *Verifier) withinTolerance(value *big.Int, expected *big.Int) bool {
	if value == nil {
		return false
	}

	lhs := new(big.Int).Mul(value, big.NewInt(bpsDenominator))
	rhs := new(big.Int).Mul(expected, big.NewInt(bpsDenominator-v.toleranceBps))

	return lhs.Cmp(rhs) >= 0
}

// ToBaseUnits converts a decimal native amount into the chain's smallest unit, rounding up.
func ToBaseUnits(amount decimal.Decimal, decimals int32) *big.Int {
	return amount.Shift(decimals).Ceil().BigInt()
}
