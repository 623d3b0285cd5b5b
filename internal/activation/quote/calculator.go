package quote

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/arcregistry/wallet-activation/internal/util"
	"github.com/dropbox/godropbox/time2"
	pkgErrors "github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ErrPriceFeedUnavailable is returned whenever no usable price could be obtained.
// Callers should treat it as retryable.
var ErrPriceFeedUnavailable = errors.New("price feed unavailable")

const (
	// MaxCacheTTL bounds how stale a cached price may get.
	MaxCacheTTL = 5 * time.Minute

	// AmountPrecision is the number of decimal places quoted amounts are rounded up to.
	AmountPrecision = 8
)

type cacheKey struct {
	coinID string
	fiat   string
}

type cachedPrice struct {
	price     decimal.Decimal
	fetchedAt time.Time
}

// Calculator converts fiat fees into native amounts. Prices are cached per
// (coin, fiat) for ttl based on the injected clock.
type Calculator struct {
	feed  PriceFeed
	clock time2.Clock
	ttl   time.Duration

	mu    sync.Mutex
	cache map[cacheKey]cachedPrice
}

func NewCalculator(feed PriceFeed, clock time2.Clock, ttl time.Duration) *Calculator {
	if ttl > MaxCacheTTL {
		ttl = MaxCacheTTL
	}
	if ttl < 0 {
		ttl = 0
	}

	return &Calculator{
		feed:  feed,
		clock: clock,
		ttl:   ttl,
		cache: make(map[cacheKey]cachedPrice),
	}
}

// Quote returns fiatAmount expressed in the native currency identified by coinID,
// rounded up to AmountPrecision decimals.
func (c *Calculator) Quote(ctx context.Context, fiatAmount decimal.Decimal, fiat string, coinID string) (decimal.Decimal, error) {
	if !fiatAmount.IsPositive() {
		return decimal.Zero, pkgErrors.Errorf("fiat amount must be positive, got %s", fiatAmount)
	}

	price, err := c.price(ctx, coinID, fiat)
	if err != nil {
		return decimal.Zero, err
	}

	return fiatAmount.DivRound(price, AmountPrecision+8).RoundCeil(AmountPrecision), nil
}

func (c *Calculator) price(ctx context.Context, coinID string, fiat string) (decimal.Decimal, error) {
	key := cacheKey{coinID: coinID, fiat: strings.ToLower(fiat)}
	now := c.clock.Now()

	c.mu.Lock()
	cached, ok := c.cache[key]
	c.mu.Unlock()

	if ok && now.Sub(cached.fetchedAt) < c.ttl {
		return cached.price, nil
	}

	price, err := c.feed.Price(ctx, key.coinID, key.fiat)
	if err != nil {
		util.LogFromContext(ctx).Warn().Err(err).Str("coin_id", coinID).Str("fiat", key.fiat).Msg("Failed to fetch price")
		return decimal.Zero, pkgErrors.Wrap(ErrPriceFeedUnavailable, err.Error())
	}

	if !price.IsPositive() {
		util.LogFromContext(ctx).Warn().Str("price", price.String()).Str("coin_id", coinID).Msg("Price feed returned non-positive price")
		return decimal.Zero, pkgErrors.Wrapf(ErrPriceFeedUnavailable, "non-positive price %s for %s", price, coinID)
	}

	c.mu.Lock()
	c.cache[key] = cachedPrice{price: price, fetchedAt: now}
	c.mu.Unlock()

	return price, nil
}
