package quote_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arcregistry/wallet-activation/internal/activation/quote"
	"github.com/dropbox/godropbox/time2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFeed struct {
	price decimal.Decimal
	err   error
	calls atomic.Int32
}

func (f *stubFeed) Price(_ context.Context, _ string, _ string) (decimal.Decimal, error) {
	f.calls.Add(1)
	return f.price, f.err
}

func TestQuoteRoundsUp(t *testing.T) {
	feed := &stubFeed{price: decimal.RequireFromString("3000")}
	calc := quote.NewCalculator(feed, time2.NewMockClock(time.Now()), time.Minute)

	amount, err := calc.Quote(t.Context(), decimal.NewFromInt(5), "usd", "ethereum")
	require.NoError(t, err)

	// 5 / 3000 = 0.0016666... rounded up to 8 decimals
	assert.Equal(t, "0.00166667", amount.String())
	assert.True(t, amount.Mul(feed.price).GreaterThanOrEqual(decimal.NewFromInt(5)))
}

func TestQuoteCachesWithinTTL(t *testing.T) {
	clock := time2.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	feed := &stubFeed{price: decimal.RequireFromString("2")}
	calc := quote.NewCalculator(feed, clock, time.Minute)
	ctx := t.Context()

	_, err := calc.Quote(ctx, decimal.NewFromInt(5), "usd", "ethereum")
	require.NoError(t, err)
	_, err = calc.Quote(ctx, decimal.NewFromInt(5), "USD", "ethereum")
	require.NoError(t, err)
	assert.Equal(t, int32(1), feed.calls.Load())

	// different coin is cached separately
	_, err = calc.Quote(ctx, decimal.NewFromInt(5), "usd", "binancecoin")
	require.NoError(t, err)
	assert.Equal(t, int32(2), feed.calls.Load())

	clock.Advance(time.Minute)
	feed.price = decimal.RequireFromString("4")

	amount, err := calc.Quote(ctx, decimal.NewFromInt(5), "usd", "ethereum")
	require.NoError(t, err)
	assert.Equal(t, int32(3), feed.calls.Load())
	assert.Equal(t, "1.25", amount.String())
}

func TestQuoteTTLIsCapped(t *testing.T) {
	clock := time2.NewMockClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	feed := &stubFeed{price: decimal.RequireFromString("2")}
	calc := quote.NewCalculator(feed, clock, time.Hour)

	_, err := calc.Quote(t.Context(), decimal.NewFromInt(5), "usd", "ethereum")
	require.NoError(t, err)

	clock.Advance(quote.MaxCacheTTL)

	_, err = calc.Quote(t.Context(), decimal.NewFromInt(5), "usd", "ethereum")
	require.NoError(t, err)
	assert.Equal(t, int32(2), feed.calls.Load())
}

func TestQuoteFeedFailure(t *testing.T) {
	calc := quote.NewCalculator(&stubFeed{err: errors.New("boom")}, time2.NewMockClock(time.Now()), time.Minute)

	_, err := calc.Quote(t.Context(), decimal.NewFromInt(5), "usd", "ethereum")
	assert.ErrorIs(t, err, quote.ErrPriceFeedUnavailable)

	calc = quote.NewCalculator(&stubFeed{price: decimal.Zero}, time2.NewMockClock(time.Now()), time.Minute)
	_, err = calc.Quote(t.Context(), decimal.NewFromInt(5), "usd", "ethereum")
	assert.ErrorIs(t, err, quote.ErrPriceFeedUnavailable)
}

func TestCoinGeckoPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ethereum", r.URL.Query().Get("ids"))
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		assert.Equal(t, "secret", r.Header.Get("x-cg-demo-api-key"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"ethereum":{"usd":3123.45}}`)
	}))
	defer srv.Close()

	feed := quote.NewCoinGecko(srv.URL, "secret", time.Second)
	price, err := feed.Price(t.Context(), "ethereum", "USD")
	require.NoError(t, err)
	assert.Equal(t, "3123.45", price.String())
}

func TestCoinGeckoPriceErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "status", status: http.StatusTooManyRequests, body: `{"status":{"error_code":429}}`},
		{name: "missing coin", status: http.StatusOK, body: `{}`},
		{name: "missing fiat", status: http.StatusOK, body: `{"ethereum":{"eur":1}}`},
		{name: "malformed", status: http.StatusOK, body: `{"ethereum":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			_, err := quote.NewCoinGecko(srv.URL, "", time.Second).Price(t.Context(), "ethereum", "usd")
			assert.Error(t, err)
		})
	}
}
