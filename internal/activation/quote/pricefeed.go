package quote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// PriceFeed returns the price of one unit of coinID denominated in fiat.
type PriceFeed interface {
	Price(ctx context.Context, coinID string, fiat string) (decimal.Decimal, error)
}

// HTTPDoer abstracts http.Client for tests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	coinGeckoAPIKeyHeader = "x-cg-demo-api-key"
	maxErrorBodyBytes     = 512
)

// CoinGecko adapts the CoinGecko simple price API.
type CoinGecko struct {
	endpoint string
	apiKey   string
	client   HTTPDoer
}

func NewCoinGecko(endpoint string, apiKey string, timeout time.Duration) *CoinGecko {
	return NewCoinGeckoWithClient(endpoint, apiKey, &http.Client{Timeout: timeout})
}

func NewCoinGeckoWithClient(endpoint string, apiKey string, client HTTPDoer) *CoinGecko {
	return &CoinGecko{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   client,
	}
}

func (c *CoinGecko) Price(ctx context.Context, coinID string, fiat string) (decimal.Decimal, error) {
	fiat = strings.ToLower(fiat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to build price request")
	}

	values := url.Values{}
	values.Set("ids", coinID)
	values.Set("vs_currencies", fiat)
	req.URL.RawQuery = values.Encode()
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(coinGeckoAPIKeyHeader, c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to request price")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return decimal.Zero, errors.Errorf("price feed returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()

	var payload map[string]map[string]json.Number
	if err := decoder.Decode(&payload); err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to decode price response")
	}

	entry, ok := payload[coinID]
	if !ok {
		return decimal.Zero, errors.Errorf("price missing for %s", coinID)
	}

	raw, ok := entry[fiat]
	if !ok {
		return decimal.Zero, errors.Errorf("price of %s missing in %s", coinID, fiat)
	}

	price, err := decimal.NewFromString(raw.String())
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "invalid price %q", raw.String())
	}

	return price, nil
}
