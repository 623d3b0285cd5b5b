package verify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// HTTPDoer abstracts http.Client for tests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

const maxExplorerBodyBytes = 1 << 20

// explorerSource queries an Etherscan compatible block-explorer API through its
// JSON-RPC proxy module.
type explorerSource struct {
	apiURL  string
	apiKey  string
	chainID int
	client  HTTPDoer
}

type explorerEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type explorerTransaction struct {
	Hash        common.Hash     `json:"hash"`
	BlockNumber *hexutil.Big    `json:"blockNumber"`
	From        common.Address  `json:"from"`
	To          *common.Address `json:"to"`
	Value       *hexutil.Big    `json:"value"`
}

type explorerReceipt struct {
	Status      *hexutil.Uint64 `json:"status"`
	BlockNumber *hexutil.Big    `json:"blockNumber"`
}

func newExplorerSource(apiURL string, apiKey string, chainID int, client HTTPDoer) *explorerSource {
	return &explorerSource{
		apiURL:  apiURL,
		apiKey:  apiKey,
		chainID: chainID,
		client:  client,
	}
}

func (s *explorerSource) Name() string {
	return SourceExplorer
}

func (s *explorerSource) Attempt(ctx context.Context, txHash common.Hash) (*Transfer, error) {
	var tx explorerTransaction
	found, err := s.call(ctx, "eth_getTransactionByHash", txHash, &tx)
	if err != nil {
		return nil, err
	}
	if !found || tx.BlockNumber == nil {
		return nil, ErrTransactionNotFound
	}

	var receipt explorerReceipt
	found, err = s.call(ctx, "eth_getTransactionReceipt", txHash, &receipt)
	if err != nil {
		return nil, err
	}
	if !found || receipt.Status == nil {
		return nil, ErrTransactionNotFound
	}

	transfer := &Transfer{
		Hash:        tx.Hash,
		From:        tx.From,
		To:          tx.To,
		Value:       tx.Value.ToInt(),
		BlockNumber: tx.BlockNumber.ToInt().Uint64(),
		Failed:      uint64(*receipt.Status) != 1,
	}
	if transfer.Value == nil {
		return nil, errors.New("explorer returned transaction without value")
	}

	return transfer, nil
}

// call performs one proxy request and decodes its result into out.
// found is false if the explorer answered with a null result.
func (s *explorerSource) call(ctx context.Context, action string, txHash common.Hash, out interface{}) (found bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL, nil)
	if err != nil {
		return false, errors.Wrap(err, "failed to build explorer request")
	}

	values := url.Values{}
	values.Set("chainid", strconv.Itoa(s.chainID))
	values.Set("module", "proxy")
	values.Set("action", action)
	values.Set("txhash", txHash.Hex())
	if s.apiKey != "" {
		values.Set("apikey", s.apiKey)
	}
	req.URL.RawQuery = values.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return false, errors.Wrapf(err, "explorer request %s failed", action)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxExplorerBodyBytes))
	if err != nil {
		return false, errors.Wrap(err, "failed to read explorer response")
	}

	if resp.StatusCode != http.StatusOK {
		return false, errors.Errorf("explorer returned status %d: %s", resp.StatusCode, truncate(string(body)))
	}

	var env explorerEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return false, errors.Wrap(err, "failed to decode explorer response")
	}

	if env.Error != nil {
		return false, errors.Errorf("explorer error %d: %s", env.Error.Code, env.Error.Message)
	}

	result := strings.TrimSpace(string(env.Result))
	switch {
	case result == "" || result == "null":
		return false, nil
	case strings.HasPrefix(result, `"`):
		// rate limits and key errors come back as plain strings
		var msg string
		_ = json.Unmarshal(env.Result, &msg)
		return false, errors.Errorf("explorer rejected request: %s %s", env.Message, msg)
	}

	if err := json.Unmarshal(env.Result, out); err != nil {
		return false, errors.Wrap(err, "failed to decode explorer result")
	}

	return true, nil
}

func truncate(s string) string {
	const limit = 256
	s = strings.TrimSpace(s)
	if len(s) > limit {
		return s[:limit]
	}
	return s
}
