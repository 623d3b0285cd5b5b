package verify

import (
	"context"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// TransactionReader 查询交易所需的最小 RPC 接口，*ethclient.Client 实现了该接口
type TransactionReader interface {
	TransactionByHash(ctx context.Context, hash common.Hash) (tx *types.Transaction, isPending bool, err error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// Dialer 根据 URL 返回 RPC 客户端
type Dialer interface {
	Dial(ctx context.Context, url string) (TransactionReader, error)
}

// EthDialer 按 URL 缓存 ethclient 连接，连接失败时下次使用再重试
type EthDialer struct {
	mu      sync.Mutex
	clients map[string]*ethclient.Client
}

func NewEthDialer() *EthDialer {
	return &EthDialer{clients: make(map[string]*ethclient.Client)}
}

//nolint:ireturn
func (d *EthDialer) Dial(ctx context.Context, url string) (TransactionReader, error) {
	if client, ok := d.cached(url); ok {
		return client, nil
	}

	// 锁外拨号，写入前再检查缓存
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		log.Warn().
			Str("url", url).
			Err(err).
			Msg("Failed to connect to RPC node, will retry on next use")
		return nil, errors.Wrap(err, "failed to dial RPC node")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if existing, ok := d.clients[url]; ok {
		client.Close()
		return existing, nil
	}

	d.clients[url] = client
	return client, nil
}

func (d *EthDialer) cached(url string) (*ethclient.Client, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	client, ok := d.clients[url]
	return client, ok
}

// Close 关闭所有客户端连接
func (d *EthDialer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for url, client := range d.clients {
		client.Close()
		delete(d.clients, url)
	}
}

// rpcSource 通过单个 RPC 节点查询交易
type rpcSource struct {
	name    string
	url     string
	chainID *big.Int
	dialer  Dialer
}

func newRPCSource(name string, url string, chainID int, dialer Dialer) *rpcSource {
	return &rpcSource{
		name:    name,
		url:     url,
		chainID: big.NewInt(int64(chainID)),
		dialer:  dialer,
	}
}

func (s *rpcSource) Name() string {
	return s.name
}

func (s *rpcSource) Attempt(ctx context.Context, txHash common.Hash) (*Transfer, error) {
	client, err := s.dialer.Dial(ctx, s.url)
	if err != nil {
		return nil, err
	}

	tx, isPending, err := client.TransactionByHash(ctx, txHash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	// 仍在交易池中的交易视为未找到
	if isPending {
		return nil, ErrTransactionNotFound
	}

	receipt, err := client.TransactionReceipt(ctx, txHash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, errors.Wrap(err, "failed to get transaction receipt")
	}

	from, err := types.Sender(types.LatestSignerForChainID(s.chainID), tx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to recover transaction sender")
	}

	transfer := &Transfer{
		Hash:   tx.Hash(),
		From:   from,
		To:     tx.To(),
		Value:  tx.Value(),
		Failed: receipt.Status != types.ReceiptStatusSuccessful,
	}
	if receipt.BlockNumber != nil {
		transfer.BlockNumber = receipt.BlockNumber.Uint64()
	}

	return transfer, nil
}
