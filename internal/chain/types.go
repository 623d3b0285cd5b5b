package chain

import (
	"context"
	"errors"

	"github.com/arcregistry/wallet-activation/internal/data"
)

var ErrChainNotFound = errors.New("chain not found")

// Store 链配置的只读存储
type Store interface {
	ChainByID(ctx context.Context, chainID int) (*data.Chain, error)
	ActiveChains(ctx context.Context) ([]*data.Chain, error)
}

// Service 定义链配置服务接口
type Service interface {
	// GetChain 根据 chain_id 查询链配置
	GetChain(ctx context.Context, chainID int) (*data.Chain, error)

	// GetActiveChains 查询启用的链配置（按 chain_id 升序）
	GetActiveChains(ctx context.Context) ([]*data.Chain, error)
}

// EndpointSet 单条链的全部外部端点
type EndpointSet struct {
	ChainID          int
	Name             string
	NativeDecimals   int32
	PrimaryRPC       string
	BackupRPCs       []string
	ExplorerAPIURL   string
	ExplorerAPIKey   string
	ReceivingAddress string
	PriceFeedID      string
}

// HasReceivingAddress 是否配置了收款地址
func (e EndpointSet) HasReceivingAddress() bool {
	return e.ReceivingAddress != ""
}
