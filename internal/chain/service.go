package chain

import (
	"context"
	"strings"

	"github.com/arcregistry/wallet-activation/internal/data"
	"github.com/pkg/errors"
)

// service 实现 Service 接口
type service struct {
	store Store
}

// NewService 创建链配置服务
//
//nolint:ireturn
func NewService(store Store) Service {
	return &service{store: store}
}

// GetChain 根据 chain_id 查询链配置
func (s *service) GetChain(ctx context.Context, chainID int) (*data.Chain, error) {
	chain, err := s.store.ChainByID(ctx, chainID)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return nil, ErrChainNotFound
		}
		return nil, errors.Wrap(err, "failed to get chain")
	}

	return chain, nil
}

// GetActiveChains 查询启用的链配置
func (s *service) GetActiveChains(ctx context.Context) ([]*data.Chain, error) {
	chains, err := s.store.ActiveChains(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get active chains")
	}

	return chains, nil
}

// ParseRPCURLs 解析 RPC URL（支持多个，逗号分隔）
func ParseRPCURLs(rpcURL string) []string {
	if rpcURL == "" {
		return nil
	}

	urls := strings.Split(rpcURL, ",")
	result := make([]string, 0, len(urls))

	for _, url := range urls {
		url = strings.TrimSpace(url)
		if url != "" {
			result = append(result, url)
		}
	}

	return result
}

// Endpoints 将链配置转换为端点集合：第一个 RPC 为主节点，其余按顺序作为备用节点
func Endpoints(c *data.Chain) EndpointSet {
	set := EndpointSet{
		ChainID:          c.ChainID,
		Name:             c.Name,
		NativeDecimals:   int32(c.NativeDecimals), //nolint:gosec
		ExplorerAPIURL:   strings.TrimSpace(c.ExplorerAPIURL.String),
		ExplorerAPIKey:   c.ExplorerAPIKey.String,
		ReceivingAddress: data.NormalizeAddress(c.ReceivingAddress.String),
		PriceFeedID:      c.PriceFeedID,
	}

	urls := ParseRPCURLs(c.RPCURL)
	if len(urls) > 0 {
		set.PrimaryRPC = urls[0]
		set.BackupRPCs = urls[1:]
	}

	return set
}
