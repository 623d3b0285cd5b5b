package wallet

import (
	"github.com/arcregistry/wallet-activation/internal/data"
	"github.com/arcregistry/wallet-activation/internal/types"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
)

// ToTypes converts Wallet to WalletResponse
func (w *Wallet) ToTypes() *types.WalletResponse {
	res := &types.WalletResponse{
		WalletAddress:  swag.String(w.Address),
		FeePaid:        swag.Bool(w.FeePaid),
		SetupStep:      swag.Int64(int64(w.SetupStep)),
		SetupCompleted: w.SetupCompleted,
	}

	if w.LastLogin != nil {
		lastLogin := strfmt.DateTime(*w.LastLogin)
		res.LastLogin = &lastLogin
	}

	return res
}

// ChainToChainItem converts data.Chain to ChainItem
func ChainToChainItem(chain *data.Chain) *types.ChainItem {
	item := &types.ChainItem{
		ChainID:        swag.Int64(int64(chain.ChainID)),
		Name:           swag.String(chain.Name),
		Symbol:         swag.String(chain.Symbol),
		NativeDecimals: int64(chain.NativeDecimals),
		IsTestnet:      chain.IsTestnet,
	}

	// Set optional fields if they are valid
	if chain.ExplorerURL.Valid {
		item.ExplorerURL = chain.ExplorerURL.String
	}
	if chain.IconURL.Valid {
		item.IconURL = chain.IconURL.String
	}

	return item
}
