//go:build wireinject

package api

import (
	"database/sql"
	"testing"

	"github.com/arcregistry/wallet-activation/internal/activation"
	"github.com/arcregistry/wallet-activation/internal/activation/registration"
	"github.com/arcregistry/wallet-activation/internal/chain"
	"github.com/arcregistry/wallet-activation/internal/config"
	"github.com/arcregistry/wallet-activation/internal/data/store"
	"github.com/arcregistry/wallet-activation/internal/wallet"
	"github.com/google/wire"
)

// INJECTORS - https://github.com/google/wire/blob/main/docs/guide.md#injectors

// serviceSet groups the default set of providers that are required for initing a server
var serviceSet = wire.NewSet(
	newServerWithComponents,
	NewI18N,
	NewMetrics,
	NewClock,
	storeSet,
	NewChainService,
	NewWalletService,
	NewRegistrationAccessor,
	NewPriceFeed,
	NewQuoteCalculator,
	NewEthDialer,
	NewVerifier,
	activationServiceSet,
)

var storeSet = wire.NewSet(
	NewStore,
	wire.Bind(new(chain.Store), new(*store.Postgres)),
	wire.Bind(new(registration.Store), new(*store.Postgres)),
	wire.Bind(new(wallet.Store), new(*store.Postgres)),
)

var activationServiceSet = wire.NewSet(
	NewActivationService,
	wire.Bind(new(ActivationService), new(*activation.Service)),
)

// InitNewServer returns a new Server instance.
func InitNewServer(
	_ config.Server,
) (*Server, error) {
	wire.Build(serviceSet, NewDB, NoTest)
	return new(Server), nil
}

// InitNewServerWithDB returns a new Server instance with the given DB instance.
// All the other components are initialized via go wire according to the configuration.
func InitNewServerWithDB(
	_ config.Server,
	_ *sql.DB,
	t ...*testing.T,
) (*Server, error) {
	wire.Build(serviceSet)
	return new(Server), nil
}
