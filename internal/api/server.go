package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/arcregistry/wallet-activation/internal/activation"
	"github.com/arcregistry/wallet-activation/internal/activation/verify"
	"github.com/arcregistry/wallet-activation/internal/chain"
	"github.com/arcregistry/wallet-activation/internal/config"
	"github.com/arcregistry/wallet-activation/internal/i18n"
	"github.com/arcregistry/wallet-activation/internal/metrics"
	"github.com/arcregistry/wallet-activation/internal/util"
	"github.com/arcregistry/wallet-activation/internal/wallet"
	"github.com/dropbox/godropbox/time2"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	// Import postgres driver for database/sql package
	_ "github.com/lib/pq"
)

// ActivationService drives the activation payment flow of a wallet.
type ActivationService interface {
	Check(ctx context.Context, req activation.CheckRequest) (*activation.Result, error)
	ManualVerify(ctx context.Context, req activation.ManualVerifyRequest) (*activation.Result, error)
	PaymentStatus(ctx context.Context, walletAddress string) (*activation.Result, error)
}

type Router struct {
	Routes          []*echo.Route
	Root            *echo.Group
	Management      *echo.Group
	APIV1Activation *echo.Group
	APIV1Wallet     *echo.Group
}

// Server is a central struct keeping all the dependencies.
// It is initialized with wire, which handles making the new instances of the components
// in the right order. To add a new component, 3 steps are required:
// - declaring it in this struct
// - adding a provider function in providers.go
// - adding the provider's function name to the arguments of wire.Build() in wire.go
//
// Components labeled as `wire:"-"` will be skipped and have to be initialized after the InitNewServer* call.
// For more information about wire refer to https://pkg.go.dev/github.com/google/wire
type Server struct {
	// skip wire:
	// -> initialized with router.Init(s) function
	Echo   *echo.Echo `wire:"-"`
	Router *Router    `wire:"-"`

	Config     config.Server
	DB         *sql.DB
	I18n       *i18n.Service
	Clock      time2.Clock
	Metrics    *metrics.Service
	Dialer     *verify.EthDialer
	Chains     chain.Service
	Wallets    wallet.Service
	Activation ActivationService
}

// newServerWithComponents is used by wire to initialize the server components.
// Components not listed here won't be handled by wire and should be initialized separately.
// Components which shouldn't be handled must be labeled `wire:"-"` in Server struct.
func newServerWithComponents(
	cfg config.Server,
	db *sql.DB,
	i18n *i18n.Service,
	clock time2.Clock,
	metrics *metrics.Service,
	dialer *verify.EthDialer,
	chains chain.Service,
	wallets wallet.Service,
	activation ActivationService,
) *Server {
	return &Server{
		Config:     cfg,
		DB:         db,
		I18n:       i18n,
		Clock:      clock,
		Metrics:    metrics,
		Dialer:     dialer,
		Chains:     chains,
		Wallets:    wallets,
		Activation: activation,
	}
}

func NewServer(config config.Server) *Server {
	s := &Server{
		Config: config,
	}

	return s
}

func (s *Server) Ready() bool {
	if err := util.IsStructInitialized(s); err != nil {
		log.Debug().Err(err).Msg("Server is not fully initialized")
		return false
	}

	return true
}

func (s *Server) Start() error {
	if !s.Ready() {
		return errors.New("server is not ready")
	}

	if err := s.Echo.Start(s.Config.Echo.ListenAddress); err != nil {
		return fmt.Errorf("failed to start echo server: %w", err)
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) []error {
	log.Warn().Msg("Shutting down server")

	var errs []error

	if s.Dialer != nil {
		log.Debug().Msg("Closing RPC connections")
		s.Dialer.Close()
	}

	if s.DB != nil {
		log.Debug().Msg("Closing database connection")

		if err := s.DB.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
			log.Error().Err(err).Msg("Failed to close database connection")
			errs = append(errs, err)
		}
	}

	if s.Echo != nil {
		log.Debug().Msg("Shutting down echo server")

		if err := s.Echo.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to shutdown echo server")
			errs = append(errs, err)
		}
	}

	return errs
}
