package metrics

import (
	"database/sql"
	"strconv"

	"github.com/arcregistry/wallet-activation/internal/config"
	"github.com/dlmiddlecote/sqlstats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
)

const namespace = "wallet_activation"

// Service owns the Prometheus registry of a server instance. Every server gets its
// own registry so parallel test servers do not collide on registration.
type Service struct {
	Registry *prometheus.Registry

	sourceAttempts    *prometheus.CounterVec
	activationResults *prometheus.CounterVec
	walletPromotions  prometheus.Counter
}

func New(cfg config.Server, db *sql.DB) (*Service, error) {
	registry := prometheus.NewRegistry()

	s := &Service{
		Registry: registry,
		sourceAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "verifier",
			Name:      "source_attempts_total",
			Help:      "Transaction lookups per verification source and outcome.",
		}, []string{"chain_id", "source", "outcome"}),
		activationResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "activation",
			Name:      "results_total",
			Help:      "Activation requests by operation and resulting status.",
		}, []string{"operation", "status", "reason"}),
		walletPromotions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wallet",
			Name:      "promotions_total",
			Help:      "Wallets unlocked by a confirmed activation payment.",
		}),
	}

	collectorsToRegister := []prometheus.Collector{
		s.sourceAttempts,
		s.activationResults,
		s.walletPromotions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}

	if db != nil {
		collectorsToRegister = append(collectorsToRegister, sqlstats.NewStatsCollector(cfg.Database.Database, db))
	}

	for _, c := range collectorsToRegister {
		if err := registry.Register(c); err != nil {
			log.Error().Err(err).Msg("Failed to register metrics collector")
			return nil, err
		}
	}

	return s, nil
}

// ObserveSourceAttempt records the outcome of a single verification source lookup.
func (s *Service) ObserveSourceAttempt(chainID int, source string, outcome string) {
	s.sourceAttempts.WithLabelValues(strconv.Itoa(chainID), source, outcome).Inc()
}

func (s *Service) ObserveActivation(operation string, status string, reason string) {
	s.activationResults.WithLabelValues(operation, status, reason).Inc()
}

func (s *Service) ObserveWalletPromotion() {
	s.walletPromotions.Inc()
}
