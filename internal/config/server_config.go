package config

import (
	"path/filepath"
	"runtime"
	"time"

	"github.com/arcregistry/wallet-activation/internal/util"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

type EchoServer struct {
	Debug                          bool
	ListenAddress                  string
	HideInternalServerErrorDetails bool
	EnableCORSMiddleware           bool
	CORSAllowOrigins               []string
	EnableLoggerMiddleware         bool
	EnableRecoverMiddleware        bool
	EnableRequestIDMiddleware      bool
	EnableMetricsMiddleware        bool
}

type LoggerServer struct {
	Level              zerolog.Level
	RequestLevel       zerolog.Level
	LogCaller          bool
	PrettyPrintConsole bool
}

type ManagementServer struct {
	ReadinessTimeout time.Duration
	LivenessTimeout  time.Duration
}

type PathsServer struct {
	MigrationsDir  string
	SeedChainsFile string
}

type I18n struct {
	DefaultLanguage string
	BundleDirAbs    string
}

// Activation configures the payment registration and verification engine.
type Activation struct {
	// Environment is either "development" or "production".
	Environment string

	FeeFiatAmount        string
	FiatCurrency         string
	RegistrationValidity time.Duration
	ToleranceBps         int
	DefaultChainID       int

	PriceFeedURL      string
	PriceFeedAPIKey   string `json:"-"`
	PriceFeedTimeout  time.Duration
	PriceFeedCacheTTL time.Duration

	SourceTimeout time.Duration

	// DevBypassRecipientCheck is only honored by binaries built with the devbypass tag
	// and never when Environment is production.
	DevBypassRecipientCheck bool

	RateLimitPerSecond float64
	RateLimitBurst     int
}

func (a Activation) IsProduction() bool {
	return a.Environment != EnvironmentDevelopment
}

type Server struct {
	Database   Database
	Echo       EchoServer
	Paths      PathsServer
	Management ManagementServer
	Logger     LoggerServer
	I18n       I18n
	Activation Activation
}

// DefaultServiceConfigFromEnv returns the server config as parsed from environment variables
// and their respective defaults defined below.
// We don't expect that ENV_VARs change while we are running our application or our tests
// (and it would be a bad thing to do anyways with parallel testing).
// Do NOT use os.Setenv / os.Unsetenv in tests utilizing DefaultServiceConfigFromEnv()!
func DefaultServiceConfigFromEnv() Server {
	// An `.env.local` file in your project root can override the currently set ENV variables.
	//
	// We never automatically apply `.env.local` when running "go test" as these ENV variables
	// may be sensitive (e.g. secrets to external APIs) and applying them modifies the process
	// global "os.Env" state (it should be applied via t.Setenv instead).
	if !runningInTest() {
		DotEnvTryLoad(filepath.Join(util.GetProjectRootDir(), ".env.local"), util.SetEnvFromDotEnv)
	}

	return Server{
		Database: Database{
			Host:             util.GetEnv("PGHOST", "postgres"),
			Port:             util.GetEnvAsInt("PGPORT", 5432),
			Database:         util.GetEnv("PGDATABASE", "development"),
			Username:         util.GetEnv("PGUSER", "dbuser"),
			Password:         util.GetEnv("PGPASSWORD", ""),
			AdditionalParams: map[string]string{"sslmode": util.GetEnv("PGSSLMODE", "disable")},
			MaxOpenConns:     util.GetEnvAsInt("DB_MAX_OPEN_CONNS", runtime.NumCPU()*2),
			MaxIdleConns:     util.GetEnvAsInt("DB_MAX_IDLE_CONNS", 1),
			ConnMaxLifetime:  time.Second * time.Duration(util.GetEnvAsInt("DB_CONN_MAX_LIFETIME_SEC", 60)),
		},
		Echo: EchoServer{
			Debug:                          util.GetEnvAsBool("SERVER_ECHO_DEBUG", false),
			ListenAddress:                  util.GetEnv("SERVER_ECHO_LISTEN_ADDRESS", ":8080"),
			HideInternalServerErrorDetails: util.GetEnvAsBool("SERVER_ECHO_HIDE_INTERNAL_SERVER_ERROR_DETAILS", true),
			EnableCORSMiddleware:           util.GetEnvAsBool("SERVER_ECHO_ENABLE_CORS_MIDDLEWARE", true),
			CORSAllowOrigins:               util.GetEnvAsStringArr("SERVER_ECHO_CORS_ALLOW_ORIGINS", []string{"*"}),
			EnableLoggerMiddleware:         util.GetEnvAsBool("SERVER_ECHO_ENABLE_LOGGER_MIDDLEWARE", true),
			EnableRecoverMiddleware:        util.GetEnvAsBool("SERVER_ECHO_ENABLE_RECOVER_MIDDLEWARE", true),
			EnableRequestIDMiddleware:      util.GetEnvAsBool("SERVER_ECHO_ENABLE_REQUEST_ID_MIDDLEWARE", true),
			EnableMetricsMiddleware:        util.GetEnvAsBool("SERVER_ECHO_ENABLE_METRICS_MIDDLEWARE", true),
		},
		Paths: PathsServer{
			MigrationsDir:  util.GetEnv("SERVER_PATHS_MIGRATIONS_DIR", filepath.Join(util.GetProjectRootDir(), "/migrations")),
			SeedChainsFile: util.GetEnv("SERVER_PATHS_SEED_CHAINS_FILE", filepath.Join(util.GetProjectRootDir(), "/assets/chains.toml")),
		},
		Management: ManagementServer{
			ReadinessTimeout: time.Second * time.Duration(util.GetEnvAsInt("SERVER_MANAGEMENT_READINESS_TIMEOUT_SEC", 4)),
			LivenessTimeout:  time.Second * time.Duration(util.GetEnvAsInt("SERVER_MANAGEMENT_LIVENESS_TIMEOUT_SEC", 9)),
		},
		Logger: LoggerServer{
			Level:              util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_LEVEL", zerolog.DebugLevel.String())),
			RequestLevel:       util.LogLevelFromString(util.GetEnv("SERVER_LOGGER_REQUEST_LEVEL", zerolog.DebugLevel.String())),
			LogCaller:          util.GetEnvAsBool("SERVER_LOGGER_LOG_CALLER", false),
			PrettyPrintConsole: util.GetEnvAsBool("SERVER_LOGGER_PRETTY_PRINT_CONSOLE", false),
		},
		I18n: I18n{
			DefaultLanguage: util.GetEnv("SERVER_I18N_DEFAULT_LANGUAGE", "en"),
			BundleDirAbs:    util.GetEnv("SERVER_I18N_BUNDLE_DIR_ABS", filepath.Join(util.GetProjectRootDir(), "/web/i18n")),
		},
		Activation: Activation{
			Environment:             util.GetEnvEnum("SERVER_ACTIVATION_ENVIRONMENT", EnvironmentProduction, []string{EnvironmentDevelopment, EnvironmentProduction}),
			FeeFiatAmount:           util.GetEnv("SERVER_ACTIVATION_FEE_FIAT_AMOUNT", "5"),
			FiatCurrency:            util.GetEnv("SERVER_ACTIVATION_FIAT_CURRENCY", "usd"),
			RegistrationValidity:    time.Second * time.Duration(util.GetEnvAsInt("SERVER_ACTIVATION_REGISTRATION_VALIDITY_SEC", 3600)),
			ToleranceBps:            util.GetEnvAsInt("SERVER_ACTIVATION_TOLERANCE_BPS", 100),
			DefaultChainID:          util.GetEnvAsInt("SERVER_ACTIVATION_DEFAULT_CHAIN_ID", 0),
			PriceFeedURL:            util.GetEnv("SERVER_ACTIVATION_PRICE_FEED_URL", "https://api.coingecko.com/api/v3/simple/price"),
			PriceFeedAPIKey:         util.GetEnv("SERVER_ACTIVATION_PRICE_FEED_API_KEY", ""),
			PriceFeedTimeout:        time.Second * time.Duration(util.GetEnvAsInt("SERVER_ACTIVATION_PRICE_FEED_TIMEOUT_SEC", 5)),
			PriceFeedCacheTTL:       time.Second * time.Duration(util.GetEnvAsInt("SERVER_ACTIVATION_PRICE_FEED_CACHE_TTL_SEC", 60)),
			SourceTimeout:           time.Second * time.Duration(util.GetEnvAsInt("SERVER_ACTIVATION_SOURCE_TIMEOUT_SEC", 5)),
			DevBypassRecipientCheck: util.GetEnvAsBool("SERVER_ACTIVATION_DEV_BYPASS_RECIPIENT_CHECK", false),
			RateLimitPerSecond:      util.GetEnvAsFloat("SERVER_ACTIVATION_RATE_LIMIT_PER_SEC", 2),
			RateLimitBurst:          util.GetEnvAsInt("SERVER_ACTIVATION_RATE_LIMIT_BURST", 10),
		},
	}
}

func runningInTest() bool {
	for _, arg := range []string{"-test.v", "-test.run", "-test.paniconexit0", "-test.timeout"} {
		if util.ProcessArgsContain(arg) {
			return true
		}
	}

	return false
}

// DotEnvTryLoad forcefully overrides ENV variables through the supplied dotenv file, if it exists.
func DotEnvTryLoad(absolutePathToEnvFile string, setEnvFn func(k string, v string) error) {
	if err := util.ApplyDotEnvFile(absolutePathToEnvFile, setEnvFn); err != nil {
		log.Debug().Err(err).Str("path", absolutePathToEnvFile).Msg(".env file not applied")
	}
}
