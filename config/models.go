package config

import "time"

const (
	RelayEndpointKey = "RelayEndpoint"
	WalletAddressKey = "WalletAddress"
	RatesURLKey      = "RatesURL"
	CurrencyKey      = "Currency"
)

type AppConfig struct {
	LinkPrefix    string        `envconfig:"LINK_PREFIX" default:"https://www.awallet.io/"`
	RelayEndpoint string        `envconfig:"RELAY_ENDPOINT" default:"http://stormbird.duckdns.org:8080/api/claimToken"`
	RelayTimeout  time.Duration `envconfig:"RELAY_TIMEOUT" default:"30s"`
	RelayEncoding string        `envconfig:"RELAY_ENCODING" default:"form"`
	WalletAddress string        `envconfig:"WALLET_ADDRESS"`
	TokenName     string        `envconfig:"TOKEN_NAME" default:"Tickets"`
	TokenSymbol   string        `envconfig:"TOKEN_SYMBOL" default:"TKT"`
	RatesURL      string        `envconfig:"RATES_URL"`
	Currency      string        `envconfig:"CURRENCY" default:"USD"`
	Workdir       string        `envconfig:"WORK_DIR"`
	Port          string        `envconfig:"PORT" default:"1620"`
	DatabaseUri   string        `envconfig:"DATABASE_URI" default:"tickethub.db"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"4"`
	LogToFile     bool          `envconfig:"LOG_TO_FILE" default:"true"`
	LogDBQueries  bool          `envconfig:"LOG_DB_QUERIES" default:"false"`
	JWTSecret     string        `envconfig:"JWT_SECRET"`
}

type Config interface {
	Get(key string) (string, error)
	SetIgnore(key string, value string) error
	SetUpdate(key string, value string) error
	GetEnv() *AppConfig
	GetLinkPrefix() string
	GetRelayEndpoint() string
	SetRelayEndpoint(value string) error
	GetRelayTimeout() time.Duration
	GetRelayEncoding() string
	GetWalletAddress() string
	SetWalletAddress(value string) error
	GetRatesURL() string
	SetRatesURL(value string) error
	GetCurrency() string
	SetCurrency(value string) error
	GetTokenName() string
	GetTokenSymbol() string
	GetJWTSecret() string
}
