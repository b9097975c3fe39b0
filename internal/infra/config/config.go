package config

// Layered configuration: defaults -> config.yaml -> .env file -> environment
// variables -> command line flags. Later layers win.

import (
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Crypto   CryptoConfig   `mapstructure:"crypto"`
	App      AppConfig      `mapstructure:"app"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
}

// CryptoConfig holds explorer API credentials. TONAPIToken is a tonapi.io
// bearer token, EtherscanToken an api.etherscan.io key (shared by ETH and USDT).
// blockchain.info needs no credential.
type CryptoConfig struct {
	TONAPIToken    string `mapstructure:"tonapi_token"`
	EtherscanToken string `mapstructure:"etherscan_token"`
}

type AppConfig struct {
	DataDir        string `mapstructure:"data_dir"`
	CheckInterval  int    `mapstructure:"check_interval"`  // seconds between monitor cycles
	RequestTimeout int    `mapstructure:"request_timeout"` // seconds per explorer API call
	FetchLimit     int    `mapstructure:"fetch_limit"`     // transactions fetched per wallet per cycle
	MaxFileSize    int64  `mapstructure:"max_file_size"`   // bytes, for text processing uploads
}

type MetricsConfig struct {
	ListenAddr string `mapstructure:"listen_addr"` // empty disables the /metrics server
}

func LoadConfig() (*Config, error) {
	godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.ReadInConfig() // missing config.yaml is fine

	v.SetConfigType("env")
	v.SetConfigFile(".env")
	v.ReadInConfig() // missing .env is fine

	v.AutomaticEnv()
	setupEnvAliases(v)
	setupFlags(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.data_dir", "data")
	v.SetDefault("app.check_interval", 30)
	v.SetDefault("app.request_timeout", 10)
	v.SetDefault("app.fetch_limit", 5)
	v.SetDefault("app.max_file_size", int64(10*1024*1024))
	v.SetDefault("metrics.listen_addr", ":8000")
}

func setupEnvAliases(v *viper.Viper) {
	aliases := map[string][]string{
		"telegram.bot_token":     {"TELEGRAM_BOT_TOKEN", "BOT_TOKEN"},
		"crypto.tonapi_token":    {"TONAPI_TOKEN"},
		"crypto.etherscan_token": {"ETHERSCAN_TOKEN"},
		"app.data_dir":           {"DATA_DIR"},
		"app.check_interval":     {"CHECK_INTERVAL"},
		"app.request_timeout":    {"REQUEST_TIMEOUT"},
		"app.fetch_limit":        {"FETCH_LIMIT"},
		"app.max_file_size":      {"MAX_FILE_SIZE"},
		"metrics.listen_addr":    {"METRICS_ADDR"},
	}
	for key, envs := range aliases {
		args := append([]string{key}, envs...)
		v.BindEnv(args...)
	}
}

func setupFlags(v *viper.Viper) {
	if pflag.Lookup("data-dir") == nil {
		pflag.String("data-dir", "", "directory for wallets.json and stats.json")
		pflag.Int("check-interval", 0, "seconds between wallet monitor cycles")
		pflag.String("metrics-addr", "", "listen address for the /metrics server")
	}
	pflag.Parse()

	if f := pflag.Lookup("data-dir"); f != nil && f.Changed {
		v.Set("app.data_dir", f.Value.String())
	}
	if f := pflag.Lookup("check-interval"); f != nil && f.Changed {
		v.Set("app.check_interval", f.Value.String())
	}
	if f := pflag.Lookup("metrics-addr"); f != nil && f.Changed {
		v.Set("metrics.listen_addr", f.Value.String())
	}
}
