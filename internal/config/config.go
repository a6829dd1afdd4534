package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server   Server   `mapstructure:"server"`
	Database Database `mapstructure:"database"`
	Logger   Logger   `mapstructure:"logger"`
	Platform Platform `mapstructure:"platform"`
	Gateway  Gateway  `mapstructure:"gateway"`
}

// Server holds the configuration for the web server.
type Server struct {
	Port int `mapstructure:"port"`
}

// Database holds the configuration for the database.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Platform holds the ledger rules and the default platform settings.
// Rates and the performance fee are only defaults: the admin can override
// them at runtime via the settings endpoint. Lock periods and the
// termination penalty are fixed rules.
type Platform struct {
	PerformanceFeePercent  float64 `mapstructure:"performance_fee_percent"`
	ProfitLockDays         int     `mapstructure:"profit_lock_days"`
	TerminationLockDays    int     `mapstructure:"termination_lock_days"`
	TerminationPenaltyRate float64 `mapstructure:"termination_penalty_rate"`
	MaturityDays           int     `mapstructure:"maturity_days"`
	NgnToUsd               float64 `mapstructure:"ngn_to_usd"`
	UsdToNgn               float64 `mapstructure:"usd_to_ngn"`
	NgnWithdrawalFee       float64 `mapstructure:"ngn_withdrawal_fee"`
}

// Gateway holds the configuration for the payment provider API.
type Gateway struct {
	BaseURL        string  `mapstructure:"base_url"`
	ApiKey         string  `mapstructure:"apiKey"`
	SecretKey      string  `mapstructure:"secretKey"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or yaml, json

	// Allow environment variables to override config file
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.dsn", "feabscopy.db")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("platform.performance_fee_percent", 30.0)
	viper.SetDefault("platform.profit_lock_days", 15)
	viper.SetDefault("platform.termination_lock_days", 30)
	viper.SetDefault("platform.termination_penalty_rate", 0.10)
	viper.SetDefault("platform.maturity_days", 30)
	viper.SetDefault("platform.ngn_to_usd", 1450.50)
	viper.SetDefault("platform.usd_to_ngn", 1445.00)
	viper.SetDefault("platform.ngn_withdrawal_fee", 100.0)
	viper.SetDefault("gateway.rate_limit", 10)      // requests per second
	viper.SetDefault("gateway.rate_limit_burst", 5) // burst size

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
		err = nil // defaults only
	}

	err = viper.Unmarshal(&config)
	return
}
