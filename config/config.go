package config

import (
	"log"

	"github.com/spf13/viper"
)

// RouteConfig maps a path prefix to the upstream service that handles it.
type RouteConfig struct {
	Prefix   string `mapstructure:"prefix"`
	Upstream string `mapstructure:"upstream"`
}

type Config struct {
	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	JWT struct {
		SecretKey string `mapstructure:"secret_key"`
		// AccessTokenExpiration is the access token lifetime in seconds.
		// Also used as the blacklist-row expiry fallback when a token's
		// own expiry claim cannot be read.
		AccessTokenExpiration int64 `mapstructure:"access_token_expiration"`
	} `mapstructure:"jwt"`
	Gateway struct {
		// CheckRevocation enables the per-request blacklist lookup in the
		// authentication filter. Disabling it restores signature-only
		// validation.
		CheckRevocation bool `mapstructure:"check_revocation"`
		// OpenPaths overrides the built-in open-path patterns when non-empty.
		OpenPaths []string      `mapstructure:"open_paths"`
		Routes    []RouteConfig `mapstructure:"routes"`
	} `mapstructure:"gateway"`
	Blacklist struct {
		// CacheTTLSeconds caps how long a positive blacklist hit may live in
		// Redis before falling back to the database.
		CacheTTLSeconds int64 `mapstructure:"cache_ttl_seconds"`
		// CleanupSchedule is a cron expression for the expired-token sweep.
		// Empty disables in-process scheduling; the sweep endpoint remains
		// available for external cron or admin use.
		CleanupSchedule string `mapstructure:"cleanup_schedule"`
	} `mapstructure:"blacklist"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`
}

var AppConfig Config

func LoadConfig(path string) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yml")

	viper.SetDefault("jwt.access_token_expiration", 900)
	viper.SetDefault("blacklist.cache_ttl_seconds", 300)
	viper.SetDefault("gateway.check_revocation", true)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}
}
