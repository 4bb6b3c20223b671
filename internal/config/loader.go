package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load reads config.yaml from the given search paths, with CATATDUIT_* env
// variables taking precedence over file values.
func Load(searchPaths ...string) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if len(searchPaths) == 0 {
		searchPaths = []string{"/config", "."}
	}
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("CATATDUIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Running on env vars alone is allowed; only a malformed file is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "go-catatduit")
	v.SetDefault("app.env", "local")
	v.SetDefault("app.http_port", 8000)
	v.SetDefault("app.http_timeout", "30s")
	v.SetDefault("app.graceful_timeout", "10s")
	v.SetDefault("app.log_level", "debug")

	v.SetDefault("telegram.base_url", "https://api.telegram.org")
	v.SetDefault("telegram.file_base_url", "https://api.telegram.org/file")
	v.SetDefault("telegram.timeout", "30s")
	v.SetDefault("telegram.retry_count", 3)

	v.SetDefault("inference.confidence_threshold", 0.85)
	v.SetDefault("inference.pending_ttl", "10m")
	v.SetDefault("analytics.cache_ttl", "15m")

	v.SetDefault("exponential_backoff.max_retries", 3)
	v.SetDefault("exponential_backoff.max_backoff_time", "30s")
	v.SetDefault("exponential_backoff.backoff_multiplier", 2.0)
}
