package config

import (
	"time"
)

type (
	Config struct {
		App                App      `json:"app" mapstructure:"app"`
		Postgres           Postgres `json:"postgres" mapstructure:"postgres"`
		Redis              Redis    `json:"redis" mapstructure:"redis"`
		SecretKey          string   `json:"secret_key" mapstructure:"secret_key"`
		NewRelicLicenseKey string   `json:"new_relic_license_key" mapstructure:"new_relic_license_key"`

		Telegram           Telegram                 `json:"telegram" mapstructure:"telegram"`
		OCRProvider        HTTPConfiguration        `json:"ocr_provider" mapstructure:"ocr_provider"`
		Inference          InferenceConfig          `json:"inference" mapstructure:"inference"`
		Analytics          AnalyticsConfig          `json:"analytics" mapstructure:"analytics"`
		ExponentialBackoff ExponentialBackOffConfig `json:"exponential_backoff" mapstructure:"exponential_backoff"`
	}

	App struct {
		Env             string        `json:"env" mapstructure:"env"`
		HTTPPort        int           `json:"http_port" mapstructure:"http_port"`
		HTTPTimeout     time.Duration `json:"http_timeout" mapstructure:"http_timeout"`
		GracefulTimeout time.Duration `json:"graceful_timeout" mapstructure:"graceful_timeout"`
		Name            string        `json:"name" mapstructure:"name"`
		LogLevel        string        `json:"log_level" mapstructure:"log_level"`
	}

	Postgres struct {
		Write Database `json:"write" mapstructure:"write"`
		Read  Database `json:"read" mapstructure:"read"`
	}

	Database struct {
		DbHost            string `json:"db_host" mapstructure:"db_host"`
		DbPort            string `json:"db_port" mapstructure:"db_port"`
		DbUser            string `json:"db_user" mapstructure:"db_user"`
		DbPass            string `json:"db_pass" mapstructure:"db_pass"`
		DbName            string `json:"db_name" mapstructure:"db_name"`
		DbSchema          string `json:"db_schema" mapstructure:"db_schema"`
		MaxOpenConnection int    `json:"maxOpenConnections" mapstructure:"max_open_connections"`
		MaxIdleConnection int    `json:"maxIdleConnections" mapstructure:"max_idle_connections"`
		ConnMaxLifetime   int    `json:"connMaxLifetime" mapstructure:"conn_max_lifetime"`
	}

	Redis struct {
		Host     string `json:"host" mapstructure:"host"`
		Port     string `json:"port" mapstructure:"port"`
		Password string `json:"password" mapstructure:"password"`
		Db       int    `json:"db" mapstructure:"db"`
	}

	Telegram struct {
		BotToken string `json:"bot_token" mapstructure:"bot_token"`
		// WebhookSecret is compared against the X-Telegram-Bot-Api-Secret-Token
		// header on incoming webhook calls.
		WebhookSecret string `json:"webhook_secret" mapstructure:"webhook_secret"`
		// WebhookURL, when set, is registered with Telegram on startup.
		WebhookURL  string        `json:"webhook_url" mapstructure:"webhook_url"`
		BaseURL     string        `json:"base_url" mapstructure:"base_url"`
		FileBaseURL string        `json:"file_base_url" mapstructure:"file_base_url"`
		Timeout     time.Duration `json:"timeout" mapstructure:"timeout"`
		RetryCount  int           `json:"retry_count" mapstructure:"retry_count"`
	}

	// InferenceConfig tunes how parse results are acted upon, not how they are
	// computed. The engines themselves are static.
	InferenceConfig struct {
		// ConfidenceThreshold is the minimum overall confidence for a parsed
		// transaction to be recorded without asking the user first.
		ConfidenceThreshold float64 `json:"confidence_threshold" mapstructure:"confidence_threshold"`
		// PendingTTL is how long an unconfirmed parse is kept in cache.
		PendingTTL time.Duration `json:"pending_ttl" mapstructure:"pending_ttl"`
	}

	AnalyticsConfig struct {
		CacheTTL time.Duration `json:"cache_ttl" mapstructure:"cache_ttl"`
	}

	ExponentialBackOffConfig struct {
		MaxRetries        uint64        `json:"max_retries" mapstructure:"max_retries"`
		MaxBackoffTime    time.Duration `json:"max_backoff_time" mapstructure:"max_backoff_time"`
		BackoffMultiplier float64       `json:"backoff_multiplier" mapstructure:"backoff_multiplier"`
	}

	HTTPConfiguration struct {
		BaseURL       string        `json:"base_url" mapstructure:"base_url"`
		SecretKey     string        `json:"secret_key" mapstructure:"secret_key"`
		RetryCount    int           `json:"retry_count" mapstructure:"retry_count"`
		RetryWaitTime int           `json:"retry_wait_time" mapstructure:"retry_wait_time"`
		Timeout       time.Duration `json:"timeout" mapstructure:"timeout"`
	}
)
