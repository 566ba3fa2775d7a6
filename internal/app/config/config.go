package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	HubAddr        string        `env:"HUB_ADDRESS"`
	APIBaseURL     string        `env:"API_BASE_URL"`
	TokenCacheDir  string        `env:"TOKEN_CACHE_DIR"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	ExpiryDebounce time.Duration `env:"SESSION_EXPIRY_DEBOUNCE"`
	JWTSecret      string        `env:"JWT_SECRET"`
	LogLevel       string        `env:"LOG_LEVEL"`
}

func InitConfig() (config Config) {
	flag.StringVar(&config.HubAddr, "a", "localhost:8081", "hub listen address host:port")
	flag.StringVar(&config.APIBaseURL, "b", "http://localhost:8081/api/v1", "base URL of the business API")
	flag.StringVar(&config.TokenCacheDir, "c", ".pako-console", "directory for the persisted auth token cache")
	flag.DurationVar(&config.RequestTimeout, "t", 10*time.Second, "per-request timeout ceiling")
	flag.DurationVar(&config.ExpiryDebounce, "d", time.Second, "cooldown between session expiry signals")
	flag.StringVar(&config.JWTSecret, "s", "pako-business-secret", "hub token signing secret")
	flag.StringVar(&config.LogLevel, "l", "info", "log level")
	flag.Parse()

	if err := env.Parse(&config); err != nil {
		panic(fmt.Errorf("error while parsing config: %w", err))
	}

	return
}
