package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Security SecurityConfig `mapstructure:"security"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port  int  `mapstructure:"port"`
	Debug bool `mapstructure:"debug"`
}

// CatalogConfig points at the SMITE data dumps loaded once at startup.
type CatalogConfig struct {
	ItemsPath string `mapstructure:"items_path"`
	GodsPath  string `mapstructure:"gods_path"`
}

type CacheConfig struct {
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
	RedisKeyPrefix  string        `mapstructure:"redis_key_prefix"`
	LocalGCInterval time.Duration `mapstructure:"local_gc_interval"`
	// ResultTTL is how long an eligibility result stays cached. Zero disables
	// result caching.
	ResultTTL time.Duration `mapstructure:"result_ttl"`
}

type SecurityConfig struct {
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
	Path      string `mapstructure:"path"`
	// AllowedIPs restricts the scrape endpoint. Empty allows everyone.
	AllowedIPs []string `mapstructure:"allowed_ips"`
}

// Load reads config from the given YAML file path. Every key can be
// overridden with an environment variable, e.g. SMITE_SERVER_PORT.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("smite")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.debug", false)
	v.SetDefault("catalog.items_path", "./data/items.json")
	v.SetDefault("catalog.gods_path", "./data/gods.json")
	v.SetDefault("cache.redis_key_prefix", "smitebuilder:")
	v.SetDefault("cache.local_gc_interval", "30s")
	v.SetDefault("cache.result_ttl", "10m")
	v.SetDefault("security.rate_limit_rps", 100)
	v.SetDefault("security.rate_limit_burst", 200)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "smitebuilder")
	v.SetDefault("metrics.path", "/metrics")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
