// Package config holds the shared service configuration: the HTTP
// surface, the history store location, the reporting countries and
// the optional publishing credentials
package config

import (
	"errors"
	"os"
	"regexp"

	"github.com/pelletier/go-toml"

	"github.com/sig-0/usdreport/report/wordpress"
)

const (
	DefaultListenAddress = "0.0.0.0:8545"
	DefaultStorePath     = "data/rates_history.csv"
	DefaultArticleDir    = "data/articles"
)

var (
	ErrInvalidListenAddress = errors.New("invalid listen address")
	ErrNoCountries          = errors.New("no countries configured")
)

var listenAddressRegex = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}:\d+$`)

// Config defines the base-level service configuration
type Config struct {
	// The associated CORS config, if any
	CORSConfig *CORS `toml:"cors_config"`

	// The associated rate cache config, if any
	CacheConfig *Cache `toml:"cache_config"`

	// The generated article content bounds, if any
	Content *Content `toml:"content"`

	// The WordPress publishing config, if any.
	// Publishing is skipped when left out
	WordPress *wordpress.Config `toml:"wordpress"`

	// The address at which the server will be served.
	// Format should be: <IP>:<PORT>
	ListenAddress string `toml:"listen_address"`

	// The path of the rate history store (CSV flavor)
	StorePath string `toml:"store_path"`

	// The directory generated article copies are kept in
	ArticleDir string `toml:"article_dir"`

	// The countries reports are run for
	Countries []string `toml:"countries"`
}

// Content bounds the generated article length, in words
type Content struct {
	MinWords int `toml:"min_words"`
	MaxWords int `toml:"max_words"`
}

// Cache defines the server-side rate cache configuration
type Cache struct {
	// The number of keys to track frequency of
	NumCounters int64 `toml:"num_counters"`

	// The maximum cost of the cache
	MaxCost int64 `toml:"max_cost"`

	// The number of keys per Get buffer
	BufferItems int64 `toml:"buffer_items"`

	// How long a cached read stays fresh, in seconds
	TTLSeconds int64 `toml:"ttl_seconds"`
}

// DefaultConfig returns the default service configuration
func DefaultConfig() *Config {
	return &Config{
		ListenAddress: DefaultListenAddress,
		StorePath:     DefaultStorePath,
		ArticleDir:    DefaultArticleDir,
		Countries:     []string{"egypt", "iraq", "jordan", "syria", "lebanon"},
		CORSConfig:    DefaultCORSConfig(),
		CacheConfig:   DefaultCacheConfig(),
		Content:       DefaultContentConfig(),
	}
}

// DefaultContentConfig returns the default article content bounds
func DefaultContentConfig() *Content {
	return &Content{
		MinWords: 300,
		MaxWords: 500,
	}
}

// DefaultCacheConfig returns the default rate cache configuration
func DefaultCacheConfig() *Cache {
	return &Cache{
		NumCounters: 1000,
		MaxCost:     100,
		BufferItems: 64,
		TTLSeconds:  60,
	}
}

// ValidateConfig validates the service configuration
func ValidateConfig(config *Config) error {
	// Validate the listen address
	if !listenAddressRegex.MatchString(config.ListenAddress) {
		return ErrInvalidListenAddress
	}

	// Validate the country set
	if len(config.Countries) == 0 {
		return ErrNoCountries
	}

	return nil
}

// Read reads the configuration from the given path
func Read(path string) (*Config, error) {
	// Read the config file
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Parse it
	var cfg Config

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
