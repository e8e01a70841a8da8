package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Assets struct {
		SchemaPath         string `yaml:"schema_path"`
		NeighbourhoodsPath string `yaml:"neighbourhoods_path"`
	} `yaml:"assets"`
	Geocoder struct {
		Provider       string  `yaml:"provider"` // "nominatim" or "google"
		BaseURL        string  `yaml:"base_url"`
		APIKey         string  `yaml:"api_key"`
		UserAgent      string  `yaml:"user_agent"`
		QuerySuffix    string  `yaml:"query_suffix"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
		RatePerSecond  float64 `yaml:"rate_per_second"`
	} `yaml:"geocoder"`
	Model struct {
		URL            string `yaml:"url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"model"`
	Redis struct {
		Enabled     bool   `yaml:"enabled"`
		Host        string `yaml:"host"`
		Port        int    `yaml:"port"`
		Password    string `yaml:"password"`
		DB          int    `yaml:"db"`
		TLSEnabled  bool   `yaml:"tls_enabled"`
		TLSCertFile string `yaml:"tls_cert_file"`
	} `yaml:"redis"`
	Cache struct {
		GeocodeTTLHours int `yaml:"geocode_ttl_hours"`
	} `yaml:"cache"`
	RateLimit struct {
		RequestsPerMinute int `yaml:"requests_per_minute"`
		Burst             int `yaml:"burst"`
	} `yaml:"rate_limit"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
}

const (
	DefaultQuerySuffix     = ", Stockholm, Sweden"
	DefaultNominatimURL    = "https://nominatim.openstreetmap.org"
	DefaultGoogleURL       = "https://maps.googleapis.com"
	DefaultGeocodeTimeout  = 10
	DefaultModelTimeout    = 10
	DefaultGeocodeTTLHours = 24 * 30
)

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Override with environment variables if set
func (cfg *Config) applyEnv() error {
	if port := os.Getenv("PORT"); port != "" {
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT value: %v", err)
		}
		cfg.Server.Port = portNum
	}
	if env := os.Getenv("ENV"); env != "" {
		cfg.Server.Env = env
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if p := os.Getenv("FEATURE_SCHEMA_PATH"); p != "" {
		cfg.Assets.SchemaPath = p
	}
	if p := os.Getenv("NEIGHBOURHOODS_PATH"); p != "" {
		cfg.Assets.NeighbourhoodsPath = p
	}
	if provider := os.Getenv("GEOCODER_PROVIDER"); provider != "" {
		cfg.Geocoder.Provider = provider
	}
	if key := os.Getenv("GOOGLE_MAPS_API_KEY"); key != "" {
		cfg.Geocoder.APIKey = key
	}
	if url := os.Getenv("MODEL_URL"); url != "" {
		cfg.Model.URL = url
	}
	if enabled := os.Getenv("REDIS_ENABLED"); enabled != "" {
		cfg.Redis.Enabled = enabled == "true"
	}
	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.Redis.Host = host
	}
	if port := os.Getenv("REDIS_PORT"); port != "" {
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid REDIS_PORT value: %v", err)
		}
		cfg.Redis.Port = portNum
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		dbNum, err := strconv.Atoi(db)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB value: %v", err)
		}
		cfg.Redis.DB = dbNum
	}
	if tlsEnabled := os.Getenv("REDIS_TLS_ENABLED"); tlsEnabled != "" {
		cfg.Redis.TLSEnabled = tlsEnabled == "true"
	}
	if tlsCertFile := os.Getenv("REDIS_TLS_CERT_FILE"); tlsCertFile != "" {
		cfg.Redis.TLSCertFile = tlsCertFile
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	return nil
}

// Set default values
func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "INFO"
	}
	cfg.Geocoder.Provider = strings.ToLower(strings.TrimSpace(cfg.Geocoder.Provider))
	if cfg.Geocoder.Provider == "" {
		cfg.Geocoder.Provider = "nominatim"
	}
	if cfg.Geocoder.BaseURL == "" {
		if cfg.Geocoder.Provider == "google" {
			cfg.Geocoder.BaseURL = DefaultGoogleURL
		} else {
			cfg.Geocoder.BaseURL = DefaultNominatimURL
		}
	}
	if cfg.Geocoder.UserAgent == "" {
		cfg.Geocoder.UserAgent = "listing-pricer/1.0"
	}
	if cfg.Geocoder.QuerySuffix == "" {
		cfg.Geocoder.QuerySuffix = DefaultQuerySuffix
	}
	if cfg.Geocoder.TimeoutSeconds == 0 {
		cfg.Geocoder.TimeoutSeconds = DefaultGeocodeTimeout
	}
	if cfg.Geocoder.RatePerSecond == 0 {
		cfg.Geocoder.RatePerSecond = 1
	}
	if cfg.Model.TimeoutSeconds == 0 {
		cfg.Model.TimeoutSeconds = DefaultModelTimeout
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Cache.GeocodeTTLHours == 0 {
		cfg.Cache.GeocodeTTLHours = DefaultGeocodeTTLHours
	}
	if cfg.RateLimit.RequestsPerMinute == 0 {
		cfg.RateLimit.RequestsPerMinute = 100
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 10
	}
}

// Validate checks the settings the service cannot start without.
func (cfg *Config) Validate() error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}
	if cfg.Assets.SchemaPath == "" {
		return fmt.Errorf("assets.schema_path is required")
	}
	switch cfg.Geocoder.Provider {
	case "nominatim":
	case "google":
		if cfg.Geocoder.APIKey == "" {
			return fmt.Errorf("GOOGLE_MAPS_API_KEY is required for the google geocoder")
		}
	default:
		return fmt.Errorf("unknown geocoder provider %q", cfg.Geocoder.Provider)
	}
	if cfg.Geocoder.TimeoutSeconds < 0 || cfg.Model.TimeoutSeconds < 0 {
		return fmt.Errorf("timeouts must be non-negative")
	}
	if cfg.Redis.Port <= 0 || cfg.Redis.Port > 65535 {
		return fmt.Errorf("REDIS_PORT must be between 1 and 65535")
	}
	if cfg.Redis.DB < 0 {
		return fmt.Errorf("REDIS_DB must be non-negative")
	}
	if cfg.Redis.TLSEnabled && cfg.Redis.TLSCertFile != "" {
		if _, err := os.Stat(cfg.Redis.TLSCertFile); os.IsNotExist(err) {
			return fmt.Errorf("TLS certificate file does not exist: %s", cfg.Redis.TLSCertFile)
		}
	}
	return nil
}

func (cfg *Config) GeocodeTimeout() time.Duration {
	return time.Duration(cfg.Geocoder.TimeoutSeconds) * time.Second
}

func (cfg *Config) ModelTimeout() time.Duration {
	return time.Duration(cfg.Model.TimeoutSeconds) * time.Second
}

func (cfg *Config) GeocodeTTL() time.Duration {
	return time.Duration(cfg.Cache.GeocodeTTLHours) * time.Hour
}

func (cfg *Config) IsProduction() bool {
	return cfg.Server.Env == "production"
}
