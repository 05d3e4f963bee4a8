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
	App       *AppConfig       `yaml:"app"`
	Database  *DatabaseConfig  `yaml:"database"`
	Redis     *RedisConfig     `yaml:"redis"`
	Security  *SecurityConfig  `yaml:"security"`
	Affiliate *AffiliateConfig `yaml:"affiliate"`
	Kafka     *KafkaConfig     `yaml:"kafka"`
	Storage   *StorageConfig   `yaml:"storage"`
	Publisher *PublisherConfig `yaml:"publisher"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
	Port        int    `yaml:"port"`
	Host        string `yaml:"host"`
	Debug       bool   `yaml:"debug"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	LogOutput   string `yaml:"log_output"`
}

type SecurityConfig struct {
	JWTSecret          string   `yaml:"jwt_secret"`
	WebhookSecret      string   `yaml:"webhook_secret"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	TrustedProxies     []string `yaml:"trusted_proxies"`
}

// Load reads the optional YAML file named by CONFIG_FILE and then applies
// environment overrides on top of it.
func Load() (*Config, error) {
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

func LoadFile(path string) (*Config, error) {
	config := defaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, config); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	loadAppConfig(config.App)
	loadDatabaseConfig(config.Database)
	loadRedisConfig(config.Redis)
	loadSecurityConfig(config.Security)
	loadAffiliateConfig(config.Affiliate)
	loadKafkaConfig(config.Kafka)
	loadStorageConfig(config.Storage)
	loadPublisherConfig(config.Publisher)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.Database.URI == "" {
		return fmt.Errorf("missing MONGODB_URI")
	}
	if c.Affiliate.Context == "" {
		return fmt.Errorf("missing AFFILIATE_CONTEXT")
	}
	if c.Affiliate.DefaultRate < 0 {
		return fmt.Errorf("AFFILIATE_DEFAULT_RATE must not be negative")
	}
	if c.App.IsProduction() && c.Security.WebhookSecret == "" {
		return fmt.Errorf("missing WEBHOOK_SECRET")
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		App: &AppConfig{
			Name:        "referralbridge",
			Version:     "1.0.0",
			Environment: "development",
			Port:        8080,
			Host:        "localhost",
			Debug:       true,
			LogLevel:    "info",
			LogFormat:   "json",
			LogOutput:   "stdout",
		},
		Database: &DatabaseConfig{
			URI:            "mongodb://localhost:27017/referralbridge",
			Database:       "referralbridge",
			MaxPoolSize:    100,
			MinPoolSize:    5,
			ConnectTimeout: 10 * time.Second,
			SocketTimeout:  30 * time.Second,
		},
		Redis: &RedisConfig{
			Host:         "localhost",
			Port:         6379,
			PoolSize:     10,
			MinIdleConns: 3,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Security: &SecurityConfig{
			JWTSecret:          "change-me",
			CORSAllowedOrigins: []string{"*"},
		},
		Affiliate: &AffiliateConfig{
			Context:          "woocommerce",
			DefaultRate:      20,
			Currency:         "USD",
			OrderEditURL:     "http://localhost/wp-admin/post.php?post={id}&action=edit",
			VisitTTL:         24 * time.Hour,
			SettingsCacheTTL: 5 * time.Minute,
		},
		Kafka: &KafkaConfig{
			GroupID:     "referralbridge-orders",
			Topic:       "woocommerce.orders",
			PollTimeout: 250 * time.Millisecond,
			BatchSize:   50,
		},
		Storage: &StorageConfig{
			Provider: "local",
			Local: &LocalStorageConfig{
				BasePath: "./exports",
				BaseURL:  "http://localhost:8080/exports",
			},
			AWS: &AWSStorageConfig{Region: "us-east-1"},
			GCP: &GCPStorageConfig{},
		},
		Publisher: &PublisherConfig{
			Provider:     "none",
			Region:       "us-east-1",
			RedisChannel: "referrals",
		},
	}
}

func loadAppConfig(c *AppConfig) {
	c.Name = getEnv("APP_NAME", c.Name)
	c.Version = getEnv("APP_VERSION", c.Version)
	c.Environment = getEnv("APP_ENV", c.Environment)
	c.Port = getEnvAsInt("APP_PORT", c.Port)
	c.Host = getEnv("APP_HOST", c.Host)
	c.Debug = getEnvAsBool("APP_DEBUG", c.Debug)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.LogOutput = getEnv("LOG_OUTPUT", c.LogOutput)
}

func loadSecurityConfig(c *SecurityConfig) {
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.WebhookSecret = getEnv("WEBHOOK_SECRET", c.WebhookSecret)
	c.CORSAllowedOrigins = getEnvAsSlice("CORS_ALLOWED_ORIGINS", c.CORSAllowedOrigins)
	c.TrustedProxies = getEnvAsSlice("TRUSTED_PROXIES", c.TrustedProxies)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "" || c.Environment == "development"
}
