package config

import (
	"time"
)

type DatabaseConfig struct {
	URI            string        `yaml:"uri"`
	Database       string        `yaml:"database"`
	MaxPoolSize    int           `yaml:"max_pool_size"`
	MinPoolSize    int           `yaml:"min_pool_size"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	SocketTimeout  time.Duration `yaml:"socket_timeout"`
}

func loadDatabaseConfig(c *DatabaseConfig) {
	c.URI = getEnv("MONGODB_URI", c.URI)
	c.Database = getEnv("MONGODB_DATABASE", c.Database)
	c.MaxPoolSize = getEnvAsInt("MONGODB_MAX_POOL_SIZE", c.MaxPoolSize)
	c.MinPoolSize = getEnvAsInt("MONGODB_MIN_POOL_SIZE", c.MinPoolSize)
	c.ConnectTimeout = getEnvAsDuration("MONGODB_CONNECT_TIMEOUT", c.ConnectTimeout)
	c.SocketTimeout = getEnvAsDuration("MONGODB_SOCKET_TIMEOUT", c.SocketTimeout)
}
