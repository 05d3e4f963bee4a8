package config

import (
	"time"
)

type RedisConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

func loadRedisConfig(c *RedisConfig) {
	c.Host = getEnv("REDIS_HOST", c.Host)
	c.Port = getEnvAsInt("REDIS_PORT", c.Port)
	c.Password = getEnv("REDIS_PASSWORD", c.Password)
	c.DB = getEnvAsInt("REDIS_DB", c.DB)
	c.PoolSize = getEnvAsInt("REDIS_POOL_SIZE", c.PoolSize)
	c.MinIdleConns = getEnvAsInt("REDIS_MIN_IDLE_CONNS", c.MinIdleConns)
	c.DialTimeout = getEnvAsDuration("REDIS_DIAL_TIMEOUT", c.DialTimeout)
	c.ReadTimeout = getEnvAsDuration("REDIS_READ_TIMEOUT", c.ReadTimeout)
	c.WriteTimeout = getEnvAsDuration("REDIS_WRITE_TIMEOUT", c.WriteTimeout)
}
