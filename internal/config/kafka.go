package config

import "time"

type KafkaConfig struct {
	Brokers     []string      `yaml:"brokers"`
	GroupID     string        `yaml:"group_id"`
	Topic       string        `yaml:"topic"`
	PollTimeout time.Duration `yaml:"poll_timeout"`
	BatchSize   int           `yaml:"batch_size"`
}

func loadKafkaConfig(c *KafkaConfig) {
	c.Brokers = getEnvAsSlice("KAFKA_BROKERS", c.Brokers)
	c.GroupID = getEnv("KAFKA_CONSUMER_GROUP", c.GroupID)
	c.Topic = getEnv("KAFKA_TOPIC_ORDERS", c.Topic)
	c.PollTimeout = getEnvAsDuration("KAFKA_POLL_TIMEOUT", c.PollTimeout)
	c.BatchSize = getEnvAsInt("KAFKA_BATCH_SIZE", c.BatchSize)
}
