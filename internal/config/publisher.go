package config

type PublisherConfig struct {
	Provider     string `yaml:"provider"` // none, sns, redis
	Region       string `yaml:"region"`
	TopicARN     string `yaml:"topic_arn"`
	RedisChannel string `yaml:"redis_channel"`
}

func loadPublisherConfig(c *PublisherConfig) {
	c.Provider = getEnv("PUBLISHER_PROVIDER", c.Provider)
	c.Region = getEnv("PUBLISHER_AWS_REGION", c.Region)
	c.TopicARN = getEnv("PUBLISHER_SNS_TOPIC_ARN", c.TopicARN)
	c.RedisChannel = getEnv("PUBLISHER_REDIS_CHANNEL", c.RedisChannel)
}
