package configs

import (
	"errors"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type AppConfig struct {
	Server    ServerConfig
	Upstream  UpstreamConfig
	Session   SessionConfig
	Redis     RedisConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	RabbitMQ  RabbitMQConfig
}

func LoadConfig(log *logrus.Logger) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file loaded, reading configuration from the environment only.")
	}

	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	log.Info("Configuration loaded.")
	return cfg, nil
}

// LoadWorkerConfig reads only what the notification worker needs.
func LoadWorkerConfig(log *logrus.Logger) (*RabbitMQConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file loaded, reading configuration from the environment only.")
	}

	cfg := &RabbitMQConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.URL == "" {
		return nil, errors.New("RABBITMQ_URL is required for the notification worker")
	}
	return cfg, nil
}
