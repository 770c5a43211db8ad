package configs

import "time"

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type CacheConfig struct {
	ProductListTTL   time.Duration `env:"PRODUCT_LIST_TTL" envDefault:"1m"`
	ProductDetailTTL time.Duration `env:"PRODUCT_DETAIL_TTL" envDefault:"5m"`
}

type RateLimitConfig struct {
	PerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	Burst     int           `env:"RATE_LIMIT_BURST" envDefault:"5"`
	IdleTTL   time.Duration `env:"RATE_LIMIT_IDLE_TTL" envDefault:"10m"`
}
