package configs

// RabbitMQConfig is optional: an empty URL disables activity publishing.
type RabbitMQConfig struct {
	URL              string `env:"RABBITMQ_URL"`
	ActivityExchange string `env:"ACTIVITY_EXCHANGE" envDefault:"storefront.activity"`
	ActivityQueue    string `env:"ACTIVITY_QUEUE" envDefault:"storefront.notifications"`
	PrefetchCount    int    `env:"RABBITMQ_PREFETCH_COUNT" envDefault:"10"`
}
