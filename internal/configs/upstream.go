package configs

import "time"

// UpstreamConfig points at the backend REST API the storefront consumes.
type UpstreamConfig struct {
	BaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:8080/api"`
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
}
