package configs

type ServerConfig struct {
	Port             string   `env:"SERVER_PORT" envDefault:"3000"`
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	AdminToken       string   `env:"ADMIN_TOKEN"`
}
