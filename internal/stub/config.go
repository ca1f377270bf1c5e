package stub

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the stub server's runtime settings, read from the
// environment.
type Config struct {
	Host string `env:"TORCHSTUB_HOST" envDefault:""`
	Port int    `env:"TORCHSTUB_PORT" envDefault:"8080"`

	// RedisURL selects the persistent backend. Empty means the
	// in-memory store, which is all most development needs.
	RedisURL string `env:"TORCHSTUB_REDIS_URL"`

	JWTSecret     string        `env:"TORCHSTUB_JWT_SECRET" envDefault:"torchstub-dev-secret"`
	TokenDuration time.Duration `env:"TORCHSTUB_TOKEN_TTL" envDefault:"24h"`

	// UploadDir is where character images land. Empty disables
	// writing files to disk; uploads still get URLs assigned.
	UploadDir string `env:"TORCHSTUB_UPLOAD_DIR"`

	ReadTimeout     time.Duration `env:"TORCHSTUB_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"TORCHSTUB_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"TORCHSTUB_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LoadConfig reads the configuration from environment variables
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
