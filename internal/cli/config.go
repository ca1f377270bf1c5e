package cli

import (
	"os"

	"github.com/SageMyrloc/Torchbearers-Frontend/internal/session"
)

// Config holds CLI configuration
type Config struct {
	ServerURL       string
	CredentialsFile string
	Output          string
	Verbose         bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:       getEnvOrDefault("TORCH_SERVER", "http://localhost:8080"),
		CredentialsFile: getEnvOrDefault("TORCH_CREDENTIALS", session.DefaultCredentialsPath()),
		Output:          "text",
		Verbose:         false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
