package config

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads the yaml config file and overlays secrets from the environment.
// A .env file next to the process is loaded first when present, so local
// development does not need exported variables.
func Load(filePath string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if v := os.Getenv("DATABASE_CONNECTION_URL"); v != "" {
		cfg.Database.ConnectionString = v
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("JWT_SECRET_KEY"); v != "" {
		cfg.JWT.SecretKey = v
	}
	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		host, port, err := net.SplitHostPort(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SERVER_ADDRESS %q: %w", v, err)
		}
		cfg.Server.Host = host
		cfg.Server.Port = port
	}

	if cfg.JWT.SecretKey == "" {
		return nil, fmt.Errorf("jwt secret key is not configured")
	}

	return &cfg, nil
}
