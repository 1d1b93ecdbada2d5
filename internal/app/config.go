package app

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all process configuration, loaded once at startup.
type Config struct {
	// Address is the listen address for the HTTP server.
	Address string `env:"ADDRESS" envDefault:":5000"`

	// MongoURI is the MongoDB connection string.
	MongoURI string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`

	// MongoDatabase is the database holding the user and task collections.
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"taskvault"`

	// JWTSecret is the session token signing key. Required; startup
	// fails without it.
	JWTSecret string `env:"JWT_SECRET"`

	// TokenTTL is the session token lifetime.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"1h"`

	// BcryptCost is the password hashing cost factor.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"12"`

	// ShutdownTimeout bounds graceful shutdown on exit.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
