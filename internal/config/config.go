package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds everything the API reads from the environment.
type Config struct {
	Port            string        `env:"PORT" envDefault:"5005"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5005"`

	Mongo MongoConfig `envPrefix:"MONGODB_"`
	Log   LogConfig   `envPrefix:"LOG_"`
	Token TokenConfig `envPrefix:"TOKEN_"`

	// AuthVerifyURL switches identity checks to a remote auth service when set.
	AuthVerifyURL     string        `env:"AUTH_VERIFY_URL"`
	AuthVerifyTimeout time.Duration `env:"AUTH_VERIFY_TIMEOUT" envDefault:"5s"`
	PasswordHasher    string        `env:"PASSWORD_HASHER" envDefault:"bcrypt"`
}

type MongoConfig struct {
	URI      string `env:"URI" envDefault:"mongodb://127.0.0.1:27017"`
	Database string `env:"DATABASE" envDefault:"cohort-tools-api"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Pretty bool   `env:"PRETTY" envDefault:"false"`
}

type TokenConfig struct {
	Secret    string        `env:"SECRET,required"`
	Issuer    string        `env:"ISSUER" envDefault:"cohort-tools-api"`
	Audience  string        `env:"AUDIENCE" envDefault:"cohort-tools-client"`
	ExpiresIn time.Duration `env:"EXPIRES_IN" envDefault:"6h"`
}

// Load reads the optional .env files and parses the environment.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil {
		log.Warn().Err(err).Msg("error loading .env")
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	switch cfg.PasswordHasher {
	case "bcrypt", "argon2":
	default:
		return nil, fmt.Errorf("unsupported PASSWORD_HASHER %q", cfg.PasswordHasher)
	}

	return &cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}
