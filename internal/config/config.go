package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config is read from the environment. In all cases the defaults match the
// docker compose setup.
type Config struct {
	Port           string `envconfig:"PORT" default:"9446"`
	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"memory"`

	PostgresAddress  string `envconfig:"POSTGRES_ADDRESS" default:"localhost"`
	PostgresPort     string `envconfig:"POSTGRES_PORT" default:"5433"`
	PostgresDB       string `envconfig:"POSTGRES_DB" default:"postgres"`
	PostgresUsername string `envconfig:"POSTGRES_USERNAME" default:"postgres"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD" default:"testpassword"`

	OperatorWorkers  int    `envconfig:"OPERATOR_WORKERS" default:"4"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
	MetricsNamespace string `envconfig:"METRICS_NAMESPACE" default:"ledger"`
}

func ProcessEnvironmentVariables() (*Config, error) {
	var env Config
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("envconfig.Process: %w", err)
	}
	if env.OperatorWorkers < 1 {
		return nil, fmt.Errorf("OPERATOR_WORKERS must be at least 1, got %d", env.OperatorWorkers)
	}
	return &env, nil
}

func (c *Config) PostgresConnectionString() string {
	return "postgres://" + c.PostgresUsername + ":" + c.PostgresPassword + "@" +
		c.PostgresAddress + ":" + c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}
