package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ServerConfig holds the HTTP listener settings shared by both services
type ServerConfig struct {
	Port         int           `env:"PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT"`
}

// Addr returns the listen address for the configured port
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// CorpusManagerConfig holds the corpus manager configuration.
// ProjectID may be empty: the service still starts and reports the
// missing value on every create_and_import request.
type CorpusManagerConfig struct {
	ServerConfig

	ProjectID       string `env:"GCP_PROJECT_ID"`
	Location        string `env:"GCP_LOCATION" envDefault:"us-central1"`
	DeleteExisting  Truthy `env:"DELETE_EXISTING_CORPORA" envDefault:"false"`
	VerifySources   Truthy `env:"VERIFY_SOURCES" envDefault:"false"`
	DatabaseURL     string `env:"DATABASE_URL"`
	DatabaseMaxConn int    `env:"DB_MAX_CONNS" envDefault:"5"`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	EnableMocks Truthy `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// QueryServiceConfig holds the query service configuration
type QueryServiceConfig struct {
	ServerConfig

	ProjectID                  string  `env:"GCP_PROJECT_ID,notEmpty"`
	Location                   string  `env:"GCP_LOCATION,notEmpty" envDefault:"us-central1"`
	CorpusName                 string  `env:"CORPUS_NAME,notEmpty"`
	GenerativeModelName        string  `env:"GENERATIVE_MODEL_NAME" envDefault:"gemini-2.5-pro-preview-03-25"`
	RetrievalTopK              int32   `env:"RETRIEVAL_TOP_K" envDefault:"15"`
	RetrievalDistanceThreshold float64 `env:"RETRIEVAL_DISTANCE_THRESHOLD" envDefault:"0.5"`

	// Connections to the model endpoint
	ModelConnectTimeout  time.Duration `env:"MODEL_CONNECT_TIMEOUT" envDefault:"30s"`
	ModelKeepAlive       time.Duration `env:"MODEL_KEEP_ALIVE" envDefault:"90s"`
	ModelIdleConnTimeout time.Duration `env:"MODEL_IDLE_CONN_TIMEOUT" envDefault:"90s"`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	EnableMocks Truthy `env:"ENABLE_MOCKS" envDefault:"false"`

	Environment string
}

// Truthy is a boolean switch that accepts "true", "yes" and "1" (any case)
// as enabled and every other value as disabled.
type Truthy bool

func (t *Truthy) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "true", "yes", "1":
		*t = true
	default:
		*t = false
	}
	return nil
}

const (
	defaultCorpusWriteTimeout = 10 * time.Minute
	defaultQueryWriteTimeout  = 2 * time.Minute
)

// LoadCorpusManagerConfig loads the env file selected by -env and parses the
// corpus manager configuration from the environment.
func LoadCorpusManagerConfig() (*CorpusManagerConfig, error) {
	environment := loadEnvFile()

	cfg, err := ParseCorpusManagerConfig()
	if err != nil {
		return nil, err
	}
	cfg.Environment = environment

	return cfg, nil
}

// ParseCorpusManagerConfig parses the corpus manager configuration from the
// current process environment.
func ParseCorpusManagerConfig() (*CorpusManagerConfig, error) {
	cfg := &CorpusManagerConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse corpus manager config: %w", err)
	}

	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = defaultCorpusWriteTimeout
	}

	var errors []string
	errors = append(errors, validateServer(cfg.ServerConfig)...)
	if cfg.DatabaseMaxConn < 1 || cfg.DatabaseMaxConn > 100 {
		errors = append(errors, fmt.Sprintf("DB_MAX_CONNS must be between 1 and 100, got %d", cfg.DatabaseMaxConn))
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(errors, "; "))
	}

	return cfg, nil
}

// LoadQueryServiceConfig loads the env file selected by -env and parses the
// query service configuration from the environment.
func LoadQueryServiceConfig() (*QueryServiceConfig, error) {
	environment := loadEnvFile()

	cfg, err := ParseQueryServiceConfig()
	if err != nil {
		return nil, err
	}
	cfg.Environment = environment

	return cfg, nil
}

// ParseQueryServiceConfig parses the query service configuration from the
// current process environment. GCP_PROJECT_ID, GCP_LOCATION and CORPUS_NAME
// are required.
func ParseQueryServiceConfig() (*QueryServiceConfig, error) {
	cfg := &QueryServiceConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("missing or invalid query service config (GCP_PROJECT_ID, GCP_LOCATION, CORPUS_NAME are required): %w", err)
	}

	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = defaultQueryWriteTimeout
	}

	var errors []string
	errors = append(errors, validateServer(cfg.ServerConfig)...)
	if cfg.RetrievalTopK < 1 {
		errors = append(errors, fmt.Sprintf("RETRIEVAL_TOP_K must be positive, got %d", cfg.RetrievalTopK))
	}
	if cfg.RetrievalDistanceThreshold < 0 {
		errors = append(errors, fmt.Sprintf("RETRIEVAL_DISTANCE_THRESHOLD must not be negative, got %g", cfg.RetrievalDistanceThreshold))
	}
	if cfg.ModelConnectTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MODEL_CONNECT_TIMEOUT must be positive, got %s", cfg.ModelConnectTimeout))
	}

	if len(errors) > 0 {
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(errors, "; "))
	}

	return cfg, nil
}

func validateServer(cfg ServerConfig) []string {
	var errors []string
	if cfg.Port < 1 || cfg.Port > 65535 {
		errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got %d", cfg.Port))
	}
	return errors
}

func loadEnvFile() string {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// On Cloud Run variables are set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	return *envFlag
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
