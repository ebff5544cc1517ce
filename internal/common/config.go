package common

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Paths  PathsConfig
	Logger LoggerConfig
}

// PathsConfig holds input/output path configuration. The extractors never
// read these; only the batch driver does.
type PathsConfig struct {
	InputDir     string
	OutputDir    string
	TemplatePath string
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level string
}

// LoadConfig loads configuration from environment variables, reading an
// optional .env file first.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Paths: PathsConfig{
			InputDir:     getEnv("INPUT_DIR", ""),
			OutputDir:    getEnv("OUTPUT_DIR", ""),
			TemplatePath: getEnv("TEMPLATE_PATH", ""),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Validate validates the loaded configuration once driver flags have been
// merged in.
func (c *Config) Validate() error {
	if c.Paths.InputDir == "" {
		return NewAppError("CONFIG_ERROR", "input directory is required", ErrInvalidInput)
	}
	if c.Paths.OutputDir == "" {
		return NewAppError("CONFIG_ERROR", "output directory is required", ErrInvalidInput)
	}
	return nil
}
