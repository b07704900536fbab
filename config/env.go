package config

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// LoadDotEnv loads the first .env file found in the usual locations.
// A missing file is not an error; the process environment is used as is.
func LoadDotEnv() {
	possiblePaths := []string{
		".env",
		filepath.Join("..", ".env"),
	}

	for _, envPath := range possiblePaths {
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded .env file")
			return
		}
	}

	log.Warn().Msg("No .env file found, using existing environment variables")
}
